package transcript

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLog_AppendPreservesOrder(t *testing.T) {
	l := NewLog()
	l.Append(RoleAssistant, "hola")
	l.Append(RoleUser, "buenas")
	l.Append(RoleAssistant, "¿comenzamos?")

	entries := l.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, RoleAssistant, entries[0].Role)
	assert.Equal(t, "buenas", entries[1].Text)
	assert.Equal(t, "¿comenzamos?", entries[2].Text)
}

func TestLog_TimestampFormat(t *testing.T) {
	l := NewLog()
	l.now = func() time.Time { return time.Date(2025, 3, 9, 14, 5, 33, 0, time.UTC) }
	e := l.Append(RoleUser, "hola")
	assert.Equal(t, "14:05", e.At)
}

func TestLog_ClearEmptiesHistory(t *testing.T) {
	l := NewLog()
	l.Append(RoleUser, "hola")
	l.Clear()
	assert.Equal(t, 0, l.Len())
	assert.Empty(t, l.Entries())
}

func TestLog_EntriesReturnsCopy(t *testing.T) {
	l := NewLog()
	l.Append(RoleUser, "hola")
	got := l.Entries()
	got[0].Text = "mutated"
	assert.Equal(t, "hola", l.Entries()[0].Text)
}
