package form

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMissing_EmptyStoreReturnsRequiredInOrder(t *testing.T) {
	s := NewStore()
	assert.Equal(t, Required, s.Missing())
}

func TestMissing_TrimmedBlankCountsAsMissing(t *testing.T) {
	s := NewStore()
	s.Set(FieldCity, "   ")
	s.Set(FieldPhone, "324 347 8909")

	missing := s.Missing()
	assert.Contains(t, missing, FieldCity)
	assert.NotContains(t, missing, FieldPhone)

	// Order must stay stable regardless of fill order.
	for i := 1; i < len(missing); i++ {
		assert.Less(t, indexOf(Required, missing[i-1]), indexOf(Required, missing[i]))
	}
}

func indexOf(list []string, name string) int {
	for i, v := range list {
		if v == name {
			return i
		}
	}
	return -1
}

func TestSeed_IgnoresUnknownAndBlank(t *testing.T) {
	s := NewStore()
	s.Seed(map[string]string{
		FieldSocialReason: "Panaderia Central",
		"favoriteColor":   "red",
		FieldAddress:      "  ",
	})
	assert.Equal(t, "Panaderia Central", s.Get(FieldSocialReason))
	assert.Equal(t, "", s.Get("favoriteColor"))
	assert.Contains(t, s.Missing(), FieldAddress)
}

func TestSet_OverwritesUnconditionally(t *testing.T) {
	s := NewStore()
	s.Set(FieldDepartment, "Antioquia")
	s.Set(FieldDepartment, "Cundinamarca")
	assert.Equal(t, "Cundinamarca", s.Get(FieldDepartment))
}

func TestReset_DropsEverything(t *testing.T) {
	s := NewStore()
	s.Set(FieldCategory, "Comercio")
	s.Reset()
	assert.Equal(t, "", s.Get(FieldCategory))
	assert.Equal(t, Required, s.Missing())
}

func TestSummary_FallbacksForMissingFields(t *testing.T) {
	text := Summary(map[string]string{})
	assert.Contains(t, text, "Razón Social: Empresa ABC S.A")
	assert.Contains(t, text, "NIT: 900123456-7")
	assert.Contains(t, text, "Departamento: Cundinamarca")
	assert.Contains(t, text, "Código CIIU: Clase 7420")
}

func TestSummary_UsesCapturedValues(t *testing.T) {
	text := Summary(map[string]string{
		FieldSocialReason: "Panaderia Central",
		FieldCity:         "Medellín",
	})
	assert.Contains(t, text, "Razón Social: Panaderia Central")
	assert.Contains(t, text, "Ciudad: Medellín")
	assert.NotContains(t, text, "Razón Social: Empresa ABC S.A")
}

func TestConfirmValues_CoverEveryField(t *testing.T) {
	require.Len(t, ConfirmValues, len(Fields))
	for _, fv := range ConfirmValues {
		assert.True(t, Known(fv.Name), "unknown field %q", fv.Name)
		assert.NotEmpty(t, strings.TrimSpace(fv.Value))
	}
}

func TestQuestion_UnknownFieldGetsGenericPrompt(t *testing.T) {
	assert.Equal(t, "Por favor, proporciona la información para este campo.", Question("ciiuCodeX"))
	assert.Equal(t, "¿En qué departamento se encuentra tu empresa?", Question(FieldDepartment))
}
