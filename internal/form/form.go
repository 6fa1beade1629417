package form

import (
	"strings"
	"sync"
)

// Field names recognized on the company registration form.
const (
	FieldSocialReason     = "socialReason"
	FieldDocumentNumber   = "documentNumber"
	FieldDocumentDigit    = "documentDigit"
	FieldDepartment       = "department"
	FieldCity             = "city"
	FieldAddress          = "address"
	FieldPhone            = "phone"
	FieldCategory         = "category"
	FieldEconomicActivity = "economicActivity"
	FieldCIIUCode         = "ciiuCode"
)

// Fields lists every known form field.
var Fields = []string{
	FieldSocialReason,
	FieldDocumentNumber,
	FieldDocumentDigit,
	FieldDepartment,
	FieldCity,
	FieldAddress,
	FieldPhone,
	FieldCategory,
	FieldEconomicActivity,
	FieldCIIUCode,
}

// Required are the fields the assistant insists on before the summary,
// in the order they are asked about.
var Required = []string{
	FieldSocialReason,
	FieldCity,
	FieldDepartment,
	FieldAddress,
	FieldPhone,
	FieldCategory,
}

// Known reports whether name is a recognized form field.
func Known(name string) bool {
	for _, f := range Fields {
		if f == name {
			return true
		}
	}
	return false
}

// Store holds the partially completed registration form for one session.
// A field counts as missing when its value is absent or blank after trimming.
type Store struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{values: make(map[string]string)}
}

// Set writes a field value, overwriting any previous one.
func (s *Store) Set(name, value string) {
	s.mu.Lock()
	s.values[name] = value
	s.mu.Unlock()
}

// Get returns the current value for name, or "" when unset.
func (s *Store) Get(name string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values[name]
}

// Seed loads initial values read from the client form. Unknown field names
// and blank values are ignored.
func (s *Store) Seed(values map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for name, value := range values {
		if !Known(name) || strings.TrimSpace(value) == "" {
			continue
		}
		s.values[name] = value
	}
}

// Missing returns the required fields still without a value, in the fixed
// Required order.
func (s *Store) Missing() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var missing []string
	for _, name := range Required {
		if strings.TrimSpace(s.values[name]) == "" {
			missing = append(missing, name)
		}
	}
	return missing
}

// Snapshot returns a copy of all current values.
func (s *Store) Snapshot() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]string, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

// Reset drops every stored value.
func (s *Store) Reset() {
	s.mu.Lock()
	s.values = make(map[string]string)
	s.mu.Unlock()
}
