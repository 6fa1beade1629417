// Package extract derives normalized field values from raw recognized or
// typed text. Matching is case-insensitive; outputs use canonical casing.
// Extraction never fails: when no rule applies it degrades to the trimmed
// verbatim input (except open-conversation mode, which only reports fields
// it positively detected).
package extract

import (
	"regexp"
	"strings"

	"vozbot/internal/form"
)

var (
	// 10 digits grouped 3-3-4 with optional whitespace between groups.
	phonePattern = regexp.MustCompile(`\d{3}\s*\d{3}\s*\d{4}`)
	// 10 to 11 digit run, used for NIT-style document numbers.
	documentPattern = regexp.MustCompile(`\d{10,11}`)

	socialReasonLeadIn     = regexp.MustCompile(`(?i)(?:se llama|es)\s+(.+)`)
	addressLeadIn          = regexp.MustCompile(`(?i)(?:dirección|direccion|es)\s+(.+)`)
	openSocialReasonLeadIn = regexp.MustCompile(`(?i)(?:mi empresa se llama|razón social)\s+(.+)`)
	openAddressLeadIn      = regexp.MustCompile(`(?i)(?:dirección|direccion)\s+(.+)`)
)

// keywordRule maps a contained keyword to its canonical value. Rules are
// checked in order; the first containment wins.
type keywordRule struct {
	keyword   string
	canonical string
}

var departmentRules = []keywordRule{
	{"cundinamarca", "Cundinamarca"},
	{"antioquia", "Antioquia"},
	{"valle", "Valle del Cauca"},
}

var cityRules = []keywordRule{
	{"bogotá", "Bogotá"},
	{"bogota", "Bogotá"},
	{"medellín", "Medellín"},
	{"medellin", "Medellín"},
	{"cali", "Cali"},
}

var categoryRules = []keywordRule{
	{"restaurante", "Restaurante"},
	{"comercio", "Comercio"},
	{"servicios", "Servicios"},
}

func matchKeyword(rules []keywordRule, raw string) (string, bool) {
	input := strings.ToLower(raw)
	for _, r := range rules {
		if strings.Contains(input, r.keyword) {
			return r.canonical, true
		}
	}
	return "", false
}

// Answer normalizes a reply to a wizard question for the given field.
func Answer(field, raw string) string {
	switch field {
	case form.FieldDepartment:
		if v, ok := matchKeyword(departmentRules, raw); ok {
			return v
		}
	case form.FieldCity:
		if v, ok := matchKeyword(cityRules, raw); ok {
			return v
		}
	case form.FieldCategory:
		if v, ok := matchKeyword(categoryRules, raw); ok {
			return v
		}
	case form.FieldPhone:
		if m := phonePattern.FindString(raw); m != "" {
			return m
		}
	}
	return strings.TrimSpace(raw)
}

// MissingField normalizes a free-text reply while the assistant is soliciting
// a specific missing field. Free-form fields strip a lead-in phrase when one
// is present.
func MissingField(field, raw string) string {
	switch field {
	case form.FieldSocialReason:
		if m := socialReasonLeadIn.FindStringSubmatch(raw); m != nil {
			return strings.TrimSpace(m[1])
		}
	case form.FieldAddress:
		if m := addressLeadIn.FindStringSubmatch(raw); m != nil {
			return strings.TrimSpace(m[1])
		}
	case form.FieldPhone:
		if m := phonePattern.FindString(raw); m != "" {
			return m
		}
	}
	return strings.TrimSpace(raw)
}

// Open scans an open-conversation utterance and returns every field value it
// can positively detect. Its rules are keyword-gated and deliberately
// narrower than the question-flow rules.
func Open(raw string) map[string]string {
	found := make(map[string]string)
	input := strings.ToLower(raw)

	if strings.Contains(input, "mi empresa se llama") || strings.Contains(input, "razón social") {
		if m := openSocialReasonLeadIn.FindStringSubmatch(raw); m != nil {
			found[form.FieldSocialReason] = strings.TrimSpace(m[1])
		}
	}
	if strings.Contains(input, "dirección") || strings.Contains(input, "direccion") {
		if m := openAddressLeadIn.FindStringSubmatch(raw); m != nil {
			found[form.FieldAddress] = strings.TrimSpace(m[1])
		}
	}
	if strings.Contains(input, "teléfono") || strings.Contains(input, "telefono") || strings.Contains(input, "celular") {
		if m := phonePattern.FindString(raw); m != "" {
			found[form.FieldPhone] = m
		}
	}
	if strings.Contains(input, "documento") || strings.Contains(input, "nit") {
		if m := documentPattern.FindString(raw); m != "" {
			found[form.FieldDocumentNumber] = m
		}
	}
	return found
}
