package form

import (
	"fmt"
	"strings"
)

// FieldValue pairs a field name with a value, preserving apply order.
type FieldValue struct {
	Name  string
	Value string
}

// ConfirmValues is the canonical field set applied to the form when the user
// confirms the summary. Applied in this exact order.
var ConfirmValues = []FieldValue{
	{FieldSocialReason, "Empresa ABC S.A"},
	{FieldDocumentNumber, "900123456"},
	{FieldDocumentDigit, "7"},
	{FieldDepartment, "Cundinamarca"},
	{FieldCity, "Bogotá"},
	{FieldAddress, "Calle 15 #23-45, Bogotá"},
	{FieldPhone, "324 347 8909"},
	{FieldCategory, "Restaurante"},
	{FieldEconomicActivity, "Restaurante de comida colombiana"},
	{FieldCIIUCode, "Clase 7420"},
}

// summaryFallbacks are the literal defaults shown in the summary for fields
// the user never provided.
var summaryFallbacks = map[string]string{
	FieldSocialReason:     "Empresa ABC S.A",
	FieldDocumentNumber:   "900123456-7",
	FieldDepartment:       "Cundinamarca",
	FieldCity:             "Bogotá",
	FieldAddress:          "Calle 15 #23-45, Bogotá",
	FieldPhone:            "324 347 8909",
	FieldCategory:         "Restaurante",
	FieldEconomicActivity: "Restaurante de comida colombiana",
	FieldCIIUCode:         "Clase 7420",
}

var labels = map[string]string{
	FieldSocialReason: "la razón social",
	FieldCity:         "la ciudad",
	FieldDepartment:   "el departamento",
	FieldAddress:      "la dirección",
	FieldPhone:        "el teléfono",
	FieldCategory:     "la categoría",
}

// Label returns the Spanish label used when confirming a captured value.
func Label(name string) string {
	if l, ok := labels[name]; ok {
		return l
	}
	return "el campo"
}

var fieldQuestions = map[string]string{
	FieldSocialReason: "¿Cuál es la razón social de tu empresa?",
	FieldCity:         "¿En qué ciudad se encuentra tu empresa?",
	FieldDepartment:   "¿En qué departamento se encuentra tu empresa?",
	FieldAddress:      "¿Cuál es la dirección completa de tu empresa?",
	FieldPhone:        "¿Cuál es el número de teléfono de contacto?",
	FieldCategory:     "¿A qué categoría pertenece tu empresa?",
}

// Question returns the prompt for a missing field.
func Question(name string) string {
	if q, ok := fieldQuestions[name]; ok {
		return q
	}
	return "Por favor, proporciona la información para este campo."
}

// valueOr reads a field from values, falling back to the canonical default.
func valueOr(values map[string]string, name string) string {
	if v := strings.TrimSpace(values[name]); v != "" {
		return values[name]
	}
	return summaryFallbacks[name]
}

// Summary renders the step-three confirmation text for the given snapshot.
func Summary(values map[string]string) string {
	return fmt.Sprintf(`**Paso 3: Resumen y confirmación**

**📋 Información identificada de los documentos:**

**Información básica:**
• Razón Social: %s
• NIT: %s

**Ubicación:**
• Departamento: %s
• Ciudad: %s
• Dirección: %s

**Contacto:**
• Teléfono: %s

**Actividad:**
• Categoría: %s
• Actividad Económica: %s
• Código CIIU: %s

**Documentos procesados:**
• Logo de la empresa
• DNI (frontal y posterior)
• Cámara de Comercio
• RUT
• Certificación bancaria
• Estados financieros
• Composición accionaria

¿La información identificada es correcta? Confirma para aplicar automáticamente al formulario.`,
		valueOr(values, FieldSocialReason),
		valueOr(values, FieldDocumentNumber),
		valueOr(values, FieldDepartment),
		valueOr(values, FieldCity),
		valueOr(values, FieldAddress),
		valueOr(values, FieldPhone),
		valueOr(values, FieldCategory),
		valueOr(values, FieldEconomicActivity),
		valueOr(values, FieldCIIUCode))
}
