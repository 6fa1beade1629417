package session

import "strings"

const welcomeMessage = `¡Hola! Soy tu asistente de voz y te ayudaré a completar el registro de tu empresa.

**Proceso en 3 pasos:**
1. Subir documentos y extraer información
2. Completar datos faltantes
3. Confirmar y llenar formulario

¿Comenzamos?`

const uploadMessage = `**Paso 1: Subir documentos**

Sube los documentos de tu empresa:
- Logo de la empresa
- DNI (frontal y posterior)
- Cámara de Comercio
- RUT
- Certificación bancaria
- Estados financieros
- Composición accionaria

Haz clic en "Extraer información" cuando hayas subido todos los documentos.`

const extractMessage = `He extraído información de tus documentos:
- Razón Social: Empresa ABC S.A
- NIT: 900123456-7
- Dirección: Calle 15 #23-45, Bogotá
- Teléfono: 324 347 8909

Ahora completemos la información faltante.`

const questionIntro = `**Paso 2: Completar información**

Te haré algunas preguntas para completar los datos faltantes. Responde con tu voz.

¿En qué departamento se encuentra tu empresa?`

const successMessage = `✅ **¡Información aplicada exitosamente!**

He aplicado automáticamente toda la información identificada al formulario:

• **Información básica**: Razón social, NIT
• **Ubicación**: Departamento, ciudad, dirección
• **Contacto**: Teléfono
• **Actividad**: Categoría, actividad económica, código CIIU

**Próximo paso**: Revisa los datos en el formulario y haz clic en "Guardar" para completar el registro.

¡Gracias por usar nuestro asistente de voz! 🎉`

const reviewMessage = `Entiendo que quieres revisar los datos. ¿Qué campo específico te gustaría modificar? Puedes decirme:

- "Cambiar razón social"
- "Modificar dirección"
- "Actualizar teléfono"
- O cualquier otro campo que necesites ajustar.`

const processingErrorNotice = "Error al procesar tu mensaje. Por favor, intenta de nuevo."

// openReply is the scripted fallback answer for free conversation. It is a
// fixed keyword table, not a language model: accuracy depends on the user
// phrasing things the expected way.
func openReply(input string) string {
	switch {
	case strings.Contains(input, "nombre") || strings.Contains(input, "razón social"):
		return "Por favor, dime el nombre completo de tu empresa o razón social."
	case strings.Contains(input, "dirección") || strings.Contains(input, "direccion"):
		return "Necesito la dirección completa de tu empresa. ¿Puedes proporcionármela?"
	case strings.Contains(input, "teléfono") || strings.Contains(input, "telefono") || strings.Contains(input, "celular"):
		return "¿Cuál es tu número de teléfono o celular de contacto?"
	case strings.Contains(input, "ciudad") || strings.Contains(input, "departamento"):
		return "¿En qué ciudad y departamento se encuentra tu empresa?"
	case strings.Contains(input, "actividad") || strings.Contains(input, "económica"):
		return "¿Cuál es la actividad económica principal de tu empresa?"
	case strings.Contains(input, "documento") || strings.Contains(input, "nit"):
		return "Necesito el número de documento de identificación de tu empresa."
	case strings.Contains(input, "ayuda") || strings.Contains(input, "ayudar"):
		return "Te ayudo a completar el formulario de registro. Puedes decirme los datos de tu empresa y los llenaré automáticamente."
	default:
		return "Entiendo. ¿Puedes proporcionarme más detalles sobre lo que necesitas para el registro de tu empresa?"
	}
}

// confirmationReply handles yes/no style answers while the summary is on
// screen. advance reports whether the flow should move past the summary.
func confirmationReply(input string) (reply string, advance bool) {
	switch {
	case strings.Contains(input, "sí") || strings.Contains(input, "si") ||
		strings.Contains(input, "correcto") || strings.Contains(input, "bien") ||
		strings.Contains(input, "ok"):
		return "¡Perfecto! Todos los datos están confirmados. Ahora puedes proceder a guardar el formulario.", true
	case strings.Contains(input, "no") || strings.Contains(input, "incorrecto") ||
		strings.Contains(input, "cambiar"):
		return "Entiendo que necesitas hacer cambios. ¿Qué campo específico te gustaría modificar?", false
	default:
		return `Por favor, confirma si todos los datos están correctos respondiendo "sí" o "no".`, false
	}
}
