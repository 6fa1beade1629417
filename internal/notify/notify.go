package notify

import "time"

// Kind classifies a transient user-visible notice.
type Kind string

const (
	Success Kind = "success"
	Error   Kind = "error"
	Warning Kind = "warning"
	Info    Kind = "info"
)

// Duration is how long the client keeps a notice on screen before
// auto-dismissing it.
const Duration = 3 * time.Second

// Icon returns the icon name the client renders next to the notice text.
func (k Kind) Icon() string {
	switch k {
	case Success:
		return "check-circle"
	case Error:
		return "exclamation-circle"
	case Warning:
		return "exclamation-triangle"
	default:
		return "info-circle"
	}
}

// Color returns the background color for the notice.
func (k Kind) Color() string {
	switch k {
	case Success:
		return "#52C41A"
	case Error:
		return "#FF4D4F"
	case Warning:
		return "#FAAD14"
	default:
		return "#007ACC"
	}
}
