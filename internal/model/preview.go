package model

// PreviewMode selects which rendering surface a preview opens.
type PreviewMode string

const (
	PreviewModeForm PreviewMode = "form"
	PreviewModeChat PreviewMode = "chat"
)

// PreviewPayload is the typed hand-off the builder stores for a renderer to
// pick up: its current in-memory schema plus display inputs. Consumers must
// tolerate a missing or malformed payload and fall back to the built-in
// example schema.
type PreviewPayload struct {
	Mode        PreviewMode    `json:"mode"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Form        Form           `json:"form"`
	Questions   []FormQuestion `json:"questions"`
}
