package apperr

type Kind string

type AppError struct {
	Kind      Kind
	PublicMsg string            // safe to surface to the calling UI
	Fields    map[string]string // per-field validation messages (optional)
	Err       error             // internal error (for logs)
}
