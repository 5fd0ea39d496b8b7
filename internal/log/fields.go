package log

// Common attribute keys.
const (
	FieldComponent = "component"
	FieldOperation = "operation"
	FieldError     = "error"
	FieldID        = "id"
	FieldKind      = "kind"
	FieldDuration  = "duration_ms"
	FieldPath      = "path"
	FieldCount     = "count"
)

// Component names.
const (
	ComponentApp    = "app"
	ComponentStore  = "store"
	ComponentDaemon = "daemon"
	ComponentNotify = "notify"
	ComponentExport = "export"
	ComponentTUI    = "tui"
)
