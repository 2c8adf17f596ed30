package types

// Category represents capability bridge categories
type Category string

const (
	CategoryEnvironment Category = "environment"
	CategoryWindow      Category = "window"
	CategoryStorage     Category = "storage"
	CategoryMenu        Category = "menu"
)

// Bridge describes a published capability bridge. Only plain data crosses
// the isolation boundary: the renderer sees this record plus op IDs, never
// the provider behind it.
type Bridge struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    Category `json:"category"`
	// Values are plain constants baked into the bridge shape at publish
	// time (e.g. platform, pid)
	Values map[string]interface{} `json:"values,omitempty"`
	Ops    []Op                   `json:"ops"`
}

// Op describes a single bridge operation
type Op struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Parameters  []Parameter `json:"parameters"`
	Returns     string      `json:"returns"`
	// Sync ops answer from process-local information; async ops perform a
	// host round trip and may fail.
	Sync bool `json:"sync"`
}

// Parameter describes an op parameter
type Parameter struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
}

// Result represents a bridge op execution result
type Result struct {
	Success bool                   `json:"success"`
	Data    map[string]interface{} `json:"data,omitempty"`
	Error   *string                `json:"error,omitempty"`
}
