package types

// NetworkInterface is one address entry of a host network interface.
// CIDR is nil when the host did not report a prefix for the address;
// consumers rely on the key always being present.
type NetworkInterface struct {
	Name    string  `json:"name"`
	Family  string  `json:"family"`
	Address string  `json:"address"`
	Netmask string  `json:"netmask"`
	CIDR    *string `json:"cidr"`
}

// CLIFlags is the host-resolved record of command-line-derived options
type CLIFlags struct {
	Flags map[string]string `json:"flags"`
	Args  []string          `json:"args"`
}

// Extension is installed extension metadata
type Extension struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Version     string `json:"version"`
	Description string `json:"description,omitempty"`
	Publisher   string `json:"publisher,omitempty"`
	Entry       string `json:"entry"`
}

// Layout is a saved panel layout owned by the renderer
type Layout struct {
	ID   string                 `json:"id"`
	Name string                 `json:"name"`
	Data map[string]interface{} `json:"data"`
}

// StorageItem is one named item in the storage collaborator
type StorageItem struct {
	Key   string `json:"key"`
	Value []byte `json:"value,omitempty"`
}
