package catalog

// SyncMode is the protocol-side sync mode a connector declares.
type SyncMode string

const (
	SyncModeFullRefresh SyncMode = "full_refresh"
	SyncModeIncremental SyncMode = "incremental"
)

// APISyncMode is the API-side sync mode exposed to users.
type APISyncMode string

const (
	APISyncModeFullRefresh APISyncMode = "full_refresh"
	APISyncModeIncremental APISyncMode = "incremental"
)

// StreamName is the namespaced stream descriptor. Older connectors only
// report a bare name and leave it unset.
type StreamName struct {
	Namespace string `json:"namespace,omitempty"`
	Name      string `json:"name"`
}

type Stream struct {
	Name                string         `json:"name"`
	StreamName          *StreamName    `json:"stream_name,omitempty"`
	JSONSchema          map[string]any `json:"json_schema,omitempty"`
	SupportedSyncModes  []SyncMode     `json:"supported_sync_modes,omitempty"`
	SourceDefinedCursor bool           `json:"source_defined_cursor,omitempty"`
	DefaultCursorField  []string       `json:"default_cursor_field,omitempty"`
}

func (s Stream) Identity() StreamIdentity {
	return IdentityOf(s.Name, s.StreamName)
}

type Catalog struct {
	Streams []Stream `json:"streams"`
}

type ConfiguredStream struct {
	Stream      Stream   `json:"stream"`
	SyncMode    SyncMode `json:"sync_mode"`
	CursorField []string `json:"cursor_field,omitempty"`
}

// ConfiguredCatalog holds only the streams a user selected, in catalog order.
type ConfiguredCatalog struct {
	Streams []ConfiguredStream `json:"streams"`
}

type APIStream struct {
	Name                string         `json:"name"`
	StreamName          *StreamName    `json:"streamName,omitempty"`
	JSONSchema          map[string]any `json:"jsonSchema,omitempty"`
	SupportedSyncModes  []APISyncMode  `json:"supportedSyncModes,omitempty"`
	SourceDefinedCursor bool           `json:"sourceDefinedCursor,omitempty"`
	DefaultCursorField  []string       `json:"defaultCursorField,omitempty"`
}

func (s APIStream) Identity() StreamIdentity {
	return IdentityOf(s.Name, s.StreamName)
}

type StreamConfiguration struct {
	AliasName   string      `json:"aliasName"`
	SyncMode    APISyncMode `json:"syncMode"`
	CursorField []string    `json:"cursorField,omitempty"`
	Selected    bool        `json:"selected"`
}

type StreamAndConfiguration struct {
	Stream APIStream           `json:"stream"`
	Config StreamConfiguration `json:"config"`
}

type APICatalog struct {
	Streams []StreamAndConfiguration `json:"streams"`
}
