package catalog

import (
	"strings"

	"github.com/goliatone/go-connectors/jsontree"
	glog "github.com/goliatone/go-logger/glog"
)

// Normalizer converts catalogs between the protocol and API views. The zero
// value is not usable; build one with NewNormalizer.
type Normalizer struct {
	fallback APISyncMode
	logger   glog.Logger
}

type Option func(*Normalizer)

// WithFallbackSyncMode sets the mode given to streams that declare no
// supported sync modes.
func WithFallbackSyncMode(mode APISyncMode) Option {
	return func(n *Normalizer) {
		n.fallback = APISyncMode(strings.TrimSpace(string(mode)))
	}
}

func WithLogger(logger glog.Logger) Option {
	return func(n *Normalizer) {
		if logger != nil {
			n.logger = logger
		}
	}
}

func NewNormalizer(opts ...Option) (*Normalizer, error) {
	_, logger := glog.Resolve("connectors.catalog", nil, nil)
	normalizer := &Normalizer{
		fallback: APISyncModeIncremental,
		logger:   glog.Ensure(logger),
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(normalizer)
	}
	if _, err := ToProtocolSyncMode(normalizer.fallback); err != nil {
		return nil, validationError(ErrInvalidFallbackMode, "fallback_sync_mode", string(normalizer.fallback))
	}
	return normalizer, nil
}

func (n *Normalizer) FallbackSyncMode() APISyncMode {
	return n.fallback
}

// ToAPICatalog pairs every declared stream with a generated default
// configuration.
func (n *Normalizer) ToAPICatalog(source Catalog) (APICatalog, error) {
	out := APICatalog{Streams: make([]StreamAndConfiguration, 0, len(source.Streams))}
	for index, stream := range source.Streams {
		apiStream, err := toAPIStream(index, "stream", stream)
		if err != nil {
			return APICatalog{}, err
		}
		out.Streams = append(out.Streams, StreamAndConfiguration{
			Stream: apiStream,
			Config: DefaultConfiguration(apiStream, n.fallback),
		})
	}
	n.logger.Debug("catalog built from streams", "streams", len(out.Streams))
	return out, nil
}

// ConfiguredToAPICatalog marks every configured stream as selected and keeps
// its sync mode and cursor. Aliases are regenerated from the stream name.
func (n *Normalizer) ConfiguredToAPICatalog(source ConfiguredCatalog) (APICatalog, error) {
	out := APICatalog{Streams: make([]StreamAndConfiguration, 0, len(source.Streams))}
	for index, configured := range source.Streams {
		apiStream, err := toAPIStream(index, "stream", configured.Stream)
		if err != nil {
			return APICatalog{}, err
		}
		mode, err := ToAPISyncMode(configured.SyncMode)
		if err != nil {
			return APICatalog{}, validationError(err, streamField(index, "sync_mode"), string(configured.SyncMode))
		}
		out.Streams = append(out.Streams, StreamAndConfiguration{
			Stream: apiStream,
			Config: StreamConfiguration{
				AliasName:   aliasFor(apiStream),
				SyncMode:    mode,
				CursorField: cloneStrings(configured.CursorField),
				Selected:    true,
			},
		})
	}
	n.logger.Debug("catalog built from configured catalog", "streams", len(out.Streams))
	return out, nil
}

// ToConfiguredCatalog keeps only selected streams. Alias and selection flags
// do not survive the conversion.
func (n *Normalizer) ToConfiguredCatalog(source APICatalog) (ConfiguredCatalog, error) {
	out := ConfiguredCatalog{Streams: make([]ConfiguredStream, 0, len(source.Streams))}
	skipped := 0
	for index, entry := range source.Streams {
		if !entry.Config.Selected {
			skipped++
			continue
		}
		stream, err := toProtocolStream(index, entry.Stream)
		if err != nil {
			return ConfiguredCatalog{}, err
		}
		mode, err := ToProtocolSyncMode(entry.Config.SyncMode)
		if err != nil {
			return ConfiguredCatalog{}, validationError(err, streamField(index, "config.syncMode"), string(entry.Config.SyncMode))
		}
		out.Streams = append(out.Streams, ConfiguredStream{
			Stream:      stream,
			SyncMode:    mode,
			CursorField: cloneStrings(entry.Config.CursorField),
		})
	}
	n.logger.Debug("configured catalog built", "streams", len(out.Streams), "unselected", skipped)
	return out, nil
}

// DefaultConfiguration selects the stream, uses its default cursor and its
// first supported sync mode, or fallback when none is declared.
func DefaultConfiguration(stream APIStream, fallback APISyncMode) StreamConfiguration {
	mode := fallback
	if len(stream.SupportedSyncModes) > 0 {
		mode = stream.SupportedSyncModes[0]
	}
	return StreamConfiguration{
		AliasName:   aliasFor(stream),
		SyncMode:    mode,
		CursorField: cloneStrings(stream.DefaultCursorField),
		Selected:    true,
	}
}

func aliasFor(stream APIStream) string {
	name := stream.Name
	if strings.TrimSpace(name) == "" {
		name = stream.Identity().Name()
	}
	return AlphanumericAndUnderscore(name)
}

func toAPIStream(index int, prefix string, stream Stream) (APIStream, error) {
	if stream.Identity().Empty() {
		return APIStream{}, validationError(ErrMissingStreamName, streamField(index, prefix+".name"), stream.Name)
	}
	modes, err := ToAPISyncModes(stream.SupportedSyncModes)
	if err != nil {
		return APIStream{}, validationError(err, streamField(index, prefix+".supported_sync_modes"), stream.SupportedSyncModes)
	}
	schema, err := cloneSchema(stream.JSONSchema)
	if err != nil {
		return APIStream{}, err
	}
	return APIStream{
		Name:                stream.Name,
		StreamName:          cloneStreamName(stream.StreamName),
		JSONSchema:          schema,
		SupportedSyncModes:  modes,
		SourceDefinedCursor: stream.SourceDefinedCursor,
		DefaultCursorField:  cloneStrings(stream.DefaultCursorField),
	}, nil
}

func toProtocolStream(index int, stream APIStream) (Stream, error) {
	if stream.Identity().Empty() {
		return Stream{}, validationError(ErrMissingStreamName, streamField(index, "stream.name"), stream.Name)
	}
	modes, err := ToProtocolSyncModes(stream.SupportedSyncModes)
	if err != nil {
		return Stream{}, validationError(err, streamField(index, "stream.supportedSyncModes"), stream.SupportedSyncModes)
	}
	schema, err := cloneSchema(stream.JSONSchema)
	if err != nil {
		return Stream{}, err
	}
	return Stream{
		Name:                stream.Name,
		StreamName:          cloneStreamName(stream.StreamName),
		JSONSchema:          schema,
		SupportedSyncModes:  modes,
		SourceDefinedCursor: stream.SourceDefinedCursor,
		DefaultCursorField:  cloneStrings(stream.DefaultCursorField),
	}, nil
}

func cloneSchema(schema map[string]any) (map[string]any, error) {
	if schema == nil {
		return nil, nil
	}
	return jsontree.Clone(schema)
}

func cloneStreamName(name *StreamName) *StreamName {
	if name == nil {
		return nil
	}
	copied := *name
	return &copied
}

func cloneStrings(values []string) []string {
	if values == nil {
		return nil
	}
	out := make([]string, len(values))
	copy(out, values)
	return out
}
