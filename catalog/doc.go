// Package catalog converts between the connector protocol view of a stream
// catalog and the API view that pairs every stream with user-editable sync
// settings.
//
// Conversions preserve stream order and the stream identity encoding (a bare
// legacy name or a namespace/name descriptor) in both directions. Schemas and
// cursor paths are deep-copied, so callers may mutate results freely.
package catalog
