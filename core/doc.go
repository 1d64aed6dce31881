// Package core contains the connector configuration domain: connector
// definitions, scoped credential parameter sets and the injection engine that
// layers them onto user configuration. Storage and transport adapters depend
// on this package; core must not depend on them.
package core
