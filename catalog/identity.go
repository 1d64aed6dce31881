package catalog

import "strings"

type IdentityKind string

const (
	IdentityLegacy     IdentityKind = "legacy"
	IdentityDescriptor IdentityKind = "descriptor"
)

// StreamIdentity is either a legacy bare name or a namespace/name descriptor.
type StreamIdentity struct {
	kind      IdentityKind
	namespace string
	name      string
}

func LegacyIdentity(name string) StreamIdentity {
	return StreamIdentity{kind: IdentityLegacy, name: strings.TrimSpace(name)}
}

func DescriptorIdentity(namespace, name string) StreamIdentity {
	return StreamIdentity{
		kind:      IdentityDescriptor,
		namespace: strings.TrimSpace(namespace),
		name:      strings.TrimSpace(name),
	}
}

// IdentityOf prefers the descriptor when present. A descriptor without a name
// borrows the legacy name.
func IdentityOf(name string, descriptor *StreamName) StreamIdentity {
	if descriptor == nil {
		return LegacyIdentity(name)
	}
	descriptorName := descriptor.Name
	if strings.TrimSpace(descriptorName) == "" {
		descriptorName = name
	}
	return DescriptorIdentity(descriptor.Namespace, descriptorName)
}

func (i StreamIdentity) Kind() IdentityKind {
	return i.kind
}

func (i StreamIdentity) IsLegacy() bool {
	return i.kind != IdentityDescriptor
}

func (i StreamIdentity) Namespace() string {
	return i.namespace
}

func (i StreamIdentity) Name() string {
	return i.name
}

// DisplayName renders namespace.name, or just name without a namespace.
func (i StreamIdentity) DisplayName() string {
	if i.namespace == "" {
		return i.name
	}
	return i.namespace + "." + i.name
}

// Descriptor returns the descriptor form, or nil for legacy identities.
func (i StreamIdentity) Descriptor() *StreamName {
	if i.IsLegacy() {
		return nil
	}
	return &StreamName{Namespace: i.namespace, Name: i.name}
}

func (i StreamIdentity) Empty() bool {
	return i.name == ""
}
