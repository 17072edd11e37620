// Package pbweave is a protobuf serialization runtime for generated code.
// Generated message types implement wire.Message and round-trip through
// Marshal and Unmarshal; the registry loads schemas for the generator and
// for tooling that inspects them.
package pbweave

import (
	"github.com/pbweave/pbweave/registry"
	"github.com/pbweave/pbweave/wire"
)

// Message is the contract every generated type satisfies.
type Message = wire.Message

// Marshal encodes a message to protobuf wire bytes. The output buffer is
// sized exactly from Size, so encoding never reallocates.
func Marshal(m Message) []byte {
	return wire.Marshal(m)
}

// Unmarshal decodes protobuf wire bytes into a message. Unknown fields are
// preserved on the message and re-emitted by Marshal; trailing garbage
// after the last field is an error.
func Unmarshal(data []byte, m Message) error {
	return wire.Unmarshal(data, m)
}

// Pbweave bundles a schema registry for callers that load schemas at
// runtime for inspection or generation.
type Pbweave struct {
	registry *registry.Registry
}

// New creates an instance with an empty registry.
func New() *Pbweave {
	return &Pbweave{registry: registry.NewRegistry()}
}

// LoadSchema loads a .proto file or a directory of them.
func (p *Pbweave) LoadSchema(path string) error {
	return p.registry.LoadSchema(path)
}

// LoadDescriptorSet loads a compiled FileDescriptorSet.
func (p *Pbweave) LoadDescriptorSet(path string) error {
	return p.registry.LoadDescriptorSet(path)
}

// ===== REGISTRY ACCESS =====

func (p *Pbweave) Registry() *registry.Registry { return p.registry }
func (p *Pbweave) ListMessages() []string       { return p.registry.ListMessages() }
func (p *Pbweave) ListEnums() []string          { return p.registry.ListEnums() }
func (p *Pbweave) ListServices() []string       { return p.registry.ListServices() }
