// Package compat verifies pbweave output against the reference protobuf
// runtime. A Checker parses encoded bytes with dynamicpb and confirms the
// reference implementation both accepts them and round-trips them to the
// same semantic message. Checks are opt-in: test harnesses enable them via
// configuration or the PBWEAVE_CROSSCHECK environment variable.
package compat

import (
	"bytes"
	"fmt"
	"os"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/dynamicpb"
)

// Config controls optional cross-check behaviors.
type Config struct {
	// Enabled turns cross-checking on. When false every Verify* call
	// returns nil without doing work, so checks can stay wired into hot
	// paths of test code.
	Enabled bool

	// RequireDeterministic additionally re-encodes the parsed message with
	// the reference runtime's deterministic marshaler and compares sizes.
	// Byte-for-byte equality is not required since field emission order is
	// not canonicalized across implementations.
	RequireDeterministic bool
}

var config = Config{}

// SetConfig replaces the global cross-check configuration.
func SetConfig(c Config) { config = c }

// Enabled reports whether cross-checks currently run.
func Enabled() bool { return config.Enabled }

func init() {
	if v := os.Getenv("PBWEAVE_CROSSCHECK"); v == "1" || v == "true" {
		config.Enabled = true
	}
	if v := os.Getenv("PBWEAVE_CROSSCHECK_DETERMINISTIC"); v == "1" || v == "true" {
		config.RequireDeterministic = true
	}
}

// Checker resolves message types out of a compiled descriptor set and
// validates pbweave encodings against them.
type Checker struct {
	files *protoregistry.Files
}

// NewChecker builds a checker from a serialized FileDescriptorSet.
func NewChecker(descriptorSet []byte) (*Checker, error) {
	var set descriptorpb.FileDescriptorSet
	if err := proto.Unmarshal(descriptorSet, &set); err != nil {
		return nil, fmt.Errorf("failed to unmarshal descriptor set: %w", err)
	}
	files, err := protodesc.NewFiles(&set)
	if err != nil {
		return nil, fmt.Errorf("failed to build descriptor files: %w", err)
	}
	return &Checker{files: files}, nil
}

// NewCheckerFromFile reads a descriptor set from disk.
func NewCheckerFromFile(path string) (*Checker, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read descriptor set: %w", err)
	}
	return NewChecker(data)
}

func (c *Checker) messageType(fullName string) (protoreflect.MessageDescriptor, error) {
	desc, err := c.files.FindDescriptorByName(protoreflect.FullName(fullName))
	if err != nil {
		return nil, fmt.Errorf("message %s not found in descriptor set: %w", fullName, err)
	}
	md, ok := desc.(protoreflect.MessageDescriptor)
	if !ok {
		return nil, fmt.Errorf("%s is not a message", fullName)
	}
	return md, nil
}

// VerifyParses checks that the reference runtime accepts the encoding.
func (c *Checker) VerifyParses(fullName string, data []byte) error {
	if !config.Enabled {
		return nil
	}
	md, err := c.messageType(fullName)
	if err != nil {
		return err
	}
	msg := dynamicpb.NewMessage(md)
	if err := proto.Unmarshal(data, msg); err != nil {
		return fmt.Errorf("reference runtime rejected %s encoding: %w", fullName, err)
	}
	return nil
}

// VerifyRoundTrip checks that parsing the encoding with the reference
// runtime and re-encoding it yields a message the runtime considers equal
// to the original. This catches size miscalculations, wrong wire types,
// and dropped fields without pinning exact byte order.
func (c *Checker) VerifyRoundTrip(fullName string, data []byte) error {
	if !config.Enabled {
		return nil
	}
	md, err := c.messageType(fullName)
	if err != nil {
		return err
	}

	first := dynamicpb.NewMessage(md)
	if err := proto.Unmarshal(data, first); err != nil {
		return fmt.Errorf("reference runtime rejected %s encoding: %w", fullName, err)
	}

	opts := proto.MarshalOptions{Deterministic: true}
	reencoded, err := opts.Marshal(first)
	if err != nil {
		return fmt.Errorf("reference runtime failed to re-encode %s: %w", fullName, err)
	}

	second := dynamicpb.NewMessage(md)
	if err := proto.Unmarshal(reencoded, second); err != nil {
		return fmt.Errorf("reference runtime failed to reparse %s: %w", fullName, err)
	}
	if !proto.Equal(first, second) {
		return fmt.Errorf("%s diverged through reference round trip", fullName)
	}

	if config.RequireDeterministic && len(reencoded) != len(data) {
		return fmt.Errorf("%s encoding is %d bytes, reference runtime produced %d",
			fullName, len(data), len(reencoded))
	}
	return nil
}

// VerifyEqual checks that two encodings of the same message type decode to
// equal messages under the reference runtime. Useful for comparing packed
// against unpacked renditions of the same logical value.
func (c *Checker) VerifyEqual(fullName string, a, b []byte) error {
	if !config.Enabled {
		return nil
	}
	if bytes.Equal(a, b) {
		return nil
	}
	md, err := c.messageType(fullName)
	if err != nil {
		return err
	}
	ma := dynamicpb.NewMessage(md)
	if err := proto.Unmarshal(a, ma); err != nil {
		return fmt.Errorf("reference runtime rejected first %s encoding: %w", fullName, err)
	}
	mb := dynamicpb.NewMessage(md)
	if err := proto.Unmarshal(b, mb); err != nil {
		return fmt.Errorf("reference runtime rejected second %s encoding: %w", fullName, err)
	}
	if !proto.Equal(ma, mb) {
		return fmt.Errorf("%s encodings decode to different messages", fullName)
	}
	return nil
}
