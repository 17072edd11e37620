package compat

import (
	"strings"
	"testing"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/descriptorpb"

	"github.com/pbweave/pbweave/wire"
)

func newTestChecker(t *testing.T) *Checker {
	t.Helper()
	set := &descriptorpb.FileDescriptorSet{
		File: []*descriptorpb.FileDescriptorProto{
			{
				Name:    proto.String("ping.proto"),
				Package: proto.String("demo"),
				Syntax:  proto.String("proto3"),
				MessageType: []*descriptorpb.DescriptorProto{
					{
						Name: proto.String("Ping"),
						Field: []*descriptorpb.FieldDescriptorProto{
							{
								Name:     proto.String("token"),
								Number:   proto.Int32(1),
								Label:    descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL.Enum(),
								Type:     descriptorpb.FieldDescriptorProto_TYPE_STRING.Enum(),
								JsonName: proto.String("token"),
							},
							{
								Name:     proto.String("seq"),
								Number:   proto.Int32(2),
								Label:    descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL.Enum(),
								Type:     descriptorpb.FieldDescriptorProto_TYPE_UINT64.Enum(),
								JsonName: proto.String("seq"),
							},
						},
					},
				},
			},
		},
	}
	data, err := proto.Marshal(set)
	if err != nil {
		t.Fatalf("marshal descriptor set: %v", err)
	}
	c, err := NewChecker(data)
	if err != nil {
		t.Fatalf("NewChecker: %v", err)
	}
	return c
}

func withChecksEnabled(t *testing.T) {
	t.Helper()
	prev := config
	SetConfig(Config{Enabled: true})
	t.Cleanup(func() { SetConfig(prev) })
}

func pingBytes(token string, seq uint64) []byte {
	e := wire.NewEncoder()
	if token != "" {
		e.EncodeTag(1, wire.WireBytes)
		e.EncodeString(token)
	}
	if seq != 0 {
		e.EncodeTag(2, wire.WireVarint)
		e.EncodeVarint(seq)
	}
	return e.Bytes()
}

func TestVerifyRoundTrip(t *testing.T) {
	withChecksEnabled(t)
	c := newTestChecker(t)

	data := pingBytes("abc", 42)
	if err := c.VerifyParses("demo.Ping", data); err != nil {
		t.Errorf("VerifyParses: %v", err)
	}
	if err := c.VerifyRoundTrip("demo.Ping", data); err != nil {
		t.Errorf("VerifyRoundTrip: %v", err)
	}
}

func TestVerifyRejectsMalformed(t *testing.T) {
	withChecksEnabled(t)
	c := newTestChecker(t)

	// Length-delimited field whose declared length overruns the buffer.
	bad := []byte{0x0a, 0x20, 'x'}
	if err := c.VerifyParses("demo.Ping", bad); err == nil {
		t.Error("reference runtime accepted malformed bytes")
	}
}

func TestVerifyEqual(t *testing.T) {
	withChecksEnabled(t)
	c := newTestChecker(t)

	// Same logical message, fields emitted in different order.
	a := pingBytes("abc", 42)
	e := wire.NewEncoder()
	e.EncodeTag(2, wire.WireVarint)
	e.EncodeVarint(42)
	e.EncodeTag(1, wire.WireBytes)
	e.EncodeString("abc")
	if err := c.VerifyEqual("demo.Ping", a, e.Bytes()); err != nil {
		t.Errorf("VerifyEqual: %v", err)
	}

	if err := c.VerifyEqual("demo.Ping", a, pingBytes("other", 42)); err == nil {
		t.Error("different messages reported equal")
	}
}

func TestUnknownMessageName(t *testing.T) {
	withChecksEnabled(t)
	c := newTestChecker(t)
	err := c.VerifyParses("demo.Nope", nil)
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("got %v, want not-found error", err)
	}
}

func TestDisabledChecksAreNoOps(t *testing.T) {
	prev := config
	SetConfig(Config{})
	t.Cleanup(func() { SetConfig(prev) })

	c := newTestChecker(t)
	if err := c.VerifyParses("demo.Ping", []byte{0xff}); err != nil {
		t.Errorf("disabled check returned %v", err)
	}
	if Enabled() {
		t.Error("Enabled() = true after SetConfig(Config{})")
	}
}
