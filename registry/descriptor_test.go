package registry

import (
	"strings"
	"testing"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/descriptorpb"

	"github.com/pbweave/pbweave/schema"
)

func label(l descriptorpb.FieldDescriptorProto_Label) *descriptorpb.FieldDescriptorProto_Label {
	return &l
}

func fieldType(t descriptorpb.FieldDescriptorProto_Type) *descriptorpb.FieldDescriptorProto_Type {
	return &t
}

func marshalSet(t *testing.T, set *descriptorpb.FileDescriptorSet) []byte {
	t.Helper()
	data, err := proto.Marshal(set)
	if err != nil {
		t.Fatalf("marshal descriptor set: %v", err)
	}
	return data
}

func sampleDescriptorSet() *descriptorpb.FileDescriptorSet {
	return &descriptorpb.FileDescriptorSet{
		File: []*descriptorpb.FileDescriptorProto{
			{
				Name:    proto.String("profile.proto"),
				Package: proto.String("acct"),
				Syntax:  proto.String("proto3"),
				EnumType: []*descriptorpb.EnumDescriptorProto{
					{
						Name: proto.String("Tier"),
						Value: []*descriptorpb.EnumValueDescriptorProto{
							{Name: proto.String("TIER_FREE"), Number: proto.Int32(0)},
							{Name: proto.String("TIER_PAID"), Number: proto.Int32(1)},
						},
					},
				},
				MessageType: []*descriptorpb.DescriptorProto{
					{
						Name: proto.String("Profile"),
						Field: []*descriptorpb.FieldDescriptorProto{
							{
								Name:   proto.String("name"),
								Number: proto.Int32(1),
								Label:  label(descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL),
								Type:   fieldType(descriptorpb.FieldDescriptorProto_TYPE_STRING),
							},
							{
								Name:   proto.String("scores"),
								Number: proto.Int32(2),
								Label:  label(descriptorpb.FieldDescriptorProto_LABEL_REPEATED),
								Type:   fieldType(descriptorpb.FieldDescriptorProto_TYPE_INT32),
							},
							{
								Name:     proto.String("tier"),
								Number:   proto.Int32(3),
								Label:    label(descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL),
								Type:     fieldType(descriptorpb.FieldDescriptorProto_TYPE_ENUM),
								TypeName: proto.String(".acct.Tier"),
							},
							{
								Name:     proto.String("attrs"),
								Number:   proto.Int32(4),
								Label:    label(descriptorpb.FieldDescriptorProto_LABEL_REPEATED),
								Type:     fieldType(descriptorpb.FieldDescriptorProto_TYPE_MESSAGE),
								TypeName: proto.String(".acct.Profile.AttrsEntry"),
							},
							{
								Name:           proto.String("nickname"),
								Number:         proto.Int32(5),
								Label:          label(descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL),
								Type:           fieldType(descriptorpb.FieldDescriptorProto_TYPE_STRING),
								OneofIndex:     proto.Int32(0),
								Proto3Optional: proto.Bool(true),
							},
						},
						OneofDecl: []*descriptorpb.OneofDescriptorProto{
							{Name: proto.String("_nickname")},
						},
						NestedType: []*descriptorpb.DescriptorProto{
							{
								Name: proto.String("AttrsEntry"),
								Options: &descriptorpb.MessageOptions{
									MapEntry: proto.Bool(true),
								},
								Field: []*descriptorpb.FieldDescriptorProto{
									{
										Name:   proto.String("key"),
										Number: proto.Int32(1),
										Label:  label(descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL),
										Type:   fieldType(descriptorpb.FieldDescriptorProto_TYPE_STRING),
									},
									{
										Name:   proto.String("value"),
										Number: proto.Int32(2),
										Label:  label(descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL),
										Type:   fieldType(descriptorpb.FieldDescriptorProto_TYPE_INT64),
									},
								},
							},
						},
						ReservedRange: []*descriptorpb.DescriptorProto_ReservedRange{
							{Start: proto.Int32(100), End: proto.Int32(200)}, // end-exclusive
						},
					},
				},
			},
		},
	}
}

func TestLoadDescriptorSetBytes(t *testing.T) {
	r := NewRegistry()
	if err := r.LoadDescriptorSetBytes(marshalSet(t, sampleDescriptorSet())); err != nil {
		t.Fatalf("LoadDescriptorSetBytes: %v", err)
	}

	profile, err := r.GetMessage("acct.Profile")
	if err != nil {
		t.Fatalf("GetMessage: %v", err)
	}

	byName := make(map[string]*schema.Field)
	for _, f := range profile.Fields {
		byName[f.Name] = f
	}

	if byName["name"].Label != schema.LabelSingular {
		t.Errorf("proto3 singular label = %s", byName["name"].Label)
	}
	if !byName["scores"].Packed {
		t.Error("proto3 repeated int32 not packed by default")
	}
	if byName["tier"].Type.Kind != schema.KindEnum || byName["tier"].Type.EnumType != "acct.Tier" {
		t.Errorf("tier = %+v", byName["tier"].Type)
	}

	attrs := byName["attrs"]
	if attrs.Type.Kind != schema.KindMap {
		t.Fatalf("attrs kind = %s, want map", attrs.Type.Kind)
	}
	if attrs.Type.MapKey.PrimitiveType != schema.TypeString ||
		attrs.Type.MapValue.PrimitiveType != schema.TypeInt64 {
		t.Errorf("attrs map types = %s -> %s",
			attrs.Type.MapKey.PrimitiveType, attrs.Type.MapValue.PrimitiveType)
	}

	// proto3 optional surfaces as an explicit-presence field, not a oneof.
	nickname := byName["nickname"]
	if nickname == nil {
		t.Fatal("proto3 optional field missing from Fields")
	}
	if nickname.Label != schema.LabelOptional {
		t.Errorf("nickname label = %s", nickname.Label)
	}
	if len(profile.OneofGroups) != 0 {
		t.Errorf("synthetic oneof not dropped: %+v", profile.OneofGroups)
	}

	// Map entry nested types are folded into the map field.
	for _, nested := range profile.NestedTypes {
		if nested.Name == "AttrsEntry" {
			t.Error("map entry message kept as nested type")
		}
	}

	// Reserved ranges convert from end-exclusive to inclusive.
	if len(profile.ReservedRanges) != 1 {
		t.Fatalf("reserved ranges = %+v", profile.ReservedRanges)
	}
	rr := profile.ReservedRanges[0]
	if rr.Start != 100 || rr.End != 199 {
		t.Errorf("reserved range = [%d, %d], want [100, 199]", rr.Start, rr.End)
	}

	if _, err := r.GetEnum("acct.Tier"); err != nil {
		t.Errorf("GetEnum: %v", err)
	}
}

func TestLoadDescriptorSetRejectsGroups(t *testing.T) {
	set := &descriptorpb.FileDescriptorSet{
		File: []*descriptorpb.FileDescriptorProto{
			{
				Name:    proto.String("old.proto"),
				Package: proto.String("old"),
				Syntax:  proto.String("proto2"),
				MessageType: []*descriptorpb.DescriptorProto{
					{
						Name: proto.String("HasGroup"),
						Field: []*descriptorpb.FieldDescriptorProto{
							{
								Name:     proto.String("extras"),
								Number:   proto.Int32(1),
								Label:    label(descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL),
								Type:     fieldType(descriptorpb.FieldDescriptorProto_TYPE_GROUP),
								TypeName: proto.String(".old.Extras"),
							},
						},
					},
				},
			},
		},
	}

	r := NewRegistry()
	err := r.LoadDescriptorSetBytes(marshalSet(t, set))
	if err == nil || !strings.Contains(err.Error(), "group") {
		t.Fatalf("got %v, want group rejection", err)
	}
}

func TestLoadDescriptorSetGarbage(t *testing.T) {
	r := NewRegistry()
	if err := r.LoadDescriptorSetBytes([]byte("not a descriptor set")); err == nil {
		t.Fatal("garbage accepted")
	}
}

func TestProto2DescriptorLabels(t *testing.T) {
	set := &descriptorpb.FileDescriptorSet{
		File: []*descriptorpb.FileDescriptorProto{
			{
				Name:    proto.String("req.proto"),
				Package: proto.String("req"),
				MessageType: []*descriptorpb.DescriptorProto{
					{
						Name: proto.String("Rec"),
						Field: []*descriptorpb.FieldDescriptorProto{
							{
								Name:   proto.String("id"),
								Number: proto.Int32(1),
								Label:  label(descriptorpb.FieldDescriptorProto_LABEL_REQUIRED),
								Type:   fieldType(descriptorpb.FieldDescriptorProto_TYPE_STRING),
							},
							{
								Name:   proto.String("note"),
								Number: proto.Int32(2),
								Label:  label(descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL),
								Type:   fieldType(descriptorpb.FieldDescriptorProto_TYPE_STRING),
							},
						},
					},
				},
			},
		},
	}

	r := NewRegistry()
	if err := r.LoadDescriptorSetBytes(marshalSet(t, set)); err != nil {
		t.Fatalf("LoadDescriptorSetBytes: %v", err)
	}
	rec, err := r.GetMessage("req.Rec")
	if err != nil {
		t.Fatalf("GetMessage: %v", err)
	}
	if rec.Fields[0].Label != schema.LabelRequired {
		t.Errorf("id label = %s", rec.Fields[0].Label)
	}
	// Missing syntax means proto2; optional stays explicit presence.
	if rec.Fields[1].Label != schema.LabelOptional {
		t.Errorf("note label = %s", rec.Fields[1].Label)
	}
}
