package registry

import (
	"fmt"
	"os"
	"strings"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/descriptorpb"

	"github.com/pbweave/pbweave/schema"
)

// LoadDescriptorSet reads a compiled FileDescriptorSet (the output of
// protoc --descriptor_set_out) into the schema graph. This is the boundary
// for build pipelines that never touch .proto text.
func (r *Registry) LoadDescriptorSet(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read descriptor set: %w", err)
	}
	return r.LoadDescriptorSetBytes(data)
}

// LoadDescriptorSetBytes loads a serialized FileDescriptorSet.
func (r *Registry) LoadDescriptorSetBytes(data []byte) error {
	var set descriptorpb.FileDescriptorSet
	if err := proto.Unmarshal(data, &set); err != nil {
		return fmt.Errorf("failed to unmarshal descriptor set: %w", err)
	}

	for _, fd := range set.GetFile() {
		file, err := fileFromDescriptor(fd)
		if err != nil {
			return fmt.Errorf("%s: %w", fd.GetName(), err)
		}
		r.repo.Files[fd.GetName()] = file
	}

	return r.buildSymbolTable()
}

func fileFromDescriptor(fd *descriptorpb.FileDescriptorProto) (*schema.File, error) {
	syntax := fd.GetSyntax()
	if syntax == "" {
		syntax = "proto2"
	}

	file := &schema.File{
		Name:    fd.GetName(),
		Package: fd.GetPackage(),
		Syntax:  syntax,
	}
	for _, dep := range fd.GetDependency() {
		file.Imports = append(file.Imports, &schema.Import{Path: dep})
	}
	for _, md := range fd.GetMessageType() {
		msg, err := messageFromDescriptor(md, syntax)
		if err != nil {
			return nil, err
		}
		file.Messages = append(file.Messages, msg)
	}
	for _, ed := range fd.GetEnumType() {
		file.Enums = append(file.Enums, enumFromDescriptor(ed))
	}
	for _, sd := range fd.GetService() {
		file.Services = append(file.Services, serviceFromDescriptor(sd))
	}
	return file, nil
}

func messageFromDescriptor(md *descriptorpb.DescriptorProto, syntax string) (*schema.Message, error) {
	msg := &schema.Message{
		Name:     md.GetName(),
		MapEntry: md.GetOptions().GetMapEntry(),
	}

	// Nested types first: map entry detection for this message's own
	// fields needs them, and their own conversion is independent.
	mapEntries := make(map[string]*descriptorpb.DescriptorProto)
	for _, nested := range md.GetNestedType() {
		if nested.GetOptions().GetMapEntry() {
			mapEntries[nested.GetName()] = nested
			continue
		}
		converted, err := messageFromDescriptor(nested, syntax)
		if err != nil {
			return nil, err
		}
		msg.NestedTypes = append(msg.NestedTypes, converted)
	}
	for _, nested := range md.GetEnumType() {
		msg.NestedEnums = append(msg.NestedEnums, enumFromDescriptor(nested))
	}

	for _, od := range md.GetOneofDecl() {
		msg.OneofGroups = append(msg.OneofGroups, &schema.Oneof{Name: od.GetName()})
	}

	for _, fdp := range md.GetField() {
		field, err := fieldFromDescriptor(fdp, syntax, mapEntries)
		if err != nil {
			return nil, fmt.Errorf("message %s: %w", md.GetName(), err)
		}
		// proto3 optional is modeled as a synthetic single-member oneof in
		// descriptors; surface it as a plain explicit-presence field.
		if fdp.OneofIndex != nil && !fdp.GetProto3Optional() {
			idx := fdp.GetOneofIndex()
			if int(idx) >= len(msg.OneofGroups) {
				return nil, fmt.Errorf("message %s: field %s references oneof %d out of range",
					md.GetName(), field.Name, idx)
			}
			field.OneofIndex = idx
			group := msg.OneofGroups[idx]
			group.Fields = append(group.Fields, field)
			continue
		}
		if fdp.GetProto3Optional() {
			field.Label = schema.LabelOptional
		}
		msg.Fields = append(msg.Fields, field)
	}

	// Drop synthetic oneofs left empty by the proto3-optional rewrite.
	groups := msg.OneofGroups[:0]
	for _, g := range msg.OneofGroups {
		if len(g.Fields) > 0 {
			groups = append(groups, g)
		}
	}
	msg.OneofGroups = groups
	for i, g := range msg.OneofGroups {
		for _, f := range g.Fields {
			f.OneofIndex = int32(i)
		}
	}

	for _, rr := range md.GetReservedRange() {
		// Descriptor reserved ranges are end-exclusive.
		msg.ReservedRanges = append(msg.ReservedRanges, &schema.ReservedRange{
			Start: rr.GetStart(),
			End:   rr.GetEnd() - 1,
		})
	}

	return msg, nil
}

var descriptorPrimitives = map[descriptorpb.FieldDescriptorProto_Type]schema.PrimitiveType{
	descriptorpb.FieldDescriptorProto_TYPE_DOUBLE:   schema.TypeDouble,
	descriptorpb.FieldDescriptorProto_TYPE_FLOAT:    schema.TypeFloat,
	descriptorpb.FieldDescriptorProto_TYPE_INT64:    schema.TypeInt64,
	descriptorpb.FieldDescriptorProto_TYPE_UINT64:   schema.TypeUint64,
	descriptorpb.FieldDescriptorProto_TYPE_INT32:    schema.TypeInt32,
	descriptorpb.FieldDescriptorProto_TYPE_FIXED64:  schema.TypeFixed64,
	descriptorpb.FieldDescriptorProto_TYPE_FIXED32:  schema.TypeFixed32,
	descriptorpb.FieldDescriptorProto_TYPE_BOOL:     schema.TypeBool,
	descriptorpb.FieldDescriptorProto_TYPE_STRING:   schema.TypeString,
	descriptorpb.FieldDescriptorProto_TYPE_BYTES:    schema.TypeBytes,
	descriptorpb.FieldDescriptorProto_TYPE_UINT32:   schema.TypeUint32,
	descriptorpb.FieldDescriptorProto_TYPE_SFIXED32: schema.TypeSfixed32,
	descriptorpb.FieldDescriptorProto_TYPE_SFIXED64: schema.TypeSfixed64,
	descriptorpb.FieldDescriptorProto_TYPE_SINT32:   schema.TypeSint32,
	descriptorpb.FieldDescriptorProto_TYPE_SINT64:   schema.TypeSint64,
}

func fieldFromDescriptor(fdp *descriptorpb.FieldDescriptorProto, syntax string, mapEntries map[string]*descriptorpb.DescriptorProto) (*schema.Field, error) {
	field := &schema.Field{
		Name:       fdp.GetName(),
		Number:     fdp.GetNumber(),
		OneofIndex: -1,
	}

	switch fdp.GetLabel() {
	case descriptorpb.FieldDescriptorProto_LABEL_REPEATED:
		field.Label = schema.LabelRepeated
	case descriptorpb.FieldDescriptorProto_LABEL_REQUIRED:
		field.Label = schema.LabelRequired
	default:
		if syntax == "proto2" {
			field.Label = schema.LabelOptional
		} else {
			field.Label = schema.LabelSingular
		}
	}

	switch typ := fdp.GetType(); typ {
	case descriptorpb.FieldDescriptorProto_TYPE_MESSAGE:
		name := strings.TrimPrefix(fdp.GetTypeName(), ".")
		if entry, ok := mapEntries[shortName(name)]; ok {
			key, err := fieldFromDescriptor(entry.GetField()[0], syntax, nil)
			if err != nil {
				return nil, err
			}
			value, err := fieldFromDescriptor(entry.GetField()[1], syntax, nil)
			if err != nil {
				return nil, err
			}
			field.Label = schema.LabelSingular
			field.Type = schema.FieldType{
				Kind:     schema.KindMap,
				MapKey:   &key.Type,
				MapValue: &value.Type,
			}
			return field, nil
		}
		field.Type = schema.FieldType{Kind: schema.KindMessage, MessageType: name}
	case descriptorpb.FieldDescriptorProto_TYPE_ENUM:
		field.Type = schema.FieldType{
			Kind:     schema.KindEnum,
			EnumType: strings.TrimPrefix(fdp.GetTypeName(), "."),
		}
	case descriptorpb.FieldDescriptorProto_TYPE_GROUP:
		return nil, fmt.Errorf("field %s: legacy group fields are not supported", fdp.GetName())
	default:
		p, ok := descriptorPrimitives[typ]
		if !ok {
			return nil, fmt.Errorf("field %s: unsupported type %v", fdp.GetName(), typ)
		}
		field.Type = schema.FieldType{Kind: schema.KindPrimitive, PrimitiveType: p}
	}

	if field.Label == schema.LabelRepeated && packable(field.Type) {
		if opts := fdp.GetOptions(); opts != nil && opts.Packed != nil {
			field.Packed = opts.GetPacked()
		} else {
			field.Packed = syntax == "proto3"
		}
	}

	return field, nil
}

func packable(t schema.FieldType) bool {
	switch t.Kind {
	case schema.KindEnum:
		return true
	case schema.KindPrimitive:
		return schema.IsPackedType(t.PrimitiveType)
	}
	return false
}

func shortName(fullName string) string {
	if i := strings.LastIndex(fullName, "."); i >= 0 {
		return fullName[i+1:]
	}
	return fullName
}

func enumFromDescriptor(ed *descriptorpb.EnumDescriptorProto) *schema.Enum {
	enum := &schema.Enum{
		Name:       ed.GetName(),
		AllowAlias: ed.GetOptions().GetAllowAlias(),
	}
	for _, v := range ed.GetValue() {
		enum.Values = append(enum.Values, &schema.EnumValue{
			Name:   v.GetName(),
			Number: v.GetNumber(),
		})
	}
	return enum
}

func serviceFromDescriptor(sd *descriptorpb.ServiceDescriptorProto) *schema.Service {
	service := &schema.Service{Name: sd.GetName()}
	for _, m := range sd.GetMethod() {
		service.Methods = append(service.Methods, &schema.Method{
			Name:            m.GetName(),
			InputType:       strings.TrimPrefix(m.GetInputType(), "."),
			OutputType:      strings.TrimPrefix(m.GetOutputType(), "."),
			ClientStreaming: m.GetClientStreaming(),
			ServerStreaming: m.GetServerStreaming(),
		})
	}
	return service
}
