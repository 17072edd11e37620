package registry

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	protoparser "github.com/yoheimuta/go-protoparser/v4"
	"github.com/yoheimuta/go-protoparser/v4/parser"

	"github.com/pbweave/pbweave/schema"
)

// LoadSchema parses the .proto file or directory at protoPath into the
// schema graph. Imports are resolved against ProtoDirectories (the
// directory containing protoPath is always searched first); the well-known
// google/protobuf imports are skipped. The whole load fails on the first
// parse or validation error.
func (r *Registry) LoadSchema(protoPath string) error {
	info, err := os.Stat(protoPath)
	if err != nil {
		return fmt.Errorf("path does not exist: %w", err)
	}

	var roots []string
	if !info.IsDir() {
		if !strings.HasSuffix(protoPath, ".proto") {
			return fmt.Errorf("file %s is not a .proto file", protoPath)
		}
		roots = append(roots, protoPath)
		r.ProtoDirectories = append(r.ProtoDirectories, filepath.Dir(protoPath))
	} else {
		r.ProtoDirectories = append(r.ProtoDirectories, protoPath)
		err = filepath.WalkDir(protoPath, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !strings.HasSuffix(p, ".proto") {
				return nil
			}
			roots = append(roots, p)
			return nil
		})
		if err != nil {
			return fmt.Errorf("failed to walk directory: %w", err)
		}
	}

	visited := make(map[string]struct{})
	for _, root := range roots {
		if err := r.loadProtoFile(root, visited); err != nil {
			return err
		}
	}

	return r.buildSymbolTable()
}

// loadProtoFile parses one file and DFS-loads its imports.
func (r *Registry) loadProtoFile(protoFile string, visited map[string]struct{}) error {
	if _, ok := visited[protoFile]; ok {
		return nil
	}
	visited[protoFile] = struct{}{}

	content, err := os.ReadFile(protoFile)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	parsed, err := protoparser.Parse(bytes.NewBuffer(content))
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", protoFile, err)
	}

	file, err := buildFile(filepath.Base(protoFile), parsed)
	if err != nil {
		return fmt.Errorf("%s: %w", protoFile, err)
	}
	r.repo.Files[protoFile] = file

	for _, imp := range file.Imports {
		if strings.Contains(imp.Path, "google/protobuf") {
			continue
		}
		resolved, err := r.findProto(imp.Path)
		if err != nil {
			return fmt.Errorf("%s: import %q: %w", protoFile, imp.Path, err)
		}
		if err := r.loadProtoFile(resolved, visited); err != nil {
			return err
		}
	}
	return nil
}

// findProto locates an import path inside the configured proto directories.
func (r *Registry) findProto(importPath string) (string, error) {
	for _, dir := range r.ProtoDirectories {
		full := path.Join(dir, importPath)
		if _, err := os.Stat(full); err == nil {
			return full, nil
		}
	}
	return "", fmt.Errorf("not found in any proto directory")
}

// buildFile converts a parsed proto AST into a schema.File.
func buildFile(name string, parsed *parser.Proto) (*schema.File, error) {
	file := &schema.File{
		Name:   name,
		Syntax: "proto2",
	}
	if parsed.Syntax != nil && strings.Contains(parsed.Syntax.ProtobufVersion, "proto3") {
		file.Syntax = "proto3"
	}

	for _, body := range parsed.ProtoBody {
		switch b := body.(type) {
		case *parser.Package:
			file.Package = b.Name
		case *parser.Import:
			file.Imports = append(file.Imports, &schema.Import{
				Path:   strings.Trim(b.Location, `"`),
				Public: b.Modifier == parser.ImportModifierPublic,
				Weak:   b.Modifier == parser.ImportModifierWeak,
			})
		case *parser.Message:
			msg, err := buildMessage(b, file.Syntax)
			if err != nil {
				return nil, err
			}
			file.Messages = append(file.Messages, msg)
		case *parser.Enum:
			enum, err := buildEnum(b)
			if err != nil {
				return nil, err
			}
			file.Enums = append(file.Enums, enum)
		case *parser.Service:
			file.Services = append(file.Services, buildService(b))
		}
	}
	return file, nil
}

// buildMessage converts a parsed message, recursing into nested types.
func buildMessage(pm *parser.Message, syntax string) (*schema.Message, error) {
	msg := &schema.Message{Name: pm.MessageName}

	for _, body := range pm.MessageBody {
		switch b := body.(type) {
		case *parser.Field:
			field, err := buildField(b, syntax)
			if err != nil {
				return nil, fmt.Errorf("message %s: %w", pm.MessageName, err)
			}
			msg.Fields = append(msg.Fields, field)
		case *parser.MapField:
			field, err := buildMapField(b)
			if err != nil {
				return nil, fmt.Errorf("message %s: %w", pm.MessageName, err)
			}
			msg.Fields = append(msg.Fields, field)
		case *parser.Oneof:
			oneof, err := buildOneof(b, int32(len(msg.OneofGroups)))
			if err != nil {
				return nil, fmt.Errorf("message %s: %w", pm.MessageName, err)
			}
			msg.OneofGroups = append(msg.OneofGroups, oneof)
		case *parser.Message:
			nested, err := buildMessage(b, syntax)
			if err != nil {
				return nil, err
			}
			msg.NestedTypes = append(msg.NestedTypes, nested)
		case *parser.Enum:
			nested, err := buildEnum(b)
			if err != nil {
				return nil, err
			}
			msg.NestedEnums = append(msg.NestedEnums, nested)
		case *parser.Reserved:
			ranges, err := buildReservedRanges(b)
			if err != nil {
				return nil, fmt.Errorf("message %s: %w", pm.MessageName, err)
			}
			msg.ReservedRanges = append(msg.ReservedRanges, ranges...)
		}
	}
	return msg, nil
}

// buildField converts one plain (non-map, non-oneof) field.
func buildField(pf *parser.Field, syntax string) (*schema.Field, error) {
	number, err := parseFieldNumber(pf.FieldNumber)
	if err != nil {
		return nil, fmt.Errorf("field %s: %w", pf.FieldName, err)
	}

	label := schema.LabelSingular
	switch {
	case pf.IsRepeated:
		label = schema.LabelRepeated
	case pf.IsRequired:
		label = schema.LabelRequired
	case pf.IsOptional:
		label = schema.LabelOptional
	case syntax == "proto2":
		label = schema.LabelOptional
	}

	fieldType := typeFromName(pf.Type)
	field := &schema.Field{
		Name:       pf.FieldName,
		Number:     number,
		Label:      label,
		Type:       fieldType,
		OneofIndex: -1,
	}
	field.Packed = packedFor(field, syntax, pf.FieldOptions)
	return field, nil
}

// buildMapField converts a map<K, V> field.
func buildMapField(pf *parser.MapField) (*schema.Field, error) {
	number, err := parseFieldNumber(pf.FieldNumber)
	if err != nil {
		return nil, fmt.Errorf("map field %s: %w", pf.MapName, err)
	}

	keyType := typeFromName(pf.KeyType)
	valueType := typeFromName(pf.Type)
	return &schema.Field{
		Name:   pf.MapName,
		Number: number,
		Label:  schema.LabelSingular,
		Type: schema.FieldType{
			Kind:     schema.KindMap,
			MapKey:   &keyType,
			MapValue: &valueType,
		},
		OneofIndex: -1,
	}, nil
}

// buildOneof converts a oneof group. Members carry the group's index so the
// generator can tell them apart from plain fields.
func buildOneof(po *parser.Oneof, index int32) (*schema.Oneof, error) {
	oneof := &schema.Oneof{Name: po.OneofName}
	for _, pf := range po.OneofFields {
		number, err := parseFieldNumber(pf.FieldNumber)
		if err != nil {
			return nil, fmt.Errorf("oneof %s, field %s: %w", po.OneofName, pf.FieldName, err)
		}
		oneof.Fields = append(oneof.Fields, &schema.Field{
			Name:       pf.FieldName,
			Number:     number,
			Label:      schema.LabelSingular,
			Type:       typeFromName(pf.Type),
			OneofIndex: index,
		})
	}
	return oneof, nil
}

// buildEnum converts an enum definition.
func buildEnum(pe *parser.Enum) (*schema.Enum, error) {
	enum := &schema.Enum{Name: pe.EnumName}
	for _, body := range pe.EnumBody {
		switch b := body.(type) {
		case *parser.EnumField:
			number, err := strconv.ParseInt(b.Number, 10, 32)
			if err != nil {
				return nil, fmt.Errorf("enum %s, value %s: bad number %q", pe.EnumName, b.Ident, b.Number)
			}
			enum.Values = append(enum.Values, &schema.EnumValue{
				Name:   b.Ident,
				Number: int32(number),
			})
		case *parser.Option:
			if b.OptionName == "allow_alias" && b.Constant == "true" {
				enum.AllowAlias = true
			}
		}
	}
	return enum, nil
}

// buildService converts a service definition.
func buildService(ps *parser.Service) *schema.Service {
	service := &schema.Service{Name: ps.ServiceName}
	for _, body := range ps.ServiceBody {
		rpc, ok := body.(*parser.RPC)
		if !ok {
			continue
		}
		method := &schema.Method{Name: rpc.RPCName}
		if rpc.RPCRequest != nil {
			method.InputType = rpc.RPCRequest.MessageType
			method.ClientStreaming = rpc.RPCRequest.IsStream
		}
		if rpc.RPCResponse != nil {
			method.OutputType = rpc.RPCResponse.MessageType
			method.ServerStreaming = rpc.RPCResponse.IsStream
		}
		service.Methods = append(service.Methods, method)
	}
	return service
}

// buildReservedRanges converts a reserved statement. Name reservations are
// dropped: only numbers matter to the wire contract.
func buildReservedRanges(pr *parser.Reserved) ([]*schema.ReservedRange, error) {
	var out []*schema.ReservedRange
	for _, rng := range pr.Ranges {
		begin, err := strconv.ParseInt(rng.Begin, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("bad reserved range start %q", rng.Begin)
		}
		end := begin
		switch rng.End {
		case "":
		case "max":
			end = 1<<29 - 1
		default:
			end, err = strconv.ParseInt(rng.End, 10, 32)
			if err != nil {
				return nil, fmt.Errorf("bad reserved range end %q", rng.End)
			}
		}
		out = append(out, &schema.ReservedRange{Start: int32(begin), End: int32(end)})
	}
	return out, nil
}

var primitiveNames = map[string]schema.PrimitiveType{
	"double":   schema.TypeDouble,
	"float":    schema.TypeFloat,
	"int64":    schema.TypeInt64,
	"uint64":   schema.TypeUint64,
	"int32":    schema.TypeInt32,
	"fixed64":  schema.TypeFixed64,
	"fixed32":  schema.TypeFixed32,
	"bool":     schema.TypeBool,
	"string":   schema.TypeString,
	"bytes":    schema.TypeBytes,
	"uint32":   schema.TypeUint32,
	"sfixed32": schema.TypeSfixed32,
	"sfixed64": schema.TypeSfixed64,
	"sint32":   schema.TypeSint32,
	"sint64":   schema.TypeSint64,
}

// typeFromName maps a textual type name to a field type. Named types start
// out as message references; symbol resolution flips them to enums when the
// name turns out to denote one.
func typeFromName(name string) schema.FieldType {
	if p, ok := primitiveNames[name]; ok {
		return schema.FieldType{Kind: schema.KindPrimitive, PrimitiveType: p}
	}
	return schema.FieldType{Kind: schema.KindMessage, MessageType: name}
}

// packedFor decides the packed encoding for a field: proto3 packs eligible
// repeated scalars by default, proto2 does not, and an explicit [packed=...]
// option wins either way. Named types are provisionally treated as packable
// because they may resolve to enums; resolution clears the flag for fields
// that turn out to reference messages.
func packedFor(f *schema.Field, syntax string, opts []*parser.FieldOption) bool {
	if f.Label != schema.LabelRepeated {
		return false
	}
	if f.Type.Kind == schema.KindPrimitive && !schema.IsPackedType(f.Type.PrimitiveType) {
		return false
	}
	for _, o := range opts {
		if o.OptionName == "packed" {
			return o.Constant == "true"
		}
	}
	return syntax == "proto3"
}

func parseFieldNumber(s string) (int32, error) {
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("bad field number %q", s)
	}
	return int32(n), nil
}
