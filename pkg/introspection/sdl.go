package introspection

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/formatter"
)

var builtinScalars = map[string]bool{
	"String":  true,
	"Int":     true,
	"Float":   true,
	"Boolean": true,
	"ID":      true,
}

// SchemaDocument converts the introspected types into a gqlparser schema
// document. Introspection meta-types and built-in scalars are omitted since
// the gqlparser prelude declares them.
func (s *Schema) SchemaDocument() *ast.SchemaDocument {
	doc := &ast.SchemaDocument{}

	var ops ast.OperationTypeDefinitionList
	for _, op := range []struct {
		kind ast.Operation
		name string
	}{
		{ast.Query, s.QueryType},
		{ast.Mutation, s.MutationType},
		{ast.Subscription, s.SubscriptionType},
	} {
		if op.name != "" {
			ops = append(ops, &ast.OperationTypeDefinition{Operation: op.kind, Type: op.name})
		}
	}
	if len(ops) > 0 {
		doc.Schema = append(doc.Schema, &ast.SchemaDefinition{OperationTypes: ops})
	}

	for _, name := range s.order {
		if strings.HasPrefix(name, "__") || builtinScalars[name] {
			continue
		}
		if def := s.definition(s.types[name]); def != nil {
			doc.Definitions = append(doc.Definitions, def)
		}
	}
	return doc
}

func (s *Schema) definition(t *TypeDef) *ast.Definition {
	def := &ast.Definition{Name: t.Name}

	switch t.Kind {
	case KindScalar:
		def.Kind = ast.Scalar
	case KindObject, KindInterface:
		def.Kind = ast.Object
		if t.Kind == KindInterface {
			def.Kind = ast.Interface
		}
		for _, iface := range t.Interfaces {
			if _, name := UnwrapNamed(&iface); name != Unknown {
				def.Interfaces = append(def.Interfaces, name)
			}
		}
		for _, f := range t.Fields {
			typ := astType(f.Type)
			if typ == nil {
				continue
			}
			fd := &ast.FieldDefinition{Name: f.Name, Type: typ}
			for _, a := range f.Args {
				if at := astType(a.Type); at != nil {
					fd.Arguments = append(fd.Arguments, &ast.ArgumentDefinition{Name: a.Name, Type: at})
				}
			}
			def.Fields = append(def.Fields, fd)
		}
	case KindUnion:
		def.Kind = ast.Union
		for _, member := range t.PossibleTypes {
			if _, name := UnwrapNamed(&member); name != Unknown {
				def.Types = append(def.Types, name)
			}
		}
	case KindEnum:
		def.Kind = ast.Enum
		for _, v := range t.EnumValues {
			def.EnumValues = append(def.EnumValues, &ast.EnumValueDefinition{Name: v.Name})
		}
	case KindInputObject:
		def.Kind = ast.InputObject
		for _, f := range t.InputFields {
			if typ := astType(f.Type); typ != nil {
				def.Fields = append(def.Fields, &ast.FieldDefinition{Name: f.Name, Type: typ})
			}
		}
	default:
		return nil
	}
	return def
}

func astType(ref *TypeRef) *ast.Type {
	if ref == nil {
		return nil
	}
	switch ref.Kind {
	case KindNonNull:
		inner := astType(ref.OfType)
		if inner == nil {
			return nil
		}
		inner.NonNull = true
		return inner
	case KindList:
		elem := astType(ref.OfType)
		if elem == nil {
			return nil
		}
		return &ast.Type{Elem: elem}
	}
	if ref.Name == "" {
		return nil
	}
	return &ast.Type{NamedType: ref.Name}
}

// SDL renders the schema in GraphQL schema definition language.
func (s *Schema) SDL() string {
	var buf bytes.Buffer
	formatter.NewFormatter(&buf).FormatSchemaDocument(s.SchemaDocument())
	return buf.String()
}

// Executable loads the SDL rendition through gqlparser so that generated
// documents can be validated against it.
func (s *Schema) Executable() (*ast.Schema, error) {
	schema, err := gqlparser.LoadSchema(&ast.Source{Name: "introspection.graphql", Input: s.SDL()})
	if err != nil {
		return nil, fmt.Errorf("failed to build schema from introspection: %w", err)
	}
	return schema, nil
}
