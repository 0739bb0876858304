package querygen

import (
	"path/filepath"
	"testing"

	"github.com/sanixdarker/gqlpath/pkg/introspection"
	"github.com/stretchr/testify/require"
	"github.com/vektah/gqlparser/v2"
)

func blogSchema(t *testing.T) *introspection.Schema {
	t.Helper()
	s, err := introspection.LoadFile(filepath.Join("testdata", "blog.json"))
	require.NoError(t, err)
	return s
}

func named(kind introspection.Kind, name string) *introspection.TypeRef {
	return &introspection.TypeRef{Kind: kind, Name: name}
}

func nonNull(of *introspection.TypeRef) *introspection.TypeRef {
	return &introspection.TypeRef{Kind: introspection.KindNonNull, OfType: of}
}

func listOf(of *introspection.TypeRef) *introspection.TypeRef {
	return &introspection.TypeRef{Kind: introspection.KindList, OfType: of}
}

func field(name string, typ *introspection.TypeRef, args ...introspection.InputValue) introspection.Field {
	return introspection.Field{Name: name, Type: typ, Args: args}
}

func arg(name string, typ *introspection.TypeRef) introspection.InputValue {
	return introspection.InputValue{Name: name, Type: typ}
}

func object(name string, fields ...introspection.Field) introspection.TypeDef {
	return introspection.TypeDef{Kind: introspection.KindObject, Name: name, Fields: fields}
}

func scalar(name string) introspection.TypeDef {
	return introspection.TypeDef{Kind: introspection.KindScalar, Name: name}
}

// userSchema is Query.user(id: ID!): User with User { id: ID!, name: String }.
func userSchema() *introspection.Schema {
	s := introspection.NewSchema([]introspection.TypeDef{
		object("Query", field("user", named(introspection.KindObject, "User"), arg("id", nonNull(named(introspection.KindScalar, "ID"))))),
		object("User",
			field("id", nonNull(named(introspection.KindScalar, "ID"))),
			field("name", named(introspection.KindScalar, "String")),
		),
		scalar("ID"),
		scalar("String"),
	})
	s.QueryType = "Query"
	return s
}

func plainOptions() Options {
	opts := DefaultOptions()
	opts.Pretty = false
	return opts
}

// requireValid parses query and validates it against the SDL form of s.
func requireValid(t *testing.T, s *introspection.Schema, query string) {
	t.Helper()
	schema, err := s.Executable()
	require.NoError(t, err)

	_, errs := gqlparser.LoadQuery(schema, query)
	require.Empty(t, errs, "query:\n%s", query)
}
