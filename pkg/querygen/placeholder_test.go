package querygen

import (
	"encoding/json"
	"testing"

	"github.com/sanixdarker/gqlpath/pkg/introspection"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSynthesize(t *testing.T) {
	s := blogSchema(t)

	tests := []struct {
		name string
		ref  *introspection.TypeRef
		want any
	}{
		{"string", named(introspection.KindScalar, "String"), Placeholder},
		{"id", nonNull(named(introspection.KindScalar, "ID")), Placeholder},
		{"int", named(introspection.KindScalar, "Int"), 1},
		{"float", named(introspection.KindScalar, "Float"), 1.0},
		{"boolean", named(introspection.KindScalar, "Boolean"), true},
		{"custom scalar", named(introspection.KindScalar, "DateTime"), Placeholder},
		{"enum", named(introspection.KindEnum, "Role"), EnumValue("ADMIN")},
		{"enum missing from schema", named(introspection.KindEnum, "Color"), EnumFallback},
		{"list", listOf(nonNull(named(introspection.KindScalar, "String"))), []any{Placeholder}},
		{"required list", nonNull(listOf(named(introspection.KindScalar, "Int"))), []any{1}},
		{"input with required fields", nonNull(named(introspection.KindInputObject, "PostInput")),
			Object{{Key: "title", Value: Placeholder}, {Key: "authorId", Value: Placeholder}}},
		{"input without required fields", named(introspection.KindInputObject, "UserFilter"),
			Object{{Key: "role", Value: EnumValue("ADMIN")}}},
		{"unresolvable", nil, Placeholder},
		{"object kind", named(introspection.KindObject, "User"), Placeholder},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Synthesize(s, tt.ref, 4))
		})
	}
}

func TestSynthesize_RecursiveInputTerminates(t *testing.T) {
	rec := named(introspection.KindInputObject, "Rec")
	s := introspection.NewSchema([]introspection.TypeDef{{
		Kind: introspection.KindInputObject,
		Name: "Rec",
		InputFields: []introspection.InputValue{
			{Name: "next", Type: nonNull(rec)},
			{Name: "n", Type: named(introspection.KindScalar, "Int")},
		},
	}})

	data, err := json.Marshal(Synthesize(s, rec, 2))
	require.NoError(t, err)
	assert.JSONEq(t, `{"next":{"next":{"next":"REPLACE_ME"}}}`, string(data))

	assert.Equal(t, Placeholder, synthesize(s, rec, 2, 3))
}

func TestSynthesize_EmptyEnum(t *testing.T) {
	s := introspection.NewSchema([]introspection.TypeDef{{Kind: introspection.KindEnum, Name: "Empty"}})
	assert.Equal(t, EnumFallback, Synthesize(s, named(introspection.KindEnum, "Empty"), 4))
}

func TestLiteral(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"string escapes", "a\"b\\c\nd", `"a\"b\\c\nd"`},
		{"enum is bare", EnumValue("ADMIN"), "ADMIN"},
		{"bool", false, "false"},
		{"null", nil, "null"},
		{"int", 42, "42"},
		{"whole float keeps point", 1.0, "1.0"},
		{"float", 2.5, "2.5"},
		{"json number", json.Number("7"), "7"},
		{"list", []any{1, "x"}, `[1, "x"]`},
		{"nested object", Object{
			{Key: "role", Value: EnumValue("MEMBER")},
			{Key: "tags", Value: []any{"a"}},
			{Key: "inner", Value: Object{{Key: "ok", Value: true}}},
		}, `{role: MEMBER, tags: ["a"], inner: {ok: true}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Literal(tt.in))
		})
	}
}

func TestObjectJSON(t *testing.T) {
	obj := Object{
		{Key: "z", Value: "é"},
		{Key: "a", Value: EnumValue("ADMIN")},
		{Key: "m", Value: Object{{Key: "y", Value: 1}, {Key: "x", Value: []any{1.5}}}},
	}

	data, err := json.Marshal(obj)
	require.NoError(t, err)
	assert.Equal(t, `{"z":"é","a":"ADMIN","m":{"y":1,"x":[1.5]}}`, string(data))

	var back Object
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, []string{"z", "a", "m"}, back.Keys())

	nested, ok := back.Get("m")
	require.True(t, ok)
	assert.Equal(t, []string{"y", "x"}, nested.(Object).Keys())

	empty, err := json.Marshal(Object(nil))
	require.NoError(t, err)
	assert.Equal(t, "{}", string(empty))

	assert.Error(t, json.Unmarshal([]byte(`[1]`), &back))

	raw, err := Object{{Key: "q", Value: "<a & b>"}}.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `{"q":"<a & b>"}`, string(raw))
}

func TestObjectSet(t *testing.T) {
	var o Object
	o.Set("a", 1)
	o.Set("b", 2)
	o.Set("a", 3)

	assert.Equal(t, []string{"a", "b"}, o.Keys())
	v, _ := o.Get("a")
	assert.Equal(t, 3, v)
}
