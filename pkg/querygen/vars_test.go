package querygen

import (
	"testing"

	"github.com/sanixdarker/gqlpath/pkg/introspection"
	"github.com/stretchr/testify/assert"
)

func TestSanitizeVarName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Query_user_id", "Query_user_id"},
		{"Query.user-id", "Query_user_id"},
		{"a  b", "a_b"},
		{"__x__", "x"},
		{"", "v"},
		{"!!!", "v"},
		{"1abc", "v_1abc"},
		{"_9", "v_9"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, sanitizeVarName(tt.in))
		})
	}
}

func TestVarContext_Register(t *testing.T) {
	s := blogSchema(t)
	id := nonNull(named(introspection.KindScalar, "ID"))
	num := named(introspection.KindScalar, "Int")

	c := NewVarContext(s, ArgModeVars, 4)
	assert.Equal(t, "", c.Definitions())

	assert.Equal(t, "x", c.Register("x", id))
	assert.Equal(t, "x", c.Register("x", id), "same type reuses the name")
	assert.Equal(t, "x_2", c.Register("x", num))
	assert.Equal(t, "x_2", c.Register("x", num))
	assert.Equal(t, "x_3", c.Register("x", listOf(num)))
	assert.Equal(t, "role", c.Register("role", named(introspection.KindEnum, "Role")))

	assert.Equal(t, 4, c.Len())
	assert.Equal(t, "($x: ID!, $x_2: Int, $x_3: [Int], $role: Role)", c.Definitions())
	assert.Equal(t, Object{
		{Key: "x", Value: Placeholder},
		{Key: "x_2", Value: 1},
		{Key: "x_3", Value: []any{1}},
		{Key: "role", Value: EnumValue("ADMIN")},
	}, c.Variables())
}

func TestVarContext_InlineModeHasNoVariables(t *testing.T) {
	c := NewVarContext(blogSchema(t), ArgModeInline, 4)
	c.Register("x", named(introspection.KindScalar, "Int"))

	assert.Equal(t, "($x: Int)", c.Definitions())
	assert.Empty(t, c.Variables())
	assert.NotNil(t, c.Variables())
}
