package querygen

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/sanixdarker/gqlpath/pkg/introspection"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_UserScenario(t *testing.T) {
	opts := plainOptions()
	opts.MaxPathDepth = 2

	g, err := New(userSchema(), opts)
	require.NoError(t, err)

	res, err := g.Generate("Query", "User")
	require.NoError(t, err)
	require.Len(t, res.Paths, 1)
	require.Len(t, res.Bodies, 1)

	body := res.Bodies[0]
	assert.Equal(t, "query op_User_1($Query_user_id: ID!) { user(id: $Query_user_id) { id name } }", body.Query)
	assert.Equal(t, "op_User_1", body.OperationName)
	assert.Equal(t, []string{"Query (user) -> User"}, res.Labels)

	data, err := json.Marshal(body)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"query": "query op_User_1($Query_user_id: ID!) { user(id: $Query_user_id) { id name } }",
		"operationName": "op_User_1",
		"variables": {"Query_user_id": "REPLACE_ME"}
	}`, string(data))
}

func TestGenerate_Pretty(t *testing.T) {
	g, err := New(userSchema(), DefaultOptions())
	require.NoError(t, err)

	res, err := g.Generate("Query", "User")
	require.NoError(t, err)

	want := "query op_User_1($Query_user_id: ID!) {\n" +
		"    user(id: $Query_user_id) {\n" +
		"        id\n" +
		"        name\n" +
		"    }\n" +
		"}\n"
	assert.Equal(t, want, res.Bodies[0].Query)
}

func TestGenerate_Errors(t *testing.T) {
	g, err := New(blogSchema(t), plainOptions())
	require.NoError(t, err)

	t.Run("unknown target", func(t *testing.T) {
		_, err := g.Generate("Query", "Usr")
		var ute *UnknownTypeError
		require.True(t, errors.As(err, &ute))
		assert.Equal(t, "target", ute.Role)
		assert.Equal(t, []string{"User"}, ute.Suggestions)
		assert.Contains(t, err.Error(), "did you mean User?")
	})

	t.Run("target is checked before root", func(t *testing.T) {
		_, err := g.Paths("Nope", "Nada")
		var ute *UnknownTypeError
		require.True(t, errors.As(err, &ute))
		assert.Equal(t, "target", ute.Role)
	})

	t.Run("unknown root", func(t *testing.T) {
		_, err := g.Paths("Qurey", "User")
		var ute *UnknownTypeError
		require.True(t, errors.As(err, &ute))
		assert.Equal(t, "root", ute.Role)
		assert.Contains(t, ute.Suggestions, "Query")
	})

	t.Run("unreachable target is not an error", func(t *testing.T) {
		res, err := g.Generate("Query", "PostInput")
		require.NoError(t, err)
		assert.Empty(t, res.Paths)
		assert.Empty(t, res.Bodies)
	})
}

func TestNew_InvalidOptions(t *testing.T) {
	opts := DefaultOptions()
	opts.ArgMode = "both"
	_, err := New(blogSchema(t), opts)
	assert.Error(t, err)

	opts = DefaultOptions()
	opts.MaxTotalFields = 0
	_, err = New(blogSchema(t), opts)
	assert.Error(t, err)

	_, err = New(nil, DefaultOptions())
	assert.Error(t, err)
}

func TestBuildQuery_Budgets(t *testing.T) {
	s := blogSchema(t)
	path := Path{{ParentType: "Query", FieldName: "user", ChildType: "User"}}
	prefix := "query op($Query_user_id: ID!) { user(id: $Query_user_id) "

	tests := []struct {
		name   string
		modify func(*Options)
		want   string
	}{
		{"defaults", func(*Options) {},
			"{ id name role posts { id title author { __typename id name role } comments { id body author { __typename id name role } } } friends { __typename id name role } }"},
		{"total budget", func(o *Options) { o.MaxTotalFields = 1 }, "{ id }"},
		{"per type budget", func(o *Options) { o.MaxFieldsPerType = 2 }, "{ id name }"},
		{"depth one", func(o *Options) { o.SelectionDepth = 1 },
			"{ id name role posts { __typename } friends { __typename } }"},
		{"typename cycles", func(o *Options) { o.CyclePolicy = CycleTypename },
			"{ id name role posts { id title author { __typename } comments { id body author { __typename } } } friends { __typename } }"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := plainOptions()
			tt.modify(&opts)

			body := BuildQuery(s, "User", path, "op", opts)
			assert.Equal(t, prefix+tt.want+" }", body.Query)
			requireValid(t, s, body.Query)
		})
	}
}

func TestBuildQuery_RequiredArgFields(t *testing.T) {
	s := blogSchema(t)
	path := Path{{ParentType: "Query", FieldName: "user", ChildType: "User"}}

	opts := plainOptions()
	opts.IncludeRequiredArgsFields = true
	opts.IncludeOptionalArgs = true
	opts.SelectionDepth = 1

	body := BuildQuery(s, "User", path, "op", opts)
	assert.Equal(t,
		"query op($User_posts_first: Int, $User_avatar_size: Int!, $Query_user_id: ID!) { user(id: $Query_user_id) "+
			"{ id name role posts(first: $User_posts_first) { __typename } friends { __typename } avatar(size: $User_avatar_size) } }",
		body.Query)
	assert.Equal(t, []string{"User_posts_first", "User_avatar_size", "Query_user_id"}, body.Variables.Keys())
	requireValid(t, s, body.Query)
}

func TestBuildQuery_MutationInline(t *testing.T) {
	s := blogSchema(t)
	path := Path{{ParentType: "Mutation", FieldName: "createPost", ChildType: "Post"}}

	opts := plainOptions()
	opts.ArgMode = ArgModeInline

	body := BuildQuery(s, "Post", path, "op_Post_1", opts)
	assert.True(t, strings.HasPrefix(body.Query,
		`mutation op_Post_1 { createPost(input: {title: "REPLACE_ME", authorId: "REPLACE_ME"}) { id title author { `),
		body.Query)
	assert.Empty(t, body.Variables)
	requireValid(t, s, body.Query)

	opts.ArgMode = ArgModeVars
	body = BuildQuery(s, "Post", path, "op_Post_1", opts)
	assert.True(t, strings.HasPrefix(body.Query,
		"mutation op_Post_1($Mutation_createPost_input: PostInput!) { createPost(input: $Mutation_createPost_input) {"))

	data, err := json.Marshal(body.Variables)
	require.NoError(t, err)
	assert.JSONEq(t, `{"Mutation_createPost_input":{"title":"REPLACE_ME","authorId":"REPLACE_ME"}}`, string(data))
	requireValid(t, s, body.Query)
}

func TestBuildQuery_InlineFragments(t *testing.T) {
	s := blogSchema(t)
	path := Path{{ParentType: "Query", FieldName: "node", ChildType: "Node"}}

	opts := plainOptions()
	opts.SelectionDepth = 1

	body := BuildQuery(s, "Node", path, "op", opts)
	assert.Equal(t, "query op($Query_node_id: ID!) { node(id: $Query_node_id) { __typename } }", body.Query)

	opts.InlineFragments = true
	body = BuildQuery(s, "Node", path, "op", opts)
	assert.Equal(t,
		"query op($Query_node_id: ID!) { node(id: $Query_node_id) { __typename "+
			"... on User { id name role posts { __typename } friends { __typename } } "+
			"... on Post { id title author { __typename } comments { __typename } } } }",
		body.Query)
	requireValid(t, s, body.Query)
}

// Sibling fragments must not select one response name with two types.
func TestBuildQuery_InlineFragmentsConflictingFields(t *testing.T) {
	id := nonNull(named(introspection.KindScalar, "ID"))
	s := introspection.NewSchema([]introspection.TypeDef{
		object("Query", field("pet", named(introspection.KindUnion, "Pet"))),
		{
			Kind: introspection.KindUnion,
			Name: "Pet",
			PossibleTypes: []introspection.TypeRef{
				*named(introspection.KindObject, "Cat"),
				*named(introspection.KindObject, "Dog"),
			},
		},
		object("Cat", field("id", id), field("size", named(introspection.KindScalar, "Int"))),
		object("Dog", field("id", id), field("size", named(introspection.KindScalar, "String")), field("bark", named(introspection.KindScalar, "String"))),
		scalar("ID"),
		scalar("Int"),
		scalar("String"),
	})
	s.QueryType = "Query"

	opts := plainOptions()
	opts.InlineFragments = true
	path := Path{{ParentType: "Query", FieldName: "pet", ChildType: "Pet"}}

	body := BuildQuery(s, "Pet", path, "op", opts)
	assert.Equal(t, "query op { pet { __typename ... on Cat { id size } ... on Dog { id bark } } }", body.Query)
	requireValid(t, s, body.Query)
}

var varRef = regexp.MustCompile(`\$(\w+)`)

// Every generated body must balance braces, declare each variable it uses
// and supply a value for it.
func TestGenerate_AllTargetsAreValid(t *testing.T) {
	s := blogSchema(t)

	for _, mode := range []ArgMode{ArgModeVars, ArgModeInline} {
		for _, target := range []string{"User", "Post", "Comment", "Node", "SearchResult", "Role", "String"} {
			opts := DefaultOptions()
			opts.ArgMode = mode
			opts.IncludeOptionalArgs = true
			opts.InlineFragments = true

			g, err := New(s, opts)
			require.NoError(t, err)

			for _, root := range []string{"Query", "Mutation"} {
				res, err := g.Generate(root, target)
				require.NoError(t, err)

				for _, body := range res.Bodies {
					q := body.Query
					assert.Equal(t, strings.Count(q, "{"), strings.Count(q, "}"), q)
					requireValid(t, s, q)

					header := q[:strings.Index(q, "{")]
					for _, m := range varRef.FindAllStringSubmatch(q[len(header):], -1) {
						assert.Contains(t, header, "$"+m[1]+":", q)
						_, ok := body.Variables.Get(m[1])
						assert.True(t, ok, "missing value for $%s", m[1])
					}
				}
			}
		}
	}
}

func TestGenerate_Bundle(t *testing.T) {
	opts := plainOptions()
	opts.Bundle = true
	opts.SelectionDepth = 1

	g, err := New(blogSchema(t), opts)
	require.NoError(t, err)

	res, err := g.Generate("Query", "Post")
	require.NoError(t, err)
	require.Len(t, res.Paths, 2)
	require.Len(t, res.Bodies, 1)
	assert.Equal(t, []string{"2 paths bundled with aliases -> Post"}, res.Labels)

	body := res.Bodies[0]
	assert.Equal(t, "op_Post_bundled", body.OperationName)
	assert.Equal(t,
		"query op_Post_bundled($Query_user_id: ID!) { p1: user(id: $Query_user_id) { posts { id title author { __typename } comments { __typename } } } "+
			"p2: users { posts { id title author { __typename } comments { __typename } } } }",
		body.Query)
	assert.Equal(t, []string{"Query_user_id"}, body.Variables.Keys())
	requireValid(t, g.Schema(), body.Query)
}
