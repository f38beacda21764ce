package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestStatusRule_Match(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		rule StatusRule
		code int
		want bool
	}{
		{name: "exact int", rule: MustStatus(201), code: 201, want: true},
		{name: "exact int miss", rule: MustStatus(201), code: 200, want: false},
		{name: "exact int is not a prefix", rule: MustStatus(200), code: 2001, want: false},
		{name: "string code is a prefix", rule: MustStatus("200"), code: 2001, want: true},
		{name: "wildcard", rule: MustStatus("4xx"), code: 404, want: true},
		{name: "upper wildcard", rule: MustStatus("4XX"), code: 418, want: true},
		{name: "all", rule: MustStatus("ALL"), code: 999, want: true},
		{name: "negation", rule: MustStatus("!200"), code: 500, want: true},
		{name: "negation miss", rule: MustStatus("!200"), code: 200, want: false},
		{name: "set any member", rule: MustStatus(200, 201), code: 201, want: true},
		{name: "set none", rule: MustStatus(200, 201), code: 204, want: false},
		{name: "negations in a set are or-ed", rule: MustStatus("!200", "!201"), code: 200, want: true},
		{name: "mixed set", rule: MustStatus([]any{"5xx", 404}), code: 503, want: true},
		{name: "nested rule", rule: MustStatus(MustStatus("2xx"), 304), code: 304, want: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.rule.Match(tt.code))
		})
	}
}

func TestParseStatusRule_Invalid(t *testing.T) {
	t.Parallel()

	for _, in := range []any{"4x", "abcd", "!!200", 3.5, []any{}, []any{"2xx", "nope"}} {
		_, err := ParseStatusRule(in)
		require.ErrorIs(t, err, ErrInvalidStatusRule, "input %v", in)
	}
	assert.Panics(t, func() { MustStatus("bogus") })
}

func TestStatusRule_String(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "200,4xx,!500", MustStatus(200, "4XX", "!500").String())
	assert.True(t, StatusRule{}.IsZero())
}

func TestStatusRule_UnmarshalYAML(t *testing.T) {
	t.Parallel()

	var doc struct {
		Status map[string]StatusRule `yaml:"status"`
	}
	src := `
status:
  ok: 2xx
  created: 201
  failed: ["4xx", "5xx"]
  not_ok: "!200"
`
	require.NoError(t, yaml.Unmarshal([]byte(src), &doc))
	require.Len(t, doc.Status, 4)

	assert.True(t, doc.Status["ok"].Match(204))
	assert.True(t, doc.Status["created"].Match(201))
	assert.False(t, doc.Status["created"].Match(2010))
	assert.True(t, doc.Status["failed"].Match(502))
	assert.False(t, doc.Status["failed"].Match(302))
	assert.True(t, doc.Status["not_ok"].Match(404))

	var bad struct {
		Status map[string]StatusRule `yaml:"status"`
	}
	err := yaml.Unmarshal([]byte("status:\n  x: {a: 1}\n"), &bad)
	require.ErrorIs(t, err, ErrInvalidStatusRule)
}

func TestParseMergeStrategy(t *testing.T) {
	t.Parallel()

	s, err := ParseMergeStrategy("")
	require.NoError(t, err)
	assert.Equal(t, MergePost, s)

	s, err = ParseMergeStrategy(" PRE ")
	require.NoError(t, err)
	assert.Equal(t, MergePre, s)

	_, err = ParseMergeStrategy("sideways")
	require.Error(t, err)
}

func TestResponse_Helpers(t *testing.T) {
	t.Parallel()

	resp := Response{
		Headers: map[string][]string{"Content-Type": {"application/problem+json; charset=utf-8"}},
		Body:    []byte(`{"error":{"code":42}}`),
	}
	assert.True(t, resp.IsJSON())
	assert.Equal(t, "application/problem+json; charset=utf-8", resp.Header("content-type"))
	assert.Equal(t, int64(42), resp.JSON("error.code").Int())

	assert.False(t, Response{}.IsJSON())
	assert.Equal(t, "", Response{}.Header("X"))
}
