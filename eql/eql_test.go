package eql

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEqlEmpty(t *testing.T) {
	for _, input := range []string{"", " ", "   ", "\t \t"} {
		r, err := Parse(input)
		require.NoError(t, err)
		assert.Equal(t, 0, r.Len())
	}
}

func TestEqlSingle(t *testing.T) {
	r, err := Parse("key=value")
	require.NoError(t, err)
	assert.Equal(t, 1, r.Len())
	assert.Equal(t, "value", r.Value("key"))
}

func TestEqlSimple(t *testing.T) {
	input := "fix=path feat=minor bang=major"
	output := map[string]string{
		"fix":  "path",
		"feat": "minor",
		"bang": "major",
	}
	r, err := Parse(input)
	require.NoError(t, err)
	assert.Equal(t, output, r.Map())
	assert.Equal(t, []string{"fix", "feat", "bang"}, r.Keys())
}

func TestEqlInvalid(t *testing.T) {
	r, err := Parse(" =path test = true")
	assert.Error(t, err)
	assert.Nil(t, r)
}

func TestEqlSpaced(t *testing.T) {
	input := "fix = path feat = minor bang = major"
	output := map[string]string{
		"fix":  "path",
		"feat": "minor",
		"bang": "major",
	}
	r, err := Parse(input)
	require.NoError(t, err)
	assert.Equal(t, output, r.Map())
}

func TestEqlWhitespaceInsignificant(t *testing.T) {
	inputs := []string{
		"key=value",
		" key=value",
		"key =value",
		" key =value",
		"key= value",
		"key=value ",
		"  key  =  value  ",
		"\tkey\t=\tvalue\t",
	}
	for _, input := range inputs {
		r, err := Parse(input)
		require.NoError(t, err, input)
		assert.Equal(t, map[string]string{"key": "value"}, r.Map(), input)
	}
}

func TestEqlKeyCharacters(t *testing.T) {
	for _, key := range []string{"1", "123", "0123", "first_name", "_", "__", "0abc", "a0bc"} {
		r, err := Parse(key + "=value")
		require.NoError(t, err, key)
		assert.Equal(t, "value", r.Value(key), key)
	}
}

func TestEqlMultipleKeys(t *testing.T) {
	output := map[string]string{"key": "value", "anotherkey": "anothervalue"}
	inputs := []string{
		"key=value anotherkey=anothervalue",
		"   key=value anotherkey=anothervalue",
		"key  =value anotherkey  =anothervalue",
		"  key  =value anotherkey  =anothervalue",
	}
	for _, input := range inputs {
		r, err := Parse(input)
		require.NoError(t, err, input)
		assert.Equal(t, output, r.Map(), input)
		assert.Equal(t, 2, r.Len())
	}
}

func TestQuoted(t *testing.T) {
	input := "fix = \"path\" feat = \"minor\" bang = \"major\""
	output := map[string]string{
		"fix":  "path",
		"feat": "minor",
		"bang": "major",
	}
	r, err := Parse(input)
	require.NoError(t, err)
	assert.Equal(t, output, r.Map())
}

func TestQuotedWithSpaces(t *testing.T) {
	inputs := []string{
		`key="va lue"`,
		`key=   "va lue"`,
		`key="va lue"   `,
	}
	for _, input := range inputs {
		r, err := Parse(input)
		require.NoError(t, err, input)
		assert.Equal(t, map[string]string{"key": "va lue"}, r.Map(), input)
	}

	r, err := Parse(`key = "va lue" anotherkey = "another value"`)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"key": "va lue", "anotherkey": "another value"}, r.Map())
}

func TestQuotedPreservesInnerWhitespace(t *testing.T) {
	r, err := Parse("k=\"  a\tb  \"")
	require.NoError(t, err)
	assert.Equal(t, "  a\tb  ", r.Value("k"))
}

func TestQuotedEmpty(t *testing.T) {
	r, err := Parse(`k="" other=x`)
	require.NoError(t, err)
	v, ok := r.Get("k")
	assert.True(t, ok)
	assert.Equal(t, "", v)
	assert.Equal(t, "x", r.Value("other"))
}

func TestMixedQuoting(t *testing.T) {
	output := map[string]string{"key": "value", "anotherkey": "anothervalue"}
	inputs := []string{
		`key=value anotherkey="anothervalue"`,
		`   key=value anotherkey="anothervalue"`,
		`key  =value anotherkey  ="anothervalue"`,
		`  key  =value anotherkey  = "anothervalue"`,
		`anotherkey="anothervalue" key=value`,
	}
	for _, input := range inputs {
		r, err := Parse(input)
		require.NoError(t, err, input)
		assert.Equal(t, output, r.Map(), input)
	}
}

func TestUnquotedValueKeepsQuotesAndEquals(t *testing.T) {
	r, err := Parse(`a=b"c url=http://x/?q=1`)
	require.NoError(t, err)
	assert.Equal(t, `b"c`, r.Value("a"))
	assert.Equal(t, "http://x/?q=1", r.Value("url"))
}

func TestDuplicateKeyLastWriteWins(t *testing.T) {
	r, err := Parse("a=1 b=2 a=3")
	require.NoError(t, err)
	assert.Equal(t, 2, r.Len())
	assert.Equal(t, []string{"a", "b"}, r.Keys())
	assert.Equal(t, "3", r.Value("a"))
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		input  string
		kind   *ParseError
		key    string
		offset int
	}{
		{"key=", ErrMissingValue, "key", 3},
		{"key=   ", ErrMissingValue, "key", 3},
		{`key="value`, ErrMissingEndQuote, "key", 9},
		{`key="`, ErrMissingEndQuote, "key", 4},
		{"=value", ErrMissingKey, "", 0},
		{"'foo'=value", ErrMissingKey, "", 0},
		{"   =value", ErrMissingKey, "", 3},
		{"a=1 =2", ErrMissingKey, "", 4},
		{"key value", ErrMissingAssignmentOperator, "", 4},
		{"key'=value", ErrMissingAssignmentOperator, "", 3},
		{"key", ErrIncompleteKeyValuePair, "", 2},
		{"key   ", ErrIncompleteKeyValuePair, "", 5},
		{"a=1 b", ErrIncompleteKeyValuePair, "", 4},
	}

	for _, c := range cases {
		r, err := Parse(c.input)
		assert.Nil(t, r, c.input)
		require.Error(t, err, c.input)
		assert.True(t, errors.Is(err, c.kind), "%q: got %v", c.input, err)

		var perr *ParseError
		require.True(t, errors.As(err, &perr), c.input)
		assert.Equal(t, c.key, perr.Key, c.input)
		assert.Equal(t, c.key != "", perr.HasKey(), c.input)
		assert.Equal(t, c.offset, perr.Offset, c.input)
	}
}

func TestOffsetsAreRuneIndexes(t *testing.T) {
	_, err := Parse("ключ=x")
	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, KindMissingKey, perr.Kind)

	_, err = Parse(`k="ü ä`)
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, KindMissingEndQuote, perr.Kind)
	assert.Equal(t, 5, perr.Offset)
}

func TestFirstErrorWins(t *testing.T) {
	_, err := Parse(`a= b c="x d`)
	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, KindMissingEndQuote, perr.Kind)
	assert.Equal(t, "c", perr.Key)
	assert.Equal(t, 10, perr.Offset)

	_, err = Parse(`a=1 =2 b`)
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, KindMissingKey, perr.Kind)
	assert.Equal(t, 4, perr.Offset)
}

func TestUnquotedValueSwallowsEquals(t *testing.T) {
	r, err := Parse(`a= b="x`)
	require.NoError(t, err)
	assert.Equal(t, `b="x`, r.Value("a"))
}

func TestParserReusable(t *testing.T) {
	p := NewParser()
	r1, err := p.Parse("a=1")
	require.NoError(t, err)
	r2, err := p.Parse("b=2")
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, r1.Keys())
	assert.Equal(t, []string{"b"}, r2.Keys())
}

func TestKeyDirectlyAfterQuotedValue(t *testing.T) {
	r, err := Parse(`k="a"b=c`)
	require.NoError(t, err)
	assert.Equal(t, []string{"k", "b"}, r.Keys())
	assert.Equal(t, "a", r.Value("k"))
	assert.Equal(t, "c", r.Value("b"))

	_, err = NewStrictParser([]string{"b"}, false).Parse(`k="a"b=c`)
	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, KindInvalidKey, perr.Kind)
	assert.Equal(t, 5, perr.Offset)
}
