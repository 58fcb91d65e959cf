package payload

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodePreservesMemberOrder(t *testing.T) {
	v := Object(
		Field("Zebra", String("z")),
		Field("Apple", Int(1)),
		Field("Mango", Bool(true)),
	)

	assert.Equal(t, `{"Zebra":"z","Apple":1,"Mango":true}`, v.Encode())
}

func TestEncodeNestedDocument(t *testing.T) {
	v := Object(
		Field("ChangedFields", Strings([]string{"Status: 'Active' → 'Inactive'"})),
		Field("Meta", Object(
			Field("Count", Int(2)),
			Field("Note", Null()),
		)),
	)

	assert.Equal(t,
		`{"ChangedFields":["Status: 'Active' → 'Inactive'"],"Meta":{"Count":2,"Note":null}}`,
		v.Encode())
}

func TestParseRoundTrip(t *testing.T) {
	raw := `{"a":"x","b":[1,true,null],"c":{"d":"y"}}`

	v, err := Parse(raw)
	require.NoError(t, err)
	require.Equal(t, KindObject, v.Kind)
	require.Len(t, v.Members, 3)
	assert.Equal(t, "a", v.Members[0].Key)
	assert.Equal(t, "b", v.Members[1].Key)
	assert.Equal(t, "c", v.Members[2].Key)
	assert.Equal(t, raw, v.Encode())
}

func TestParseKeepsNumberLiteral(t *testing.T) {
	v, err := Parse(`{"n":1.50,"m":1e3}`)
	require.NoError(t, err)
	assert.Equal(t, "1.50", v.Members[0].Value.Num)
	assert.Equal(t, "1e3", v.Members[1].Value.Num)
}

func TestParseScalarDocument(t *testing.T) {
	v, err := Parse(`"hello"`)
	require.NoError(t, err)
	assert.Equal(t, KindString, v.Kind)
	assert.Equal(t, "hello", v.Str)
}

func TestParseRejectsMalformedInput(t *testing.T) {
	for _, raw := range []string{"", "not valid json{{{", `{"a":}`, `{"a":1} trailing`} {
		_, err := Parse(raw)
		assert.Error(t, err, "input %q", raw)
	}
}
