package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/querymap"
)

func TestByName(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			c, ok := ByName(name)
			require.True(t, ok)
			assert.Equal(t, name, c.Name())
		})
	}

	_, ok := ByName("gob")
	assert.False(t, ok)
}

func TestCodecs_QueryMapRoundTrip(t *testing.T) {
	want := querymap.New(map[string][]string{
		"foo": {"bar", "baz"},
		"q":   {"x"},
	})

	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			c, _ := ByName(name)

			data, err := c.Marshal(want)
			require.NoError(t, err)

			var got querymap.QueryMap[string]
			require.NoError(t, c.Unmarshal(data, &got))
			assert.True(t, querymap.Equal(want, got), "got %v", got)
		})
	}
}

func TestCodecs_SingleValueInStruct(t *testing.T) {
	type request struct {
		Data querymap.QueryMap[string] `json:"data" yaml:"data"`
	}

	inputs := map[string]string{
		"json":    `{"data":{"foo":"bar","list":["a","b"]}}`,
		"go-json": `{"data":{"foo":"bar","list":["a","b"]}}`,
		"yaml":    "data:\n  foo: bar\n  list: [a, b]\n",
	}

	for name, input := range inputs {
		t.Run(name, func(t *testing.T) {
			c, _ := ByName(name)

			var req request
			require.NoError(t, c.Unmarshal([]byte(input), &req))

			v, ok := req.Data.First("foo")
			require.True(t, ok)
			assert.Equal(t, "bar", v)

			list, ok := req.Data.All("list")
			require.True(t, ok)
			assert.Equal(t, []string{"a", "b"}, list)
		})
	}
}

func TestMsgPack_UnsupportedType(t *testing.T) {
	_, err := MsgPack{}.Marshal(map[string]string{"a": "b"})
	require.ErrorIs(t, err, ErrUnsupportedType)

	var dst map[string]string
	err = MsgPack{}.Unmarshal([]byte{0x80}, &dst)
	require.ErrorIs(t, err, ErrUnsupportedType)
}

func TestMustMarshal_DefaultCodec(t *testing.T) {
	m := querymap.New(map[string][]string{"a": {"1"}})
	assert.JSONEq(t, `{"a":["1"]}`, string(MustMarshal(nil, m)))

	assert.Panics(t, func() {
		MustMarshal(MsgPack{}, struct{}{})
	})
}
