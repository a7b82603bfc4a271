package apigateway

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tinylib/msgp/msgp"
	"gopkg.in/yaml.v3"

	"github.com/hupe1980/querymap"
)

func TestParameters_SplitsCommas(t *testing.T) {
	var p Parameters
	require.NoError(t, json.Unmarshal([]byte(`{"foo":"bar,baz","single":"x"}`), &p))

	foo, ok := p.All("foo")
	require.True(t, ok)
	assert.Equal(t, []string{"bar", "baz"}, foo)

	single, _ := p.All("single")
	assert.Equal(t, []string{"x"}, single)

	out, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"foo":"bar,baz","single":"x"}`, string(out))
}

func TestParameters_ListsAreJoined(t *testing.T) {
	p := NewParameters(querymap.New(map[string][]string{
		"key1": {"value1", "value2", "value3"},
	}))

	out, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"key1":"value1,value2,value3"}`, string(out))

	var back Parameters
	require.NoError(t, json.Unmarshal(out, &back))
	assert.True(t, querymap.Equal(p.QueryMap, back.QueryMap))
}

func TestParameters_ListInputNotSplit(t *testing.T) {
	var p Parameters
	require.NoError(t, json.Unmarshal([]byte(`{"k":["a,b","c"]}`), &p))

	k, _ := p.All("k")
	assert.Equal(t, []string{"a,b", "c"}, k)
	assert.Equal(t, "a,b,c", p.Get("k"))
}

func TestParameters_CommaInValueIsLossy(t *testing.T) {
	p := NewParameters(querymap.New(map[string][]string{"q": {"a,b"}}))

	out, err := json.Marshal(p)
	require.NoError(t, err)

	var back Parameters
	require.NoError(t, json.Unmarshal(out, &back))

	q, _ := back.All("q")
	assert.Equal(t, []string{"a", "b"}, q)
}

func TestParameters_Null(t *testing.T) {
	var holder struct {
		Params Parameters  `json:"params"`
		Stage  *Parameters `json:"stage"`
		Absent *Parameters `json:"absent"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"params":null,"stage":null}`), &holder))

	assert.True(t, holder.Params.IsEmpty())
	assert.Nil(t, holder.Stage)
	assert.Nil(t, holder.Absent)

	out, err := json.Marshal(Parameters{})
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(out))
}

func TestParameters_Errors(t *testing.T) {
	var p Parameters
	err := json.Unmarshal([]byte(`{"a":{"b":"c"}}`), &p)
	require.ErrorIs(t, err, querymap.ErrShape)

	err = json.Unmarshal([]byte(`{"a":[1,2]}`), &p)
	require.ErrorIs(t, err, querymap.ErrElement)
}

func TestParameters_GetAndJoined(t *testing.T) {
	p := NewParameters(querymap.New(map[string][]string{
		"a": {"1", "2"},
		"b": {"3"},
	}))

	assert.Equal(t, "1,2", p.Get("a"))
	assert.Equal(t, "", p.Get("missing"))
	assert.Equal(t, map[string]string{"a": "1,2", "b": "3"}, p.Joined())
}

func TestParameters_YAML(t *testing.T) {
	var p Parameters
	require.NoError(t, yaml.Unmarshal([]byte("tags: a,b\nids: [x, y]\n"), &p))

	tags, _ := p.All("tags")
	assert.Equal(t, []string{"a", "b"}, tags)
	ids, _ := p.All("ids")
	assert.Equal(t, []string{"x", "y"}, ids)

	out, err := yaml.Marshal(p)
	require.NoError(t, err)

	var raw map[string]string
	require.NoError(t, yaml.Unmarshal(out, &raw))
	assert.Equal(t, map[string]string{"tags": "a,b", "ids": "x,y"}, raw)
}

func TestParameters_MsgPack(t *testing.T) {
	p := NewParameters(querymap.New(map[string][]string{
		"a": {"1", "2"},
		"b": {"3"},
	}))

	var buf bytes.Buffer
	require.NoError(t, msgp.Encode(&buf, p))

	var back Parameters
	require.NoError(t, msgp.Decode(&buf, &back))
	assert.True(t, querymap.Equal(p.QueryMap, back.QueryMap))
}

func TestDecode_WithOptions(t *testing.T) {
	mc := &querymap.BasicMetricsCollector{}
	src := querymap.NewJSONSource(bytes.NewReader([]byte(`{"a":"1,2"}`)))

	p, err := Decode(src, querymap.WithMetricsCollector(mc))
	require.NoError(t, err)

	a, _ := p.All("a")
	assert.Equal(t, []string{"1", "2"}, a)
	assert.Equal(t, int64(1), mc.GetStats().DecodeCount)
}
