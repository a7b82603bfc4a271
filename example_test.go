package querymap_test

import (
	"encoding/json"
	"fmt"
	"log"

	"gopkg.in/yaml.v3"

	"github.com/hupe1980/querymap"
)

func ExampleParse() {
	m, err := querymap.Parse("foo=bar&baz=quux&foo=qux")
	if err != nil {
		log.Fatal(err)
	}

	foo, _ := m.All("foo")
	first, _ := m.First("baz")
	fmt.Println(foo, first)
	// Output: [bar qux] quux
}

func ExampleQueryMap_UnmarshalJSON() {
	var req struct {
		Data querymap.QueryMap[string] `json:"data"`
	}
	if err := json.Unmarshal([]byte(`{"data":{"foo":"bar","baz":["a","b"]}}`), &req); err != nil {
		log.Fatal(err)
	}

	out, _ := json.Marshal(req.Data)
	fmt.Println(string(out))
	// Output: {"baz":["a","b"],"foo":["bar"]}
}

func ExampleQueryMap_UnmarshalYAML() {
	var m querymap.QueryMap[int]
	if err := yaml.Unmarshal([]byte("limit: 10\nids: [1, 2, 3]\n"), &m); err != nil {
		log.Fatal(err)
	}

	fmt.Println(m)
	// Output: map[ids:[1 2 3] limit:[10]]
}

func ExampleQueryMap_Pairs() {
	m := querymap.New(map[string][]string{
		"b": {"2"},
		"a": {"1", "x"},
	})

	for k, v := range m.Pairs() {
		fmt.Println(k, v)
	}
	// Output:
	// a 1
	// a x
	// b 2
}

func ExampleQueryMap_Iter() {
	m := querymap.New(map[string][]int{"n": {1, 2}})

	it := m.Iter()
	for {
		k, v, ok := it.Next()
		if !ok {
			break
		}
		fmt.Println(k, v)
	}
	// Output:
	// n 1
	// n 2
}

func ExampleEncode() {
	m := querymap.New(map[string][]string{
		"q":   {"a b"},
		"tag": {"x", "y"},
	})

	fmt.Println(querymap.Encode(m))
	// Output: q=a+b&tag=x&tag=y
}
