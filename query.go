package querymap

import (
	"net/url"
	"strings"
	"time"
)

// Parse decodes a query string of the form "key1=value1&key2=value2".
//
// Keys and values are percent-decoded ('+' is a space). Repeated keys
// accumulate their values in order of appearance:
//
//	m, _ := querymap.Parse("foo=bar&baz=quux&foo=qux")
//	m.All("foo") // [bar qux]
//
// A leading '?' and empty segments are ignored. An entry without '=' or with
// an invalid escape fails the whole parse with a *ParseError.
func Parse(query string) (QueryMap[string], error) {
	return ParseWith(query)
}

// ParseWith is Parse with options. WithDuplicates(OverwriteDuplicates) keeps
// only the last value of a repeated key; WithScalarSplitter further splits
// each value.
func ParseWith(query string, opts ...Option) (QueryMap[string], error) {
	o := newOptions(AppendDuplicates, opts)
	start := time.Now()

	values, entries, err := parseQuery(query, o)

	o.metricsCollector.RecordParse(entries, time.Since(start), err)
	o.logger.LogParse(entries, err)

	if err != nil {
		return QueryMap[string]{}, err
	}
	return wrap(values), nil
}

func parseQuery(query string, o *options) (map[string][]string, int, error) {
	split, err := splitterFor[string](o)
	if err != nil {
		return nil, 0, err
	}

	values := make(map[string][]string)
	offset := 0
	if strings.HasPrefix(query, "?") {
		query = query[1:]
		offset = 1
	}

	entries := 0
	for query != "" {
		entry := query
		next := len(entry)
		if i := strings.IndexByte(entry, '&'); i >= 0 {
			entry, query = entry[:i], entry[i+1:]
			next = i + 1
		} else {
			query = ""
		}
		entryOffset := offset
		offset += next

		if entry == "" {
			continue
		}

		rawKey, rawValue, ok := strings.Cut(entry, "=")
		if !ok {
			return nil, entries, &ParseError{Entry: entry, Offset: entryOffset, cause: syntaxError("missing '='")}
		}
		key, err := url.QueryUnescape(rawKey)
		if err != nil {
			return nil, entries, &ParseError{Entry: entry, Offset: entryOffset, cause: syntaxError("key: %v", err)}
		}
		value, err := url.QueryUnescape(rawValue)
		if err != nil {
			return nil, entries, &ParseError{Entry: entry, Offset: entryOffset, cause: syntaxError("value: %v", err)}
		}
		entries++

		vs := []string{value}
		if split != nil {
			vs = split(value)
		}
		if len(vs) == 0 {
			continue
		}
		if o.duplicates == OverwriteDuplicates {
			values[key] = vs
		} else {
			values[key] = append(values[key], vs...)
		}
	}

	return values, entries, nil
}

// Encode renders m in URL-encoded form ("bar=baz&foo=quux"), keys sorted,
// one entry per value. Parse(Encode(m)) reproduces m.
func Encode(m QueryMap[string]) string {
	if m.IsEmpty() {
		return ""
	}

	var buf strings.Builder
	for k, v := range m.Pairs() {
		if buf.Len() > 0 {
			buf.WriteByte('&')
		}
		buf.WriteString(url.QueryEscape(k))
		buf.WriteByte('=')
		buf.WriteString(url.QueryEscape(v))
	}
	return buf.String()
}

// FromValues wraps url.Values, e.g. from (*http.Request).URL.Query().
func FromValues(v url.Values) QueryMap[string] {
	return New(map[string][]string(v))
}

// ToValues returns an independent url.Values copy of m.
func ToValues(m QueryMap[string]) url.Values {
	return url.Values(m.ToMap())
}
