package apigateway

import (
	"errors"

	"github.com/hupe1980/querymap"
)

// Request is the subset of an API Gateway v2 HTTP event that carries
// parameters.
//
// Only queryStringParameters follows the comma-joined convention. Path
// parameters and stage variables are single literal strings and are decoded
// without splitting.
type Request struct {
	Version               string                     `json:"version"`
	RouteKey              string                     `json:"routeKey"`
	RawPath               string                     `json:"rawPath"`
	RawQueryString        string                     `json:"rawQueryString"`
	Cookies               []string                   `json:"cookies,omitempty"`
	Headers               map[string]string          `json:"headers,omitempty"`
	QueryStringParameters Parameters                 `json:"queryStringParameters"`
	PathParameters        querymap.QueryMap[string]  `json:"pathParameters"`
	StageVariables        *querymap.QueryMap[string] `json:"stageVariables,omitempty"`
	Body                  string                     `json:"body,omitempty"`
	IsBase64Encoded       bool                       `json:"isBase64Encoded"`
}

// Query returns the query parameters of the request.
//
// rawQueryString keeps repeated keys and literal commas intact, so it is
// preferred. The comma-split queryStringParameters are used when it is empty
// or cannot be parsed, e.g. for valueless flags like "debug&x=1".
func (r *Request) Query() (querymap.QueryMap[string], error) {
	if r.RawQueryString == "" {
		return r.QueryStringParameters.QueryMap, nil
	}
	m, err := querymap.Parse(r.RawQueryString)
	if err != nil {
		var pe *querymap.ParseError
		if errors.As(err, &pe) {
			return r.QueryStringParameters.QueryMap, nil
		}
		return querymap.QueryMap[string]{}, err
	}
	return m, nil
}

// PathParameter returns the value of a path parameter.
func (r *Request) PathParameter(name string) (string, bool) {
	return r.PathParameters.First(name)
}

// StageVariable returns the value of a stage variable.
func (r *Request) StageVariable(name string) (string, bool) {
	if r.StageVariables == nil {
		return "", false
	}
	return r.StageVariables.First(name)
}
