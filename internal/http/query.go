package http

import (
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/fivetwenty-io/hubspot-client/internal/constants"
	"github.com/fivetwenty-io/hubspot-client/pkg/hubspot"
)

// EncodeQuery serializes params in order. Intervals emit their key twice,
// lists once per element and batch values under their lowerCamel name.
// Timestamps become epoch milliseconds; other values are query-escaped.
// Keys are emitted as given.
func EncodeQuery(params hubspot.Params) string {
	pairs := make([]string, 0, len(params))
	for _, param := range params {
		pairs = appendPairs(pairs, param.Name, param.Value)
	}

	return strings.Join(pairs, "&")
}

func appendPairs(pairs []string, key string, value hubspot.ParamValue) []string {
	switch v := value.(type) {
	case hubspot.Interval:
		pairs = appendPairs(pairs, key, v.Begin)

		return appendPairs(pairs, key, v.End)
	case hubspot.List:
		for _, item := range v {
			pairs = appendPairs(pairs, key, item)
		}

		return pairs
	case hubspot.Batch:
		return appendPairs(pairs, BatchKey(key), v.Value)
	default:
		return append(pairs, key+"="+convertValue(v))
	}
}

func convertValue(value hubspot.ParamValue) string {
	switch v := value.(type) {
	case nil:
		return ""
	case hubspot.Timestamp:
		return strconv.FormatInt(v.Time().UnixMilli(), 10)
	case hubspot.Int:
		return strconv.FormatInt(int64(v), 10)
	case hubspot.String:
		return url.QueryEscape(string(v))
	default:
		return ""
	}
}

// BatchKey strips a leading "batch_" and converts the rest to lowerCamel:
// batch_from_id and from_id both become fromId.
func BatchKey(name string) string {
	name = strings.TrimPrefix(name, constants.BatchParamPrefix)

	parts := strings.Split(name, "_")
	caser := cases.Title(language.Und, cases.NoLower)

	for i := 1; i < len(parts); i++ {
		parts[i] = caser.String(parts[i])
	}

	return strings.Join(parts, "")
}

// AppendQuery appends query to path with "?", or "&" when path already has
// a query string.
func AppendQuery(path, query string) string {
	if query == "" {
		return path
	}

	if strings.Contains(path, "?") {
		return path + "&" + query
	}

	return path + "?" + query
}
