package http

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/fivetwenty-io/hubspot-client/pkg/hubspot"
)

// segment is a literal run of a path template, or a placeholder when name
// is set.
type segment struct {
	literal string
	name    string
}

// parseTemplate splits a template into literals and :name placeholders. A
// colon not followed by [A-Za-z0-9_] is literal.
func parseTemplate(template string) []segment {
	var (
		segments []segment
		literal  strings.Builder
	)

	for i := 0; i < len(template); {
		if template[i] == ':' {
			end := i + 1
			for end < len(template) && isNameByte(template[end]) {
				end++
			}

			if end > i+1 {
				if literal.Len() > 0 {
					segments = append(segments, segment{literal: literal.String()})
					literal.Reset()
				}

				segments = append(segments, segment{name: template[i+1 : end]})
				i = end

				continue
			}
		}

		literal.WriteByte(template[i])
		i++
	}

	if literal.Len() > 0 {
		segments = append(segments, segment{literal: literal.String()})
	}

	return segments
}

func isNameByte(c byte) bool {
	return c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
}

// Placeholders returns the distinct placeholder names of a template in
// order of first appearance.
func Placeholders(template string) []string {
	var names []string

	seen := make(map[string]bool)

	for _, seg := range parseTemplate(template) {
		if seg.name != "" && !seen[seg.name] {
			seen[seg.name] = true
			names = append(names, seg.name)
		}
	}

	return names
}

func hasPlaceholder(template, name string) bool {
	for _, seg := range parseTemplate(template) {
		if seg.name == name {
			return true
		}
	}

	return false
}

// ResolvePath fills every :name placeholder of template with the
// query-escaped value of the parameter of the same name. It returns the
// resolved path and the parameters that were not consumed. params is not
// modified. A placeholder without a parameter fails with
// *hubspot.UnresolvedPlaceholderError.
func ResolvePath(template string, params hubspot.Params) (string, hubspot.Params, error) {
	var (
		path    strings.Builder
		missing []string
		used    []string
	)

	seen := make(map[string]bool)

	for _, seg := range parseTemplate(template) {
		if seg.name == "" {
			path.WriteString(seg.literal)

			continue
		}

		value, ok := params.Get(seg.name)
		if !ok {
			if !seen[seg.name] {
				missing = append(missing, seg.name)
			}

			seen[seg.name] = true

			continue
		}

		text, err := pathValue(seg.name, value)
		if err != nil {
			return "", nil, err
		}

		path.WriteString(url.QueryEscape(text))

		if !seen[seg.name] {
			used = append(used, seg.name)
		}

		seen[seg.name] = true
	}

	if len(missing) > 0 {
		return "", nil, &hubspot.UnresolvedPlaceholderError{Path: template, Missing: missing}
	}

	return path.String(), params.Without(used...), nil
}

func pathValue(name string, value hubspot.ParamValue) (string, error) {
	switch v := value.(type) {
	case nil:
		return "", nil
	case hubspot.String:
		return string(v), nil
	case hubspot.Int:
		return strconv.FormatInt(int64(v), 10), nil
	case hubspot.Timestamp:
		return strconv.FormatInt(v.Time().UnixMilli(), 10), nil
	case hubspot.Batch:
		return pathValue(name, v.Value)
	default:
		return "", fmt.Errorf("%w: placeholder :%s needs a scalar value, got %s", hubspot.ErrInvalidParams, name, value.Kind())
	}
}
