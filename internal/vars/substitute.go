// Package vars implements dynamic-variable substitution for stored
// response bodies, plus the extraction of the parameter maps that feed it.
//
// A template may contain {{name}} placeholders where name is one or more
// word characters. Substitution is single pass: replaced text is never
// re-scanned, and placeholders with no matching parameter are left exactly
// as written. The reserved name timestamp always expands to the current
// UTC time in RFC 3339.
package vars

import (
	"encoding/json"
	"net/url"
	"regexp"
	"strings"
	"time"
)

var (
	placeholderRE = regexp.MustCompile(`\{\{(\w+)}}`)
	versionRE     = regexp.MustCompile(`^v\d+$`)
)

// nowUTC is swappable for tests.
var nowUTC = func() time.Time { return time.Now().UTC() }

// Replace expands every {{name}} placeholder in body from params. Unknown
// names keep their literal placeholder text.
func Replace(body string, params map[string]string) string {
	return placeholderRE.ReplaceAllStringFunc(body, func(match string) string {
		name := match[2 : len(match)-2]
		if name == "timestamp" {
			return nowUTC().Format(time.RFC3339)
		}
		if v, ok := params[name]; ok {
			return v
		}
		return match
	})
}

// ParamsFromURL builds a parameter map from a request URL: query
// parameters first, then path segments treated as consecutive key/value
// pairs. Segments named "api" and version segments (v1, v2, …) are dropped
// before pairing; an odd trailing segment is discarded.
//
// For /api/user/123/item/456?id=789 the result is
// {user:123, item:456, id:789}.
func ParamsFromURL(u *url.URL) map[string]string {
	params := make(map[string]string)

	for key, vals := range u.Query() {
		if len(vals) > 0 {
			params[key] = vals[0]
		}
	}

	var segments []string
	for _, seg := range strings.Split(u.Path, "/") {
		if seg == "" || seg == "api" || versionRE.MatchString(seg) {
			continue
		}
		segments = append(segments, seg)
	}
	for i := 0; i+1 < len(segments); i += 2 {
		params[segments[i]] = segments[i+1]
	}

	return params
}

// ParamsFromBody builds a parameter map from a JSON object body. String
// values are used verbatim; any other value is stringified via its JSON
// encoding. A body that is not a JSON object yields an empty map.
func ParamsFromBody(body []byte) map[string]string {
	params := make(map[string]string)

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(body, &obj); err != nil {
		return params
	}

	for key, raw := range obj {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil && string(raw) != "null" {
			params[key] = s
			continue
		}
		params[key] = string(raw)
	}
	return params
}
