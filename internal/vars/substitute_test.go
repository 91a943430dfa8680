package vars

import (
	"net/url"
	"testing"
	"time"
)

func mustURL(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("parse %q: %v", raw, err)
	}
	return u
}

func TestReplaceFromParams(t *testing.T) {
	params := map[string]string{"user": "123", "name": "John"}
	got := Replace(`{"user":"{{user}}","name":"{{name}}"}`, params)
	want := `{"user":"123","name":"John"}`
	if got != want {
		t.Fatalf("got %s, want %s", got, want)
	}
}

func TestReplaceUnknownLeftLiteral(t *testing.T) {
	got := Replace(`{"x":"{{missing}}"}`, map[string]string{})
	if got != `{"x":"{{missing}}"}` {
		t.Fatalf("unknown placeholder must stay literal, got %s", got)
	}
}

func TestReplaceTimestamp(t *testing.T) {
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	old := nowUTC
	nowUTC = func() time.Time { return fixed }
	defer func() { nowUTC = old }()

	got := Replace(`{"at":"{{timestamp}}"}`, nil)
	want := `{"at":"2024-05-01T12:00:00Z"}`
	if got != want {
		t.Fatalf("got %s, want %s", got, want)
	}
}

func TestReplaceSinglePass(t *testing.T) {
	// A substituted value that itself looks like a placeholder is not
	// re-scanned.
	params := map[string]string{"a": "{{b}}", "b": "second"}
	if got := Replace(`{{a}}`, params); got != "{{b}}" {
		t.Fatalf("substitution must be single-pass, got %s", got)
	}
}

func TestReplaceIgnoresNonWordNames(t *testing.T) {
	body := `{{not a name}} {{ok_1}}`
	got := Replace(body, map[string]string{"ok_1": "v"})
	if got != `{{not a name}} v` {
		t.Fatalf("got %s", got)
	}
}

func TestParamsFromURLQueryAndPath(t *testing.T) {
	u := mustURL(t, "http://localhost:3001/api/user/123/item/456?id=789&name=John")
	params := ParamsFromURL(u)

	want := map[string]string{"user": "123", "item": "456", "id": "789", "name": "John"}
	for k, v := range want {
		if params[k] != v {
			t.Errorf("params[%q] = %q, want %q", k, params[k], v)
		}
	}
}

func TestParamsFromURLFiltersVersionSegments(t *testing.T) {
	u := mustURL(t, "http://localhost/api/v2/user/1")
	params := ParamsFromURL(u)
	if params["user"] != "1" {
		t.Fatalf("expected user=1 after filtering api/v2, got %v", params)
	}
	if _, ok := params["v2"]; ok {
		t.Fatalf("version segment must not become a key")
	}
}

func TestParamsFromURLOddTailDropped(t *testing.T) {
	u := mustURL(t, "http://localhost/a/b/c")
	params := ParamsFromURL(u)
	if params["a"] != "b" {
		t.Fatalf("expected a=b, got %v", params)
	}
	if _, ok := params["c"]; ok {
		t.Fatalf("odd trailing segment must be dropped, got %v", params)
	}
}

func TestParamsFromBody(t *testing.T) {
	params := ParamsFromBody([]byte(`{"name":"John","age":30,"active":true}`))
	if params["name"] != "John" {
		t.Errorf("string value should be used verbatim, got %q", params["name"])
	}
	if params["age"] != "30" {
		t.Errorf("number should be stringified via JSON, got %q", params["age"])
	}
	if params["active"] != "true" {
		t.Errorf("bool should be stringified via JSON, got %q", params["active"])
	}
}

func TestParamsFromBodyNonObject(t *testing.T) {
	if got := ParamsFromBody([]byte(`[1,2,3]`)); len(got) != 0 {
		t.Fatalf("array body yields no params, got %v", got)
	}
	if got := ParamsFromBody([]byte(`not json`)); len(got) != 0 {
		t.Fatalf("non-JSON body yields no params, got %v", got)
	}
}
