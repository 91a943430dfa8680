// Package dispatch implements the request-dispatch pipeline: the
// fingerprinting of incoming requests to canonical keys, and the ordered
// chain of policy gates that stands between a matched endpoint and its
// stored response.
package dispatch

import "net/url"

// Fingerprint produces the canonical key for a request URL: the path
// verbatim, followed by "?" and the URL-encoded query when any parameters
// are present. Query keys are sorted, so the same parameters in any order
// produce the same key. Registration applies the same rule (CanonicalKey),
// which keeps both sides of the match order-insensitive.
func Fingerprint(u *url.URL) string {
	if u.RawQuery == "" {
		return u.Path
	}
	encoded := u.Query().Encode()
	if encoded == "" {
		return u.Path
	}
	return u.Path + "?" + encoded
}

// CanonicalKey normalizes a registered path string (which may carry a
// query) into the canonical key it will later be served under. A string
// that does not parse as a URL is used verbatim.
func CanonicalKey(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	return Fingerprint(u)
}
