package hls

import (
	"net/url"
	"strings"
)

// NormalizeURL resolves ref against base and returns an absolute URL.
//
// Already-absolute refs pass through unchanged. Scheme-relative refs
// ("//host/path") gain https. Root-relative refs replace the base path
// entirely. Anything else is joined against the base per RFC 3986. When the
// base cannot be parsed the ref is returned as-is; a fetch on it will fail
// and be retried like any other transient error.
func NormalizeURL(base, ref string) string {
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref
	}

	if strings.HasPrefix(ref, "//") {
		return "https:" + ref
	}

	baseURL, err := url.Parse(base)
	if err != nil {
		return ref
	}

	if strings.HasPrefix(ref, "/") {
		if baseURL.Host != "" {
			return baseURL.Scheme + "://" + baseURL.Host + ref
		}
		return ref
	}

	resolved, err := baseURL.Parse(ref)
	if err != nil {
		return ref
	}
	return resolved.String()
}
