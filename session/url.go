package session

import "strings"

// NormalizeURL prefixes https:// when the url has no scheme. Urls with a scheme are returned as is,
// a scheme relative url keeps its host.
func NormalizeURL(url string) string {
	url = strings.TrimSpace(url)
	if url == "" || hasScheme(url) {
		return url
	}
	if trimmed := strings.TrimLeft(url, "/"); strings.HasPrefix(url, "//") && trimmed != "" {
		url = trimmed
	}
	return "https://" + url
}

func hasScheme(url string) bool {
	idx := strings.Index(url, "://")
	if idx <= 0 {
		return false
	}
	for i, c := range url[:idx] {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case i > 0 && (c >= '0' && c <= '9' || c == '+' || c == '-' || c == '.'):
		default:
			return false
		}
	}
	return true
}
