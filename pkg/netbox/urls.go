package netbox

import (
	"net/url"
	"strings"
)

// BuildURL turns a relative catalog path into a request URL under base. A
// path that already carries an http or https scheme is returned unchanged,
// so pagination "next" links and root-listing URLs pass straight through.
// Paths that do not already start with an "api/" segment get one inserted.
func BuildURL(base, path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}

	trimmedBase := strings.TrimRight(base, "/")

	cleaned := strings.TrimLeft(path, "/")
	if strings.HasPrefix(cleaned, "api/") {
		return trimmedBase + "/" + cleaned
	}

	return trimmedBase + "/api/" + cleaned
}

// EnsureTrailingSlash appends "/" to the URL's path component if absent.
// NetBox treats the slash-terminated form as the canonical resource identity
// and pagination is only well-behaved with it present. Scheme, host, query,
// and fragment are left untouched.
func EnsureTrailingSlash(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}

	if !strings.HasSuffix(parsed.Path, "/") {
		parsed.Path += "/"
	}

	return parsed.String()
}

// JoinURL joins a base URL with a path segment.
func JoinURL(base, path string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}

// NormalizePath reduces a path token to its bare endpoint form for
// comparisons: surrounding whitespace, leading slashes, a leading "api/"
// segment, and trailing slashes are all stripped.
func NormalizePath(path string) string {
	cleaned := strings.TrimLeft(strings.TrimSpace(path), "/")
	cleaned = strings.TrimPrefix(cleaned, "api/")

	return strings.TrimRight(cleaned, "/")
}

// IsStatusPath reports whether path names the status endpoint, independent
// of its slash or api-prefix rendering.
func IsStatusPath(path string) bool {
	return NormalizePath(path) == "status"
}

// IsConfigPath reports whether path names the synthetic "cli config" target,
// which is answered locally and never sent over the wire.
func IsConfigPath(path string) bool {
	return NormalizePath(path) == "cli config"
}

// PathVariants renders a multi-word CLI path argument both ways: space-joined
// for matching synthetic targets like "cli config", slash-joined for building
// the real request URL.
func PathVariants(parts []string) (spaced, slashed string) {
	return strings.Join(parts, " "), strings.Join(parts, "/")
}

// MaskToken hides all but the last four characters of a token. Tokens of
// four characters or fewer are masked entirely.
func MaskToken(token string) string {
	if len(token) <= 4 {
		return strings.Repeat("*", len(token))
	}

	return strings.Repeat("*", len(token)-4) + token[len(token)-4:]
}
