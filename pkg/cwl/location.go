package cwl

import (
	"fmt"
	"net/url"
	"strings"
)

// Supported URI schemes for $include targets.
const (
	SchemeFile  = "file"
	SchemeHTTP  = "http"
	SchemeHTTPS = "https"
)

// ParseLocationScheme extracts the scheme from a location URI.
// Returns ("file", "/data/image.txt") for "file:///data/image.txt".
// Returns ("", raw) for bare strings with no scheme.
func ParseLocationScheme(location string) (scheme, path string) {
	if i := strings.Index(location, "://"); i > 0 {
		scheme = strings.ToLower(location[:i])
		path = location[i+3:]
		if scheme == SchemeFile {
			path = "/" + strings.TrimLeft(path, "/")
		}
		return scheme, path
	}
	return "", location
}

// LocalPath converts an $include target into a filesystem path.
// Bare paths and file:// URIs are accepted and URL-decoded, so "item%231.txt"
// becomes "item#1.txt". Other schemes are rejected; targets are never fetched
// over the network.
func LocalPath(location string) (string, error) {
	scheme, path := ParseLocationScheme(location)
	switch scheme {
	case "", SchemeFile:
	default:
		return "", fmt.Errorf("unsupported location scheme %q", scheme)
	}
	if decoded, err := url.PathUnescape(path); err == nil {
		path = decoded
	}
	if path == "" {
		return "", fmt.Errorf("empty location")
	}
	return path, nil
}
