package apiclient

import "strings"

// DefaultBase is the local-development API address used when nothing else is configured.
const DefaultBase = "http://127.0.0.1:8000"

const apiPrefix = "/api"

// ResolveBase picks the first non-blank base from the runtime and environment
// values, falling back to DefaultBase. Trailing slashes are removed.
func ResolveBase(runtimeBase, envBase string) string {
	base := strings.TrimSpace(runtimeBase)
	if base == "" {
		base = strings.TrimSpace(envBase)
	}
	if base == "" {
		base = DefaultBase
	}
	return strings.TrimRight(base, "/")
}

// BuildURL joins base and path with exactly one /api segment between them.
// A base that already ends in /api and a path that already starts with /api
// are both tolerated.
func BuildURL(base, path string) string {
	base = strings.TrimSuffix(strings.TrimRight(base, "/"), apiPrefix)

	if path != "" && !strings.HasPrefix(path, "/") && !strings.HasPrefix(path, "?") {
		path = "/" + path
	}

	switch {
	case path == apiPrefix:
		path = ""
	case strings.HasPrefix(path, apiPrefix+"/"), strings.HasPrefix(path, apiPrefix+"?"):
		path = strings.TrimPrefix(path, apiPrefix)
	}

	return base + apiPrefix + path
}
