// Package giturl classifies repository locator strings and produces
// push-ready URLs with credentials injected where needed.
package giturl

import "strings"

// Kind identifies the transport family of a repository locator.
type Kind int

const (
	// KindUnknown is a locator that matches no recognized shape. Git may
	// still accept it (e.g. scp-like syntax), so it is passed through
	// unchanged.
	KindUnknown Kind = iota

	// KindLocalPath is a filesystem path or file:// URL.
	KindLocalPath

	// KindSSH is an ssh:// or git@ style URL.
	KindSSH

	// KindHTTPSWithCredential is an HTTPS URL that already embeds userinfo.
	KindHTTPSWithCredential

	// KindHTTPS is a bare HTTPS URL without credentials.
	KindHTTPS
)

func (k Kind) String() string {
	switch k {
	case KindLocalPath:
		return "local"
	case KindSSH:
		return "ssh"
	case KindHTTPSWithCredential:
		return "https+credential"
	case KindHTTPS:
		return "https"
	default:
		return "unknown"
	}
}

// Classify determines the transport family of a locator.
func Classify(raw string) Kind {
	lower := strings.ToLower(raw)

	switch {
	case raw == "":
		return KindUnknown
	case strings.HasPrefix(lower, "file://"),
		strings.HasPrefix(raw, "/"),
		strings.HasPrefix(raw, "./"),
		strings.HasPrefix(raw, "../"),
		raw == ".", raw == "..":
		return KindLocalPath
	case strings.HasPrefix(lower, "ssh://"), strings.HasPrefix(raw, "git@"):
		return KindSSH
	case strings.HasPrefix(lower, "https://"), strings.HasPrefix(lower, "http://"):
		if hasUserinfo(raw) {
			return KindHTTPSWithCredential
		}
		return KindHTTPS
	default:
		return KindUnknown
	}
}

// hasUserinfo reports whether an http(s) URL already embeds credentials
// between the scheme and the host.
func hasUserinfo(raw string) bool {
	rest := raw
	if idx := strings.Index(rest, "://"); idx != -1 {
		rest = rest[idx+3:]
	}
	if slash := strings.Index(rest, "/"); slash != -1 {
		rest = rest[:slash]
	}
	return strings.Contains(rest, "@")
}

// Normalize produces the URL used for fetch and push. A bearer-style
// credential is injected into bare HTTPS URLs when a token is supplied;
// every other shape passes through untouched.
func Normalize(raw, token string) string {
	if token == "" || Classify(raw) != KindHTTPS {
		return raw
	}

	idx := strings.Index(raw, "://")
	return raw[:idx+3] + "x-access-token:" + token + "@" + raw[idx+3:]
}

// IsGitHub reports whether the locator points at github.com, which allows the
// default-branch query to go through the GitHub API instead of ls-remote.
func IsGitHub(raw string) bool {
	lower := strings.ToLower(raw)
	return strings.Contains(lower, "github.com/") || strings.Contains(lower, "github.com:")
}
