// Package redact strips credentials from text bound for logs and error
// messages. Git diagnostics echo remote URLs back verbatim, so a credentialed
// HTTPS remote would otherwise leak its token into CI logs.
package redact

import (
	"regexp"
	"strings"
	"sync"
)

// Replacement substitutes every redacted value.
const Replacement = "***"

var (
	// userinfoRe matches the userinfo section of an HTTP(S) URL, which is
	// where Normalize injects credentials.
	userinfoRe = regexp.MustCompile(`(https?://)[^/@\s]+@`)

	// tokenRe matches GitHub token literals by their well-known prefixes,
	// covering tokens that reach the logs outside of a URL.
	tokenRe = regexp.MustCompile(`gh[pousr]_[A-Za-z0-9_]{16,}`)
)

// minSecretLen guards against registering values so short that replacing
// them would mangle unrelated text.
const minSecretLen = 4

// Redactor replaces registered secrets and recognizable credential shapes.
type Redactor struct {
	mu      sync.RWMutex
	secrets []string
}

// New creates a Redactor seeded with the given secret values.
func New(secrets ...string) *Redactor {
	r := &Redactor{}
	for _, s := range secrets {
		r.Add(s)
	}
	return r
}

// Add registers an exact secret value for replacement. Empty and very short
// values are ignored.
func (r *Redactor) Add(secret string) {
	if len(secret) < minSecretLen {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.secrets = append(r.secrets, secret)
}

// String returns s with registered secrets, URL userinfo sections and
// recognizable token literals replaced.
func (r *Redactor) String(s string) string {
	r.mu.RLock()
	secrets := r.secrets
	r.mu.RUnlock()

	for _, secret := range secrets {
		s = strings.ReplaceAll(s, secret, Replacement)
	}
	s = userinfoRe.ReplaceAllString(s, "${1}"+Replacement+"@")
	s = tokenRe.ReplaceAllString(s, Replacement)
	return s
}

// defaultRedactor serves the package-level helpers. One process handles one
// run, so a single shared registry is enough.
var defaultRedactor = New()

// Add registers a secret with the package-level redactor.
func Add(secret string) { defaultRedactor.Add(secret) }

// String redacts s through the package-level redactor.
func String(s string) string { return defaultRedactor.String(s) }
