package modules

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"osintkit/internal/domain"
)

const (
	WHOIS                   = "whois"
	CertificateTransparency = "certificate_transparency"
	DNS                     = "dns"
)

// StandardSet runs when a scan names no modules.
var StandardSet = []string{WHOIS, CertificateTransparency}

// Registry maps module names (and aliases) to modules.
type Registry struct {
	mu       sync.RWMutex
	modules  map[string]Module
	aliases  map[string]string
	defaults []string
}

func NewRegistry() *Registry {
	return &Registry{
		modules:  make(map[string]Module),
		aliases:  make(map[string]string),
		defaults: append([]string(nil), StandardSet...),
	}
}

// Register adds m under its name and any aliases. Registering a name twice
// replaces the earlier module.
func (r *Registry) Register(m Module, aliases ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	name := key(m.Name())
	r.modules[name] = m
	for _, a := range aliases {
		r.aliases[key(a)] = name
	}
}

// Canonical returns the registered name for name or alias.
func (r *Registry) Canonical(name string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := key(name)
	if a, ok := r.aliases[n]; ok {
		n = a
	}
	_, ok := r.modules[n]
	return n, ok
}

func (r *Registry) Lookup(name string) (Module, bool) {
	n, ok := r.Canonical(name)
	if !ok {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.modules[n], true
}

// Validate checks every name against the registry.
func (r *Registry) Validate(names []string) error {
	for _, n := range names {
		if _, ok := r.Canonical(n); !ok {
			return fmt.Errorf("%w: %q", domain.ErrUnknownModule, n)
		}
	}
	return nil
}

func (r *Registry) SetDefaults(names ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.defaults = append([]string(nil), names...)
}

func (r *Registry) Defaults() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.defaults...)
}

// Names lists registered module names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.modules))
	for n := range r.modules {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

func key(s string) string { return strings.ToLower(strings.TrimSpace(s)) }
