package modules

import (
	"context"
	"errors"
	"testing"

	"osintkit/internal/domain"
)

type stubModule struct{ name string }

func (s stubModule) Name() string                       { return s.name }
func (s stubModule) Supports(domain.TargetType) bool    { return true }
func (s stubModule) Run(context.Context, string) Result { return OK(nil) }
func (s stubModule) Map(string, map[string]any) []Observation {
	return nil
}

func TestRegistry(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	r.Register(stubModule{name: WHOIS})
	r.Register(stubModule{name: CertificateTransparency}, "ssl", "crtsh")

	t.Run("lookup by name", func(t *testing.T) {
		t.Parallel()
		m, ok := r.Lookup("WHOIS")
		if !ok || m.Name() != WHOIS {
			t.Fatalf("Lookup(WHOIS) = %v, %v", m, ok)
		}
	})

	t.Run("lookup by alias", func(t *testing.T) {
		t.Parallel()
		n, ok := r.Canonical("ssl")
		if !ok || n != CertificateTransparency {
			t.Errorf("Canonical(ssl) = %q, %v", n, ok)
		}
	})

	t.Run("validate rejects unknown names", func(t *testing.T) {
		t.Parallel()
		if err := r.Validate([]string{"whois", "shodan"}); !errors.Is(err, domain.ErrUnknownModule) {
			t.Errorf("expected ErrUnknownModule, got %v", err)
		}
		if err := r.Validate([]string{"whois", "ssl"}); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("defaults are the standard set", func(t *testing.T) {
		t.Parallel()
		d := r.Defaults()
		if len(d) != 2 || d[0] != WHOIS || d[1] != CertificateTransparency {
			t.Errorf("Defaults() = %v", d)
		}
	})

	t.Run("names sorted", func(t *testing.T) {
		t.Parallel()
		n := r.Names()
		if len(n) != 2 || n[0] != CertificateTransparency {
			t.Errorf("Names() = %v", n)
		}
	})
}

func TestStrings(t *testing.T) {
	t.Parallel()

	if got := Strings([]any{"a", 1, "b"}); len(got) != 2 || got[1] != "b" {
		t.Errorf("Strings([]any) = %v", got)
	}
	if got := Strings([]string{"x"}); len(got) != 1 {
		t.Errorf("Strings([]string) = %v", got)
	}
	if got := Strings(nil); got != nil {
		t.Errorf("Strings(nil) = %v", got)
	}
}
