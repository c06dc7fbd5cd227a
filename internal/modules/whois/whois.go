package whois

import (
	"context"
	"fmt"
	"strings"
	"time"

	lwhois "github.com/likexian/whois"
	whoisparser "github.com/likexian/whois-parser"

	"osintkit/internal/domain"
	"osintkit/internal/modules"
)

// Client is the part of the likexian client the module needs.
type Client interface {
	Whois(domain string, servers ...string) (string, error)
}

type ParseFunc func(raw string) (whoisparser.WhoisInfo, error)

// Module looks up domain registration data.
type Module struct {
	client Client
	parse  ParseFunc
	server string
}

type Option func(*Module)

func WithClient(c Client) Option    { return func(m *Module) { m.client = c } }
func WithParser(p ParseFunc) Option { return func(m *Module) { m.parse = p } }

// WithServer pins the WHOIS server instead of following referrals.
func WithServer(s string) Option { return func(m *Module) { m.server = s } }

func New(timeout time.Duration, opts ...Option) *Module {
	m := &Module{
		client: lwhois.NewClient().SetTimeout(timeout),
		parse:  whoisparser.Parse,
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

func (m *Module) Name() string { return modules.WHOIS }

func (m *Module) Supports(t domain.TargetType) bool { return t == domain.TargetDomain }

type lookup struct {
	raw string
	err error
}

func (m *Module) Run(ctx context.Context, target string) (res modules.Result) {
	defer func() {
		if r := recover(); r != nil {
			res = modules.Fail(fmt.Errorf("whois panic: %v", r))
		}
	}()

	query := domain.RegistrableDomain(target)
	var servers []string
	if m.server != "" {
		servers = append(servers, m.server)
	}

	ch := make(chan lookup, 1)
	go func() {
		raw, err := m.client.Whois(query, servers...)
		ch <- lookup{raw: raw, err: err}
	}()

	var l lookup
	select {
	case <-ctx.Done():
		return modules.Fail(fmt.Errorf("whois %s: %w", query, ctx.Err()))
	case l = <-ch:
	}
	if l.err != nil {
		return modules.Fail(fmt.Errorf("whois %s: %w", query, l.err))
	}

	info, err := m.parse(l.raw)
	if err != nil {
		return modules.Fail(fmt.Errorf("parse whois %s: %w", query, err))
	}

	data := map[string]any{
		"domain":          target,
		"registrar":       nil,
		"creation_date":   nil,
		"expiration_date": nil,
		"name_servers":    []string{},
		"status":          []string{},
		"raw":             l.raw,
	}
	if info.Registrar != nil && info.Registrar.Name != "" {
		data["registrar"] = info.Registrar.Name
	}
	if info.Registrant != nil && info.Registrant.Organization != "" {
		data["registrant_org"] = info.Registrant.Organization
	}
	if d := info.Domain; d != nil {
		if d.CreatedDate != "" {
			data["creation_date"] = d.CreatedDate
		}
		if d.ExpirationDate != "" {
			data["expiration_date"] = d.ExpirationDate
		}
		if d.NameServers != nil {
			data["name_servers"] = d.NameServers
		}
		if d.Status != nil {
			data["status"] = d.Status
		}
	}
	return modules.OK(data)
}

func (m *Module) Map(target string, data map[string]any) []modules.Observation {
	return MapResult(target, data)
}

// MapResult records the WHOIS data on the target's domain entity and adds a
// finding-less domain entity per name server.
func MapResult(target string, data map[string]any) []modules.Observation {
	obs := []modules.Observation{{
		Type:     domain.EntityDomain,
		Value:    target,
		Metadata: data,
		Finding: &modules.FindingSpec{
			Source:     "whois",
			Type:       "domain_info",
			Confidence: 1.0,
			Raw:        data,
		},
	}}
	for _, ns := range modules.Strings(data["name_servers"]) {
		ns = strings.TrimSpace(ns)
		if ns == "" {
			continue
		}
		obs = append(obs, modules.Observation{
			Type:     domain.EntityDomain,
			Value:    strings.ToLower(ns),
			Metadata: map[string]any{"source": "whois", "type": "name_server"},
		})
	}
	return obs
}
