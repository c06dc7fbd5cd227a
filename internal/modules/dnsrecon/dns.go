package dnsrecon

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/miekg/dns"

	"osintkit/internal/domain"
	"osintkit/internal/modules"
)

const DefaultServer = "1.1.1.1:53"

// Exchanger is satisfied by *dns.Client.
type Exchanger interface {
	ExchangeContext(ctx context.Context, m *dns.Msg, address string) (*dns.Msg, time.Duration, error)
}

// Module resolves A, AAAA, MX and NS records for a domain.
type Module struct {
	client Exchanger
	server string
}

func New(server string, timeout time.Duration) *Module {
	return NewWithExchanger(&dns.Client{Timeout: timeout}, server)
}

func NewWithExchanger(c Exchanger, server string) *Module {
	if server == "" {
		server = DefaultServer
	}
	return &Module{client: c, server: server}
}

func (m *Module) Name() string { return modules.DNS }

func (m *Module) Supports(t domain.TargetType) bool { return t == domain.TargetDomain }

var queries = []struct {
	key   string
	qtype uint16
}{
	{"a", dns.TypeA},
	{"aaaa", dns.TypeAAAA},
	{"mx", dns.TypeMX},
	{"ns", dns.TypeNS},
}

func (m *Module) Run(ctx context.Context, target string) (res modules.Result) {
	defer func() {
		if r := recover(); r != nil {
			res = modules.Fail(fmt.Errorf("dns panic: %v", r))
		}
	}()

	name := domain.NormalizeHost(target)
	data := map[string]any{"domain": name}
	var errs []error
	for _, q := range queries {
		values, err := m.lookup(ctx, name, q.qtype)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", strings.ToUpper(q.key), err))
			values = []string{}
		}
		data[q.key] = values
	}
	if len(errs) == len(queries) {
		return modules.Fail(errors.Join(errs...))
	}
	return modules.OK(data)
}

func (m *Module) lookup(ctx context.Context, name string, qtype uint16) ([]string, error) {
	msg := new(dns.Msg)
	msg.SetQuestion(dns.Fqdn(name), qtype)
	msg.RecursionDesired = true

	r, _, err := m.client.ExchangeContext(ctx, msg, m.server)
	if err != nil {
		return nil, err
	}
	if r.Rcode != dns.RcodeSuccess {
		return nil, fmt.Errorf("rcode %s", dns.RcodeToString[r.Rcode])
	}

	seen := make(map[string]struct{})
	for _, rr := range r.Answer {
		var v string
		switch rec := rr.(type) {
		case *dns.A:
			v = rec.A.String()
		case *dns.AAAA:
			v = rec.AAAA.String()
		case *dns.MX:
			v = rec.Mx
		case *dns.NS:
			v = rec.Ns
		default:
			continue
		}
		v = strings.ToLower(strings.TrimSuffix(v, "."))
		if v != "" {
			seen[v] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Strings(out)
	return out, nil
}

func (m *Module) Map(target string, data map[string]any) []modules.Observation {
	obs := []modules.Observation{{
		Type:  domain.EntityDomain,
		Value: target,
		Finding: &modules.FindingSpec{
			Source:     "dns",
			Type:       "dns_records",
			Confidence: 1.0,
			Raw:        data,
		},
	}}
	for _, rec := range []string{"a", "aaaa"} {
		for _, ip := range modules.Strings(data[rec]) {
			obs = append(obs, modules.Observation{
				Type:     domain.EntityIP,
				Value:    ip,
				Metadata: map[string]any{"source": "dns", "record": strings.ToUpper(rec), "domain": target},
			})
		}
	}
	for _, mx := range modules.Strings(data["mx"]) {
		obs = append(obs, modules.Observation{
			Type:     domain.EntityDomain,
			Value:    mx,
			Metadata: map[string]any{"source": "dns", "type": "mail_exchanger"},
		})
	}
	for _, ns := range modules.Strings(data["ns"]) {
		obs = append(obs, modules.Observation{
			Type:     domain.EntityDomain,
			Value:    ns,
			Metadata: map[string]any{"source": "dns", "type": "name_server"},
		})
	}
	return obs
}
