package crtsh

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"osintkit/internal/domain"
	"osintkit/internal/modules"
)

const (
	DefaultURL             = "https://crt.sh"
	DefaultMaxCertificates = 100

	maxBody = 32 << 20
)

// Module searches certificate transparency logs through crt.sh.
type Module struct {
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
	max     int
	logger  *logrus.Logger
}

type Option func(*Module)

func WithBaseURL(u string) Option          { return func(m *Module) { m.baseURL = strings.TrimRight(u, "/") } }
func WithHTTPClient(c *http.Client) Option { return func(m *Module) { m.client = c } }
func WithLimiter(l *rate.Limiter) Option   { return func(m *Module) { m.limiter = l } }
func WithLogger(l *logrus.Logger) Option   { return func(m *Module) { m.logger = l } }

// WithMaxCertificates caps how many certificate records are processed.
func WithMaxCertificates(n int) Option {
	return func(m *Module) {
		if n > 0 {
			m.max = n
		}
	}
}

func New(timeout time.Duration, opts ...Option) *Module {
	m := &Module{
		baseURL: DefaultURL,
		client:  &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(rate.Every(time.Second), 2),
		max:     DefaultMaxCertificates,
		logger:  logrus.StandardLogger(),
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

func (m *Module) Name() string { return modules.CertificateTransparency }

func (m *Module) Supports(t domain.TargetType) bool { return t == domain.TargetDomain }

type certificate struct {
	ID             int64  `json:"id"`
	EntryTimestamp string `json:"entry_timestamp"`
	NotBefore      string `json:"not_before"`
	NotAfter       string `json:"not_after"`
	IssuerName     string `json:"issuer_name"`
	CommonName     string `json:"common_name"`
	NameValue      string `json:"name_value"`
}

func (m *Module) Run(ctx context.Context, target string) (res modules.Result) {
	defer func() {
		if r := recover(); r != nil {
			res = modules.Fail(fmt.Errorf("crt.sh panic: %v", r))
		}
	}()

	name := domain.NormalizeHost(target)
	certs, err := m.query(ctx, "%."+name)
	if err != nil {
		m.logger.WithError(err).WithField("domain", name).Warn("wildcard crt.sh query failed, trying exact match")
		certs, err = m.query(ctx, name)
	}
	if err != nil {
		return modules.Fail(err)
	}
	return modules.OK(summarize(name, certs, m.max))
}

func (m *Module) query(ctx context.Context, q string) ([]certificate, error) {
	if err := m.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	u := m.baseURL + "/?" + url.Values{"q": {q}, "output": {"json"}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := m.client.Do(req)
	if err != nil {
		var ne net.Error
		if errors.As(err, &ne) && ne.Timeout() {
			return nil, errors.New("request timeout")
		}
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("HTTP error: %d", resp.StatusCode)
	}

	var certs []certificate
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBody)).Decode(&certs); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			// crt.sh answers with an object instead of a list when it has
			// nothing useful to say.
			return nil, nil
		}
		return nil, fmt.Errorf("decode crt.sh response: %w", err)
	}
	return certs, nil
}

// summarize keeps at most limit certificates and derives the sorted,
// deduplicated subdomain and issuer sets from them.
func summarize(name string, certs []certificate, limit int) map[string]any {
	total := len(certs)
	if limit > 0 && len(certs) > limit {
		certs = certs[:limit]
	}

	subs := make(map[string]struct{})
	issuers := make(map[string]struct{})
	list := make([]map[string]any, 0, len(certs))
	for _, c := range certs {
		list = append(list, map[string]any{
			"id":          c.ID,
			"logged_at":   c.EntryTimestamp,
			"not_before":  c.NotBefore,
			"not_after":   c.NotAfter,
			"issuer_name": c.IssuerName,
			"common_name": c.NameValue,
		})
		for _, n := range strings.Split(c.NameValue, "\n") {
			n = strings.ToLower(strings.TrimSpace(n))
			if n == name || strings.HasSuffix(n, "."+name) {
				subs[n] = struct{}{}
			}
		}
		if c.IssuerName != "" {
			issuers[c.IssuerName] = struct{}{}
		}
	}

	return map[string]any{
		"domain":             name,
		"certificates":       list,
		"subdomains":         sortedKeys(subs),
		"issuers":            sortedKeys(issuers),
		"total_certificates": total,
	}
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func (m *Module) Map(target string, data map[string]any) []modules.Observation {
	return MapResult(target, data)
}

// MapResult records the certificate data on the target and adds a subdomain
// entity for every name other than the target itself.
func MapResult(target string, data map[string]any) []modules.Observation {
	obs := []modules.Observation{{
		Type:  domain.EntityDomain,
		Value: target,
		Finding: &modules.FindingSpec{
			Source:     "ssl",
			Type:       "certificate_transparency",
			Confidence: 1.0,
			Raw:        data,
		},
	}}
	self := domain.NormalizeHost(target)
	for _, sub := range modules.Strings(data["subdomains"]) {
		if sub == "" || domain.NormalizeHost(sub) == self {
			continue
		}
		obs = append(obs, modules.Observation{
			Type:     domain.EntitySubdomain,
			Value:    sub,
			Metadata: map[string]any{"source": "ssl", "parent_domain": target},
		})
	}
	return obs
}
