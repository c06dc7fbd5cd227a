package orchestrator

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"golang.org/x/time/rate"

	"osintkit/internal/adapters/memory"
	"osintkit/internal/domain"
	"osintkit/internal/logging"
	"osintkit/internal/modules"
	"osintkit/internal/modules/crtsh"
	"osintkit/internal/modules/whois"
	"osintkit/internal/ports"
	"osintkit/internal/services/findings"
	"osintkit/internal/services/resolver"
)

type fakeModule struct {
	name   string
	result modules.Result
	mapper func(target string, data map[string]any) []modules.Observation
	types  []domain.TargetType
	onRun  func(ctx context.Context)
	calls  int32
}

func (f *fakeModule) Name() string { return f.name }

func (f *fakeModule) Supports(t domain.TargetType) bool {
	if f.types == nil {
		return true
	}
	for _, x := range f.types {
		if x == t {
			return true
		}
	}
	return false
}

func (f *fakeModule) Run(ctx context.Context, _ string) modules.Result {
	atomic.AddInt32(&f.calls, 1)
	if f.onRun != nil {
		f.onRun(ctx)
	}
	return f.result
}

func (f *fakeModule) Map(target string, data map[string]any) []modules.Observation {
	if f.mapper == nil {
		return nil
	}
	return f.mapper(target, data)
}

func whoisFake() *fakeModule {
	return &fakeModule{
		name: modules.WHOIS,
		result: modules.OK(map[string]any{
			"domain":       "example.com",
			"registrar":    "Example Registrar",
			"name_servers": []string{"ns1.example.com", "NS2.EXAMPLE.COM"},
		}),
		mapper: whois.MapResult,
	}
}

func failingFake(name string) *fakeModule {
	return &fakeModule{name: name, result: modules.Fail(errors.New("upstream HTTP error: 503"))}
}

type harness struct {
	store    *memory.Store
	events   *memory.ScanLog
	registry *modules.Registry
	orch     *Orchestrator
}

func newHarness(t *testing.T, concurrency int, mods ...modules.Module) *harness {
	t.Helper()
	store := memory.New()
	reg := modules.NewRegistry()
	for _, m := range mods {
		reg.Register(m)
	}
	events := memory.NewScanLog(100)
	orch := New(store, resolver.New(store), findings.New(store), reg, events, Options{
		Concurrency: concurrency,
		Logger:      logging.Discard(),
	})
	return &harness{store: store, events: events, registry: reg, orch: orch}
}

func (h *harness) submit(t *testing.T, target string, typ domain.TargetType, mods ...string) domain.Scan {
	t.Helper()
	scan, err := h.store.CreateScan(context.Background(), domain.Scan{
		Target:   target,
		Type:     typ,
		Settings: domain.ScanSettings{Modules: mods},
	})
	if err != nil {
		t.Fatal(err)
	}
	return scan
}

func (h *harness) graph(t *testing.T, scanID string) (domain.Scan, map[string]domain.Entity, []domain.Finding) {
	t.Helper()
	ctx := context.Background()
	scan, err := h.store.GetScan(ctx, scanID)
	if err != nil {
		t.Fatal(err)
	}
	ents, _ := h.store.ListScanEntities(ctx, scanID)
	byValue := make(map[string]domain.Entity, len(ents))
	ids := make([]string, 0, len(ents))
	for _, e := range ents {
		byValue[string(e.Type)+":"+e.CanonicalValue] = e
		ids = append(ids, e.ID)
	}
	fs, _ := h.store.ListFindings(ctx, ids...)
	return scan, byValue, fs
}

func findingsFor(fs []domain.Finding, entityID string) []domain.Finding {
	var out []domain.Finding
	for _, f := range fs {
		if f.EntityID == entityID {
			out = append(out, f)
		}
	}
	return out
}

func TestWhoisNameServerScenario(t *testing.T) {
	t.Parallel()

	h := newHarness(t, 1, whoisFake())
	scan := h.submit(t, "example.com", domain.TargetDomain, "whois")

	if err := h.orch.Process(context.Background(), scan.ID); err != nil {
		t.Fatalf("Process: %v", err)
	}

	got, ents, fs := h.graph(t, scan.ID)
	if got.Status != domain.StatusCompleted || got.StartedAt == nil || got.FinishedAt == nil {
		t.Fatalf("scan = %+v", got)
	}
	if len(ents) != 3 {
		t.Fatalf("expected 3 entities, got %d: %v", len(ents), ents)
	}
	target, ok := ents["domain:example.com"]
	if !ok {
		t.Fatal("missing example.com entity")
	}
	if tf := findingsFor(fs, target.ID); len(tf) != 1 || tf[0].Source != "whois" || tf[0].Type != "domain_info" || tf[0].Confidence != 1.0 {
		t.Errorf("target findings = %+v", tf)
	}
	if target.Metadata["registrar"] != "Example Registrar" {
		t.Errorf("target metadata = %v", target.Metadata)
	}
	for _, ns := range []string{"ns1.example.com", "ns2.example.com"} {
		e, ok := ents["domain:"+ns]
		if !ok {
			t.Errorf("missing name server entity %s", ns)
			continue
		}
		if len(findingsFor(fs, e.ID)) != 0 {
			t.Errorf("name server %s should have no findings", ns)
		}
		if e.Metadata["type"] != "name_server" {
			t.Errorf("%s metadata = %v", ns, e.Metadata)
		}
	}
}

func TestCertificateTransparencyScenario(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]map[string]any{
			{"id": 1, "issuer_name": "R3", "name_value": "sub1.example.com\nsub2.example.com"},
			{"id": 2, "issuer_name": "R3", "name_value": "sub1.example.com\nsub2.example.com"},
		})
	}))
	defer srv.Close()

	ct := crtsh.New(5*time.Second,
		crtsh.WithBaseURL(srv.URL),
		crtsh.WithLimiter(rate.NewLimiter(rate.Inf, 1)),
		crtsh.WithLogger(logging.Discard()),
	)
	h := newHarness(t, 1, ct)
	h.registry.Register(ct, "ssl")
	scan := h.submit(t, "https://Example.com/", domain.TargetDomain, "ssl")

	if err := h.orch.Process(context.Background(), scan.ID); err != nil {
		t.Fatalf("Process: %v", err)
	}

	_, ents, fs := h.graph(t, scan.ID)
	if len(ents) != 3 {
		t.Fatalf("expected target + 2 subdomains, got %v", ents)
	}
	target := ents["domain:example.com"]
	tf := findingsFor(fs, target.ID)
	if len(tf) != 1 || tf[0].Source != "ssl" || tf[0].Type != "certificate_transparency" {
		t.Fatalf("target findings = %+v", tf)
	}
	raw := tf[0].RawResult.(map[string]any)
	if subs := modules.Strings(raw["subdomains"]); len(subs) != 2 || subs[0] != "sub1.example.com" {
		t.Errorf("raw subdomains = %v", subs)
	}
	for _, sub := range []string{"sub1.example.com", "sub2.example.com"} {
		e, ok := ents["subdomain:"+sub]
		if !ok {
			t.Errorf("missing subdomain %s", sub)
			continue
		}
		if e.Metadata["parent_domain"] != "example.com" {
			t.Errorf("%s metadata = %v", sub, e.Metadata)
		}
	}
}

func TestPartialFailureCompletes(t *testing.T) {
	t.Parallel()

	broken := failingFake(modules.CertificateTransparency)
	h := newHarness(t, 1, broken, whoisFake())
	scan := h.submit(t, "example.com", domain.TargetDomain, modules.CertificateTransparency, modules.WHOIS)

	if err := h.orch.Process(context.Background(), scan.ID); err != nil {
		t.Fatalf("module failure must not fail the scan: %v", err)
	}

	got, ents, fs := h.graph(t, scan.ID)
	if got.Status != domain.StatusCompleted {
		t.Fatalf("status = %s", got.Status)
	}
	if len(ents) != 3 || len(fs) != 1 || fs[0].Source != "whois" {
		t.Errorf("expected only whois output, got %d entities %d findings", len(ents), len(fs))
	}

	events, _ := h.events.Tail(context.Background(), scan.ID, 0)
	var failed bool
	for _, ev := range events {
		if ev.Module == modules.CertificateTransparency && ev.Event == domain.EventFailed {
			failed = ev.Error == "upstream HTTP error: 503"
		}
	}
	if !failed {
		t.Errorf("expected failed event for certificate_transparency, got %+v", events)
	}
}

type flakyEntities struct {
	ports.EntityRepository
	failAfter int

	mu    sync.Mutex
	calls int
}

func (f *flakyEntities) UpsertEntity(ctx context.Context, scanID string, typ domain.EntityType, value string, md map[string]any, at time.Time) (domain.Entity, error) {
	f.mu.Lock()
	f.calls++
	n := f.calls
	f.mu.Unlock()
	if n > f.failAfter {
		return domain.Entity{}, errors.New("dial tcp 127.0.0.1:5432: connection refused")
	}
	return f.EntityRepository.UpsertEntity(ctx, scanID, typ, value, md, at)
}

func TestStorageFailureFailsScan(t *testing.T) {
	t.Parallel()

	store := memory.New()
	flaky := &flakyEntities{EntityRepository: store, failAfter: 1}
	later := whoisFake()
	later.name = "later"

	reg := modules.NewRegistry()
	reg.Register(whoisFake())
	reg.Register(later)
	orch := New(store, resolver.New(flaky), findings.New(store), reg, memory.NewScanLog(10), Options{Logger: logging.Discard()})

	scan, _ := store.CreateScan(context.Background(), domain.Scan{
		Target: "example.com", Type: domain.TargetDomain,
		Settings: domain.ScanSettings{Modules: []string{modules.WHOIS, "later"}},
	})
	if err := orch.Process(context.Background(), scan.ID); err == nil {
		t.Fatal("expected storage failure to propagate")
	}

	got, _ := store.GetScan(context.Background(), scan.ID)
	if got.Status != domain.StatusFailed || got.FinishedAt == nil {
		t.Fatalf("scan = %+v", got)
	}
	if flaky.calls != 2 {
		t.Errorf("expected no writes after the failure point, got %d upsert calls", flaky.calls)
	}
	if atomic.LoadInt32(&later.calls) != 0 {
		t.Error("modules after a fatal error must not run")
	}
}

func TestStateMachine(t *testing.T) {
	t.Parallel()

	t.Run("running before modules execute", func(t *testing.T) {
		t.Parallel()

		h := newHarness(t, 1)
		var seen domain.ScanStatus
		var scanID string
		watcher := &fakeModule{name: "watcher", result: modules.OK(nil)}
		watcher.onRun = func(ctx context.Context) {
			s, _ := h.store.GetScan(ctx, scanID)
			seen = s.Status
		}
		h.registry.Register(watcher)
		scanID = h.submit(t, "example.com", domain.TargetDomain, "watcher").ID

		if err := h.orch.Process(context.Background(), scanID); err != nil {
			t.Fatal(err)
		}
		if seen != domain.StatusRunning {
			t.Errorf("status during module run = %s, want running", seen)
		}
	})

	t.Run("terminal scans are not re-run", func(t *testing.T) {
		t.Parallel()

		mod := whoisFake()
		h := newHarness(t, 1, mod)
		scan := h.submit(t, "example.com", domain.TargetDomain, "whois")
		if err := h.orch.Process(context.Background(), scan.ID); err != nil {
			t.Fatal(err)
		}
		err := h.orch.Process(context.Background(), scan.ID)
		if !errors.Is(err, domain.ErrInvalidTransition) {
			t.Fatalf("expected ErrInvalidTransition, got %v", err)
		}
		got, _ := h.store.GetScan(context.Background(), scan.ID)
		if got.Status != domain.StatusCompleted {
			t.Errorf("status = %s", got.Status)
		}
		if atomic.LoadInt32(&mod.calls) != 1 {
			t.Errorf("module ran %d times", mod.calls)
		}
	})
}

func TestCancelledScanFails(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	mod := whoisFake()
	mod.mapper = func(target string, data map[string]any) []modules.Observation {
		// Shutdown arrives while the last module's output is being written.
		cancel()
		return whois.MapResult(target, data)
	}
	h := newHarness(t, 1, mod)
	scan := h.submit(t, "example.com", domain.TargetDomain, "whois")

	err := h.orch.Process(ctx, scan.ID)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	got, _ := h.store.GetScan(context.Background(), scan.ID)
	if got.Status != domain.StatusFailed || got.FinishedAt == nil {
		t.Errorf("scan = %+v, want failed", got)
	}
}

func TestRedeliveredScanIsIdempotent(t *testing.T) {
	t.Parallel()

	h := newHarness(t, 1, whoisFake())
	scan := h.submit(t, "example.com", domain.TargetDomain, "whois")
	ctx := context.Background()

	// First worker gets as far as running, then dies.
	if _, err := h.store.TransitionScan(ctx, scan.ID, domain.StatusRunning, time.Now()); err != nil {
		t.Fatal(err)
	}
	if err := h.orch.Process(ctx, scan.ID); err != nil {
		t.Fatal(err)
	}
	first, _, _ := h.graph(t, scan.ID)
	if first.Status != domain.StatusCompleted {
		t.Fatalf("status = %s", first.Status)
	}

	// A second scan of the same target converges on the same entities.
	again := h.submit(t, "EXAMPLE.com", domain.TargetDomain, "whois")
	if err := h.orch.Process(ctx, again.ID); err != nil {
		t.Fatal(err)
	}
	_, ents, fs := h.graph(t, again.ID)
	if len(ents) != 3 {
		t.Errorf("entities = %d, want 3", len(ents))
	}
	target := ents["domain:example.com"]
	if got := findingsFor(fs, target.ID); len(got) != 2 {
		t.Errorf("findings on target = %d, want 2 (append-only)", len(got))
	}
	if target.ScanID == nil || *target.ScanID != scan.ID {
		t.Error("entity keeps its first discovering scan")
	}
}

func TestDefaultsAndSkips(t *testing.T) {
	t.Parallel()

	t.Run("empty module list runs the standard set", func(t *testing.T) {
		t.Parallel()

		w := whoisFake()
		ct := &fakeModule{name: modules.CertificateTransparency, result: modules.OK(map[string]any{}), mapper: crtsh.MapResult}
		h := newHarness(t, 1, w, ct)
		scan := h.submit(t, "example.com", domain.TargetDomain)
		if err := h.orch.Process(context.Background(), scan.ID); err != nil {
			t.Fatal(err)
		}
		if w.calls != 1 || ct.calls != 1 {
			t.Errorf("calls whois=%d ct=%d", w.calls, ct.calls)
		}
	})

	t.Run("unsupported target type is skipped", func(t *testing.T) {
		t.Parallel()

		w := whoisFake()
		w.types = []domain.TargetType{domain.TargetDomain}
		h := newHarness(t, 1, w)
		scan := h.submit(t, "someone@example.com", domain.TargetEmail, "whois")
		if err := h.orch.Process(context.Background(), scan.ID); err != nil {
			t.Fatal(err)
		}
		got, ents, _ := h.graph(t, scan.ID)
		if got.Status != domain.StatusCompleted || len(ents) != 0 || w.calls != 0 {
			t.Errorf("status=%s entities=%d calls=%d", got.Status, len(ents), w.calls)
		}
		events, _ := h.events.Tail(context.Background(), scan.ID, 0)
		if len(events) != 1 || events[0].Event != domain.EventSkipped {
			t.Errorf("events = %+v", events)
		}
	})

	t.Run("unknown and duplicate names", func(t *testing.T) {
		t.Parallel()

		ct := &fakeModule{name: modules.CertificateTransparency, result: modules.OK(map[string]any{}), mapper: crtsh.MapResult}
		h := newHarness(t, 1)
		h.registry.Register(ct, "ssl")
		scan := h.submit(t, "example.com", domain.TargetDomain, "ssl", "certificate_transparency", "shodan")
		if err := h.orch.Process(context.Background(), scan.ID); err != nil {
			t.Fatal(err)
		}
		if ct.calls != 1 {
			t.Errorf("aliased module ran %d times", ct.calls)
		}
	})
}

func TestParallelModules(t *testing.T) {
	t.Parallel()

	var inflight, peak int32
	slow := func(name string) *fakeModule {
		m := whoisFake()
		m.name = name
		m.onRun = func(context.Context) {
			n := atomic.AddInt32(&inflight, 1)
			for {
				p := atomic.LoadInt32(&peak)
				if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
					break
				}
			}
			time.Sleep(50 * time.Millisecond)
			atomic.AddInt32(&inflight, -1)
		}
		return m
	}
	h := newHarness(t, 2, slow("a"), slow("b"))
	scan := h.submit(t, "example.com", domain.TargetDomain, "a", "b")
	if err := h.orch.Process(context.Background(), scan.ID); err != nil {
		t.Fatal(err)
	}
	if atomic.LoadInt32(&peak) != 2 {
		t.Errorf("peak concurrency = %d, want 2", peak)
	}
	_, ents, fs := h.graph(t, scan.ID)
	if len(ents) != 3 || len(fs) != 2 {
		t.Errorf("entities=%d findings=%d", len(ents), len(fs))
	}
}

func TestProcessMissingScan(t *testing.T) {
	t.Parallel()

	h := newHarness(t, 1)
	if err := h.orch.Process(context.Background(), "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
