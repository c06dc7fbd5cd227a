package reports

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"osintkit/internal/adapters/memory"
	"osintkit/internal/domain"
	"osintkit/internal/logging"
	"osintkit/internal/modules"
	"osintkit/internal/services/scanner"
)

type fakeDriver struct {
	summary  string
	embedErr error
	prompt   string
	context  string
}

func (f *fakeDriver) GenerateSummary(_ context.Context, reportContext, promptTemplate string) (string, error) {
	f.context, f.prompt = reportContext, promptTemplate
	return f.summary, nil
}

func (f *fakeDriver) Embed(context.Context, string) ([]float64, error) {
	if f.embedErr != nil {
		return nil, f.embedErr
	}
	return []float64{0.5, 0.25}, nil
}

func (f *fakeDriver) AvailableModels(context.Context) ([]string, error) {
	return []string{"llama3"}, nil
}

func setup(t *testing.T, driver *fakeDriver) (*Service, *memory.Store, domain.Scan) {
	t.Helper()
	ctx := context.Background()
	store := memory.New()
	scans := scanner.New(store, store, store, nil, modules.NewRegistry())
	scan, err := scans.Submit(ctx, "example.com", "domain", nil)
	if err != nil {
		t.Fatal(err)
	}
	now := time.Now()
	target, _ := store.UpsertEntity(ctx, scan.ID, domain.EntityDomain, "example.com", map[string]any{}, now)
	_, _ = store.UpsertEntity(ctx, scan.ID, domain.EntityDomain, "ns1.example.com", map[string]any{}, now)
	_, _ = store.UpsertEntity(ctx, scan.ID, domain.EntitySubdomain, "www.example.com", map[string]any{}, now)
	_, _ = store.InsertFinding(ctx, domain.Finding{EntityID: target.ID, Source: "whois", Type: "domain_info"})
	_, _ = store.InsertFinding(ctx, domain.Finding{EntityID: target.ID, Source: "ssl", Type: "certificate_transparency"})
	return New(scans, store, driver, WithLogger(logging.Discard())), store, scan
}

func TestGenerateRefusesUnfinishedScans(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, store, scan := setup(t, &fakeDriver{summary: "x"})
	for _, status := range []domain.ScanStatus{"", domain.StatusRunning, domain.StatusFailed} {
		if status != "" {
			if _, err := store.TransitionScan(ctx, scan.ID, status, time.Now()); err != nil {
				t.Fatal(err)
			}
		}
		if _, err := svc.Generate(ctx, scan.ID); !errors.Is(err, domain.ErrScanNotCompleted) {
			t.Errorf("status %q: expected ErrScanNotCompleted, got %v", status, err)
		}
	}
	if _, err := svc.Generate(ctx, "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestGenerate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	driver := &fakeDriver{summary: "Two name servers, one subdomain."}
	svc, store, scan := setup(t, driver)
	_, _ = store.TransitionScan(ctx, scan.ID, domain.StatusRunning, time.Now())
	_, _ = store.TransitionScan(ctx, scan.ID, domain.StatusCompleted, time.Now())

	r, err := svc.Generate(ctx, scan.ID)
	if err != nil {
		t.Fatal(err)
	}
	if r.Summary != driver.summary || r.Title != "OSINT report: example.com" || len(r.Embedding) != 2 {
		t.Errorf("report = %+v", r)
	}
	if r.Score != nil {
		t.Error("score is not computed")
	}
	if driver.prompt != DefaultPrompt {
		t.Error("default prompt not used")
	}
	if !strings.Contains(driver.context, "- domain example.com (2 findings)") || !strings.Contains(driver.context, "- subdomain www.example.com\n") {
		t.Errorf("context = %q", driver.context)
	}

	ents := r.Sections["entities"].(map[string][]string)
	if len(ents["domain"]) != 2 || ents["domain"][0] != "example.com" {
		t.Errorf("entity section = %v", ents)
	}
	if counts := r.Sections["findings"].(map[string]int); counts["whois"] != 1 || counts["ssl"] != 1 {
		t.Errorf("finding section = %v", counts)
	}

	got, err := svc.Get(ctx, r.ID)
	if err != nil || got.ID != r.ID {
		t.Errorf("Get = %+v, %v", got, err)
	}
}

func TestGenerateSurvivesEmbeddingFailure(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, store, scan := setup(t, &fakeDriver{summary: "ok", embedErr: errors.New("HTTP error: 500")})
	_, _ = store.TransitionScan(ctx, scan.ID, domain.StatusRunning, time.Now())
	_, _ = store.TransitionScan(ctx, scan.ID, domain.StatusCompleted, time.Now())

	r, err := svc.Generate(ctx, scan.ID)
	if err != nil {
		t.Fatal(err)
	}
	if r.Embedding != nil {
		t.Errorf("embedding = %v", r.Embedding)
	}
}
