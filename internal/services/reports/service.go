package reports

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"osintkit/internal/domain"
	"osintkit/internal/llm"
	"osintkit/internal/ports"
)

// DefaultPrompt is rendered with the scan context as {{.Context}}.
const DefaultPrompt = `You are reviewing the results of an OSINT reconnaissance scan.
Summarize the attack surface below for a security analyst. Call out
exposed infrastructure, third-party providers and anything unusual.

{{.Context}}`

// Service builds LLM reports from completed scans.
type Service struct {
	scanner ports.Scanner
	reports ports.ReportRepository
	driver  llm.Driver
	prompt  string
	logger  *logrus.Logger
	now     func() time.Time
}

type Option func(*Service)

func WithPrompt(p string) Option            { return func(s *Service) { s.prompt = p } }
func WithLogger(l *logrus.Logger) Option    { return func(s *Service) { s.logger = l } }
func WithClock(now func() time.Time) Option { return func(s *Service) { s.now = now } }

func New(scanner ports.Scanner, reports ports.ReportRepository, driver llm.Driver, opts ...Option) *Service {
	s := &Service{
		scanner: scanner,
		reports: reports,
		driver:  driver,
		prompt:  DefaultPrompt,
		logger:  logrus.StandardLogger(),
		now:     func() time.Time { return time.Now().UTC() },
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Generate summarizes a completed scan's graph and stores the report. An
// embedding failure only costs the report its embedding.
func (s *Service) Generate(ctx context.Context, scanID string) (domain.Report, error) {
	g, err := s.scanner.Get(ctx, scanID)
	if err != nil {
		return domain.Report{}, err
	}
	if g.Scan.Status != domain.StatusCompleted {
		return domain.Report{}, fmt.Errorf("%w: scan %s is %s", domain.ErrScanNotCompleted, scanID, g.Scan.Status)
	}

	sections := Sections(g)
	summary, err := s.driver.GenerateSummary(ctx, Context(g), s.prompt)
	if err != nil {
		return domain.Report{}, fmt.Errorf("generate summary: %w", err)
	}

	log := s.logger.WithField("scan_id", scanID)
	var embedding []float64
	if strings.TrimSpace(summary) != "" {
		if embedding, err = s.driver.Embed(ctx, summary); err != nil {
			log.WithError(err).Warn("summary embedding failed")
			embedding = nil
		}
	}

	r, err := s.reports.InsertReport(ctx, domain.Report{
		ID:        uuid.NewString(),
		ScanID:    scanID,
		Title:     "OSINT report: " + g.Scan.Target,
		Summary:   summary,
		Sections:  sections,
		Embedding: embedding,
		CreatedAt: s.now(),
	})
	if err != nil {
		return domain.Report{}, fmt.Errorf("store report: %w", err)
	}
	log.WithField("report_id", r.ID).Info("report generated")
	return r, nil
}

func (s *Service) Get(ctx context.Context, reportID string) (domain.Report, error) {
	return s.reports.GetReport(ctx, reportID)
}

func (s *Service) AvailableModels(ctx context.Context) ([]string, error) {
	return s.driver.AvailableModels(ctx)
}

// Sections groups entity values by type and counts findings per source.
func Sections(g domain.ScanGraph) map[string]any {
	byType := map[string][]string{}
	for _, e := range g.Entities {
		byType[string(e.Type)] = append(byType[string(e.Type)], e.CanonicalValue)
	}
	for _, vs := range byType {
		sort.Strings(vs)
	}
	bySource := map[string]int{}
	for _, f := range g.Findings {
		bySource[f.Source]++
	}
	return map[string]any{
		"target":      g.Scan.Target,
		"target_type": string(g.Scan.Type),
		"entities":    byType,
		"findings":    bySource,
	}
}

// Context renders the graph as the plain text handed to the LLM.
func Context(g domain.ScanGraph) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Target: %s (%s)\n", g.Scan.Target, g.Scan.Type)
	fmt.Fprintf(&b, "Entities: %d, findings: %d\n", len(g.Entities), len(g.Findings))

	ents := append([]domain.Entity(nil), g.Entities...)
	sort.Slice(ents, func(i, j int) bool {
		if ents[i].Type != ents[j].Type {
			return ents[i].Type < ents[j].Type
		}
		return ents[i].CanonicalValue < ents[j].CanonicalValue
	})
	count := map[string]int{}
	for _, f := range g.Findings {
		count[f.EntityID]++
	}
	for _, e := range ents {
		fmt.Fprintf(&b, "- %s %s", e.Type, e.CanonicalValue)
		if n := count[e.ID]; n > 0 {
			fmt.Fprintf(&b, " (%d findings)", n)
		}
		b.WriteByte('\n')
	}

	sources := map[string][]string{}
	for _, f := range g.Findings {
		sources[f.Source] = append(sources[f.Source], f.Type)
	}
	names := make([]string, 0, len(sources))
	for k := range sources {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, n := range names {
		fmt.Fprintf(&b, "Source %s: %s\n", n, strings.Join(sources[n], ", "))
	}
	return b.String()
}

var _ ports.Reports = (*Service)(nil)
