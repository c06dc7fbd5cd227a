package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"osintkit/internal/domain"
	"osintkit/internal/metrics"
	"osintkit/internal/modules"
	"osintkit/internal/ports"
)

// EntityResolver is satisfied by resolver.Service.
type EntityResolver interface {
	Resolve(ctx context.Context, scanID string, typ domain.EntityType, value string, metadata map[string]any) (domain.Entity, error)
}

// FindingRecorder is satisfied by findings.Recorder.
type FindingRecorder interface {
	Record(ctx context.Context, entityID, source, findingType string, confidence float64, raw any) (domain.Finding, error)
}

// Orchestrator runs a scan's modules and folds their output into the
// entity graph. It implements scanrunner.ScanProcessor.
type Orchestrator struct {
	scans       ports.ScanRepository
	resolver    EntityResolver
	recorder    FindingRecorder
	registry    *modules.Registry
	events      ports.ScanLog
	logger      *logrus.Logger
	metrics     *metrics.Metrics
	concurrency int
	now         func() time.Time
}

type Options struct {
	// Concurrency bounds how many modules of one scan run at once. Values
	// below 2 run modules sequentially.
	Concurrency int
	Logger      *logrus.Logger
	Metrics     *metrics.Metrics
	Clock       func() time.Time
}

func New(scans ports.ScanRepository, resolver EntityResolver, recorder FindingRecorder, registry *modules.Registry, events ports.ScanLog, opts Options) *Orchestrator {
	o := &Orchestrator{
		scans:       scans,
		resolver:    resolver,
		recorder:    recorder,
		registry:    registry,
		events:      events,
		logger:      opts.Logger,
		metrics:     opts.Metrics,
		concurrency: opts.Concurrency,
		now:         opts.Clock,
	}
	if o.logger == nil {
		o.logger = logrus.StandardLogger()
	}
	if o.concurrency < 1 {
		o.concurrency = 1
	}
	if o.now == nil {
		o.now = func() time.Time { return time.Now().UTC() }
	}
	return o
}

// Process loads the scan and executes it.
func (o *Orchestrator) Process(ctx context.Context, scanID string) error {
	scan, err := o.scans.GetScan(ctx, scanID)
	if err != nil {
		return fmt.Errorf("load scan %s: %w", scanID, err)
	}
	return o.Execute(ctx, scan)
}

// Execute runs every requested module against the scan target. Module
// failures are logged and skipped; any other error fails the scan and is
// returned.
func (o *Orchestrator) Execute(ctx context.Context, scan domain.Scan) error {
	log := o.logger.WithFields(logrus.Fields{"scan_id": scan.ID, "target": scan.Target})

	if _, err := o.scans.TransitionScan(ctx, scan.ID, domain.StatusRunning, o.now()); err != nil {
		err = fmt.Errorf("start scan %s: %w", scan.ID, err)
		// A scan that is already terminal stays as it is.
		if !errors.Is(err, domain.ErrInvalidTransition) && !errors.Is(err, domain.ErrNotFound) {
			o.fail(ctx, scan.ID, err, log)
		}
		return err
	}
	log.Info("scan started")

	target := scan.Target
	if scan.Type == domain.TargetDomain {
		target = domain.NormalizeHost(target)
	}

	names := scan.Settings.Modules
	if len(names) == 0 {
		names = o.registry.Defaults()
	}

	// Each module's graph writes happen under this lock so outputs of
	// parallel modules never interleave.
	var writeMu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.concurrency)
	for _, name := range o.uniq(names) {
		name := name
		g.Go(func() error {
			return o.runModule(gctx, scan, target, name, &writeMu, log)
		})
	}
	if err := g.Wait(); err != nil {
		o.fail(ctx, scan.ID, err, log)
		return err
	}
	// A cancelled run is never reported as complete, whatever the store
	// does with a dead context.
	if err := ctx.Err(); err != nil {
		err = fmt.Errorf("scan %s interrupted: %w", scan.ID, err)
		o.fail(ctx, scan.ID, err, log)
		return err
	}

	if _, err := o.scans.TransitionScan(ctx, scan.ID, domain.StatusCompleted, o.now()); err != nil {
		err = fmt.Errorf("complete scan %s: %w", scan.ID, err)
		o.fail(ctx, scan.ID, err, log)
		return err
	}
	o.metrics.ScanFinished(string(domain.StatusCompleted))
	log.Info("scan completed")
	return nil
}

func (o *Orchestrator) runModule(ctx context.Context, scan domain.Scan, target, name string, writeMu *sync.Mutex, log *logrus.Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	log = log.WithField("module", name)

	m, ok := o.registry.Lookup(name)
	if !ok {
		log.Warn("unknown module skipped")
		o.event(ctx, scan.ID, name, domain.EventSkipped, "unknown module", log)
		return nil
	}
	name = m.Name()
	if !m.Supports(scan.Type) {
		log.WithField("target_type", scan.Type).Info("module does not support target type, skipped")
		o.event(ctx, scan.ID, name, domain.EventSkipped, fmt.Sprintf("target type %s not supported", scan.Type), log)
		return nil
	}

	o.event(ctx, scan.ID, name, domain.EventStarted, "", log)
	start := time.Now()
	res := m.Run(ctx, target)
	took := time.Since(start)
	if !res.Success {
		o.metrics.ModuleRun(name, "failed", took)
		log.WithField("error", res.Error).Warn("module failed")
		o.event(ctx, scan.ID, name, domain.EventFailed, res.Error, log)
		return nil
	}
	o.metrics.ModuleRun(name, "succeeded", took)

	writeMu.Lock()
	defer writeMu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := o.apply(ctx, scan.ID, m.Map(target, res.Data)); err != nil {
		return fmt.Errorf("apply %s output: %w", name, err)
	}
	o.event(ctx, scan.ID, name, domain.EventSucceeded, "", log)
	log.WithField("duration", took.String()).Info("module completed")
	return nil
}

func (o *Orchestrator) apply(ctx context.Context, scanID string, obs []modules.Observation) error {
	for _, ob := range obs {
		ent, err := o.resolver.Resolve(ctx, scanID, ob.Type, ob.Value, ob.Metadata)
		if err != nil {
			return err
		}
		o.metrics.EntityResolved(string(ob.Type))
		if ob.Finding == nil {
			continue
		}
		f := ob.Finding
		if _, err := o.recorder.Record(ctx, ent.ID, f.Source, f.Type, f.Confidence, f.Raw); err != nil {
			return err
		}
		o.metrics.FindingRecorded(f.Source)
	}
	return nil
}

// fail marks the scan failed on a context that outlives ctx cancellation so
// a shutdown mid-scan still leaves a terminal status behind.
func (o *Orchestrator) fail(ctx context.Context, scanID string, cause error, log *logrus.Entry) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	log.WithError(cause).Error("scan failed")
	if _, err := o.scans.TransitionScan(ctx, scanID, domain.StatusFailed, o.now()); err != nil {
		log.WithError(err).Error("failed to update scan status")
		return
	}
	o.metrics.ScanFinished(string(domain.StatusFailed))
}

func (o *Orchestrator) event(ctx context.Context, scanID, module, event, msg string, log *logrus.Entry) {
	if o.events == nil || ctx.Err() != nil {
		return
	}
	ev := domain.ModuleEvent{Module: module, Event: event, Error: msg, At: o.now()}
	if err := o.events.Append(ctx, scanID, ev); err != nil {
		log.WithError(err).Warn("scan log append failed")
	}
}

// uniq drops repeated module names, aliases included.
func (o *Orchestrator) uniq(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if c, ok := o.registry.Canonical(n); ok {
			n = c
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
