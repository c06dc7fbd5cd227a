package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	httpadapter "osintkit/internal/adapters/http"
	"osintkit/internal/adapters/memory"
	pg "osintkit/internal/adapters/postgres"
	redisadapter "osintkit/internal/adapters/redis"
	"osintkit/internal/config"
	"osintkit/internal/llm"
	"osintkit/internal/metrics"
	"osintkit/internal/modules"
	"osintkit/internal/modules/crtsh"
	"osintkit/internal/modules/dnsrecon"
	"osintkit/internal/modules/whois"
	"osintkit/internal/ports"
	"osintkit/internal/services/entities"
	"osintkit/internal/services/findings"
	"osintkit/internal/services/orchestrator"
	"osintkit/internal/services/reports"
	"osintkit/internal/services/resolver"
	"osintkit/internal/services/scanner"
	"osintkit/internal/workers/scanrunner"
)

type storage struct {
	scans    ports.ScanRepository
	entities ports.EntityRepository
	findings ports.FindingRepository
	reports  ports.ReportRepository
	jobs     ports.JobRepository
	close    func()
}

func openStorage(ctx context.Context, cfg config.Config, log *logrus.Logger) (storage, error) {
	if cfg.Storage == "memory" {
		log.Warn("using in-memory storage; data is lost on restart")
		m := memory.New()
		return storage{scans: m, entities: m, findings: m, reports: m, jobs: m, close: func() {}}, nil
	}
	db, err := pg.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return storage{}, fmt.Errorf("db connect: %w", err)
	}
	if err := pg.Migrate(ctx, db, log); err != nil {
		db.Close()
		return storage{}, err
	}
	return storage{scans: db, entities: db, findings: db, reports: db, jobs: db, close: db.Close}, nil
}

func openScanLog(ctx context.Context, cfg config.Config, log *logrus.Logger) (ports.ScanLog, func(), error) {
	if cfg.RedisURL == "" {
		return memory.NewScanLog(cfg.ScanLogSize), func() {}, nil
	}
	client, err := redisadapter.Connect(ctx, cfg.RedisURL)
	if err != nil {
		return nil, nil, err
	}
	log.Info("scan log stored in redis")
	return redisadapter.NewScanLog(client, cfg.ScanLogSize, 0), func() { _ = client.Close() }, nil
}

func newRegistry(cfg config.Config, log *logrus.Logger) (*modules.Registry, error) {
	reg := modules.NewRegistry()
	reg.Register(whois.New(cfg.ModuleTimeout, whois.WithServer(cfg.WhoisServer)))

	limit := rate.Inf
	if cfg.CrtshRate > 0 {
		limit = rate.Limit(cfg.CrtshRate)
	}
	reg.Register(crtsh.New(cfg.ModuleTimeout,
		crtsh.WithBaseURL(cfg.CrtshURL),
		crtsh.WithMaxCertificates(cfg.CrtshMaxCerts),
		crtsh.WithLimiter(rate.NewLimiter(limit, 2)),
		crtsh.WithLogger(log),
	), "ssl", "crtsh")

	if cfg.DNSServer != "" {
		reg.Register(dnsrecon.New(cfg.DNSServer, cfg.ModuleTimeout))
	}

	if len(cfg.DefaultModules) > 0 {
		if err := reg.Validate(cfg.DefaultModules); err != nil {
			return nil, fmt.Errorf("DEFAULT_MODULES: %w", err)
		}
		reg.SetDefaults(cfg.DefaultModules...)
	}
	return reg, nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, log, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStorage(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer store.close()

	events, closeLog, err := openScanLog(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeLog()

	reg, err := newRegistry(cfg, log)
	if err != nil {
		return err
	}

	var m *metrics.Metrics
	var metricsHandler http.Handler
	if cfg.MetricsEnabled {
		m = metrics.New(true)
		metricsHandler = m.Handler()
	}

	driver, err := llm.New(cfg.LLM, &http.Client{})
	if err != nil {
		return err
	}

	scans := scanner.New(store.scans, store.entities, store.findings, events, reg)
	orch := orchestrator.New(store.scans, resolver.New(store.entities), findings.New(store.findings), reg, events, orchestrator.Options{
		Concurrency: cfg.ModuleConcurrency,
		Logger:      log,
		Metrics:     m,
	})
	api := httpadapter.New(httpadapter.Deps{
		Scanner:   scans,
		Entities:  entities.New(store.entities, store.findings),
		Reports:   reports.New(scans, store.reports, driver, reports.WithLogger(log)),
		Jobs:      store.jobs,
		Processor: orch,
		Metrics:   metricsHandler,
		Logger:    log,
		Version:   version,
	})

	var wg sync.WaitGroup
	if cfg.ScanWorkers > 0 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			scanrunner.Run(ctx, store.jobs, orch, scanrunner.Options{
				Concurrency:  cfg.ScanWorkers,
				PollInterval: cfg.PollInterval,
				Lease:        cfg.JobLease,
				MaxAttempts:  cfg.MaxAttempts,
				Logger:       log,
			})
		}()
		log.WithField("workers", cfg.ScanWorkers).Info("scan workers started")
	}

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           api.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	log.WithFields(logrus.Fields{
		"addr":    cfg.ListenAddr,
		"storage": cfg.Storage,
		"modules": reg.Names(),
	}).Info("listening")

	select {
	case <-ctx.Done():
		log.Info("shutting down")
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			stop()
			wg.Wait()
			return fmt.Errorf("server error: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Warn("http shutdown")
	}
	wg.Wait()
	log.Info("stopped")
	return nil
}
