package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	api "osintkit/internal/api"
	"osintkit/internal/domain"
	"osintkit/internal/ports"
	scanrunner "osintkit/internal/workers/scanrunner"
)

const (
	defaultWaitTimeout = 30
	maxWaitTimeout     = 600
	maxBodyBytes       = 1 << 20
)

// Server implements the generated StrictServerInterface.
type Server struct {
	scanner   ports.Scanner
	entities  ports.Entities
	reports   ports.Reports
	jobs      ports.JobRepository
	processor scanrunner.ScanProcessor
	metrics   http.Handler
	logger    *logrus.Logger
	version   string
}

type Deps struct {
	Scanner   ports.Scanner
	Entities  ports.Entities
	Reports   ports.Reports
	Jobs      ports.JobRepository
	Processor scanrunner.ScanProcessor
	// Metrics is mounted at /metrics when set.
	Metrics http.Handler
	Logger  *logrus.Logger
	Version string
}

func New(d Deps) *Server {
	s := &Server{
		scanner:   d.Scanner,
		entities:  d.Entities,
		reports:   d.Reports,
		jobs:      d.Jobs,
		processor: d.Processor,
		metrics:   d.Metrics,
		logger:    d.Logger,
		version:   d.Version,
	}
	if s.logger == nil {
		s.logger = logrus.StandardLogger()
	}
	return s
}

// Routes returns a chi.Router mounting the generated handlers.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestSize(maxBodyBytes))

	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}

	handler := api.NewStrictHandlerWithOptions(s, nil, api.StrictHTTPServerOptions{
		RequestErrorHandlerFunc:  s.badRequest,
		ResponseErrorHandlerFunc: s.writeError,
	})
	api.HandlerWithOptions(handler, api.ChiServerOptions{
		BaseRouter:       r,
		ErrorHandlerFunc: s.badRequest,
	})
	return r
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.WithFields(logrus.Fields{
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     ww.Status(),
			"bytes":      ww.BytesWritten(),
			"duration":   time.Since(start).String(),
			"request_id": middleware.GetReqID(r.Context()),
		}).Debug("request")
	})
}

// Strict handler methods

func (s *Server) GetHealth(_ context.Context, _ api.GetHealthRequestObject) (api.GetHealthResponseObject, error) {
	return api.GetHealth200JSONResponse{Status: "healthy", Service: "osintkit", Version: s.version}, nil
}

func (s *Server) SubmitScan(ctx context.Context, req api.SubmitScanRequestObject) (api.SubmitScanResponseObject, error) {
	if req.Body == nil {
		return nil, &requestError{msg: "missing body"}
	}
	var mods []string
	if req.Body.Modules != nil {
		mods = *req.Body.Modules
	}

	wait := req.Params.Wait != nil && *req.Params.Wait
	if !wait {
		scan, err := s.scanner.Submit(ctx, req.Body.Target, req.Body.Type, mods)
		if err != nil {
			return nil, err
		}
		return api.SubmitScan202JSONResponse(toScan(scan)), nil
	}

	// Blocking path: the job is created already claimed, so no worker can
	// take it, and it runs on the same processor the workers use.
	scan, job, err := s.scanner.SubmitInline(ctx, req.Body.Target, req.Body.Type, mods)
	if err != nil {
		return nil, err
	}
	timeout := defaultWaitTimeout
	if req.Params.Timeout != nil && *req.Params.Timeout > 0 {
		timeout = min(*req.Params.Timeout, maxWaitTimeout)
	}
	runCtx, cancel := context.WithTimeout(ctx, time.Duration(timeout)*time.Second)
	defer cancel()
	if err := scanrunner.ProcessInline(runCtx, s.jobs, s.processor, job); err != nil {
		// The failure is recorded on the scan returned below.
		s.logger.WithError(err).WithField("scan_id", scan.ID).Warn("inline scan failed")
	}
	g, err := s.scanner.Get(context.WithoutCancel(ctx), scan.ID)
	if err != nil {
		return nil, err
	}
	return api.SubmitScan200JSONResponse(toScanGraph(g)), nil
}

func (s *Server) ListScans(ctx context.Context, req api.ListScansRequestObject) (api.ListScansResponseObject, error) {
	scans, err := s.scanner.List(ctx, deref(req.Params.Limit))
	if err != nil {
		return nil, err
	}
	out := make(api.ListScans200JSONResponse, 0, len(scans))
	for _, sc := range scans {
		out = append(out, toScan(sc))
	}
	return out, nil
}

func (s *Server) GetScan(ctx context.Context, req api.GetScanRequestObject) (api.GetScanResponseObject, error) {
	g, err := s.scanner.Get(ctx, req.Id)
	if err != nil {
		return nil, err
	}
	return api.GetScan200JSONResponse(toScanGraph(g)), nil
}

func (s *Server) GetScanLog(ctx context.Context, req api.GetScanLogRequestObject) (api.GetScanLogResponseObject, error) {
	events, err := s.scanner.Log(ctx, req.Id, deref(req.Params.N))
	if err != nil {
		return nil, err
	}
	return api.GetScanLog200JSONResponse{ScanId: req.Id, Events: toModuleEvents(events)}, nil
}

func (s *Server) GetEntity(ctx context.Context, req api.GetEntityRequestObject) (api.GetEntityResponseObject, error) {
	d, err := s.entities.Get(ctx, req.Id)
	if err != nil {
		return nil, err
	}
	return api.GetEntity200JSONResponse(toEntityDetail(d)), nil
}

func (s *Server) GetEntityFindings(ctx context.Context, req api.GetEntityFindingsRequestObject) (api.GetEntityFindingsResponseObject, error) {
	d, err := s.entities.Get(ctx, req.Id)
	if err != nil {
		return nil, err
	}
	return api.GetEntityFindings200JSONResponse{EntityId: req.Id, Findings: toFindings(d.Findings)}, nil
}

func (s *Server) SearchEntities(ctx context.Context, req api.SearchEntitiesRequestObject) (api.SearchEntitiesResponseObject, error) {
	p := req.Params
	limit, offset := deref(p.Limit), deref(p.Offset)
	ents, total, err := s.entities.Search(ctx, p.Q, limit, offset)
	if err != nil {
		return nil, err
	}
	return api.SearchEntities200JSONResponse{
		Query:   p.Q,
		Results: toEntities(ents),
		Total:   total,
		Limit:   limit,
		Offset:  offset,
	}, nil
}

func (s *Server) GenerateReport(ctx context.Context, req api.GenerateReportRequestObject) (api.GenerateReportResponseObject, error) {
	rep, err := s.reports.Generate(ctx, req.Id)
	if err != nil {
		return nil, err
	}
	return api.GenerateReport201JSONResponse(toReport(rep)), nil
}

func (s *Server) GetReport(ctx context.Context, req api.GetReportRequestObject) (api.GetReportResponseObject, error) {
	rep, err := s.reports.Get(ctx, req.Id)
	if err != nil {
		return nil, err
	}
	return api.GetReport200JSONResponse(toReport(rep)), nil
}

func (s *Server) ListModels(ctx context.Context, _ api.ListModelsRequestObject) (api.ListModelsResponseObject, error) {
	models, err := s.reports.AvailableModels(ctx)
	if err != nil {
		return nil, err
	}
	if models == nil {
		models = []string{}
	}
	return api.ListModels200JSONResponse{Models: models}, nil
}

type requestError struct{ msg string }

func (e *requestError) Error() string { return e.msg }

func (s *Server) badRequest(w http.ResponseWriter, _ *http.Request, err error) {
	writeJSON(w, http.StatusBadRequest, api.Error{Error: err.Error()})
}

func (s *Server) writeError(w http.ResponseWriter, _ *http.Request, err error) {
	code := statusFor(err)
	msg := err.Error()
	if code == http.StatusInternalServerError {
		s.logger.WithError(err).Error("request failed")
		msg = http.StatusText(code)
	}
	writeJSON(w, code, api.Error{Error: msg})
}

func statusFor(err error) int {
	var reqErr *requestError
	switch {
	case errors.As(err, &reqErr):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrEmptyTarget),
		errors.Is(err, domain.ErrInvalidTargetType),
		errors.Is(err, domain.ErrUnknownModule):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrScanNotCompleted),
		errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

var _ api.StrictServerInterface = (*Server)(nil)
