package httpadapter

import (
	api "osintkit/internal/api"
	"osintkit/internal/domain"
)

// Conversions from domain values to the generated API models.

func toScan(s domain.Scan) api.Scan {
	return api.Scan{
		ScanId:     s.ID,
		Target:     s.Target,
		Type:       string(s.Type),
		Status:     string(s.Status),
		Settings:   toSettings(s.Settings),
		CreatedAt:  s.CreatedAt,
		StartedAt:  s.StartedAt,
		FinishedAt: s.FinishedAt,
	}
}

func toSettings(s domain.ScanSettings) api.ScanSettings {
	mods := s.Modules
	if mods == nil {
		mods = []string{}
	}
	return api.ScanSettings{Modules: mods}
}

func toScanGraph(g domain.ScanGraph) api.ScanGraph {
	return api.ScanGraph{
		ScanId:     g.Scan.ID,
		Target:     g.Scan.Target,
		Type:       string(g.Scan.Type),
		Status:     string(g.Scan.Status),
		Settings:   toSettings(g.Scan.Settings),
		CreatedAt:  g.Scan.CreatedAt,
		StartedAt:  g.Scan.StartedAt,
		FinishedAt: g.Scan.FinishedAt,
		Entities:   toEntities(g.Entities),
		Findings:   toFindings(g.Findings),
	}
}

func toEntity(e domain.Entity) api.Entity {
	return api.Entity{
		Id:             e.ID,
		ScanId:         e.ScanID,
		Type:           string(e.Type),
		CanonicalValue: e.CanonicalValue,
		Metadata:       metadata(e.Metadata),
		FirstSeen:      e.FirstSeen,
		LastSeen:       e.LastSeen,
	}
}

func toEntities(es []domain.Entity) []api.Entity {
	out := make([]api.Entity, 0, len(es))
	for _, e := range es {
		out = append(out, toEntity(e))
	}
	return out
}

func toEntityDetail(d domain.EntityDetail) api.EntityDetail {
	e := d.Entity
	return api.EntityDetail{
		Id:             e.ID,
		ScanId:         e.ScanID,
		Type:           string(e.Type),
		CanonicalValue: e.CanonicalValue,
		Metadata:       metadata(e.Metadata),
		FirstSeen:      e.FirstSeen,
		LastSeen:       e.LastSeen,
		Findings:       toFindings(d.Findings),
	}
}

func metadata(m map[string]any) map[string]interface{} {
	if m == nil {
		return map[string]interface{}{}
	}
	return m
}

func toFindings(fs []domain.Finding) []api.Finding {
	out := make([]api.Finding, 0, len(fs))
	for _, f := range fs {
		out = append(out, api.Finding{
			Id:              f.ID,
			EntityId:        f.EntityID,
			Source:          f.Source,
			Type:            f.Type,
			ConfidenceScore: f.Confidence,
			RawResult:       f.RawResult,
			CreatedAt:       f.CreatedAt,
		})
	}
	return out
}

func toModuleEvents(events []domain.ModuleEvent) []api.ModuleEvent {
	out := make([]api.ModuleEvent, 0, len(events))
	for _, ev := range events {
		e := api.ModuleEvent{Module: ev.Module, Event: ev.Event, At: ev.At}
		if ev.Error != "" {
			msg := ev.Error
			e.Error = &msg
		}
		out = append(out, e)
	}
	return out
}

func toReport(r domain.Report) api.Report {
	out := api.Report{
		ReportId:  r.ID,
		ScanId:    r.ScanID,
		Title:     r.Title,
		Summary:   r.Summary,
		Sections:  metadata(r.Sections),
		Score:     r.Score,
		CreatedAt: r.CreatedAt,
	}
	if len(r.Embedding) > 0 {
		emb := r.Embedding
		out.Embedding = &emb
	}
	return out
}
