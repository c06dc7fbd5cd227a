package entities

import (
	"context"
	"fmt"
	"strings"

	"osintkit/internal/domain"
	"osintkit/internal/ports"
)

const (
	DefaultSearchLimit = 50
	MaxSearchLimit     = 500
)

// Service reads the entity graph.
type Service struct {
	entities ports.EntityRepository
	findings ports.FindingRepository
}

func New(entities ports.EntityRepository, findings ports.FindingRepository) *Service {
	return &Service{entities: entities, findings: findings}
}

func (s *Service) Get(ctx context.Context, entityID string) (domain.EntityDetail, error) {
	ent, err := s.entities.GetEntity(ctx, entityID)
	if err != nil {
		return domain.EntityDetail{}, err
	}
	fs, err := s.findings.ListFindings(ctx, ent.ID)
	if err != nil {
		return domain.EntityDetail{}, fmt.Errorf("list findings for %s: %w", ent.ID, err)
	}
	return domain.EntityDetail{Entity: ent, Findings: fs}, nil
}

// Search matches query against canonical values, case-insensitively.
func (s *Service) Search(ctx context.Context, query string, limit, offset int) ([]domain.Entity, int, error) {
	query = strings.ToLower(strings.TrimSpace(query))
	switch {
	case limit <= 0:
		limit = DefaultSearchLimit
	case limit > MaxSearchLimit:
		limit = MaxSearchLimit
	}
	if offset < 0 {
		offset = 0
	}
	return s.entities.SearchEntities(ctx, query, limit, offset)
}

var _ ports.Entities = (*Service)(nil)
