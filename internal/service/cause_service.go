package service

import (
	"context"
	"fmt"

	"github.com/causeshare-api/internal/models"
	"github.com/causeshare-api/internal/repository"
)

// causeService reads the causes reference data
type causeService struct {
	causes repository.CauseRepository
}

func newCauseService(causes repository.CauseRepository) CauseService {
	return &causeService{causes: causes}
}

// List returns all causes
func (s *causeService) List(ctx context.Context) ([]*models.Cause, error) {
	causes, err := s.causes.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list causes: %w", err)
	}
	return causes, nil
}
