package placement

import (
	"context"
	"fmt"
	"log/slog"
)

// Repository loads the employees seated at the given desk numbers.
type Repository interface {
	OccupantsAtDesks(ctx context.Context, deskNumbers []string) ([]Occupant, error)
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// Check runs Validate against the occupants of the neighbouring desks.
// Backing store errors are returned unchanged apart from wrapping.
func (s *Service) Check(ctx context.Context, candidate Candidate, proposed *Desk) (Result, error) {
	if proposed == nil {
		return Result{}, nil
	}

	neighbours := NeighbourDeskNumbers(proposed.Number)
	if neighbours == nil {
		s.logger.Debug("desk number is not numeric, adjacency rule skipped",
			"desk_number", proposed.Number,
			"employee_id", candidate.ID)
		return Result{}, nil
	}

	occupants, err := s.repo.OccupantsAtDesks(ctx, neighbours)
	if err != nil {
		s.logger.Error("failed to load desk occupants", "error", err, "desks", neighbours)
		return Result{}, fmt.Errorf("load desk occupants: %w", err)
	}

	result := Validate(candidate, proposed, occupants)
	if !result.OK() {
		s.logger.Warn("placement conflict",
			"employee_id", candidate.ID,
			"role", ClassifyPosition(candidate.Position).String(),
			"desk_number", proposed.Number,
			"conflicts", len(result.Conflicts))
	}
	return result, nil
}
