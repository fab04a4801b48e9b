package workstation

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/employee-directory/internal"
	workstationDatamodel "github.com/frahmantamala/employee-directory/internal/core/datamodel/workstation"
	"github.com/frahmantamala/employee-directory/internal/placement"
)

type RepositoryAPI interface {
	GetAll(ctx context.Context, filter ListFilter) ([]*workstationDatamodel.Workstation, error)
	GetByID(ctx context.Context, id int64) (*workstationDatamodel.Workstation, error)
	Create(ctx context.Context, ws *workstationDatamodel.Workstation) error
	Update(ctx context.Context, ws *workstationDatamodel.Workstation) error
	// Delete detaches seated employees and removes the workstation.
	Delete(ctx context.Context, id int64) (bool, error)
	ListOccupants(ctx context.Context, id int64) ([]placement.Candidate, error)
}

// PlacementChecker validates a desk against its neighbours.
type PlacementChecker interface {
	Check(ctx context.Context, candidate placement.Candidate, proposed *placement.Desk) (placement.Result, error)
}

type Service struct {
	repo      RepositoryAPI
	placement PlacementChecker
	logger    *slog.Logger
}

func NewService(repo RepositoryAPI, checker PlacementChecker, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		placement: checker,
		logger:    logger,
	}
}

func (s *Service) ListWorkstations(ctx context.Context, filter ListFilter) ([]*Workstation, error) {
	rows, err := s.repo.GetAll(ctx, filter)
	if err != nil {
		s.logger.Error("failed to list workstations", "error", err)
		return nil, err
	}

	result := make([]*Workstation, 0, len(rows))
	for _, row := range rows {
		result = append(result, FromDataModel(row))
	}
	return result, nil
}

func (s *Service) GetWorkstation(ctx context.Context, id int64) (*Workstation, error) {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("failed to get workstation", "workstation_id", id, "error", err)
		return nil, err
	}
	if row == nil {
		return nil, internal.ErrWorkstationNotFound
	}
	return FromDataModel(row), nil
}

func (s *Service) CreateWorkstation(ctx context.Context, dto *CreateWorkstationDTO) (*Workstation, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	ws := NewWorkstation(dto)
	row := ToDataModel(ws)
	if err := s.repo.Create(ctx, row); err != nil {
		s.logger.Warn("failed to create workstation", "desk_number", ws.DeskNumber, "error", err)
		return nil, err
	}

	s.logger.Info("workstation created", "workstation_id", row.ID, "desk_number", row.DeskNumber)
	return FromDataModel(row), nil
}

// UpdateWorkstation applies a partial update. Moving a desk to a new number
// re-checks every employee seated at it against the new neighbours.
func (s *Service) UpdateWorkstation(ctx context.Context, id int64, dto *UpdateWorkstationDTO) (*Workstation, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	ws, err := s.GetWorkstation(ctx, id)
	if err != nil {
		return nil, err
	}

	previousDesk := ws.DeskNumber
	ws.Apply(dto)

	if ws.DeskNumber != previousDesk {
		if err := s.checkOccupants(ctx, ws); err != nil {
			return nil, err
		}
	}

	row := ToDataModel(ws)
	if err := s.repo.Update(ctx, row); err != nil {
		s.logger.Warn("failed to update workstation", "workstation_id", id, "error", err)
		return nil, err
	}

	s.logger.Info("workstation updated", "workstation_id", id, "desk_number", row.DeskNumber)
	return FromDataModel(row), nil
}

func (s *Service) checkOccupants(ctx context.Context, ws *Workstation) error {
	occupants, err := s.repo.ListOccupants(ctx, ws.ID)
	if err != nil {
		return err
	}

	desk := &placement.Desk{WorkstationID: ws.ID, Number: ws.DeskNumber}
	for _, occupant := range occupants {
		result, err := s.placement.Check(ctx, occupant, desk)
		if err != nil {
			return err
		}
		if err := result.Err(); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) DeleteWorkstation(ctx context.Context, id int64) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		s.logger.Error("failed to delete workstation", "workstation_id", id, "error", err)
		return err
	}
	if !deleted {
		return internal.ErrWorkstationNotFound
	}

	s.logger.Info("workstation deleted", "workstation_id", id)
	return nil
}
