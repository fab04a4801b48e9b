package skill

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/employee-directory/internal"
	skillDatamodel "github.com/frahmantamala/employee-directory/internal/core/datamodel/skill"
)

type RepositoryAPI interface {
	GetAll(ctx context.Context) ([]*skillDatamodel.Skill, error)
	GetByID(ctx context.Context, id int64) (*skillDatamodel.Skill, error)
	Create(ctx context.Context, skill *skillDatamodel.Skill) error
	Update(ctx context.Context, skill *skillDatamodel.Skill) error
	// Delete removes the skill and every rating of it. It reports false
	// when no skill had the id.
	Delete(ctx context.Context, id int64) (bool, error)
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) ListSkills(ctx context.Context) ([]*Skill, error) {
	dataSkills, err := s.repo.GetAll(ctx)
	if err != nil {
		s.logger.Error("failed to get skills from repository", "error", err)
		return nil, err
	}

	skills := make([]*Skill, 0, len(dataSkills))
	for _, ds := range dataSkills {
		skills = append(skills, FromDataModel(ds))
	}

	s.logger.Debug("retrieved skills", "count", len(skills))
	return skills, nil
}

func (s *Service) GetSkill(ctx context.Context, id int64) (*Skill, error) {
	ds, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("failed to get skill", "skill_id", id, "error", err)
		return nil, err
	}
	if ds == nil {
		return nil, internal.ErrSkillNotFound
	}
	return FromDataModel(ds), nil
}

func (s *Service) CreateSkill(ctx context.Context, dto *CreateSkillDTO) (*Skill, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	sk := NewSkill(dto.Name, dto.Description)
	data := ToDataModel(sk)
	if err := s.repo.Create(ctx, data); err != nil {
		s.logger.Warn("failed to create skill", "name", sk.Name, "error", err)
		return nil, err
	}

	s.logger.Info("skill created", "skill_id", data.ID, "name", data.Name)
	return FromDataModel(data), nil
}

func (s *Service) UpdateSkill(ctx context.Context, id int64, dto *UpdateSkillDTO) (*Skill, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	sk, err := s.GetSkill(ctx, id)
	if err != nil {
		return nil, err
	}

	sk.Apply(dto)
	data := ToDataModel(sk)
	if err := s.repo.Update(ctx, data); err != nil {
		s.logger.Warn("failed to update skill", "skill_id", id, "error", err)
		return nil, err
	}

	s.logger.Info("skill updated", "skill_id", id)
	return FromDataModel(data), nil
}

func (s *Service) DeleteSkill(ctx context.Context, id int64) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		s.logger.Error("failed to delete skill", "skill_id", id, "error", err)
		return err
	}
	if !deleted {
		return internal.ErrSkillNotFound
	}

	s.logger.Info("skill deleted", "skill_id", id)
	return nil
}
