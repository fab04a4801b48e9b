package employee

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/frahmantamala/employee-directory/internal"
	"github.com/frahmantamala/employee-directory/internal/core/common/validation"
	employeeDatamodel "github.com/frahmantamala/employee-directory/internal/core/datamodel/employee"
	"github.com/frahmantamala/employee-directory/internal/core/events"
	"github.com/frahmantamala/employee-directory/internal/placement"
	"github.com/frahmantamala/employee-directory/internal/skill"
	"github.com/frahmantamala/employee-directory/internal/workstation"
)

// WriteRepository persists employees and the rows they own.
type WriteRepository interface {
	GetByID(ctx context.Context, id int64) (*employeeDatamodel.Employee, error)
	Create(ctx context.Context, employee *employeeDatamodel.Employee) error
	Update(ctx context.Context, employee *employeeDatamodel.Employee) error
	// DeleteWithDependents removes the employee with its ratings and images
	// in one transaction and returns the image file paths it dropped.
	DeleteWithDependents(ctx context.Context, id int64) (filePaths []string, found bool, err error)
	GetImages(ctx context.Context, employeeID int64) ([]employeeDatamodel.EmployeeImage, error)
	GetSkills(ctx context.Context, employeeID int64) ([]employeeDatamodel.EmployeeSkill, error)
	UpsertSkill(ctx context.Context, rating *employeeDatamodel.EmployeeSkill) error
	DeleteSkill(ctx context.Context, employeeID, skillID int64) (bool, error)
	// ImagePathInUse reports whether any image row already points at filePath.
	ImagePathInUse(ctx context.Context, filePath string) (bool, error)
	CreateImage(ctx context.Context, image *employeeDatamodel.EmployeeImage) error
	DeleteImage(ctx context.Context, employeeID, imageID int64) (*employeeDatamodel.EmployeeImage, error)
}

// Repository is the full store used by the directory.
type Repository interface {
	ReadRepository
	WriteRepository
}

type PlacementChecker interface {
	Check(ctx context.Context, candidate placement.Candidate, proposed *placement.Desk) (placement.Result, error)
}

type WorkstationLookup interface {
	GetWorkstation(ctx context.Context, id int64) (*workstation.Workstation, error)
}

type SkillLookup interface {
	GetSkill(ctx context.Context, id int64) (*skill.Skill, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// MediaLocator resolves stored files for image registration.
type MediaLocator interface {
	URLBuilder
	Exists(relPath string) (bool, error)
}

type Service struct {
	repo         WriteRepository
	placement    PlacementChecker
	workstations WorkstationLookup
	skills       SkillLookup
	media        MediaLocator
	publisher    EventPublisher
	logger       *slog.Logger
}

func NewService(
	repo WriteRepository,
	checker PlacementChecker,
	workstations WorkstationLookup,
	skills SkillLookup,
	media MediaLocator,
	publisher EventPublisher,
	logger *slog.Logger,
) *Service {
	return &Service{
		repo:         repo,
		placement:    checker,
		workstations: workstations,
		skills:       skills,
		media:        media,
		publisher:    publisher,
		logger:       logger,
	}
}

// CreateEmployee validates the payload and the requested desk, then saves.
func (s *Service) CreateEmployee(ctx context.Context, dto *CreateEmployeeDTO) (*Employee, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Warn("employee validation failed", "error", err)
		return nil, err
	}

	now := time.Now()
	emp := &Employee{
		FirstName:     strings.TrimSpace(dto.FirstName),
		LastName:      strings.TrimSpace(dto.LastName),
		Gender:        Gender(dto.Gender),
		Email:         strings.TrimSpace(dto.Email),
		Position:      strings.TrimSpace(dto.Position),
		HireDate:      validation.ParseDate(dto.HireDate),
		Description:   dto.Description,
		WorkstationID: dto.WorkstationID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.validatePlacement(ctx, emp, emp.WorkstationID, true); err != nil {
		return nil, err
	}

	row := ToDataModel(emp)
	if err := s.repo.Create(ctx, row); err != nil {
		s.logger.Error("failed to create employee", "email", emp.Email, "error", err)
		return nil, err
	}

	s.logger.Info("employee created",
		"employee_id", row.ID,
		"workstation_id", row.WorkstationID)
	return FromDataModel(row), nil
}

// UpdateEmployee applies a partial update. A seated employee whose position
// changes is re-checked against their neighbours.
func (s *Service) UpdateEmployee(ctx context.Context, id int64, dto *UpdateEmployeeDTO) (*Employee, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	emp, err := s.getEmployee(ctx, id)
	if err != nil {
		return nil, err
	}

	previousPosition := emp.Position
	applyUpdate(emp, dto)

	if emp.IsSeated() && emp.Position != previousPosition {
		if err := s.validatePlacement(ctx, emp, emp.WorkstationID, false); err != nil {
			return nil, err
		}
	}

	row := ToDataModel(emp)
	if err := s.repo.Update(ctx, row); err != nil {
		s.logger.Error("failed to update employee", "employee_id", id, "error", err)
		return nil, err
	}

	s.logger.Info("employee updated", "employee_id", id)
	return FromDataModel(row), nil
}

func applyUpdate(emp *Employee, dto *UpdateEmployeeDTO) {
	if dto.FirstName != nil {
		emp.FirstName = strings.TrimSpace(*dto.FirstName)
	}
	if dto.LastName != nil {
		emp.LastName = strings.TrimSpace(*dto.LastName)
	}
	if dto.Gender != nil {
		emp.Gender = Gender(*dto.Gender)
	}
	if dto.Email != nil {
		emp.Email = strings.TrimSpace(*dto.Email)
	}
	if dto.Position != nil {
		emp.Position = strings.TrimSpace(*dto.Position)
	}
	if dto.HireDate != nil {
		emp.HireDate = validation.ParseDate(dto.HireDate)
	}
	if dto.Description != nil {
		emp.Description = *dto.Description
	}
	emp.UpdatedAt = time.Now()
}

// AssignWorkstation seats the employee at a desk, or unseats them when the
// workstation id is nil. Re-assigning the current desk is a no-op.
func (s *Service) AssignWorkstation(ctx context.Context, id int64, dto *AssignWorkstationDTO) (*Employee, error) {
	emp, err := s.getEmployee(ctx, id)
	if err != nil {
		return nil, err
	}

	if sameWorkstation(emp.WorkstationID, dto.WorkstationID) {
		return emp, nil
	}

	if err := s.validatePlacement(ctx, emp, dto.WorkstationID, true); err != nil {
		return nil, err
	}

	emp.WorkstationID = dto.WorkstationID
	emp.UpdatedAt = time.Now()

	row := ToDataModel(emp)
	if err := s.repo.Update(ctx, row); err != nil {
		s.logger.Error("failed to assign workstation", "employee_id", id, "error", err)
		return nil, err
	}

	s.logger.Info("workstation assigned",
		"employee_id", id,
		"workstation_id", dto.WorkstationID)
	return FromDataModel(row), nil
}

// CheckPlacement runs the adjacency rule without saving.
func (s *Service) CheckPlacement(ctx context.Context, id int64, dto *PlacementCheckDTO) (*placement.Result, error) {
	emp, err := s.getEmployee(ctx, id)
	if err != nil {
		return nil, err
	}
	if dto.Position != nil {
		emp.Position = strings.TrimSpace(*dto.Position)
	}

	workstationID := dto.WorkstationID
	if workstationID == nil {
		workstationID = emp.WorkstationID
	}

	desk, err := s.resolveDesk(ctx, workstationID, false)
	if err != nil {
		return nil, err
	}

	result, err := s.placement.Check(ctx, candidateOf(emp), desk)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// DeleteEmployee removes the employee and its rows, then hands the stored
// image files to whoever listens for the deletion event.
func (s *Service) DeleteEmployee(ctx context.Context, id int64) error {
	filePaths, found, err := s.repo.DeleteWithDependents(ctx, id)
	if err != nil {
		s.logger.Error("failed to delete employee", "employee_id", id, "error", err)
		return err
	}
	if !found {
		return internal.ErrEmployeeNotFound
	}

	s.logger.Info("employee deleted", "employee_id", id, "released_files", len(filePaths))
	s.publish(ctx, events.NewEmployeeDeletedEvent(id, filePaths))
	return nil
}

func (s *Service) SetSkillLevel(ctx context.Context, employeeID, skillID int64, dto *SetSkillLevelDTO) ([]SkillRatingView, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.getEmployee(ctx, employeeID); err != nil {
		return nil, err
	}
	if _, err := s.skills.GetSkill(ctx, skillID); err != nil {
		return nil, err
	}

	rating := &employeeDatamodel.EmployeeSkill{
		EmployeeID: employeeID,
		SkillID:    skillID,
		Level:      dto.Level,
	}
	if err := s.repo.UpsertSkill(ctx, rating); err != nil {
		s.logger.Error("failed to save skill rating", "employee_id", employeeID, "skill_id", skillID, "error", err)
		return nil, err
	}

	s.logger.Info("skill rating saved", "employee_id", employeeID, "skill_id", skillID, "level", dto.Level)
	return s.skillViews(ctx, employeeID)
}

func (s *Service) RemoveSkill(ctx context.Context, employeeID, skillID int64) error {
	deleted, err := s.repo.DeleteSkill(ctx, employeeID, skillID)
	if err != nil {
		s.logger.Error("failed to remove skill rating", "employee_id", employeeID, "skill_id", skillID, "error", err)
		return err
	}
	if !deleted {
		return internal.ErrSkillNotFound
	}
	return nil
}

// AddImage registers an already stored file as one of the employee's images.
// A file belongs to at most one image, so releasing it on delete never
// removes a file another image still shows.
func (s *Service) AddImage(ctx context.Context, employeeID int64, dto *AddImageDTO) (*ImagesResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.getEmployee(ctx, employeeID); err != nil {
		return nil, err
	}

	exists, err := s.media.Exists(dto.FilePath)
	if err != nil {
		s.logger.Error("failed to look up media file", "file_path", dto.FilePath, "error", err)
		return nil, err
	}
	if !exists {
		return nil, internal.NewValidationFieldError("file_path",
			fmt.Sprintf("file %q is not in the media store", dto.FilePath), internal.ErrCodeInvalidFilePath)
	}

	inUse, err := s.repo.ImagePathInUse(ctx, dto.FilePath)
	if err != nil {
		s.logger.Error("failed to check image file usage", "file_path", dto.FilePath, "error", err)
		return nil, err
	}
	if inUse {
		return nil, internal.ErrImagePathTaken
	}

	image := &employeeDatamodel.EmployeeImage{
		EmployeeID:   employeeID,
		FilePath:     dto.FilePath,
		DisplayOrder: dto.Order,
	}
	if err := s.repo.CreateImage(ctx, image); err != nil {
		s.logger.Error("failed to add image", "employee_id", employeeID, "error", err)
		return nil, err
	}

	s.logger.Info("image added", "employee_id", employeeID, "image_id", image.ID, "order", image.DisplayOrder)
	return s.images(ctx, employeeID)
}

// DeleteImage drops the image row and releases its file in the background.
func (s *Service) DeleteImage(ctx context.Context, employeeID, imageID int64) error {
	image, err := s.repo.DeleteImage(ctx, employeeID, imageID)
	if err != nil {
		s.logger.Error("failed to delete image", "employee_id", employeeID, "image_id", imageID, "error", err)
		return err
	}
	if image == nil {
		return internal.ErrImageNotFound
	}

	s.publish(ctx, events.NewEmployeeImageDeletedEvent(employeeID, imageID, image.FilePath))
	return nil
}

func (s *Service) getEmployee(ctx context.Context, id int64) (*Employee, error) {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("failed to get employee", "employee_id", id, "error", err)
		return nil, err
	}
	if row == nil {
		return nil, internal.ErrEmployeeNotFound
	}
	return FromDataModel(row), nil
}

// resolveDesk loads the workstation behind an id. New assignments must
// target an active workstation.
func (s *Service) resolveDesk(ctx context.Context, workstationID *int64, requireActive bool) (*placement.Desk, error) {
	if workstationID == nil {
		return nil, nil
	}

	ws, err := s.workstations.GetWorkstation(ctx, *workstationID)
	if err != nil {
		return nil, err
	}
	if requireActive && !ws.IsActive {
		return nil, internal.ErrWorkstationInactive
	}

	return &placement.Desk{WorkstationID: ws.ID, Number: ws.DeskNumber}, nil
}

func (s *Service) validatePlacement(ctx context.Context, emp *Employee, workstationID *int64, requireActive bool) error {
	desk, err := s.resolveDesk(ctx, workstationID, requireActive)
	if err != nil {
		return err
	}
	if desk == nil {
		return nil
	}

	result, err := s.placement.Check(ctx, candidateOf(emp), desk)
	if err != nil {
		return err
	}
	return result.Err()
}

func (s *Service) publish(ctx context.Context, event events.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error("failed to publish event",
			"event_type", event.EventType(),
			"event_id", event.EventID(),
			"error", err)
	}
}

func (s *Service) skillViews(ctx context.Context, employeeID int64) ([]SkillRatingView, error) {
	rows, err := s.repo.GetSkills(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return skillViews(rows), nil
}

func (s *Service) images(ctx context.Context, employeeID int64) (*ImagesResponse, error) {
	rows, err := s.repo.GetImages(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	views := imageViews(rows, s.media)
	resp := &ImagesResponse{GalleryImages: []ImageView{}}
	if len(views) > 0 {
		resp.CoverImage = &views[0]
		resp.GalleryImages = views[1:]
	}
	return resp, nil
}

func candidateOf(emp *Employee) placement.Candidate {
	return placement.Candidate{
		ID:       emp.ID,
		Name:     emp.FullName(),
		Position: emp.Position,
	}
}

func sameWorkstation(a, b *int64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
