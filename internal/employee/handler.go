package employee

import (
	"context"
	"net/http"
	"strconv"

	"github.com/frahmantamala/employee-directory/internal"
	"github.com/frahmantamala/employee-directory/internal/placement"
	"github.com/frahmantamala/employee-directory/internal/transport"
)

type ReaderAPI interface {
	GetDetail(ctx context.Context, id int64) (*EmployeeView, error)
	ListRecent(ctx context.Context, limit int) (*RecentEmployees, error)
	ListAll(ctx context.Context, page, pageSize int) (*EmployeePage, error)
	Search(ctx context.Context, filter ListFilter, page, pageSize int) (*EmployeePage, error)
}

type ServiceAPI interface {
	CreateEmployee(ctx context.Context, dto *CreateEmployeeDTO) (*Employee, error)
	UpdateEmployee(ctx context.Context, id int64, dto *UpdateEmployeeDTO) (*Employee, error)
	AssignWorkstation(ctx context.Context, id int64, dto *AssignWorkstationDTO) (*Employee, error)
	CheckPlacement(ctx context.Context, id int64, dto *PlacementCheckDTO) (*placement.Result, error)
	DeleteEmployee(ctx context.Context, id int64) error
	SetSkillLevel(ctx context.Context, employeeID, skillID int64, dto *SetSkillLevelDTO) ([]SkillRatingView, error)
	RemoveSkill(ctx context.Context, employeeID, skillID int64) error
	AddImage(ctx context.Context, employeeID int64, dto *AddImageDTO) (*ImagesResponse, error)
	DeleteImage(ctx context.Context, employeeID, imageID int64) error
}

type Handler struct {
	*transport.BaseHandler
	Reader  ReaderAPI
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, reader ReaderAPI, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Reader:      reader,
		Service:     service,
	}
}

// ListRecent serves the home page: the latest hires and the headcount.
func (h *Handler) ListRecent(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.RequestContext(r)
	defer cancel()

	recent, err := h.Reader.ListRecent(ctx, h.QueryInt(r, "limit", 0))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, recent)
}

func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.RequestContext(r)
	defer cancel()

	query := r.URL.Query()
	filter := ListFilter{
		Query:    query.Get("q"),
		Position: query.Get("position"),
	}
	if raw := query.Get("workstation_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			h.HandleServiceError(w, internal.NewValidationFieldError("workstation_id",
				"workstation_id must be a positive integer", internal.ErrCodeInvalidRequest))
			return
		}
		filter.WorkstationID = &id
	}

	page, err := h.Reader.Search(ctx, filter, h.QueryInt(r, "page", 1), h.QueryInt(r, "page_size", 0))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, page)
}

func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.RequestContext(r)
	defer cancel()

	id, err := h.PathID(r, "id")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	view, err := h.Reader.GetDetail(ctx, id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, view)
}

func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.RequestContext(r)
	defer cancel()

	var dto CreateEmployeeDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.Logger.Warn("CreateEmployee: invalid request body", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	emp, err := h.Service.CreateEmployee(ctx, &dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("CreateEmployee: employee created successfully", "employee_id", emp.ID)
	h.writeDetail(ctx, w, http.StatusCreated, emp.ID)
}

func (h *Handler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.RequestContext(r)
	defer cancel()

	id, err := h.PathID(r, "id")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	var dto UpdateEmployeeDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	if _, err := h.Service.UpdateEmployee(ctx, id, &dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.writeDetail(ctx, w, http.StatusOK, id)
}

func (h *Handler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.RequestContext(r)
	defer cancel()

	id, err := h.PathID(r, "id")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	if err := h.Service.DeleteEmployee(ctx, id); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) AssignWorkstation(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.RequestContext(r)
	defer cancel()

	id, err := h.PathID(r, "id")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	var dto AssignWorkstationDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	if _, err := h.Service.AssignWorkstation(ctx, id, &dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.writeDetail(ctx, w, http.StatusOK, id)
}

// CheckPlacement always answers 200; conflicts are part of the body.
func (h *Handler) CheckPlacement(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.RequestContext(r)
	defer cancel()

	id, err := h.PathID(r, "id")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	var dto PlacementCheckDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	result, err := h.Service.CheckPlacement(ctx, id, &dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	conflicts := result.Conflicts
	if conflicts == nil {
		conflicts = []placement.Conflict{}
	}
	h.WriteJSON(w, http.StatusOK, PlacementCheckResponse{OK: result.OK(), Conflicts: conflicts})
}

func (h *Handler) SetSkillLevel(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.RequestContext(r)
	defer cancel()

	employeeID, err := h.PathID(r, "id")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	skillID, err := h.PathID(r, "skillID")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	var dto SetSkillLevelDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	skills, err := h.Service.SetSkillLevel(ctx, employeeID, skillID, &dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, SkillsResponse{Skills: skills})
}

func (h *Handler) RemoveSkill(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.RequestContext(r)
	defer cancel()

	employeeID, err := h.PathID(r, "id")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	skillID, err := h.PathID(r, "skillID")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	if err := h.Service.RemoveSkill(ctx, employeeID, skillID); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) AddImage(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.RequestContext(r)
	defer cancel()

	employeeID, err := h.PathID(r, "id")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	var dto AddImageDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	images, err := h.Service.AddImage(ctx, employeeID, &dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, images)
}

func (h *Handler) DeleteImage(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.RequestContext(r)
	defer cancel()

	employeeID, err := h.PathID(r, "id")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	imageID, err := h.PathID(r, "imageID")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	if err := h.Service.DeleteImage(ctx, employeeID, imageID); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) writeDetail(ctx context.Context, w http.ResponseWriter, status int, id int64) {
	view, err := h.Reader.GetDetail(ctx, id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, status, view)
}
