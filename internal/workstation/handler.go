package workstation

import (
	"context"
	"net/http"
	"strconv"

	"github.com/frahmantamala/employee-directory/internal"
	"github.com/frahmantamala/employee-directory/internal/transport"
)

type ServiceAPI interface {
	ListWorkstations(ctx context.Context, filter ListFilter) ([]*Workstation, error)
	GetWorkstation(ctx context.Context, id int64) (*Workstation, error)
	CreateWorkstation(ctx context.Context, dto *CreateWorkstationDTO) (*Workstation, error)
	UpdateWorkstation(ctx context.Context, id int64, dto *UpdateWorkstationDTO) (*Workstation, error)
	DeleteWorkstation(ctx context.Context, id int64) error
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

func (h *Handler) ListWorkstations(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.RequestContext(r)
	defer cancel()

	filter := ListFilter{
		Location: r.URL.Query().Get("location"),
		Query:    r.URL.Query().Get("q"),
	}
	if raw := r.URL.Query().Get("active"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			h.HandleServiceError(w, internal.NewValidationFieldError("active", "active must be true or false", internal.ErrCodeInvalidRequest))
			return
		}
		filter.Active = &active
	}

	list, err := h.Service.ListWorkstations(ctx, filter)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, WorkstationsResponse{Workstations: list})
}

func (h *Handler) GetWorkstation(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.RequestContext(r)
	defer cancel()

	id, err := h.PathID(r, "id")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	ws, err := h.Service.GetWorkstation(ctx, id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, ws)
}

func (h *Handler) CreateWorkstation(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.RequestContext(r)
	defer cancel()

	var dto CreateWorkstationDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	ws, err := h.Service.CreateWorkstation(ctx, &dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("CreateWorkstation: workstation created", "workstation_id", ws.ID)
	h.WriteJSON(w, http.StatusCreated, ws)
}

func (h *Handler) UpdateWorkstation(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.RequestContext(r)
	defer cancel()

	id, err := h.PathID(r, "id")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	var dto UpdateWorkstationDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	ws, err := h.Service.UpdateWorkstation(ctx, id, &dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, ws)
}

func (h *Handler) DeleteWorkstation(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.RequestContext(r)
	defer cancel()

	id, err := h.PathID(r, "id")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	if err := h.Service.DeleteWorkstation(ctx, id); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
