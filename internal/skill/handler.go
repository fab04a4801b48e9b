package skill

import (
	"context"
	"net/http"

	"github.com/frahmantamala/employee-directory/internal/transport"
)

type ServiceAPI interface {
	ListSkills(ctx context.Context) ([]*Skill, error)
	GetSkill(ctx context.Context, id int64) (*Skill, error)
	CreateSkill(ctx context.Context, dto *CreateSkillDTO) (*Skill, error)
	UpdateSkill(ctx context.Context, id int64, dto *UpdateSkillDTO) (*Skill, error)
	DeleteSkill(ctx context.Context, id int64) error
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

func (h *Handler) ListSkills(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.RequestContext(r)
	defer cancel()

	skills, err := h.Service.ListSkills(ctx)
	if err != nil {
		h.Logger.Error("ListSkills: failed to get skills", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	resp := SkillsResponse{Skills: make([]SkillResponse, 0, len(skills))}
	for _, s := range skills {
		resp.Skills = append(resp.Skills, s.ToResponse())
	}
	h.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) GetSkill(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.RequestContext(r)
	defer cancel()

	id, err := h.PathID(r, "id")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	s, err := h.Service.GetSkill(ctx, id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, s.ToResponse())
}

func (h *Handler) CreateSkill(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.RequestContext(r)
	defer cancel()

	var dto CreateSkillDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.Logger.Warn("CreateSkill: invalid request body", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	s, err := h.Service.CreateSkill(ctx, &dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, s.ToResponse())
}

func (h *Handler) UpdateSkill(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.RequestContext(r)
	defer cancel()

	id, err := h.PathID(r, "id")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	var dto UpdateSkillDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	s, err := h.Service.UpdateSkill(ctx, id, &dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, s.ToResponse())
}

func (h *Handler) DeleteSkill(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.RequestContext(r)
	defer cancel()

	id, err := h.PathID(r, "id")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	if err := h.Service.DeleteSkill(ctx, id); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
