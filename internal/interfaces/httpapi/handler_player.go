package httpapi

import (
	"net/http"
)

type registerPlayerRequest struct {
	Username  string `json:"username" validate:"required,min=1,max=50"`
	PlayerTag string `json:"playerTag" validate:"required,min=3,max=16"`
}

func (h *Handler) RegisterPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RegisterPlayer")
	defer span.End()

	var req registerPlayerRequest
	if err := h.decodeBody(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	p, err := h.playerService.Register(ctx, req.Username, req.PlayerTag)
	if err != nil {
		h.logger.WarnContext(ctx, "register player failed", "player_tag", req.PlayerTag, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, playerToDTO(p))
}

func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayer")
	defer span.End()

	tag := r.PathValue("tag")
	p, err := h.playerService.GetByTag(ctx, tag)
	if err != nil {
		h.logger.WarnContext(ctx, "get player failed", "player_tag", tag, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerToDTO(p))
}
