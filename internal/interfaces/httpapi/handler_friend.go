package httpapi

import (
	"net/http"
)

type linkFriendsRequest struct {
	PlayerTag1 string `json:"playerTag1" validate:"required,min=3,max=16"`
	PlayerTag2 string `json:"playerTag2" validate:"required,min=3,max=16"`
}

func (h *Handler) LinkFriends(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.LinkFriends")
	defer span.End()

	var req linkFriendsRequest
	if err := h.decodeBody(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	f, err := h.friendService.Link(ctx, req.PlayerTag1, req.PlayerTag2)
	if err != nil {
		h.logger.WarnContext(ctx, "link friends failed", "tag_1", req.PlayerTag1, "tag_2", req.PlayerTag2, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, friendshipToDTO(f))
}

func (h *Handler) ListPlayerFriends(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayerFriends")
	defer span.End()

	tag := r.PathValue("tag")
	friends, err := h.friendService.ListFriends(ctx, tag)
	if err != nil {
		h.logger.WarnContext(ctx, "list friends failed", "player_tag", tag, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]playerDTO, 0, len(friends))
	for _, p := range friends {
		items = append(items, playerToDTO(p))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}
