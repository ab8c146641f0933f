package httpapi

import (
	"net/http"
	"strconv"
)

func (h *Handler) ListPlayerMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayerMatches")
	defer span.End()

	tag := r.PathValue("tag")
	limit := parseLimit(r.URL.Query().Get("limit"))

	matches, err := h.matchService.History(ctx, tag, limit)
	if err != nil {
		h.logger.WarnContext(ctx, "list matches failed", "player_tag", tag, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]matchDTO, 0, len(matches))
	for _, m := range matches {
		items = append(items, matchToDTO(m))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatch")
	defer span.End()

	battleKey := r.PathValue("battleKey")
	m, err := h.matchService.GetByBattleKey(ctx, battleKey)
	if err != nil {
		h.logger.WarnContext(ctx, "get match failed", "battle_key", battleKey, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(m))
}

// parseLimit tolerates absent or garbled limit values; the service clamps the
// result either way.
func parseLimit(raw string) int {
	if raw == "" {
		return 0
	}
	limit, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return limit
}
