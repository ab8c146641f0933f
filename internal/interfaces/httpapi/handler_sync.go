package httpapi

import (
	"net/http"
)

func (h *Handler) SyncPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SyncPlayer")
	defer span.End()

	tag := r.PathValue("tag")
	report, err := h.syncService.Sync(ctx, tag)
	if err != nil {
		h.logger.WarnContext(ctx, "sync player failed", "player_tag", tag, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, report)
}

func (h *Handler) RunSyncAllJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunSyncAllJob")
	defer span.End()

	results, err := h.bulkSyncService.SyncAll(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "sync-all job failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{
		"players": len(results),
		"results": results,
	})
}
