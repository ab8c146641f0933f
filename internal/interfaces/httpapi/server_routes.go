package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /{$}", handler.Root)
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerDomainRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/players", handler.RegisterPlayer)
	mux.HandleFunc("GET /v1/players/{tag}", handler.GetPlayer)
	mux.HandleFunc("GET /v1/players/{tag}/matches", handler.ListPlayerMatches)
	mux.HandleFunc("GET /v1/players/{tag}/friends", handler.ListPlayerFriends)
	mux.HandleFunc("POST /v1/friends", handler.LinkFriends)
	mux.HandleFunc("POST /v1/sync/{tag}", handler.SyncPlayer)
	mux.HandleFunc("GET /v1/matches/{battleKey}", handler.GetMatch)
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/jobs/sync-all", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunSyncAllJob)))
}
