package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

// Reference data is readable without a token: the stage display and the
// audience board consume it.
func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/categories", handler.ListCategories)
	mux.HandleFunc("GET /v1/contestants", handler.ListContestants)
	mux.HandleFunc("GET /v1/judges", handler.ListJudges)
	mux.HandleFunc("GET /v1/summaries/overall", handler.GetOverallSummary)
	mux.HandleFunc("GET /v1/summaries/{categoryID}", handler.GetCategorySummary)
	mux.HandleFunc("GET /v1/events", handler.StreamEvents)
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	registerScoringRoutes(mux, handler, verifier)
	registerLockRoutes(mux, handler, verifier)
	registerActivityRoutes(mux, handler, verifier)
	registerAdminRoutes(mux, handler, verifier)
	registerPresenceRoutes(mux, handler, verifier)
}

func registerScoringRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/scores/{categoryID}/contestants/{contestantID}", RequireAuth(verifier, http.HandlerFunc(handler.SubmitScores)))
	mux.Handle("GET /v1/scores/{categoryID}/contestants/{contestantID}", RequireAuth(verifier, http.HandlerFunc(handler.GetSubmittedScores)))
}

func registerLockRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/locks", RequireAuth(verifier, http.HandlerFunc(handler.ListMyLocks)))
	mux.Handle("GET /v1/locks/{categoryID}/contestants/{contestantID}", RequireAuth(verifier, http.HandlerFunc(handler.GetLockState)))
	mux.Handle("DELETE /v1/locks/{judgeID}/{categoryID}/{contestantID}", RequireAuth(verifier, http.HandlerFunc(handler.RemoveLock)))
}

func registerActivityRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/activity", RequireAuth(verifier, http.HandlerFunc(handler.ListActivity)))
	mux.Handle("DELETE /v1/activity", RequireAuth(verifier, http.HandlerFunc(handler.ClearActivity)))
}

func registerAdminRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/admin/contestants", RequireAuth(verifier, http.HandlerFunc(handler.CreateContestantPair)))
	mux.Handle("POST /v1/admin/judges", RequireAuth(verifier, http.HandlerFunc(handler.CreateJudge)))
	mux.Handle("POST /v1/admin/reset", RequireAuth(verifier, http.HandlerFunc(handler.SystemReset)))
}

func registerPresenceRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/presence/login", RequireAuth(verifier, http.HandlerFunc(handler.RecordLogin)))
	mux.Handle("POST /v1/presence/logout", RequireAuth(verifier, http.HandlerFunc(handler.RecordLogout)))
}
