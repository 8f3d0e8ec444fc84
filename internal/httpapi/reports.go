package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"tradeReportBackend/internal/auth"
)

type createReportRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (a *API) handleCreateReport(w http.ResponseWriter, r *http.Request) {
	p, err := auth.RequirePrincipal(r.Context())
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	// Any author field in the body is ignored; the token decides.
	var req createReportRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if _, err := a.Reports.Create(r.Context(), req.Title, req.Content, p.UserID); err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, map[string]string{"message": "Report created successfully"})
}

func (a *API) handleListReports(w http.ResponseWriter, r *http.Request) {
	list, err := a.Reports.List(r.Context())
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, list)
}

func (a *API) handleGetReport(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		// The route only admits digits, so this is an out-of-range id.
		respondWithError(w, http.StatusNotFound, "Report not found")
		return
	}
	d, err := a.Reports.Get(r.Context(), id)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, d)
}
