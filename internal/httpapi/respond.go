package httpapi

import (
	"encoding/json"
	"log"
	"net/http"

	"tradeReportBackend/internal/apperr"
)

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		log.Printf("encode response: %v", err)
		code = http.StatusInternalServerError
		response = []byte(`{"error":"An internal error occurred"}`)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// respondWithAppError maps err onto its status and writes {"error": msg}.
// Internal causes are logged, never sent.
func respondWithAppError(w http.ResponseWriter, r *http.Request, err error) {
	kind := apperr.KindOf(err)
	if kind == apperr.KindInternal {
		log.Printf("[%s] %s %s: %v", RequestIDFrom(r.Context()), r.Method, r.URL.Path, err)
	}
	respondWithError(w, kind.HTTPStatus(), apperr.Message(err))
}
