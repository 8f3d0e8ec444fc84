package httpapi

import (
	"errors"
	"io"
	"net/http"
)

// WebhookSecretHeader carries the shared secret on webhook calls.
const WebhookSecretHeader = "X-Webhook-Secret"

func (a *API) handleWebhook(w http.ResponseWriter, r *http.Request) {
	secret := r.Header.Get(WebhookSecretHeader)
	if err := a.Signals.CheckSecret(secret); err != nil {
		respondWithAppError(w, r, err)
		return
	}
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBody))
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			respondWithError(w, http.StatusRequestEntityTooLarge, "Payload too large")
			return
		}
		respondWithAppError(w, r, err)
		return
	}
	if _, err := a.Signals.Ingest(r.Context(), secret, string(body)); err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Signal received",
	})
}

func (a *API) handleListSignals(w http.ResponseWriter, r *http.Request) {
	list, err := a.Signals.ListRecent(r.Context())
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, list)
}
