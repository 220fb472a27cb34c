package api

import (
	"encoding/json"
	"net/http"

	"github.com/kadarb/studyflash/internal/ai"
	apperrors "github.com/kadarb/studyflash/internal/errors"
	"github.com/kadarb/studyflash/internal/services"
	"github.com/kadarb/studyflash/internal/storage"
	"github.com/kadarb/studyflash/internal/store"
)

// Server bundles the handlers' dependencies. Routes() wires it to a router.
type Server struct {
	Store       *store.Store
	Chat        services.ChatService
	Plan        services.PlanService
	Quiz        services.QuizService
	Documents   services.DocumentService
	Images      *ai.ImageClient
	Snapshots   storage.SnapshotLister
	CORSOrigins []string
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

// decodeJSON reads a JSON request body into dst, rejecting unknown fields.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, 1<<20))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return apperrors.NewBadRequestError("invalid JSON body: " + err.Error())
	}
	return nil
}
