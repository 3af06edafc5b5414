// This file contains the handler functions for the rename workflow:
// scanning a directory into a preview batch, validating edited plans,
// applying a batch, and undoing the last applied batch.

package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/tmalloy/bindery/internal/library"
	"github.com/tmalloy/bindery/internal/models"
	"github.com/tmalloy/bindery/internal/renamer"
	"github.com/tmalloy/bindery/internal/update"
)

func (s *Server) handleGetVersion(w http.ResponseWriter, r *http.Request) {
	RespondWithJSON(w, http.StatusOK, map[string]string{"version": s.app.Version()})
}

func (s *Server) handleUpdateCheck(w http.ResponseWriter, r *http.Request) {
	result, err := update.Check(s.app.Config().UpdateURL, s.app.Version())
	if err != nil {
		RespondWithError(w, http.StatusBadGateway, "Update check failed: "+err.Error())
		return
	}
	RespondWithJSON(w, http.StatusOK, result)
}

// scanDir resolves the target directory for a request, defaulting to
// the configured library path.
func (s *Server) scanDir(dir string) string {
	if dir == "" {
		return s.app.Config().Library.Path
	}
	return dir
}

func (s *Server) handleGetPlans(w http.ResponseWriter, r *http.Request) {
	dir := s.scanDir(r.URL.Query().Get("dir"))

	batch, err := library.ScanDirectory(s.app, dir)
	if err != nil {
		RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"dir":   dir,
		"plans": batch,
	})
}

// batchPayload is the request body shared by validate and apply. Plans
// are sent back as the scan produced them, with proposed_name possibly
// edited by the user.
type batchPayload struct {
	Dir   string       `json:"dir"`
	Plans models.Batch `json:"plans"`
}

func (s *Server) decodeBatch(r *http.Request) (*batchPayload, error) {
	var payload batchPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		return nil, err
	}
	payload.Dir = s.scanDir(payload.Dir)
	// Edited names invalidate the scan-time length annotations.
	for _, plan := range payload.Plans {
		renamer.Annotate(plan)
	}
	return &payload, nil
}

func (s *Server) handleValidatePlans(w http.ResponseWriter, r *http.Request) {
	payload, err := s.decodeBatch(r)
	if err != nil {
		RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := library.ValidateBatch(payload.Dir, payload.Plans); err != nil {
		RespondWithJSON(w, http.StatusOK, map[string]interface{}{
			"valid": false,
			"error": err.Error(),
			"plans": payload.Plans,
		})
		return
	}

	RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"valid": true,
		"plans": payload.Plans,
	})
}

func (s *Server) handleApply(w http.ResponseWriter, r *http.Request) {
	payload, err := s.decodeBatch(r)
	if err != nil {
		RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	result, err := library.Apply(s.app, payload.Dir, payload.Plans)
	if err != nil {
		RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	RespondWithJSON(w, http.StatusOK, result)
}

func (s *Server) handleUndo(w http.ResponseWriter, r *http.Request) {
	restored, err := library.UndoLast(s.app)
	if err != nil {
		RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	RespondWithJSON(w, http.StatusOK, map[string]int{"restored": restored})
}

func (s *Server) handleGetHistory(w http.ResponseWriter, r *http.Request) {
	limit := 100
	if v := r.URL.Query().Get("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 {
			RespondWithError(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = parsed
	}

	records, err := s.store.History(limit)
	if err != nil {
		RespondWithError(w, http.StatusInternalServerError, "Failed to load rename history")
		return
	}
	if records == nil {
		records = []models.RenameRecord{}
	}

	RespondWithJSON(w, http.StatusOK, records)
}

func (s *Server) handleRunJob(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		JobName string `json:"job_name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	err := s.app.JobManager().RunJob(payload.JobName, s.app)
	if err != nil {
		RespondWithError(w, http.StatusConflict, err.Error()) // 409 Conflict if a job is already running
		return
	}

	RespondWithJSON(w, http.StatusAccepted, map[string]string{
		"message": "Job '" + payload.JobName + "' started successfully.",
	})
}

func (s *Server) handleGetJobsStatus(w http.ResponseWriter, r *http.Request) {
	statuses := s.app.JobManager().GetStatus()
	RespondWithJSON(w, http.StatusOK, statuses)
}
