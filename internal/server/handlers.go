package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/claude/setforge/internal/export"
	"github.com/claude/setforge/internal/models"
	"github.com/claude/setforge/internal/pipeline"
	"github.com/claude/setforge/internal/storage"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type matchRequest struct {
	Names []string `json:"names"`
}

func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	var req matchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if len(req.Names) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "names is required"})
		return
	}

	results := s.pipe.NormalizeAndMatch(r.Context(), req.Names)
	writeJSON(w, http.StatusOK, map[string]any{"results": results})
}

// handlePlan converts a raw workout into its intermediate plan,
// serialized in the wearable DTO shape.
func (s *Server) handlePlan(w http.ResponseWriter, r *http.Request) {
	var workout models.Workout
	if err := json.NewDecoder(r.Body).Decode(&workout); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	matches := s.pipe.NormalizeAndMatch(r.Context(), pipeline.ExtractNames(workout))
	plan := s.pipe.BuildPlan(workout, matches)

	out, err := export.Export(plan, export.TargetWearable)
	if err != nil {
		s.log.Error("plan render error", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(out)
}

// handleExport renders a workout in the requested target format. With
// ?validate=true the export is refused while unmapped exercises remain.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	target, err := export.ParseTarget(chi.URLParam(r, "target"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	var workout models.Workout
	if err := json.NewDecoder(r.Body).Decode(&workout); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	matches := s.pipe.NormalizeAndMatch(r.Context(), pipeline.ExtractNames(workout))
	if r.URL.Query().Get("validate") == "true" {
		if ok, unmapped := pipeline.CanProceed(matches); !ok {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
				"error":    "unmapped exercises",
				"unmapped": unmapped,
			})
			return
		}
	}

	plan := s.pipe.BuildPlan(workout, matches)
	out, err := export.Export(plan, target)
	if err != nil {
		s.log.Error("export render error", "target", target, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	w.Header().Set("Content-Type", export.ContentType(target))
	w.WriteHeader(http.StatusOK)
	w.Write(out)
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"entries": s.index.Entries()})
}

func (s *Server) handleListMappings(w http.ResponseWriter, r *http.Request) {
	mappings, err := s.store.ListMappings(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"mappings": mappings})
}

type putMappingRequest struct {
	Canonical string `json:"canonical"`
}

func (s *Server) handlePutMapping(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	var req putMappingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if req.Canonical == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "canonical is required"})
		return
	}

	if err := s.store.UpsertMapping(r.Context(), name, req.Canonical); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	// A confirmed mapping counts as a chosen one.
	if err := s.store.RecordUsage(r.Context(), name, req.Canonical); err != nil {
		s.log.Warn("record mapping usage failed", "name", name, "error", err)
	}
	writeJSON(w, http.StatusOK, map[string]string{"name": name, "canonical": req.Canonical})
}

func (s *Server) handleDeleteMapping(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := s.store.DeleteMapping(r.Context(), name); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handlePopularMappings(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	popular, err := s.store.PopularMappings(r.Context(), name, limit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"name": name, "popular": popular})
}

func (s *Server) handleSaveWorkout(w http.ResponseWriter, r *http.Request) {
	var workout models.Workout
	if err := json.NewDecoder(r.Body).Decode(&workout); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if workout.Title == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "title is required"})
		return
	}

	id, err := s.store.SaveWorkout(r.Context(), workout)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id.String()})
}

func (s *Server) handleListWorkouts(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	workouts, err := s.store.ListWorkouts(r.Context(), limit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"workouts": workouts})
}

func (s *Server) handleGetWorkout(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid workout ID"})
		return
	}

	sw, err := s.store.GetWorkout(r.Context(), id)
	if errors.Is(err, storage.ErrWorkoutNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "workout not found"})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, sw)
}

func (s *Server) handleDeleteWorkout(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid workout ID"})
		return
	}

	err = s.store.DeleteWorkout(r.Context(), id)
	if errors.Is(err, storage.ErrWorkoutNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "workout not found"})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
