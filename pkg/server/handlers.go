package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"tweetvault/pkg/archive"
)

var validate = validator.New()

type updateEntryRequest struct {
	Notes    *string  `json:"notes" validate:"omitempty,max=10000"`
	Score    *float64 `json:"score"`
	Reviewed *bool    `json:"reviewed"`
}

type swipeRequest struct {
	Action string `json:"action" validate:"required,oneof=like dislike superlike later"`
}

type createTagRequest struct {
	Name     string `json:"name" validate:"required,max=64"`
	Category string `json:"category" validate:"omitempty,oneof=topic pattern use custom"`
	Color    string `json:"color" validate:"omitempty,max=32"`
}

type attachTagRequest struct {
	Name string `json:"name" validate:"required,max=64"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) handleListEntries(w http.ResponseWriter, r *http.Request) {
	page, err := archive.ListEntries(r.Context(), s.db, parseFilters(r.URL.Query()))
	if err != nil {
		s.storeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, page)
}

func (s *Server) handleGetEntry(w http.ResponseWriter, r *http.Request) {
	entry, err := archive.GetEntry(r.Context(), s.db, chi.URLParam(r, "id"))
	if err != nil {
		s.storeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, entry)
}

func (s *Server) handleUpdateEntry(w http.ResponseWriter, r *http.Request) {
	var req updateEntryRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	entry, err := archive.UpdateEntry(r.Context(), s.db, chi.URLParam(r, "id"), req.Notes, req.Score, req.Reviewed)
	if err != nil {
		s.storeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, entry)
}

func (s *Server) handleDeleteEntry(w http.ResponseWriter, r *http.Request) {
	if err := archive.DeleteEntry(r.Context(), s.db, chi.URLParam(r, "id")); err != nil {
		s.storeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSwipeEntry(w http.ResponseWriter, r *http.Request) {
	var req swipeRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	entry, err := archive.SwipeEntry(r.Context(), s.db, chi.URLParam(r, "id"), req.Action)
	if err != nil {
		s.storeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, entry)
}

func (s *Server) handleAttachTag(w http.ResponseWriter, r *http.Request) {
	var req attachTagRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	tag, err := archive.TagEntry(r.Context(), s.db, chi.URLParam(r, "id"), req.Name, archive.SourceManual)
	if err != nil {
		s.storeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, tag)
}

func (s *Server) handleDetachTag(w http.ResponseWriter, r *http.Request) {
	err := archive.UntagEntry(r.Context(), s.db, chi.URLParam(r, "id"), chi.URLParam(r, "name"))
	if err != nil {
		s.storeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListTags(w http.ResponseWriter, r *http.Request) {
	tags, err := archive.ListTags(r.Context(), s.db)
	if err != nil {
		s.storeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, tags)
}

func (s *Server) handleCreateTag(w http.ResponseWriter, r *http.Request) {
	var req createTagRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Category == "" {
		req.Category = archive.CategoryCustom
	}

	tag, err := archive.CreateTag(r.Context(), s.db, req.Name, req.Category, req.Color)
	if err != nil {
		s.storeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, tag)
}

func (s *Server) handleDeleteTag(w http.ResponseWriter, r *http.Request) {
	if err := archive.DeleteTag(r.Context(), s.db, chi.URLParam(r, "name")); err != nil {
		s.storeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleQueue(w http.ResponseWriter, r *http.Request) {
	queue, err := archive.SwipeQueue(r.Context(), s.db, parseQueueFilters(r.URL.Query()))
	if err != nil {
		s.storeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, queue)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := archive.CollectStats(r.Context(), s.db)
	if err != nil {
		s.storeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, stats)
}

// decodeBody unmarshals a request body and runs its validation tags.
func decodeBody(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %v", err)
	}
	if err := validate.Struct(dst); err != nil {
		return errors.New(validationMessage(err))
	}
	return nil
}

// validationMessage flattens validator errors into one readable line.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	parts := make([]string, 0, len(verrs))
	for _, e := range verrs {
		field := strings.ToLower(e.Field())
		switch e.Tag() {
		case "required":
			parts = append(parts, field+" is required")
		case "oneof":
			parts = append(parts, field+" must be one of: "+e.Param())
		case "max":
			parts = append(parts, field+" is too long")
		default:
			parts = append(parts, field+" is invalid")
		}
	}
	return strings.Join(parts, "; ")
}

// storeError maps archive errors onto HTTP statuses. Anything unrecognized
// is a 500 with the detail kept out of the response body.
func (s *Server) storeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, archive.ErrEntryNotFound), errors.Is(err, archive.ErrTagNotFound):
		s.writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, archive.ErrEntryExists), errors.Is(err, archive.ErrDuplicateTag):
		s.writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, archive.ErrEmptyTagName),
		errors.Is(err, archive.ErrInvalidCategory),
		errors.Is(err, archive.ErrInvalidKind),
		errors.Is(err, archive.ErrInvalidSwipe):
		s.writeError(w, http.StatusBadRequest, err.Error())
	default:
		s.logger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		s.writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}
