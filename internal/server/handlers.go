package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"github.com/hayato-coosy/kouseian/internal/brief"
	"github.com/hayato-coosy/kouseian/internal/llm"
	"github.com/hayato-coosy/kouseian/internal/present"
	"github.com/hayato-coosy/kouseian/internal/share"
)

const maxBodyBytes = 1 << 20

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleGenerateBrief(w http.ResponseWriter, r *http.Request) {
	var req brief.Request
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		hlog.FromRequest(r).Warn().Err(err).Msg("Invalid generate request body")
		writeError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		writeValidationError(w, r, err)
		return
	}

	if s.generator == nil {
		writeConfigError(w, r, "generation", s.generatorErr)
		return
	}

	result, err := s.generator.GenerateBrief(r.Context(), req)
	if err != nil {
		var vErr *brief.ValidationError
		if errors.As(err, &vErr) {
			writeValidationError(w, r, err)
			return
		}
		hlog.FromRequest(r).Error().Err(err).Str("code", llm.ErrorCode(err)).Msg("Brief generation failed")
		writeError(w, r, http.StatusInternalServerError, GenerationFailedMessage)
		return
	}

	writeJSON(w, r, http.StatusOK, result)
}

func writeValidationError(w http.ResponseWriter, r *http.Request, err error) {
	body := errorBody{Error: "Missing required fields"}
	var vErr *brief.ValidationError
	if errors.As(err, &vErr) {
		body.Fields = vErr.Messages()
	}
	writeJSON(w, r, http.StatusBadRequest, body)
}

type createBriefResponse struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

func (s *Server) handleCreateBrief(w http.ResponseWriter, r *http.Request) {
	if s.shares == nil {
		writeConfigError(w, r, "store", s.sharesErr)
		return
	}

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "Invalid data")
		return
	}
	result, err := brief.DecodeResult(data)
	if err != nil {
		hlog.FromRequest(r).Warn().Err(err).Msg("Rejected brief payload")
		writeError(w, r, http.StatusBadRequest, "Invalid data")
		return
	}

	id, err := s.shares.Create(r.Context(), result)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("Failed to save brief")
		writeError(w, r, http.StatusInternalServerError, "Failed to save brief")
		return
	}

	writeJSON(w, r, http.StatusOK, createBriefResponse{ID: id, URL: share.URL(s.shareBase(r), id)})
}

func (s *Server) handleGetBrief(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		writeError(w, r, http.StatusBadRequest, "Missing ID")
		return
	}
	if s.shares == nil {
		writeConfigError(w, r, "store", s.sharesErr)
		return
	}

	result, err := s.shares.Resolve(r.Context(), id)
	if err != nil {
		writeError(w, r, http.StatusNotFound, "Not found")
		return
	}
	writeJSON(w, r, http.StatusOK, result)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, present.PageIndex, nil)
}

func (s *Server) handleShareView(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if s.shares == nil {
		hlog.FromRequest(r).Error().Err(s.sharesErr).Msg("Share view requested without a store")
		s.render(w, r, http.StatusNotFound, present.PageNotFound, nil)
		return
	}

	result, err := s.shares.Resolve(r.Context(), id)
	if err != nil {
		s.render(w, r, http.StatusNotFound, present.PageNotFound, nil)
		return
	}

	s.render(w, r, http.StatusOK, present.PageShare, present.ShareView{
		ID:           id,
		URL:          share.URL(s.shareBase(r), id),
		Result:       result,
		ChecklistKey: present.ChecklistKey(id),
	})
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, page string, data any) {
	if err := s.renderer.RenderHTTP(w, status, page, data); err != nil {
		hlog.FromRequest(r).Error().Err(err).Str("page", page).Msg("Failed to render page")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// shareBase is the configured base URL or the scheme and host of r.
func (s *Server) shareBase(r *http.Request) string {
	if s.baseURL != "" {
		return s.baseURL
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	return scheme + "://" + r.Host
}
