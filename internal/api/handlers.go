package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"quizdeck/internal/errors"
	"quizdeck/internal/logger"
	"quizdeck/internal/models"
	"quizdeck/internal/session"
)

func respondJSON(w http.ResponseWriter, r *http.Request, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.FromContext(r.Context()).Error("failed to encode response: %v", err)
	}
}

// handleHealth returns a liveness probe, always 200 OK.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

// handleReady reports readiness, checking database connectivity.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.DB != nil {
		if err := s.DB.PingContext(r.Context()); err != nil {
			logger.FromContext(r.Context()).Warn("readiness check failed: %v", err)
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("Database unavailable"))
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Ready"))
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	cats := s.QuizService.Categories(r.Context())
	respondJSON(w, r, http.StatusOK, map[string]interface{}{"categories": cats})
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, s.QuizService.State(r.Context()))
}

func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	state, err := s.QuizService.StartQuiz(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, state)
}

func (s *Server) handleSelectAnswer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Answer string `json:"answer"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handleError(w, r, errors.NewBadRequestError("invalid request body"))
		return
	}
	if req.Answer == "" {
		handleError(w, r, errors.NewValidationError("answer", "cannot be empty"))
		return
	}
	respondJSON(w, r, http.StatusOK, s.QuizService.SelectAnswer(r.Context(), req.Answer))
}

func (s *Server) handleAdvance(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, s.QuizService.Advance(r.Context()))
}

func (s *Server) handleFinishSession(w http.ResponseWriter, r *http.Request) {
	result, err := s.QuizService.FinishQuiz(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]interface{}{
		"result": result,
		"state":  s.QuizService.State(r.Context()),
	})
}

func (s *Server) handleResetSession(w http.ResponseWriter, r *http.Request) {
	full := r.URL.Query().Get("full") == "true"
	respondJSON(w, r, http.StatusOK, s.QuizService.ResetQuiz(r.Context(), full))
}

type settingsView struct {
	Category      *models.Category `json:"category"`
	Difficulty    string           `json:"difficulty"`
	QuestionCount int              `json:"question_count"`
}

func settingsFromState(state session.State) settingsView {
	return settingsView{
		Category:      state.Category,
		Difficulty:    state.Difficulty,
		QuestionCount: state.QuestionCount,
	}
}

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, settingsFromState(s.QuizService.State(r.Context())))
}

// handleUpdateSettings applies a partial settings update. Absent fields keep
// their current value; an explicit null category means "any category".
func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Category      json.RawMessage `json:"category"`
		Difficulty    *string         `json:"difficulty"`
		QuestionCount *int            `json:"question_count"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handleError(w, r, errors.NewBadRequestError("invalid request body"))
		return
	}

	ctx := r.Context()
	if req.Category != nil {
		if string(req.Category) == "null" {
			s.QuizService.SetCategory(ctx, nil)
		} else {
			var cat models.Category
			if err := json.Unmarshal(req.Category, &cat); err != nil {
				handleError(w, r, errors.NewValidationError("category", "must be an object or null"))
				return
			}
			if cat.ID <= 0 || cat.Name == "" {
				handleError(w, r, errors.NewValidationError("category", "id and name are required"))
				return
			}
			s.QuizService.SetCategory(ctx, &cat)
		}
	}
	if req.Difficulty != nil {
		if _, err := s.QuizService.SetDifficulty(ctx, *req.Difficulty); err != nil {
			handleError(w, r, err)
			return
		}
	}
	if req.QuestionCount != nil {
		if _, err := s.QuizService.SetQuestionCount(ctx, *req.QuestionCount); err != nil {
			handleError(w, r, err)
			return
		}
	}

	respondJSON(w, r, http.StatusOK, settingsFromState(s.QuizService.State(ctx)))
}

func (s *Server) handleResults(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	if category == "" {
		handleError(w, r, errors.NewValidationError("category", "query parameter is required"))
		return
	}
	records, err := s.QuizService.ResultsByCategory(r.Context(), category)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]interface{}{"results": records})
}

func (s *Server) handleRecentResults(w http.ResponseWriter, r *http.Request) {
	limit := 5
	if v := r.URL.Query().Get("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			handleError(w, r, errors.NewValidationError("limit", "must be a positive integer"))
			return
		}
		limit = parsed
	}
	records, err := s.QuizService.RecentResults(r.Context(), limit)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]interface{}{"results": records})
}

func (s *Server) handleResultStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.QuizService.Stats(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, stats)
}

func (s *Server) handleDeleteResult(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		handleError(w, r, errors.NewValidationError("id", "must be an integer"))
		return
	}
	if err := s.QuizService.DeleteResult(r.Context(), id); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]interface{}{"deleted": true})
}

func (s *Server) handleClearResults(w http.ResponseWriter, r *http.Request) {
	affected, err := s.QuizService.ClearResults(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]interface{}{"cleared": affected})
}
