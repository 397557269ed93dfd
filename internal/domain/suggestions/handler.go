package suggestions

import (
	"encoding/json"
	"errors"
	"net/http"

	"medistock/internal/domain/doctors"
	"medistock/internal/domain/ledger"
	"medistock/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes monta POST /suggestions.
func RegisterRoutes(r chi.Router, svc *Service, canUse func(http.Handler) http.Handler) {
	r.With(canUse).Post("/suggestions", suggestHandler(svc))
}

type suggestRequest struct {
	DoctorID string `json:"doctor_id"`
	CycleID  string `json:"cycle_id"`
}

type suggestResponse struct {
	SuggestedProducts []string `json:"suggested_products"`
	Reasoning         string   `json:"reasoning"`
}

// suggestHandler godoc
// @Summary Sugerir productos para un médico
// @Description Consulta al proveedor de IA con los productos con stock del ciclo, los intereses del médico y las prioridades del ciclo.
// @Tags suggestions
// @Accept json
// @Produce json
// @Param payload body suggestRequest true "Médico y ciclo"
// @Success 200 {object} suggestResponse
// @Failure 400 {string} string "invalid json / doctor_id y cycle_id requeridos"
// @Failure 404 {string} string "doctor not found / cycle not found"
// @Failure 502 {string} string "suggestion failed"
// @Failure 503 {string} string "suggestions disabled"
// @Router /suggestions [post]
func suggestHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req suggestRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		res, err := svc.ForDoctor(r.Context(), req.DoctorID, req.CycleID)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, suggestResponse{
			SuggestedProducts: res.SuggestedProducts,
			Reasoning:         res.Reasoning,
		})
	}
}

func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, "doctor_id and cycle_id are required", http.StatusBadRequest)
	case errors.Is(err, doctors.ErrNotFound):
		http.Error(w, "doctor not found", http.StatusNotFound)
	case errors.Is(err, ledger.ErrCycleNotFound):
		http.Error(w, "cycle not found", http.StatusNotFound)
	case errors.Is(err, ErrDisabled):
		http.Error(w, "suggestions disabled", http.StatusServiceUnavailable)
	case errors.Is(err, ErrSuggestionFailed):
		logger.FromContext(r.Context()).Warn("suggestion failed", map[string]any{"error": err})
		http.Error(w, "suggestion failed", http.StatusBadGateway)
	default:
		internalError(w, r, err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// internalError registra la causa y responde 500 sin exponerla al cliente.
func internalError(w http.ResponseWriter, r *http.Request, err error) {
	logger.FromContext(r.Context()).Error("request failed", map[string]any{
		"error":  err,
		"method": r.Method,
		"path":   r.URL.Path,
	})
	http.Error(w, "internal error", http.StatusInternalServerError)
}
