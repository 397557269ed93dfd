package dashboard

import (
	"encoding/json"
	"net/http"

	"medistock/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes monta GET /dashboard.
func RegisterRoutes(r chi.Router, svc *Service, canRead func(http.Handler) http.Handler) {
	r.With(canRead).Get("/dashboard", summaryHandler(svc))
}

type summaryResponse struct {
	Doctors    int `json:"doctors"`
	Products   int `json:"products"`
	Cycles     int `json:"cycles"`
	Visits     int `json:"visits"`
	StockUnits int `json:"stock_units"`
}

// summaryHandler godoc
// @Summary Resumen del inicio
// @Description Cantidad de médicos, productos, ciclos, visitas y unidades en stock.
// @Tags dashboard
// @Produce json
// @Success 200 {object} summaryResponse
// @Router /dashboard [get]
func summaryHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, err := svc.Summary(r.Context())
		if err != nil {
			internalError(w, r, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(summaryResponse(s))
	}
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
