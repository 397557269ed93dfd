package ledger

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"medistock/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

const dateLayout = "2006-01-02"

func RegisterRoutes(r chi.Router, svc *Service, canRead, canWrite func(http.Handler) http.Handler) {
	r.Route("/cycles", func(cr chi.Router) {
		cr.With(canRead).Get("/", listCyclesHandler(svc))
		cr.With(canWrite).Post("/", createCycleHandler(svc))

		cr.Route("/{cycleID}", func(one chi.Router) {
			one.With(canRead).Get("/", getCycleHandler(svc))
			one.With(canWrite).Put("/", updateCycleHandler(svc))
			one.With(canWrite).Delete("/", deleteCycleHandler(svc))

			one.With(canRead).Get("/stock", getCycleStockHandler(svc))
			one.With(canWrite).Put("/stock", setCycleStockHandler(svc))
		})
	})

	r.Route("/visits", func(vr chi.Router) {
		vr.With(canRead).Get("/", listVisitsHandler(svc))
		vr.With(canWrite).Post("/", createVisitHandler(svc))

		vr.With(canRead).Get("/{visitID}", getVisitHandler(svc))
		vr.With(canWrite).Put("/{visitID}", updateVisitHandler(svc))
		vr.With(canWrite).Delete("/{visitID}", deleteVisitHandler(svc))
	})
}

type stockEntryDTO struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type cycleRequest struct {
	Name                string          `json:"name"`
	StartDate           string          `json:"start_date"` // YYYY-MM-DD
	EndDate             string          `json:"end_date"`
	MarketingPriorities string          `json:"marketing_priorities"`
	Stock               []stockEntryDTO `json:"stock,omitempty"` // solo al crear
}

type cycleResponse struct {
	ID                  string          `json:"id"`
	Name                string          `json:"name"`
	StartDate           string          `json:"start_date"`
	EndDate             string          `json:"end_date"`
	MarketingPriorities string          `json:"marketing_priorities"`
	Stock               []stockEntryDTO `json:"stock"`
	TotalUnits          int             `json:"total_units"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

type setStockRequest struct {
	Entries []stockEntryDTO `json:"entries"`
}

type stockLineResponse struct {
	ProductID         string `json:"product_id"`
	ProductName       string `json:"product_name"`
	ProductIdentifier string `json:"product_identifier,omitempty"`
	Description       string `json:"description,omitempty"`
	Quantity          int    `json:"quantity"`
}

type stockViewResponse struct {
	CycleID   string              `json:"cycle_id"`
	CycleName string              `json:"cycle_name"`
	Lines     []stockLineResponse `json:"lines"`
}

type deleteCycleResponse struct {
	VisitsRemoved int `json:"visits_removed"`
}

type insufficientStockResponse struct {
	Error       string `json:"error"`
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name,omitempty"`
	Available   int    `json:"available"`
	Requested   int    `json:"requested"`
}

// listCyclesHandler godoc
// @Summary Listar ciclos
// @Tags cycles
// @Produce json
// @Success 200 {array} cycleResponse
// @Router /cycles [get]
func listCyclesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListCycles(r.Context())
		if err != nil {
			internalError(w, r, err)
			return
		}

		out := make([]cycleResponse, 0, len(items))
		for _, c := range items {
			out = append(out, toCycleResponse(c))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// createCycleHandler godoc
// @Summary Crear ciclo
// @Description Crea un ciclo con stock para todo el catálogo. Productos no enviados quedan en 0; ids desconocidos se ignoran.
// @Tags cycles
// @Accept json
// @Produce json
// @Param payload body cycleRequest true "Datos del ciclo"
// @Success 201 {object} cycleResponse
// @Failure 400 {string} string "invalid json / fechas inválidas / cantidad negativa"
// @Router /cycles [post]
func createCycleHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req cycleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		in, err := req.toInput()
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		c, err := svc.CreateCycle(r.Context(), in)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, toCycleResponse(c))
	}
}

// getCycleHandler godoc
// @Summary Obtener ciclo
// @Tags cycles
// @Produce json
// @Param cycleID path string true "ID del ciclo"
// @Success 200 {object} cycleResponse
// @Failure 404 {string} string "cycle not found"
// @Router /cycles/{cycleID} [get]
func getCycleHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := svc.GetCycle(r.Context(), chi.URLParam(r, "cycleID"))
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, toCycleResponse(c))
	}
}

// updateCycleHandler godoc
// @Summary Editar ciclo
// @Description Cambia nombre, fechas y prioridades. El stock se edita en /cycles/{cycleID}/stock.
// @Tags cycles
// @Accept json
// @Produce json
// @Param cycleID path string true "ID del ciclo"
// @Param payload body cycleRequest true "Datos del ciclo (stock se ignora)"
// @Success 200 {object} cycleResponse
// @Failure 400 {string} string "invalid json / fechas inválidas"
// @Failure 404 {string} string "cycle not found"
// @Router /cycles/{cycleID} [put]
func updateCycleHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req cycleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		in, err := req.toInput()
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		c, err := svc.UpdateCycleMetadata(r.Context(), chi.URLParam(r, "cycleID"), in)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, toCycleResponse(c))
	}
}

// deleteCycleHandler godoc
// @Summary Eliminar ciclo
// @Description Elimina el ciclo y todas sus visitas.
// @Tags cycles
// @Produce json
// @Param cycleID path string true "ID del ciclo"
// @Success 200 {object} deleteCycleResponse
// @Failure 404 {string} string "cycle not found"
// @Router /cycles/{cycleID} [delete]
func deleteCycleHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n, err := svc.DeleteCycle(r.Context(), chi.URLParam(r, "cycleID"))
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, deleteCycleResponse{VisitsRemoved: n})
	}
}

// getCycleStockHandler godoc
// @Summary Ver stock del ciclo
// @Tags cycles
// @Produce json
// @Param cycleID path string true "ID del ciclo"
// @Success 200 {object} stockViewResponse
// @Failure 404 {string} string "cycle not found"
// @Router /cycles/{cycleID}/stock [get]
func getCycleStockHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, err := svc.CycleStockView(r.Context(), chi.URLParam(r, "cycleID"))
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		out := stockViewResponse{
			CycleID:   view.Cycle.ID,
			CycleName: view.Cycle.Name,
			Lines:     make([]stockLineResponse, 0, len(view.Lines)),
		}
		for _, l := range view.Lines {
			out.Lines = append(out.Lines, stockLineResponse{
				ProductID:         l.ProductID,
				ProductName:       l.ProductName,
				ProductIdentifier: l.ProductIdentifier,
				Description:       l.Description,
				Quantity:          l.Quantity,
			})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// setCycleStockHandler godoc
// @Summary Definir stock del ciclo
// @Description Reemplaza el stock. Productos del catálogo no enviados quedan en 0.
// @Tags cycles
// @Accept json
// @Produce json
// @Param cycleID path string true "ID del ciclo"
// @Param payload body setStockRequest true "Cantidades por producto"
// @Success 200 {object} cycleResponse
// @Failure 400 {string} string "cantidad negativa"
// @Failure 404 {string} string "cycle/product not found"
// @Router /cycles/{cycleID}/stock [put]
func setCycleStockHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req setStockRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		c, err := svc.SetCycleStock(r.Context(), chi.URLParam(r, "cycleID"), toStockEntries(req.Entries))
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, toCycleResponse(c))
	}
}

func (req cycleRequest) toInput() (CycleInput, error) {
	start, err := parseDate(req.StartDate)
	if err != nil {
		return CycleInput{}, fmt.Errorf("invalid start_date: %w", err)
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		return CycleInput{}, fmt.Errorf("invalid end_date: %w", err)
	}
	return CycleInput{
		Name:                req.Name,
		StartDate:           start,
		EndDate:             end,
		MarketingPriorities: req.MarketingPriorities,
		Stock:               toStockEntries(req.Stock),
	}, nil
}

func toStockEntries(in []stockEntryDTO) []StockEntry {
	out := make([]StockEntry, 0, len(in))
	for _, e := range in {
		out = append(out, StockEntry{ProductID: strings.TrimSpace(e.ProductID), Quantity: e.Quantity})
	}
	return out
}

func toCycleResponse(c Cycle) cycleResponse {
	stock := make([]stockEntryDTO, 0, len(c.Stock))
	for _, e := range c.Stock {
		stock = append(stock, stockEntryDTO{ProductID: e.ProductID, Quantity: e.Quantity})
	}
	return cycleResponse{
		ID:                  c.ID,
		Name:                c.Name,
		StartDate:           c.StartDate.Format(dateLayout),
		EndDate:             c.EndDate.Format(dateLayout),
		MarketingPriorities: c.MarketingPriorities,
		Stock:               stock,
		TotalUnits:          c.TotalUnits(),
		CreatedAt:           c.CreatedAt,
		UpdatedAt:           c.UpdatedAt,
	}
}

// parseDate acepta YYYY-MM-DD o RFC3339. Vacío devuelve tiempo cero.
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var ise *InsufficientStockError
	switch {
	case errors.As(err, &ise):
		writeJSON(w, http.StatusConflict, insufficientStockResponse{
			Error:       "insufficient stock",
			ProductID:   ise.ProductID,
			ProductName: ise.ProductName,
			Available:   ise.Available,
			Requested:   ise.Requested,
		})
	case errors.Is(err, ErrInvalidInput),
		errors.Is(err, ErrNegativeQuantity),
		errors.Is(err, ErrInvalidDateRange):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrCycleNotFound):
		http.Error(w, "cycle not found", http.StatusNotFound)
	case errors.Is(err, ErrVisitNotFound):
		http.Error(w, "visit not found", http.StatusNotFound)
	case errors.Is(err, ErrProductNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ErrConcurrentChange):
		http.Error(w, err.Error(), http.StatusConflict)
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
