package ledger

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
)

type deliveryDTO struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type visitRequest struct {
	DoctorID   string        `json:"doctor_id"`
	CycleID    string        `json:"cycle_id"`
	Date       string        `json:"date"` // YYYY-MM-DD o RFC3339
	Notes      string        `json:"notes"`
	Deliveries []deliveryDTO `json:"deliveries"`
}

type deliveryResponse struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
}

type visitResponse struct {
	ID         string             `json:"id"`
	DoctorID   string             `json:"doctor_id"`
	CycleID    string             `json:"cycle_id"`
	Date       time.Time          `json:"date"`
	Notes      string             `json:"notes"`
	Deliveries []deliveryResponse `json:"deliveries"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
}

// listVisitsHandler godoc
// @Summary Listar visitas
// @Tags visits
// @Produce json
// @Param cycle_id query string false "Filtrar por ciclo"
// @Param doctor_id query string false "Filtrar por médico"
// @Success 200 {array} visitResponse
// @Router /visits [get]
func listVisitsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		items, err := svc.ListVisits(r.Context(), VisitFilter{
			CycleID:  q.Get("cycle_id"),
			DoctorID: q.Get("doctor_id"),
		})
		if err != nil {
			internalError(w, r, err)
			return
		}
		name, err := svc.ProductNames(r.Context())
		if err != nil {
			internalError(w, r, err)
			return
		}

		out := make([]visitResponse, 0, len(items))
		for _, v := range items {
			out = append(out, toVisitResponse(v, name))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// createVisitHandler godoc
// @Summary Registrar visita
// @Description Registra la visita y descuenta las entregas del stock del ciclo. Todo o nada.
// @Tags visits
// @Accept json
// @Produce json
// @Param payload body visitRequest true "Visita"
// @Success 201 {object} visitResponse
// @Failure 400 {string} string "invalid json / datos faltantes / cantidad negativa"
// @Failure 404 {string} string "cycle not found"
// @Failure 409 {object} insufficientStockResponse
// @Router /visits [post]
func createVisitHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req visitRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		in, err := req.toInput()
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		v, err := svc.CreateVisit(r.Context(), in)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		writeVisit(w, r, svc, http.StatusCreated, v)
	}
}

// getVisitHandler godoc
// @Summary Obtener visita
// @Tags visits
// @Produce json
// @Param visitID path string true "ID de la visita"
// @Success 200 {object} visitResponse
// @Failure 404 {string} string "visit not found"
// @Router /visits/{visitID} [get]
func getVisitHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, err := svc.GetVisit(r.Context(), chi.URLParam(r, "visitID"))
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		writeVisit(w, r, svc, http.StatusOK, v)
	}
}

// updateVisitHandler godoc
// @Summary Editar visita
// @Description Revierte las entregas anteriores y aplica las nuevas (puede cambiar de ciclo). Todo o nada.
// @Tags visits
// @Accept json
// @Produce json
// @Param visitID path string true "ID de la visita"
// @Param payload body visitRequest true "Visita completa"
// @Success 200 {object} visitResponse
// @Failure 400 {string} string "invalid json / datos faltantes"
// @Failure 404 {string} string "visit/cycle not found"
// @Failure 409 {object} insufficientStockResponse
// @Router /visits/{visitID} [put]
func updateVisitHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req visitRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		in, err := req.toInput()
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		v, err := svc.UpdateVisit(r.Context(), chi.URLParam(r, "visitID"), in)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		writeVisit(w, r, svc, http.StatusOK, v)
	}
}

// deleteVisitHandler godoc
// @Summary Eliminar visita
// @Description Devuelve las entregas al stock del ciclo y elimina la visita.
// @Tags visits
// @Param visitID path string true "ID de la visita"
// @Success 204
// @Failure 404 {string} string "visit not found"
// @Router /visits/{visitID} [delete]
func deleteVisitHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.DeleteVisit(r.Context(), chi.URLParam(r, "visitID")); err != nil {
			writeServiceError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func writeVisit(w http.ResponseWriter, r *http.Request, svc *Service, status int, v Visit) {
	name, err := svc.ProductNames(r.Context())
	if err != nil {
		internalError(w, r, err)
		return
	}
	writeJSON(w, status, toVisitResponse(v, name))
}

func (req visitRequest) toInput() (VisitInput, error) {
	date, err := parseDate(req.Date)
	if err != nil {
		return VisitInput{}, fmt.Errorf("invalid date: %w", err)
	}

	deliveries := make([]Delivery, 0, len(req.Deliveries))
	for _, d := range req.Deliveries {
		deliveries = append(deliveries, Delivery{ProductID: strings.TrimSpace(d.ProductID), Quantity: d.Quantity})
	}
	return VisitInput{
		DoctorID:   req.DoctorID,
		CycleID:    req.CycleID,
		Date:       date,
		Notes:      req.Notes,
		Deliveries: deliveries,
	}, nil
}

func toVisitResponse(v Visit, name func(string) string) visitResponse {
	deliveries := make([]deliveryResponse, 0, len(v.Deliveries))
	for _, d := range v.Deliveries {
		deliveries = append(deliveries, deliveryResponse{
			ProductID:   d.ProductID,
			ProductName: name(d.ProductID),
			Quantity:    d.Quantity,
		})
	}
	return visitResponse{
		ID:         v.ID,
		DoctorID:   v.DoctorID,
		CycleID:    v.CycleID,
		Date:       v.Date,
		Notes:      v.Notes,
		Deliveries: deliveries,
		CreatedAt:  v.CreatedAt,
		UpdatedAt:  v.UpdatedAt,
	}
}
