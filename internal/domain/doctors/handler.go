package doctors

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"medistock/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes monta /doctors. canRead/canWrite son middlewares de autorización por rol.
func RegisterRoutes(r chi.Router, svc *Service, canRead, canWrite func(http.Handler) http.Handler) {
	r.Route("/doctors", func(dr chi.Router) {
		dr.With(canRead).Get("/", listDoctorsHandler(svc))
		dr.With(canWrite).Post("/", createDoctorHandler(svc))

		dr.With(canRead).Get("/{doctorID}", getDoctorHandler(svc))
		dr.With(canWrite).Put("/{doctorID}", updateDoctorHandler(svc))
		dr.With(canWrite).Delete("/{doctorID}", deleteDoctorHandler(svc))
	})
}

// doctorRequest es el cuerpo para crear o reemplazar un médico.
type doctorRequest struct {
	Name      string `json:"name"`
	Specialty string `json:"specialty"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Interests string `json:"interests"`
}

// doctorResponse representa un médico devuelto por la API.
type doctorResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Specialty string    `json:"specialty"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	Interests string    `json:"interests"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// listDoctorsHandler godoc
// @Summary Listar médicos
// @Description Devuelve todos los médicos ordenados por nombre.
// @Tags doctors
// @Produce json
// @Success 200 {array} doctorResponse
// @Failure 401 {string} string "unauthorized"
// @Router /doctors [get]
func listDoctorsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			internalError(w, r, err)
			return
		}

		out := make([]doctorResponse, 0, len(items))
		for _, d := range items {
			out = append(out, toDoctorResponse(d))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// createDoctorHandler godoc
// @Summary Crear médico
// @Description Crea un médico. Solo administradores.
// @Tags doctors
// @Accept json
// @Produce json
// @Param payload body doctorRequest true "Datos del médico; name es obligatorio"
// @Success 201 {object} doctorResponse
// @Failure 400 {string} string "invalid json / name requerido"
// @Failure 403 {string} string "forbidden"
// @Router /doctors [post]
func createDoctorHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req doctorRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		d, err := svc.Create(r.Context(), req.toInput())
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, toDoctorResponse(d))
	}
}

// getDoctorHandler godoc
// @Summary Obtener médico
// @Tags doctors
// @Produce json
// @Param doctorID path string true "ID del médico"
// @Success 200 {object} doctorResponse
// @Failure 404 {string} string "doctor not found"
// @Router /doctors/{doctorID} [get]
func getDoctorHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d, err := svc.GetByID(r.Context(), chi.URLParam(r, "doctorID"))
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, toDoctorResponse(d))
	}
}

// updateDoctorHandler godoc
// @Summary Reemplazar médico
// @Tags doctors
// @Accept json
// @Produce json
// @Param doctorID path string true "ID del médico"
// @Param payload body doctorRequest true "Datos completos del médico"
// @Success 200 {object} doctorResponse
// @Failure 400 {string} string "invalid json / name requerido"
// @Failure 404 {string} string "doctor not found"
// @Router /doctors/{doctorID} [put]
func updateDoctorHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req doctorRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		d, err := svc.Update(r.Context(), chi.URLParam(r, "doctorID"), req.toInput())
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, toDoctorResponse(d))
	}
}

// deleteDoctorHandler godoc
// @Summary Eliminar médico
// @Description Elimina el médico. Las visitas existentes conservan la referencia.
// @Tags doctors
// @Param doctorID path string true "ID del médico"
// @Success 204
// @Failure 404 {string} string "doctor not found"
// @Router /doctors/{doctorID} [delete]
func deleteDoctorHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "doctorID")); err != nil {
			writeServiceError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (req doctorRequest) toInput() Input {
	return Input{
		Name:      req.Name,
		Specialty: req.Specialty,
		Phone:     req.Phone,
		Email:     req.Email,
		Interests: req.Interests,
	}
}

func toDoctorResponse(d Doctor) doctorResponse {
	return doctorResponse{
		ID:        d.ID,
		Name:      d.Name,
		Specialty: d.Specialty,
		Phone:     d.Phone,
		Email:     d.Email,
		Interests: d.Interests,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "doctor not found", http.StatusNotFound)
	default:
		internalError(w, r, err)
	}
}

// writeJSON está duplicado en cada módulo (igual que en el resto de handlers)
// para no crear un paquete de helpers compartido antes de tiempo.
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
