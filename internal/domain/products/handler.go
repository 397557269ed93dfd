package products

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"medistock/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, canRead, canWrite func(http.Handler) http.Handler) {
	r.Route("/products", func(pr chi.Router) {
		pr.With(canRead).Get("/", listProductsHandler(svc))
		pr.With(canWrite).Post("/", createProductHandler(svc))

		pr.With(canRead).Get("/{productID}", getProductHandler(svc))
		pr.With(canWrite).Put("/{productID}", updateProductHandler(svc))
		pr.With(canWrite).Delete("/{productID}", deleteProductHandler(svc))
	})
}

type productRequest struct {
	Name             string `json:"name"`
	Description      string `json:"description"`
	UniqueIdentifier string `json:"unique_identifier"`
}

type productResponse struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Description      string    `json:"description"`
	UniqueIdentifier string    `json:"unique_identifier"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// listProductsHandler godoc
// @Summary Listar productos
// @Tags products
// @Produce json
// @Success 200 {array} productResponse
// @Router /products [get]
func listProductsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			internalError(w, r, err)
			return
		}

		out := make([]productResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toProductResponse(p))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// createProductHandler godoc
// @Summary Crear producto
// @Description Crea el producto y lo agrega con cantidad 0 al stock de todos los ciclos existentes.
// @Tags products
// @Accept json
// @Produce json
// @Param payload body productRequest true "Datos del producto; name es obligatorio"
// @Success 201 {object} productResponse
// @Failure 400 {string} string "invalid json / name requerido"
// @Failure 409 {string} string "unique identifier already in use"
// @Router /products [post]
func createProductHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req productRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		p, err := svc.Create(r.Context(), req.toInput())
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, toProductResponse(p))
	}
}

// getProductHandler godoc
// @Summary Obtener producto
// @Tags products
// @Produce json
// @Param productID path string true "ID del producto"
// @Success 200 {object} productResponse
// @Failure 404 {string} string "product not found"
// @Router /products/{productID} [get]
func getProductHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.GetByID(r.Context(), chi.URLParam(r, "productID"))
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, toProductResponse(p))
	}
}

// updateProductHandler godoc
// @Summary Reemplazar producto
// @Tags products
// @Accept json
// @Produce json
// @Param productID path string true "ID del producto"
// @Param payload body productRequest true "Datos completos del producto"
// @Success 200 {object} productResponse
// @Failure 404 {string} string "product not found"
// @Router /products/{productID} [put]
func updateProductHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req productRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		p, err := svc.Update(r.Context(), chi.URLParam(r, "productID"), req.toInput())
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, toProductResponse(p))
	}
}

// deleteProductHandler godoc
// @Summary Eliminar producto
// @Description Quita el producto del catálogo y del stock de todos los ciclos. Las visitas conservan la referencia.
// @Tags products
// @Param productID path string true "ID del producto"
// @Success 204
// @Failure 404 {string} string "product not found"
// @Router /products/{productID} [delete]
func deleteProductHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "productID")); err != nil {
			writeServiceError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (req productRequest) toInput() Input {
	return Input{
		Name:             req.Name,
		Description:      req.Description,
		UniqueIdentifier: req.UniqueIdentifier,
	}
}

func toProductResponse(p Product) productResponse {
	return productResponse{
		ID:               p.ID,
		Name:             p.Name,
		Description:      p.Description,
		UniqueIdentifier: p.UniqueIdentifier,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "product not found", http.StatusNotFound)
	case errors.Is(err, ErrDuplicateIdentifier):
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
