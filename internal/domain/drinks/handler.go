package drinks

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"coffee-shop/internal/middleware"
	"coffee-shop/internal/platform/logger"
	"coffee-shop/internal/platform/respond"
	"coffee-shop/internal/ports/auth"
)

func RegisterRoutes(r chi.Router, svc *Service, gate *middleware.AuthGate, log logger.Logger) {
	if log == nil {
		log = logger.Nop()
	}

	// Público: vista corta
	r.Get("/drinks", listDrinksHandler(svc, log))

	r.Get("/drinks-detail", gate.Require(PermGetDetail, listDrinksDetailHandler(svc, log)))
	r.Post("/drinks", gate.Require(PermPost, createDrinkHandler(svc, log)))
	r.Patch("/drinks/{id}", gate.Require(PermPatch, updateDrinkHandler(svc, log)))
	r.Delete("/drinks/{id}", gate.Require(PermDelete, deleteDrinkHandler(svc, log)))
}

type drinkRequest struct {
	Title  *string `json:"title"`
	Recipe *Recipe `json:"recipe" swaggertype:"array,object"`
}

type shortListResponse struct {
	Success bool         `json:"success"`
	Drinks  []ShortDrink `json:"drinks"`
}

type longListResponse struct {
	Success bool        `json:"success"`
	Drinks  []LongDrink `json:"drinks"`
}

type deleteResponse struct {
	Success bool  `json:"success"`
	Delete  int64 `json:"delete"`
}

// listDrinksHandler godoc
// @Summary Listar bebidas (vista corta)
// @Description Menú público; la receta sólo expone color y partes.
// @Tags drinks
// @Produce json
// @Success 200 {object} shortListResponse
// @Failure 422 {object} respond.ErrorBody
// @Router /drinks [get]
func listDrinksHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			writeError(w, r, log, err)
			return
		}

		out := make([]ShortDrink, 0, len(items))
		for _, d := range items {
			out = append(out, d.Short())
		}
		respond.JSON(w, http.StatusOK, shortListResponse{Success: true, Drinks: out})
	}
}

// listDrinksDetailHandler godoc
// @Summary Listar bebidas (vista larga)
// @Description Receta completa. Requiere permiso `get:drinks-detail`.
// @Tags drinks
// @Produce json
// @Security BearerAuth
// @Success 200 {object} longListResponse
// @Failure 400 {object} respond.ErrorBody
// @Failure 401 {object} respond.ErrorBody
// @Failure 403 {object} respond.ErrorBody
// @Failure 422 {object} respond.ErrorBody
// @Router /drinks-detail [get]
func listDrinksDetailHandler(svc *Service, log logger.Logger) middleware.ClaimsHandlerFunc {
	return func(w http.ResponseWriter, r *http.Request, _ auth.Claims) {
		items, err := svc.List(r.Context())
		if err != nil {
			writeError(w, r, log, err)
			return
		}

		out := make([]LongDrink, 0, len(items))
		for _, d := range items {
			out = append(out, d.Long())
		}
		respond.JSON(w, http.StatusOK, longListResponse{Success: true, Drinks: out})
	}
}

// createDrinkHandler godoc
// @Summary Crear bebida
// @Description title y recipe son obligatorios; recipe puede ser un objeto o un array. Requiere `post:drinks`.
// @Tags drinks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body drinkRequest true "Bebida"
// @Success 200 {object} longListResponse
// @Failure 400 {object} respond.ErrorBody
// @Failure 401 {object} respond.ErrorBody
// @Failure 403 {object} respond.ErrorBody
// @Failure 422 {object} respond.ErrorBody "title duplicado / falla de persistencia"
// @Router /drinks [post]
func createDrinkHandler(svc *Service, log logger.Logger) middleware.ClaimsHandlerFunc {
	return func(w http.ResponseWriter, r *http.Request, claims auth.Claims) {
		var req drinkRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respond.BadRequest(w)
			return
		}
		if req.Title == nil || req.Recipe == nil {
			respond.BadRequest(w)
			return
		}

		d, err := svc.Create(r.Context(), CreateInput{Title: *req.Title, Recipe: *req.Recipe})
		if err != nil {
			writeError(w, r, log, err)
			return
		}

		log.Info("drink created", map[string]any{
			"request_id": chimw.GetReqID(r.Context()),
			"drink_id":   d.ID,
			"sub":        claims.Subject,
		})
		respond.JSON(w, http.StatusOK, longListResponse{Success: true, Drinks: []LongDrink{d.Long()}})
	}
}

// updateDrinkHandler godoc
// @Summary Editar bebida
// @Description Sólo aplica los campos enviados. Requiere `patch:drinks`.
// @Tags drinks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID de la bebida"
// @Param payload body drinkRequest true "Campos a modificar"
// @Success 200 {object} longListResponse
// @Failure 400 {object} respond.ErrorBody
// @Failure 401 {object} respond.ErrorBody
// @Failure 403 {object} respond.ErrorBody
// @Failure 404 {object} respond.ErrorBody
// @Failure 422 {object} respond.ErrorBody
// @Router /drinks/{id} [patch]
func updateDrinkHandler(svc *Service, log logger.Logger) middleware.ClaimsHandlerFunc {
	return func(w http.ResponseWriter, r *http.Request, claims auth.Claims) {
		id, ok := drinkID(r)
		if !ok {
			respond.NotFound(w)
			return
		}
		// 404 antes que 400: el body no importa si la bebida no existe.
		if _, err := svc.Get(r.Context(), id); err != nil {
			writeError(w, r, log, err)
			return
		}

		var req drinkRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respond.BadRequest(w)
			return
		}

		d, err := svc.Update(r.Context(), id, UpdateInput{Title: req.Title, Recipe: req.Recipe})
		if err != nil {
			writeError(w, r, log, err)
			return
		}

		log.Info("drink updated", map[string]any{
			"request_id": chimw.GetReqID(r.Context()),
			"drink_id":   d.ID,
			"sub":        claims.Subject,
		})
		respond.JSON(w, http.StatusOK, longListResponse{Success: true, Drinks: []LongDrink{d.Long()}})
	}
}

// deleteDrinkHandler godoc
// @Summary Borrar bebida
// @Description Requiere `delete:drinks`.
// @Tags drinks
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID de la bebida"
// @Success 200 {object} deleteResponse
// @Failure 401 {object} respond.ErrorBody
// @Failure 403 {object} respond.ErrorBody
// @Failure 404 {object} respond.ErrorBody
// @Failure 422 {object} respond.ErrorBody
// @Router /drinks/{id} [delete]
func deleteDrinkHandler(svc *Service, log logger.Logger) middleware.ClaimsHandlerFunc {
	return func(w http.ResponseWriter, r *http.Request, claims auth.Claims) {
		id, ok := drinkID(r)
		if !ok {
			respond.NotFound(w)
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			writeError(w, r, log, err)
			return
		}

		log.Info("drink deleted", map[string]any{
			"request_id": chimw.GetReqID(r.Context()),
			"drink_id":   id,
			"sub":        claims.Subject,
		})
		respond.JSON(w, http.StatusOK, deleteResponse{Success: true, Delete: id})
	}
}

// drinkID: un id no numérico no puede existir, así que es 404.
func drinkID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func writeError(w http.ResponseWriter, r *http.Request, log logger.Logger, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		respond.BadRequest(w)
	case errors.Is(err, ErrNotFound):
		respond.NotFound(w)
	default:
		log.Error("drinks: unprocessable", map[string]any{
			"request_id": chimw.GetReqID(r.Context()),
			"method":     r.Method,
			"path":       r.URL.Path,
			"err":        err,
		})
		respond.Unprocessable(w)
	}
}
