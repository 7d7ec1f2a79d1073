package handler

import (
	"encoding/json"
	"net/http"

	"tripdey/internal/business/service"
	apperrors "tripdey/pkg/errors"
	httputil "tripdey/pkg/http"
	"tripdey/pkg/logger"
	"tripdey/pkg/middleware"
	"tripdey/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type BusinessHandler struct {
	service service.BusinessService
	authmw  func(httprouter.Handle) httprouter.Handle
	log     *logger.Logger
}

func NewBusinessHandler(service service.BusinessService, authmw func(httprouter.Handle) httprouter.Handle, log *logger.Logger) *BusinessHandler {
	return &BusinessHandler{
		service: service,
		authmw:  authmw,
		log:     log,
	}
}

func (h *BusinessHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/authorization/user-business", h.authmw(h.Create))
	router.GET("/api/v1/authorization/user-business", h.authmw(h.ListMine))
	router.PUT("/api/v1/authorization/user-business/id/:id", h.authmw(h.Update))
	router.DELETE("/api/v1/authorization/user-business/id/:id", h.authmw(h.Delete))

	router.GET("/api/v1/authorization/business-category", h.ListCategories)
	router.POST("/api/v1/authorization/business-category", h.authmw(h.CreateCategories))
	router.PUT("/api/v1/authorization/business-category/id/:id", h.authmw(h.UpdateCategory))
	router.DELETE("/api/v1/authorization/business-category/id/:id", h.authmw(h.DeleteCategory))
}

func (h *BusinessHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	identity, _ := middleware.IdentityFromContext(r.Context())

	var business model.UserBusiness
	if !h.decode(w, r, &business, "Create") {
		return
	}

	created, err := h.service.Create(r.Context(), identity.UserID, &business)
	if err != nil {
		h.writeError(w, err, "Create")
		return
	}

	if err := httputil.WriteCreated(w, "Business created successfully", created); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

func (h *BusinessHandler) ListMine(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	identity, _ := middleware.IdentityFromContext(r.Context())

	businesses, err := h.service.ListMine(r.Context(), identity.UserID)
	if err != nil {
		h.writeError(w, err, "ListMine")
		return
	}

	if err := httputil.WriteSuccess(w, "Businesses retrieved successfully", businesses); err != nil {
		h.log.Error("failed to write success response", "handler", "ListMine", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BusinessHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	identity, _ := middleware.IdentityFromContext(r.Context())
	id := ps.ByName("id")

	var business model.UserBusiness
	if !h.decode(w, r, &business, "Update") {
		return
	}

	updated, err := h.service.Update(r.Context(), id, identity.UserID, &business)
	if err != nil {
		h.writeError(w, err, "Update")
		return
	}

	if err := httputil.WriteSuccess(w, "Business updated successfully", updated); err != nil {
		h.log.Error("failed to write success response", "handler", "Update", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BusinessHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	identity, _ := middleware.IdentityFromContext(r.Context())
	id := ps.ByName("id")

	if err := h.service.Delete(r.Context(), id, identity.UserID); err != nil {
		h.writeError(w, err, "Delete")
		return
	}

	if err := httputil.WriteSuccess(w, "Business deleted successfully", nil); err != nil {
		h.log.Error("failed to write success response", "handler", "Delete", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BusinessHandler) ListCategories(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	categories, err := h.service.ListCategories(r.Context())
	if err != nil {
		h.writeError(w, err, "ListCategories")
		return
	}

	if err := httputil.WriteSuccess(w, "Categories retrieved successfully", categories); err != nil {
		h.log.Error("failed to write success response", "handler", "ListCategories", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BusinessHandler) CreateCategories(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var categories []*model.BusinessCategory
	if !h.decode(w, r, &categories, "CreateCategories") {
		return
	}

	created, err := h.service.CreateCategories(r.Context(), categories)
	if err != nil {
		h.writeError(w, err, "CreateCategories")
		return
	}

	if err := httputil.WriteCreated(w, "Categories created successfully", created); err != nil {
		h.log.Error("failed to write created response", "handler", "CreateCategories", "operation", "WriteCreated", "error", err)
	}
}

func (h *BusinessHandler) UpdateCategory(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	var category model.BusinessCategory
	if !h.decode(w, r, &category, "UpdateCategory") {
		return
	}

	updated, err := h.service.UpdateCategory(r.Context(), id, &category)
	if err != nil {
		h.writeError(w, err, "UpdateCategory")
		return
	}

	if err := httputil.WriteSuccess(w, "Category updated successfully", updated); err != nil {
		h.log.Error("failed to write success response", "handler", "UpdateCategory", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BusinessHandler) DeleteCategory(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	if err := h.service.DeleteCategory(r.Context(), id); err != nil {
		h.writeError(w, err, "DeleteCategory")
		return
	}

	if err := httputil.WriteSuccess(w, "Category deleted successfully", nil); err != nil {
		h.log.Error("failed to write success response", "handler", "DeleteCategory", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BusinessHandler) decode(w http.ResponseWriter, r *http.Request, target any, handlerName string) bool {
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		h.writeError(w, apperrors.InvalidInput("Invalid request body"), handlerName)
		return false
	}
	return true
}

func (h *BusinessHandler) writeError(w http.ResponseWriter, err error, handlerName string) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handlerName, "operation", "WriteError", "error", writeErr)
	}
}
