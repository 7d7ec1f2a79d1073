package handler

import (
	"encoding/json"
	"net/http"

	"tripdey/internal/review/service"
	apperrors "tripdey/pkg/errors"
	httputil "tripdey/pkg/http"
	"tripdey/pkg/logger"
	"tripdey/pkg/middleware"
	"tripdey/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type ReviewHandler struct {
	service service.ReviewService
	authmw  func(httprouter.Handle) httprouter.Handle
	log     *logger.Logger
}

func NewReviewHandler(service service.ReviewService, authmw func(httprouter.Handle) httprouter.Handle, log *logger.Logger) *ReviewHandler {
	return &ReviewHandler{
		service: service,
		authmw:  authmw,
		log:     log,
	}
}

func (h *ReviewHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/listings/reviews", h.authmw(h.Create))
	router.GET("/api/v1/listings/reviews/id/:id", h.Get)
}

func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	identity, _ := middleware.IdentityFromContext(r.Context())

	var review model.Review
	if !h.decode(w, r, &review, "Create") {
		return
	}

	created, err := h.service.Create(r.Context(), identity.UserID, &review)
	if err != nil {
		h.writeError(w, err, "Create")
		return
	}

	if err := httputil.WriteCreated(w, "Review created successfully", created); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

func (h *ReviewHandler) Get(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	review, err := h.service.Get(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, err, "Get")
		return
	}

	if err := httputil.WriteSuccess(w, "Review retrieved successfully", review); err != nil {
		h.log.Error("failed to write success response", "handler", "Get", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ReviewHandler) decode(w http.ResponseWriter, r *http.Request, target any, handlerName string) bool {
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		h.writeError(w, apperrors.InvalidInput("Invalid request body"), handlerName)
		return false
	}
	return true
}

func (h *ReviewHandler) writeError(w http.ResponseWriter, err error, handlerName string) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handlerName, "operation", "WriteError", "error", writeErr)
	}
}
