package handler

import (
	"encoding/json"
	"net/http"

	"tripdey/internal/booking/service"
	apperrors "tripdey/pkg/errors"
	httputil "tripdey/pkg/http"
	"tripdey/pkg/logger"
	"tripdey/pkg/middleware"
	"tripdey/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type BookingHandler struct {
	service service.BookingService
	authmw  func(httprouter.Handle) httprouter.Handle
	log     *logger.Logger
}

func NewBookingHandler(service service.BookingService, authmw func(httprouter.Handle) httprouter.Handle, log *logger.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		authmw:  authmw,
		log:     log,
	}
}

func (h *BookingHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/bookings", h.authmw(h.Create))
	router.GET("/api/v1/bookings", h.authmw(h.ListMine))
	router.GET("/api/v1/bookings/id/:id", h.authmw(h.Get))
	router.PUT("/api/v1/bookings/id/:id", h.authmw(h.Update))
	router.DELETE("/api/v1/bookings/id/:id", h.authmw(h.Delete))
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	identity, _ := middleware.IdentityFromContext(r.Context())

	var booking model.Booking
	if !h.decode(w, r, &booking, "Create") {
		return
	}

	created, err := h.service.Create(r.Context(), identity.UserID, &booking)
	if err != nil {
		h.writeError(w, err, "Create")
		return
	}

	if err := httputil.WriteCreated(w, "Booking created successfully", created); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

func (h *BookingHandler) Get(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	booking, err := h.service.Get(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, err, "Get")
		return
	}

	if err := httputil.WriteSuccess(w, "Booking retrieved successfully", booking); err != nil {
		h.log.Error("failed to write success response", "handler", "Get", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) ListMine(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	identity, _ := middleware.IdentityFromContext(r.Context())

	bookings, err := h.service.ListMine(r.Context(), identity.UserID)
	if err != nil {
		h.writeError(w, err, "ListMine")
		return
	}

	if err := httputil.WriteSuccess(w, "Bookings retrieved successfully", bookings); err != nil {
		h.log.Error("failed to write success response", "handler", "ListMine", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	identity, _ := middleware.IdentityFromContext(r.Context())

	var update model.BookingUpdate
	if !h.decode(w, r, &update, "Update") {
		return
	}

	updated, err := h.service.Update(r.Context(), ps.ByName("id"), identity.UserID, &update)
	if err != nil {
		h.writeError(w, err, "Update")
		return
	}

	if err := httputil.WriteSuccess(w, "Booking updated successfully", updated); err != nil {
		h.log.Error("failed to write success response", "handler", "Update", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	identity, _ := middleware.IdentityFromContext(r.Context())

	if err := h.service.Delete(r.Context(), ps.ByName("id"), identity.UserID); err != nil {
		h.writeError(w, err, "Delete")
		return
	}

	if err := httputil.WriteSuccess(w, "Booking deleted successfully", nil); err != nil {
		h.log.Error("failed to write success response", "handler", "Delete", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) decode(w http.ResponseWriter, r *http.Request, target any, handlerName string) bool {
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		h.writeError(w, apperrors.InvalidInput("Invalid request body"), handlerName)
		return false
	}
	return true
}

func (h *BookingHandler) writeError(w http.ResponseWriter, err error, handlerName string) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handlerName, "operation", "WriteError", "error", writeErr)
	}
}
