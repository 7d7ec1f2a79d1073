package handler

import (
	"encoding/json"
	"net/http"

	"tripdey/internal/subscription/service"
	apperrors "tripdey/pkg/errors"
	httputil "tripdey/pkg/http"
	"tripdey/pkg/logger"
	"tripdey/pkg/middleware"

	"github.com/julienschmidt/httprouter"
)

type SubscriptionHandler struct {
	service service.SubscriptionService
	authmw  func(httprouter.Handle) httprouter.Handle
	log     *logger.Logger
}

func NewSubscriptionHandler(service service.SubscriptionService, authmw func(httprouter.Handle) httprouter.Handle, log *logger.Logger) *SubscriptionHandler {
	return &SubscriptionHandler{
		service: service,
		authmw:  authmw,
		log:     log,
	}
}

func (h *SubscriptionHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/authorization/memberships", h.ListMemberships)
	router.POST("/api/v1/authorization/subscriptions", h.authmw(h.Subscribe))
	router.GET("/api/v1/authorization/subscriptions", h.authmw(h.GetMine))
}

type subscribeInput struct {
	MembershipID string `json:"membership_id"`
}

func (h *SubscriptionHandler) Subscribe(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	identity, _ := middleware.IdentityFromContext(r.Context())

	var input subscribeInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.writeError(w, apperrors.InvalidInput("Invalid request body"), "Subscribe")
		return
	}

	subscription, err := h.service.Subscribe(r.Context(), identity.UserID, input.MembershipID)
	if err != nil {
		h.writeError(w, err, "Subscribe")
		return
	}

	if err := httputil.WriteCreated(w, "Subscription created successfully", subscription); err != nil {
		h.log.Error("failed to write created response", "handler", "Subscribe", "operation", "WriteCreated", "error", err)
	}
}

func (h *SubscriptionHandler) GetMine(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	identity, _ := middleware.IdentityFromContext(r.Context())

	subscription, err := h.service.GetMine(r.Context(), identity.UserID)
	if err != nil {
		h.writeError(w, err, "GetMine")
		return
	}

	if err := httputil.WriteSuccess(w, "Subscription retrieved successfully", subscription); err != nil {
		h.log.Error("failed to write success response", "handler", "GetMine", "operation", "WriteSuccess", "error", err)
	}
}

func (h *SubscriptionHandler) ListMemberships(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	memberships, err := h.service.ListMemberships(r.Context())
	if err != nil {
		h.writeError(w, err, "ListMemberships")
		return
	}

	if err := httputil.WriteSuccess(w, "Memberships retrieved successfully", memberships); err != nil {
		h.log.Error("failed to write success response", "handler", "ListMemberships", "operation", "WriteSuccess", "error", err)
	}
}

func (h *SubscriptionHandler) writeError(w http.ResponseWriter, err error, handlerName string) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handlerName, "operation", "WriteError", "error", writeErr)
	}
}
