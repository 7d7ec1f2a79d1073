package handler

import (
	"encoding/json"
	"net/http"

	"tripdey/internal/auth/service"
	apperrors "tripdey/pkg/errors"
	httputil "tripdey/pkg/http"
	"tripdey/pkg/logger"
	"tripdey/pkg/middleware"
	"tripdey/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type AuthHandler struct {
	service service.AuthService
	authmw  func(httprouter.Handle) httprouter.Handle
	log     *logger.Logger
}

func NewAuthHandler(service service.AuthService, authmw func(httprouter.Handle) httprouter.Handle, log *logger.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		authmw:  authmw,
		log:     log,
	}
}

func (h *AuthHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/authorization/register", h.Register)
	router.POST("/api/v1/authorization/login", h.Login)
	router.POST("/api/v1/authorization/token/refresh", h.Refresh)
	router.POST("/api/v1/authorization/token/verify", h.VerifyToken)
	router.POST("/api/v1/authorization/logout", h.Logout)

	router.GET("/api/v1/authorization/user_profile", h.authmw(h.GetProfile))
	router.PATCH("/api/v1/authorization/user_profile", h.authmw(h.UpdateProfile))
	router.PUT("/api/v1/authorization/changepassword", h.authmw(h.ChangePassword))
	router.DELETE("/api/v1/authorization/delete_user", h.authmw(h.DeleteAccount))

	router.POST("/api/v1/authorization/email/verify", h.SendVerificationCode)
	router.PUT("/api/v1/authorization/email/verify", h.VerifyEmail)
	router.POST("/api/v1/authorization/password_reset", h.RequestPasswordReset)
	router.PUT("/api/v1/authorization/password_reset", h.ConfirmPasswordReset)

	router.POST("/api/v1/authorization/social/google", h.GoogleSignIn)
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input model.RegisterInput
	if !h.decode(w, r, &input, "Register") {
		return
	}

	session, err := h.service.Register(r.Context(), &input)
	if err != nil {
		h.writeError(w, err, "Register")
		return
	}

	if err := httputil.WriteCreated(w, "User registered successfully", session); err != nil {
		h.log.Error("failed to write created response", "handler", "Register", "operation", "WriteCreated", "error", err)
	}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input model.LoginInput
	if !h.decode(w, r, &input, "Login") {
		return
	}

	session, err := h.service.Login(r.Context(), &input)
	if err != nil {
		h.writeError(w, err, "Login")
		return
	}

	if err := httputil.WriteSuccess(w, "Login successful", session); err != nil {
		h.log.Error("failed to write success response", "handler", "Login", "operation", "WriteSuccess", "error", err)
	}
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input model.RefreshInput
	if !h.decode(w, r, &input, "Refresh") {
		return
	}

	pair, err := h.service.Refresh(r.Context(), input.Refresh)
	if err != nil {
		h.writeError(w, err, "Refresh")
		return
	}

	if err := httputil.WriteSuccess(w, "Token refreshed successfully", pair); err != nil {
		h.log.Error("failed to write success response", "handler", "Refresh", "operation", "WriteSuccess", "error", err)
	}
}

func (h *AuthHandler) VerifyToken(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input model.VerifyTokenInput
	if !h.decode(w, r, &input, "VerifyToken") {
		return
	}

	if err := h.service.VerifyToken(r.Context(), input.Token); err != nil {
		h.writeError(w, err, "VerifyToken")
		return
	}

	if err := httputil.WriteSuccess(w, "Token is valid", nil); err != nil {
		h.log.Error("failed to write success response", "handler", "VerifyToken", "operation", "WriteSuccess", "error", err)
	}
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input model.RefreshInput
	if !h.decode(w, r, &input, "Logout") {
		return
	}

	if err := h.service.Logout(r.Context(), input.Refresh); err != nil {
		h.writeError(w, err, "Logout")
		return
	}

	if err := httputil.WriteSuccess(w, "Logged out successfully", nil); err != nil {
		h.log.Error("failed to write success response", "handler", "Logout", "operation", "WriteSuccess", "error", err)
	}
}

func (h *AuthHandler) GetProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	identity, _ := middleware.IdentityFromContext(r.Context())

	user, err := h.service.GetProfile(r.Context(), identity.UserID)
	if err != nil {
		h.writeError(w, err, "GetProfile")
		return
	}

	if err := httputil.WriteSuccess(w, "Profile retrieved successfully", user); err != nil {
		h.log.Error("failed to write success response", "handler", "GetProfile", "operation", "WriteSuccess", "error", err)
	}
}

func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	identity, _ := middleware.IdentityFromContext(r.Context())

	var updates model.UserUpdate
	if !h.decode(w, r, &updates, "UpdateProfile") {
		return
	}

	user, err := h.service.UpdateProfile(r.Context(), identity.UserID, &updates)
	if err != nil {
		h.writeError(w, err, "UpdateProfile")
		return
	}

	if err := httputil.WriteSuccess(w, "Profile updated successfully", user); err != nil {
		h.log.Error("failed to write success response", "handler", "UpdateProfile", "operation", "WriteSuccess", "error", err)
	}
}

func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	identity, _ := middleware.IdentityFromContext(r.Context())

	var input model.ChangePasswordInput
	if !h.decode(w, r, &input, "ChangePassword") {
		return
	}

	if err := h.service.ChangePassword(r.Context(), identity.UserID, &input); err != nil {
		h.writeError(w, err, "ChangePassword")
		return
	}

	if err := httputil.WriteSuccess(w, "Password changed successfully", nil); err != nil {
		h.log.Error("failed to write success response", "handler", "ChangePassword", "operation", "WriteSuccess", "error", err)
	}
}

func (h *AuthHandler) DeleteAccount(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	identity, _ := middleware.IdentityFromContext(r.Context())

	if err := h.service.DeleteAccount(r.Context(), identity.UserID); err != nil {
		h.writeError(w, err, "DeleteAccount")
		return
	}

	if err := httputil.WriteSuccess(w, "Account deleted successfully", nil); err != nil {
		h.log.Error("failed to write success response", "handler", "DeleteAccount", "operation", "WriteSuccess", "error", err)
	}
}

func (h *AuthHandler) SendVerificationCode(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input model.SendOTPInput
	if !h.decode(w, r, &input, "SendVerificationCode") {
		return
	}

	if err := h.service.SendVerificationCode(r.Context(), input.Email); err != nil {
		h.writeError(w, err, "SendVerificationCode")
		return
	}

	if err := httputil.WriteSuccess(w, "Verification code sent", nil); err != nil {
		h.log.Error("failed to write success response", "handler", "SendVerificationCode", "operation", "WriteSuccess", "error", err)
	}
}

func (h *AuthHandler) VerifyEmail(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input model.VerifyOTPInput
	if !h.decode(w, r, &input, "VerifyEmail") {
		return
	}

	if err := h.service.VerifyEmail(r.Context(), input.Email, input.OTP); err != nil {
		h.writeError(w, err, "VerifyEmail")
		return
	}

	if err := httputil.WriteSuccess(w, "Email verified successfully", nil); err != nil {
		h.log.Error("failed to write success response", "handler", "VerifyEmail", "operation", "WriteSuccess", "error", err)
	}
}

func (h *AuthHandler) RequestPasswordReset(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input model.SendOTPInput
	if !h.decode(w, r, &input, "RequestPasswordReset") {
		return
	}

	if err := h.service.RequestPasswordReset(r.Context(), input.Email); err != nil {
		h.writeError(w, err, "RequestPasswordReset")
		return
	}

	if err := httputil.WriteSuccess(w, "Password reset code sent", nil); err != nil {
		h.log.Error("failed to write success response", "handler", "RequestPasswordReset", "operation", "WriteSuccess", "error", err)
	}
}

func (h *AuthHandler) ConfirmPasswordReset(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input model.PasswordResetConfirmInput
	if !h.decode(w, r, &input, "ConfirmPasswordReset") {
		return
	}

	if err := h.service.ConfirmPasswordReset(r.Context(), &input); err != nil {
		h.writeError(w, err, "ConfirmPasswordReset")
		return
	}

	if err := httputil.WriteSuccess(w, "Password reset successfully", nil); err != nil {
		h.log.Error("failed to write success response", "handler", "ConfirmPasswordReset", "operation", "WriteSuccess", "error", err)
	}
}

func (h *AuthHandler) GoogleSignIn(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input model.GoogleSignInInput
	if !h.decode(w, r, &input, "GoogleSignIn") {
		return
	}

	pair, err := h.service.GoogleSignIn(r.Context(), input.IDToken)
	if err != nil {
		h.writeError(w, err, "GoogleSignIn")
		return
	}

	if err := httputil.WriteSuccess(w, "Login successful", pair); err != nil {
		h.log.Error("failed to write success response", "handler", "GoogleSignIn", "operation", "WriteSuccess", "error", err)
	}
}

func (h *AuthHandler) decode(w http.ResponseWriter, r *http.Request, target any, handlerName string) bool {
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		h.writeError(w, apperrors.InvalidInput("Invalid request body"), handlerName)
		return false
	}
	return true
}

func (h *AuthHandler) writeError(w http.ResponseWriter, err error, handlerName string) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handlerName, "operation", "WriteError", "error", writeErr)
	}
}
