package service

import (
	"context"
	"errors"
	"fmt"

	autherrors "tripdey/internal/auth/errors"
	"tripdey/internal/auth/repository"
	"tripdey/internal/auth/validator"
	"tripdey/pkg/client"
	"tripdey/pkg/config"
	apperrors "tripdey/pkg/errors"
	"tripdey/pkg/mailer"
	"tripdey/pkg/model"
	"tripdey/pkg/otp"
	"tripdey/pkg/sanitizer"
	"tripdey/pkg/token"
	"tripdey/pkg/validation"

	"golang.org/x/crypto/bcrypt"
)

// IDTokenVerifier validates a Google ID token and returns the identity
// it asserts.
type IDTokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*client.GoogleIdentity, error)
}

// OwnedData is implemented by repositories holding user-owned documents
// so account deletion can cascade through them.
type OwnedData interface {
	RemoveForUser(ctx context.Context, userID string) error
}

type AuthService interface {
	Register(ctx context.Context, input *model.RegisterInput) (*model.AuthSession, error)
	Login(ctx context.Context, input *model.LoginInput) (*model.AuthSession, error)
	Refresh(ctx context.Context, refreshToken string) (*model.TokenPair, error)
	VerifyToken(ctx context.Context, raw string) error
	Logout(ctx context.Context, refreshToken string) error

	GetProfile(ctx context.Context, userID string) (*model.User, error)
	UpdateProfile(ctx context.Context, userID string, updates *model.UserUpdate) (*model.User, error)
	ChangePassword(ctx context.Context, userID string, input *model.ChangePasswordInput) error
	DeleteAccount(ctx context.Context, userID string) error

	SendVerificationCode(ctx context.Context, email string) error
	VerifyEmail(ctx context.Context, email, code string) error
	RequestPasswordReset(ctx context.Context, email string) error
	ConfirmPasswordReset(ctx context.Context, input *model.PasswordResetConfirmInput) error

	GoogleSignIn(ctx context.Context, idToken string) (*model.TokenPair, error)
}

type authService struct {
	users     repository.UserRepository
	tokens    repository.TokenRepository
	validator *validator.AuthValidator
	jwt       *token.Manager
	codes     *otp.Store
	mail      mailer.Mailer
	google    IDTokenVerifier
	ownedData []OwnedData
	cfg       *config.Config
}

func NewAuthService(
	users repository.UserRepository,
	tokens repository.TokenRepository,
	validator *validator.AuthValidator,
	jwt *token.Manager,
	codes *otp.Store,
	mail mailer.Mailer,
	google IDTokenVerifier,
	cfg *config.Config,
) *authService {
	return &authService{
		users:     users,
		tokens:    tokens,
		validator: validator,
		jwt:       jwt,
		codes:     codes,
		mail:      mail,
		google:    google,
		cfg:       cfg,
	}
}

// RegisterOwnedData adds a repository to the delete-account cascade.
func (s *authService) RegisterOwnedData(repos ...OwnedData) {
	s.ownedData = append(s.ownedData, repos...)
}

func (s *authService) Register(ctx context.Context, input *model.RegisterInput) (*model.AuthSession, error) {
	input.Email = sanitizer.NormalizeEmail(input.Email)
	input.FirstName = sanitizer.NormalizeName(input.FirstName)
	input.LastName = sanitizer.NormalizeName(input.LastName)

	if err := s.validator.Validate(input); err != nil {
		return nil, asValidationError(err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Internal("Failed to register user", err)
	}

	user := &model.User{
		Email:              input.Email,
		Password:           string(hashed),
		FirstName:          input.FirstName,
		LastName:           input.LastName,
		PhoneNumber:        input.PhoneNumber,
		RegistrationMethod: model.RegistrationEmailPassword,
		IsActive:           true,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, autherrors.ErrDuplicateEmail) {
			return nil, apperrors.Conflict("A user with this email already exists")
		}
		s.cfg.Log.Error("Failed to create user", "email", user.Email, "error", err)
		return nil, apperrors.Internal("Failed to register user", err)
	}

	s.cfg.Log.Info("User registered", "id", user.ID, "email", user.Email)

	// Verification mail is best effort; registration already succeeded.
	if err := s.sendCode(ctx, user.Email, mailer.EventVerificationCode,
		"Verify your email", "Your verification code is %s. It expires in %s."); err != nil {
		s.cfg.Log.Error("Failed to send verification code", "email", user.Email, "error", err)
	}

	pair, err := s.jwt.IssuePair(user.ID, user.Email)
	if err != nil {
		s.cfg.Log.Error("Failed to issue token pair", "user_id", user.ID, "error", err)
		return nil, apperrors.Internal("Failed to register user", err)
	}

	return &model.AuthSession{User: user, Access: pair.Access, Refresh: pair.Refresh}, nil
}

func (s *authService) Login(ctx context.Context, input *model.LoginInput) (*model.AuthSession, error) {
	input.Email = sanitizer.NormalizeEmail(input.Email)

	if err := s.validator.Validate(input); err != nil {
		return nil, asValidationError(err)
	}

	user, err := s.users.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, autherrors.ErrNotFound) {
			return nil, apperrors.Unauthorized("Invalid email or password")
		}
		s.cfg.Log.Error("Failed to look up user for login", "email", input.Email, "error", err)
		return nil, apperrors.Internal("Failed to log in", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		return nil, apperrors.Unauthorized("Invalid email or password")
	}

	// Deactivated accounts look like they no longer exist.
	if !user.IsActive {
		return nil, apperrors.NotFound("User account")
	}

	pair, err := s.jwt.IssuePair(user.ID, user.Email)
	if err != nil {
		s.cfg.Log.Error("Failed to issue token pair", "user_id", user.ID, "error", err)
		return nil, apperrors.Internal("Failed to log in", err)
	}

	s.cfg.Log.Info("User logged in", "user_id", user.ID)
	return &model.AuthSession{User: user, Access: pair.Access, Refresh: pair.Refresh}, nil
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*model.TokenPair, error) {
	claims, err := s.jwt.VerifyRefresh(refreshToken)
	if err != nil {
		return nil, apperrors.Unauthorized("Token is invalid or expired")
	}

	revoked, err := s.tokens.IsRevoked(ctx, claims.ID)
	if err != nil {
		s.cfg.Log.Error("Failed to check token revocation", "jti", claims.ID, "error", err)
		return nil, apperrors.Internal("Failed to refresh token", err)
	}
	if revoked {
		return nil, apperrors.Unauthorized("Token has been revoked")
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil || !user.IsActive {
		return nil, apperrors.Unauthorized("Token is invalid or expired")
	}

	// Rotation: the presented refresh token is spent.
	if err := s.tokens.Revoke(ctx, claims.ID, claims.UserID, claims.ExpiresAt.Time); err != nil {
		s.cfg.Log.Error("Failed to revoke rotated token", "jti", claims.ID, "error", err)
		return nil, apperrors.Internal("Failed to refresh token", err)
	}

	pair, err := s.jwt.IssuePair(user.ID, user.Email)
	if err != nil {
		s.cfg.Log.Error("Failed to issue token pair", "user_id", user.ID, "error", err)
		return nil, apperrors.Internal("Failed to refresh token", err)
	}

	return pair, nil
}

func (s *authService) VerifyToken(ctx context.Context, raw string) error {
	_, err := s.jwt.VerifyAccess(raw)
	if err == nil {
		return nil
	}
	if errors.Is(err, token.ErrWrongTokenUse) {
		claims, err := s.jwt.VerifyRefresh(raw)
		if err != nil {
			return apperrors.Unauthorized("Token is invalid or expired")
		}
		revoked, err := s.tokens.IsRevoked(ctx, claims.ID)
		if err != nil {
			return apperrors.Internal("Failed to verify token", err)
		}
		if revoked {
			return apperrors.Unauthorized("Token has been revoked")
		}
		return nil
	}
	return apperrors.Unauthorized("Token is invalid or expired")
}

func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	claims, err := s.jwt.VerifyRefresh(refreshToken)
	if err != nil {
		return apperrors.Unauthorized("Token is invalid or expired")
	}

	if err := s.tokens.Revoke(ctx, claims.ID, claims.UserID, claims.ExpiresAt.Time); err != nil {
		s.cfg.Log.Error("Failed to revoke token", "jti", claims.ID, "error", err)
		return apperrors.Internal("Failed to log out", err)
	}

	s.cfg.Log.Info("User logged out", "user_id", claims.UserID)
	return nil
}

func (s *authService) GetProfile(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, s.mapUserLookupError(err, userID)
	}
	return user, nil
}

func (s *authService) UpdateProfile(ctx context.Context, userID string, updates *model.UserUpdate) (*model.User, error) {
	if updates.FirstName != nil {
		name := sanitizer.NormalizeName(*updates.FirstName)
		updates.FirstName = &name
	}
	if updates.LastName != nil {
		name := sanitizer.NormalizeName(*updates.LastName)
		updates.LastName = &name
	}

	if err := s.validator.Validate(updates); err != nil {
		return nil, asValidationError(err)
	}

	if err := s.users.Update(ctx, userID, updates); err != nil {
		return nil, s.mapUserLookupError(err, userID)
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, s.mapUserLookupError(err, userID)
	}

	s.cfg.Log.Info("Profile updated", "user_id", userID)
	return user, nil
}

func (s *authService) ChangePassword(ctx context.Context, userID string, input *model.ChangePasswordInput) error {
	if err := s.validator.Validate(input); err != nil {
		return asValidationError(err)
	}

	if input.NewPassword != input.ConfirmPassword {
		return apperrors.InvalidInput("New password and confirmation do not match")
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return s.mapUserLookupError(err, userID)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.OldPassword)); err != nil {
		return apperrors.InvalidInput("Old password is incorrect")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return apperrors.Internal("Failed to change password", err)
	}

	if err := s.users.SetPassword(ctx, userID, string(hashed)); err != nil {
		return s.mapUserLookupError(err, userID)
	}

	s.cfg.Log.Info("Password changed", "user_id", userID)
	return nil
}

func (s *authService) DeleteAccount(ctx context.Context, userID string) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return s.mapUserLookupError(err, userID)
	}

	for _, repo := range s.ownedData {
		if err := repo.RemoveForUser(ctx, user.ID); err != nil {
			s.cfg.Log.Error("Failed to cascade account deletion", "user_id", user.ID, "error", err)
			return apperrors.Internal("Failed to delete account", err)
		}
	}

	if err := s.users.Delete(ctx, user.ID); err != nil {
		return s.mapUserLookupError(err, userID)
	}

	s.cfg.Log.Info("Account deleted", "user_id", user.ID)
	return nil
}

func (s *authService) SendVerificationCode(ctx context.Context, email string) error {
	email = sanitizer.NormalizeEmail(email)

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, autherrors.ErrNotFound) {
			return apperrors.NotFound("User")
		}
		return apperrors.Internal("Failed to send verification code", err)
	}

	if user.IsVerified {
		return apperrors.InvalidInput("Email is already verified")
	}

	if err := s.sendCode(ctx, email, mailer.EventVerificationCode,
		"Verify your email", "Your verification code is %s. It expires in %s."); err != nil {
		s.cfg.Log.Error("Failed to send verification code", "email", email, "error", err)
		return apperrors.Internal("Failed to send verification code", err)
	}

	return nil
}

func (s *authService) VerifyEmail(ctx context.Context, email, code string) error {
	email = sanitizer.NormalizeEmail(email)

	if err := s.codes.Verify(email, code); err != nil {
		return mapOTPError(err)
	}

	if err := s.users.SetVerified(ctx, email); err != nil {
		if errors.Is(err, autherrors.ErrNotFound) {
			return apperrors.NotFound("User")
		}
		return apperrors.Internal("Failed to verify email", err)
	}

	s.cfg.Log.Info("Email verified", "email", email)
	return nil
}

func (s *authService) RequestPasswordReset(ctx context.Context, email string) error {
	email = sanitizer.NormalizeEmail(email)

	if _, err := s.users.FindByEmail(ctx, email); err != nil {
		if errors.Is(err, autherrors.ErrNotFound) {
			return apperrors.NotFound("User")
		}
		return apperrors.Internal("Failed to request password reset", err)
	}

	if err := s.sendCode(ctx, email, mailer.EventPasswordReset,
		"Reset your password", "Your password reset code is %s. It expires in %s."); err != nil {
		s.cfg.Log.Error("Failed to send password reset code", "email", email, "error", err)
		return apperrors.Internal("Failed to request password reset", err)
	}

	return nil
}

func (s *authService) ConfirmPasswordReset(ctx context.Context, input *model.PasswordResetConfirmInput) error {
	input.Email = sanitizer.NormalizeEmail(input.Email)

	if err := s.validator.Validate(input); err != nil {
		return asValidationError(err)
	}

	if err := s.codes.Verify(input.Email, input.OTP); err != nil {
		return mapOTPError(err)
	}

	user, err := s.users.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, autherrors.ErrNotFound) {
			return apperrors.NotFound("User")
		}
		return apperrors.Internal("Failed to reset password", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return apperrors.Internal("Failed to reset password", err)
	}

	if err := s.users.SetPassword(ctx, user.ID, string(hashed)); err != nil {
		return apperrors.Internal("Failed to reset password", err)
	}

	s.cfg.Log.Info("Password reset", "user_id", user.ID)
	return nil
}

func (s *authService) GoogleSignIn(ctx context.Context, idToken string) (*model.TokenPair, error) {
	identity, err := s.google.VerifyIDToken(ctx, idToken)
	if err != nil {
		s.cfg.Log.Warn("Google token verification failed", "error", err)
		return nil, apperrors.Unauthorized("Google token is invalid or expired")
	}

	email := sanitizer.NormalizeEmail(identity.Email)

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, autherrors.ErrNotFound) {
			return nil, apperrors.Internal("Failed to sign in with Google", err)
		}

		user = &model.User{
			Email:              email,
			FirstName:          sanitizer.NormalizeName(identity.GivenName),
			LastName:           sanitizer.NormalizeName(identity.FamilyName),
			Image:              identity.Picture,
			RegistrationMethod: model.RegistrationGoogle,
			IsActive:           true,
			IsVerified:         true,
			IsSocialUser:       true,
		}

		if err := s.users.Create(ctx, user); err != nil {
			// Lost a concurrent-creation race; the account exists now.
			if errors.Is(err, autherrors.ErrDuplicateEmail) {
				user, err = s.users.FindByEmail(ctx, email)
				if err != nil {
					return nil, apperrors.Internal("Failed to sign in with Google", err)
				}
			} else {
				return nil, apperrors.Internal("Failed to sign in with Google", err)
			}
		} else {
			s.cfg.Log.Info("Social user created", "id", user.ID, "email", user.Email)
		}
	}

	if !user.IsActive {
		return nil, apperrors.NotFound("User account")
	}

	pair, err := s.jwt.IssuePair(user.ID, user.Email)
	if err != nil {
		return nil, apperrors.Internal("Failed to sign in with Google", err)
	}

	return pair, nil
}

func (s *authService) sendCode(ctx context.Context, email, eventType, subject, bodyFormat string) error {
	code, err := s.codes.Issue(email)
	if err != nil {
		return err
	}

	return s.mail.Send(ctx, eventType, mailer.Mail{
		To:      email,
		Subject: subject,
		Body:    fmt.Sprintf(bodyFormat, code, s.cfg.OTPTTL),
	})
}

func (s *authService) mapUserLookupError(err error, userID string) error {
	if errors.Is(err, autherrors.ErrNotFound) {
		return apperrors.NotFoundWithID("User", userID)
	}
	if errors.Is(err, autherrors.ErrInvalidID) {
		return apperrors.InvalidInput("Invalid user ID format")
	}
	s.cfg.Log.Error("User lookup failed", "user_id", userID, "error", err)
	return apperrors.Internal("Failed to access user account", err)
}

func asValidationError(err error) error {
	var fieldErrs validation.FieldErrors
	if errors.As(err, &fieldErrs) {
		return apperrors.Validation("Validation failed", fieldErrs.Details())
	}
	return apperrors.Validation("Validation failed", map[string]any{"error": err.Error()})
}

func mapOTPError(err error) error {
	switch {
	case errors.Is(err, otp.ErrCodeNotFound):
		return apperrors.InvalidInput("No code has been issued for this email")
	case errors.Is(err, otp.ErrCodeExpired):
		return apperrors.InvalidInput("The code has expired, request a new one")
	case errors.Is(err, otp.ErrCodeMismatch):
		return apperrors.InvalidInput("The code is incorrect")
	case errors.Is(err, otp.ErrTooManyAttempts):
		return apperrors.InvalidInput("Too many failed attempts, request a new code")
	default:
		return apperrors.Internal("Failed to verify code", err)
	}
}
