package service

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/mmynk/finanzas/internal/auth"
	"github.com/mmynk/finanzas/internal/metrics"
	"github.com/mmynk/finanzas/internal/respond"
)

// AuthService serves /registro and /login.
type AuthService struct {
	authenticator auth.Authenticator
	jwtManager    *auth.JWTManager
	metrics       *metrics.Metrics
	logger        *slog.Logger
}

// NewAuthService creates a new authentication service. m may be nil.
func NewAuthService(authenticator auth.Authenticator, jwtManager *auth.JWTManager, m *metrics.Metrics, logger *slog.Logger) *AuthService {
	return &AuthService{
		authenticator: authenticator,
		jwtManager:    jwtManager,
		metrics:       m,
		logger:        logger,
	}
}

type registerResponse struct {
	Mensaje string `json:"mensaje"`
	ID      string `json:"id"`
}

type loginResponse struct {
	Mensaje string `json:"mensaje"`
	Token   string `json:"token"`
}

// credentials reads {email, password}. Both must be non-empty strings.
func credentials(w http.ResponseWriter, r *http.Request) (string, string, error) {
	body, err := decodeObject(w, r)
	if err != nil {
		return "", "", err
	}

	rawEmail, rawPassword := body["email"], body["password"]
	if isBlank(rawEmail) || isBlank(rawPassword) {
		return "", "", &ValidationError{Message: MsgCredentialsMissing}
	}
	email, ok1 := rawEmail.(string)
	password, ok2 := rawPassword.(string)
	if !ok1 || !ok2 {
		return "", "", &ValidationError{Message: MsgCredentialsType}
	}
	return email, password, nil
}

func isBlank(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && s == ""
}

// Register creates a new user account.
func (s *AuthService) Register(w http.ResponseWriter, r *http.Request) {
	email, password, err := credentials(w, r)
	if err != nil {
		writeError(w, s.logger, MsgRegisterFailed, err)
		return
	}
	s.logger.Info("Register request", "email", email)

	user, err := s.authenticator.Register(r.Context(), email, password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrEmailExists):
			s.logger.Warn("Registration rejected", "email", email, "error", err)
			respond.Error(w, http.StatusBadRequest, MsgEmailExists)
		case errors.Is(err, auth.ErrPasswordTooLong):
			respond.Error(w, http.StatusBadRequest, MsgPasswordTooLong)
		case errors.Is(err, auth.ErrEmptyPassword):
			respond.Error(w, http.StatusBadRequest, MsgCredentialsMissing)
		default:
			s.logger.Error("Registration failed", "email", email, "error", err)
			respond.Error(w, http.StatusInternalServerError, MsgRegisterFailed)
		}
		return
	}

	s.logger.Info("User registered successfully", "user_id", user.ID, "email", user.Email)
	respond.JSON(w, http.StatusOK, registerResponse{Mensaje: MsgRegistered, ID: user.ID})
}

// Login authenticates a user and returns a session token.
func (s *AuthService) Login(w http.ResponseWriter, r *http.Request) {
	email, password, err := credentials(w, r)
	if err != nil {
		writeError(w, s.logger, MsgLoginFailed, err)
		return
	}
	s.logger.Info("Login request", "email", email)

	user, err := s.authenticator.Authenticate(r.Context(), email, password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrUserNotFound):
			s.metrics.AuthFailure("user_not_found")
			s.logger.Warn("Login failed", "email", email, "error", err)
			respond.Error(w, http.StatusUnauthorized, MsgUserNotFound)
		case errors.Is(err, auth.ErrInvalidCredentials):
			s.metrics.AuthFailure("invalid_credentials")
			s.logger.Warn("Login failed", "email", email, "error", err)
			respond.Error(w, http.StatusUnauthorized, MsgWrongPassword)
		default:
			s.logger.Error("Login failed", "email", email, "error", err)
			respond.Error(w, http.StatusInternalServerError, MsgLoginFailed)
		}
		return
	}

	token, err := s.jwtManager.Issue(user.Email)
	if err != nil {
		s.logger.Error("Failed to generate token", "user_id", user.ID, "error", err)
		respond.Error(w, http.StatusInternalServerError, MsgLoginFailed)
		return
	}

	s.logger.Info("User logged in successfully", "user_id", user.ID, "email", user.Email)
	respond.JSON(w, http.StatusOK, loginResponse{Mensaje: MsgLoggedIn, Token: token})
}
