package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/chirper-app/backend/internal/apperrors"
	"github.com/chirper-app/backend/internal/models"
	"github.com/chirper-app/backend/internal/repositories"
	"github.com/chirper-app/backend/internal/services"
	"github.com/chirper-app/backend/pkg/config"
	"github.com/chirper-app/backend/pkg/mailer"
)

// AuthHandler handles registration, login and account lifecycle
type AuthHandler struct {
	userRepository repositories.UserRepository
	resetTokens    repositories.ResetTokenRepository
	notifier       *services.Notifier
	mail           mailer.Mailer
	cfg            *config.Config
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(
	userRepo repositories.UserRepository,
	resetTokenRepo repositories.ResetTokenRepository,
	notifier *services.Notifier,
	mail mailer.Mailer,
	cfg *config.Config,
) *AuthHandler {
	return &AuthHandler{
		userRepository: userRepo,
		resetTokens:    resetTokenRepo,
		notifier:       notifier,
		mail:           mail,
		cfg:            cfg,
	}
}

// RegisterAuthRoutes registers the unauthenticated auth routes
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group) {
	g.POST("/register", h.Register)
	g.POST("/login", h.Login)
	g.POST("/send-reset-password-email", h.SendResetPasswordEmail)
	g.POST("/reset-password/:token", h.ResetPassword)
	g.POST("/activate", h.Activate)
}

// RegisterAccountRoutes registers the authenticated account routes
func (h *AuthHandler) RegisterAccountRoutes(g *echo.Group) {
	g.POST("/change-password", h.ChangePassword)
	g.POST("/deactivate", h.Deactivate)
}

// Register creates a user with its profile and fires the welcome
// notification.
func (h *AuthHandler) Register(c echo.Context) error {
	var req models.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.Validation("invalid_request", "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if req.Password != req.Password2 {
		return apperrors.Validation("password_mismatch", "Passwords don't match")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: string(hashed),
	}
	if err := h.userRepository.CreateUser(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.AlreadyExists("already_registered", "Username or email already registered")
		}
		return err
	}

	h.notifier.Notify(nil, user.ID, models.VerbWelcome, nil)

	token, err := h.generateJWT(user)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, echo.Map{"token": token, "msg": "Registration successful"})
}

// Login authenticates with username and password. Deactivated accounts
// are rejected until reactivated.
func (h *AuthHandler) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.Validation("invalid_request", "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.authenticate(req.Username, req.Password)
	if err != nil {
		return err
	}
	if user.Profile.Status == models.ProfileStatusDeactive {
		return apperrors.Permission("account_deactivated", "This account is deactivated")
	}

	token, err := h.generateJWT(user)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"token": token, "msg": "Login success"})
}

// ChangePassword verifies the old password, stores the new one and
// fires the changed notification.
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	var req models.ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.Validation("invalid_request", "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if req.Password != req.Password2 {
		return apperrors.Validation("password_mismatch", "Passwords don't match")
	}

	user, err := h.userRepository.GetUserByID(currentUserID(c))
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.OldPassword)) != nil {
		return apperrors.Validation("invalid_old_password", "Old password isn't correct")
	}

	if err := h.setPassword(user, req.Password); err != nil {
		return err
	}
	h.notifier.Notify(nil, user.ID, models.VerbChanged, nil)

	return c.JSON(http.StatusOK, echo.Map{"msg": "Password changed successfully"})
}

// SendResetPasswordEmail issues a single-use reset token and mails the
// reset link. Always answers 200 so the endpoint leaks no account info.
func (h *AuthHandler) SendResetPasswordEmail(c echo.Context) error {
	var req models.SendResetPasswordEmailRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.Validation("invalid_request", "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if user, err := h.userRepository.GetUserByEmail(req.Email); err == nil {
		reset := &models.PasswordResetToken{
			Token:     uuid.NewString(),
			UserID:    user.ID,
			ExpiresAt: time.Now().Add(h.cfg.ResetTokenTTL),
		}
		if err := h.resetTokens.CreateToken(reset); err != nil {
			return err
		}

		link := fmt.Sprintf("%s/api/v1/auth/reset-password/%s", h.cfg.BaseURL, reset.Token)
		body := "Click the following link to reset your password ---> " + link
		if err := h.mail.Send(user.Email, "Reset your password", body); err != nil {
			return err
		}
	}

	return c.JSON(http.StatusOK, echo.Map{"msg": "If the email is registered, a reset link has been sent."})
}

// ResetPassword consumes a reset token and fires the reset notification.
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req models.ResetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.Validation("invalid_request", "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if req.Password != req.Password2 {
		return apperrors.Validation("password_mismatch", "Passwords don't match")
	}

	reset, err := h.resetTokens.GetValidToken(c.Param("token"))
	if err != nil {
		return apperrors.Validation("invalid_token", "Reset token is invalid or expired")
	}
	user, err := h.userRepository.GetUserByID(reset.UserID)
	if err != nil {
		return err
	}

	if err := h.setPassword(user, req.Password); err != nil {
		return err
	}
	if err := h.resetTokens.MarkUsed(reset); err != nil {
		return err
	}
	h.notifier.Notify(nil, user.ID, models.VerbReset, nil)

	return c.JSON(http.StatusOK, echo.Map{"msg": "Password reset successfully"})
}

// Deactivate re-checks credentials, flips the profile status and fires
// the deactivated notification. Only the account owner may deactivate.
func (h *AuthHandler) Deactivate(c echo.Context) error {
	var req models.CredentialsRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.Validation("invalid_request", "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.authenticate(req.Username, req.Password)
	if err != nil {
		return err
	}
	if user.ID != currentUserID(c) {
		return apperrors.Permission("not_account_owner", "You can only deactivate your own account")
	}

	user.Profile.Status = models.ProfileStatusDeactive
	if err := h.userRepository.UpdateProfile(&user.Profile); err != nil {
		return err
	}
	h.notifier.Notify(nil, user.ID, models.VerbDeactivated, nil)

	return c.JSON(http.StatusOK, echo.Map{"msg": "Your account has been deactivated"})
}

// Activate reactivates a deactivated account with valid credentials.
// Unauthenticated: a deactivated user cannot hold a session.
func (h *AuthHandler) Activate(c echo.Context) error {
	var req models.CredentialsRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.Validation("invalid_request", "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.authenticate(req.Username, req.Password)
	if err != nil {
		return err
	}
	if user.Profile.Status == models.ProfileStatusActive {
		return c.JSON(http.StatusOK, echo.Map{"msg": "Account already active"})
	}

	user.Profile.Status = models.ProfileStatusActive
	if err := h.userRepository.UpdateProfile(&user.Profile); err != nil {
		return err
	}
	h.notifier.Notify(nil, user.ID, models.VerbReactivated, nil)

	return c.JSON(http.StatusOK, echo.Map{"msg": "Your account has been successfully reactivated"})
}

// authenticate resolves a username/password pair to a user, or an
// authentication error that does not reveal which part was wrong.
func (h *AuthHandler) authenticate(username, password string) (*models.User, error) {
	user, err := h.userRepository.GetUserByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.Authentication("invalid_credentials", "Username or password is not valid")
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, apperrors.Authentication("invalid_credentials", "Username or password is not valid")
	}
	return user, nil
}

func (h *AuthHandler) setPassword(user *models.User, password string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hashed)
	return h.userRepository.UpdateUser(user)
}

func (h *AuthHandler) generateJWT(user *models.User) (string, error) {
	claims := &models.JwtCustomClaims{
		UserID:   user.ID,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(h.cfg.TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.cfg.JWTSecret))
}
