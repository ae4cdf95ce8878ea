package handlers

import (
	"errors"
	"strings"
	"time"

	"gensuite-api/internal/adapters/http/middleware"
	"gensuite-api/internal/adapters/persistence/models"
	"gensuite-api/internal/config"
	"gensuite-api/internal/core/domain"
	"gensuite-api/internal/core/services"
	"gensuite-api/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles end-user authentication endpoints
type AuthHandler struct {
	authService    *services.AuthService
	sessionService *services.SessionService
	cfg            *config.Config
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService, sessionService *services.SessionService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService:    authService,
		sessionService: sessionService,
		cfg:            cfg,
	}
}

// RegisterRequest represents registration request body
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents login request body
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register handles user registration
// @Summary Register new user
// @Description Register a new account; it stays pending until approved
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body RegisterRequest true "Registration data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	input := &services.RegisterInput{
		Username: strings.TrimSpace(req.Username),
		Email:    strings.TrimSpace(req.Email),
		Password: req.Password,
	}

	account, err := h.authService.Register(c.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAccountExists):
			return response.Conflict(c, "Username or email already exists")
		default:
			return response.BadRequest(c, err.Error())
		}
	}

	return response.Created(c, "Account registered, awaiting approval", fiber.Map{
		"account": account,
	})
}

// Login handles user login
// @Summary Login user
// @Description Authenticate user and return a session token
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Login credentials"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.SessionState
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	input := &services.LoginInput{
		Username: strings.TrimSpace(req.Username),
		Password: req.Password,
	}

	result, err := h.authService.Login(c.Context(), input, c.IP(), c.Get(fiber.HeaderUserAgent))
	if err != nil {
		var statusErr *domain.StatusError
		switch {
		case errors.Is(err, services.ErrInvalidCredentials):
			return response.Unauthorized(c, "Invalid username or password")
		case errors.As(err, &statusErr):
			return response.AccountState(c, fiber.StatusForbidden, string(statusErr.Reason), statusErr.Reason.Message())
		default:
			return response.BadRequest(c, err.Error())
		}
	}

	h.setAuthCookie(c, result.AccessToken)

	return response.Success(c, "Login successful", fiber.Map{
		"access_token": result.AccessToken,
		"account":      result.Account,
	})
}

// Logout handles user logout
// @Summary Logout user
// @Description Clear the session cookie
// @Tags Auth
// @Accept json
// @Produce json
// @Success 200 {object} response.Response
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.clearAuthCookie(c)
	return response.Success(c, "Logged out successfully", nil)
}

// Me returns the current user info
// @Summary Get current user
// @Description Get the currently authenticated account
// @Tags Auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	account, ok := c.Locals(middleware.LocalAccount).(*models.Account)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	return response.Success(c, "Account retrieved successfully", fiber.Map{
		"account": account.ToResponse(),
	})
}

// Session reports whether the presented credential still grants access.
// Token failures come back as 401; a verified token whose account is no
// longer in good standing comes back as 200 with is_valid=false so clients
// can show the lifecycle message without treating it as a transport error.
// @Summary Check session validity
// @Description Validate the current session token against the live account
// @Tags Auth
// @Accept json
// @Produce json
// @Success 200 {object} response.SessionState
// @Failure 401 {object} response.Response
// @Router /auth/session [get]
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	var res *services.Resolution
	if cookie := c.Cookies(middleware.AccessTokenCookie); cookie != "" {
		res = h.sessionService.ResolveToken(c.Context(), cookie, true)
	} else {
		res = h.sessionService.ResolveBearer(c.Context(), c.Get(fiber.HeaderAuthorization), true)
	}

	if !res.Authorized {
		if res.Reason.IsTokenFailure() {
			return response.Unauthorized(c, res.Reason.Message())
		}
		return response.AccountState(c, fiber.StatusOK, string(res.Reason), res.Reason.Message())
	}

	return c.JSON(response.SessionState{
		IsValid: true,
		Status:  domain.StatusActive,
	})
}

// setAuthCookie sets the session token cookie
func (h *AuthHandler) setAuthCookie(c *fiber.Ctx, accessToken string) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.AccessTokenCookie,
		Value:    accessToken,
		Path:     "/",
		MaxAge:   h.cfg.JWT.TokenTTLMins * 60,
		Secure:   h.cfg.Cookie.Secure,
		HTTPOnly: true,
		SameSite: h.cfg.Cookie.SameSite,
		Domain:   h.cfg.Cookie.Domain,
	})
}

// clearAuthCookie clears the session token cookie
func (h *AuthHandler) clearAuthCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.AccessTokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Now().Add(-1 * time.Hour),
		Secure:   h.cfg.Cookie.Secure,
		HTTPOnly: true,
		SameSite: h.cfg.Cookie.SameSite,
		Domain:   h.cfg.Cookie.Domain,
	})
}
