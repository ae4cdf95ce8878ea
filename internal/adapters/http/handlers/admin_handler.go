package handlers

import (
	"errors"
	"strconv"
	"strings"

	"gensuite-api/internal/adapters/http/middleware"
	"gensuite-api/internal/adapters/persistence/repositories"
	"gensuite-api/internal/core/domain"
	"gensuite-api/internal/core/services"
	"gensuite-api/internal/pkg/pagination"
	"gensuite-api/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AdminHandler handles back-office endpoints. One handler serves both
// back-office surfaces; the mounted route group decides which one.
type AdminHandler struct {
	adminService *services.AdminService
	ipRepo       repositories.IPRecordRepository
	eventRepo    repositories.SecurityEventRepository
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(
	adminService *services.AdminService,
	ipRepo repositories.IPRecordRepository,
	eventRepo repositories.SecurityEventRepository,
) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
		ipRepo:       ipRepo,
		eventRepo:    eventRepo,
	}
}

// AdminLoginRequest represents back-office login request body
type AdminLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ApprovalRequest represents an approval update request body
type ApprovalRequest struct {
	Approved bool `json:"approved"`
}

// StatusRequest represents a status update request body
type StatusRequest struct {
	Status string `json:"status"`
}

// Login handles back-office login
// @Summary Back-office login
// @Description Authenticate an operator and return an admin session token
// @Tags Admin
// @Accept json
// @Produce json
// @Param body body AdminLoginRequest true "Operator credentials"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /admin/login [post]
func (h *AdminHandler) Login(c *fiber.Ctx) error {
	var req AdminLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.Username == "" || req.Password == "" {
		return response.BadRequest(c, "Username and password are required")
	}

	accessToken, err := h.adminService.Login(c.Context(), strings.TrimSpace(req.Username), req.Password, c.IP())
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return response.Unauthorized(c, "Invalid username or password")
		}
		return response.InternalServerError(c, "Failed to login")
	}

	return response.Success(c, "Login successful", fiber.Map{
		"access_token": accessToken,
	})
}

// Verify confirms the presented admin token is still accepted
// @Summary Verify admin session
// @Description Confirm the admin session token is valid
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /admin/verify [get]
func (h *AdminHandler) Verify(c *fiber.Ctx) error {
	return response.Success(c, "Session valid", fiber.Map{
		"username": c.Locals(middleware.LocalSubject),
		"role":     c.Locals(middleware.LocalRole),
	})
}

// ListUsers lists end-user accounts
// @Summary List accounts
// @Description List registered accounts with pagination
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /admin/users [get]
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	accounts, total, err := h.adminService.ListAccounts(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list accounts")
	}

	return response.Success(c, "Accounts retrieved successfully",
		pagination.NewResponse(accounts, params, total))
}

// UpdateApproval approves or revokes an account
// @Summary Update account approval
// @Description Approve a pending account or revoke approval
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Account ID"
// @Param body body ApprovalRequest true "Approval flag"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/users/{id}/approval [put]
func (h *AdminHandler) UpdateApproval(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid account ID")
	}

	var req ApprovalRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	account, err := h.adminService.SetApproval(c.Context(), uint(id), req.Approved)
	if err != nil {
		if errors.Is(err, services.ErrAccountNotFound) {
			return response.NotFound(c, "Account not found")
		}
		return response.InternalServerError(c, "Failed to update approval")
	}

	return response.Success(c, "Approval updated successfully", fiber.Map{
		"account": account,
	})
}

// UpdateStatus changes an account's lifecycle status
// @Summary Update account status
// @Description Suspend, reactivate or deactivate an account
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Account ID"
// @Param body body StatusRequest true "New status"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/users/{id}/status [put]
func (h *AdminHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid account ID")
	}

	var req StatusRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	account, err := h.adminService.SetStatus(c.Context(), uint(id), strings.TrimSpace(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Unknown account status")
		case errors.Is(err, services.ErrAccountNotFound):
			return response.NotFound(c, "Account not found")
		default:
			return response.InternalServerError(c, "Failed to update status")
		}
	}

	return response.Success(c, "Status updated successfully", fiber.Map{
		"account": account,
	})
}

// ListAlerts lists back-office alerts
// @Summary List alerts
// @Description List operational alerts for the back office
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /admin/alerts [get]
func (h *AdminHandler) ListAlerts(c *fiber.Ctx) error {
	alerts, err := h.adminService.ListAlerts(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list alerts")
	}

	return response.Success(c, "Alerts retrieved successfully", fiber.Map{
		"alerts": alerts,
	})
}

// ListIPHistory lists login IP history for an account
// @Summary List login IP history
// @Description List recent login IPs recorded for an account
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Account ID"
// @Param limit query int false "Max records"
// @Success 200 {object} response.Response
// @Router /admin/users/{id}/ips [get]
func (h *AdminHandler) ListIPHistory(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid account ID")
	}

	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	if limit < 1 || limit > 200 {
		limit = 50
	}

	records, err := h.ipRepo.ListByAccount(c.Context(), uint(id), limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list IP history")
	}

	return response.Success(c, "IP history retrieved successfully", fiber.Map{
		"records": records,
	})
}

// ListSecurityEvents lists recent security events
// @Summary List security events
// @Description List recently recorded security events
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Max events"
// @Success 200 {object} response.Response
// @Router /admin/security-events [get]
func (h *AdminHandler) ListSecurityEvents(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "100"))
	if limit < 1 || limit > 500 {
		limit = 100
	}

	events, err := h.eventRepo.ListRecent(c.Context(), limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list security events")
	}

	return response.Success(c, "Security events retrieved successfully", fiber.Map{
		"events": events,
	})
}
