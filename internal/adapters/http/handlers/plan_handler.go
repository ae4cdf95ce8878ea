package handlers

import (
	"errors"

	"gensuite-api/internal/adapters/persistence/repositories"
	"gensuite-api/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// PlanHandler handles public pricing plan endpoints
type PlanHandler struct {
	planRepo repositories.PlanRepository
}

// NewPlanHandler creates a new plan handler
func NewPlanHandler(planRepo repositories.PlanRepository) *PlanHandler {
	return &PlanHandler{planRepo: planRepo}
}

// List lists the active pricing plans
// @Summary List plans
// @Description List active subscription plans ordered for display
// @Tags Plans
// @Produce json
// @Success 200 {object} response.Response
// @Router /plans [get]
func (h *PlanHandler) List(c *fiber.Ctx) error {
	plans, err := h.planRepo.ListActive(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list plans")
	}

	return response.Success(c, "Plans retrieved successfully", fiber.Map{
		"plans": plans,
	})
}

// Get returns a single plan by code
// @Summary Get plan
// @Description Get a subscription plan by code
// @Tags Plans
// @Produce json
// @Param code path string true "Plan code"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /plans/{code} [get]
func (h *PlanHandler) Get(c *fiber.Ctx) error {
	plan, err := h.planRepo.GetByCode(c.Context(), c.Params("code"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Plan not found")
		}
		return response.InternalServerError(c, "Failed to get plan")
	}

	return response.Success(c, "Plan retrieved successfully", fiber.Map{
		"plan": plan,
	})
}
