package handlers

import (
	"strconv"
	"strings"

	"gensuite-api/internal/core/services"
	"gensuite-api/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// GeneratorHandler handles the generator tool endpoints
type GeneratorHandler struct {
	generatorService *services.GeneratorService
	geocodeService   *services.GeocodeService
}

// NewGeneratorHandler creates a new generator handler
func NewGeneratorHandler(generatorService *services.GeneratorService, geocodeService *services.GeocodeService) *GeneratorHandler {
	return &GeneratorHandler{
		generatorService: generatorService,
		geocodeService:   geocodeService,
	}
}

// EmailNameRequest represents email-to-name request body
type EmailNameRequest struct {
	Email string `json:"email"`
}

// UserAgents generates random user-agent strings
// @Summary Generate user agents
// @Description Generate realistic browser user-agent strings
// @Tags Tools
// @Produce json
// @Security BearerAuth
// @Param count query int false "Number of strings (1-50, default 5)"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /tools/user-agents [get]
func (h *GeneratorHandler) UserAgents(c *fiber.Ctx) error {
	count, _ := strconv.Atoi(c.Query("count", strconv.Itoa(services.DefaultUserAgentCount)))

	agents, err := h.generatorService.GenerateUserAgents(c.Context(), count)
	if err != nil {
		return response.InternalServerError(c, "Failed to generate user agents")
	}

	return response.Success(c, "User agents generated successfully", fiber.Map{
		"user_agents": agents,
		"count":       len(agents),
	})
}

// Address derives a postal-style address from an IP
// @Summary Address from IP
// @Description Resolve an IP address to a geographic address
// @Tags Tools
// @Produce json
// @Security BearerAuth
// @Param ip query string false "IP address (defaults to the caller's IP)"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 502 {object} response.Response
// @Router /tools/address [get]
func (h *GeneratorHandler) Address(c *fiber.Ctx) error {
	ip := strings.TrimSpace(c.Query("ip"))
	if ip == "" {
		ip = c.IP()
	}

	result, err := h.geocodeService.AddressFromIP(c.Context(), ip)
	if err != nil {
		return response.BadGateway(c, "Address lookup failed")
	}

	return response.Success(c, "Address resolved successfully", fiber.Map{
		"address": result,
	})
}

// EmailName expands an email address into a likely display name
// @Summary Email to name
// @Description Expand an email address into a likely display name
// @Tags Tools
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body EmailNameRequest true "Email address"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /tools/email-name [post]
func (h *GeneratorHandler) EmailName(c *fiber.Ctx) error {
	var req EmailNameRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	input := &services.EmailToNameInput{Email: strings.TrimSpace(req.Email)}
	name, err := h.generatorService.EmailToName(c.Context(), input)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	return response.Success(c, "Name generated successfully", fiber.Map{
		"email": input.Email,
		"name":  name,
	})
}
