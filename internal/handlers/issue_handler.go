package handlers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/hallmoor/binduty/internal/dto"
	"github.com/hallmoor/binduty/internal/middleware"
	"github.com/hallmoor/binduty/internal/models"
	"github.com/hallmoor/binduty/internal/services"
)

type IssueHandler struct {
	issues *services.IssueService
}

func NewIssueHandler(issues *services.IssueService) *IssueHandler {
	return &IssueHandler{issues: issues}
}

// List serves both the authenticated tracker and the public board; the data is
// identical.
func (h *IssueHandler) List(c *fiber.Ctx) error {
	issues, err := h.issues.List(c.Context())
	if err != nil {
		return fiber.ErrInternalServerError
	}
	if issues == nil {
		issues = []models.Issue{}
	}
	return c.JSON(issues)
}

func (h *IssueHandler) Report(c *fiber.Ctx) error {
	var req dto.ReportIssueRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	_, err := h.issues.Report(c.Context(), req)
	if err != nil {
		if errors.Is(err, services.ErrMissingFields) {
			return badRequest(c, "name, flat_number and description are required")
		}
		return fiber.ErrInternalServerError
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MessageResponse{Message: "Issue reported successfully."})
}

func (h *IssueHandler) UpdateStatus(c *fiber.Ctx) error {
	admin, _ := middleware.Actor(c)
	var req dto.UpdateIssueRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	err := h.issues.UpdateStatus(c.Context(), admin.Email, c.Params("id"), req.Status)
	if err != nil {
		if errors.Is(err, services.ErrIssueNotFound) {
			return notFound(c, "Issue not found")
		}
		return fiber.ErrInternalServerError
	}
	return c.JSON(dto.MessageResponse{Message: "Issue status updated successfully"})
}

func (h *IssueHandler) Delete(c *fiber.Ctx) error {
	admin, _ := middleware.Actor(c)
	var req dto.DeleteIDsRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	removed, err := h.issues.Delete(c.Context(), admin.Email, req.IDs)
	if err != nil {
		return fiber.ErrInternalServerError
	}
	return c.JSON(dto.MessageResponse{
		Message: fmt.Sprintf("%d issue(s) deleted successfully", removed),
	})
}
