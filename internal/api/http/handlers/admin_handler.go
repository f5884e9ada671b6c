package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/complaint-service/internal/api/dto"
	"github.com/spec-kit/complaint-service/internal/auth"
	"github.com/spec-kit/complaint-service/internal/domain"
	"github.com/spec-kit/complaint-service/internal/service"
	apperrors "github.com/spec-kit/complaint-service/pkg/util"
)

// AdminHandler exposes triage endpoints. All routes are mounted behind the
// strict auth handler plus RequireAdmin.
type AdminHandler struct {
	service *service.ComplaintService
}

// NewAdminHandler constructs handler.
func NewAdminHandler(complaintService *service.ComplaintService) *AdminHandler {
	return &AdminHandler{service: complaintService}
}

// ListComplaints GET /admin/complaints.
func (h *AdminHandler) ListComplaints(c *fiber.Ctx) error {
	filter := service.ComplaintListFilter{}
	if statusStr := c.Query("status"); statusStr != "" {
		for _, part := range strings.Split(statusStr, ",") {
			filter.Statuses = append(filter.Statuses, domain.ComplaintStatus(strings.TrimSpace(part)))
		}
	}
	if priorityStr := c.Query("priority"); priorityStr != "" {
		for _, part := range strings.Split(priorityStr, ",") {
			filter.Priorities = append(filter.Priorities, domain.ComplaintPriority(strings.TrimSpace(part)))
		}
	}
	page := parseInt(c.Query("page"), 1)
	pageSize := parseInt(c.Query("page_size"), 50)
	filter.Limit = pageSize
	filter.Offset = (page - 1) * pageSize

	complaints, err := h.service.ListAll(c.Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromComplaints(complaints)})
}

// GetComplaint GET /admin/complaints/:id.
func (h *AdminHandler) GetComplaint(c *fiber.Ctx) error {
	complaint, err := h.service.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromComplaint(complaint)})
}

// SetStatus PATCH /admin/complaints/:id/status.
func (h *AdminHandler) SetStatus(c *fiber.Ctx) error {
	var req dto.SetStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	identity, _ := auth.IdentityFromContext(c)
	complaint, err := h.service.SetStatus(c.Context(), c.Params("id"), domain.ComplaintStatus(req.Status), identity)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromComplaint(complaint)})
}

// SetPriority PATCH /admin/complaints/:id/priority.
func (h *AdminHandler) SetPriority(c *fiber.Ctx) error {
	var req dto.SetPriorityRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	identity, _ := auth.IdentityFromContext(c)
	complaint, err := h.service.SetPriority(c.Context(), c.Params("id"), domain.ComplaintPriority(req.Priority), identity)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromComplaint(complaint)})
}
