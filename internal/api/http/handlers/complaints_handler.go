package handlers

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/complaint-service/internal/api/dto"
	"github.com/spec-kit/complaint-service/internal/auth"
	"github.com/spec-kit/complaint-service/internal/service"
	apperrors "github.com/spec-kit/complaint-service/pkg/util"
)

// ComplaintsHandler manages citizen-facing complaint endpoints.
type ComplaintsHandler struct {
	service *service.ComplaintService
}

// NewComplaintsHandler constructs handler.
func NewComplaintsHandler(complaintService *service.ComplaintService) *ComplaintsHandler {
	return &ComplaintsHandler{service: complaintService}
}

// Submit POST /complaints. Accepts multipart form data with an optional
// photo part; runs behind optional auth so guests can submit.
func (h *ComplaintsHandler) Submit(c *fiber.Ctx) error {
	input := service.SubmitInput{
		Title:        c.FormValue("title"),
		Category:     c.FormValue("category"),
		Description:  c.FormValue("description"),
		State:        c.FormValue("state"),
		City:         c.FormValue("city"),
		Address:      c.FormValue("address"),
		Pincode:      c.FormValue("pincode"),
		ContactPhone: c.FormValue("contact_phone"),
		ContactEmail: c.FormValue("contact_email"),
	}

	var photo *service.PhotoUpload
	if fileHeader, err := c.FormFile("photo"); err == nil && fileHeader != nil {
		file, err := fileHeader.Open()
		if err != nil {
			return apperrors.NewValidationError("unreadable photo upload", nil)
		}
		defer file.Close()

		content := make([]byte, fileHeader.Size)
		if _, err := io.ReadFull(file, content); err != nil {
			return apperrors.NewValidationError("unreadable photo upload", nil)
		}
		photo = &service.PhotoUpload{
			FileName:    fileHeader.Filename,
			ContentType: fileHeader.Header.Get("Content-Type"),
			Size:        fileHeader.Size,
			Content:     content,
		}
	}

	identity, _ := auth.IdentityFromContext(c)
	complaint, err := h.service.Submit(c.Context(), input, photo, identity)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.FromComplaint(complaint)})
}

// ListMine GET /complaints/mine.
func (h *ComplaintsHandler) ListMine(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	page := parseInt(c.Query("page"), 1)
	pageSize := parseInt(c.Query("page_size"), 20)
	complaints, err := h.service.ListForSubmitter(c.Context(), identity.SubjectID, pageSize, (page-1)*pageSize)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromComplaints(complaints)})
}

func parseInt(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}
