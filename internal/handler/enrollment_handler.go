package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nucampus/campus-backend/internal/middleware"
	"github.com/nucampus/campus-backend/internal/model"
	"github.com/nucampus/campus-backend/internal/repository"
	"github.com/nucampus/campus-backend/internal/response"
	"github.com/nucampus/campus-backend/internal/service"
	"github.com/nucampus/campus-backend/internal/validator"
)

// EnrollmentHandler exposes the request/approval workflow and course
// membership endpoints.
type EnrollmentHandler struct {
	enrollmentService *service.EnrollmentService
}

// NewEnrollmentHandler creates a new EnrollmentHandler.
func NewEnrollmentHandler(enrollmentService *service.EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{enrollmentService: enrollmentService}
}

// Submit godoc
// POST /api/v1/enrollment-requests
// A signed-in user asks to join a course. One request per (email, course),
// ever: a duplicate submit is a 409 regardless of the first request's outcome.
func (h *EnrollmentHandler) Submit(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.SubmitEnrollmentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	created, err := h.enrollmentService.Submit(c.Request.Context(), claims, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotOwner):
			response.Fail(c, http.StatusForbidden, response.ErrNotResourceOwner)
		case errors.Is(err, service.ErrCourseNotFound):
			response.Fail(c, http.StatusNotFound, response.ErrCourseNotFound)
		case errors.Is(err, repository.ErrDuplicateRequest):
			response.Fail(c, http.StatusConflict, response.ErrAlreadyRequested)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"request": created})
}

// ListByEmail godoc
// GET /api/v1/enrollment-requests/:email
// Lists a user's enrollment requests. Admins may read anyone's; everyone
// else only their own.
func (h *EnrollmentHandler) ListByEmail(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	requests, err := h.enrollmentService.ListByEmail(c.Request.Context(), claims, c.Param("email"))
	if err != nil {
		if errors.Is(err, service.ErrNotOwner) {
			response.Fail(c, http.StatusForbidden, response.ErrNotResourceOwner)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"requests": requests})
}

// ListPending godoc
// GET /api/v1/admin/enrollment-requests
// The admin review queue, oldest first.
func (h *EnrollmentHandler) ListPending(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "20"))
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	requests, total, err := h.enrollmentService.ListPending(c.Request.Context(), page, perPage)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, gin.H{"requests": requests}, &response.Pagination{
		Page:       page,
		PerPage:    perPage,
		TotalItems: total,
		TotalPages: (total + perPage - 1) / perPage,
	})
}

// Decide godoc
// PATCH /api/v1/admin/enrollment-requests/:email/:course_id
// Approves or declines a pending request. Repeating the same decision is a
// no-op success; a conflicting decision is a 409.
func (h *EnrollmentHandler) Decide(c *gin.Context) {
	courseID, err := uuid.Parse(c.Param("course_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.DecideEnrollmentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	request, membership, err := h.enrollmentService.Decide(c.Request.Context(), c.Param("email"), courseID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRequestNotFound):
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		case errors.Is(err, service.ErrRequestSettled):
			response.Fail(c, http.StatusConflict, response.ErrRequestSettled)
		case errors.Is(err, service.ErrCourseNotFound):
			response.Fail(c, http.StatusNotFound, response.ErrCourseNotFound)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	payload := gin.H{"request": request}
	if membership != nil {
		payload["membership"] = membership
	}
	response.Success(c, http.StatusOK, payload)
}

// AddMembership godoc
// POST /api/v1/enrollments
// Directly enrolls a student into a course, bypassing the request queue.
// Add-if-absent: enrolling twice returns the same success.
func (h *EnrollmentHandler) AddMembership(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.EnrollCourseRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	inserted, err := h.enrollmentService.AddMembership(c.Request.Context(), claims, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotOwner):
			response.Fail(c, http.StatusForbidden, response.ErrNotResourceOwner)
		case errors.Is(err, service.ErrCourseNotFound):
			response.Fail(c, http.StatusNotFound, response.ErrCourseNotFound)
		case errors.Is(err, service.ErrStudentNotFound):
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	status := http.StatusOK
	if inserted {
		status = http.StatusCreated
	}
	response.Success(c, status, gin.H{"enrolled": true})
}

// MarkPaid godoc
// PATCH /api/v1/enrollments/:email/:course_id/paid
// Settles the fee on a membership. Self or admin; repeating the call is a
// no-op success.
func (h *EnrollmentHandler) MarkPaid(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	courseID, err := uuid.Parse(c.Param("course_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.enrollmentService.MarkPaid(c.Request.Context(), claims, c.Param("email"), courseID); err != nil {
		switch {
		case errors.Is(err, service.ErrNotOwner):
			response.Fail(c, http.StatusForbidden, response.ErrNotResourceOwner)
		case errors.Is(err, service.ErrStudentNotFound), errors.Is(err, service.ErrMembershipNotFound):
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"payment_status": model.PaymentStatusPaid})
}

// ListMemberships godoc
// GET /api/v1/enrollments/:email
// Lists a student's course memberships with fee and payment state.
func (h *EnrollmentHandler) ListMemberships(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	memberships, err := h.enrollmentService.ListMemberships(c.Request.Context(), claims, c.Param("email"))
	if err != nil {
		if errors.Is(err, service.ErrNotOwner) {
			response.Fail(c, http.StatusForbidden, response.ErrNotResourceOwner)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"courses": memberships})
}
