package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/delguerso1/CT-Supera-sub000/internal/models"
	"github.com/delguerso1/CT-Supera-sub000/internal/service"
	appErrors "github.com/delguerso1/CT-Supera-sub000/pkg/errors"
	"github.com/delguerso1/CT-Supera-sub000/pkg/response"
)

// EnrollmentHandler drives the matrícula form flow: open a form for a
// pending pre-registration, edit it, and finalize it upstream.
type EnrollmentHandler struct {
	enrollments *service.EnrollmentService
	catalog     *service.CatalogService
}

// NewEnrollmentHandler constructs EnrollmentHandler.
func NewEnrollmentHandler(enrollments *service.EnrollmentService, catalog *service.CatalogService) *EnrollmentHandler {
	return &EnrollmentHandler{enrollments: enrollments, catalog: catalog}
}

// Plans godoc
// @Summary List the plan catalog
// @Tags Enrollment
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /planos [get]
func (h *EnrollmentHandler) Plans(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.catalog.Plans(), nil)
}

// Open godoc
// @Summary Open an enrollment form for a pre-registration
// @Tags Enrollment
// @Produce json
// @Security BearerAuth
// @Param id path int true "Pre-registration ID"
// @Success 201 {object} response.Envelope
// @Router /precadastros/{id}/matricula [post]
func (h *EnrollmentHandler) Open(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "id inválido"))
		return
	}
	form, days, err := h.enrollments.Open(c.Request.Context(), upstreamToken(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, gin.H{"form": form, "dias_semana": days}, nil)
}

// Get godoc
// @Summary Current enrollment form state
// @Tags Enrollment
// @Produce json
// @Security BearerAuth
// @Param formId path string true "Form ID"
// @Success 200 {object} response.Envelope
// @Router /matriculas/{formId} [get]
func (h *EnrollmentHandler) Get(c *gin.Context) {
	form, err := h.enrollments.Get(c.Param("formId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, form, nil)
}

type selectPlanRequest struct {
	Plano models.PlanID `json:"plano" binding:"required"`
}

// SelectPlan godoc
// @Summary Switch the form plan
// @Tags Enrollment
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param formId path string true "Form ID"
// @Param payload body selectPlanRequest true "Plan"
// @Success 200 {object} response.Envelope
// @Router /matriculas/{formId}/plano [put]
func (h *EnrollmentHandler) SelectPlan(c *gin.Context) {
	var req selectPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	form, err := h.enrollments.SelectPlan(c.Param("formId"), req.Plano)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, form, nil)
}

type toggleDayRequest struct {
	Dia int `json:"dia" binding:"required"`
}

// ToggleDay godoc
// @Summary Toggle a training day on the form
// @Tags Enrollment
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param formId path string true "Form ID"
// @Param payload body toggleDayRequest true "Weekday"
// @Success 200 {object} response.Envelope
// @Router /matriculas/{formId}/dias [put]
func (h *EnrollmentHandler) ToggleDay(c *gin.Context) {
	var req toggleDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	form, err := h.enrollments.ToggleDay(c.Param("formId"), req.Dia)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, form, nil)
}

// Update godoc
// @Summary Edit enrollment form fields
// @Tags Enrollment
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param formId path string true "Form ID"
// @Param payload body service.UpdateFormRequest true "Partial edits"
// @Success 200 {object} response.Envelope
// @Router /matriculas/{formId} [patch]
func (h *EnrollmentHandler) Update(c *gin.Context) {
	var req service.UpdateFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	form, err := h.enrollments.Update(c.Param("formId"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, form, nil)
}

// Submit godoc
// @Summary Finalize the enrollment upstream
// @Tags Enrollment
// @Produce json
// @Security BearerAuth
// @Param formId path string true "Form ID"
// @Success 200 {object} response.Envelope
// @Router /matriculas/{formId}/confirmar [post]
func (h *EnrollmentHandler) Submit(c *gin.Context) {
	message, err := h.enrollments.Submit(c.Request.Context(), upstreamToken(c), c.Param("formId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"message": message}, nil)
}

// Cancel godoc
// @Summary Discard an open enrollment form
// @Tags Enrollment
// @Produce json
// @Security BearerAuth
// @Param formId path string true "Form ID"
// @Success 204
// @Router /matriculas/{formId} [delete]
func (h *EnrollmentHandler) Cancel(c *gin.Context) {
	if err := h.enrollments.Cancel(c.Param("formId")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
