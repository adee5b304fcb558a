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

// PreCadastroHandler exposes lead-capture and lead-management endpoints.
type PreCadastroHandler struct {
	precadastros *service.PreCadastroService
}

// NewPreCadastroHandler constructs PreCadastroHandler.
func NewPreCadastroHandler(precadastros *service.PreCadastroService) *PreCadastroHandler {
	return &PreCadastroHandler{precadastros: precadastros}
}

// List godoc
// @Summary List pre-registrations
// @Tags PreCadastro
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status (pendente, matriculado)"
// @Success 200 {object} response.Envelope
// @Router /precadastros [get]
func (h *PreCadastroHandler) List(c *gin.Context) {
	status := models.PreCadastroStatus(c.Query("status"))
	pres, err := h.precadastros.List(c.Request.Context(), upstreamToken(c), status)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, pres, nil)
}

// Create godoc
// @Summary Register a new lead
// @Tags PreCadastro
// @Accept json
// @Produce json
// @Param payload body service.CreatePreCadastroRequest true "Lead data"
// @Success 201 {object} response.Envelope
// @Router /precadastros [post]
func (h *PreCadastroHandler) Create(c *gin.Context) {
	var req service.CreatePreCadastroRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	pre, err := h.precadastros.Create(c.Request.Context(), upstreamToken(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, pre)
}

// Update godoc
// @Summary Edit a lead
// @Tags PreCadastro
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Pre-registration ID"
// @Param payload body service.UpdatePreCadastroRequest true "Partial edits"
// @Success 200 {object} response.Envelope
// @Router /precadastros/{id} [patch]
func (h *PreCadastroHandler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "id inválido"))
		return
	}
	var req service.UpdatePreCadastroRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	pre, err := h.precadastros.Update(c.Request.Context(), upstreamToken(c), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, pre, nil)
}

// Delete godoc
// @Summary Remove a lead
// @Tags PreCadastro
// @Produce json
// @Security BearerAuth
// @Param id path int true "Pre-registration ID"
// @Success 204
// @Router /precadastros/{id} [delete]
func (h *PreCadastroHandler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "id inválido"))
		return
	}
	if err := h.precadastros.Delete(c.Request.Context(), upstreamToken(c), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
