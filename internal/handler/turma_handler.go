package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/delguerso1/CT-Supera-sub000/internal/service"
	appErrors "github.com/delguerso1/CT-Supera-sub000/pkg/errors"
	"github.com/delguerso1/CT-Supera-sub000/pkg/response"
)

// TurmaHandler exposes class cohort endpoints.
type TurmaHandler struct {
	turmas  *service.TurmaService
	catalog *service.CatalogService
}

// NewTurmaHandler constructs TurmaHandler.
func NewTurmaHandler(turmas *service.TurmaService, catalog *service.CatalogService) *TurmaHandler {
	return &TurmaHandler{turmas: turmas, catalog: catalog}
}

type rosterRequest struct {
	Alunos []int `json:"alunos" binding:"required"`
}

// List godoc
// @Summary List turmas
// @Tags Turmas
// @Produce json
// @Security BearerAuth
// @Param ct query int false "Filter by training center"
// @Success 200 {object} response.Envelope
// @Router /turmas [get]
func (h *TurmaHandler) List(c *gin.Context) {
	ctID, _ := strconv.Atoi(c.Query("ct"))
	turmas, err := h.turmas.List(c.Request.Context(), upstreamToken(c), ctID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, turmas, nil)
}

// Get godoc
// @Summary Turma detail with roster
// @Tags Turmas
// @Produce json
// @Security BearerAuth
// @Param id path int true "Turma ID"
// @Success 200 {object} response.Envelope
// @Router /turmas/{id} [get]
func (h *TurmaHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	turma, err := h.turmas.Get(c.Request.Context(), upstreamToken(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, turma, nil)
}

// WeekDays godoc
// @Summary Selectable weekdays
// @Tags Turmas
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /turmas/diassemana [get]
func (h *TurmaHandler) WeekDays(c *gin.Context) {
	days, err := h.catalog.WeekDays(c.Request.Context(), upstreamToken(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, days, nil)
}

// Create godoc
// @Summary Create a turma
// @Tags Turmas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body service.TurmaRequest true "Turma payload"
// @Success 201 {object} response.Envelope
// @Router /turmas [post]
func (h *TurmaHandler) Create(c *gin.Context) {
	var req service.TurmaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	turma, err := h.turmas.Create(c.Request.Context(), upstreamToken(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, turma)
}

// Update godoc
// @Summary Replace a turma definition
// @Tags Turmas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Turma ID"
// @Param payload body service.TurmaRequest true "Turma payload"
// @Success 200 {object} response.Envelope
// @Router /turmas/{id} [put]
func (h *TurmaHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req service.TurmaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	turma, err := h.turmas.Update(c.Request.Context(), upstreamToken(c), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, turma, nil)
}

// Delete godoc
// @Summary Remove a turma
// @Tags Turmas
// @Produce json
// @Security BearerAuth
// @Param id path int true "Turma ID"
// @Success 204
// @Router /turmas/{id} [delete]
func (h *TurmaHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.turmas.Delete(c.Request.Context(), upstreamToken(c), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Alunos godoc
// @Summary Turma roster
// @Tags Turmas
// @Produce json
// @Security BearerAuth
// @Param id path int true "Turma ID"
// @Success 200 {object} response.Envelope
// @Router /turmas/{id}/alunos [get]
func (h *TurmaHandler) Alunos(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	alunos, err := h.turmas.Alunos(c.Request.Context(), upstreamToken(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, alunos, nil)
}

// AddAlunos godoc
// @Summary Add students to the turma roster
// @Tags Turmas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Turma ID"
// @Param payload body rosterRequest true "Student IDs"
// @Success 204
// @Router /turmas/{id}/alunos [post]
func (h *TurmaHandler) AddAlunos(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req rosterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if err := h.turmas.AddAlunos(c.Request.Context(), upstreamToken(c), id, req.Alunos); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// RemoveAlunos godoc
// @Summary Remove students from the turma roster
// @Tags Turmas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Turma ID"
// @Param payload body rosterRequest true "Student IDs"
// @Success 204
// @Router /turmas/{id}/alunos [delete]
func (h *TurmaHandler) RemoveAlunos(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req rosterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if err := h.turmas.RemoveAlunos(c.Request.Context(), upstreamToken(c), id, req.Alunos); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
