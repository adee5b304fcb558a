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

// AttendanceHandler exposes the daily check-in flow and reports.
type AttendanceHandler struct {
	attendance *service.AttendanceService
}

// NewAttendanceHandler constructs AttendanceHandler.
func NewAttendanceHandler(attendance *service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendance: attendance}
}

type rollCallRequest struct {
	AlunosPresentes []int `json:"alunos_presentes"`
}

type correctionRequest struct {
	Presente *bool `json:"presente" binding:"required"`
}

// Checkin godoc
// @Summary Today's check-in state for a turma
// @Tags Attendance
// @Produce json
// @Security BearerAuth
// @Param id path int true "Turma ID"
// @Success 200 {object} response.Envelope
// @Router /turmas/{id}/checkin [get]
func (h *AttendanceHandler) Checkin(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	status, err := h.attendance.Checkin(c.Request.Context(), upstreamToken(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, status, nil)
}

// Registrar godoc
// @Summary Record today's roll call
// @Tags Attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Turma ID"
// @Param payload body rollCallRequest true "Present student IDs"
// @Success 201 {object} response.Envelope
// @Router /turmas/{id}/checkin [post]
func (h *AttendanceHandler) Registrar(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req rollCallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if err := h.attendance.Registrar(c.Request.Context(), upstreamToken(c), id, req.AlunosPresentes); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, gin.H{"message": "Presença registrada com sucesso."}, nil)
}

// Relatorio godoc
// @Summary Attendance report
// @Tags Attendance
// @Produce json
// @Security BearerAuth
// @Param turma query int false "Filter by turma"
// @Param aluno query int false "Filter by student"
// @Param data_inicio query string false "Start date (YYYY-MM-DD)"
// @Param data_fim query string false "End date (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Router /presencas [get]
func (h *AttendanceHandler) Relatorio(c *gin.Context) {
	var filter models.AttendanceReportFilter
	filter.Turma, _ = strconv.Atoi(c.Query("turma"))
	filter.Aluno, _ = strconv.Atoi(c.Query("aluno"))
	filter.DataInicio = c.Query("data_inicio")
	filter.DataFim = c.Query("data_fim")
	presencas, err := h.attendance.Relatorio(c.Request.Context(), upstreamToken(c), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, presencas, nil)
}

// Corrigir godoc
// @Summary Correct a past attendance record
// @Tags Attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Presença ID"
// @Param payload body correctionRequest true "New state"
// @Success 200 {object} response.Envelope
// @Router /presencas/{id} [patch]
func (h *AttendanceHandler) Corrigir(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req correctionRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Presente == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "informe o novo estado da presença"))
		return
	}
	presenca, err := h.attendance.Corrigir(c.Request.Context(), upstreamToken(c), id, *req.Presente)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, presenca, nil)
}
