package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/delguerso1/CT-Supera-sub000/internal/service"
	appErrors "github.com/delguerso1/CT-Supera-sub000/pkg/errors"
	"github.com/delguerso1/CT-Supera-sub000/pkg/response"
)

// CTHandler exposes training-center endpoints.
type CTHandler struct {
	cts *service.CTService
}

// NewCTHandler constructs CTHandler.
func NewCTHandler(cts *service.CTService) *CTHandler {
	return &CTHandler{cts: cts}
}

// List godoc
// @Summary List training centers
// @Tags CTs
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /cts [get]
func (h *CTHandler) List(c *gin.Context) {
	cts, err := h.cts.List(c.Request.Context(), upstreamToken(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, cts, nil)
}

// Get godoc
// @Summary Training center detail
// @Tags CTs
// @Produce json
// @Security BearerAuth
// @Param id path int true "CT ID"
// @Success 200 {object} response.Envelope
// @Router /cts/{id} [get]
func (h *CTHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	ct, err := h.cts.Get(c.Request.Context(), upstreamToken(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, ct, nil)
}

// Create godoc
// @Summary Create a training center
// @Tags CTs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body service.CTRequest true "CT payload"
// @Success 201 {object} response.Envelope
// @Router /cts [post]
func (h *CTHandler) Create(c *gin.Context) {
	var req service.CTRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	ct, err := h.cts.Create(c.Request.Context(), upstreamToken(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, ct)
}

// Update godoc
// @Summary Edit a training center
// @Tags CTs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "CT ID"
// @Param payload body service.CTRequest true "CT payload"
// @Success 200 {object} response.Envelope
// @Router /cts/{id} [put]
func (h *CTHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req service.CTRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	ct, err := h.cts.Update(c.Request.Context(), upstreamToken(c), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, ct, nil)
}

// Delete godoc
// @Summary Remove a training center
// @Tags CTs
// @Produce json
// @Security BearerAuth
// @Param id path int true "CT ID"
// @Success 204
// @Router /cts/{id} [delete]
func (h *CTHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.cts.Delete(c.Request.Context(), upstreamToken(c), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
