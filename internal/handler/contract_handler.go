package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/delguerso1/CT-Supera-sub000/internal/service"
	appErrors "github.com/delguerso1/CT-Supera-sub000/pkg/errors"
	"github.com/delguerso1/CT-Supera-sub000/pkg/response"
)

// ContractHandler exposes enrollment contract rendering and download.
type ContractHandler struct {
	contracts *service.ContractService
}

// NewContractHandler constructs ContractHandler.
func NewContractHandler(contracts *service.ContractService) *ContractHandler {
	return &ContractHandler{contracts: contracts}
}

// Generate godoc
// @Summary Queue an enrollment contract render
// @Tags Contratos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body service.ContractRequest true "Contract data"
// @Success 202 {object} response.Envelope
// @Router /contratos [post]
func (h *ContractHandler) Generate(c *gin.Context) {
	var req service.ContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	doc, err := h.contracts.Generate(req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusAccepted, doc, nil)
}

// Get godoc
// @Summary Contract render state and download link
// @Tags Contratos
// @Produce json
// @Security BearerAuth
// @Param id path string true "Document ID"
// @Success 200 {object} response.Envelope
// @Router /contratos/{id} [get]
func (h *ContractHandler) Get(c *gin.Context) {
	doc, err := h.contracts.Get(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, doc, nil)
}

// Download godoc
// @Summary Download a rendered contract
// @Tags Contratos
// @Produce octet-stream
// @Param token query string true "Signed download token"
// @Success 200 {file} binary
// @Router /contratos/download [get]
func (h *ContractHandler) Download(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "informe o token de download"))
		return
	}
	path, err := h.contracts.Resolve(token)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="contrato.pdf"`)
	c.File(path)
}
