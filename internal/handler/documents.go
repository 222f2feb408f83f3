package handler

import (
	"net/http"

	"github.com/abhishek972986/porter-managment/internal/apierror"
	"github.com/abhishek972986/porter-managment/internal/dto"
	"github.com/abhishek972986/porter-managment/internal/service"

	"github.com/gin-gonic/gin"
)

type DocumentsHandler struct{ svc service.DocumentService }

func NewDocumentsHandler(svc service.DocumentService) *DocumentsHandler {
	return &DocumentsHandler{svc: svc}
}

// Generate godoc
// @Summary Render the works document as PDF
// @Tags documents
// @Accept json
// @Produce application/pdf
// @Param body body dto.GenerateDocumentRequest true "Placeholder values"
// @Success 200 {file} binary
// @Failure 503 {object} apierror.Response
// @Security BearerAuth
// @Router /api/documents/generate-pdf [post]
func (h *DocumentsHandler) Generate(c *gin.Context) {
	var req dto.GenerateDocumentRequest
	if !bindAndValidate(c, &req) {
		return
	}
	pdf, filename, err := h.svc.Generate(c.Request.Context(), req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	attachment(c, "application/pdf", filename, pdf)
}

// Health reports 503 while the template cannot be read.
func (h *DocumentsHandler) Health(c *gin.Context) {
	resp, healthy := h.svc.Health(c.Request.Context())
	if !healthy {
		c.JSON(http.StatusServiceUnavailable, apierror.Response{
			Success: false,
			Message: "document template unavailable",
			Data:    resp,
		})
		return
	}
	sendOK(c, resp)
}
