package handler

import (
	"net/http"

	"github.com/abhishek972986/porter-managment/internal/apierror"
	"github.com/abhishek972986/porter-managment/internal/dto"
	"github.com/abhishek972986/porter-managment/internal/service"

	"github.com/gin-gonic/gin"
)

type PortersHandler struct{ svc service.PorterService }

func NewPortersHandler(svc service.PorterService) *PortersHandler {
	return &PortersHandler{svc: svc}
}

// List godoc
// @Summary List porters
// @Tags porters
// @Produce json
// @Param active query string false "true | false"
// @Param search query string false "name, uid or designation"
// @Param page query int false "page" default(1)
// @Param limit query int false "page size" default(50)
// @Success 200 {object} dto.PorterListResponse
// @Security BearerAuth
// @Router /api/porters [get]
func (h *PortersHandler) List(c *gin.Context) {
	var filter dto.PorterFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		_ = c.Error(err)
		return
	}
	sendOK(c, resp)
}

func (h *PortersHandler) Get(c *gin.Context) {
	id, valid := paramID(c, "id")
	if !valid {
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	sendOK(c, resp)
}

func (h *PortersHandler) Create(c *gin.Context) {
	var req dto.CreatePorterRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), actorID(c), req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	sendCreated(c, resp)
}

func (h *PortersHandler) Update(c *gin.Context) {
	id, valid := paramID(c, "id")
	if !valid {
		return
	}
	var req dto.UpdatePorterRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Update(c.Request.Context(), actorID(c), id, req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	sendOK(c, resp)
}

// Delete deactivates the porter; attendance history is kept.
func (h *PortersHandler) Delete(c *gin.Context) {
	id, valid := paramID(c, "id")
	if !valid {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), actorID(c), id); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, apierror.Message("porter deactivated"))
}
