package handler

import (
	"net/http"

	"github.com/abhishek972986/porter-managment/internal/apierror"
	"github.com/abhishek972986/porter-managment/internal/dto"
	"github.com/abhishek972986/porter-managment/internal/service"

	"github.com/gin-gonic/gin"
)

type CarriersHandler struct{ svc service.CarrierService }

func NewCarriersHandler(svc service.CarrierService) *CarriersHandler {
	return &CarriersHandler{svc: svc}
}

func (h *CarriersHandler) List(c *gin.Context) {
	resp, err := h.svc.List(c.Request.Context(), c.Query("active"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	sendOK(c, resp)
}

func (h *CarriersHandler) Get(c *gin.Context) {
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

func (h *CarriersHandler) Create(c *gin.Context) {
	var req dto.CreateCarrierRequest
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

func (h *CarriersHandler) Update(c *gin.Context) {
	id, valid := paramID(c, "id")
	if !valid {
		return
	}
	var req dto.UpdateCarrierRequest
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

func (h *CarriersHandler) Delete(c *gin.Context) {
	id, valid := paramID(c, "id")
	if !valid {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), actorID(c), id); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, apierror.Message("carrier deactivated"))
}
