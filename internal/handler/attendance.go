package handler

import (
	"net/http"

	"github.com/abhishek972986/porter-managment/internal/apierror"
	"github.com/abhishek972986/porter-managment/internal/dto"
	"github.com/abhishek972986/porter-managment/internal/service"

	"github.com/gin-gonic/gin"
)

type AttendanceHandler struct{ svc service.AttendanceService }

func NewAttendanceHandler(svc service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{svc: svc}
}

// List godoc
// @Summary List attendance entries
// @Tags attendance
// @Produce json
// @Param date query string false "YYYY-MM-DD"
// @Param month query string false "YYYY-MM"
// @Param startDate query string false "YYYY-MM-DD, with endDate"
// @Param endDate query string false "YYYY-MM-DD, inclusive"
// @Param porterId query string false "porter id"
// @Success 200 {object} dto.AttendanceListResponse
// @Security BearerAuth
// @Router /api/attendance [get]
func (h *AttendanceHandler) List(c *gin.Context) {
	var filter dto.AttendanceFilter
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

func (h *AttendanceHandler) Calendar(c *gin.Context) {
	days, err := h.svc.Calendar(c.Request.Context(), c.Query("month"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	sendOK(c, days)
}

func (h *AttendanceHandler) Get(c *gin.Context) {
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

func (h *AttendanceHandler) Create(c *gin.Context) {
	var req dto.CreateAttendanceRequest
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

func (h *AttendanceHandler) Update(c *gin.Context) {
	id, valid := paramID(c, "id")
	if !valid {
		return
	}
	var req dto.UpdateAttendanceRequest
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

func (h *AttendanceHandler) Delete(c *gin.Context) {
	id, valid := paramID(c, "id")
	if !valid {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), actorID(c), id); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, apierror.Message("attendance entry deleted"))
}
