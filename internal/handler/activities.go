package handler

import (
	"strconv"

	"github.com/abhishek972986/porter-managment/internal/service"

	"github.com/gin-gonic/gin"
)

type ActivitiesHandler struct{ svc service.ActivityService }

func NewActivitiesHandler(svc service.ActivityService) *ActivitiesHandler {
	return &ActivitiesHandler{svc: svc}
}

func (h *ActivitiesHandler) Recent(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	list, err := h.svc.Recent(c.Request.Context(), limit)
	if err != nil {
		_ = c.Error(err)
		return
	}
	sendOK(c, gin.H{"activities": list})
}
