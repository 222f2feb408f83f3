package handler

import (
	"github.com/abhishek972986/porter-managment/internal/dto"
	"github.com/abhishek972986/porter-managment/internal/service"

	"github.com/gin-gonic/gin"
)

type PayrollHandler struct{ svc service.PayrollService }

func NewPayrollHandler(svc service.PayrollService) *PayrollHandler {
	return &PayrollHandler{svc: svc}
}

// Monthly godoc
// @Summary Monthly payroll grouped by porter
// @Tags payroll
// @Produce json
// @Param month query string true "YYYY-MM"
// @Success 200 {object} dto.MonthlyPayrollResponse
// @Security BearerAuth
// @Router /api/payroll [get]
func (h *PayrollHandler) Monthly(c *gin.Context) {
	resp, err := h.svc.Monthly(c.Request.Context(), c.Query("month"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	sendOK(c, resp)
}

func (h *PayrollHandler) Summary(c *gin.Context) {
	var q dto.SummaryQuery
	if !bindQuery(c, &q) {
		return
	}
	resp, err := h.svc.Summary(c.Request.Context(), q.StartMonth, q.EndMonth)
	if err != nil {
		_ = c.Error(err)
		return
	}
	sendOK(c, resp)
}

func (h *PayrollHandler) ForPorter(c *gin.Context) {
	id, valid := paramID(c, "porterId")
	if !valid {
		return
	}
	resp, err := h.svc.ForPorter(c.Request.Context(), id, c.Query("month"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	sendOK(c, resp)
}

// UpdatePayment godoc
// @Summary Set or increment a porter's monthly payment
// @Tags payroll
// @Accept json
// @Produce json
// @Param porterId path string true "porter id"
// @Param body body dto.UpdatePaymentRequest true "amount or increment"
// @Success 200 {object} dto.PaymentResponse
// @Failure 400 {object} apierror.Response
// @Security BearerAuth
// @Router /api/payroll/{porterId}/payment [patch]
func (h *PayrollHandler) UpdatePayment(c *gin.Context) {
	id, valid := paramID(c, "porterId")
	if !valid {
		return
	}
	var req dto.UpdatePaymentRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.UpdatePayment(c.Request.Context(), actorID(c), id, req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	sendOK(c, resp)
}

func (h *PayrollHandler) Payslip(c *gin.Context) {
	id, valid := paramID(c, "porterId")
	if !valid {
		return
	}
	pdf, filename, err := h.svc.Payslip(c.Request.Context(), id, c.Query("month"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	attachment(c, "application/pdf", filename, pdf)
}
