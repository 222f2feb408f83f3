package handler

import (
	"github.com/abhishek972986/porter-managment/internal/service"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ReportsHandler struct{ svc service.ReportService }

func NewReportsHandler(svc service.ReportService) *ReportsHandler {
	return &ReportsHandler{svc: svc}
}

func (h *ReportsHandler) Dashboard(c *gin.Context) {
	resp, err := h.svc.Dashboard(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	sendOK(c, resp)
}

func (h *ReportsHandler) Generate(c *gin.Context) {
	resp, err := h.svc.Generate(c.Request.Context(), actorID(c), c.Query("month"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	sendOK(c, resp)
}

// NominalRoll returns the spreadsheet, or the rows as JSON with format=json.
func (h *ReportsHandler) NominalRoll(c *gin.Context) {
	month := c.Query("month")
	if c.Query("format") == "json" {
		rows, err := h.svc.NominalRoll(c.Request.Context(), month)
		if err != nil {
			_ = c.Error(err)
			return
		}
		sendOK(c, gin.H{"month": month, "rows": rows})
		return
	}
	body, filename, err := h.svc.NominalRollXLSX(c.Request.Context(), month)
	if err != nil {
		_ = c.Error(err)
		return
	}
	attachment(c, xlsxContentType, filename, body)
}
