package handler

import (
	"net/http"

	"github.com/abhishek972986/porter-managment/internal/apierror"
	"github.com/abhishek972986/porter-managment/internal/dto"
	"github.com/abhishek972986/porter-managment/internal/service"

	"github.com/gin-gonic/gin"
)

// maxUploadBytes caps the CSV import body.
const maxUploadBytes = 5 << 20

type CommuteCostsHandler struct{ svc service.CommuteCostService }

func NewCommuteCostsHandler(svc service.CommuteCostService) *CommuteCostsHandler {
	return &CommuteCostsHandler{svc: svc}
}

func (h *CommuteCostsHandler) List(c *gin.Context) {
	var filter dto.CommuteCostFilter
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

// Find returns the active price for one route. An unpriced route is not an
// error: commuteCost is null.
func (h *CommuteCostsHandler) Find(c *gin.Context) {
	var q dto.FindCommuteCostQuery
	if !bindQuery(c, &q) {
		return
	}
	resp, err := h.svc.Find(c.Request.Context(), q)
	if err != nil {
		_ = c.Error(err)
		return
	}
	sendOK(c, gin.H{"commuteCost": resp})
}

func (h *CommuteCostsHandler) Get(c *gin.Context) {
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

func (h *CommuteCostsHandler) Create(c *gin.Context) {
	var req dto.CreateCommuteCostRequest
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

func (h *CommuteCostsHandler) Update(c *gin.Context) {
	id, valid := paramID(c, "id")
	if !valid {
		return
	}
	var req dto.UpdateCommuteCostRequest
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

func (h *CommuteCostsHandler) Delete(c *gin.Context) {
	id, valid := paramID(c, "id")
	if !valid {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), actorID(c), id); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, apierror.Message("commute cost deleted"))
}

// Upload godoc
// @Summary Bulk import commute costs from CSV
// @Tags commute-costs
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "fromLocationCode,toLocationCode,carrierName,cost"
// @Success 200 {object} dto.ImportResult
// @Failure 400 {object} apierror.Response
// @Security BearerAuth
// @Router /api/commute-costs/upload [post]
func (h *CommuteCostsHandler) Upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes)
	fh, err := c.FormFile("file")
	if err != nil {
		_ = c.Error(apierror.BadRequest("file is required"))
		return
	}
	f, err := fh.Open()
	if err != nil {
		_ = c.Error(apierror.BadRequest("could not read uploaded file"))
		return
	}
	defer f.Close()

	rows, err := service.ParseCommuteCostCSV(f)
	if err != nil {
		_ = c.Error(err)
		return
	}
	result, err := h.svc.Import(c.Request.Context(), actorID(c), rows)
	if err != nil {
		_ = c.Error(err)
		return
	}
	sendOK(c, result)
}
