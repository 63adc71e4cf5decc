package handler

import (
	"net/http"

	"github.com/danielalasn/pivot/internal/service"
	"github.com/danielalasn/pivot/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// InstallmentHandler exposes installment-plan CRUD per credit card.
type InstallmentHandler struct {
	Installments *service.InstallmentService
}

func NewInstallmentHandler(db *gorm.DB) *InstallmentHandler {
	return &InstallmentHandler{Installments: service.NewInstallmentService(db)}
}

// ListForAccount returns the plans of the card in :id with their
// derived quota, pending balance and interest totals.
func (h *InstallmentHandler) ListForAccount(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	items, err := h.Installments.ListForAccount(id)
	if err != nil {
		respondErr(c, err)
		return
	}
	util.Success(c, util.Response{"items": items})
}

func (h *InstallmentHandler) Create(c *gin.Context) {
	var req service.InstallmentInput
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}
	if err := util.ValidateDayOfMonth(req.PaymentDay); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}
	inst, err := h.Installments.Add(req)
	if err != nil {
		respondErr(c, err)
		return
	}
	util.Success(c, util.Response{"installment": inst})
}

func (h *InstallmentHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req service.InstallmentInput
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}
	if err := util.ValidateDayOfMonth(req.PaymentDay); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}
	inst, err := h.Installments.Update(id, req)
	if err != nil {
		respondErr(c, err)
		return
	}
	util.Success(c, util.Response{"installment": inst})
}

func (h *InstallmentHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.Installments.Delete(id); err != nil {
		respondErr(c, err)
		return
	}
	util.Success(c, util.Response{"message": "installment deleted"})
}
