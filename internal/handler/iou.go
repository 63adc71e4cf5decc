package handler

import (
	"net/http"

	"github.com/danielalasn/pivot/internal/service"
	"github.com/danielalasn/pivot/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// IOUHandler exposes the informal debt lifecycle.
type IOUHandler struct {
	IOUs *service.IOUService
}

func NewIOUHandler(db *gorm.DB) *IOUHandler {
	return &IOUHandler{IOUs: service.NewIOUService(db)}
}

func (h *IOUHandler) ListPending(c *gin.Context) {
	items, err := h.IOUs.ListPending()
	if err != nil {
		respondErr(c, err)
		return
	}
	util.Success(c, util.Response{"items": items})
}

func (h *IOUHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	iou, err := h.IOUs.ByID(id)
	if err != nil {
		respondErr(c, err)
		return
	}
	util.Success(c, util.Response{"iou": iou})
}

func (h *IOUHandler) Create(c *gin.Context) {
	var req service.IOUInput
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}
	iou, err := h.IOUs.Add(req)
	if err != nil {
		respondErr(c, err)
		return
	}
	util.Success(c, util.Response{"iou": iou})
}

func (h *IOUHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req service.IOUUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}
	iou, err := h.IOUs.Update(id, req)
	if err != nil {
		respondErr(c, err)
		return
	}
	util.Success(c, util.Response{"iou": iou})
}

func (h *IOUHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.IOUs.Delete(id); err != nil {
		respondErr(c, err)
		return
	}
	util.Success(c, util.Response{"message": "iou deleted"})
}

type payIOUReq struct {
	Amount    float64 `json:"amount" binding:"required"`
	AccountID *uint   `json:"account_id"`
}

// Pay books a partial or full payment, optionally moving the money on
// a source account.
func (h *IOUHandler) Pay(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req payIOUReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}
	iou, err := h.IOUs.Pay(id, req.Amount, req.AccountID)
	if err != nil {
		respondErr(c, err)
		return
	}
	util.Success(c, util.Response{"iou": iou})
}
