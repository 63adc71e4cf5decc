package handler

import (
	"net/http"

	"github.com/danielalasn/pivot/internal/service"
	"github.com/danielalasn/pivot/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ReserveHandler exposes the abono reserve balance.
type ReserveHandler struct {
	Reserve *service.ReserveService
}

func NewReserveHandler(db *gorm.DB) *ReserveHandler {
	return &ReserveHandler{Reserve: service.NewReserveService(db)}
}

func (h *ReserveHandler) Get(c *gin.Context) {
	balance, err := h.Reserve.Get()
	if err != nil {
		respondErr(c, err)
		return
	}
	util.Success(c, util.Response{"balance": balance})
}

type reserveReq struct {
	Balance float64 `json:"balance"`
}

func (h *ReserveHandler) Set(c *gin.Context) {
	var req reserveReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}
	if err := h.Reserve.Set(req.Balance); err != nil {
		respondErr(c, err)
		return
	}
	util.Success(c, util.Response{"balance": req.Balance})
}
