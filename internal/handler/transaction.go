package handler

import (
	"net/http"

	"github.com/danielalasn/pivot/internal/service"
	"github.com/danielalasn/pivot/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// TransactionHandler exposes transaction CRUD and internal transfers.
type TransactionHandler struct {
	Transactions *service.TransactionService
}

func NewTransactionHandler(db *gorm.DB) *TransactionHandler {
	return &TransactionHandler{Transactions: service.NewTransactionService(db)}
}

func validateTransactionInput(in service.TransactionInput) error {
	if err := util.ValidateAmount(in.Amount); err != nil {
		return err
	}
	return util.ValidateDate(in.Date)
}

func (h *TransactionHandler) List(c *gin.Context) {
	items, err := h.Transactions.All()
	if err != nil {
		respondErr(c, err)
		return
	}
	util.Success(c, util.Response{"items": items})
}

func (h *TransactionHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	t, err := h.Transactions.ByID(id)
	if err != nil {
		respondErr(c, err)
		return
	}
	util.Success(c, util.Response{"transaction": t})
}

func (h *TransactionHandler) Create(c *gin.Context) {
	var req service.TransactionInput
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}
	if err := validateTransactionInput(req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}
	t, err := h.Transactions.Add(req)
	if err != nil {
		respondErr(c, err)
		return
	}
	util.Success(c, util.Response{"transaction": t})
}

func (h *TransactionHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req service.TransactionInput
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}
	if err := validateTransactionInput(req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}
	t, err := h.Transactions.Update(id, req)
	if err != nil {
		respondErr(c, err)
		return
	}
	util.Success(c, util.Response{"transaction": t})
}

func (h *TransactionHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.Transactions.Delete(id); err != nil {
		respondErr(c, err)
		return
	}
	util.Success(c, util.Response{"message": "transaction deleted"})
}

type transferReq struct {
	Date          string  `json:"date" binding:"required"`
	Name          string  `json:"name"`
	Amount        float64 `json:"amount" binding:"required"`
	SourceID      uint    `json:"source_id" binding:"required"`
	DestinationID uint    `json:"destination_id" binding:"required"`
}

// Transfer books the paired expense/income rows of an internal move.
func (h *TransactionHandler) Transfer(c *gin.Context) {
	var req transferReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}
	if err := util.ValidateAmount(req.Amount); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}
	err := h.Transactions.AddTransfer(req.Date, req.Name, req.Amount, req.SourceID, req.DestinationID)
	if err != nil {
		respondErr(c, err)
		return
	}
	util.Success(c, util.Response{"message": "transfer recorded"})
}
