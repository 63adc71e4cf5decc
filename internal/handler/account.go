package handler

import (
	"net/http"

	"github.com/danielalasn/pivot/internal/service"
	"github.com/danielalasn/pivot/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AccountHandler exposes account CRUD, ordering, picker options and
// credit-card payments.
type AccountHandler struct {
	Accounts *service.AccountService
}

func NewAccountHandler(db *gorm.DB) *AccountHandler {
	return &AccountHandler{Accounts: service.NewAccountService(db)}
}

// List returns accounts in display order. ?group=Credit narrows to
// cards, anything else to Debit/Cash.
func (h *AccountHandler) List(c *gin.Context) {
	group := c.DefaultQuery("group", service.GroupStandard)
	accounts, err := h.Accounts.ListByCategory(group)
	if err != nil {
		respondErr(c, err)
		return
	}
	util.Success(c, util.Response{"items": accounts})
}

func (h *AccountHandler) Create(c *gin.Context) {
	var req service.AccountInput
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}
	acc, err := h.Accounts.Add(req)
	if err != nil {
		respondErr(c, err)
		return
	}
	util.Success(c, util.Response{"account": acc})
}

func (h *AccountHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req service.AccountInput
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}
	acc, err := h.Accounts.Update(id, req)
	if err != nil {
		respondErr(c, err)
		return
	}
	util.Success(c, util.Response{"account": acc})
}

func (h *AccountHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.Accounts.Delete(id); err != nil {
		respondErr(c, err)
		return
	}
	util.Success(c, util.Response{"message": "account deleted"})
}

type reorderReq struct {
	Direction string `json:"direction" binding:"required,oneof=up down"`
	Group     string `json:"group"`
}

func (h *AccountHandler) Reorder(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req reorderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}
	if req.Group == "" {
		req.Group = service.GroupStandard
	}
	if err := h.Accounts.Reorder(id, req.Direction, req.Group); err != nil {
		respondErr(c, err)
		return
	}
	util.Success(c, util.Response{"message": "order updated"})
}

// Options returns the labeled picker entries including the reserve.
func (h *AccountHandler) Options(c *gin.Context) {
	options, err := h.Accounts.Options()
	if err != nil {
		respondErr(c, err)
		return
	}
	util.Success(c, util.Response{"items": options})
}

type payCardReq struct {
	Amount      float64 `json:"amount" binding:"required"`
	AccountID   *uint   `json:"account_id"`
	FromReserve bool    `json:"from_reserve"`
}

// PayCard applies a payment to the card in :id, funded from an
// account, the reserve, or externally.
func (h *AccountHandler) PayCard(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req payCardReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}
	source := service.CardPaymentSource{AccountID: req.AccountID, FromReserve: req.FromReserve}
	if err := h.Accounts.PayCard(id, req.Amount, source); err != nil {
		respondErr(c, err)
		return
	}
	util.Success(c, util.Response{"message": "payment applied"})
}
