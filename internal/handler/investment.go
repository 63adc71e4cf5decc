package handler

import (
	"net/http"

	"github.com/danielalasn/pivot/internal/service"
	"github.com/danielalasn/pivot/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// InvestmentHandler exposes positions, trades, realized P/L and the
// live-priced portfolio views.
type InvestmentHandler struct {
	Investments *service.InvestmentService
}

func NewInvestmentHandler(db *gorm.DB, quotes service.Quoter) *InvestmentHandler {
	return &InvestmentHandler{Investments: service.NewInvestmentService(db, quotes)}
}

// List returns every position priced through the gateway, together
// with the aggregated summary and breakdown charts.
func (h *InvestmentHandler) List(c *gin.Context) {
	assets, err := h.Investments.ListLive(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	byTicker, byIndustry := h.Investments.PortfolioBreakdown(assets)
	util.Success(c, util.Response{
		"items":                 assets,
		"summary":               h.Investments.PortfolioSummary(assets),
		"breakdown_by_ticker":   byTicker,
		"breakdown_by_industry": byIndustry,
		"breakdown_by_type":     h.Investments.AssetTypeBreakdown(assets),
	})
}

func (h *InvestmentHandler) Detail(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	asset, err := h.Investments.Detail(c.Request.Context(), id)
	if err != nil {
		respondErr(c, err)
		return
	}
	util.Success(c, util.Response{"asset": asset})
}

type addPositionReq struct {
	Ticker          string  `json:"ticker" binding:"required"`
	Shares          float64 `json:"shares" binding:"required"`
	TotalInvestment float64 `json:"total_investment"`
	AssetType       string  `json:"asset_type"`
	AccountID       *uint   `json:"account_id"`
}

func (h *InvestmentHandler) Create(c *gin.Context) {
	var req addPositionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}
	pos, err := h.Investments.AddPosition(req.Ticker, req.Shares, req.TotalInvestment, req.AssetType, req.AccountID)
	if err != nil {
		respondErr(c, err)
		return
	}
	util.Success(c, util.Response{"position": pos})
}

type tradeReq struct {
	Ticker string  `json:"ticker" binding:"required"`
	Shares float64 `json:"shares" binding:"required"`
	Price  float64 `json:"price" binding:"required"`
}

func (h *InvestmentHandler) Buy(c *gin.Context) {
	var req tradeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}
	pos, err := h.Investments.Buy(req.Ticker, req.Shares, req.Price)
	if err != nil {
		respondErr(c, err)
		return
	}
	util.Success(c, util.Response{"position": pos})
}

func (h *InvestmentHandler) Sell(c *gin.Context) {
	var req tradeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}
	trade, err := h.Investments.Sell(req.Ticker, req.Shares, req.Price)
	if err != nil {
		respondErr(c, err)
		return
	}
	util.Success(c, util.Response{"trade": trade})
}

type updatePositionReq struct {
	Shares          float64 `json:"shares"`
	TotalInvestment float64 `json:"total_investment"`
}

func (h *InvestmentHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req updatePositionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}
	pos, err := h.Investments.UpdatePosition(id, req.Shares, req.TotalInvestment)
	if err != nil {
		respondErr(c, err)
		return
	}
	util.Success(c, util.Response{"position": pos})
}

func (h *InvestmentHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.Investments.DeletePosition(id); err != nil {
		respondErr(c, err)
		return
	}
	util.Success(c, util.Response{"message": "position deleted"})
}

// UndoTrade reverses the history row in :id against the position.
func (h *InvestmentHandler) UndoTrade(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.Investments.UndoTrade(id); err != nil {
		respondErr(c, err)
		return
	}
	util.Success(c, util.Response{"message": "trade reverted"})
}

// History lists trades; ?type=Buy or ?type=Sell narrows the list.
func (h *InvestmentHandler) History(c *gin.Context) {
	trades, err := h.Investments.History(c.Query("type"))
	if err != nil {
		respondErr(c, err)
		return
	}
	util.Success(c, util.Response{"items": trades})
}

// SaleOptions lists open positions for the sell picker.
func (h *InvestmentHandler) SaleOptions(c *gin.Context) {
	options, err := h.Investments.SaleOptions()
	if err != nil {
		respondErr(c, err)
		return
	}
	util.Success(c, util.Response{"items": options})
}

// RealizedPL returns the total realized gain and the capital ever
// deployed.
func (h *InvestmentHandler) RealizedPL(c *gin.Context) {
	total, err := h.Investments.RealizedPLTotal()
	if err != nil {
		respondErr(c, err)
		return
	}
	cost, err := h.Investments.TotalHistoricalCost()
	if err != nil {
		respondErr(c, err)
		return
	}
	util.Success(c, util.Response{
		"realized_pl_total":     total,
		"total_historical_cost": cost,
	})
}

type adjustmentReq struct {
	Ticker      string  `json:"ticker" binding:"required"`
	RealizedPL  float64 `json:"realized_pl"`
	Description string  `json:"description"`
}

func (h *InvestmentHandler) ListAdjustments(c *gin.Context) {
	items, err := h.Investments.Adjustments()
	if err != nil {
		respondErr(c, err)
		return
	}
	util.Success(c, util.Response{"items": items})
}

func (h *InvestmentHandler) CreateAdjustment(c *gin.Context) {
	var req adjustmentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}
	adj, err := h.Investments.AddAdjustment(req.Ticker, req.RealizedPL, req.Description)
	if err != nil {
		respondErr(c, err)
		return
	}
	util.Success(c, util.Response{"adjustment": adj})
}

func (h *InvestmentHandler) UpdateAdjustment(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req adjustmentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}
	if err := h.Investments.UpdateAdjustment(id, req.RealizedPL, req.Ticker); err != nil {
		respondErr(c, err)
		return
	}
	util.Success(c, util.Response{"message": "adjustment updated"})
}
