package handler

import (
	"github.com/danielalasn/pivot/internal/service"
	"github.com/danielalasn/pivot/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ReportHandler exposes the aggregate and chart endpoints.
type ReportHandler struct {
	NetWorth *service.NetWorthService
	Credit   *service.CreditService
	Reports  *service.ReportingService
}

func NewReportHandler(db *gorm.DB) *ReportHandler {
	return &ReportHandler{
		NetWorth: service.NewNetWorthService(db),
		Credit:   service.NewCreditService(db),
		Reports:  service.NewReportingService(db),
	}
}

func (h *ReportHandler) NetWorthBreakdown(c *gin.Context) {
	breakdown, err := h.NetWorth.Breakdown()
	if err != nil {
		respondErr(c, err)
		return
	}
	util.Success(c, util.Response{"breakdown": breakdown})
}

// Trend reconstructs daily net worth over ?from and ?to, both
// defaulting to today.
func (h *ReportHandler) Trend(c *gin.Context) {
	today := service.Today()
	from := c.DefaultQuery("from", today)
	to := c.DefaultQuery("to", today)
	points, err := h.NetWorth.HistoricalTrend(from, to)
	if err != nil {
		respondErr(c, err)
		return
	}
	util.Success(c, util.Response{"items": points})
}

func (h *ReportHandler) CreditSummary(c *gin.Context) {
	summary, err := h.Credit.Summary()
	if err != nil {
		respondErr(c, err)
		return
	}
	util.Success(c, util.Response{"summary": summary})
}

// Cards returns per-card availability, installment coverage and the
// next payment date.
func (h *ReportHandler) Cards(c *gin.Context) {
	cards, err := h.Credit.Cards()
	if err != nil {
		respondErr(c, err)
		return
	}
	util.Success(c, util.Response{"items": cards})
}

func (h *ReportHandler) CategorySummary(c *gin.Context) {
	rows, err := h.Reports.CategorySummary()
	if err != nil {
		respondErr(c, err)
		return
	}
	util.Success(c, util.Response{"items": rows})
}

func (h *ReportHandler) ExpenseByCategory(c *gin.Context) {
	rows, err := h.Reports.ExpenseByCategory()
	if err != nil {
		respondErr(c, err)
		return
	}
	util.Success(c, util.Response{"items": rows})
}

func (h *ReportHandler) BankSummary(c *gin.Context) {
	rows, err := h.Reports.BankSummary()
	if err != nil {
		respondErr(c, err)
		return
	}
	util.Success(c, util.Response{"items": rows})
}

func (h *ReportHandler) AccountNameSummary(c *gin.Context) {
	rows, err := h.Reports.AccountNameSummary()
	if err != nil {
		respondErr(c, err)
		return
	}
	util.Success(c, util.Response{"items": rows})
}

func (h *ReportHandler) AccountKindSummary(c *gin.Context) {
	rows, err := h.Reports.AccountKindSummary()
	if err != nil {
		respondErr(c, err)
		return
	}
	util.Success(c, util.Response{"items": rows})
}

func (h *ReportHandler) AccountTypeSummary(c *gin.Context) {
	summary, err := h.Reports.AccountTypeSummary()
	if err != nil {
		respondErr(c, err)
		return
	}
	util.Success(c, util.Response{"summary": summary})
}

func (h *ReportHandler) MonthlySummary(c *gin.Context) {
	rows, err := h.Reports.MonthlySummary()
	if err != nil {
		respondErr(c, err)
		return
	}
	util.Success(c, util.Response{"items": rows})
}

func (h *ReportHandler) InformalSummary(c *gin.Context) {
	summary, err := h.Reports.InformalSummary()
	if err != nil {
		respondErr(c, err)
		return
	}
	util.Success(c, util.Response{"summary": summary})
}

func (h *ReportHandler) FullDebtSummary(c *gin.Context) {
	summary, err := h.Reports.FullDebtSummary()
	if err != nil {
		respondErr(c, err)
		return
	}
	util.Success(c, util.Response{"summary": summary})
}
