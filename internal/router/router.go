package router

import (
	"github.com/danielalasn/pivot/internal/config"
	"github.com/danielalasn/pivot/internal/handler"
	"github.com/danielalasn/pivot/internal/market"
	"github.com/danielalasn/pivot/internal/middleware"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter wires the Gin engine and the full API surface.
func SetupRouter(cfg *config.Config, db *gorm.DB, gateway *market.Gateway) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	api := r.Group("/api")
	api.Use(middleware.AuditMiddleware(db))

	accountHandler := handler.NewAccountHandler(db)
	api.GET("/accounts", accountHandler.List)
	api.POST("/accounts", accountHandler.Create)
	api.PUT("/accounts/:id", accountHandler.Update)
	api.DELETE("/accounts/:id", accountHandler.Delete)
	api.POST("/accounts/:id/reorder", accountHandler.Reorder)
	api.POST("/accounts/:id/pay", accountHandler.PayCard)
	// static path kept outside /accounts/:id to avoid a route conflict
	api.GET("/account-options", accountHandler.Options)

	transactionHandler := handler.NewTransactionHandler(db)
	api.GET("/transactions", transactionHandler.List)
	api.GET("/transactions/:id", transactionHandler.Get)
	api.POST("/transactions", transactionHandler.Create)
	api.PUT("/transactions/:id", transactionHandler.Update)
	api.DELETE("/transactions/:id", transactionHandler.Delete)
	api.POST("/transfers", transactionHandler.Transfer)

	installmentHandler := handler.NewInstallmentHandler(db)
	api.GET("/accounts/:id/installments", installmentHandler.ListForAccount)
	api.POST("/installments", installmentHandler.Create)
	api.PUT("/installments/:id", installmentHandler.Update)
	api.DELETE("/installments/:id", installmentHandler.Delete)

	iouHandler := handler.NewIOUHandler(db)
	api.GET("/ious", iouHandler.ListPending)
	api.GET("/ious/:id", iouHandler.Get)
	api.POST("/ious", iouHandler.Create)
	api.PUT("/ious/:id", iouHandler.Update)
	api.DELETE("/ious/:id", iouHandler.Delete)
	api.POST("/ious/:id/pay", iouHandler.Pay)

	investmentHandler := handler.NewInvestmentHandler(db, gateway)
	api.GET("/investments", investmentHandler.List)
	api.GET("/investments/:id", investmentHandler.Detail)
	api.POST("/investments", investmentHandler.Create)
	api.PUT("/investments/:id", investmentHandler.Update)
	api.DELETE("/investments/:id", investmentHandler.Delete)
	api.POST("/investments/buy", investmentHandler.Buy)
	api.POST("/investments/sell", investmentHandler.Sell)
	api.GET("/sale-options", investmentHandler.SaleOptions)
	api.GET("/trades", investmentHandler.History)
	api.POST("/trades/:id/undo", investmentHandler.UndoTrade)
	api.GET("/realized-pl", investmentHandler.RealizedPL)
	api.GET("/adjustments", investmentHandler.ListAdjustments)
	api.POST("/adjustments", investmentHandler.CreateAdjustment)
	api.PUT("/adjustments/:id", investmentHandler.UpdateAdjustment)

	marketHandler := handler.NewMarketHandler(gateway)
	api.GET("/market/quote/:ticker", marketHandler.Quote)
	api.GET("/market/historical/:ticker", marketHandler.Historical)
	api.GET("/market/validate/:ticker", marketHandler.Validate)
	api.POST("/market/refresh", marketHandler.Refresh)
	api.GET("/market/timestamp", marketHandler.Timestamp)

	reportHandler := handler.NewReportHandler(db)
	api.GET("/networth", reportHandler.NetWorthBreakdown)
	api.GET("/networth/trend", reportHandler.Trend)
	api.GET("/credit/summary", reportHandler.CreditSummary)
	api.GET("/credit/cards", reportHandler.Cards)
	api.GET("/reports/categories", reportHandler.CategorySummary)
	api.GET("/reports/expenses", reportHandler.ExpenseByCategory)
	api.GET("/reports/banks", reportHandler.BankSummary)
	api.GET("/reports/account-names", reportHandler.AccountNameSummary)
	api.GET("/reports/account-kinds", reportHandler.AccountKindSummary)
	api.GET("/reports/account-types", reportHandler.AccountTypeSummary)
	api.GET("/reports/monthly", reportHandler.MonthlySummary)
	api.GET("/reports/informal", reportHandler.InformalSummary)
	api.GET("/reports/debt", reportHandler.FullDebtSummary)

	categoryHandler := handler.NewCategoryHandler(db)
	api.GET("/categories", categoryHandler.List)
	api.POST("/categories", categoryHandler.Create)
	api.GET("/subcategories", categoryHandler.Subcategories)
	api.POST("/subcategories", categoryHandler.CreateSubcategory)

	reserveHandler := handler.NewReserveHandler(db)
	api.GET("/reserve", reserveHandler.Get)
	api.PUT("/reserve", reserveHandler.Set)

	exportHandler := handler.NewExportHandler(db)
	api.GET("/export/csv", exportHandler.ExportCSV)
	api.GET("/export/xlsx", exportHandler.ExportXLSX)

	backupHandler := handler.NewBackupHandler(db, cfg.Database.Path, cfg.Backup.Dir)
	api.POST("/backups", backupHandler.Create)
	api.GET("/backups", backupHandler.List)
	api.GET("/backups/:id/download", backupHandler.Download)
	api.POST("/backups/:id/restore", backupHandler.Restore)
	api.DELETE("/backups/:id", backupHandler.Delete)

	return r
}
