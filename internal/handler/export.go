package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/danielalasn/pivot/internal/models"
	"github.com/danielalasn/pivot/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// ExportHandler serves transaction exports as CSV and XLSX.
type ExportHandler struct {
	DB *gorm.DB
}

func NewExportHandler(db *gorm.DB) *ExportHandler {
	return &ExportHandler{DB: db}
}

// exportRow joins a transaction with its account name for the file.
type exportRow struct {
	models.Transaction
	AccountName string
}

func (h *ExportHandler) rows() ([]exportRow, error) {
	var rows []exportRow
	err := h.DB.Model(&models.Transaction{}).
		Select("transactions.*, accounts.name AS account_name").
		Joins("LEFT JOIN accounts ON accounts.id = transactions.account_id").
		Order("transactions.date DESC, transactions.id DESC").
		Scan(&rows).Error
	return rows, err
}

var exportHeaders = []string{"Fecha", "Nombre", "Monto", "Categoría", "Subcategoría", "Tipo", "Cuenta"}

// ExportCSV streams every transaction as a UTF-8 CSV.
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	rows, err := h.rows()
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"transactions_%s.csv\"",
		time.Now().Format("20060102")))

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	// UTF-8 BOM so spreadsheet apps detect the encoding
	c.Writer.Write([]byte{0xEF, 0xBB, 0xBF})

	writer.Write(exportHeaders)
	for _, r := range rows {
		writer.Write([]string{
			r.Date,
			r.Name,
			strconv.FormatFloat(r.Amount, 'f', 2, 64),
			r.Category,
			r.Subcategory,
			r.Kind,
			r.AccountName,
		})
	}
}

// ExportXLSX writes every transaction into a spreadsheet.
func (h *ExportHandler) ExportXLSX(c *gin.Context) {
	rows, err := h.rows()
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		return
	}

	f := excelize.NewFile()
	sheetName := "Transacciones"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "create sheet failed")
		return
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	for i, header := range exportHeaders {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}
	for idx, r := range rows {
		row := idx + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), r.Date)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), r.Name)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), r.Amount)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), r.Category)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), r.Subcategory)
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), r.Kind)
		f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), r.AccountName)
	}

	f.SetColWidth(sheetName, "A", "A", 12)
	f.SetColWidth(sheetName, "B", "B", 30)
	f.SetColWidth(sheetName, "C", "C", 12)
	f.SetColWidth(sheetName, "D", "E", 18)
	f.SetColWidth(sheetName, "F", "F", 10)
	f.SetColWidth(sheetName, "G", "G", 18)

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"transactions_%s.xlsx\"",
		time.Now().Format("20060102")))

	if err := f.Write(c.Writer); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "export failed")
	}
}
