package handler

import (
	"net/http"

	"github.com/danielalasn/pivot/internal/service"
	"github.com/danielalasn/pivot/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CategoryHandler exposes the category and subcategory catalog.
type CategoryHandler struct {
	Categories *service.CategoryService
}

func NewCategoryHandler(db *gorm.DB) *CategoryHandler {
	return &CategoryHandler{Categories: service.NewCategoryService(db)}
}

func (h *CategoryHandler) List(c *gin.Context) {
	names, err := h.Categories.Names()
	if err != nil {
		respondErr(c, err)
		return
	}
	util.Success(c, util.Response{"items": names})
}

type categoryReq struct {
	Name   string `json:"name" binding:"required"`
	Parent string `json:"parent"`
}

func (h *CategoryHandler) Create(c *gin.Context) {
	var req categoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}
	if err := h.Categories.Add(req.Name); err != nil {
		respondErr(c, err)
		return
	}
	util.Success(c, util.Response{"message": "category saved"})
}

// Subcategories lists the names under ?parent.
func (h *CategoryHandler) Subcategories(c *gin.Context) {
	parent := c.Query("parent")
	if parent == "" {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "parent is required")
		return
	}
	names, err := h.Categories.SubcategoriesFor(parent)
	if err != nil {
		respondErr(c, err)
		return
	}
	util.Success(c, util.Response{"items": names})
}

func (h *CategoryHandler) CreateSubcategory(c *gin.Context) {
	var req categoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}
	if err := h.Categories.AddSubcategory(req.Name, req.Parent); err != nil {
		respondErr(c, err)
		return
	}
	util.Success(c, util.Response{"message": "subcategory saved"})
}
