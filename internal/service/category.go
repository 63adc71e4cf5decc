package service

import (
	"strings"

	"github.com/danielalasn/pivot/internal/models"

	"gorm.io/gorm"
)

// CategoryService manages the user-extendable category catalog used to
// label transactions. Deleting a category does not rewrite past rows.
type CategoryService struct {
	DB *gorm.DB
}

func NewCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{DB: db}
}

// Names lists every category name in alphabetical order.
func (s *CategoryService) Names() ([]string, error) {
	var names []string
	err := s.DB.Model(&models.Category{}).
		Order("name ASC").Pluck("name", &names).Error
	if err != nil {
		return nil, storagef(err)
	}
	return names, nil
}

// Add creates a category, ignoring exact duplicates.
func (s *CategoryService) Add(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return Validationf("category name is required")
	}
	var count int64
	if err := s.DB.Model(&models.Category{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return storagef(err)
	}
	if count > 0 {
		return nil
	}
	return storagef(s.DB.Create(&models.Category{Name: name}).Error)
}

// SubcategoriesFor lists subcategory names under one parent category.
func (s *CategoryService) SubcategoriesFor(parent string) ([]string, error) {
	var names []string
	err := s.DB.Model(&models.Subcategory{}).
		Where("parent_category = ?", parent).
		Order("name ASC").Pluck("name", &names).Error
	if err != nil {
		return nil, storagef(err)
	}
	return names, nil
}

// AddSubcategory creates a subcategory under a parent, ignoring exact
// duplicates within that parent.
func (s *CategoryService) AddSubcategory(name, parent string) error {
	name = strings.TrimSpace(name)
	parent = strings.TrimSpace(parent)
	if name == "" || parent == "" {
		return Validationf("subcategory and parent names are required")
	}
	var count int64
	err := s.DB.Model(&models.Subcategory{}).
		Where("name = ? AND parent_category = ?", name, parent).Count(&count).Error
	if err != nil {
		return storagef(err)
	}
	if count > 0 {
		return nil
	}
	return storagef(s.DB.Create(&models.Subcategory{Name: name, ParentCategory: parent}).Error)
}
