package models

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category represents a spending or income category.
//
// Categories are maintained by the categorization subsystem; the projection
// engine only reads them. Income categories have no subcategories.
type Category struct {
	DefaultModel
	Name   string `gorm:"uniqueIndex:category_name"`
	Note   string
	Income bool
}

func (c *Category) BeforeSave(_ *gorm.DB) error {
	c.Name = strings.TrimSpace(c.Name)
	c.Note = strings.TrimSpace(c.Note)

	return nil
}

// SubCategory represents a subdivision of an expense category.
type SubCategory struct {
	DefaultModel
	Category   Category  `json:"-"`
	CategoryID uuid.UUID `gorm:"uniqueIndex:sub_category_name_category"`
	Name       string    `gorm:"uniqueIndex:sub_category_name_category"`
}

func (s *SubCategory) BeforeSave(_ *gorm.DB) error {
	s.Name = strings.TrimSpace(s.Name)
	return nil
}

func (s *SubCategory) BeforeCreate(tx *gorm.DB) error {
	_ = s.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*SubCategory)
	return s.checkIntegrity(tx, *toSave)
}

// checkIntegrity verifies references to other resources.
func (s *SubCategory) checkIntegrity(tx *gorm.DB, toSave SubCategory) error {
	return tx.First(&Category{}, toSave.CategoryID).Error
}
