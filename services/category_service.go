package services

import (
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/unihub-dz/campus-report-backend/apperr"
	"github.com/unihub-dz/campus-report-backend/models"
)

type CategoryService struct {
	DB *gorm.DB
}

func NewCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{DB: db}
}

type CategoryInput struct {
	NameAr string
	NameFr string
}

func (s *CategoryService) Create(in CategoryInput) (*models.Category, error) {
	if err := s.checkNamesFree(in, uuid.Nil); err != nil {
		return nil, err
	}
	category := models.Category{NameAr: in.NameAr, NameFr: in.NameFr}
	if err := s.DB.Create(&category).Error; err != nil {
		zap.L().Error("create category failed", zap.Error(err))
		return nil, apperr.Internal("failed to create category", err)
	}
	return &category, nil
}

func (s *CategoryService) List() ([]models.Category, error) {
	var categories []models.Category
	if err := s.DB.Order("created_at").Find(&categories).Error; err != nil {
		return nil, apperr.Internal("failed to fetch categories", err)
	}
	return categories, nil
}

func (s *CategoryService) Get(id uuid.UUID) (*models.Category, error) {
	var category models.Category
	err := s.DB.First(&category, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("category not found")
	}
	if err != nil {
		return nil, apperr.Internal("failed to fetch category", err)
	}
	return &category, nil
}

func (s *CategoryService) Update(id uuid.UUID, in CategoryInput) (*models.Category, error) {
	category, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := s.checkNamesFree(in, id); err != nil {
		return nil, err
	}
	category.NameAr = in.NameAr
	category.NameFr = in.NameFr
	if err := s.DB.Save(category).Error; err != nil {
		zap.L().Error("update category failed",
			zap.String("category", id.String()), zap.Error(err))
		return nil, apperr.Internal("failed to update category", err)
	}
	return category, nil
}

// Delete is blocked while any report references the category.
func (s *CategoryService) Delete(id uuid.UUID) error {
	category, err := s.Get(id)
	if err != nil {
		return err
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Report{}).
			Where("category_id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return apperr.Conflict("cannot delete category with related reports")
		}
		return tx.Delete(category).Error
	})
	if err != nil {
		if apperr.KindOf(err) == apperr.KindConflict {
			return err
		}
		zap.L().Error("delete category failed",
			zap.String("category", id.String()), zap.Error(err))
		return apperr.Internal("failed to delete category", err)
	}
	return nil
}

func (s *CategoryService) checkNamesFree(in CategoryInput, excludeID uuid.UUID) error {
	query := s.DB.Model(&models.Category{}).
		Where("name_ar = ? OR name_fr = ?", in.NameAr, in.NameFr)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return apperr.Internal("failed to verify category name", err)
	}
	if count > 0 {
		return apperr.Validation("category name already exists")
	}
	return nil
}
