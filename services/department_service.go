package services

import (
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/unihub-dz/campus-report-backend/apperr"
	"github.com/unihub-dz/campus-report-backend/models"
)

type DepartmentService struct {
	DB *gorm.DB
}

func NewDepartmentService(db *gorm.DB) *DepartmentService {
	return &DepartmentService{DB: db}
}

type DepartmentInput struct {
	NameAr string
	NameFr string
}

func (s *DepartmentService) Create(in DepartmentInput) (*models.Department, error) {
	if err := s.checkNamesFree(in, uuid.Nil); err != nil {
		return nil, err
	}
	department := models.Department{NameAr: in.NameAr, NameFr: in.NameFr}
	if err := s.DB.Create(&department).Error; err != nil {
		zap.L().Error("create department failed", zap.Error(err))
		return nil, apperr.Internal("failed to create department", err)
	}
	return &department, nil
}

func (s *DepartmentService) List() ([]models.Department, error) {
	var departments []models.Department
	if err := s.DB.Order("created_at").Find(&departments).Error; err != nil {
		return nil, apperr.Internal("failed to fetch departments", err)
	}
	return departments, nil
}

func (s *DepartmentService) Get(id uuid.UUID) (*models.Department, error) {
	var department models.Department
	err := s.DB.First(&department, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("department not found")
	}
	if err != nil {
		return nil, apperr.Internal("failed to fetch department", err)
	}
	return &department, nil
}

func (s *DepartmentService) Update(id uuid.UUID, in DepartmentInput) (*models.Department, error) {
	department, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := s.checkNamesFree(in, id); err != nil {
		return nil, err
	}
	department.NameAr = in.NameAr
	department.NameFr = in.NameFr
	if err := s.DB.Save(department).Error; err != nil {
		zap.L().Error("update department failed",
			zap.String("department", id.String()), zap.Error(err))
		return nil, apperr.Internal("failed to update department", err)
	}
	return department, nil
}

// Delete refuses to remove a department while any user, location, report or
// suggestion still references it. Check and delete run in one transaction so
// no referencing row can appear in between.
func (s *DepartmentService) Delete(id uuid.UUID) error {
	department, err := s.Get(id)
	if err != nil {
		return err
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		dependents := []struct {
			model  interface{}
			column string
		}{
			{&models.User{}, "department_id"},
			{&models.Location{}, "department_id"},
			{&models.Report{}, "department_id"},
			{&models.Suggestion{}, "department_id"},
		}
		for _, dep := range dependents {
			var count int64
			if err := tx.Model(dep.model).
				Where(dep.column+" = ?", id).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return apperr.Conflict("cannot delete department with related records")
			}
		}
		return tx.Delete(department).Error
	})
	if err != nil {
		if apperr.KindOf(err) == apperr.KindConflict {
			return err
		}
		zap.L().Error("delete department failed",
			zap.String("department", id.String()), zap.Error(err))
		return apperr.Internal("failed to delete department", err)
	}
	return nil
}

func (s *DepartmentService) checkNamesFree(in DepartmentInput, excludeID uuid.UUID) error {
	query := s.DB.Model(&models.Department{}).
		Where("name_ar = ? OR name_fr = ?", in.NameAr, in.NameFr)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return apperr.Internal("failed to verify department name", err)
	}
	if count > 0 {
		return apperr.Validation("department name already exists")
	}
	return nil
}
