package services

import (
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/unihub-dz/campus-report-backend/apperr"
	"github.com/unihub-dz/campus-report-backend/models"
)

type LocationService struct {
	DB *gorm.DB
}

func NewLocationService(db *gorm.DB) *LocationService {
	return &LocationService{DB: db}
}

type LocationInput struct {
	NameAr       string
	NameFr       string
	DepartmentID uuid.UUID
}

func (s *LocationService) Create(in LocationInput) (*models.Location, error) {
	if err := s.checkDepartmentExists(in.DepartmentID); err != nil {
		return nil, err
	}
	location := models.Location{
		NameAr:       in.NameAr,
		NameFr:       in.NameFr,
		DepartmentID: in.DepartmentID,
	}
	if err := s.DB.Create(&location).Error; err != nil {
		zap.L().Error("create location failed", zap.Error(err))
		return nil, apperr.Internal("failed to create location", err)
	}
	return s.Get(location.ID)
}

func (s *LocationService) List() ([]models.Location, error) {
	var locations []models.Location
	if err := s.DB.Preload("Department").Order("created_at").Find(&locations).Error; err != nil {
		return nil, apperr.Internal("failed to fetch locations", err)
	}
	return locations, nil
}

func (s *LocationService) Get(id uuid.UUID) (*models.Location, error) {
	var location models.Location
	err := s.DB.Preload("Department").First(&location, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("location not found")
	}
	if err != nil {
		return nil, apperr.Internal("failed to fetch location", err)
	}
	return &location, nil
}

func (s *LocationService) Update(id uuid.UUID, in LocationInput) (*models.Location, error) {
	location, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := s.checkDepartmentExists(in.DepartmentID); err != nil {
		return nil, err
	}
	location.NameAr = in.NameAr
	location.NameFr = in.NameFr
	location.DepartmentID = in.DepartmentID
	if err := s.DB.Save(location).Error; err != nil {
		zap.L().Error("update location failed",
			zap.String("location", id.String()), zap.Error(err))
		return nil, apperr.Internal("failed to update location", err)
	}
	return s.Get(id)
}

// Delete is blocked while any report references the location. The dependency
// check and the delete share a transaction so a report filed in between
// cannot be orphaned.
func (s *LocationService) Delete(id uuid.UUID) error {
	location, err := s.Get(id)
	if err != nil {
		return err
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Report{}).
			Where("location_id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return apperr.Conflict("cannot delete location with related reports")
		}
		return tx.Delete(location).Error
	})
	if err != nil {
		if apperr.KindOf(err) == apperr.KindConflict {
			return err
		}
		zap.L().Error("delete location failed",
			zap.String("location", id.String()), zap.Error(err))
		return apperr.Internal("failed to delete location", err)
	}
	return nil
}

func (s *LocationService) checkDepartmentExists(id uuid.UUID) error {
	var count int64
	if err := s.DB.Model(&models.Department{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return apperr.Internal("failed to verify department", err)
	}
	if count == 0 {
		return apperr.Validation("department does not exist")
	}
	return nil
}
