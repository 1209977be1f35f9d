package services

import (
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/unihub-dz/campus-report-backend/apperr"
	"github.com/unihub-dz/campus-report-backend/models"
	"github.com/unihub-dz/campus-report-backend/policy"
)

// ReportService owns the report lifecycle: creation, role-scoped reads,
// field-masked updates, status transitions and deletion.
type ReportService struct {
	DB *gorm.DB
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{DB: db}
}

type CreateReportInput struct {
	Title       string
	Description string
	CategoryID  uuid.UUID
	LocationID  uuid.UUID
}

type UpdateReportInput struct {
	Title        *string
	Description  *string
	Status       *models.ReportStatus
	CategoryID   *uuid.UUID
	LocationID   *uuid.UUID
	DepartmentID *uuid.UUID
}

func (s *ReportService) Create(actor policy.Actor, in CreateReportInput) (*models.Report, error) {
	if err := s.checkCategoryExists(in.CategoryID); err != nil {
		return nil, err
	}
	if err := s.checkLocationExists(in.LocationID); err != nil {
		return nil, err
	}

	userID := actor.ID
	report := models.Report{
		Title:       in.Title,
		Description: in.Description,
		CategoryID:  in.CategoryID,
		LocationID:  in.LocationID,
		Status:      models.ReportPending,
		UserID:      &userID, // always the caller, never client-supplied
	}
	if err := s.DB.Create(&report).Error; err != nil {
		zap.L().Error("create report failed",
			zap.String("actor", actor.ID.String()), zap.Error(err))
		return nil, apperr.Internal("failed to create report", err)
	}
	return s.reload(report.ID)
}

// List returns all reports for privileged actors and only the caller's own
// rows for everyone else.
func (s *ReportService) List(actor policy.Actor) ([]models.Report, error) {
	query := s.DB.Preload("User").Preload("Category").Preload("Location").
		Preload("Department").Order("created_at DESC")
	if !actor.IsPrivileged() {
		query = query.Where("user_id = ?", actor.ID)
	}

	var reports []models.Report
	if err := query.Find(&reports).Error; err != nil {
		zap.L().Error("list reports failed",
			zap.String("actor", actor.ID.String()), zap.Error(err))
		return nil, apperr.Internal("failed to fetch reports", err)
	}
	return reports, nil
}

func (s *ReportService) Get(actor policy.Actor, id uuid.UUID) (*models.Report, error) {
	report, err := s.reload(id)
	if err != nil {
		return nil, err
	}
	if !policy.CanAccessReport(actor, report) {
		return nil, apperr.Unauthorized("unauthorized to view this report")
	}
	return report, nil
}

func (s *ReportService) Update(actor policy.Actor, id uuid.UUID, in UpdateReportInput) (*models.Report, error) {
	var report models.Report
	if err := s.DB.First(&report, "id = ?", id).Error; err != nil {
		return nil, s.wrapLookup(err, id, actor)
	}
	if !policy.CanAccessReport(actor, &report) {
		return nil, apperr.Unauthorized("unauthorized to update this report")
	}

	updates := map[string]interface{}{}
	if in.Title != nil {
		updates["title"] = *in.Title
	}
	if in.Description != nil {
		updates["description"] = *in.Description
	}

	privilegedFields := in.Status != nil || in.CategoryID != nil ||
		in.LocationID != nil || in.DepartmentID != nil
	if privilegedFields {
		// Status and triage fields are rejected for non-privileged callers
		// even on their own reports.
		if !policy.CanManageStatus(actor) {
			return nil, apperr.Unauthorized("unauthorized to update these fields")
		}
		if in.Status != nil {
			if !in.Status.Valid() {
				return nil, apperr.Validation("invalid report status")
			}
			if !report.Status.CanTransition(*in.Status) {
				return nil, apperr.Conflict("invalid status transition from " + string(report.Status) + " to " + string(*in.Status))
			}
			updates["status"] = *in.Status
		}
		if in.CategoryID != nil {
			if err := s.checkCategoryExists(*in.CategoryID); err != nil {
				return nil, err
			}
			updates["category_id"] = *in.CategoryID
		}
		if in.LocationID != nil {
			if err := s.checkLocationExists(*in.LocationID); err != nil {
				return nil, err
			}
			updates["location_id"] = *in.LocationID
		}
		if in.DepartmentID != nil {
			var count int64
			if err := s.DB.Model(&models.Department{}).Where("id = ?", *in.DepartmentID).Count(&count).Error; err != nil {
				return nil, apperr.Internal("failed to verify department", err)
			}
			if count == 0 {
				return nil, apperr.Validation("department does not exist")
			}
			updates["department_id"] = *in.DepartmentID
		}
		updates["updated_by"] = actor.ID
	}

	if len(updates) > 0 {
		if err := s.DB.Model(&report).Updates(updates).Error; err != nil {
			zap.L().Error("update report failed",
				zap.String("actor", actor.ID.String()),
				zap.String("report", id.String()), zap.Error(err))
			return nil, apperr.Internal("failed to update report", err)
		}
	}
	return s.reload(id)
}

// UpdateStatus is the triage operation: privileged roles only, validated
// against the transition table. The optional comment is carried into the
// owner's notification, not stored on the report.
func (s *ReportService) UpdateStatus(actor policy.Actor, id uuid.UUID, status models.ReportStatus, comment string) (*models.Report, error) {
	var report models.Report
	if err := s.DB.First(&report, "id = ?", id).Error; err != nil {
		return nil, s.wrapLookup(err, id, actor)
	}
	if !policy.CanManageStatus(actor) {
		return nil, apperr.Unauthorized("unauthorized to update report status")
	}
	if !status.Valid() {
		return nil, apperr.Validation("invalid report status")
	}
	if !report.Status.CanTransition(status) {
		return nil, apperr.Conflict("invalid status transition from " + string(report.Status) + " to " + string(status))
	}

	if err := s.DB.Model(&report).Updates(map[string]interface{}{
		"status":     status,
		"updated_by": actor.ID,
	}).Error; err != nil {
		zap.L().Error("update report status failed",
			zap.String("actor", actor.ID.String()),
			zap.String("report", id.String()), zap.Error(err))
		return nil, apperr.Internal("failed to update report status", err)
	}

	updated, err := s.reload(id)
	if err != nil {
		return nil, err
	}
	NewNotificationService(s.DB).NotifyReportStatus(updated, actor, comment)
	return updated, nil
}

func (s *ReportService) Delete(actor policy.Actor, id uuid.UUID) error {
	var report models.Report
	if err := s.DB.First(&report, "id = ?", id).Error; err != nil {
		return s.wrapLookup(err, id, actor)
	}
	if !policy.CanDeleteReport(actor, &report) {
		return apperr.Unauthorized("unauthorized to delete this report")
	}
	if err := s.DB.Delete(&report).Error; err != nil {
		zap.L().Error("delete report failed",
			zap.String("actor", actor.ID.String()),
			zap.String("report", id.String()), zap.Error(err))
		return apperr.Internal("failed to delete report", err)
	}
	return nil
}

func (s *ReportService) reload(id uuid.UUID) (*models.Report, error) {
	var report models.Report
	err := s.DB.Preload("User").Preload("Category").Preload("Location").
		Preload("Department").First(&report, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("report not found")
	}
	if err != nil {
		return nil, apperr.Internal("failed to fetch report", err)
	}
	return &report, nil
}

func (s *ReportService) wrapLookup(err error, id uuid.UUID, actor policy.Actor) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound("report not found")
	}
	zap.L().Error("report lookup failed",
		zap.String("actor", actor.ID.String()),
		zap.String("report", id.String()), zap.Error(err))
	return apperr.Internal("failed to fetch report", err)
}

func (s *ReportService) checkCategoryExists(id uuid.UUID) error {
	var count int64
	if err := s.DB.Model(&models.Category{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return apperr.Internal("failed to verify category", err)
	}
	if count == 0 {
		return apperr.Validation("category does not exist")
	}
	return nil
}

func (s *ReportService) checkLocationExists(id uuid.UUID) error {
	var count int64
	if err := s.DB.Model(&models.Location{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return apperr.Internal("failed to verify location", err)
	}
	if count == 0 {
		return apperr.Validation("location does not exist")
	}
	return nil
}
