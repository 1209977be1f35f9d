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

// SuggestionService owns the suggestion lifecycle, including the vote
// bookkeeping. Vote counts are always derived from the vote rows.
type SuggestionService struct {
	DB *gorm.DB
}

func NewSuggestionService(db *gorm.DB) *SuggestionService {
	return &SuggestionService{DB: db}
}

type CreateSuggestionInput struct {
	Title        string
	Description  string
	DepartmentID uuid.UUID
}

type UpdateSuggestionInput struct {
	Title        *string
	Description  *string
	Status       *models.SuggestionStatus
	DepartmentID *uuid.UUID
}

func (s *SuggestionService) Create(actor policy.Actor, in CreateSuggestionInput) (*models.Suggestion, error) {
	if err := s.checkDepartmentExists(in.DepartmentID); err != nil {
		return nil, err
	}

	userID := actor.ID
	suggestion := models.Suggestion{
		Title:        in.Title,
		Description:  in.Description,
		DepartmentID: in.DepartmentID,
		Status:       models.SuggestionPending,
		UserID:       &userID,
	}
	if err := s.DB.Create(&suggestion).Error; err != nil {
		zap.L().Error("create suggestion failed",
			zap.String("actor", actor.ID.String()), zap.Error(err))
		return nil, apperr.Internal("failed to create suggestion", err)
	}
	return s.reload(suggestion.ID)
}

func (s *SuggestionService) List(actor policy.Actor) ([]models.Suggestion, error) {
	query := s.DB.Preload("User").Preload("Department").Order("created_at DESC")
	if !actor.IsPrivileged() {
		query = query.Where("user_id = ?", actor.ID)
	}

	var suggestions []models.Suggestion
	if err := query.Find(&suggestions).Error; err != nil {
		zap.L().Error("list suggestions failed",
			zap.String("actor", actor.ID.String()), zap.Error(err))
		return nil, apperr.Internal("failed to fetch suggestions", err)
	}
	return suggestions, nil
}

func (s *SuggestionService) Get(actor policy.Actor, id uuid.UUID) (*models.Suggestion, error) {
	suggestion, err := s.reload(id)
	if err != nil {
		return nil, err
	}
	if !policy.CanAccessSuggestion(actor, suggestion) {
		return nil, apperr.Unauthorized("unauthorized to view this suggestion")
	}
	return suggestion, nil
}

func (s *SuggestionService) Update(actor policy.Actor, id uuid.UUID, in UpdateSuggestionInput) (*models.Suggestion, error) {
	var suggestion models.Suggestion
	if err := s.DB.First(&suggestion, "id = ?", id).Error; err != nil {
		return nil, s.wrapLookup(err, id, actor)
	}
	if !policy.CanAccessSuggestion(actor, &suggestion) {
		return nil, apperr.Unauthorized("unauthorized to update this suggestion")
	}

	updates := map[string]interface{}{}
	if in.Title != nil {
		updates["title"] = *in.Title
	}
	if in.Description != nil {
		updates["description"] = *in.Description
	}

	if in.Status != nil || in.DepartmentID != nil {
		if !policy.CanManageStatus(actor) {
			return nil, apperr.Unauthorized("unauthorized to update these fields")
		}
		if in.Status != nil {
			if !in.Status.Valid() {
				return nil, apperr.Validation("invalid suggestion status")
			}
			if !suggestion.Status.CanTransition(*in.Status) {
				return nil, apperr.Conflict("invalid status transition from " + string(suggestion.Status) + " to " + string(*in.Status))
			}
			updates["status"] = *in.Status
		}
		if in.DepartmentID != nil {
			if err := s.checkDepartmentExists(*in.DepartmentID); err != nil {
				return nil, err
			}
			updates["department_id"] = *in.DepartmentID
		}
		updates["updated_by"] = actor.ID
	}

	if len(updates) > 0 {
		if err := s.DB.Model(&suggestion).Updates(updates).Error; err != nil {
			zap.L().Error("update suggestion failed",
				zap.String("actor", actor.ID.String()),
				zap.String("suggestion", id.String()), zap.Error(err))
			return nil, apperr.Internal("failed to update suggestion", err)
		}
	}
	return s.reload(id)
}

func (s *SuggestionService) Delete(actor policy.Actor, id uuid.UUID) error {
	var suggestion models.Suggestion
	if err := s.DB.First(&suggestion, "id = ?", id).Error; err != nil {
		return s.wrapLookup(err, id, actor)
	}
	if !policy.CanDeleteSuggestion(actor, &suggestion) {
		return apperr.Unauthorized("unauthorized to delete this suggestion")
	}
	if err := s.DB.Delete(&suggestion).Error; err != nil {
		zap.L().Error("delete suggestion failed",
			zap.String("actor", actor.ID.String()),
			zap.String("suggestion", id.String()), zap.Error(err))
		return apperr.Internal("failed to delete suggestion", err)
	}
	return nil
}

// Vote records one vote per user per suggestion. The existence check and the
// insert run in one transaction; the composite primary key on the vote row
// backs the same invariant at the store level.
func (s *SuggestionService) Vote(actor policy.Actor, id uuid.UUID) (int64, error) {
	if !policy.CanVote(actor) {
		return 0, apperr.Unauthorized("anonymous users cannot vote")
	}

	var suggestion models.Suggestion
	if err := s.DB.First(&suggestion, "id = ?", id).Error; err != nil {
		return 0, s.wrapLookup(err, id, actor)
	}

	var count int64
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&models.SuggestionVote{}).
			Where("suggestion_id = ? AND user_id = ?", id, actor.ID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return apperr.Conflict("you have already voted for this suggestion")
		}
		vote := models.SuggestionVote{SuggestionID: id, UserID: actor.ID}
		if err := tx.Create(&vote).Error; err != nil {
			return err
		}
		return tx.Model(&models.SuggestionVote{}).
			Where("suggestion_id = ?", id).Count(&count).Error
	})
	if err != nil {
		if apperr.KindOf(err) == apperr.KindConflict {
			return 0, err
		}
		zap.L().Error("vote failed", zap.String("actor", actor.ID.String()),
			zap.String("suggestion", id.String()), zap.Error(err))
		return 0, apperr.Internal("failed to record vote", err)
	}
	return count, nil
}

// Unvote removes the caller's vote; removing a vote that does not exist is
// a conflict, so a retried unvote cannot silently succeed twice.
func (s *SuggestionService) Unvote(actor policy.Actor, id uuid.UUID) (int64, error) {
	if !policy.CanVote(actor) {
		return 0, apperr.Unauthorized("anonymous users cannot vote")
	}

	var suggestion models.Suggestion
	if err := s.DB.First(&suggestion, "id = ?", id).Error; err != nil {
		return 0, s.wrapLookup(err, id, actor)
	}

	var count int64
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("suggestion_id = ? AND user_id = ?", id, actor.ID).
			Delete(&models.SuggestionVote{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return apperr.Conflict("you have not voted for this suggestion")
		}
		return tx.Model(&models.SuggestionVote{}).
			Where("suggestion_id = ?", id).Count(&count).Error
	})
	if err != nil {
		if apperr.KindOf(err) == apperr.KindConflict {
			return 0, err
		}
		zap.L().Error("unvote failed", zap.String("actor", actor.ID.String()),
			zap.String("suggestion", id.String()), zap.Error(err))
		return 0, apperr.Internal("failed to remove vote", err)
	}
	return count, nil
}

// VotesCount derives the current count for a suggestion.
func (s *SuggestionService) VotesCount(id uuid.UUID) (int64, error) {
	var count int64
	if err := s.DB.Model(&models.SuggestionVote{}).
		Where("suggestion_id = ?", id).Count(&count).Error; err != nil {
		return 0, apperr.Internal("failed to count votes", err)
	}
	return count, nil
}

func (s *SuggestionService) reload(id uuid.UUID) (*models.Suggestion, error) {
	var suggestion models.Suggestion
	err := s.DB.Preload("User").Preload("Department").
		First(&suggestion, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("suggestion not found")
	}
	if err != nil {
		return nil, apperr.Internal("failed to fetch suggestion", err)
	}
	return &suggestion, nil
}

func (s *SuggestionService) wrapLookup(err error, id uuid.UUID, actor policy.Actor) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound("suggestion not found")
	}
	zap.L().Error("suggestion lookup failed",
		zap.String("actor", actor.ID.String()),
		zap.String("suggestion", id.String()), zap.Error(err))
	return apperr.Internal("failed to fetch suggestion", err)
}

func (s *SuggestionService) checkDepartmentExists(id uuid.UUID) error {
	var count int64
	if err := s.DB.Model(&models.Department{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return apperr.Internal("failed to verify department", err)
	}
	if count == 0 {
		return apperr.Validation("department does not exist")
	}
	return nil
}
