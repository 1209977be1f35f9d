package services

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/unihub-dz/campus-report-backend/apperr"
	"github.com/unihub-dz/campus-report-backend/models"
	"github.com/unihub-dz/campus-report-backend/policy"
	"github.com/unihub-dz/campus-report-backend/ws"
)

type NotificationService struct {
	DB *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{DB: db}
}

var reportStatusMessages = map[models.ReportStatus]string{
	models.ReportPending:    "Your report has been reopened",
	models.ReportInProgress: "Your report is being processed",
	models.ReportResolved:   "Your report has been resolved",
	models.ReportRejected:   "Your report has been rejected",
}

// NotifyReportStatus records a notification for the report owner and pushes
// a realtime badge update if the owner is connected. Failures here are
// logged, never surfaced: the status change already happened.
func (s *NotificationService) NotifyReportStatus(report *models.Report, actor policy.Actor, comment string) {
	if report.UserID == nil || *report.UserID == actor.ID {
		return
	}

	message := reportStatusMessages[report.Status] + ": \"" + report.Title + "\""
	if comment != "" {
		message += " — " + comment
	}

	reportID := report.ID
	notification := models.Notification{
		UserID:   *report.UserID,
		Title:    "Report status updated",
		Message:  message,
		Type:     "report_status",
		ReportID: &reportID,
	}
	if err := s.DB.Create(&notification).Error; err != nil {
		zap.L().Error("create notification failed",
			zap.String("report", report.ID.String()), zap.Error(err))
		return
	}

	ownerID := report.UserID.String()
	payload := map[string]interface{}{
		"type":      "report_status_notification",
		"title":     notification.Title,
		"message":   notification.Message,
		"report_id": report.ID,
		"status":    report.Status,
	}
	if data, err := json.Marshal(payload); err == nil {
		ws.H.BroadcastToUser(ownerID, websocket.TextMessage, data)
	}

	count, err := s.UnreadCount(*report.UserID)
	if err == nil {
		ws.SendBadgeUpdate(ownerID, count)
	}
}

func (s *NotificationService) ListForUser(userID uuid.UUID) ([]models.Notification, error) {
	var list []models.Notification
	if err := s.DB.Where("user_id = ?", userID).
		Order("created_at DESC").Find(&list).Error; err != nil {
		return nil, apperr.Internal("failed to fetch notifications", err)
	}
	return list, nil
}

func (s *NotificationService) UnreadCount(userID uuid.UUID) (int64, error) {
	var count int64
	if err := s.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error; err != nil {
		return 0, apperr.Internal("failed to count notifications", err)
	}
	return count, nil
}

// MarkRead marks one of the caller's notifications as read and refreshes
// the realtime badge.
func (s *NotificationService) MarkRead(userID, notificationID uuid.UUID) error {
	var notification models.Notification
	if err := s.DB.First(&notification, "id = ? AND user_id = ?", notificationID, userID).Error; err != nil {
		return apperr.NotFound("notification not found")
	}

	now := s.DB.NowFunc()
	if err := s.DB.Model(&notification).Updates(map[string]interface{}{
		"is_read": true,
		"read_at": &now,
	}).Error; err != nil {
		return apperr.Internal("failed to update notification", err)
	}

	if count, err := s.UnreadCount(userID); err == nil {
		ws.SendBadgeUpdate(userID.String(), count)
	}
	return nil
}

func (s *NotificationService) MarkAllRead(userID uuid.UUID) error {
	now := s.DB.NowFunc()
	if err := s.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Updates(map[string]interface{}{"is_read": true, "read_at": &now}).Error; err != nil {
		return apperr.Internal("failed to mark notifications read", err)
	}
	ws.SendBadgeUpdate(userID.String(), 0)
	return nil
}
