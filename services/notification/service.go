package notification

import (
	"log"

	"uniportal/models"
	"uniportal/utils"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Service creates in-app notifications and fans out email copies.
// Creation is fire-and-forget from the caller's point of view:
// failures here are logged and never roll back the triggering
// operation.
type Service struct {
	DB *gorm.DB
}

// NewService creates a notification service
func NewService(db *gorm.DB) *Service {
	return &Service{DB: db}
}

// Create stores one notification row per user and emails each user
// asynchronously.
func (s *Service) Create(userIDs []uint, title, body, ntype, link string, data datatypes.JSON) {
	for _, userID := range userIDs {
		n := models.Notification{
			UserID: userID,
			Title:  title,
			Body:   body,
			Type:   ntype,
			Link:   link,
			Data:   data,
		}
		if err := s.DB.Create(&n).Error; err != nil {
			log.Printf("Failed to create notification for user %d: %v", userID, err)
			continue
		}

		go func(uid uint) {
			var user models.User
			if err := s.DB.Select("name, email").Where("id = ? AND is_deleted = false", uid).
				First(&user).Error; err != nil || user.Email == "" {
				return
			}
			if err := utils.SendNotificationEmail(user.Email, user.Name, title, body); err != nil {
				log.Printf("Failed to email notification to user %d: %v", uid, err)
			}
		}(userID)
	}
}

// ListForUser returns the user's notifications, newest first
func (s *Service) ListForUser(userID uint, limit int) ([]models.Notification, error) {
	if limit <= 0 {
		limit = 50
	}
	var notifications []models.Notification
	err := s.DB.Where("user_id = ? AND is_deleted = false", userID).
		Order("created_at desc").
		Limit(limit).
		Find(&notifications).Error
	return notifications, err
}

// MarkRead flags one notification as read
func (s *Service) MarkRead(userID, notificationID uint) error {
	return s.DB.Model(&models.Notification{}).
		Where("id = ? AND user_id = ? AND is_deleted = false", notificationID, userID).
		Update("is_read", true).Error
}
