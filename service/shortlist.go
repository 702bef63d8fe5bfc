package service

import (
	"helphub-api/models"

	"gorm.io/gorm"
)

// ShortlistRequest bookmarks a request for the acting CSR. Adding the same
// request twice is a Conflict.
func (s *Service) ShortlistRequest(requestID uint, actor Actor) (*models.Shortlist, error) {
	if actor.Role != models.RoleCSR {
		return nil, unauthorizedf("only CSR staff can shortlist requests")
	}
	if err := s.requireActive(actor); err != nil {
		return nil, err
	}

	entry := models.Shortlist{UserID: actor.UserID, RequestID: requestID}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var req models.Request
		if err := tx.First(&req, requestID).Error; err != nil {
			return wrapDBErr(err, "request not found")
		}
		var count int64
		if err := tx.Model(&models.Shortlist{}).
			Where("user_id = ? AND request_id = ?", actor.UserID, requestID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return conflictf("request is already in your shortlist")
		}
		return tx.Create(&entry).Error
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// ListShortlist returns the acting CSR's bookmarked requests, newest first.
func (s *Service) ListShortlist(actor Actor) ([]models.Shortlist, error) {
	if actor.Role != models.RoleCSR {
		return nil, unauthorizedf("only CSR staff can view a shortlist")
	}
	var entries []models.Shortlist
	err := s.db.Preload("Request.Category").Preload("Request.Creator").
		Where("user_id = ?", actor.UserID).
		Order("created_at desc").
		Find(&entries).Error
	return entries, err
}
