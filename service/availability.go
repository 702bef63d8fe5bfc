package service

import (
	"helphub-api/models"

	"gorm.io/gorm"
)

// activeStatuses are the request states that count against a volunteer's
// availability.
var activeStatuses = []models.RequestStatus{
	models.RequestAssigned,
	models.RequestInProgress,
}

// recomputeAvailability derives is_available from the live count of active
// assignments held by the volunteer. It must run inside the same transaction
// as the transition that changed the assignment, so the cached flag can
// never drift from the real count.
func recomputeAvailability(tx *gorm.DB, volunteerID uint) error {
	var active int64
	if err := tx.Model(&models.Request{}).
		Where("volunteer_id = ? AND status IN ?", volunteerID, activeStatuses).
		Count(&active).Error; err != nil {
		return err
	}
	return tx.Model(&models.Volunteer{}).
		Where("id = ?", volunteerID).
		Update("is_available", active == 0).Error
}

// volunteerForUser resolves the volunteer profile behind an acting user.
func volunteerForUser(tx *gorm.DB, userID uint) (*models.Volunteer, error) {
	var vol models.Volunteer
	if err := tx.Where("user_id = ?", userID).First(&vol).Error; err != nil {
		return nil, wrapDBErr(err, "volunteer profile not found")
	}
	return &vol, nil
}
