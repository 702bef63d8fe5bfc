package service

import (
	"helphub-api/models"

	"gorm.io/gorm"
)

// ListRequestsForCreator returns the acting PIN user's own requests, newest
// first.
func (s *Service) ListRequestsForCreator(actor Actor) ([]models.Request, error) {
	var reqs []models.Request
	err := s.db.Preload("Category").Preload("Volunteer.User").
		Where("creator_id = ?", actor.UserID).
		Order("created_at desc").
		Find(&reqs).Error
	return reqs, err
}

// GetRequestForCreator returns one of the acting user's requests with full
// detail and bumps its view counter.
func (s *Service) GetRequestForCreator(requestID uint, actor Actor) (*models.Request, error) {
	var req models.Request
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Category").Preload("Volunteer.User").Preload("StatusHistory").
			First(&req, requestID).Error; err != nil {
			return wrapDBErr(err, "request not found")
		}
		if req.CreatorID != actor.UserID {
			return unauthorizedf("this request does not belong to you")
		}
		if err := tx.Model(&models.Request{}).
			Where("id = ?", req.ID).
			UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error; err != nil {
			return err
		}
		req.ViewCount++
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// ListRequests returns all requests for CSR/admin triage, optionally
// filtered by status.
func (s *Service) ListRequests(actor Actor, status models.RequestStatus) ([]models.Request, error) {
	if actor.Role != models.RoleCSR && actor.Role != models.RoleAdmin {
		return nil, unauthorizedf("only CSR staff or admins can list all requests")
	}
	query := s.db.Preload("Category").Preload("Creator").Preload("Volunteer.User")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	var reqs []models.Request
	err := query.Order("created_at desc").Find(&reqs).Error
	return reqs, err
}

// VolunteerTasks groups the acting volunteer's workload for their dashboard.
type VolunteerTasks struct {
	Volunteer models.Volunteer `json:"volunteer"`
	Upcoming  []models.Request `json:"upcoming"`
	Completed []models.Request `json:"completed"`
	Reviews   int64            `json:"total_reviews"`
	AvgRating *float64         `json:"avg_rating"`
}

// ListTasksForVolunteer returns the acting volunteer's active and completed
// tasks plus their review summary.
func (s *Service) ListTasksForVolunteer(actor Actor) (*VolunteerTasks, error) {
	if actor.Role != models.RoleVolunteer {
		return nil, unauthorizedf("only volunteers can view their task list")
	}
	vol, err := volunteerForUser(s.db, actor.UserID)
	if err != nil {
		return nil, err
	}

	out := VolunteerTasks{Volunteer: *vol}
	if err := s.db.Preload("Category").Preload("Creator").
		Where("volunteer_id = ? AND status IN ?", vol.ID, activeStatuses).
		Order("scheduled_at asc").
		Find(&out.Upcoming).Error; err != nil {
		return nil, err
	}
	if err := s.db.Preload("Category").
		Where("volunteer_id = ? AND status = ?", vol.ID, models.RequestCompleted).
		Order("updated_at desc").
		Find(&out.Completed).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Review{}).
		Where("volunteer_id = ?", vol.ID).
		Count(&out.Reviews).Error; err != nil {
		return nil, err
	}
	if out.Reviews > 0 {
		var avg float64
		if err := s.db.Model(&models.Review{}).
			Where("volunteer_id = ?", vol.ID).
			Select("AVG(rating)").Scan(&avg).Error; err != nil {
			return nil, err
		}
		out.AvgRating = &avg
	}
	return &out, nil
}
