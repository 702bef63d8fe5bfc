package service

import (
	"helphub-api/models"
)

// VolunteerStat summarises one volunteer's performance for the platform
// dashboard.
type VolunteerStat struct {
	VolunteerID    uint     `json:"volunteer_id"`
	Name           string   `json:"name"`
	Category       string   `json:"category,omitempty"`
	TasksCompleted uint     `json:"tasks_completed"`
	ReviewCount    int64    `json:"review_count"`
	AvgRating      *float64 `json:"avg_rating"`
}

// ReviewSummary is one row of the recent-reviews feed.
type ReviewSummary struct {
	VolunteerName string `json:"volunteer_name"`
	RequestTitle  string `json:"request_title"`
	ReviewerName  string `json:"reviewer_name"`
	Rating        int    `json:"rating"`
	Comment       string `json:"comment,omitempty"`
}

// PlatformStats aggregates service-wide numbers for the platform manager.
type PlatformStats struct {
	TotalVolunteers     int64           `json:"total_volunteers"`
	TotalCompletedTasks int64           `json:"total_completed_tasks"`
	TotalReviews        int64           `json:"total_reviews"`
	OverallAvgRating    *float64        `json:"overall_avg_rating"`
	RatingDistribution  map[int]int64   `json:"rating_distribution"`
	Volunteers          []VolunteerStat `json:"volunteers"`
	RecentReviews       []ReviewSummary `json:"recent_reviews"`
}

// GetPlatformStats builds the platform manager dashboard payload.
func (s *Service) GetPlatformStats(actor Actor) (*PlatformStats, error) {
	if actor.Role != models.RolePlatformManager {
		return nil, unauthorizedf("only the platform manager can view platform statistics")
	}
	if err := s.requireActive(actor); err != nil {
		return nil, err
	}

	stats := PlatformStats{RatingDistribution: map[int]int64{}}
	if err := s.db.Model(&models.Volunteer{}).Count(&stats.TotalVolunteers).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Request{}).
		Where("status = ?", models.RequestCompleted).
		Count(&stats.TotalCompletedTasks).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Review{}).Count(&stats.TotalReviews).Error; err != nil {
		return nil, err
	}
	if stats.TotalReviews > 0 {
		var avg float64
		if err := s.db.Model(&models.Review{}).
			Select("AVG(rating)").Scan(&avg).Error; err != nil {
			return nil, err
		}
		stats.OverallAvgRating = &avg
	}
	for rating := 5; rating >= 1; rating-- {
		var count int64
		if err := s.db.Model(&models.Review{}).
			Where("rating = ?", rating).
			Count(&count).Error; err != nil {
			return nil, err
		}
		stats.RatingDistribution[rating] = count
	}

	var vols []models.Volunteer
	if err := s.db.Preload("User").Preload("Category").Find(&vols).Error; err != nil {
		return nil, err
	}
	for _, vol := range vols {
		stat := VolunteerStat{
			VolunteerID:    vol.ID,
			Name:           vol.User.Name,
			TasksCompleted: vol.TotalTasksCompleted,
		}
		if vol.Category != nil {
			stat.Category = vol.Category.Name
		}
		if err := s.db.Model(&models.Review{}).
			Where("volunteer_id = ?", vol.ID).
			Count(&stat.ReviewCount).Error; err != nil {
			return nil, err
		}
		if stat.ReviewCount > 0 {
			var avg float64
			if err := s.db.Model(&models.Review{}).
				Where("volunteer_id = ?", vol.ID).
				Select("AVG(rating)").Scan(&avg).Error; err != nil {
				return nil, err
			}
			stat.AvgRating = &avg
		}
		stats.Volunteers = append(stats.Volunteers, stat)
	}

	var recent []models.Review
	if err := s.db.Preload("Volunteer.User").Preload("Request").Preload("Author").
		Order("created_at desc").Limit(10).
		Find(&recent).Error; err != nil {
		return nil, err
	}
	for _, r := range recent {
		stats.RecentReviews = append(stats.RecentReviews, ReviewSummary{
			VolunteerName: r.Volunteer.User.Name,
			RequestTitle:  r.Request.Title,
			ReviewerName:  r.Author.Name,
			Rating:        r.Rating,
			Comment:       r.Comment,
		})
	}
	return &stats, nil
}
