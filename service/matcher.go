package service

import (
	"helphub-api/models"
)

// EligibleVolunteers lists volunteers a CSR may assign to the request:
// matching category, active account, currently available. Ordered by fewest
// completed tasks so work spreads out; the ordering is a fairness policy,
// not a guarantee — availability is re-checked at assignment time because
// this list is stale the moment it renders.
func (s *Service) EligibleVolunteers(requestID uint, actor Actor) ([]models.Volunteer, error) {
	if actor.Role != models.RoleCSR {
		return nil, unauthorizedf("only CSR staff can list eligible volunteers")
	}

	var req models.Request
	if err := s.db.First(&req, requestID).Error; err != nil {
		return nil, wrapDBErr(err, "request not found")
	}

	var vols []models.Volunteer
	err := s.db.
		Joins("JOIN users ON users.id = volunteers.user_id").
		Where("volunteers.category_id = ? AND volunteers.is_available = ? AND users.status = ?",
			req.CategoryID, true, models.UserActive).
		Order("volunteers.total_tasks_completed asc").
		Preload("User").Preload("Category").
		Find(&vols).Error
	return vols, err
}
