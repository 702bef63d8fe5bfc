package service

import (
	"strings"
	"time"

	"helphub-api/models"
	"helphub-api/statemachine"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CreateRequestInput carries the fields a PIN user supplies for a new help
// request.
type CreateRequestInput struct {
	Title       string
	Description string
	CategoryID  uint
	ScheduledAt time.Time
}

// CreateRequest opens a new help request in Pending state.
func (s *Service) CreateRequest(actor Actor, in CreateRequestInput) (*models.Request, error) {
	if actor.Role != models.RolePIN {
		return nil, unauthorizedf("only PIN users can create requests")
	}
	if err := s.requireActive(actor); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Title) == "" {
		return nil, validationf("title is required")
	}
	if strings.TrimSpace(in.Description) == "" {
		return nil, validationf("description is required")
	}
	if in.ScheduledAt.IsZero() {
		return nil, validationf("scheduled time is required")
	}

	req := models.Request{
		Reference:   uuid.NewString(),
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		CategoryID:  in.CategoryID,
		Status:      models.RequestPending,
		ScheduledAt: in.ScheduledAt,
		CreatorID:   actor.UserID,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var cat models.Category
		if err := tx.First(&cat, in.CategoryID).Error; err != nil {
			return wrapDBErr(err, "category not found")
		}
		if err := tx.Create(&req).Error; err != nil {
			return err
		}
		return tx.Create(&models.RequestStatusHistory{
			RequestID: req.ID,
			ToStatus:  models.RequestPending,
			ChangedBy: actor.UserID,
			Note:      "Request created",
		}).Error
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("request created",
		zap.Uint("request_id", req.ID),
		zap.Uint("creator_id", actor.UserID))
	return &req, nil
}

// AcceptRequest moves a Pending request to Accepted (CSR triage).
func (s *Service) AcceptRequest(requestID uint, actor Actor) (*models.Request, error) {
	if actor.Role != models.RoleCSR {
		return nil, unauthorizedf("only CSR staff can accept requests")
	}
	if err := s.requireActive(actor); err != nil {
		return nil, err
	}

	var req models.Request
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&req, requestID).Error; err != nil {
			return wrapDBErr(err, "request not found")
		}
		if err := statemachine.CanTransition(req.Status, models.RequestAccepted, actor.Role); err != nil {
			return invalidStatef("%v", err)
		}
		now := time.Now()
		res := tx.Model(&models.Request{}).
			Where("id = ? AND status = ?", req.ID, models.RequestPending).
			Updates(map[string]interface{}{
				"status":      models.RequestAccepted,
				"accepted_at": now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return conflictf("request status changed concurrently, please retry")
		}
		if err := tx.Create(&models.RequestStatusHistory{
			RequestID:  req.ID,
			FromStatus: models.RequestPending,
			ToStatus:   models.RequestAccepted,
			ChangedBy:  actor.UserID,
			Note:       "Accepted by CSR",
		}).Error; err != nil {
			return err
		}
		req.Status = models.RequestAccepted
		req.AcceptedAt = &now
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("request accepted", zap.Uint("request_id", req.ID))
	return &req, nil
}

// AssignRequest attaches an available, active volunteer to a Pending or
// Accepted request.
//
// Availability and account status are re-validated inside the transaction,
// not trusted from whatever list the CSR picked from: the volunteer row is
// flipped busy with a conditional update, and the request transition is a
// conditional update keyed on its prior status. Whichever concurrent caller
// loses either race gets a Conflict, and the transaction rollback undoes the
// partial flip.
func (s *Service) AssignRequest(requestID, volunteerID uint, actor Actor) (*models.Request, error) {
	if actor.Role != models.RoleCSR {
		return nil, unauthorizedf("only CSR staff can assign requests")
	}
	if err := s.requireActive(actor); err != nil {
		return nil, err
	}

	var req models.Request
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&req, requestID).Error; err != nil {
			return wrapDBErr(err, "request not found")
		}
		var vol models.Volunteer
		if err := tx.Preload("User").First(&vol, volunteerID).Error; err != nil {
			return wrapDBErr(err, "volunteer not found")
		}

		if req.Status == models.RequestAssigned || req.Status == models.RequestCompleted {
			return invalidStatef("request has already been %s", strings.ToLower(string(req.Status)))
		}
		if err := statemachine.CanTransition(req.Status, models.RequestAssigned, actor.Role); err != nil {
			return invalidStatef("%v", err)
		}
		if vol.User.Status != models.UserActive {
			return unauthorizedf("%s does not have an active account", vol.User.Name)
		}
		if !vol.IsAvailable {
			return conflictf("%s is not currently available", vol.User.Name)
		}

		// The reads above may already be stale; the conditional updates
		// below are the authoritative guards.
		res := tx.Model(&models.Volunteer{}).
			Where("id = ? AND is_available = ?", vol.ID, true).
			Update("is_available", false)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return conflictf("%s is no longer available", vol.User.Name)
		}

		res = tx.Model(&models.Request{}).
			Where("id = ? AND status IN ? AND volunteer_id IS NULL",
				req.ID, []models.RequestStatus{models.RequestPending, models.RequestAccepted}).
			Updates(map[string]interface{}{
				"status":       models.RequestAssigned,
				"volunteer_id": vol.ID,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return conflictf("request was assigned concurrently")
		}

		if err := tx.Create(&models.RequestStatusHistory{
			RequestID:  req.ID,
			FromStatus: req.Status,
			ToStatus:   models.RequestAssigned,
			ChangedBy:  actor.UserID,
			Note:       "Assigned to " + vol.User.Name,
		}).Error; err != nil {
			return err
		}
		req.Status = models.RequestAssigned
		req.VolunteerID = &vol.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("request assigned",
		zap.Uint("request_id", req.ID),
		zap.Uint("volunteer_id", volunteerID))
	return &req, nil
}

// StartRequest confirms the assigned volunteer has begun working
// (Assigned -> In Progress).
//
// Starting a task that is already In Progress for the same volunteer is a
// no-op success, so a double-submitted confirmation never errors.
func (s *Service) StartRequest(requestID uint, actor Actor) (*models.Request, error) {
	if actor.Role != models.RoleVolunteer {
		return nil, unauthorizedf("only volunteers can start tasks")
	}
	if err := s.requireActive(actor); err != nil {
		return nil, err
	}

	var req models.Request
	err := s.db.Transaction(func(tx *gorm.DB) error {
		vol, err := volunteerForUser(tx, actor.UserID)
		if err != nil {
			return err
		}
		if err := tx.First(&req, requestID).Error; err != nil {
			return wrapDBErr(err, "request not found")
		}
		if req.VolunteerID == nil || *req.VolunteerID != vol.ID {
			return unauthorizedf("this request is not assigned to you")
		}
		if req.Status == models.RequestInProgress {
			return nil // idempotent
		}
		if err := statemachine.CanTransition(req.Status, models.RequestInProgress, actor.Role); err != nil {
			return invalidStatef("%v", err)
		}

		res := tx.Model(&models.Request{}).
			Where("id = ? AND status = ? AND volunteer_id = ?",
				req.ID, models.RequestAssigned, vol.ID).
			Update("status", models.RequestInProgress)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return conflictf("request status changed concurrently, please retry")
		}
		if err := recomputeAvailability(tx, vol.ID); err != nil {
			return err
		}
		if err := tx.Create(&models.RequestStatusHistory{
			RequestID:  req.ID,
			FromStatus: models.RequestAssigned,
			ToStatus:   models.RequestInProgress,
			ChangedBy:  actor.UserID,
			Note:       "Volunteer started working",
		}).Error; err != nil {
			return err
		}
		req.Status = models.RequestInProgress
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("request started", zap.Uint("request_id", req.ID))
	return &req, nil
}

// DeclineRequest lets the assigned volunteer hand a task back to the pool.
// The request returns to Accepted when a CSR had previously accepted it,
// Pending otherwise.
func (s *Service) DeclineRequest(requestID uint, actor Actor) (*models.Request, error) {
	if actor.Role != models.RoleVolunteer {
		return nil, unauthorizedf("only volunteers can decline tasks")
	}
	if err := s.requireActive(actor); err != nil {
		return nil, err
	}

	var req models.Request
	err := s.db.Transaction(func(tx *gorm.DB) error {
		vol, err := volunteerForUser(tx, actor.UserID)
		if err != nil {
			return err
		}
		if err := tx.First(&req, requestID).Error; err != nil {
			return wrapDBErr(err, "request not found")
		}
		if req.VolunteerID == nil || *req.VolunteerID != vol.ID {
			return unauthorizedf("this request is not assigned to you")
		}

		target := models.RequestPending
		if req.AcceptedAt != nil {
			target = models.RequestAccepted
		}
		if err := statemachine.CanTransition(req.Status, target, actor.Role); err != nil {
			return invalidStatef("%v", err)
		}

		res := tx.Model(&models.Request{}).
			Where("id = ? AND status = ? AND volunteer_id = ?", req.ID, req.Status, vol.ID).
			Updates(map[string]interface{}{
				"status":       target,
				"volunteer_id": nil,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return conflictf("request status changed concurrently, please retry")
		}
		if err := recomputeAvailability(tx, vol.ID); err != nil {
			return err
		}
		if err := tx.Create(&models.RequestStatusHistory{
			RequestID:  req.ID,
			FromStatus: req.Status,
			ToStatus:   target,
			ChangedBy:  actor.UserID,
			Note:       "Declined by volunteer",
		}).Error; err != nil {
			return err
		}
		req.Status = target
		req.VolunteerID = nil
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("request declined", zap.Uint("request_id", req.ID))
	return &req, nil
}

// CompleteRequest closes out a request. A CSR may complete any Assigned
// request; the assigned volunteer may complete their own Assigned or
// In Progress one. The performing volunteer's task counter goes up by
// exactly one and their availability is recomputed.
func (s *Service) CompleteRequest(requestID uint, actor Actor) (*models.Request, error) {
	if actor.Role != models.RoleCSR && actor.Role != models.RoleVolunteer {
		return nil, unauthorizedf("only CSR staff or the assigned volunteer can complete requests")
	}
	if err := s.requireActive(actor); err != nil {
		return nil, err
	}

	var req models.Request
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&req, requestID).Error; err != nil {
			return wrapDBErr(err, "request not found")
		}

		if actor.Role == models.RoleVolunteer {
			vol, err := volunteerForUser(tx, actor.UserID)
			if err != nil {
				return err
			}
			if req.VolunteerID == nil || *req.VolunteerID != vol.ID {
				return unauthorizedf("this request is not assigned to you")
			}
		} else if req.Status != models.RequestAssigned {
			return invalidStatef("only assigned requests can be completed")
		}
		if err := statemachine.CanTransition(req.Status, models.RequestCompleted, actor.Role); err != nil {
			return invalidStatef("%v", err)
		}

		res := tx.Model(&models.Request{}).
			Where("id = ? AND status = ?", req.ID, req.Status).
			Update("status", models.RequestCompleted)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return conflictf("request status changed concurrently, please retry")
		}

		if req.VolunteerID != nil {
			if err := tx.Model(&models.Volunteer{}).
				Where("id = ?", *req.VolunteerID).
				UpdateColumn("total_tasks_completed", gorm.Expr("total_tasks_completed + 1")).Error; err != nil {
				return err
			}
			if err := recomputeAvailability(tx, *req.VolunteerID); err != nil {
				return err
			}
		}
		if err := tx.Create(&models.RequestStatusHistory{
			RequestID:  req.ID,
			FromStatus: req.Status,
			ToStatus:   models.RequestCompleted,
			ChangedBy:  actor.UserID,
			Note:       "Request completed",
		}).Error; err != nil {
			return err
		}
		req.Status = models.RequestCompleted
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("request completed", zap.Uint("request_id", req.ID))
	return &req, nil
}

// DeleteRequest removes a request entirely (CSR or Admin). Completed
// requests are immutable history and cannot be deleted. An assigned
// volunteer is freed in the same transaction.
func (s *Service) DeleteRequest(requestID uint, actor Actor) error {
	if actor.Role != models.RoleCSR && actor.Role != models.RoleAdmin {
		return unauthorizedf("only CSR staff or admins can delete requests")
	}
	if err := s.requireActive(actor); err != nil {
		return err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var req models.Request
		if err := tx.First(&req, requestID).Error; err != nil {
			return wrapDBErr(err, "request not found")
		}
		if req.Status == models.RequestCompleted {
			return invalidStatef("completed requests cannot be deleted")
		}
		volID := req.VolunteerID

		if err := tx.Where("request_id = ?", req.ID).
			Delete(&models.Shortlist{}).Error; err != nil {
			return err
		}
		if err := tx.Where("request_id = ?", req.ID).
			Delete(&models.RequestStatusHistory{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&req).Error; err != nil {
			return err
		}
		if volID != nil {
			return recomputeAvailability(tx, *volID)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.Info("request deleted", zap.Uint("request_id", requestID))
	return nil
}
