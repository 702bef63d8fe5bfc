package service

import (
	"errors"
	"strings"

	"helphub-api/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RegisterUserInput carries a signup. PasswordHash is hashed by the caller;
// the service never sees plaintext credentials.
type RegisterUserInput struct {
	Name         string
	Email        string
	PasswordHash string
	Role         models.UserRole
	CategoryID   *uint // volunteer specialty, ignored for other roles
}

// RegisterUser creates an account in Pending status. Registering as a
// Volunteer provisions the 1:1 volunteer profile in the same transaction.
// Admin accounts cannot be self-registered.
func (s *Service) RegisterUser(in RegisterUserInput) (*models.User, error) {
	if !in.Role.Valid() || in.Role == models.RoleAdmin {
		return nil, validationf("role must be one of: PIN, CSR, Platform Manager, Volunteer")
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, validationf("name is required")
	}

	user := models.User{
		Name:         strings.TrimSpace(in.Name),
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		PasswordHash: in.PasswordHash,
		Role:         in.Role,
		Status:       models.UserPending,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).
			Where("email = ?", user.Email).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return conflictf("email is already registered")
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		if in.Role == models.RoleVolunteer {
			if in.CategoryID != nil {
				var cat models.Category
				if err := tx.First(&cat, *in.CategoryID).Error; err != nil {
					return wrapDBErr(err, "category not found")
				}
			}
			return tx.Create(&models.Volunteer{
				UserID:      user.ID,
				CategoryID:  in.CategoryID,
				IsAvailable: true,
			}).Error
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("user registered",
		zap.Uint("user_id", user.ID),
		zap.String("role", string(user.Role)))
	return &user, nil
}

// ListUsers returns all accounts (admin), optionally filtered by role.
func (s *Service) ListUsers(actor Actor, role models.UserRole) ([]models.User, error) {
	if actor.Role != models.RoleAdmin {
		return nil, unauthorizedf("only admins can list users")
	}
	query := s.db.Order("created_at desc")
	if role != "" {
		query = query.Where("role = ?", role)
	}
	var users []models.User
	err := query.Find(&users).Error
	return users, err
}

// ActivateUser flips an account to Active (admin).
func (s *Service) ActivateUser(userID uint, actor Actor) (*models.User, error) {
	return s.setUserStatus(userID, models.UserActive, actor)
}

// SuspendUser flips an account to Suspended (admin).
func (s *Service) SuspendUser(userID uint, actor Actor) (*models.User, error) {
	return s.setUserStatus(userID, models.UserSuspended, actor)
}

func (s *Service) setUserStatus(userID uint, status models.UserStatus, actor Actor) (*models.User, error) {
	if actor.Role != models.RoleAdmin {
		return nil, unauthorizedf("only admins can change account status")
	}
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, wrapDBErr(err, "user not found")
	}
	if err := s.db.Model(&user).Update("status", status).Error; err != nil {
		return nil, err
	}
	user.Status = status
	s.log.Info("user status changed",
		zap.Uint("user_id", userID),
		zap.String("status", string(status)))
	return &user, nil
}

// UpdateUserProfile edits an account's name and email (admin). Role is
// immutable.
func (s *Service) UpdateUserProfile(userID uint, name, email string, actor Actor) (*models.User, error) {
	if actor.Role != models.RoleAdmin {
		return nil, unauthorizedf("only admins can edit profiles")
	}
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" {
		return nil, validationf("name and email are required")
	}

	var user models.User
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, userID).Error; err != nil {
			return wrapDBErr(err, "user not found")
		}
		var count int64
		if err := tx.Model(&models.User{}).
			Where("email = ? AND id <> ?", email, userID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return conflictf("email is already in use")
		}
		user.Name = name
		user.Email = email
		return tx.Save(&user).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUser removes an account and everything hanging off it in one
// transaction: the user's own requests (freeing any volunteers working
// them), their shortlist entries and reviews, and, for volunteers, their
// profile with all current assignments returned to Pending. Either the whole
// cascade commits or none of it does.
func (s *Service) DeleteUser(userID uint, actor Actor) error {
	if actor.Role != models.RoleAdmin {
		return unauthorizedf("only admins can delete users")
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, userID).Error; err != nil {
			return wrapDBErr(err, "user not found")
		}

		// Requests the user created: free the volunteers working them,
		// then delete the requests and their satellites.
		var ownRequests []models.Request
		if err := tx.Where("creator_id = ?", userID).Find(&ownRequests).Error; err != nil {
			return err
		}
		touched := map[uint]bool{}
		for _, req := range ownRequests {
			if req.VolunteerID != nil {
				touched[*req.VolunteerID] = true
			}
			if err := tx.Where("request_id = ?", req.ID).Delete(&models.Shortlist{}).Error; err != nil {
				return err
			}
			if err := tx.Where("request_id = ?", req.ID).Delete(&models.RequestStatusHistory{}).Error; err != nil {
				return err
			}
			if err := tx.Where("request_id = ?", req.ID).Delete(&models.Review{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("creator_id = ?", userID).Delete(&models.Request{}).Error; err != nil {
			return err
		}

		if err := tx.Where("user_id = ?", userID).Delete(&models.Shortlist{}).Error; err != nil {
			return err
		}
		if err := tx.Where("author_id = ?", userID).Delete(&models.Review{}).Error; err != nil {
			return err
		}

		// Volunteer profile: hand active assignments back to the pool,
		// drop reviews about the volunteer, drop the profile.
		if user.Role == models.RoleVolunteer {
			var vol models.Volunteer
			err := tx.Where("user_id = ?", userID).First(&vol).Error
			if err == nil {
				// Active assignments go back to the pool; completed ones
				// keep their status but lose the dangling reference.
				if err := tx.Model(&models.Request{}).
					Where("volunteer_id = ? AND status IN ?", vol.ID, activeStatuses).
					Updates(map[string]interface{}{
						"status":       models.RequestPending,
						"volunteer_id": nil,
					}).Error; err != nil {
					return err
				}
				if err := tx.Model(&models.Request{}).
					Where("volunteer_id = ?", vol.ID).
					Update("volunteer_id", nil).Error; err != nil {
					return err
				}
				if err := tx.Where("volunteer_id = ?", vol.ID).Delete(&models.Review{}).Error; err != nil {
					return err
				}
				if err := tx.Delete(&vol).Error; err != nil {
					return err
				}
				delete(touched, vol.ID)
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
		}

		for volID := range touched {
			if err := recomputeAvailability(tx, volID); err != nil {
				return err
			}
		}
		return tx.Delete(&user).Error
	})
	if err != nil {
		return err
	}

	s.log.Info("user deleted", zap.Uint("user_id", userID))
	return nil
}
