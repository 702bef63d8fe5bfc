package service

import (
	"errors"

	"helphub-api/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SubmitReview records the single review a requester may leave on a
// completed request.
func (s *Service) SubmitReview(requestID uint, rating int, comment string, actor Actor) (*models.Review, error) {
	if err := s.requireActive(actor); err != nil {
		return nil, err
	}
	if rating < 1 || rating > 5 {
		return nil, validationf("rating must be between 1 and 5")
	}

	var review models.Review
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var req models.Request
		if err := tx.First(&req, requestID).Error; err != nil {
			return wrapDBErr(err, "request not found")
		}
		if req.CreatorID != actor.UserID {
			return unauthorizedf("only the request creator can leave a review")
		}
		if req.Status != models.RequestCompleted {
			return invalidStatef("only completed requests can be reviewed")
		}
		if req.VolunteerID == nil {
			return invalidStatef("request was completed without a volunteer")
		}

		var existing models.Review
		err := tx.Where("request_id = ?", req.ID).First(&existing).Error
		if err == nil {
			return conflictf("a review already exists for this request")
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		review = models.Review{
			RequestID:   req.ID,
			VolunteerID: *req.VolunteerID,
			AuthorID:    actor.UserID,
			Rating:      rating,
			Comment:     comment,
		}
		return tx.Create(&review).Error
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("review submitted",
		zap.Uint("request_id", requestID),
		zap.Int("rating", rating))
	return &review, nil
}
