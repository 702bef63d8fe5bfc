package service

import (
	"errors"

	"helphub-api/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Actor identifies the user performing an operation. It is passed explicitly
// into every call; the service never reads ambient session state.
type Actor struct {
	UserID uint
	Role   models.UserRole
	Status models.UserStatus
}

// Service executes all lifecycle operations. Every transition runs as a
// single transaction against the store.
type Service struct {
	db  *gorm.DB
	log *zap.Logger
}

func New(db *gorm.DB, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{db: db, log: log}
}

func (s *Service) requireActive(actor Actor) error {
	if actor.Status != models.UserActive {
		return unauthorizedf("your account is not active")
	}
	return nil
}

// wrapDBErr converts a raw gorm error on an entity lookup into a typed
// failure.
func wrapDBErr(err error, format string, args ...interface{}) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFoundf(format, args...)
	}
	return err
}
