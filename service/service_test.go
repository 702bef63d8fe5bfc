package service_test

import (
	"testing"
	"time"

	"helphub-api/models"
	"helphub-api/service"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (*service.Service, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Volunteer{},
		&models.Request{},
		&models.RequestStatusHistory{},
		&models.Review{},
		&models.Shortlist{},
	))
	return service.New(db, zap.NewNop()), db
}

func createUser(t *testing.T, db *gorm.DB, name string, role models.UserRole, status models.UserStatus) models.User {
	t.Helper()
	user := models.User{
		Name:         name,
		Email:        name + "@example.com",
		PasswordHash: "x",
		Role:         role,
		Status:       status,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func createCategory(t *testing.T, db *gorm.DB, name string) models.Category {
	t.Helper()
	cat := models.Category{Name: name}
	require.NoError(t, db.Create(&cat).Error)
	return cat
}

func createVolunteer(t *testing.T, db *gorm.DB, user models.User, categoryID *uint) models.Volunteer {
	t.Helper()
	vol := models.Volunteer{UserID: user.ID, CategoryID: categoryID, IsAvailable: true}
	require.NoError(t, db.Create(&vol).Error)
	return vol
}

func testTime(t *testing.T) time.Time {
	t.Helper()
	return time.Now().Add(24 * time.Hour)
}

func actorFor(u models.User) service.Actor {
	return service.Actor{UserID: u.ID, Role: u.Role, Status: u.Status}
}

func createRequest(t *testing.T, svc *service.Service, creator models.User, categoryID uint) *models.Request {
	t.Helper()
	req, err := svc.CreateRequest(actorFor(creator), service.CreateRequestInput{
		Title:       "Grocery run",
		Description: "Weekly shopping help",
		CategoryID:  categoryID,
		ScheduledAt: time.Now().Add(48 * time.Hour),
	})
	require.NoError(t, err)
	return req
}

// reloadVolunteer asserts the availability invariant along the way: the
// cached flag must always equal (active assignment count == 0).
func reloadVolunteer(t *testing.T, db *gorm.DB, id uint) models.Volunteer {
	t.Helper()
	var vol models.Volunteer
	require.NoError(t, db.First(&vol, id).Error)

	var active int64
	require.NoError(t, db.Model(&models.Request{}).
		Where("volunteer_id = ? AND status IN ?", id,
			[]models.RequestStatus{models.RequestAssigned, models.RequestInProgress}).
		Count(&active).Error)
	require.Equal(t, active == 0, vol.IsAvailable,
		"is_available must match the live active-assignment count")
	return vol
}

func reloadRequest(t *testing.T, db *gorm.DB, id uint) models.Request {
	t.Helper()
	var req models.Request
	require.NoError(t, db.First(&req, id).Error)
	return req
}
