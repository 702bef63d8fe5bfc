package service_test

import (
	"testing"

	"helphub-api/models"
	"helphub-api/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterUser_ProvisionsVolunteerProfile(t *testing.T) {
	svc, db := newTestService(t)
	cat := createCategory(t, db, "Transport")

	user, err := svc.RegisterUser(service.RegisterUserInput{
		Name:         "Dana",
		Email:        "Dana@Example.com",
		PasswordHash: "hashed",
		Role:         models.RoleVolunteer,
		CategoryID:   &cat.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, models.UserPending, user.Status, "accounts start pending admin approval")
	assert.Equal(t, "dana@example.com", user.Email)

	var vol models.Volunteer
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&vol).Error)
	assert.True(t, vol.IsAvailable)
	require.NotNil(t, vol.CategoryID)
	assert.Equal(t, cat.ID, *vol.CategoryID)
}

func TestRegisterUser_Rejections(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.RegisterUser(service.RegisterUserInput{
		Name: "Eve", Email: "eve@example.com", PasswordHash: "x",
		Role: models.RoleAdmin,
	})
	assert.Equal(t, service.KindValidation, service.KindOf(err), "admins cannot self-register")

	_, err = svc.RegisterUser(service.RegisterUserInput{
		Name: "Eve", Email: "eve@example.com", PasswordHash: "x",
		Role: models.UserRole("superuser"),
	})
	assert.Equal(t, service.KindValidation, service.KindOf(err))

	_, err = svc.RegisterUser(service.RegisterUserInput{
		Name: "First", Email: "dup@example.com", PasswordHash: "x",
		Role: models.RolePIN,
	})
	require.NoError(t, err)

	// Case-folded duplicate email.
	_, err = svc.RegisterUser(service.RegisterUserInput{
		Name: "Second", Email: "DUP@example.com", PasswordHash: "x",
		Role: models.RoleCSR,
	})
	assert.Equal(t, service.KindConflict, service.KindOf(err))
}

func TestSuspendedUserCannotAct(t *testing.T) {
	svc, db := newTestService(t)
	cat := createCategory(t, db, "Transport")
	pin := createUser(t, db, "pin", models.RolePIN, models.UserSuspended)

	_, err := svc.CreateRequest(actorFor(pin), service.CreateRequestInput{
		Title:       "Help",
		Description: "Need a hand",
		CategoryID:  cat.ID,
		ScheduledAt: testTime(t),
	})
	assert.Equal(t, service.KindUnauthorized, service.KindOf(err))
}

func TestActivateAndSuspendUser(t *testing.T) {
	svc, db := newTestService(t)
	admin := createUser(t, db, "admin", models.RoleAdmin, models.UserActive)
	pin := createUser(t, db, "pin", models.RolePIN, models.UserPending)

	_, err := svc.ActivateUser(pin.ID, actorFor(pin))
	assert.Equal(t, service.KindUnauthorized, service.KindOf(err))

	got, err := svc.ActivateUser(pin.ID, actorFor(admin))
	require.NoError(t, err)
	assert.Equal(t, models.UserActive, got.Status)

	got, err = svc.SuspendUser(pin.ID, actorFor(admin))
	require.NoError(t, err)
	assert.Equal(t, models.UserSuspended, got.Status)
}

// Deleting a volunteer hands their active assignment back to the pool;
// completed work keeps its status but loses the dangling reference.
func TestDeleteUser_VolunteerCascade(t *testing.T) {
	svc, db := newTestService(t)
	cat := createCategory(t, db, "Transport")
	admin := createUser(t, db, "admin", models.RoleAdmin, models.UserActive)
	pin := createUser(t, db, "pin", models.RolePIN, models.UserActive)
	csr := createUser(t, db, "csr", models.RoleCSR, models.UserActive)
	volUser := createUser(t, db, "vol", models.RoleVolunteer, models.UserActive)
	vol := createVolunteer(t, db, volUser, &cat.ID)

	done := createRequest(t, svc, pin, cat.ID)
	_, err := svc.AssignRequest(done.ID, vol.ID, actorFor(csr))
	require.NoError(t, err)
	_, err = svc.CompleteRequest(done.ID, actorFor(csr))
	require.NoError(t, err)
	_, err = svc.SubmitReview(done.ID, 5, "great", actorFor(pin))
	require.NoError(t, err)

	active := createRequest(t, svc, pin, cat.ID)
	_, err = svc.AssignRequest(active.ID, vol.ID, actorFor(csr))
	require.NoError(t, err)

	require.NoError(t, svc.DeleteUser(volUser.ID, actorFor(admin)))

	back := reloadRequest(t, db, active.ID)
	assert.Equal(t, models.RequestPending, back.Status)
	assert.Nil(t, back.VolunteerID)

	kept := reloadRequest(t, db, done.ID)
	assert.Equal(t, models.RequestCompleted, kept.Status)
	assert.Nil(t, kept.VolunteerID)

	var count int64
	require.NoError(t, db.Model(&models.Volunteer{}).Where("id = ?", vol.ID).Count(&count).Error)
	assert.Zero(t, count, "volunteer profile removed")
	require.NoError(t, db.Model(&models.Review{}).Where("volunteer_id = ?", vol.ID).Count(&count).Error)
	assert.Zero(t, count, "reviews about the volunteer removed")
}

// Deleting a requester removes their requests and frees any volunteer
// working them.
func TestDeleteUser_RequesterCascade(t *testing.T) {
	svc, db := newTestService(t)
	cat := createCategory(t, db, "Transport")
	admin := createUser(t, db, "admin", models.RoleAdmin, models.UserActive)
	pin := createUser(t, db, "pin", models.RolePIN, models.UserActive)
	csr := createUser(t, db, "csr", models.RoleCSR, models.UserActive)
	volUser := createUser(t, db, "vol", models.RoleVolunteer, models.UserActive)
	vol := createVolunteer(t, db, volUser, &cat.ID)

	req := createRequest(t, svc, pin, cat.ID)
	_, err := svc.AssignRequest(req.ID, vol.ID, actorFor(csr))
	require.NoError(t, err)

	require.NoError(t, svc.DeleteUser(pin.ID, actorFor(admin)))

	var count int64
	require.NoError(t, db.Model(&models.Request{}).Where("creator_id = ?", pin.ID).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, db.Model(&models.RequestStatusHistory{}).Where("request_id = ?", req.ID).Count(&count).Error)
	assert.Zero(t, count)

	freed := reloadVolunteer(t, db, vol.ID)
	assert.True(t, freed.IsAvailable)
}

func TestUpdateUserProfile(t *testing.T) {
	svc, db := newTestService(t)
	admin := createUser(t, db, "admin", models.RoleAdmin, models.UserActive)
	a := createUser(t, db, "alice", models.RolePIN, models.UserActive)
	createUser(t, db, "bob", models.RolePIN, models.UserActive)

	_, err := svc.UpdateUserProfile(a.ID, "Alice Smith", "bob@example.com", actorFor(admin))
	assert.Equal(t, service.KindConflict, service.KindOf(err), "cannot take another account's email")

	got, err := svc.UpdateUserProfile(a.ID, "Alice Smith", "Alice.Smith@Example.com", actorFor(admin))
	require.NoError(t, err)
	assert.Equal(t, "Alice Smith", got.Name)
	assert.Equal(t, "alice.smith@example.com", got.Email)
}
