package service_test

import (
	"testing"

	"helphub-api/models"
	"helphub-api/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateRequest_Validation(t *testing.T) {
	svc, db := newTestService(t)
	cat := createCategory(t, db, "Transport")
	pin := createUser(t, db, "pin", models.RolePIN, models.UserActive)
	csr := createUser(t, db, "csr", models.RoleCSR, models.UserActive)

	_, err := svc.CreateRequest(actorFor(csr), service.CreateRequestInput{})
	assert.Equal(t, service.KindUnauthorized, service.KindOf(err), "non-PIN roles cannot create requests")

	_, err = svc.CreateRequest(actorFor(pin), service.CreateRequestInput{
		Title: "  ", Description: "d", CategoryID: cat.ID,
	})
	assert.Equal(t, service.KindValidation, service.KindOf(err))

	_, err = svc.CreateRequest(actorFor(pin), service.CreateRequestInput{
		Title: "t", Description: "d", CategoryID: 9999,
	})
	assert.Equal(t, service.KindValidation, service.KindOf(err), "zero scheduled time fails before category lookup")

	req := createRequest(t, svc, pin, cat.ID)
	assert.Equal(t, models.RequestPending, req.Status)
	assert.NotEmpty(t, req.Reference)
	assert.Nil(t, req.VolunteerID)
}

func TestCreateRequest_MissingCategory(t *testing.T) {
	svc, db := newTestService(t)
	pin := createUser(t, db, "pin", models.RolePIN, models.UserActive)

	_, err := svc.CreateRequest(actorFor(pin), service.CreateRequestInput{
		Title: "t", Description: "d", CategoryID: 42,
		ScheduledAt: testTime(t),
	})
	assert.Equal(t, service.KindNotFound, service.KindOf(err))
}

// Scenario A: assigning an available, active, category-matching volunteer
// succeeds and flips their availability.
func TestAssignRequest_Success(t *testing.T) {
	svc, db := newTestService(t)
	cat := createCategory(t, db, "Transport")
	pin := createUser(t, db, "pin", models.RolePIN, models.UserActive)
	csr := createUser(t, db, "csr", models.RoleCSR, models.UserActive)
	volUser := createUser(t, db, "vol", models.RoleVolunteer, models.UserActive)
	vol := createVolunteer(t, db, volUser, &cat.ID)

	r1 := createRequest(t, svc, pin, cat.ID)

	got, err := svc.AssignRequest(r1.ID, vol.ID, actorFor(csr))
	require.NoError(t, err)
	assert.Equal(t, models.RequestAssigned, got.Status)
	require.NotNil(t, got.VolunteerID)
	assert.Equal(t, vol.ID, *got.VolunteerID)

	assert.False(t, reloadVolunteer(t, db, vol.ID).IsAvailable)
}

// Scenario B: a volunteer can hold at most one active assignment. The
// second assign targeting the same volunteer loses the availability race
// and gets a Conflict.
func TestAssignRequest_VolunteerAlreadyBusy(t *testing.T) {
	svc, db := newTestService(t)
	cat := createCategory(t, db, "Transport")
	pin := createUser(t, db, "pin", models.RolePIN, models.UserActive)
	csr := createUser(t, db, "csr", models.RoleCSR, models.UserActive)
	volUser := createUser(t, db, "vol", models.RoleVolunteer, models.UserActive)
	vol := createVolunteer(t, db, volUser, &cat.ID)

	r1 := createRequest(t, svc, pin, cat.ID)
	r2 := createRequest(t, svc, pin, cat.ID)

	_, err := svc.AssignRequest(r1.ID, vol.ID, actorFor(csr))
	require.NoError(t, err)

	_, err = svc.AssignRequest(r2.ID, vol.ID, actorFor(csr))
	assert.Equal(t, service.KindConflict, service.KindOf(err))

	// Loser left no partial writes behind.
	assert.Equal(t, models.RequestPending, reloadRequest(t, db, r2.ID).Status)
	assert.False(t, reloadVolunteer(t, db, vol.ID).IsAvailable)
}

func TestAssignRequest_AlreadyAssigned(t *testing.T) {
	svc, db := newTestService(t)
	cat := createCategory(t, db, "Transport")
	pin := createUser(t, db, "pin", models.RolePIN, models.UserActive)
	csr := createUser(t, db, "csr", models.RoleCSR, models.UserActive)
	u1 := createUser(t, db, "vol1", models.RoleVolunteer, models.UserActive)
	u2 := createUser(t, db, "vol2", models.RoleVolunteer, models.UserActive)
	v1 := createVolunteer(t, db, u1, &cat.ID)
	v2 := createVolunteer(t, db, u2, &cat.ID)

	r1 := createRequest(t, svc, pin, cat.ID)
	_, err := svc.AssignRequest(r1.ID, v1.ID, actorFor(csr))
	require.NoError(t, err)

	_, err = svc.AssignRequest(r1.ID, v2.ID, actorFor(csr))
	assert.Equal(t, service.KindInvalidState, service.KindOf(err))

	// The losing volunteer must still be available.
	assert.True(t, reloadVolunteer(t, db, v2.ID).IsAvailable)
}

func TestAssignRequest_InactiveOrUnavailableVolunteer(t *testing.T) {
	svc, db := newTestService(t)
	cat := createCategory(t, db, "Transport")
	pin := createUser(t, db, "pin", models.RolePIN, models.UserActive)
	csr := createUser(t, db, "csr", models.RoleCSR, models.UserActive)

	pendingUser := createUser(t, db, "pending-vol", models.RoleVolunteer, models.UserPending)
	pendingVol := createVolunteer(t, db, pendingUser, &cat.ID)

	busyUser := createUser(t, db, "busy-vol", models.RoleVolunteer, models.UserActive)
	busyVol := createVolunteer(t, db, busyUser, &cat.ID)
	require.NoError(t, db.Model(&busyVol).Update("is_available", false).Error)

	r1 := createRequest(t, svc, pin, cat.ID)

	_, err := svc.AssignRequest(r1.ID, pendingVol.ID, actorFor(csr))
	assert.Equal(t, service.KindUnauthorized, service.KindOf(err))

	_, err = svc.AssignRequest(r1.ID, busyVol.ID, actorFor(csr))
	assert.Equal(t, service.KindConflict, service.KindOf(err))

	assert.Equal(t, models.RequestPending, reloadRequest(t, db, r1.ID).Status)
}

// Scenario C: decline unassigns the volunteer, restores availability, and
// returns the request to Pending (never CSR-accepted) or Accepted.
func TestDeclineRequest_ReturnState(t *testing.T) {
	svc, db := newTestService(t)
	cat := createCategory(t, db, "Transport")
	pin := createUser(t, db, "pin", models.RolePIN, models.UserActive)
	csr := createUser(t, db, "csr", models.RoleCSR, models.UserActive)
	volUser := createUser(t, db, "vol", models.RoleVolunteer, models.UserActive)
	vol := createVolunteer(t, db, volUser, &cat.ID)

	// Never accepted by a CSR: decline returns to Pending.
	r1 := createRequest(t, svc, pin, cat.ID)
	_, err := svc.AssignRequest(r1.ID, vol.ID, actorFor(csr))
	require.NoError(t, err)
	got, err := svc.DeclineRequest(r1.ID, actorFor(volUser))
	require.NoError(t, err)
	assert.Equal(t, models.RequestPending, got.Status)
	assert.Nil(t, got.VolunteerID)
	assert.True(t, reloadVolunteer(t, db, vol.ID).IsAvailable)

	// Accepted first: decline returns to Accepted.
	r2 := createRequest(t, svc, pin, cat.ID)
	_, err = svc.AcceptRequest(r2.ID, actorFor(csr))
	require.NoError(t, err)
	_, err = svc.AssignRequest(r2.ID, vol.ID, actorFor(csr))
	require.NoError(t, err)
	got, err = svc.DeclineRequest(r2.ID, actorFor(volUser))
	require.NoError(t, err)
	assert.Equal(t, models.RequestAccepted, got.Status)
	assert.True(t, reloadVolunteer(t, db, vol.ID).IsAvailable)
}

func TestDeclineRequest_NotOwner(t *testing.T) {
	svc, db := newTestService(t)
	cat := createCategory(t, db, "Transport")
	pin := createUser(t, db, "pin", models.RolePIN, models.UserActive)
	csr := createUser(t, db, "csr", models.RoleCSR, models.UserActive)
	u1 := createUser(t, db, "vol1", models.RoleVolunteer, models.UserActive)
	u2 := createUser(t, db, "vol2", models.RoleVolunteer, models.UserActive)
	v1 := createVolunteer(t, db, u1, &cat.ID)
	createVolunteer(t, db, u2, &cat.ID)

	r1 := createRequest(t, svc, pin, cat.ID)
	_, err := svc.AssignRequest(r1.ID, v1.ID, actorFor(csr))
	require.NoError(t, err)

	_, err = svc.DeclineRequest(r1.ID, actorFor(u2))
	assert.Equal(t, service.KindUnauthorized, service.KindOf(err))
	assert.Equal(t, models.RequestAssigned, reloadRequest(t, db, r1.ID).Status)
}

// Scenario D: completion increments the counter exactly once and frees the
// volunteer.
func TestCompleteRequest_ByCSR(t *testing.T) {
	svc, db := newTestService(t)
	cat := createCategory(t, db, "Transport")
	pin := createUser(t, db, "pin", models.RolePIN, models.UserActive)
	csr := createUser(t, db, "csr", models.RoleCSR, models.UserActive)
	volUser := createUser(t, db, "vol", models.RoleVolunteer, models.UserActive)
	vol := createVolunteer(t, db, volUser, &cat.ID)

	r1 := createRequest(t, svc, pin, cat.ID)
	_, err := svc.AssignRequest(r1.ID, vol.ID, actorFor(csr))
	require.NoError(t, err)

	got, err := svc.CompleteRequest(r1.ID, actorFor(csr))
	require.NoError(t, err)
	assert.Equal(t, models.RequestCompleted, got.Status)

	after := reloadVolunteer(t, db, vol.ID)
	assert.Equal(t, uint(1), after.TotalTasksCompleted)
	assert.True(t, after.IsAvailable)
}

func TestCompleteRequest_ByVolunteerFromInProgress(t *testing.T) {
	svc, db := newTestService(t)
	cat := createCategory(t, db, "Transport")
	pin := createUser(t, db, "pin", models.RolePIN, models.UserActive)
	csr := createUser(t, db, "csr", models.RoleCSR, models.UserActive)
	volUser := createUser(t, db, "vol", models.RoleVolunteer, models.UserActive)
	vol := createVolunteer(t, db, volUser, &cat.ID)

	r1 := createRequest(t, svc, pin, cat.ID)
	_, err := svc.AssignRequest(r1.ID, vol.ID, actorFor(csr))
	require.NoError(t, err)
	_, err = svc.StartRequest(r1.ID, actorFor(volUser))
	require.NoError(t, err)

	got, err := svc.CompleteRequest(r1.ID, actorFor(volUser))
	require.NoError(t, err)
	assert.Equal(t, models.RequestCompleted, got.Status)
	assert.Equal(t, uint(1), reloadVolunteer(t, db, vol.ID).TotalTasksCompleted)
}

func TestCompleteRequest_CSRCannotCompleteInProgress(t *testing.T) {
	svc, db := newTestService(t)
	cat := createCategory(t, db, "Transport")
	pin := createUser(t, db, "pin", models.RolePIN, models.UserActive)
	csr := createUser(t, db, "csr", models.RoleCSR, models.UserActive)
	volUser := createUser(t, db, "vol", models.RoleVolunteer, models.UserActive)
	vol := createVolunteer(t, db, volUser, &cat.ID)

	r1 := createRequest(t, svc, pin, cat.ID)
	_, err := svc.CompleteRequest(r1.ID, actorFor(csr))
	assert.Equal(t, service.KindInvalidState, service.KindOf(err), "pending request cannot be completed")

	_, err = svc.AssignRequest(r1.ID, vol.ID, actorFor(csr))
	require.NoError(t, err)
	_, err = svc.StartRequest(r1.ID, actorFor(volUser))
	require.NoError(t, err)

	_, err = svc.CompleteRequest(r1.ID, actorFor(csr))
	assert.Equal(t, service.KindInvalidState, service.KindOf(err),
		"CSR completion path only covers Assigned requests")
}

func TestStartRequest_Idempotent(t *testing.T) {
	svc, db := newTestService(t)
	cat := createCategory(t, db, "Transport")
	pin := createUser(t, db, "pin", models.RolePIN, models.UserActive)
	csr := createUser(t, db, "csr", models.RoleCSR, models.UserActive)
	volUser := createUser(t, db, "vol", models.RoleVolunteer, models.UserActive)
	vol := createVolunteer(t, db, volUser, &cat.ID)

	r1 := createRequest(t, svc, pin, cat.ID)
	_, err := svc.AssignRequest(r1.ID, vol.ID, actorFor(csr))
	require.NoError(t, err)

	_, err = svc.StartRequest(r1.ID, actorFor(volUser))
	require.NoError(t, err)
	assert.Equal(t, models.RequestInProgress, reloadRequest(t, db, r1.ID).Status)

	// Double-submitted confirmation: no-op success.
	_, err = svc.StartRequest(r1.ID, actorFor(volUser))
	require.NoError(t, err)
	assert.Equal(t, models.RequestInProgress, reloadRequest(t, db, r1.ID).Status)
	assert.False(t, reloadVolunteer(t, db, vol.ID).IsAvailable)
}

func TestDeleteRequest_FreesVolunteer(t *testing.T) {
	svc, db := newTestService(t)
	cat := createCategory(t, db, "Transport")
	pin := createUser(t, db, "pin", models.RolePIN, models.UserActive)
	csr := createUser(t, db, "csr", models.RoleCSR, models.UserActive)
	volUser := createUser(t, db, "vol", models.RoleVolunteer, models.UserActive)
	vol := createVolunteer(t, db, volUser, &cat.ID)

	r1 := createRequest(t, svc, pin, cat.ID)
	_, err := svc.AssignRequest(r1.ID, vol.ID, actorFor(csr))
	require.NoError(t, err)

	require.NoError(t, svc.DeleteRequest(r1.ID, actorFor(csr)))
	assert.True(t, reloadVolunteer(t, db, vol.ID).IsAvailable)

	var count int64
	require.NoError(t, db.Model(&models.Request{}).Where("id = ?", r1.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestDeleteRequest_CompletedIsImmutable(t *testing.T) {
	svc, db := newTestService(t)
	cat := createCategory(t, db, "Transport")
	pin := createUser(t, db, "pin", models.RolePIN, models.UserActive)
	csr := createUser(t, db, "csr", models.RoleCSR, models.UserActive)
	volUser := createUser(t, db, "vol", models.RoleVolunteer, models.UserActive)
	vol := createVolunteer(t, db, volUser, &cat.ID)

	r1 := createRequest(t, svc, pin, cat.ID)
	_, err := svc.AssignRequest(r1.ID, vol.ID, actorFor(csr))
	require.NoError(t, err)
	_, err = svc.CompleteRequest(r1.ID, actorFor(csr))
	require.NoError(t, err)

	err = svc.DeleteRequest(r1.ID, actorFor(csr))
	assert.Equal(t, service.KindInvalidState, service.KindOf(err))

	err = svc.DeleteRequest(r1.ID, actorFor(pin))
	assert.Equal(t, service.KindUnauthorized, service.KindOf(err), "PIN users cannot delete requests")
}
