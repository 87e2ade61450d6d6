package db

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"school_equipment_portal/models"
)

func seedRequest(t *testing.T, r *Repo, userID, equipmentID uint) *models.Request {
	t.Helper()
	req, err := r.CreateRequest(context.Background(), userID, equipmentID,
		today(), today().AddDate(0, 0, 7))
	require.NoError(t, err)
	return req
}

func TestCreateRequestRequiresStock(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	u := seedUser(t, r, "student", models.RoleStudent)
	eq := seedEquipment(t, r, "Projector", 1)

	req := seedRequest(t, r, u.ID, eq.ID)
	assert.Equal(t, models.RequestPending, req.Status)
	assert.Equal(t, today(), req.RequestDate)

	// No stock at all: creation is refused up front.
	empty, err := r.CreateEquipment(ctx, EquipmentInput{Name: "Tripod", Category: "AV", Condition: "worn", TotalQuantity: 0})
	require.NoError(t, err)
	_, err = r.CreateRequest(ctx, u.ID, empty.ID, today(), today().AddDate(0, 0, 7))
	assert.True(t, errors.Is(err, ErrUnavailable))

	_, err = r.CreateRequest(ctx, u.ID, 9999, today(), today().AddDate(0, 0, 7))
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestApproveDecrementsAvailability(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	admin := seedUser(t, r, "admin", models.RoleAdmin)
	u := seedUser(t, r, "student", models.RoleStudent)
	eq := seedEquipment(t, r, "Camera", 2)
	req := seedRequest(t, r, u.ID, eq.ID)

	due := today().AddDate(0, 0, 14)
	approved, err := r.ApproveRequest(ctx, req.ID, admin.ID, due)
	require.NoError(t, err)

	assert.Equal(t, models.RequestApproved, approved.Status)
	require.NotNil(t, approved.ApprovedByUserID)
	assert.Equal(t, admin.ID, *approved.ApprovedByUserID)
	assert.Equal(t, due, approved.ExpectedReturnDate)

	got, err := r.FindEquipmentByID(ctx, eq.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.AvailableQuantity)
}

func TestApproveRequiresAvailability(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	admin := seedUser(t, r, "admin", models.RoleAdmin)
	u := seedUser(t, r, "student", models.RoleStudent)
	eq := seedEquipment(t, r, "Laptop", 1)

	first := seedRequest(t, r, u.ID, eq.ID)
	second := seedRequest(t, r, u.ID, eq.ID)

	_, err := r.ApproveRequest(ctx, first.ID, admin.ID, today().AddDate(0, 0, 7))
	require.NoError(t, err)

	// Stock is gone; the second pending request cannot be approved.
	_, err = r.ApproveRequest(ctx, second.ID, admin.ID, today().AddDate(0, 0, 7))
	assert.True(t, errors.Is(err, ErrUnavailable))

	got, _ := r.FindRequestByID(ctx, second.ID)
	assert.Equal(t, models.RequestPending, got.Status)
}

func TestApproveNonPendingFails(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	admin := seedUser(t, r, "admin", models.RoleAdmin)
	u := seedUser(t, r, "student", models.RoleStudent)
	eq := seedEquipment(t, r, "Mixer", 3)
	req := seedRequest(t, r, u.ID, eq.ID)

	_, err := r.RejectRequest(ctx, req.ID, admin.ID)
	require.NoError(t, err)

	_, err = r.ApproveRequest(ctx, req.ID, admin.ID, today().AddDate(0, 0, 7))
	assert.True(t, errors.Is(err, ErrNotPending))

	// No mutation happened.
	got, _ := r.FindEquipmentByID(ctx, eq.ID)
	assert.Equal(t, 3, got.AvailableQuantity)
	reqGot, _ := r.FindRequestByID(ctx, req.ID)
	assert.Equal(t, models.RequestRejected, reqGot.Status)
}

func TestRejectKeepsQuantity(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	admin := seedUser(t, r, "admin", models.RoleAdmin)
	u := seedUser(t, r, "student", models.RoleStudent)
	eq := seedEquipment(t, r, "Speaker", 2)
	req := seedRequest(t, r, u.ID, eq.ID)

	rejected, err := r.RejectRequest(ctx, req.ID, admin.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RequestRejected, rejected.Status)
	require.NotNil(t, rejected.ApprovedByUserID)

	got, _ := r.FindEquipmentByID(ctx, eq.ID)
	assert.Equal(t, 2, got.AvailableQuantity)

	// Rejecting twice fails.
	_, err = r.RejectRequest(ctx, req.ID, admin.ID)
	assert.True(t, errors.Is(err, ErrNotPending))
}

func TestReturnIncrementsAndStamps(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	admin := seedUser(t, r, "admin", models.RoleAdmin)
	u := seedUser(t, r, "student", models.RoleStudent)
	eq := seedEquipment(t, r, "Drone", 1)
	req := seedRequest(t, r, u.ID, eq.ID)

	_, err := r.ApproveRequest(ctx, req.ID, admin.ID, today().AddDate(0, 0, 7))
	require.NoError(t, err)

	returned, err := r.ReturnRequest(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RequestReturned, returned.Status)
	require.NotNil(t, returned.ActualReturnDate)
	assert.Equal(t, today(), *returned.ActualReturnDate)

	got, _ := r.FindEquipmentByID(ctx, eq.ID)
	assert.Equal(t, 1, got.AvailableQuantity)

	// Returned is terminal.
	_, err = r.ReturnRequest(ctx, req.ID)
	assert.True(t, errors.Is(err, ErrNotApproved))
}

func TestReturnRequiresApproved(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	u := seedUser(t, r, "student", models.RoleStudent)
	eq := seedEquipment(t, r, "Easel", 1)
	req := seedRequest(t, r, u.ID, eq.ID)

	_, err := r.ReturnRequest(ctx, req.ID)
	assert.True(t, errors.Is(err, ErrNotApproved))

	_, err = r.ReturnRequest(ctx, 9999)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestOverdueSweep(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	admin := seedUser(t, r, "admin", models.RoleAdmin)
	u := seedUser(t, r, "student", models.RoleStudent)
	eq := seedEquipment(t, r, "Telescope", 5)

	past := seedRequest(t, r, u.ID, eq.ID)
	future := seedRequest(t, r, u.ID, eq.ID)
	pendingPast := seedRequest(t, r, u.ID, eq.ID)

	_, err := r.ApproveRequest(ctx, past.ID, admin.ID, today().AddDate(0, 0, -3))
	require.NoError(t, err)
	_, err = r.ApproveRequest(ctx, future.ID, admin.ID, today().AddDate(0, 0, 3))
	require.NoError(t, err)
	// pendingPast stays pending; a past expected date alone must not flip it.
	r.DB.Model(&models.Request{}).Where("id = ?", pendingPast.ID).
		Update("expected_return_date", today().AddDate(0, 0, -3))

	flipped, err := r.CheckOverdue(ctx)
	require.NoError(t, err)
	require.Len(t, flipped, 1)
	assert.Equal(t, past.ID, flipped[0].ID)
	assert.Equal(t, models.RequestOverdue, flipped[0].Status)

	got, _ := r.FindRequestByID(ctx, future.ID)
	assert.Equal(t, models.RequestApproved, got.Status)
	got, _ = r.FindRequestByID(ctx, pendingPast.ID)
	assert.Equal(t, models.RequestPending, got.Status)

	// Second sweep finds nothing new.
	flipped, err = r.CheckOverdue(ctx)
	require.NoError(t, err)
	assert.Empty(t, flipped)

	overdue, err := r.ListRequestsByStatus(ctx, models.RequestOverdue)
	require.NoError(t, err)
	assert.Len(t, overdue, 1)
}

func TestListRequestsByUser(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	a := seedUser(t, r, "a", models.RoleStudent)
	b := seedUser(t, r, "b", models.RoleStudent)
	eq := seedEquipment(t, r, "Globe", 4)

	seedRequest(t, r, a.ID, eq.ID)
	seedRequest(t, r, a.ID, eq.ID)
	seedRequest(t, r, b.ID, eq.ID)

	mine, err := r.ListRequestsByUser(ctx, a.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	pend, err := r.ListRequestsByStatus(ctx, models.RequestPending)
	require.NoError(t, err)
	assert.Len(t, pend, 3)
}

// Paired mismatch: a request approved before a manual stock correction can
// push availability past the total on return. The ceiling is intentionally
// not enforced.
func TestReturnHasNoCeiling(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	admin := seedUser(t, r, "admin", models.RoleAdmin)
	u := seedUser(t, r, "student", models.RoleStudent)
	eq := seedEquipment(t, r, "Cart", 2)
	req := seedRequest(t, r, u.ID, eq.ID)

	_, err := r.ApproveRequest(ctx, req.ID, admin.ID, today().AddDate(0, 0, 7))
	require.NoError(t, err)

	// Someone resets the stock by hand while the loan is out.
	require.NoError(t, r.DB.Model(&models.Equipment{}).
		Where("id = ?", eq.ID).
		Update("available_quantity", 2).Error)

	_, err = r.ReturnRequest(ctx, req.ID)
	require.NoError(t, err)

	got, _ := r.FindEquipmentByID(ctx, eq.ID)
	assert.Equal(t, 3, got.AvailableQuantity)
	assert.Greater(t, got.AvailableQuantity, got.TotalQuantity)
}

func TestRequestDatesSurvive(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	u := seedUser(t, r, "student", models.RoleStudent)
	eq := seedEquipment(t, r, "Lens", 1)

	borrow := today().AddDate(0, 0, 1)
	expected := today().AddDate(0, 0, 8)
	req, err := r.CreateRequest(ctx, u.ID, eq.ID, borrow, expected)
	require.NoError(t, err)

	got, err := r.FindRequestByID(ctx, req.ID)
	require.NoError(t, err)
	assert.True(t, borrow.Equal(got.BorrowDate.UTC()), "borrow date: %v", got.BorrowDate)
	assert.True(t, expected.Equal(got.ExpectedReturnDate.UTC()), "expected date: %v", got.ExpectedReturnDate)
}

func TestUsageAnalyticsOrdering(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	u := seedUser(t, r, "student", models.RoleStudent)
	hot := seedEquipment(t, r, "Popular", 5)
	cold := seedEquipment(t, r, "Rare", 5)
	seedEquipment(t, r, "Never", 5)

	seedRequest(t, r, u.ID, hot.ID)
	seedRequest(t, r, u.ID, hot.ID)
	seedRequest(t, r, u.ID, hot.ID)
	seedRequest(t, r, u.ID, cold.ID)

	rows, err := r.UsageAnalytics(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2) // unrequested items do not appear
	assert.Equal(t, hot.ID, rows[0].EquipmentID)
	assert.EqualValues(t, 3, rows[0].RequestCount)
	assert.Equal(t, cold.ID, rows[1].EquipmentID)
	assert.EqualValues(t, 1, rows[1].RequestCount)
}

func TestReturnFailsWhenEquipmentDeleted(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	admin := seedUser(t, r, "admin", models.RoleAdmin)
	u := seedUser(t, r, "student", models.RoleStudent)
	eq := seedEquipment(t, r, "Mixer", 1)
	req := seedRequest(t, r, u.ID, eq.ID)

	_, err := r.ApproveRequest(ctx, req.ID, admin.ID, today().AddDate(0, 0, 7))
	require.NoError(t, err)
	require.NoError(t, r.DeleteEquipment(ctx, eq.ID))

	_, err = r.ReturnRequest(ctx, req.ID)
	assert.True(t, errors.Is(err, ErrNotFound))

	// The rollback leaves the request still open.
	got, err := r.FindRequestByID(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RequestApproved, got.Status)
	assert.Nil(t, got.ActualReturnDate)
}
