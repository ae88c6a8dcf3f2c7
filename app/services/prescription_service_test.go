package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/s-vinaya/Vinaya-s-Pharmacy-Portal-sub000/app/models"
	"github.com/s-vinaya/Vinaya-s-Pharmacy-Portal-sub000/app/services"
	"github.com/s-vinaya/Vinaya-s-Pharmacy-Portal-sub000/pkg/apperr"
)

func newPrescriptionService(
	prescriptions *fakePrescriptions,
	orders *fakeOrders,
	files *fakeFiles,
	notifier *fakeNotifier,
) *services.PrescriptionService {
	users := newFakeUsers(models.User{
		Model: gorm.Model{ID: 1},
		Name:  "Asha", Email: "asha@example.com", Role: models.RoleCustomer,
	})
	return services.NewPrescriptionService(prescriptions, users, orders, files, notifier)
}

func TestUploadStoresFileAndLinksOrder(t *testing.T) {
	prescriptions := newFakePrescriptions()
	orders := newFakeOrders(models.Order{
		Model: gorm.Model{ID: 3}, UserID: 1, AddressID: 1, Status: models.OrderPending,
	})
	files := newFakeFiles()
	svc := newPrescriptionService(prescriptions, orders, files, &fakeNotifier{})
	ctx := context.Background()

	out, err := svc.Upload(ctx, []byte("%PDF-1.4"), "scan.PDF", 1, uintPtr(3))
	require.NoError(t, err)

	assert.Equal(t, "Pending", out.Status)
	assert.Equal(t, uint(1), out.UserID)
	assert.WithinDuration(t, time.Now(), out.UploadedAt, time.Minute)

	p, _ := prescriptions.FindByID(ctx, out.PrescriptionID)
	require.NotNil(t, p)
	assert.True(t, files.Exists(p.FilePath), "document persisted")
	assert.Contains(t, p.FilePath, "prescriptions/1/")
	assert.Contains(t, p.FilePath, ".pdf", "extension lowercased and kept")

	order, _ := orders.FindByID(ctx, 3)
	require.NotNil(t, order.PrescriptionID)
	assert.Equal(t, out.PrescriptionID, *order.PrescriptionID)
}

func TestUploadRejectsEmptyFileAndUnknownOwner(t *testing.T) {
	svc := newPrescriptionService(newFakePrescriptions(), newFakeOrders(), newFakeFiles(), &fakeNotifier{})
	ctx := context.Background()

	_, err := svc.Upload(ctx, nil, "scan.pdf", 1, nil)
	assert.True(t, apperr.IsValidation(err))

	_, err = svc.Upload(ctx, []byte("data"), "scan.pdf", 42, nil)
	assert.True(t, apperr.IsValidation(err))

	_, err = svc.Upload(ctx, []byte("data"), "scan.pdf", 1, uintPtr(99))
	assert.True(t, apperr.IsValidation(err))
}

func TestUploadRejectsOrderOfAnotherUser(t *testing.T) {
	orders := newFakeOrders(models.Order{
		Model: gorm.Model{ID: 7}, UserID: 2, AddressID: 1, Status: models.OrderPending,
	})
	svc := newPrescriptionService(newFakePrescriptions(), orders, newFakeFiles(), &fakeNotifier{})
	ctx := context.Background()

	_, err := svc.Upload(ctx, []byte("data"), "scan.pdf", 1, uintPtr(7))
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
	assert.EqualError(t, err, "order 7 does not belong to user 1")

	order, _ := orders.FindByID(ctx, 7)
	assert.Nil(t, order.PrescriptionID, "foreign order left untouched")
}

func TestRejectWithoutRemarksStoresDefaultReason(t *testing.T) {
	prescriptions := newFakePrescriptions(models.Prescription{
		Model: gorm.Model{ID: 5}, UserID: 1, FilePath: "prescriptions/1/a.pdf", Status: models.PrescriptionPending,
	})
	notifier := &fakeNotifier{}
	svc := newPrescriptionService(prescriptions, newFakeOrders(), newFakeFiles(), notifier)

	out, err := svc.SetStatus(context.Background(), 5, models.PrescriptionRejected, "   ")
	require.NoError(t, err)
	assert.Equal(t, "Rejected", out.Status)
	assert.Equal(t, "No reason provided", out.Remarks)

	require.Len(t, notifier.rejections, 1)
	assert.Equal(t, "asha@example.com", notifier.rejections[0])
	assert.Equal(t, "No reason provided", notifier.reasons[0])
}

func TestVerifyNotifiesOnceAndReVerifyIsIdempotent(t *testing.T) {
	prescriptions := newFakePrescriptions(models.Prescription{
		Model: gorm.Model{ID: 5}, UserID: 1, FilePath: "prescriptions/1/a.pdf", Status: models.PrescriptionPending,
	})
	notifier := &fakeNotifier{}
	svc := newPrescriptionService(prescriptions, newFakeOrders(), newFakeFiles(), notifier)
	ctx := context.Background()

	out, err := svc.Verify(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, "Verified", out.Status)
	assert.Len(t, notifier.approvals, 1)

	// Re-asserting Verified neither fails nor re-notifies.
	out, err = svc.Verify(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, "Verified", out.Status)
	assert.Len(t, notifier.approvals, 1)
}

func TestSetStatusUnknownPrescription(t *testing.T) {
	svc := newPrescriptionService(newFakePrescriptions(), newFakeOrders(), newFakeFiles(), &fakeNotifier{})

	_, err := svc.SetStatus(context.Background(), 42, models.PrescriptionVerified, "")
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

func TestGateBlocksUnreviewedAndRejectedPrescriptions(t *testing.T) {
	prescriptions := newFakePrescriptions(
		models.Prescription{Model: gorm.Model{ID: 5}, UserID: 1, FilePath: "prescriptions/1/a.pdf", Status: models.PrescriptionPending},
		models.Prescription{Model: gorm.Model{ID: 6}, UserID: 1, FilePath: "prescriptions/1/b.pdf", Status: models.PrescriptionRejected},
		models.Prescription{Model: gorm.Model{ID: 7}, UserID: 1, FilePath: "prescriptions/1/c.pdf", Status: models.PrescriptionVerified},
	)
	svc := newPrescriptionService(prescriptions, newFakeOrders(), newFakeFiles(), &fakeNotifier{})
	ctx := context.Background()

	order := &models.Order{Model: gorm.Model{ID: 1}, Status: models.OrderPending}

	// No linked prescription: nothing to gate.
	err := svc.ValidateForStatusAdvance(ctx, order, models.OrderProcessing)
	assert.NoError(t, err)

	order.PrescriptionID = uintPtr(5)
	err = svc.ValidateForStatusAdvance(ctx, order, models.OrderProcessing)
	require.Error(t, err)
	assert.EqualError(t, err, "review the prescription before updating status")

	order.PrescriptionID = uintPtr(6)
	err = svc.ValidateForStatusAdvance(ctx, order, models.OrderProcessing)
	require.Error(t, err)
	assert.EqualError(t, err, "cannot update order status; prescription is rejected")

	order.PrescriptionID = uintPtr(7)
	assert.NoError(t, svc.ValidateForStatusAdvance(ctx, order, models.OrderProcessing))

	// A dangling link is a hard failure, not a silent pass.
	order.PrescriptionID = uintPtr(99)
	err = svc.ValidateForStatusAdvance(ctx, order, models.OrderProcessing)
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))

	// Cancellation is never gated.
	order.PrescriptionID = uintPtr(6)
	assert.NoError(t, svc.ValidateForStatusAdvance(ctx, order, models.OrderCancelled))
}

func TestRejectedPrescriptionBlocksOrderUntilReupload(t *testing.T) {
	prescriptions := newFakePrescriptions(models.Prescription{
		Model: gorm.Model{ID: 5}, UserID: 1, FilePath: "prescriptions/1/a.pdf", Status: models.PrescriptionRejected,
	})
	orders := newFakeOrders(models.Order{
		Model: gorm.Model{ID: 9}, UserID: 1, AddressID: 1,
		PrescriptionID: uintPtr(5), Status: models.OrderPending,
	})
	files := newFakeFiles()
	gate := newPrescriptionService(prescriptions, orders, files, &fakeNotifier{})
	orderSvc := newOrderService(newFakeMedicines(), prescriptions, orders, gate)
	ctx := context.Background()

	// Blocked while the linked prescription is rejected.
	_, err := orderSvc.UpdateStatus(ctx, 9, models.OrderProcessing)
	require.Error(t, err)
	assert.True(t, apperr.IsBusiness(err))

	// Uploading a replacement re-links the order to a fresh Pending
	// prescription; verifying it unblocks the advance.
	out, err := gate.Upload(ctx, []byte("new scan"), "retry.jpg", 1, uintPtr(9))
	require.NoError(t, err)

	_, err = orderSvc.UpdateStatus(ctx, 9, models.OrderProcessing)
	require.Error(t, err, "still pending review")

	_, err = gate.Verify(ctx, out.PrescriptionID)
	require.NoError(t, err)

	updated, err := orderSvc.UpdateStatus(ctx, 9, models.OrderProcessing)
	require.NoError(t, err)
	assert.Equal(t, "Processing", updated.Status)
}

func TestDownloadReturnsContentAndType(t *testing.T) {
	prescriptions := newFakePrescriptions(
		models.Prescription{Model: gorm.Model{ID: 5}, UserID: 1, FilePath: "prescriptions/1/a.pdf", Status: models.PrescriptionVerified},
		models.Prescription{Model: gorm.Model{ID: 6}, UserID: 1, FilePath: "prescriptions/1/b.jpeg", Status: models.PrescriptionPending},
		models.Prescription{Model: gorm.Model{ID: 7}, UserID: 1, FilePath: "prescriptions/1/c.dat", Status: models.PrescriptionPending},
	)
	files := newFakeFiles()
	files.Put("prescriptions/1/a.pdf", []byte("%PDF-1.4"))
	files.Put("prescriptions/1/b.jpeg", []byte{0xFF, 0xD8})
	svc := newPrescriptionService(prescriptions, newFakeOrders(), files, &fakeNotifier{})
	ctx := context.Background()

	content, contentType, err := svc.Download(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4"), content)
	assert.Equal(t, "application/pdf", contentType)

	_, contentType, err = svc.Download(ctx, 6)
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", contentType)

	// Row exists but the document is gone from storage.
	_, _, err = svc.Download(ctx, 7)
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))

	// No row at all.
	_, _, err = svc.Download(ctx, 42)
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}
