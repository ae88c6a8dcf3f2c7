package services

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/s-vinaya/Vinaya-s-Pharmacy-Portal-sub000/app/dto"
	"github.com/s-vinaya/Vinaya-s-Pharmacy-Portal-sub000/app/models"
	"github.com/s-vinaya/Vinaya-s-Pharmacy-Portal-sub000/pkg/apperr"
	"github.com/s-vinaya/Vinaya-s-Pharmacy-Portal-sub000/pkg/logger"
	"github.com/s-vinaya/Vinaya-s-Pharmacy-Portal-sub000/pkg/metrics"
)

// defaultRejectionRemarks is stored when a pharmacist rejects without
// giving a reason.
const defaultRejectionRemarks = "No reason provided"

// PrescriptionService owns the prescription lifecycle (upload, review,
// download) and acts as the status gate consulted by the order workflow.
type PrescriptionService struct {
	prescriptions PrescriptionStore
	users         UserFinder
	orders        OrderStore
	files         FileStore
	notifier      Notifier
}

func NewPrescriptionService(
	prescriptions PrescriptionStore,
	users UserFinder,
	orders OrderStore,
	files FileStore,
	notifier Notifier,
) *PrescriptionService {
	return &PrescriptionService{
		prescriptions: prescriptions,
		users:         users,
		orders:        orders,
		files:         files,
		notifier:      notifier,
	}
}

// ValidateForStatusAdvance is the prescription gate. It passes when the
// target status is not gated or the order links no prescription;
// otherwise the linked prescription must resolve and be Verified.
func (s *PrescriptionService) ValidateForStatusAdvance(ctx context.Context, order *models.Order, target models.OrderStatus) error {
	if !isGatedStatus(target) || order.PrescriptionID == nil {
		return nil
	}

	p, err := s.prescriptions.FindByID(ctx, *order.PrescriptionID)
	if err != nil {
		return err
	}
	if p == nil {
		return apperr.NotFound("prescription not found for order")
	}

	switch p.Status {
	case models.PrescriptionVerified:
		return nil
	case models.PrescriptionPending:
		return apperr.Business("review the prescription before updating status")
	case models.PrescriptionRejected:
		return apperr.Business("cannot update order status; prescription is rejected")
	default:
		return apperr.Business(fmt.Sprintf("unknown prescription status %q", p.Status))
	}
}

// Upload stores the document and creates a Pending prescription row.
// When orderID is given the new prescription is linked to that order.
func (s *PrescriptionService) Upload(ctx context.Context, content []byte, filename string, userID uint, orderID *uint) (*dto.PrescriptionDto, error) {
	if len(content) == 0 {
		return nil, apperr.Validation("prescription file is empty")
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.Validation(fmt.Sprintf("user %d not found", userID))
	}

	var order *models.Order
	if orderID != nil {
		order, err = s.orders.FindByID(ctx, *orderID)
		if err != nil {
			return nil, err
		}
		if order == nil {
			return nil, apperr.Validation(fmt.Sprintf("order %d not found", *orderID))
		}
		if order.UserID != userID {
			return nil, apperr.Validation(fmt.Sprintf("order %d does not belong to user %d", *orderID, userID))
		}
	}

	filePath := s.buildFilePath(filename, userID, orderID)
	if err := s.files.Put(filePath, content); err != nil {
		return nil, fmt.Errorf("prescription: store file: %w", err)
	}

	p := &models.Prescription{
		UserID:     userID,
		FilePath:   filePath,
		Status:     models.PrescriptionPending,
		UploadedAt: time.Now(),
	}
	if err := s.prescriptions.Create(ctx, p); err != nil {
		return nil, err
	}

	if order != nil {
		order.PrescriptionID = &p.ID
		if err := s.orders.Update(ctx, order); err != nil {
			return nil, err
		}
	}

	out := dto.PrescriptionFromModel(p, s.files.URL(filePath))
	return &out, nil
}

// buildFilePath derives the storage path from the owner and upload time,
// keeping the original extension.
func (s *PrescriptionService) buildFilePath(filename string, userID uint, orderID *uint) string {
	ext := strings.ToLower(path.Ext(filename))
	name := fmt.Sprintf("%d", time.Now().UnixNano())
	if orderID != nil {
		name = fmt.Sprintf("%s_%d", name, *orderID)
	}
	return fmt.Sprintf("prescriptions/%d/%s%s", userID, name, ext)
}

// Verify marks the prescription Verified. Re-verifying an already
// verified prescription is a no-op re-assertion, not an error.
func (s *PrescriptionService) Verify(ctx context.Context, id uint) (*dto.PrescriptionDto, error) {
	return s.SetStatus(ctx, id, models.PrescriptionVerified, "")
}

// SetStatus writes the review outcome and notifies the owner. Rejection
// with blank remarks stores a default reason. Notification delivery is
// best-effort: failures are logged and swallowed.
func (s *PrescriptionService) SetStatus(ctx context.Context, id uint, status models.PrescriptionStatus, remarks string) (*dto.PrescriptionDto, error) {
	p, err := s.prescriptions.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperr.NotFound(fmt.Sprintf("prescription %d not found", id))
	}

	if status == models.PrescriptionRejected && strings.TrimSpace(remarks) == "" {
		remarks = defaultRejectionRemarks
	}

	unchanged := p.Status == status
	p.Status = status
	if status == models.PrescriptionRejected {
		p.Remarks = remarks
	}
	if err := s.prescriptions.Update(ctx, p); err != nil {
		return nil, err
	}

	if !unchanged {
		metrics.PrescriptionsReviewed.WithLabelValues(string(status)).Inc()
		s.notifyReview(ctx, p)
	}

	out := dto.PrescriptionFromModel(p, s.files.URL(p.FilePath))
	return &out, nil
}

// notifyReview emails the owner about the review outcome. Never fails
// the caller.
func (s *PrescriptionService) notifyReview(ctx context.Context, p *models.Prescription) {
	user, err := s.users.FindByID(ctx, p.UserID)
	if err != nil || user == nil {
		logger.Warn("prescription: owner lookup failed, skipping notification",
			"prescription_id", p.ID, "user_id", p.UserID)
		return
	}

	switch p.Status {
	case models.PrescriptionVerified:
		err = s.notifier.SendApproval(user.Email, user.Name)
	case models.PrescriptionRejected:
		err = s.notifier.SendRejection(user.Email, user.Name, p.Remarks)
	default:
		return
	}
	if err != nil {
		logger.Warn("prescription: notification failed",
			"prescription_id", p.ID, "error", err)
	}
}

// Download returns the document bytes and a content type derived from
// the file extension.
func (s *PrescriptionService) Download(ctx context.Context, id uint) ([]byte, string, error) {
	p, err := s.prescriptions.FindByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if p == nil {
		return nil, "", apperr.NotFound(fmt.Sprintf("prescription %d not found", id))
	}
	if !s.files.Exists(p.FilePath) {
		return nil, "", apperr.NotFound(fmt.Sprintf("prescription file missing for %d", id))
	}

	content, err := s.files.Get(p.FilePath)
	if err != nil {
		return nil, "", apperr.NotFound(fmt.Sprintf("prescription file missing for %d", id))
	}

	return content, contentTypeFor(p.FilePath), nil
}

// GetByID returns one prescription as a DTO.
func (s *PrescriptionService) GetByID(ctx context.Context, id uint) (*dto.PrescriptionDto, error) {
	p, err := s.prescriptions.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperr.NotFound(fmt.Sprintf("prescription %d not found", id))
	}
	out := dto.PrescriptionFromModel(p, s.files.URL(p.FilePath))
	return &out, nil
}

// contentTypeFor maps a stored file's extension to a MIME type.
func contentTypeFor(filePath string) string {
	switch strings.ToLower(strings.TrimPrefix(path.Ext(filePath), ".")) {
	case "pdf":
		return "application/pdf"
	case "jpg", "jpeg":
		return "image/jpeg"
	case "png":
		return "image/png"
	case "gif":
		return "image/gif"
	default:
		return "application/octet-stream"
	}
}
