// Package jobs defines the background jobs dispatched onto the queue.
package jobs

import (
	"fmt"

	"github.com/s-vinaya/Vinaya-s-Pharmacy-Portal-sub000/pkg/logger"
	"github.com/s-vinaya/Vinaya-s-Pharmacy-Portal-sub000/pkg/mail"
	"github.com/s-vinaya/Vinaya-s-Pharmacy-Portal-sub000/pkg/queue"
)

// PrescriptionApprovedJob emails a customer that their prescription was
// verified. Delivery is best-effort: a send failure is logged and the
// job is considered done, so the queue never retries a review email.
type PrescriptionApprovedJob struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

func (j *PrescriptionApprovedJob) Handle() error {
	err := mail.To(j.Email).
		Subject("Your prescription has been approved").
		Body(fmt.Sprintf("<p>Hi %s,</p><p>Your prescription has been verified by our pharmacist. Your order can now be processed.</p>", j.Name)).
		Send()
	if err != nil {
		logger.Warn("jobs: approval email failed", "email", j.Email, "error", err)
	}
	return nil
}

// PrescriptionRejectedJob emails a customer that their prescription was
// rejected, including the pharmacist's reason.
type PrescriptionRejectedJob struct {
	Email  string `json:"email"`
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

func (j *PrescriptionRejectedJob) Handle() error {
	err := mail.To(j.Email).
		Subject("Your prescription was rejected").
		Body(fmt.Sprintf("<p>Hi %s,</p><p>Unfortunately your prescription was rejected.</p><p>Reason: %s</p><p>Please upload a new prescription to continue with your order.</p>", j.Name, j.Reason)).
		Send()
	if err != nil {
		logger.Warn("jobs: rejection email failed", "email", j.Email, "error", err)
	}
	return nil
}

// RegisterAll makes every job type known to the queue for
// deserialisation. Called once at boot.
func RegisterAll() {
	queue.Register("*jobs.PrescriptionApprovedJob", func() queue.Job { return &PrescriptionApprovedJob{} })
	queue.Register("*jobs.PrescriptionRejectedJob", func() queue.Job { return &PrescriptionRejectedJob{} })
}
