package services

import (
	"github.com/s-vinaya/Vinaya-s-Pharmacy-Portal-sub000/app/jobs"
	"github.com/s-vinaya/Vinaya-s-Pharmacy-Portal-sub000/pkg/queue"
)

// EmailNotifier satisfies Notifier by pushing review emails onto the
// background queue. The caller returns immediately; the queue worker
// does the SMTP round-trip.
type EmailNotifier struct{}

func NewEmailNotifier() *EmailNotifier {
	return &EmailNotifier{}
}

func (n *EmailNotifier) SendApproval(email, name string) error {
	return queue.Dispatch(&jobs.PrescriptionApprovedJob{Email: email, Name: name})
}

func (n *EmailNotifier) SendRejection(email, name, reason string) error {
	return queue.Dispatch(&jobs.PrescriptionRejectedJob{Email: email, Name: name, Reason: reason})
}
