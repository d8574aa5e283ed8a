package models

import "time"

// Certificate represents a certificate document in the "certificates"
// collection. The document ID is "<userId>_<courseId>" so issuance is
// idempotent per pair even under concurrent requests.
type Certificate struct {
	ID            string    `json:"id" firestore:"-"`
	UserID        string    `json:"userId" firestore:"userId"`
	CourseID      string    `json:"courseId" firestore:"courseId"`
	CertificateID string    `json:"certificateId" firestore:"certificateId"` // NN-<courseId4>-<userId4>-<8 digits>
	IssueDate     time.Time `json:"issueDate" firestore:"issueDate,serverTimestamp"`
}
