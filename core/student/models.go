package student

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/tolberthub/admissions/core"
)

// Submission statuses. The review flow is linear by convention
// (Submitted -> Under Review -> Needs More Documents -> Qualified ->
// Admission Letter Issued) but an admin may set any status directly.
const (
	StatusSubmitted          Status = "Submitted"
	StatusUnderReview        Status = "Under Review"
	StatusNeedsMoreDocuments Status = "Needs More Documents"
	StatusQualified          Status = "Qualified"
	StatusLetterIssued       Status = "Admission Letter Issued"
)

var AllStatuses = []Status{
	StatusSubmitted,
	StatusUnderReview,
	StatusNeedsMoreDocuments,
	StatusQualified,
	StatusLetterIssued,
}

type Status string

func (s Status) Valid() bool {
	for _, known := range AllStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Document holds uploaded-file metadata only; file bytes are never persisted.
type Document struct {
	Name      string `json:"name" validate:"required"`
	Size      int64  `json:"size"`
	SizeLabel string `json:"sizeLabel,omitempty"`
	Type      string `json:"type,omitempty"`
}

type AdmissionLetter struct {
	LetterID string    `json:"letterId"`
	Message  string    `json:"message"`
	IssuedAt time.Time `json:"issuedAt"` // UTC
	IssuedBy string    `json:"issuedBy"`
}

type Submission struct {
	ID              string           `json:"id"`
	ApplicationType string           `json:"applicationType"`
	TargetProgram   string           `json:"targetProgram"`
	Summary         string           `json:"summary"`
	Documents       []Document       `json:"documents"`
	SubmittedAt     time.Time        `json:"submittedAt"` // UTC
	Status          Status           `json:"status"`
	AdmissionLetter *AdmissionLetter `json:"admissionLetter,omitempty"`
}

type Student struct {
	ID           string       `json:"id"`
	FullName     string       `json:"fullName"`
	Email        string       `json:"email"` // unique key; lowercased + trimmed
	Phone        string       `json:"phone"`
	Program      string       `json:"program"`
	PasswordHash string       `json:"passwordHash,omitempty"`
	Submissions  []Submission `json:"submissions"`
	CreatedAt    time.Time    `json:"createdAt"` // UTC
}

// Sanitized returns a copy safe to hand outside the store; the password
// material is stripped and (being omitempty) never serializes.
func (s Student) Sanitized() Student {
	s.PasswordHash = ""
	return s
}

// HashPassword returns the hex-encoded SHA-256 digest of a raw password.
// Hashing happens at the caller's edge; the store never sees plaintext.
func HashPassword(pwd string) string {
	sum := sha256.Sum256([]byte(pwd))
	return hex.EncodeToString(sum[:])
}

// NewStudent contains information needed to register a Student.
type NewStudent struct {
	FullName     string `json:"fullName" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	Phone        string `json:"phone"`
	Program      string `json:"program"`
	PasswordHash string `json:"passwordHash" validate:"required"`
}

func (ns *NewStudent) Validate() error {
	ns.FullName = core.CleanString(ns.FullName)
	ns.Email = core.CleanString(ns.Email, true /* lower */)
	ns.Phone = core.CleanString(ns.Phone)
	ns.Program = core.CleanString(ns.Program)
	return translate(core.Validate.Struct(ns))
}

type Credentials struct {
	Email        string `json:"email" validate:"required"`
	PasswordHash string `json:"passwordHash" validate:"required"`
}

func (c *Credentials) Validate() error {
	c.Email = core.CleanString(c.Email, true /* lower */)
	return translate(core.Validate.Struct(c))
}

// NewSubmission contains information needed to file an application.
type NewSubmission struct {
	ApplicationType string     `json:"applicationType" validate:"required"`
	TargetProgram   string     `json:"targetProgram" validate:"required"`
	Summary         string     `json:"summary" validate:"required"`
	Documents       []Document `json:"documents" validate:"required,min=1,dive"`
}

func (ns *NewSubmission) Validate() error {
	ns.ApplicationType = core.CleanString(ns.ApplicationType)
	ns.TargetProgram = core.CleanString(ns.TargetProgram)
	ns.Summary = core.CleanString(ns.Summary)
	return translate(core.Validate.Struct(ns))
}

type StatusUpdate struct {
	Status Status `json:"status" validate:"required,substatus"`
}

func (su *StatusUpdate) Validate() error {
	return translate(core.Validate.Struct(su))
}

type LetterRequest struct {
	Message  string `json:"message"`
	IssuedBy string `json:"issuedBy"`
}

func (lr *LetterRequest) Validate() error {
	lr.Message = core.CleanString(lr.Message)
	lr.IssuedBy = core.CleanString(lr.IssuedBy)
	return nil
}

// StudentSubmission is a Submission annotated with its owner's context,
// as listed by the admin aggregation.
type StudentSubmission struct {
	StudentID      string `json:"studentId"`
	StudentName    string `json:"studentName"`
	StudentEmail   string `json:"studentEmail"`
	StudentProgram string `json:"studentProgram"`
	Submission
}

type Summary struct {
	TotalStudents    int `json:"totalStudents"`
	TotalSubmissions int `json:"totalSubmissions"`
	IssuedLetters    int `json:"issuedLetters"`
}
