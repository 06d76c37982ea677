package client

import (
	"context"

	"github.com/tolberthub/admissions/core"
	"github.com/tolberthub/admissions/core/student"
)

// localPortal serves every operation from the local store with the same
// semantics as the networked API. It is selected when the one-time health
// probe fails.
type localPortal struct {
	svc   student.Service
	admin core.AdminIdentity
}

var _ Portal = (*localPortal)(nil)

func (p *localPortal) Health(context.Context) error { return nil }

func (p *localPortal) Register(_ context.Context, ns student.NewStudent) (student.Student, error) {
	return p.svc.Register(ns)
}

func (p *localPortal) Login(_ context.Context, creds student.Credentials) (student.Student, error) {
	return p.svc.Authenticate(creds)
}

func (p *localPortal) GetStudent(_ context.Context, id string) (student.Student, error) {
	return p.svc.GetByID(id)
}

func (p *localPortal) Submit(_ context.Context, studentID string, ns student.NewSubmission) (student.Submission, student.Student, error) {
	return p.svc.Submit(studentID, ns)
}

func (p *localPortal) AdminLogin(_ context.Context, email, password string) (Admin, error) {
	if !p.admin.Authenticate(email, password) {
		return Admin{}, ErrInvalidAdminCredentials
	}
	return Admin{Email: p.admin.Email, Name: p.admin.Name}, nil
}

func (p *localPortal) AllSubmissions(context.Context) ([]student.StudentSubmission, error) {
	return p.svc.AllSubmissions()
}

func (p *localPortal) Summary(context.Context) (student.Summary, error) {
	return p.svc.Summary()
}

func (p *localPortal) SetStatus(_ context.Context, studentID, submissionID string, su student.StatusUpdate) (student.Student, error) {
	return p.svc.SetStatus(studentID, submissionID, su)
}

func (p *localPortal) IssueLetter(_ context.Context, studentID, submissionID string, lr student.LetterRequest) (student.Student, error) {
	if lr.IssuedBy == "" {
		lr.IssuedBy = p.admin.Name
	}
	return p.svc.IssueLetter(studentID, submissionID, lr)
}
