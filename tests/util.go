package testutil

import (
	"net/mail"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/tolberthub/admissions/core"
	"github.com/tolberthub/admissions/core/student"
)

// NewConfig returns an isolated test configuration; nothing is read from
// the environment.
func NewConfig() *core.Config {
	return &core.Config{
		Debug:            true,
		TestMode:         true,
		Env:              "TEST",
		AppName:          "TIH Admissions",
		DefaultFromEmail: mail.Address{Name: "TIH Admissions", Address: "admissions@test.local"},
		Admin: core.AdminIdentity{
			Email:    "admin@test.local",
			Password: "Admin@12345",
			Name:     "Test Admin",
		},
	}
}

func CreateStudent(
	t *testing.T,
	repo student.Repository,
	fullName, email, phone, program, pwd string,
	createdAt ...time.Time,
) student.Student {
	t.Helper()

	tstamp := time.Now().UTC()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	usr := student.Student{
		ID:           uuid.New().String(),
		FullName:     fullName,
		Email:        email,
		Phone:        phone,
		Program:      program,
		PasswordHash: student.HashPassword(pwd),
		Submissions:  []student.Submission{},
		CreatedAt:    tstamp,
	}

	students, err := repo.LoadStudents()
	if err != nil {
		t.Fatalf("CreateStudent(): %v", err)
	}
	students = append(students, usr)
	if err := repo.SaveStudents(students); err != nil {
		t.Fatalf("CreateStudent(): %v", err)
	}
	return usr
}

func CreateSubmission(
	t *testing.T,
	repo student.Repository,
	studentID, applicationType, targetProgram, summary string,
	docs ...student.Document,
) student.Submission {
	t.Helper()

	if len(docs) == 0 {
		docs = []student.Document{{Name: "transcript.pdf", Size: 1024, SizeLabel: "1 KB", Type: "application/pdf"}}
	}
	sub := student.Submission{
		ID:              uuid.New().String(),
		ApplicationType: applicationType,
		TargetProgram:   targetProgram,
		Summary:         summary,
		Documents:       docs,
		SubmittedAt:     time.Now().UTC(),
		Status:          student.StatusSubmitted,
	}

	students, err := repo.LoadStudents()
	if err != nil {
		t.Fatalf("CreateSubmission(): %v", err)
	}
	for i := range students {
		if students[i].ID == studentID {
			students[i].Submissions = append(students[i].Submissions, sub)
			if err := repo.SaveStudents(students); err != nil {
				t.Fatalf("CreateSubmission(): %v", err)
			}
			return sub
		}
	}
	t.Fatalf("CreateSubmission(): student %s not found", studentID)
	return student.Submission{}
}
