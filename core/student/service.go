package student

import (
	"errors"
	"fmt"
	"net/mail"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tolberthub/admissions/core"
)

var (
	// errors
	ErrNotFound           = errors.New("student not found")
	ErrSubmissionNotFound = errors.New("submission not found")
	ErrEmailExists        = errors.New("an account with this email already exists")
	ErrInvalidCredentials = errors.New("invalid login credentials")
)

type (
	// Repository is the Student Store contract: the whole collection is
	// loaded and rewritten wholesale. Both the flat-file and the
	// local-blob backings implement it and are interchangeable.
	Repository interface {
		LoadStudents() ([]Student, error)
		SaveStudents(students []Student) error
	}

	Service interface {
		Register(ns NewStudent) (Student, error)
		Authenticate(creds Credentials) (Student, error)
		GetByID(id string) (Student, error)
		Submit(studentID string, ns NewSubmission) (Submission, Student, error)
		SetStatus(studentID, submissionID string, su StatusUpdate) (Student, error)
		IssueLetter(studentID, submissionID string, lr LetterRequest) (Student, error)
		AllSubmissions() ([]StudentSubmission, error)
		Summary() (Summary, error)
	}

	service struct {
		repo    Repository
		mailSvc core.EmailService

		// mu serializes the whole read-modify-write cycle of every mutating
		// operation, so concurrent requests within this process cannot lose
		// each other's writes. Cross-process writers still race.
		mu sync.Mutex
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository, mailSvc core.EmailService) *service {
	return &service{repo: repo, mailSvc: mailSvc}
}

func (svc *service) Register(ns NewStudent) (Student, error) {
	if err := ns.Validate(); err != nil {
		return Student{}, err
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()

	students, err := svc.repo.LoadStudents()
	if err != nil {
		return Student{}, err
	}
	for _, s := range students {
		if s.Email == ns.Email {
			return Student{}, ErrEmailExists
		}
	}

	usr := Student{
		ID:           uuid.New().String(),
		FullName:     ns.FullName,
		Email:        ns.Email,
		Phone:        ns.Phone,
		Program:      ns.Program,
		PasswordHash: ns.PasswordHash,
		Submissions:  []Submission{},
		CreatedAt:    time.Now().UTC(),
	}
	students = append(students, usr)
	if err := svc.repo.SaveStudents(students); err != nil {
		return Student{}, err
	}
	return usr.Sanitized(), nil
}

func (svc *service) Authenticate(creds Credentials) (Student, error) {
	if err := creds.Validate(); err != nil {
		return Student{}, err
	}

	students, err := svc.repo.LoadStudents()
	if err != nil {
		return Student{}, err
	}
	for _, s := range students {
		if s.Email == creds.Email && s.PasswordHash == creds.PasswordHash {
			return s.Sanitized(), nil
		}
	}
	return Student{}, ErrInvalidCredentials
}

func (svc *service) GetByID(id string) (Student, error) {
	students, err := svc.repo.LoadStudents()
	if err != nil {
		return Student{}, err
	}
	for _, s := range students {
		if s.ID == id {
			return s.Sanitized(), nil
		}
	}
	return Student{}, ErrNotFound
}

func (svc *service) Submit(studentID string, ns NewSubmission) (Submission, Student, error) {
	if err := ns.Validate(); err != nil {
		return Submission{}, Student{}, err
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()

	students, err := svc.repo.LoadStudents()
	if err != nil {
		return Submission{}, Student{}, err
	}
	idx := findStudent(students, studentID)
	if idx < 0 {
		return Submission{}, Student{}, ErrNotFound
	}

	sub := Submission{
		ID:              uuid.New().String(),
		ApplicationType: ns.ApplicationType,
		TargetProgram:   ns.TargetProgram,
		Summary:         ns.Summary,
		Documents:       ns.Documents,
		SubmittedAt:     time.Now().UTC(),
		Status:          StatusSubmitted,
	}
	students[idx].Submissions = append(students[idx].Submissions, sub)
	if err := svc.repo.SaveStudents(students); err != nil {
		return Submission{}, Student{}, err
	}
	return sub, students[idx].Sanitized(), nil
}

func (svc *service) SetStatus(studentID, submissionID string, su StatusUpdate) (Student, error) {
	if err := su.Validate(); err != nil {
		return Student{}, err
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()

	students, err := svc.repo.LoadStudents()
	if err != nil {
		return Student{}, err
	}
	sIdx, subIdx, err := findSubmission(students, studentID, submissionID)
	if err != nil {
		return Student{}, err
	}

	// status is overwritten unconditionally; admins may move a submission
	// to any known status, including backwards.
	students[sIdx].Submissions[subIdx].Status = su.Status
	if err := svc.repo.SaveStudents(students); err != nil {
		return Student{}, err
	}
	return students[sIdx].Sanitized(), nil
}

func (svc *service) IssueLetter(studentID, submissionID string, lr LetterRequest) (Student, error) {
	if err := lr.Validate(); err != nil {
		return Student{}, err
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()

	students, err := svc.repo.LoadStudents()
	if err != nil {
		return Student{}, err
	}
	sIdx, subIdx, err := findSubmission(students, studentID, submissionID)
	if err != nil {
		return Student{}, err
	}

	letter := &AdmissionLetter{
		LetterID: newLetterID(),
		Message:  lr.Message,
		IssuedAt: nowFunc().UTC(),
		IssuedBy: lr.IssuedBy,
	}
	// re-issuing overwrites the previous letter; no history is kept
	students[sIdx].Submissions[subIdx].Status = StatusLetterIssued
	students[sIdx].Submissions[subIdx].AdmissionLetter = letter
	if err := svc.repo.SaveStudents(students); err != nil {
		return Student{}, err
	}

	svc.sendLetterIssuedMail(students[sIdx], students[sIdx].Submissions[subIdx])
	return students[sIdx].Sanitized(), nil
}

func (svc *service) AllSubmissions() ([]StudentSubmission, error) {
	students, err := svc.repo.LoadStudents()
	if err != nil {
		return nil, err
	}
	all := make([]StudentSubmission, 0)
	for _, s := range students {
		for _, sub := range s.Submissions {
			all = append(all, StudentSubmission{
				StudentID:      s.ID,
				StudentName:    s.FullName,
				StudentEmail:   s.Email,
				StudentProgram: s.Program,
				Submission:     sub,
			})
		}
	}
	return all, nil
}

func (svc *service) Summary() (Summary, error) {
	students, err := svc.repo.LoadStudents()
	if err != nil {
		return Summary{}, err
	}
	sum := Summary{TotalStudents: len(students)}
	for _, s := range students {
		sum.TotalSubmissions += len(s.Submissions)
		for _, sub := range s.Submissions {
			if sub.AdmissionLetter != nil {
				sum.IssuedLetters++
			}
		}
	}
	return sum, nil
}

func (svc *service) sendLetterIssuedMail(usr Student, sub Submission) {
	if svc.mailSvc == nil {
		return
	}
	msg := &core.EmailMessage{
		To:      []mail.Address{{Name: usr.FullName, Address: usr.Email}},
		Subject: "Your Admission Letter",
		BodyStr: fmt.Sprintf(
			"Dear %s,\n\nCongratulations! An admission letter has been issued for your %s application to %s.\n\n"+
				"Letter ID: %s\n\n%s\n\n%s",
			usr.FullName, sub.ApplicationType, sub.TargetProgram,
			sub.AdmissionLetter.LetterID, sub.AdmissionLetter.Message, sub.AdmissionLetter.IssuedBy,
		),
	}
	svc.mailSvc.SendMessages(msg)
}

func findStudent(students []Student, id string) int {
	if id == "" {
		return -1
	}
	for i := range students {
		if students[i].ID == id {
			return i
		}
	}
	return -1
}

func findSubmission(students []Student, studentID, submissionID string) (int, int, error) {
	sIdx := findStudent(students, studentID)
	if sIdx < 0 {
		return -1, -1, ErrNotFound
	}
	for i := range students[sIdx].Submissions {
		if students[sIdx].Submissions[i].ID == submissionID {
			return sIdx, i, nil
		}
	}
	return -1, -1, ErrSubmissionNotFound
}
