package localstore

import (
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/tolberthub/admissions/core/student"
)

type StudentStore struct {
	storage Storage
}

var _ student.Repository = (*StudentStore)(nil)

func NewStudentStore(storage Storage) *StudentStore {
	return &StudentStore{storage: storage}
}

// LoadStudents deserializes the whole collection from the reserved key.
// Missing or corrupt data yields an empty collection, never an error.
func (st *StudentStore) LoadStudents() ([]student.Student, error) {
	raw, ok := st.storage.GetItem(StudentsKey)
	if !ok || raw == "" {
		return []student.Student{}, nil
	}
	students := make([]student.Student, 0)
	if err := json.Unmarshal([]byte(raw), &students); err != nil {
		return []student.Student{}, nil
	}
	return students, nil
}

func (st *StudentStore) SaveStudents(students []student.Student) error {
	if students == nil {
		students = []student.Student{}
	}
	raw, err := json.Marshal(students)
	if err != nil {
		return errors.Wrap(err, "marshalling students")
	}
	st.storage.SetItem(StudentsKey, string(raw))
	return nil
}

// SessionStore keeps the logged-in student's id, like the original page's
// sessionStorage entry.
type SessionStore struct {
	storage Storage
}

func NewSessionStore(storage Storage) *SessionStore {
	return &SessionStore{storage: storage}
}

func (ss *SessionStore) Set(studentID string) {
	ss.storage.SetItem(SessionKey, studentID)
}

func (ss *SessionStore) Get() (string, bool) {
	id, ok := ss.storage.GetItem(SessionKey)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

func (ss *SessionStore) Clear() {
	ss.storage.RemoveItem(SessionKey)
}
