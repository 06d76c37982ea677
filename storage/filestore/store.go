// Package filestore persists the whole student collection as a single
// pretty-printed JSON array on disk. Every save rewrites the file in full;
// there are no partial writes and no cross-process locking (last writer
// wins).
package filestore

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/tolberthub/admissions/core/student"
)

type StudentStore struct {
	path string
}

var _ student.Repository = (*StudentStore)(nil)

func NewStudentStore(path string) *StudentStore {
	return &StudentStore{path: path}
}

// LoadStudents reads the whole collection. A missing or unreadable file
// yields an empty collection; the store fails open, never to the caller.
func (st *StudentStore) LoadStudents() ([]student.Student, error) {
	if err := st.ensureDataFile(); err != nil {
		return nil, err
	}
	raw, err := ioutil.ReadFile(st.path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", st.path)
	}

	students := make([]student.Student, 0)
	if len(raw) == 0 {
		return students, nil
	}
	if err := json.Unmarshal(raw, &students); err != nil {
		// corrupt data is treated as empty state
		return []student.Student{}, nil
	}
	return students, nil
}

func (st *StudentStore) SaveStudents(students []student.Student) error {
	if err := st.ensureDataFile(); err != nil {
		return err
	}
	if students == nil {
		students = []student.Student{}
	}
	raw, err := json.MarshalIndent(students, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshalling students")
	}
	if err := ioutil.WriteFile(st.path, raw, 0644); err != nil {
		return errors.Wrapf(err, "writing %s", st.path)
	}
	return nil
}

// ensureDataFile creates the data directory and an empty collection file
// on first access.
func (st *StudentStore) ensureDataFile() error {
	dir := filepath.Dir(st.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, "creating %s", dir)
	}
	if _, err := os.Stat(st.path); os.IsNotExist(err) {
		if err := ioutil.WriteFile(st.path, []byte("[]"), 0644); err != nil {
			return errors.Wrapf(err, "initializing %s", st.path)
		}
	} else if err != nil {
		return errors.Wrapf(err, "checking %s", st.path)
	}
	return nil
}
