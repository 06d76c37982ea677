package filestore

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/tolberthub/admissions/core/student"
)

func tempStore(t *testing.T) (*StudentStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data", "students.json")
	return NewStudentStore(path), path
}

func TestStudentStore_FirstAccess(t *testing.T) {
	st, path := tempStore(t)

	students, err := st.LoadStudents()
	if err != nil {
		t.Fatalf("LoadStudents(): %v", err)
	}
	assert.Empty(t, students)

	// the data dir and an empty collection file now exist
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		t.Fatalf("data file not created: %v", err)
	}
	assert.Equal(t, "[]", string(raw))
}

func TestStudentStore_RoundTrip(t *testing.T) {
	st, _ := tempStore(t)

	now := time.Now().UTC()
	students := []student.Student{
		{
			ID:           "s1",
			FullName:     "Alice Kollie",
			Email:        "alice@x.com",
			Phone:        "+231 555 0100",
			Program:      "IELTS Prep",
			PasswordHash: student.HashPassword("pwd1"),
			Submissions: []student.Submission{
				{
					ID:              "sub1",
					ApplicationType: "Visa",
					TargetProgram:   "CS",
					Summary:         "Fall intake.",
					Documents:       []student.Document{{Name: "a.pdf", Size: 100, SizeLabel: "100 B", Type: "application/pdf"}},
					SubmittedAt:     now,
					Status:          student.StatusLetterIssued,
					AdmissionLetter: &student.AdmissionLetter{
						LetterID: "TIH-ADMIT-2021-1234",
						Message:  "Welcome!",
						IssuedAt: now,
						IssuedBy: "Admin",
					},
				},
			},
			CreatedAt: now,
		},
		{
			ID:          "s2",
			FullName:    "Bob Togba",
			Email:       "bob@x.com",
			Submissions: []student.Submission{},
			CreatedAt:   now,
		},
	}

	if err := st.SaveStudents(students); err != nil {
		t.Fatalf("SaveStudents(): %v", err)
	}
	loaded, err := st.LoadStudents()
	if err != nil {
		t.Fatalf("LoadStudents(): %v", err)
	}
	assert.Equal(t, students, loaded)

	// save(load()) is a no-op on store contents
	if err := st.SaveStudents(loaded); err != nil {
		t.Fatalf("SaveStudents(): %v", err)
	}
	again, err := st.LoadStudents()
	if err != nil {
		t.Fatalf("LoadStudents(): %v", err)
	}
	assert.Equal(t, loaded, again)
}

func TestStudentStore_CorruptFile(t *testing.T) {
	st, path := tempStore(t)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := ioutil.WriteFile(path, []byte("{nope"), 0644); err != nil {
		t.Fatal(err)
	}

	// corrupt content is treated as empty state, never a fatal error
	students, err := st.LoadStudents()
	if err != nil {
		t.Fatalf("LoadStudents(): %v", err)
	}
	assert.Empty(t, students)
}

func TestStudentStore_SaveNil(t *testing.T) {
	st, path := tempStore(t)

	if err := st.SaveStudents(nil); err != nil {
		t.Fatalf("SaveStudents(): %v", err)
	}
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, "[]", string(raw))
}
