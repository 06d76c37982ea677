package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/tolberthub/admissions/client"
	"github.com/tolberthub/admissions/core/student"
	"github.com/tolberthub/admissions/storage/localstore"
	testutil "github.com/tolberthub/admissions/tests"
)

var letterIDRegex = regexp.MustCompile(`^TIH-ADMIT-\d{4}-\d{4}$`)

// stubAPI is a minimal admissions API used to observe what the client
// sends in networked mode.
type stubAPI struct {
	healthHits   int32
	registerHits int32
	blockReg     chan struct{} // when set, register blocks until closed
}

func (s *stubAPI) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&s.healthHits, 1)
		writeJSON(w, http.StatusOK, map[string]interface{}{"ok": true, "mode": "backend"})
	})
	mux.HandleFunc("/api/register", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&s.registerHits, 1)
		if s.blockReg != nil {
			<-s.blockReg
		}
		var ns student.NewStudent
		_ = json.NewDecoder(r.Body).Decode(&ns)
		writeJSON(w, http.StatusCreated, map[string]interface{}{
			"student": student.Student{ID: "remote-1", FullName: ns.FullName, Email: ns.Email, Submissions: []student.Submission{}},
		})
	})
	mux.HandleFunc("/api/students/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"student": student.Student{ID: "remote-1", FullName: "Alice Kollie", Email: "alice@x.com"},
		})
	})
	mux.HandleFunc("/api/login", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Invalid login credentials."})
	})
	return mux
}

func writeJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(payload)
}

func TestClient_RemoteMode(t *testing.T) {
	stub := &stubAPI{}
	ts := httptest.NewServer(stub.handler())
	defer ts.Close()

	c := client.New(client.Config{BaseURL: ts.URL})
	ctx := context.Background()

	assert.True(t, c.Online(ctx))

	usr, err := c.Register(ctx, student.NewStudent{
		FullName:     "Alice Kollie",
		Email:        "alice@x.com",
		PasswordHash: student.HashPassword("pwd1"),
	})
	if err != nil {
		t.Fatalf("Register(): %v", err)
	}
	assert.Equal(t, "remote-1", usr.ID)
	assert.Equal(t, int32(1), atomic.LoadInt32(&stub.registerHits))

	// registration opened a session; it resolves through the API
	sess, err := c.GetSession(ctx)
	if err != nil {
		t.Fatalf("GetSession(): %v", err)
	}
	if assert.NotNil(t, sess) {
		assert.Equal(t, "remote-1", sess.ID)
	}

	// the 401 mapping
	if _, err := c.Login(ctx, student.Credentials{Email: "alice@x.com", PasswordHash: "nope"}); err != student.ErrInvalidCredentials {
		t.Errorf("Login() error = %v; want ErrInvalidCredentials", err)
	}

	// the health endpoint was probed exactly once for the whole session
	assert.Equal(t, int32(1), atomic.LoadInt32(&stub.healthHits))
}

func TestClient_LocalFallback(t *testing.T) {
	// no server; probing fails once and the session stays local
	conf := testutil.NewConfig()
	c := client.New(client.Config{
		BaseURL: "http://127.0.0.1:1", // nothing listens here
		Storage: localstore.NewMemStorage(),
		Admin:   conf.Admin,
	})
	ctx := context.Background()

	assert.False(t, c.Online(ctx))

	// full lifecycle, all local
	usr, err := c.Register(ctx, student.NewStudent{
		FullName:     "Alice Kollie",
		Email:        "alice@x.com",
		Phone:        "+231 555 0100",
		Program:      "IELTS Prep",
		PasswordHash: student.HashPassword("pwd1"),
	})
	if err != nil {
		t.Fatalf("Register(): %v", err)
	}

	sess, err := c.GetSession(ctx)
	if err != nil {
		t.Fatalf("GetSession(): %v", err)
	}
	if assert.NotNil(t, sess) {
		assert.Equal(t, usr.ID, sess.ID)
	}

	sub, _, err := c.Submit(ctx, usr.ID, student.NewSubmission{
		ApplicationType: "Visa",
		TargetProgram:   "CS",
		Summary:         "Fall intake.",
		Documents:       []student.Document{{Name: "a.pdf", Size: 100}},
	})
	if err != nil {
		t.Fatalf("Submit(): %v", err)
	}

	admin, err := c.AdminLogin(ctx, conf.Admin.Email, conf.Admin.Password)
	if err != nil {
		t.Fatalf("AdminLogin(): %v", err)
	}
	assert.Equal(t, conf.Admin.Name, admin.Name)

	if _, err := c.AdminLogin(ctx, conf.Admin.Email, "nope"); err != client.ErrInvalidAdminCredentials {
		t.Errorf("AdminLogin() error = %v; want ErrInvalidAdminCredentials", err)
	}

	all, err := c.AllSubmissions(ctx)
	if err != nil {
		t.Fatalf("AllSubmissions(): %v", err)
	}
	if assert.Len(t, all, 1) {
		assert.Equal(t, "alice@x.com", all[0].StudentEmail)
		assert.Equal(t, student.StatusSubmitted, all[0].Status)
	}

	updated, err := c.IssueLetter(ctx, usr.ID, sub.ID, student.LetterRequest{Message: "Welcome!"})
	if err != nil {
		t.Fatalf("IssueLetter(): %v", err)
	}
	letter := updated.Submissions[0].AdmissionLetter
	if assert.NotNil(t, letter) {
		assert.Regexp(t, letterIDRegex, letter.LetterID)
		// local-mode issuance falls back to the configured admin name
		assert.Equal(t, conf.Admin.Name, letter.IssuedBy)
	}

	sum, err := c.Summary(ctx)
	if err != nil {
		t.Fatalf("Summary(): %v", err)
	}
	assert.Equal(t, student.Summary{TotalStudents: 1, TotalSubmissions: 1, IssuedLetters: 1}, sum)

	// logout drops the session
	c.Logout()
	sess, err = c.GetSession(ctx)
	if err != nil {
		t.Fatalf("GetSession(): %v", err)
	}
	assert.Nil(t, sess)
}

func TestClient_StaleSession(t *testing.T) {
	storage := localstore.NewMemStorage()
	c := client.New(client.Config{BaseURL: "http://127.0.0.1:1", Storage: storage})
	ctx := context.Background()

	// a session id that resolves to nothing is cleared, not an error
	localstore.NewSessionStore(storage).Set("gone")
	sess, err := c.GetSession(ctx)
	if err != nil {
		t.Fatalf("GetSession(): %v", err)
	}
	assert.Nil(t, sess)
	if _, ok := localstore.NewSessionStore(storage).Get(); ok {
		t.Error("stale session entry must be cleared")
	}
}

func TestClient_InFlightGuard(t *testing.T) {
	stub := &stubAPI{blockReg: make(chan struct{})}
	ts := httptest.NewServer(stub.handler())
	defer ts.Close()

	c := client.New(client.Config{BaseURL: ts.URL})
	ctx := context.Background()

	started := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		close(started)
		_, err := c.Register(ctx, student.NewStudent{
			FullName: "Alice Kollie", Email: "alice@x.com", PasswordHash: "h",
		})
		done <- err
	}()

	<-started
	// wait for the first request to actually reach the server
	for atomic.LoadInt32(&stub.registerHits) == 0 {
		time.Sleep(time.Millisecond)
	}

	// a re-entrant mutating call is rejected while the first is in flight
	_, err := c.Register(ctx, student.NewStudent{
		FullName: "Alice Again", Email: "alice2@x.com", PasswordHash: "h",
	})
	if err != client.ErrRequestInFlight {
		t.Errorf("Register() error = %v; want ErrRequestInFlight", err)
	}

	close(stub.blockReg)
	if err := <-done; err != nil {
		t.Fatalf("first Register(): %v", err)
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&stub.registerHits))
}

func TestClient_TransportError(t *testing.T) {
	stub := &stubAPI{}
	ts := httptest.NewServer(stub.handler())

	c := client.New(client.Config{BaseURL: ts.URL})
	ctx := context.Background()
	assert.True(t, c.Online(ctx))

	// server goes away mid-session: no fallback, a transport error surfaces
	ts.Close()
	_, err := c.Register(ctx, student.NewStudent{
		FullName: "Alice Kollie", Email: "alice@x.com", PasswordHash: "h",
	})
	if _, ok := err.(*client.TransportError); !ok {
		t.Errorf("Register() error = %T (%v); want *client.TransportError", err, err)
	}
	// the cached mode never flips mid-session
	assert.True(t, c.Online(ctx))
}
