// Package client is the portal's data-access layer. It talks to the
// admissions API when a server is reachable and falls back to a purely
// local store otherwise; every operation above it is backend-agnostic.
package client

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/tolberthub/admissions/core"
	"github.com/tolberthub/admissions/core/student"
	"github.com/tolberthub/admissions/storage/localstore"
)

var (
	// ErrRequestInFlight rejects re-entrant mutating calls: the portal forms
	// have no server-side idempotency key, so duplicate requests must be
	// stopped at this edge.
	ErrRequestInFlight = errors.New("another request is already in flight")

	// ErrInvalidAdminCredentials mirrors the API's admin-login rejection.
	ErrInvalidAdminCredentials = errors.New("invalid admin credentials")
)

type (
	// Admin is the authenticated admin identity as exposed on the wire.
	Admin struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	}

	// Portal is the full set of portal operations, implemented once over
	// HTTP and once over local storage with equivalent semantics.
	Portal interface {
		Health(ctx context.Context) error
		Register(ctx context.Context, ns student.NewStudent) (student.Student, error)
		Login(ctx context.Context, creds student.Credentials) (student.Student, error)
		GetStudent(ctx context.Context, id string) (student.Student, error)
		Submit(ctx context.Context, studentID string, ns student.NewSubmission) (student.Submission, student.Student, error)
		AdminLogin(ctx context.Context, email, password string) (Admin, error)
		AllSubmissions(ctx context.Context) ([]student.StudentSubmission, error)
		Summary(ctx context.Context) (student.Summary, error)
		SetStatus(ctx context.Context, studentID, submissionID string, su student.StatusUpdate) (student.Student, error)
		IssueLetter(ctx context.Context, studentID, submissionID string, lr student.LetterRequest) (student.Student, error)
	}

	Config struct {
		// BaseURL of the admissions API, e.g. "http://localhost:4173".
		BaseURL    string
		HTTPClient *http.Client

		// Storage backs the local fallback and the session entry.
		Storage localstore.Storage

		// Admin is the identity accepted by local-mode admin login.
		Admin core.AdminIdentity
	}

	Client struct {
		remote  *remotePortal
		local   *localPortal
		session *localstore.SessionStore

		probeOnce sync.Once
		backendOK bool

		inFlight int32
	}
)

func New(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	storage := cfg.Storage
	if storage == nil {
		storage = localstore.NewMemStorage()
	}

	return &Client{
		remote: &remotePortal{
			baseURL: cfg.BaseURL,
			http:    httpClient,
		},
		local: &localPortal{
			svc:   student.NewService(localstore.NewStudentStore(storage), nil),
			admin: cfg.Admin,
		},
		session: localstore.NewSessionStore(storage),
	}
}

// Online reports whether the client is in networked mode. The health probe
// runs at most once; the result sticks for the rest of the session.
func (c *Client) Online(ctx context.Context) bool {
	c.probeOnce.Do(func() {
		c.backendOK = c.remote.Health(ctx) == nil
	})
	return c.backendOK
}

func (c *Client) portal(ctx context.Context) Portal {
	if c.Online(ctx) {
		return c.remote
	}
	return c.local
}

// acquire rejects a mutating call while another one is outstanding.
func (c *Client) acquire() error {
	if !atomic.CompareAndSwapInt32(&c.inFlight, 0, 1) {
		return ErrRequestInFlight
	}
	return nil
}

func (c *Client) release() {
	atomic.StoreInt32(&c.inFlight, 0)
}

func (c *Client) Register(ctx context.Context, ns student.NewStudent) (student.Student, error) {
	if err := c.acquire(); err != nil {
		return student.Student{}, err
	}
	defer c.release()

	usr, err := c.portal(ctx).Register(ctx, ns)
	if err != nil {
		return student.Student{}, err
	}
	c.session.Set(usr.ID)
	return usr, nil
}

func (c *Client) Login(ctx context.Context, creds student.Credentials) (student.Student, error) {
	usr, err := c.portal(ctx).Login(ctx, creds)
	if err != nil {
		return student.Student{}, err
	}
	c.session.Set(usr.ID)
	return usr, nil
}

// GetSession resolves the current session to a sanitized student record.
// A missing or stale session returns (nil, nil): the caller redirects to
// login rather than treating it as a failure.
func (c *Client) GetSession(ctx context.Context) (*student.Student, error) {
	id, ok := c.session.Get()
	if !ok {
		return nil, nil
	}
	usr, err := c.portal(ctx).GetStudent(ctx, id)
	if err != nil {
		if errors.Is(err, student.ErrNotFound) {
			c.session.Clear()
			return nil, nil
		}
		return nil, err
	}
	return &usr, nil
}

func (c *Client) Logout() {
	c.session.Clear()
}

func (c *Client) Submit(ctx context.Context, studentID string, ns student.NewSubmission) (student.Submission, student.Student, error) {
	if err := c.acquire(); err != nil {
		return student.Submission{}, student.Student{}, err
	}
	defer c.release()
	return c.portal(ctx).Submit(ctx, studentID, ns)
}

func (c *Client) AdminLogin(ctx context.Context, email, password string) (Admin, error) {
	return c.portal(ctx).AdminLogin(ctx, email, password)
}

func (c *Client) AllSubmissions(ctx context.Context) ([]student.StudentSubmission, error) {
	return c.portal(ctx).AllSubmissions(ctx)
}

func (c *Client) Summary(ctx context.Context) (student.Summary, error) {
	return c.portal(ctx).Summary(ctx)
}

func (c *Client) SetStatus(ctx context.Context, studentID, submissionID string, su student.StatusUpdate) (student.Student, error) {
	if err := c.acquire(); err != nil {
		return student.Student{}, err
	}
	defer c.release()
	return c.portal(ctx).SetStatus(ctx, studentID, submissionID, su)
}

func (c *Client) IssueLetter(ctx context.Context, studentID, submissionID string, lr student.LetterRequest) (student.Student, error) {
	if err := c.acquire(); err != nil {
		return student.Student{}, err
	}
	defer c.release()
	return c.portal(ctx).IssueLetter(ctx, studentID, submissionID, lr)
}
