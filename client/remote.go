package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/pkg/errors"

	"github.com/tolberthub/admissions/core"
	"github.com/tolberthub/admissions/core/student"
)

// TransportError is a network or server failure in networked mode. It is
// surfaced as a generic "try again" condition; no operation is retried
// automatically and the client never falls back mid-operation.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

type remotePortal struct {
	baseURL string
	http    *http.Client
}

var _ Portal = (*remotePortal)(nil)

type (
	healthResponse struct {
		OK bool `json:"ok"`
	}

	studentEnvelope struct {
		Student student.Student `json:"student"`
	}

	submissionEnvelope struct {
		Submission student.Submission `json:"submission"`
		Student    student.Student    `json:"student"`
	}

	adminEnvelope struct {
		Admin Admin `json:"admin"`
	}

	submissionsEnvelope struct {
		Submissions []student.StudentSubmission `json:"submissions"`
	}

	apiError struct {
		Error string `json:"error"`
	}
)

func (p *remotePortal) Health(ctx context.Context) error {
	var out healthResponse
	if err := p.do(ctx, http.MethodGet, "/api/health", nil, &out); err != nil {
		return err
	}
	if !out.OK {
		return &TransportError{Op: "health", Err: errors.New("server not ok")}
	}
	return nil
}

func (p *remotePortal) Register(ctx context.Context, ns student.NewStudent) (student.Student, error) {
	var out studentEnvelope
	if err := p.do(ctx, http.MethodPost, "/api/register", ns, &out); err != nil {
		return student.Student{}, err
	}
	return out.Student, nil
}

func (p *remotePortal) Login(ctx context.Context, creds student.Credentials) (student.Student, error) {
	var out studentEnvelope
	if err := p.do(ctx, http.MethodPost, "/api/login", creds, &out); err != nil {
		return student.Student{}, err
	}
	return out.Student, nil
}

func (p *remotePortal) GetStudent(ctx context.Context, id string) (student.Student, error) {
	var out studentEnvelope
	if err := p.do(ctx, http.MethodGet, "/api/students/"+url.PathEscape(id), nil, &out); err != nil {
		return student.Student{}, err
	}
	return out.Student, nil
}

func (p *remotePortal) Submit(ctx context.Context, studentID string, ns student.NewSubmission) (student.Submission, student.Student, error) {
	var out submissionEnvelope
	path := "/api/students/" + url.PathEscape(studentID) + "/submissions"
	if err := p.do(ctx, http.MethodPost, path, ns, &out); err != nil {
		return student.Submission{}, student.Student{}, err
	}
	return out.Submission, out.Student, nil
}

func (p *remotePortal) AdminLogin(ctx context.Context, email, password string) (Admin, error) {
	body := map[string]string{"email": email, "password": password}
	var out adminEnvelope
	if err := p.do(ctx, http.MethodPost, "/api/admin/login", body, &out); err != nil {
		if errors.Cause(err) == student.ErrInvalidCredentials {
			return Admin{}, ErrInvalidAdminCredentials
		}
		return Admin{}, err
	}
	return out.Admin, nil
}

func (p *remotePortal) AllSubmissions(ctx context.Context) ([]student.StudentSubmission, error) {
	var out submissionsEnvelope
	if err := p.do(ctx, http.MethodGet, "/api/admin/submissions", nil, &out); err != nil {
		return nil, err
	}
	return out.Submissions, nil
}

func (p *remotePortal) Summary(ctx context.Context) (student.Summary, error) {
	var out student.Summary
	if err := p.do(ctx, http.MethodGet, "/api/admin/summary", nil, &out); err != nil {
		return student.Summary{}, err
	}
	return out, nil
}

func (p *remotePortal) SetStatus(ctx context.Context, studentID, submissionID string, su student.StatusUpdate) (student.Student, error) {
	var out studentEnvelope
	path := "/api/admin/submissions/" + url.PathEscape(studentID) + "/" + url.PathEscape(submissionID) + "/status"
	if err := p.do(ctx, http.MethodPatch, path, su, &out); err != nil {
		return student.Student{}, err
	}
	return out.Student, nil
}

func (p *remotePortal) IssueLetter(ctx context.Context, studentID, submissionID string, lr student.LetterRequest) (student.Student, error) {
	var out studentEnvelope
	path := "/api/admin/submissions/" + url.PathEscape(studentID) + "/" + url.PathEscape(submissionID) + "/letter"
	if err := p.do(ctx, http.MethodPost, path, lr, &out); err != nil {
		return student.Student{}, err
	}
	return out.Student, nil
}

// do performs one JSON request/response round trip. Non-2xx responses are
// mapped back onto the domain error taxonomy by status code; anything
// transport-level becomes a *TransportError.
func (p *remotePortal) do(ctx context.Context, method, path string, body, out interface{}) error {
	op := method + " " + path

	var payload *bytes.Buffer
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return errors.Wrapf(err, "marshalling %s body", op)
		}
		payload = bytes.NewBuffer(raw)
	} else {
		payload = new(bytes.Buffer)
	}

	req, err := http.NewRequestWithContext(ctx, method, p.baseURL+path, payload)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := p.http.Do(req)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	defer res.Body.Close()

	if res.StatusCode >= 200 && res.StatusCode < 300 {
		if out == nil {
			return nil
		}
		if err := json.NewDecoder(res.Body).Decode(out); err != nil {
			return &TransportError{Op: op, Err: errors.Wrap(err, "decoding response")}
		}
		return nil
	}

	var apiErr apiError
	if err := json.NewDecoder(res.Body).Decode(&apiErr); err != nil || apiErr.Error == "" {
		return &TransportError{Op: op, Err: errors.Errorf("unexpected status %d", res.StatusCode)}
	}

	switch res.StatusCode {
	case http.StatusBadRequest:
		return core.NewValidationError(errors.New(apiErr.Error))
	case http.StatusUnauthorized:
		return student.ErrInvalidCredentials
	case http.StatusNotFound:
		return student.ErrNotFound
	case http.StatusConflict:
		return student.ErrEmailExists
	default:
		return &TransportError{Op: op, Err: errors.Errorf("status %d: %s", res.StatusCode, apiErr.Error)}
	}
}
