package student

import (
	"github.com/tolberthub/admissions/core"
)

type serviceMock struct {
	service
}

// NewServiceMock returns a Service whose email dispatch is expected to run
// synchronously (pair it with emailsvc.NewConsoleServiceMock).
func NewServiceMock(repo Repository, mailSvc core.EmailService) Service {
	return &serviceMock{
		service: service{
			repo:    repo,
			mailSvc: mailSvc,
		},
	}
}
