package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/tolberthub/admissions/core"
	"github.com/tolberthub/admissions/core/student"
)

var errInvalidAdminCredentials = errors.New("invalid admin credentials")

// newAppHTTPErrorHandler returns a custom echo.HTTPErrorHandler that maps
// our error taxonomy to the wire contract: every non-2xx body is
// {"error": "..."} and domain rejections get their dedicated status codes.
func newAppHTTPErrorHandler(logger core.Logger) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		var code int
		var message string

		switch origErr := errors.Cause(err).(type) {
		case *echo.HTTPError:
			if origErr.Internal != nil {
				if herr, ok := origErr.Internal.(*echo.HTTPError); ok {
					origErr = herr
				}
			}
			code = origErr.Code
			if m, ok := origErr.Message.(string); ok {
				message = m
			} else {
				message = http.StatusText(code)
			}
		case validator.ValidationErrors:
			code = http.StatusBadRequest
			message = core.TranslateValidationErrors(origErr).Error()
		case *core.ValidationError:
			code = http.StatusBadRequest
			message = origErr.Error()
		default:
			switch errors.Cause(err) {
			case student.ErrEmailExists:
				code = http.StatusConflict
				message = student.ErrEmailExists.Error()
			case student.ErrInvalidCredentials:
				code = http.StatusUnauthorized
				message = student.ErrInvalidCredentials.Error()
			case errInvalidAdminCredentials:
				code = http.StatusUnauthorized
				message = errInvalidAdminCredentials.Error()
			case student.ErrNotFound:
				code = http.StatusNotFound
				message = student.ErrNotFound.Error()
			case student.ErrSubmissionNotFound:
				code = http.StatusNotFound
				message = student.ErrSubmissionNotFound.Error()
			default: // any other error is a server error
				code = http.StatusInternalServerError
				message = http.StatusText(code)
				if logger != nil {
					logger.Error(message, errors.Wrap(err, message))
				}
			}
		}

		if ctx.Echo().Debug && code == http.StatusInternalServerError {
			message = err.Error()
		}

		// Send response
		if !ctx.Response().Committed {
			if ctx.Request().Method == http.MethodHead {
				err = ctx.NoContent(code)
			} else {
				err = ctx.JSON(code, echo.Map{"error": message})
			}
			if err != nil {
				ctx.Echo().Logger.Error(err)
			}
		}
	}
}
