package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/tolberthub/admissions/core"
	"github.com/tolberthub/admissions/core/student"
)

type adminApi struct {
	svc   student.Service
	admin core.AdminIdentity
}

func registerAdminAPI(g *echo.Group, svc student.Service, admin core.AdminIdentity) {
	api := adminApi{svc: svc, admin: admin}

	ag := g.Group("/admin")
	ag.POST("/login", api.login)
	ag.GET("/submissions", api.submissions)
	ag.GET("/summary", api.summary)
	ag.PATCH("/submissions/:id/:subID/status", api.setStatus)
	ag.POST("/submissions/:id/:subID/letter", api.issueLetter)
}

type adminLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Handlers

func (api *adminApi) login(ctx echo.Context) error {
	var data adminLoginRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to adminLoginRequest")
	}

	if !api.admin.Authenticate(data.Email, data.Password) {
		return errInvalidAdminCredentials
	}
	return ctx.JSON(http.StatusOK, echo.Map{
		"admin": echo.Map{"email": api.admin.Email, "name": api.admin.Name},
	})
}

func (api *adminApi) submissions(ctx echo.Context) error {
	subs, err := api.svc.AllSubmissions()
	if err != nil {
		return errors.Wrap(err, "listing submissions")
	}
	return ctx.JSON(http.StatusOK, echo.Map{"submissions": subs})
}

func (api *adminApi) summary(ctx echo.Context) error {
	sum, err := api.svc.Summary()
	if err != nil {
		return errors.Wrap(err, "computing summary")
	}
	return ctx.JSON(http.StatusOK, sum)
}

func (api *adminApi) setStatus(ctx echo.Context) error {
	var data student.StatusUpdate
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to StatusUpdate")
	}

	usr, err := api.svc.SetStatus(ctx.Param("id"), ctx.Param("subID"), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, echo.Map{"student": usr})
}

func (api *adminApi) issueLetter(ctx echo.Context) error {
	var data student.LetterRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to LetterRequest")
	}
	if data.IssuedBy == "" {
		data.IssuedBy = api.admin.Name
	}

	usr, err := api.svc.IssueLetter(ctx.Param("id"), ctx.Param("subID"), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, echo.Map{"student": usr})
}
