package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/tolberthub/admissions/core/student"
)

type studentApi struct {
	svc student.Service
}

func registerStudentAPI(g *echo.Group, svc student.Service) {
	api := studentApi{svc: svc}

	g.GET("/health", api.health)
	g.POST("/register", api.register)
	g.POST("/login", api.login)
	g.GET("/students/:id", api.retrieve)
	g.POST("/students/:id/submissions", api.submit)
}

// Handlers

func (api *studentApi) health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, echo.Map{"ok": true, "mode": "backend"})
}

func (api *studentApi) register(ctx echo.Context) error {
	var data student.NewStudent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewStudent")
	}

	usr, err := api.svc.Register(data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, echo.Map{"student": usr})
}

func (api *studentApi) login(ctx echo.Context) error {
	var data student.Credentials
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Credentials")
	}

	usr, err := api.svc.Authenticate(data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, echo.Map{"student": usr})
}

func (api *studentApi) retrieve(ctx echo.Context) error {
	usr, err := api.svc.GetByID(ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, echo.Map{"student": usr})
}

func (api *studentApi) submit(ctx echo.Context) error {
	var data student.NewSubmission
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewSubmission")
	}

	sub, usr, err := api.svc.Submit(ctx.Param("id"), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, echo.Map{"submission": sub, "student": usr})
}
