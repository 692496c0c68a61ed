package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/studyroom/backend/core/schedule"
	aisvc "github.com/studyroom/backend/services/ai"
)

const (
	calendarContentType        = "text/calendar; charset=utf-8"
	calendarContentDisposition = `inline; filename="study-schedule.ics"`
)

type scheduleApi struct {
	svc       schedule.ServiceInterface
	generator aisvc.Generator
	validate  *validator.Validate
}

func registerScheduleAPI(
	g *echo.Group,
	jwt echo.MiddlewareFunc,
	svc schedule.ServiceInterface,
	generator aisvc.Generator,
	validate *validator.Validate,
) {
	api := scheduleApi{
		svc:       svc,
		generator: generator,
		validate:  validate,
	}

	// un-authed endpoints
	g.GET("/generate-calendar", api.generateCalendar)
	g.POST("/generate-schedule", api.generateSchedule)
	g.POST("/schedules/render", api.render)

	// authed endpoints
	sg := g.Group("/schedules", jwt)
	sg.POST("", api.create)
	sg.GET("", api.query)
	sg.GET("/:id/segments", api.segments)
}

// Handlers

func (api *scheduleApi) generateCalendar(ctx echo.Context) error {
	doc, err := api.svc.Calendar(ctx.Request().Context(), ctx.QueryParam("scheduleId"))
	if err != nil {
		return errors.Wrap(err, "exporting calendar")
	}
	ctx.Response().Header().Set(echo.HeaderContentDisposition, calendarContentDisposition)
	return ctx.Blob(http.StatusOK, calendarContentType, []byte(doc))
}

type generateScheduleResponse struct {
	Schedule string `json:"schedule"`
}

func (api *scheduleApi) generateSchedule(ctx echo.Context) error {
	var data aisvc.Request
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ai.Request")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	text, err := api.generator.GenerateSchedule(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "generating schedule")
	}
	return ctx.JSON(http.StatusOK, generateScheduleResponse{Schedule: text})
}

type renderRequest struct {
	Schedule string `json:"schedule"`
}

func (api *scheduleApi) render(ctx echo.Context) error {
	var data renderRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to renderRequest")
	}
	if data.Schedule == "" {
		return errScheduleTextEmpty
	}
	return ctx.JSON(http.StatusOK, schedule.Render(data.Schedule))
}

func (api *scheduleApi) create(ctx echo.Context) error {
	userID, err := getContextUserID(ctx)
	if err != nil {
		return err
	}

	var data schedule.NewSchedule
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewSchedule")
	}
	if err = data.Validate(api.validate); err != nil {
		return err
	}

	sched, err := api.svc.Create(ctx.Request().Context(), userID, data)
	if err != nil {
		return errors.Wrap(err, "creating schedule")
	}
	return ctx.JSON(http.StatusCreated, sched)
}

func (api *scheduleApi) query(ctx echo.Context) error {
	userID, err := getContextUserID(ctx)
	if err != nil {
		return err
	}

	scheds, err := api.svc.QueryByUser(ctx.Request().Context(), userID)
	if err != nil {
		return errors.Wrap(err, "querying schedules")
	}
	if scheds == nil {
		scheds = []schedule.Schedule{}
	}
	return ctx.JSON(http.StatusOK, scheds)
}

func (api *scheduleApi) segments(ctx echo.Context) error {
	userID, err := getContextUserID(ctx)
	if err != nil {
		return err
	}

	segments, err := api.svc.Segments(ctx.Request().Context(), userID, ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == schedule.ErrNotFound {
			return errScheduleNotFound
		}
		return errors.Wrap(err, "rendering schedule")
	}
	return ctx.JSON(http.StatusOK, segments)
}
