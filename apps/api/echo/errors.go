package echoapi

import (
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/studyroom/backend/core"
	"github.com/studyroom/backend/core/schedule"
	"github.com/studyroom/backend/core/session"
	aisvc "github.com/studyroom/backend/services/ai"
)

var (
	errUnauthorized      = echo.NewHTTPError(http.StatusUnauthorized, "user not authenticated")
	errScheduleNotFound  = echo.NewHTTPError(http.StatusNotFound, schedule.ErrNotFound.Error())
	errSessionNotFound   = echo.NewHTTPError(http.StatusNotFound, session.ErrNotFound.Error())
	errScheduleTextEmpty = echo.NewHTTPError(http.StatusBadRequest, "schedule text is required")
)

// domainErrorCodes maps the domain errors whose message is safe to show to their status code.
// Calendar export failures are 500s, like the rest of the hosted functions.
var domainErrorCodes = map[error]int{
	schedule.ErrIDRequired:   http.StatusInternalServerError,
	schedule.ErrNotFound:     http.StatusInternalServerError,
	session.ErrNotFound:      http.StatusNotFound,
	session.ErrInvalidEnum:   http.StatusBadRequest,
	aisvc.ErrRateLimited:     http.StatusTooManyRequests,
	aisvc.ErrPaymentRequired: http.StatusPaymentRequired,
	aisvc.ErrGateway:         http.StatusInternalServerError,
}

// newAppHTTPErrorHandler returns a custom echo.HTTPErrorHandler that knows how to handle our errors.
// signalShutdown is called in order to gracefully shutdown the Server whenever a core.shutdown error is caught.
func newAppHTTPErrorHandler(logger core.Logger, translator ut.Translator, signalShutdown func()) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		var code int
		var message interface{}

		cause := errors.Cause(err)
		if c, ok := domainErrorCodes[cause]; ok {
			code = c
			message = cause.Error()
		} else {
			switch origErr := cause.(type) {
			case *echo.HTTPError:
				if origErr == middleware.ErrJWTMissing {
					code = http.StatusUnauthorized
					message = origErr.Message
					break
				}
				if origErr.Internal != nil {
					if herr, ok := origErr.Internal.(*echo.HTTPError); ok {
						origErr = herr
					}
				}
				code = origErr.Code
				message = origErr.Message
			case validator.ValidationErrors:
				fldErrs := make(map[string]string, len(origErr))
				for _, vErr := range origErr {
					fldErrs[vErr.Field()] = vErr.Translate(translator)
				}
				code = http.StatusBadRequest
				message = fldErrs
			case *core.ValidationError:
				if origErr.Fields != nil {
					fldErrs := make(map[string]string, len(origErr.Fields))
					for _, fErr := range origErr.Fields {
						fldErrs[fErr.Field] = fErr.Error
					}
					message = fldErrs
				} else {
					message = origErr.Error()
				}
				code = http.StatusBadRequest
			case *core.ConfigError:
				code = http.StatusInternalServerError
				message = origErr.Error()
				logger.Error("configuration error", err)
			default: // any other error is a server error
				code = http.StatusInternalServerError
				msg := http.StatusText(http.StatusInternalServerError)
				message = msg
				if ctx.Echo().Debug {
					message = err.Error()
				}

				args := []interface{}{errors.Wrap(err, msg)}
				if claims, cErr := getContextClaims(ctx); cErr == nil {
					args = append(args, core.Person{ID: claims.Subject, Email: claims.Email})
				}
				logger.Error(msg, args...)

				// shutting down...
				if core.IsShutdown(err) {
					signalShutdown()
				}
			}
		}

		if m, ok := message.(string); ok {
			message = echo.Map{"error": m}
		}

		// Send response
		if !ctx.Response().Committed {
			if ctx.Request().Method == http.MethodHead { // Issue #608
				err = ctx.NoContent(code)
			} else {
				err = ctx.JSON(code, message)
			}
			if err != nil {
				ctx.Echo().Logger.Error(err)
			}
		}
	}
}
