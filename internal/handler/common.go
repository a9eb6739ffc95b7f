package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/movie-rental-api/internal/repository"
	"github.com/iliyamo/movie-rental-api/internal/service"
	"github.com/iliyamo/movie-rental-api/internal/validation"
)

// storageTimeout bounds the storage calls made while serving one request.
const storageTimeout = 5 * time.Second

var (
	// errMalformedID is answered with 400 before any storage call is made.
	errMalformedID = errors.New("invalid id")
	errBadBody     = errors.New("invalid body")
)

func storageCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), storageTimeout)
}

// parseID reads the :id path parameter.
func parseID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, errMalformedID
	}
	return id, nil
}

// bind decodes the JSON body into dst.  A value of the wrong JSON type is
// reported as a violation on that field; any other decode failure is
// errBadBody.
func bind(c echo.Context, dst any) error {
	err := (&echo.DefaultBinder{}).BindBody(c, dst)
	if err == nil {
		return nil
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return &service.ValidationError{Violations: []validation.Violation{
			{Field: typeErr.Field, Reason: wantType(typeErr.Type)},
		}}
	}
	return errBadBody
}

func wantType(t reflect.Type) string {
	if t == nil {
		return "has the wrong type"
	}
	switch t.Kind() {
	case reflect.Bool:
		return "must be a boolean"
	case reflect.String:
		return "must be a string"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "must be an integer"
	case reflect.Float32, reflect.Float64:
		return "must be a number"
	}
	return "has the wrong type"
}

func validationFailed(c echo.Context, violations []validation.Violation) error {
	return c.JSON(http.StatusBadRequest, echo.Map{
		"error":      validation.Result{Violations: violations}.Error(),
		"violations": violations,
	})
}

// respondError maps err to a status code and JSON body.  Anything that is
// not a known client error is logged and answered with 500.
func respondError(c echo.Context, log logrus.FieldLogger, err error) error {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		return validationFailed(c, verr.Violations)
	case errors.Is(err, errMalformedID), errors.Is(err, errBadBody):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, service.ErrUnknownGenre):
		return validationFailed(c, []validation.Violation{{Field: "genreId", Reason: "does not reference an existing genre"}})
	case errors.Is(err, repository.ErrCustomerNotFound),
		errors.Is(err, repository.ErrGenreNotFound),
		errors.Is(err, repository.ErrMovieNotFound),
		errors.Is(err, repository.ErrUserNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, repository.ErrEmailExists):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "user already registered"})
	case errors.Is(err, service.ErrInvalidCredentials):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	log.WithError(err).WithFields(logrus.Fields{
		"method":     c.Request().Method,
		"route":      c.Path(),
		"request_id": c.Response().Header().Get(echo.HeaderXRequestID),
	}).Error("request failed")
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}

func orStandard(log logrus.FieldLogger) logrus.FieldLogger {
	if log == nil {
		return logrus.StandardLogger()
	}
	return log
}
