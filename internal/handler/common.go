package handler // handler defines http handlers

import (
	"errors"   // errors classifies failures by sentinel
	"fmt"      // fmt builds flash messages
	"log/slog" // slog records the detailed cause of a failure
	"net/http" // net/http provides status codes
	"strconv"  // strconv parses path identifiers

	"github.com/labstack/echo/v4" // echo defines request context types

	"github.com/iliyamo/fyyur/internal/repository" // repository defines store error kinds
	"github.com/iliyamo/fyyur/internal/service"    // service defines ValidationError
)

// errMalformed marks a request whose body or path could not be parsed.
var errMalformed = errors.New("malformed request")

// Error kinds reported in the "error" field of a failed response.
const (
	kindValidation = "validation"
	kindNotFound   = "not_found"
	kindConstraint = "constraint"
	kindConnection = "connection"
	kindInternal   = "internal"
)

// classify maps an error to its HTTP status and kind.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, errMalformed), service.IsValidation(err):
		return http.StatusBadRequest, kindValidation
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound, kindNotFound
	case errors.Is(err, repository.ErrConstraint):
		return http.StatusConflict, kindConstraint
	case errors.Is(err, repository.ErrConnection):
		return http.StatusServiceUnavailable, kindConnection
	}
	return http.StatusInternalServerError, kindInternal
}

// fail logs the cause of err and answers with its status, its kind and an
// optional generic flash message. The cause itself never reaches the client
// except for the list of invalid fields.
func fail(c echo.Context, log *slog.Logger, err error, flash string) error {
	status, kind := classify(err)
	attrs := []any{
		"err", err,
		"status", status,
		"method", c.Request().Method,
		"path", c.Path(),
		"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
	}
	if status >= http.StatusInternalServerError {
		log.Error("request failed", attrs...)
	} else {
		log.Info("request rejected", attrs...)
	}
	body := echo.Map{"error": kind}
	if flash != "" {
		body["flash"] = flash
	}
	var ve *service.ValidationError
	if errors.As(err, &ve) {
		body["fields"] = ve.Fields
	}
	return c.JSON(status, body)
}

// parseID reads the :id path parameter.
func parseID(c echo.Context) (uint64, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("%w: invalid id %q", errMalformed, c.Param("id"))
	}
	return id, nil
}

// bind decodes a form or JSON body into dst.
func bind(c echo.Context, dst any) error {
	if err := c.Bind(dst); err != nil {
		return fmt.Errorf("%w: %v", errMalformed, err)
	}
	return nil
}

// Flash messages shown after a mutation.
func listedFlash(entity, name string) string {
	return fmt.Sprintf("%s %s was successfully listed!", entity, name)
}

func notListedFlash(entity, name string) string {
	if name == "" {
		return fmt.Sprintf("ERROR: %s could not be listed.", entity)
	}
	return fmt.Sprintf("ERROR: %s %s could not be listed.", entity, name)
}

func editedFlash(entity string) string { return entity + " was successfully edited!" }

func notEditedFlash(entity, id string) string {
	return fmt.Sprintf("ERROR: %s %s could not be edited.", entity, id)
}

func deletedFlash(entity string) string { return entity + " was successfully deleted!" }

func notDeletedFlash(entity, id string) string {
	return fmt.Sprintf("ERROR: %s %s could not be deleted.", entity, id)
}
