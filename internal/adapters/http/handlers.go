package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/silkmarket/core/internal/domain/entities"
	"github.com/silkmarket/core/internal/infrastructure/logger"
)

// MessageResponse is returned by successful writes
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	ID      *int64 `json:"id,omitempty"`
}

// ErrorResponse is the body of every non-validation failure
type ErrorResponse struct {
	Error string `json:"error"`
}

// ValidationErrorResponse lists every rejected field
type ValidationErrorResponse struct {
	Errors entities.ValidationErrors `json:"errors"`
}

// Validator adapts go-playground/validator to echo. Field names in
// reported errors are the JSON names.
type Validator struct {
	validator *validator.Validate
}

// NewValidator creates a validator with the isodate tag registered
func NewValidator() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		_, err := entities.ParseDate(fl.Field().String())
		return err == nil
	})
	return &Validator{validator: v}
}

func (v *Validator) Validate(i interface{}) error {
	return v.validator.Struct(i)
}

// normalizer is implemented by requests that clean their input before validation
type normalizer interface {
	Normalize()
}

// bindAndValidate decodes the body into req and validates it. Rejected
// input is reported as entities.ValidationErrors.
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return bindErrors(err)
	}

	if n, ok := req.(normalizer); ok {
		n.Normalize()
	}

	if err := c.Validate(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return fieldErrors(verrs)
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

// NewErrorHandler renders handler errors: validation failures as a field
// list, everything else as {"error": message}. Server errors are logged.
func NewErrorHandler(log *logger.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var verrs entities.ValidationErrors
		if errors.As(err, &verrs) {
			_ = c.JSON(http.StatusBadRequest, ValidationErrorResponse{Errors: verrs})
			return
		}

		code := http.StatusInternalServerError
		message := "Something went wrong!"

		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
			if msg, ok := he.Message.(string); ok {
				message = msg
			} else {
				message = http.StatusText(code)
			}
		}

		if code >= http.StatusInternalServerError {
			log.Errorw("Request failed",
				"method", c.Request().Method,
				"path", c.Path(),
				"status", code,
				"error", err,
			)
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, ErrorResponse{Error: message})
	}
}

func fieldErrors(verrs validator.ValidationErrors) entities.ValidationErrors {
	out := make(entities.ValidationErrors, 0, len(verrs))
	for _, fe := range verrs {
		out.Add(fe.Field(), fieldMessage(fe.Field(), fe.Tag()))
	}
	return out
}

func bindErrors(err error) entities.ValidationErrors {
	var out entities.ValidationErrors
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		out.Add(typeErr.Field, fieldMessage(typeErr.Field, "type"))
		return out
	}
	out.Add("body", "Invalid request format")
	return out
}

func fieldMessage(field, tag string) string {
	switch field {
	case "location":
		return "Location is required"
	case "date":
		return "Valid date is required"
	}

	label := strings.ReplaceAll(field, "_", " ")
	if label != "" {
		label = strings.ToUpper(label[:1]) + label[1:]
	}
	if tag == "gt" {
		return label + " must be greater than zero"
	}
	return label + " must be a positive number"
}

// parseID reads the :id path parameter
func parseID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid ID")
	}
	return id, nil
}

// mutationError maps a service error from an admin write onto a response.
func mutationError(log *logger.Logger, err error, entity, action string) error {
	switch {
	case errors.Is(err, entities.ErrNoFieldsToUpdate):
		return echo.NewHTTPError(http.StatusBadRequest, "No valid fields to update")
	case errors.Is(err, entities.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, entity+" not found")
	default:
		log.Errorw("Admin write failed", "entity", entity, "action", action, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to "+action+" "+strings.ToLower(entity))
	}
}

func int64Ptr(v int64) *int64 { return &v }
