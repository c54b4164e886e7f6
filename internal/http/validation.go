package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/mrlokans/bookstore/internal/auth"
	"github.com/mrlokans/bookstore/internal/entities"
)

func init() {
	binding.EnableDecoderDisallowUnknownFields = true

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(jsonFieldName)
		_ = v.RegisterValidation("filled", validateFilled)
		_ = v.RegisterValidation("username", validateUsername)
		_ = v.RegisterValidation("cents", validateCents)
	}
}

// --- Request payloads ---

type CreateBookRequest struct {
	Name  string  `json:"name" binding:"required,filled,max=255"`
	ISBN  string  `json:"isbn" binding:"max=20"`
	Value float64 `json:"value" binding:"gte=0,lte=99999999.99,cents"`
}

func (r CreateBookRequest) Fields() entities.BookFields {
	return entities.BookFields{Name: strings.TrimSpace(r.Name), ISBN: r.ISBN, Value: r.Value}
}

// UpdateBookRequest is a partial update; absent fields are left unchanged.
type UpdateBookRequest struct {
	Name  *string  `json:"name" binding:"omitempty,filled,max=255"`
	ISBN  *string  `json:"isbn" binding:"omitempty,max=20"`
	Value *float64 `json:"value" binding:"omitempty,gte=0,lte=99999999.99,cents"`
}

func (r UpdateBookRequest) Changes() entities.BookChanges {
	changes := entities.BookChanges{ISBN: r.ISBN, Value: r.Value}
	if r.Name != nil {
		name := strings.TrimSpace(*r.Name)
		changes.Name = &name
	}
	return changes
}

type CreateStoreRequest struct {
	Name    string `json:"name" binding:"required,filled,max=255"`
	Address string `json:"address" binding:"max=255"`
	Active  bool   `json:"active"`
}

func (r CreateStoreRequest) Fields() entities.StoreFields {
	return entities.StoreFields{Name: strings.TrimSpace(r.Name), Address: r.Address, Active: r.Active}
}

// UpdateStoreRequest is a partial update; absent fields are left unchanged.
type UpdateStoreRequest struct {
	Name    *string `json:"name" binding:"omitempty,filled,max=255"`
	Address *string `json:"address" binding:"omitempty,max=255"`
	Active  *bool   `json:"active"`
}

func (r UpdateStoreRequest) Changes() entities.StoreChanges {
	changes := entities.StoreChanges{Address: r.Address, Active: r.Active}
	if r.Name != nil {
		name := strings.TrimSpace(*r.Name)
		changes.Name = &name
	}
	return changes
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required,filled,max=255"`
	Username string `json:"username" binding:"required,username"`
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

// LoginRequest accepts either the username or the email as login.
type LoginRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// --- Binding ---

// bindJSON decodes and validates the body into req. On failure it sends the
// 422 response and returns false. An empty body is validated as {}.
func bindJSON(c *gin.Context, req any) bool {
	err := c.ShouldBindJSON(req)
	if errors.Is(err, io.EOF) {
		err = binding.Validator.ValidateStruct(req)
	}
	if err == nil {
		return true
	}
	respondValidationErrors(c, collectFieldErrors(err))
	return false
}

// fieldError is one rejected field; order is kept for the summary message.
type fieldError struct {
	field   string
	message string
}

func respondValidationErrors(c *gin.Context, fieldErrors []fieldError) {
	grouped := make(map[string][]string, len(fieldErrors))
	for _, fe := range fieldErrors {
		grouped[fe.field] = append(grouped[fe.field], fe.message)
	}

	message := fieldErrors[0].message
	if more := len(fieldErrors) - 1; more == 1 {
		message += " (and 1 more error)"
	} else if more > 1 {
		message += fmt.Sprintf(" (and %d more errors)", more)
	}

	c.JSON(http.StatusUnprocessableEntity, ValidationErrorResponse{Message: message, Errors: grouped})
}

func collectFieldErrors(err error) []fieldError {
	var (
		validationErrs validator.ValidationErrors
		typeErr        *json.UnmarshalTypeError
	)

	switch {
	case errors.As(err, &validationErrs):
		result := make([]fieldError, 0, len(validationErrs))
		for _, fe := range validationErrs {
			result = append(result, fieldError{field: fe.Field(), message: validationMessage(fe)})
		}
		return result
	case errors.As(err, &typeErr):
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		return []fieldError{{field: field, message: typeMessage(field, typeErr.Type)}}
	}

	if name, ok := strings.CutPrefix(err.Error(), "json: unknown field "); ok {
		field := strings.Trim(name, `"`)
		return []fieldError{{field: field, message: fmt.Sprintf("The %s field is not allowed.", field)}}
	}
	return []fieldError{{field: "body", message: "The request body must be a valid JSON object."}}
}

func validationMessage(fe validator.FieldError) string {
	field := fe.Field()
	isString := fe.Kind() == reflect.String

	switch fe.Tag() {
	case "required", "filled":
		return fmt.Sprintf("The %s field is required.", field)
	case "max":
		if isString {
			return fmt.Sprintf("The %s field must not be greater than %s characters.", field, fe.Param())
		}
		return fmt.Sprintf("The %s field must not be greater than %s.", field, fe.Param())
	case "min":
		if isString {
			return fmt.Sprintf("The %s field must be at least %s characters.", field, fe.Param())
		}
		return fmt.Sprintf("The %s field must be at least %s.", field, fe.Param())
	case "gte":
		return fmt.Sprintf("The %s field must be at least %s.", field, fe.Param())
	case "lte":
		return fmt.Sprintf("The %s field must not be greater than %s.", field, fe.Param())
	case "cents":
		return fmt.Sprintf("The %s field must have at most 2 decimal places.", field)
	case "email":
		return fmt.Sprintf("The %s field must be a valid email address.", field)
	case "username":
		return fmt.Sprintf("The %s field must be 3-64 characters long and contain only letters, numbers, dashes and underscores.", field)
	default:
		return fmt.Sprintf("The %s field is invalid.", field)
	}
}

func typeMessage(field string, t reflect.Type) string {
	switch t.Kind() {
	case reflect.String:
		return fmt.Sprintf("The %s field must be a string.", field)
	case reflect.Bool:
		return fmt.Sprintf("The %s field must be true or false.", field)
	case reflect.Float32, reflect.Float64, reflect.Int, reflect.Int64, reflect.Uint, reflect.Uint64:
		return fmt.Sprintf("The %s field must be a number.", field)
	default:
		return fmt.Sprintf("The %s field is invalid.", field)
	}
}

func jsonFieldName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	if name == "" {
		return field.Name
	}
	return name
}

func validateFilled(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func validateUsername(fl validator.FieldLevel) bool {
	return auth.UsernamePattern.MatchString(fl.Field().String())
}

// validateCents accepts amounts with at most two decimal places, matching
// the decimal(10,2) value column.
func validateCents(fl validator.FieldLevel) bool {
	v := fl.Field().Float()
	return math.Abs(math.Round(v*100)/100-v) <= 1e-9*math.Max(1, math.Abs(v))
}
