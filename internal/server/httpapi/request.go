package httpapi

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// report violations under the JSON field name, not the Go field name
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation("password", passwordStrength); err != nil {
		panic(err)
	}
	return v
}

// passwordStrength requires at least one uppercase letter, one lowercase
// letter and one digit. Length is enforced by a separate min tag.
func passwordStrength(fl validator.FieldLevel) bool {
	var upper, lower, digit bool
	for _, r := range fl.Field().String() {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return upper && lower && digit
}

var markupPattern = regexp.MustCompile(`<[^>]*>`)

// sanitize neutralizes free-text input before validation: markup is
// stripped, control characters removed, surrounding whitespace trimmed.
func sanitize(s string) string {
	s = markupPattern.ReplaceAllString(s, "")
	s = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
	return strings.TrimSpace(s)
}

func sanitizePtr(s *string) {
	if s != nil {
		*s = sanitize(*s)
	}
}

type registerRequest struct {
	Username  string `json:"username" validate:"required,min=3,max=30,alphanum"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8,password"`
	FirstName string `json:"firstName" validate:"required,min=1,max=50"`
	LastName  string `json:"lastName" validate:"required,min=1,max=50"`
}

func (r *registerRequest) sanitize() {
	r.Username = sanitize(r.Username)
	r.Email = sanitize(r.Email)
	r.FirstName = sanitize(r.FirstName)
	r.LastName = sanitize(r.LastName)
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (r *loginRequest) sanitize() {
	r.Email = sanitize(r.Email)
}

// updateProfileRequest is a partial update: nil fields stay unchanged and
// are validated only when present.
type updateProfileRequest struct {
	FirstName *string `json:"firstName" validate:"omitempty,min=1,max=50"`
	LastName  *string `json:"lastName" validate:"omitempty,min=1,max=50"`
	Email     *string `json:"email" validate:"omitempty,email"`
}

func (r *updateProfileRequest) sanitize() {
	sanitizePtr(r.FirstName)
	sanitizePtr(r.LastName)
	sanitizePtr(r.Email)
}

type sanitizable interface {
	sanitize()
}

// bindRequest decodes, sanitizes and validates a JSON body. On failure it
// writes the aggregated VALIDATION_ERROR response and returns false; every
// violated field is reported, not just the first.
func bindRequest(c *gin.Context, req sanitizable) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		respondValidation(c, []FieldError{{Field: "body", Message: "must be a valid JSON object"}})
		return false
	}

	req.sanitize()

	if err := validate.Struct(req); err != nil {
		respondValidation(c, fieldErrors(err))
		return false
	}
	return true
}

func fieldErrors(err error) []FieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Field: "body", Message: "is invalid"}}
	}

	details := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, FieldError{Field: fe.Field(), Message: violationMessage(fe)})
	}
	return details
}

func violationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "alphanum":
		return "must contain only letters and digits"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "password":
		return "must contain an uppercase letter, a lowercase letter and a digit"
	default:
		return "is invalid"
	}
}
