// Package validation holds the input checks shared by the user handlers.
// Every function here is pure.
package validation

import (
	"errors"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

const (
	MinNameLength     = 1
	MaxNameLength     = 100
	MinPasswordLength = 6

	FieldName     = "name"
	FieldEmail    = "email"
	FieldPassword = "password"

	MsgInvalidName     = "Name must be between 1 and 100 characters"
	MsgInvalidEmail    = "Invalid email format"
	MsgInvalidPassword = "Password must be at least 6 characters long"

	// Custom validator tags backed by the predicates below.
	TagUserName     = "user_name"
	TagUserEmail    = "user_email"
	TagUserPassword = "user_password"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// FieldErrors maps a request field to its human readable problems.
type FieldErrors map[string][]string

func (e FieldErrors) Add(field, message string) {
	e[field] = append(e[field], message)
}

func (e FieldErrors) Empty() bool {
	return len(e) == 0
}

// UserData is a partial user record. A nil field was absent from the input
// and is not validated.
type UserData struct {
	Name     *string `json:"name" validate:"omitnil,user_name"`
	Email    *string `json:"email" validate:"omitnil,user_email"`
	Password *string `json:"password" validate:"omitnil,user_password"`
}

var messages = map[string]string{
	FieldName:     MsgInvalidName,
	FieldEmail:    MsgInvalidEmail,
	FieldPassword: MsgInvalidPassword,
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := Register(v); err != nil {
		panic(err)
	}
	return v
}

// Register installs the user rules on v and makes it report fields by their
// json name. Request DTOs reference the rules through their struct tags.
func Register(v *validator.Validate) error {
	v.RegisterTagNameFunc(jsonName)

	rules := map[string]func(string) bool{
		TagUserName:     ValidateName,
		TagUserEmail:    ValidateEmail,
		TagUserPassword: ValidatePassword,
	}
	for tag, rule := range rules {
		if err := v.RegisterValidation(tag, stringRule(rule)); err != nil {
			return err
		}
	}
	return nil
}

func stringRule(rule func(string) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		field := fl.Field()
		return field.Kind() == reflect.String && rule(field.String())
	}
}

func jsonName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	if name == "" {
		return field.Name
	}
	return name
}

// FromError turns validator failures into FieldErrors. ok is false when err
// is not a validation failure.
func FromError(err error) (FieldErrors, bool) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, false
	}

	errs := FieldErrors{}
	for _, fe := range verrs {
		msg, known := messages[fe.Field()]
		if !known {
			msg = "Invalid " + fe.Field()
		}
		errs.Add(fe.Field(), msg)
	}
	return errs, true
}

func ValidateName(name string) bool {
	n := utf8.RuneCountInString(strings.TrimSpace(name))
	return n >= MinNameLength && n <= MaxNameLength
}

func ValidateEmail(email string) bool {
	return emailPattern.MatchString(email)
}

func ValidatePassword(password string) bool {
	return utf8.RuneCountInString(password) >= MinPasswordLength
}

// ValidateUserID parses a path id. ok is false for anything that is not a
// base-10 integer greater than zero.
func ValidateUserID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func ValidateUserData(data UserData) FieldErrors {
	if err := validate.Struct(data); err != nil {
		if errs, ok := FromError(err); ok {
			return errs
		}
	}
	return FieldErrors{}
}
