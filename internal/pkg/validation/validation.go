package validation

import (
	"errors"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

var (
	once     sync.Once
	instance *validator.Validate
)

// Validator returns the shared validator with the project's custom tags
// registered. Currently that is only "username".
func Validator() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
			return usernamePattern.MatchString(fl.Field().String())
		})
		instance = v
	})
	return instance
}

// Messages maps "Field.tag" to the text shown for that failure.
type Messages map[string]string

// Error carries the message of the first failing field.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string { return e.Message }

// Struct validates in and converts the first failure into an *Error using
// msgs. Failures without a registered message fall back to a generic
// "<field> is invalid".
func Struct(in any, msgs Messages) error {
	err := Validator().Struct(in)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}

	fe := verrs[0]
	if m, ok := msgs[fe.StructField()+"."+fe.Tag()]; ok {
		return &Error{Field: fe.StructField(), Message: m}
	}
	return &Error{Field: fe.StructField(), Message: humanize(fe.StructField()) + " is invalid"}
}

func humanize(field string) string {
	var b strings.Builder
	for i, r := range field {
		if i > 0 && r >= 'A' && r <= 'Z' {
			b.WriteByte(' ')
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
