package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidRequest marks a plan request that failed validation.
var ErrInvalidRequest = errors.New("invalid plan request")

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("nonblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	}); err != nil {
		panic(fmt.Sprintf("registering nonblank validator: %v", err))
	}
	return v
}

// Validator exposes the shared validator so other packages apply the same rules.
func Validator() *validator.Validate {
	return validate
}

// ValidateRequest checks a user context and conversation before a session runs.
// The context must already have defaults applied.
func ValidateRequest(uc UserContext, conversation []ConversationMessage) error {
	if err := validate.Struct(uc); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidRequest, describe(err))
	}
	for i, m := range conversation {
		if err := validate.Struct(m); err != nil {
			return fmt.Errorf("%w: message %d: %s", ErrInvalidRequest, i, describe(err))
		}
	}
	return nil
}

func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("%s failed %q", fe.Field(), fe.Tag()))
	}
	return strings.Join(parts, "; ")
}
