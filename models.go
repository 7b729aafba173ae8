package users

import (
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// User is a stored user record. The id is assigned by the store and never
// changes or gets reused; updates replace name and email wholesale.
type User struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// CreateUserRequest is the payload for POST /users and PUT /users/:id.
// Email is optional; when present it must be a syntactically valid address.
type CreateUserRequest struct {
	Name  string `form:"name" json:"name"`
	Email string `form:"email" json:"email"`
}

// Validate will run validation rules
func (r CreateUserRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(
			&r.Name,
			validation.Required,
			validation.By(validateNotBlank),
		),
		validation.Field(
			&r.Email,
			is.Email,
		),
	)
}

// LoginResponse is the body returned by POST /auth/login.
type LoginResponse struct {
	Token   string `json:"token"`
	Message string `json:"message"`
}

func validateNotBlank(value any) error {
	s, _ := value.(string)
	if strings.TrimSpace(s) == "" {
		return errors.New("cannot be blank")
	}
	return nil
}
