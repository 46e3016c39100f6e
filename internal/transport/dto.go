package transport

import (
	"errors"
	"unicode"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

type SignUpRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
	RoleID   uint   `json:"role"`
}

func (r SignUpRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Username, validation.Required, validation.Length(4, 20)),
		validation.Field(&r.Password, validation.Required, validation.Length(8, 32), validation.By(passwordStrength)),
	)
}

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r SignInRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required),
	)
}

type AdminSignInRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	RoleID   uint   `json:"role"`
}

func (r AdminSignInRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required),
		validation.Field(&r.Password, validation.Required),
		validation.Field(&r.RoleID, validation.Required),
	)
}

type ForgotPasswordRequest struct {
	Email       string `json:"email"`
	NewPassword string `json:"new_password"`
}

func (r ForgotPasswordRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.NewPassword, validation.Required, validation.Length(8, 32), validation.By(passwordStrength)),
	)
}

type CreateRoleRequest struct {
	Name string `json:"name"`
}

func (r CreateRoleRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required),
	)
}

// EditUserRequest fields are all optional, the cross-field username rule
// lives in the service.
type EditUserRequest struct {
	Username    string `json:"username"    form:"username"`
	Description string `json:"description" form:"description"`
	ImageURL    string `json:"imageUrl"    form:"imageUrl"`
}

type CreateCourseRequest struct {
	CourseTitle string  `json:"course_title" form:"course_title"`
	Description string  `json:"description"  form:"description"`
	Price       float64 `json:"price"        form:"price"`
	ImageURL    string  `json:"imageUrl"     form:"imageUrl"`
}

func (r CreateCourseRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.CourseTitle, validation.Required),
		validation.Field(&r.Description, validation.Required),
		validation.Field(&r.Price, validation.Required),
	)
}

type EditCourseRequest struct {
	CourseTitle string  `json:"course_title" form:"course_title"`
	Description string  `json:"description"  form:"description"`
	Price       float64 `json:"price"        form:"price"`
	ImageURL    string  `json:"imageUrl"     form:"imageUrl"`
}

// passwordStrength demands an upper-case letter, a lower-case letter and a
// digit or symbol, matching the sign-up rules the frontend was built for.
func passwordStrength(value interface{}) error {
	s, _ := value.(string)
	var upper, lower, other bool
	for _, r := range s {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r) || unicode.IsPunct(r) || unicode.IsSymbol(r):
			other = true
		}
	}
	if !upper || !lower || !other {
		return errors.New("the password is weak")
	}
	return nil
}
