package validator

import (
	"regexp"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

var usernameRegex = regexp.MustCompile(`^[\w.@+-]+$`)

// PostForm carries the parsed fields of the post create/edit form.
type PostForm struct {
	Title       string
	Text        string
	PubDate     time.Time
	CategoryID  int64
	LocationID  *int64
	IsPublished bool
	ImagePath   *string
}

// CommentForm carries the single field of the comment form.
type CommentForm struct {
	Text string
}

// RegistrationForm carries the fields of the registration form. Email and
// names are optional.
type RegistrationForm struct {
	Username        string
	Email           string
	FirstName       string
	LastName        string
	Password        string
	PasswordConfirm string
}

// ProfileForm carries the editable profile fields.
type ProfileForm struct {
	Username  string
	Email     string
	FirstName string
	LastName  string
}

// Validator provides validation methods for form input.
type Validator struct{}

// NewValidator creates a new Validator instance.
func NewValidator() *Validator {
	return &Validator{}
}

// ValidatePost validates the post form.
func (v *Validator) ValidatePost(f *PostForm) error {
	return validation.ValidateStruct(f,
		validation.Field(&f.Title,
			validation.Required.Error("title is required"),
			validation.Length(1, 256).Error("title must be at most 256 characters"),
		),
		validation.Field(&f.Text,
			validation.Required.Error("text is required"),
		),
		validation.Field(&f.PubDate,
			validation.Required.Error("publication date is required"),
		),
		validation.Field(&f.CategoryID,
			validation.Required.Error("category is required"),
		),
	)
}

// ValidateComment validates the comment form.
func (v *Validator) ValidateComment(f *CommentForm) error {
	return validation.ValidateStruct(f,
		validation.Field(&f.Text,
			validation.Required.Error("comment text is required"),
		),
	)
}

// ValidateRegistration validates the registration form.
func (v *Validator) ValidateRegistration(f *RegistrationForm) error {
	err := validation.ValidateStruct(f,
		validation.Field(&f.Username,
			validation.Required.Error("username is required"),
			validation.Length(1, 150).Error("username must be at most 150 characters"),
			validation.Match(usernameRegex).Error("username may contain only letters, digits and @/./+/-/_"),
		),
		validation.Field(&f.Email,
			is.Email.Error("invalid email address"),
		),
		validation.Field(&f.Password,
			validation.Required.Error("password is required"),
			validation.Length(8, 0).Error("password must be at least 8 characters"),
		),
		validation.Field(&f.PasswordConfirm,
			validation.Required.Error("password confirmation is required"),
		),
	)
	if err != nil {
		return err
	}

	if f.Password != f.PasswordConfirm {
		return validation.Errors{
			"PasswordConfirm": validation.NewError("password_mismatch", "passwords do not match"),
		}
	}
	return nil
}

// ValidateProfile validates the profile edit form.
func (v *Validator) ValidateProfile(f *ProfileForm) error {
	return validation.ValidateStruct(f,
		validation.Field(&f.Username,
			validation.Required.Error("username is required"),
			validation.Length(1, 150).Error("username must be at most 150 characters"),
			validation.Match(usernameRegex).Error("username may contain only letters, digits and @/./+/-/_"),
		),
		validation.Field(&f.Email,
			is.Email.Error("invalid email address"),
		),
	)
}

// FieldErrors flattens an ozzo validation error into a field → message map
// for template rendering. A non-validation error lands under "__all__".
func FieldErrors(err error) map[string]string {
	if err == nil {
		return nil
	}

	fields := make(map[string]string)
	if ve, ok := err.(validation.Errors); ok {
		for field, fieldErr := range ve {
			fields[field] = fieldErr.Error()
		}
		return fields
	}
	fields["__all__"] = err.Error()
	return fields
}
