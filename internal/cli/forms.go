package cli

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/dmitrijs2005/edutalk/internal/common"
	"github.com/dmitrijs2005/edutalk/internal/models"
	"github.com/go-playground/validator"
)

// SignupForm mirrors the registration page.
type SignupForm struct {
	Name            string `validate:"required"`
	Email           string `validate:"required,email"`
	Password        string `validate:"required,min=6"`
	ConfirmPassword string `validate:"eqfield=Password"`
	UserType        string `validate:"usertype"`
	FieldOfStudy    string
	GraduationYear  int `validate:"omitempty,min=1900,max=2100"`
}

// ProfileForm is the editable part of a profile after the edits were merged.
type ProfileForm struct {
	Name           string `validate:"required"`
	Email          string `validate:"required,email"`
	UserType       string `validate:"usertype"`
	Bio            string `validate:"max=500"`
	ProfilePicture string `validate:"omitempty,url"`
	GraduationYear int    `validate:"omitempty,min=1900,max=2100"`
}

type PostForm struct {
	Title   string `validate:"required,max=200"`
	Content string `validate:"required"`
}

type ReplyForm struct {
	Content string `validate:"required"`
}

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("usertype", func(fl validator.FieldLevel) bool {
		return models.UserType(fl.Field().String()).Valid()
	})
	return v
}

// validateForm returns nil or an error wrapping common.ErrValidation that
// lists one message per failed field.
func validateForm(v *validator.Validate, form any) error {
	err := v.Struct(form)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", common.ErrValidation, err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return fmt.Errorf("%w: %s", common.ErrValidation, strings.Join(msgs, "; "))
}

func fieldMessage(fe validator.FieldError) string {
	label := fieldLabels[fe.Field()]
	if label == "" {
		label = fe.Field()
	}

	switch fe.Tag() {
	case "required":
		return label + " is required"
	case "email":
		return "Please enter a valid email address"
	case "eqfield":
		return "Passwords do not match"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters long", label, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", label, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters long", label, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", label, fe.Param())
	case "usertype":
		return "User type must be one of: " + userTypeList()
	case "url":
		return label + " must be a URL"
	default:
		return fmt.Sprintf("%s is invalid (%s)", label, fe.Tag())
	}
}

var fieldLabels = map[string]string{
	"Name":            "Full name",
	"Email":           "Email",
	"Password":        "Password",
	"ConfirmPassword": "Password confirmation",
	"UserType":        "User type",
	"GraduationYear":  "Graduation year",
	"Bio":             "Bio",
	"ProfilePicture":  "Profile picture",
	"Title":           "Title",
	"Content":         "Content",
}

func userTypeList() string {
	names := make([]string, len(models.UserTypes))
	for i, t := range models.UserTypes {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}
