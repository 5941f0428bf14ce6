package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/edutalk/internal/common"
	"github.com/dmitrijs2005/edutalk/internal/models"
)

// Prompt helpers, swappable in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getMultiline  = GetMultiline
)

func (a *App) ask(prompt string) (string, error) {
	return getSimpleText(a.reader, prompt, a.out)
}

// Signup walks through the registration form and signs the new account in.
func (a *App) Signup(ctx context.Context, _ []string) error {
	var form SignupForm
	var err error

	if form.Name, err = a.ask("Full name"); err != nil {
		return err
	}
	if form.Email, err = a.ask("Email"); err != nil {
		return err
	}
	if form.Password, err = getPassword(a.reader, a.fd, "Password", a.out); err != nil {
		return err
	}
	if form.ConfirmPassword, err = getPassword(a.reader, a.fd, "Confirm password", a.out); err != nil {
		return err
	}
	if form.UserType, err = a.askUserType(""); err != nil {
		return err
	}
	if form.FieldOfStudy, err = a.ask("Field of study (optional)"); err != nil {
		return err
	}
	year, err := a.ask("Graduation year (optional)")
	if err != nil {
		return err
	}
	if form.GraduationYear, err = parseYear(year); err != nil {
		return err
	}

	if err := validateForm(a.validate, form); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Creating account...")
	ok, err := a.sessions.Signup(ctx, models.SignupDraft{
		Name:           form.Name,
		Email:          form.Email,
		Secret:         form.Password,
		UserType:       models.UserType(form.UserType),
		FieldOfStudy:   form.FieldOfStudy,
		GraduationYear: form.GraduationYear,
	})
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(a.out, "An account with this email already exists.")
		return nil
	}
	fmt.Fprintf(a.out, "Welcome to EduTalk, %s!\n", form.Name)
	return nil
}

// Login asks for credentials. Email is taken from args when given.
func (a *App) Login(ctx context.Context, args []string) error {
	var email string
	if len(args) > 0 {
		email = args[0]
	} else {
		var err error
		if email, err = a.ask("Email"); err != nil {
			return err
		}
	}
	password, err := getPassword(a.reader, a.fd, "Password", a.out)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Signing in...")
	ok, err := a.sessions.Login(ctx, email, password)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(a.out, "Invalid email or password.")
		return nil
	}

	p, _ := a.sessions.Current()
	fmt.Fprintf(a.out, "Welcome back, %s!\n", p.Name)
	return nil
}

func (a *App) Logout(ctx context.Context, _ []string) error {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "You are not signed in.")
		return nil
	}
	return a.sessions.Logout(ctx)
}

func (a *App) WhoAmI(_ context.Context, _ []string) error {
	p, ok := a.sessions.Current()
	if !ok {
		return common.ErrNoSession
	}
	printProfile(a.out, p)
	return nil
}

// askUserType offers the user types as a numbered menu. An empty answer
// keeps current, or picks the first type when current is empty.
func (a *App) askUserType(current string) (string, error) {
	var b strings.Builder
	b.WriteString("User type")
	for i, t := range models.UserTypes {
		fmt.Fprintf(&b, "\n  %d) %s", i+1, t)
	}
	if current != "" {
		fmt.Fprintf(&b, "\n(current: %s)", current)
	}

	answer, err := a.ask(b.String())
	if err != nil {
		return "", err
	}
	if answer == "" {
		if current != "" {
			return current, nil
		}
		return string(models.UserTypes[0]), nil
	}
	if n, err := strconv.Atoi(answer); err == nil && n >= 1 && n <= len(models.UserTypes) {
		return string(models.UserTypes[n-1]), nil
	}
	for _, t := range models.UserTypes {
		if strings.EqualFold(answer, string(t)) {
			return string(t), nil
		}
	}
	return answer, nil
}

func parseYear(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: Graduation year must be a number", common.ErrValidation)
	}
	return n, nil
}
