package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/dmitrijs2005/edutalk/internal/common"
	"github.com/dmitrijs2005/edutalk/internal/models"
)

func printProfile(w io.Writer, p models.Profile) {
	fmt.Fprintf(w, "Name:             %s\n", p.Name)
	fmt.Fprintf(w, "Email:            %s\n", p.Email)
	fmt.Fprintf(w, "User type:        %s\n", p.UserType)
	if p.FieldOfStudy != "" {
		fmt.Fprintf(w, "Field of study:   %s\n", p.FieldOfStudy)
	}
	if p.GraduationYear != 0 {
		fmt.Fprintf(w, "Graduation year:  %d\n", p.GraduationYear)
	}
	if p.Bio != "" {
		fmt.Fprintf(w, "Bio:              %s\n", p.Bio)
	}
	if p.ProfilePicture != "" {
		fmt.Fprintf(w, "Picture:          %s\n", p.ProfilePicture)
	}
}

// Profile edits the current profile field by field. Empty answers keep the
// current value.
func (a *App) Profile(ctx context.Context, _ []string) error {
	cur, ok := a.sessions.Current()
	if !ok {
		return common.ErrNoSession
	}

	var patch models.ProfilePatch
	next := cur

	text := []struct {
		label string
		value *string
		dst   **string
	}{
		{"Full name", &next.Name, &patch.Name},
		{"Email", &next.Email, &patch.Email},
		{"Field of study", &next.FieldOfStudy, &patch.FieldOfStudy},
		{"Bio", &next.Bio, &patch.Bio},
		{"Profile picture URL", &next.ProfilePicture, &patch.ProfilePicture},
	}
	for _, f := range text {
		answer, err := a.ask(fmt.Sprintf("%s [%s]", f.label, *f.value))
		if err != nil {
			return err
		}
		if answer != "" && answer != *f.value {
			v := answer
			*f.value = v
			*f.dst = &v
		}
	}

	ut, err := a.askUserType(string(cur.UserType))
	if err != nil {
		return err
	}
	if ut != string(cur.UserType) {
		t := models.UserType(ut)
		next.UserType = t
		patch.UserType = &t
	}

	yearPrompt := "Graduation year"
	if cur.GraduationYear != 0 {
		yearPrompt += " [" + strconv.Itoa(cur.GraduationYear) + "]"
	}
	answer, err := a.ask(yearPrompt)
	if err != nil {
		return err
	}
	if answer != "" {
		year, err := parseYear(answer)
		if err != nil {
			return err
		}
		if year != cur.GraduationYear {
			next.GraduationYear = year
			patch.GraduationYear = &year
		}
	}

	if patch.Empty() {
		fmt.Fprintln(a.out, "Nothing to update.")
		return nil
	}

	if err := validateForm(a.validate, ProfileForm{
		Name:           next.Name,
		Email:          next.Email,
		UserType:       string(next.UserType),
		Bio:            next.Bio,
		ProfilePicture: next.ProfilePicture,
		GraduationYear: next.GraduationYear,
	}); err != nil {
		return err
	}

	if err := a.sessions.UpdateProfile(ctx, patch); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Profile updated.")
	return nil
}
