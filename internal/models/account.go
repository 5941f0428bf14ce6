// Package models defines the EduTalk domain types shared by the stores, the
// codec and the terminal client.
package models

// UserType classifies an account holder.
type UserType string

const (
	UserTypeHighSchool   UserType = "High School"
	UserTypeCollege      UserType = "College"
	UserTypeAdultLearner UserType = "Adult Learner"
)

// UserTypes lists the valid user types in display order.
var UserTypes = []UserType{UserTypeHighSchool, UserTypeCollege, UserTypeAdultLearner}

// Valid reports whether t is one of the known user types.
func (t UserType) Valid() bool {
	for _, v := range UserTypes {
		if t == v {
			return true
		}
	}
	return false
}

// Profile is the public view of an Account. It has no secret field, so a
// Profile can be held by the session and persisted as the current-session
// record without leaking credentials.
type Profile struct {
	ID             string
	Name           string
	Email          string
	UserType       UserType
	ProfilePicture string
	Bio            string
	FieldOfStudy   string
	GraduationYear int // 0 when unknown
}

// Account is a directory entry. PasswordSecret is stored as entered; the
// directory never leaves the session store.
type Account struct {
	Profile
	PasswordSecret string
}

// Public returns the redacted projection of a.
func (a Account) Public() Profile {
	return a.Profile
}

// SignupDraft carries everything needed to register an account; the id is
// assigned by the store.
type SignupDraft struct {
	Name           string
	Email          string
	Secret         string
	UserType       UserType
	FieldOfStudy   string
	GraduationYear int
}

// ProfilePatch is a partial profile update: nil fields are left unchanged.
// The id is immutable and therefore not part of the patch.
type ProfilePatch struct {
	Name           *string
	Email          *string
	UserType       *UserType
	ProfilePicture *string
	Bio            *string
	FieldOfStudy   *string
	GraduationYear *int
}

// Empty reports whether the patch changes nothing.
func (p ProfilePatch) Empty() bool {
	return p.Name == nil && p.Email == nil && p.UserType == nil && p.ProfilePicture == nil &&
		p.Bio == nil && p.FieldOfStudy == nil && p.GraduationYear == nil
}

// Apply merges the present fields of p into pr.
func (p ProfilePatch) Apply(pr *Profile) {
	if p.Name != nil {
		pr.Name = *p.Name
	}
	if p.Email != nil {
		pr.Email = *p.Email
	}
	if p.UserType != nil {
		pr.UserType = *p.UserType
	}
	if p.ProfilePicture != nil {
		pr.ProfilePicture = *p.ProfilePicture
	}
	if p.Bio != nil {
		pr.Bio = *p.Bio
	}
	if p.FieldOfStudy != nil {
		pr.FieldOfStudy = *p.FieldOfStudy
	}
	if p.GraduationYear != nil {
		pr.GraduationYear = *p.GraduationYear
	}
}
