package codec

import (
	"fmt"

	"github.com/dmitrijs2005/edutalk/internal/models"
	"github.com/dmitrijs2005/edutalk/internal/repositories/records"
)

type profileV1 struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	UserType       string `json:"userType"`
	ProfilePicture string `json:"profilePicture,omitempty"`
	Bio            string `json:"bio,omitempty"`
	FieldOfStudy   string `json:"fieldOfStudy,omitempty"`
	GraduationYear int    `json:"graduationYear,omitempty"`
}

type accountV1 struct {
	profileV1
	PasswordSecret string `json:"passwordSecret"`
}

// legacy portal shapes
type legacyProfile struct {
	profileV1
}

type legacyAccount struct {
	profileV1
	Password string `json:"password"`
}

func profileToV1(p models.Profile) profileV1 {
	return profileV1{
		ID:             p.ID,
		Name:           p.Name,
		Email:          p.Email,
		UserType:       string(p.UserType),
		ProfilePicture: p.ProfilePicture,
		Bio:            p.Bio,
		FieldOfStudy:   p.FieldOfStudy,
		GraduationYear: p.GraduationYear,
	}
}

func (p profileV1) model() (models.Profile, error) {
	if p.ID == "" {
		return models.Profile{}, fmt.Errorf("%w: profile without id", ErrMalformed)
	}
	return models.Profile{
		ID:             p.ID,
		Name:           p.Name,
		Email:          p.Email,
		UserType:       models.UserType(p.UserType),
		ProfilePicture: p.ProfilePicture,
		Bio:            p.Bio,
		FieldOfStudy:   p.FieldOfStudy,
		GraduationYear: p.GraduationYear,
	}, nil
}

// EncodeSession serializes the current-session record.
func EncodeSession(p models.Profile) ([]byte, error) {
	return seal(records.KeyCurrentSession, profileToV1(p))
}

// DecodeSession parses a current-session record.
func DecodeSession(raw []byte) (models.Profile, error) {
	var cur profileV1
	var old legacyProfile
	isLegacy, err := decode(records.KeyCurrentSession, raw, &cur, &old)
	if err != nil {
		return models.Profile{}, err
	}
	if isLegacy {
		cur = old.profileV1
	}
	return cur.model()
}

// EncodeDirectory serializes the account directory, secrets included.
func EncodeDirectory(accounts []models.Account) ([]byte, error) {
	out := make([]accountV1, len(accounts))
	for i, a := range accounts {
		out[i] = accountV1{profileV1: profileToV1(a.Profile), PasswordSecret: a.PasswordSecret}
	}
	return seal(records.KeyAccountDirectory, out)
}

// DecodeDirectory parses an account-directory record.
func DecodeDirectory(raw []byte) ([]models.Account, error) {
	var cur []accountV1
	var old []legacyAccount
	isLegacy, err := decode(records.KeyAccountDirectory, raw, &cur, &old)
	if err != nil {
		return nil, err
	}
	if isLegacy {
		cur = make([]accountV1, len(old))
		for i, a := range old {
			cur[i] = accountV1{profileV1: a.profileV1, PasswordSecret: a.Password}
		}
	}

	accounts := make([]models.Account, 0, len(cur))
	for _, a := range cur {
		p, err := a.model()
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, models.Account{Profile: p, PasswordSecret: a.PasswordSecret})
	}
	return accounts, nil
}
