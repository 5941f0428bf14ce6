package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountPublic_DropsSecret(t *testing.T) {
	a := Account{
		Profile:        Profile{ID: "1", Name: "Alex", Email: "alex@x.com", UserType: UserTypeCollege},
		PasswordSecret: "secret1",
	}

	p := a.Public()

	assert.Equal(t, a.Profile, p)
	assert.NotContains(t, []string{p.ID, p.Name, p.Email, p.Bio, p.FieldOfStudy, p.ProfilePicture}, "secret1")
}

func TestUserType_Valid(t *testing.T) {
	for _, ut := range UserTypes {
		assert.True(t, ut.Valid(), ut)
	}
	assert.False(t, UserType("Graduate").Valid())
	assert.False(t, UserType("").Valid())
}

func TestProfilePatch_ApplyOnlyPresentFields(t *testing.T) {
	p := Profile{ID: "1", Name: "Alex", Email: "alex@x.com", UserType: UserTypeCollege, Bio: "old"}

	bio := "new bio"
	year := 2027
	ProfilePatch{Bio: &bio, GraduationYear: &year}.Apply(&p)

	assert.Equal(t, "Alex", p.Name)
	assert.Equal(t, "alex@x.com", p.Email)
	assert.Equal(t, UserTypeCollege, p.UserType)
	assert.Equal(t, "new bio", p.Bio)
	assert.Equal(t, 2027, p.GraduationYear)
}

func TestProfilePatch_Empty(t *testing.T) {
	assert.True(t, ProfilePatch{}.Empty())
	name := "x"
	assert.False(t, ProfilePatch{Name: &name}.Empty())
}

func TestCommunityPost_CloneIsDeep(t *testing.T) {
	orig := CommunityPost{ID: "p", Replies: []CommunityReply{{ID: "r1"}}}

	c := orig.Clone()
	c.Replies[0].Content = "changed"
	c.Replies = append(c.Replies, CommunityReply{ID: "r2"})

	require.Len(t, orig.Replies, 1)
	assert.Empty(t, orig.Replies[0].Content)
}
