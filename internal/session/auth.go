package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/edutalk/internal/common"
	"github.com/dmitrijs2005/edutalk/internal/dbx"
	"github.com/dmitrijs2005/edutalk/internal/logging"
	"github.com/dmitrijs2005/edutalk/internal/metrics"
	"github.com/dmitrijs2005/edutalk/internal/models"
	"github.com/dmitrijs2005/edutalk/internal/repositories/records"
)

// Login makes the account with exactly this email and secret the current
// session. A mismatch returns false and leaves the session untouched; the
// error is reserved for storage failures and context cancellation.
func (s *Store) Login(ctx context.Context, email, secret string) (bool, error) {
	done, err := s.simulateLatency(ctx)
	defer done()
	if err != nil {
		return false, err
	}

	s.mu.Lock()
	p, ok, err := s.login(ctx, email, secret)
	s.mu.Unlock()

	switch {
	case err != nil:
		s.metrics.AuthAttempt("login", metrics.OutcomeError)
		s.log.Error(ctx, "login failed", logging.Err(err))
		return false, err
	case !ok:
		s.metrics.AuthAttempt("login", metrics.OutcomeRejected)
		s.log.Info(ctx, "login rejected", "email", email)
		return false, nil
	}

	s.metrics.AuthAttempt("login", metrics.OutcomeSuccess)
	s.log.Info(ctx, "login succeeded", "user_id", p.ID)
	s.publish("login", p.ID)
	return true, nil
}

func (s *Store) login(ctx context.Context, email, secret string) (models.Profile, bool, error) {
	repo := s.records(s.db)

	dir, err := s.loadDirectory(ctx, repo)
	if err != nil {
		return models.Profile{}, false, err
	}

	for _, a := range dir {
		if a.Email == email && a.PasswordSecret == secret {
			p := a.Public()
			if err := saveSession(ctx, repo, p); err != nil {
				return models.Profile{}, false, err
			}
			s.current = &p
			return p, true, nil
		}
	}
	return models.Profile{}, false, nil
}

// Signup registers a new account and signs it in. It returns false without
// touching any state when the email is already registered.
func (s *Store) Signup(ctx context.Context, draft models.SignupDraft) (bool, error) {
	done, err := s.simulateLatency(ctx)
	defer done()
	if err != nil {
		return false, err
	}

	s.mu.Lock()
	p, ok, err := s.signup(ctx, draft)
	s.mu.Unlock()

	switch {
	case err != nil:
		s.metrics.AuthAttempt("signup", metrics.OutcomeError)
		s.log.Error(ctx, "signup failed", logging.Err(err))
		return false, err
	case !ok:
		s.metrics.AuthAttempt("signup", metrics.OutcomeRejected)
		s.log.Info(ctx, "signup rejected, email already registered", "email", draft.Email)
		return false, nil
	}

	s.metrics.AuthAttempt("signup", metrics.OutcomeSuccess)
	s.log.Info(ctx, "account created", "user_id", p.ID)
	s.publish("signup", p.ID)
	return true, nil
}

func (s *Store) signup(ctx context.Context, draft models.SignupDraft) (models.Profile, bool, error) {
	dir, err := s.loadDirectory(ctx, s.records(s.db))
	if err != nil {
		return models.Profile{}, false, err
	}
	if indexByEmail(dir, draft.Email) >= 0 {
		return models.Profile{}, false, nil
	}

	acc := models.Account{
		Profile: models.Profile{
			ID:             s.newID(),
			Name:           draft.Name,
			Email:          draft.Email,
			UserType:       draft.UserType,
			FieldOfStudy:   draft.FieldOfStudy,
			GraduationYear: draft.GraduationYear,
		},
		PasswordSecret: draft.Secret,
	}
	dir = append(dir, acc)
	p := acc.Public()

	if err := s.persistBoth(ctx, dir, p); err != nil {
		return models.Profile{}, false, fmt.Errorf("signup: %w", err)
	}
	s.current = &p
	return p, true, nil
}

// Logout clears the session. The account directory is left as is.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	prev := s.current
	err := s.records(s.db).Delete(ctx, records.KeyCurrentSession)
	if err == nil {
		s.current = nil
	}
	s.mu.Unlock()

	if err != nil {
		s.log.Error(ctx, "logout failed", logging.Err(err))
		return fmt.Errorf("logout: %w", err)
	}
	if prev != nil {
		s.log.Info(ctx, "logged out", "user_id", prev.ID)
		s.publish("logout", prev.ID)
	}
	return nil
}

// UpdateProfile merges patch into the current profile and into the matching
// directory entry. Without a session it does nothing; without a matching
// entry only the session is written. Changing the email to
// one owned by another account fails with common.ErrEmailTaken.
func (s *Store) UpdateProfile(ctx context.Context, patch models.ProfilePatch) error {
	s.mu.Lock()
	p, changed, err := s.updateProfile(ctx, patch)
	s.mu.Unlock()

	if errors.Is(err, common.ErrEmailTaken) {
		s.log.Info(ctx, "profile update rejected, email already registered")
		return err
	}
	if err != nil {
		s.log.Error(ctx, "profile update failed", logging.Err(err))
		return fmt.Errorf("update profile: %w", err)
	}
	if changed {
		s.log.Info(ctx, "profile updated", "user_id", p.ID)
		s.publish("update-profile", p.ID)
	}
	return nil
}

func (s *Store) updateProfile(ctx context.Context, patch models.ProfilePatch) (models.Profile, bool, error) {
	if s.current == nil || patch.Empty() {
		return models.Profile{}, false, nil
	}

	dir, err := s.loadDirectory(ctx, s.records(s.db))
	if err != nil {
		return models.Profile{}, false, err
	}

	next := *s.current
	patch.Apply(&next)

	if i := indexByEmail(dir, next.Email); i >= 0 && dir[i].ID != next.ID {
		return models.Profile{}, false, common.ErrEmailTaken
	}

	matched := false
	for i := range dir {
		if dir[i].ID == next.ID {
			patch.Apply(&dir[i].Profile)
			matched = true
		}
	}

	// An unreadable directory also lands here and must survive untouched.
	if !matched {
		s.log.Warn(ctx, "session has no directory entry, updating session only", "user_id", next.ID)
		err = saveSession(ctx, s.records(s.db), next)
	} else {
		err = s.persistBoth(ctx, dir, next)
	}
	if err != nil {
		return models.Profile{}, false, err
	}
	s.current = &next
	return next, true, nil
}

// persistBoth writes the directory and the session in one transaction.
func (s *Store) persistBoth(ctx context.Context, dir []models.Account, p models.Profile) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.records(tx)
		if err := saveDirectory(ctx, repo, dir); err != nil {
			return err
		}
		return saveSession(ctx, repo, p)
	})
}

func indexByEmail(dir []models.Account, email string) int {
	for i, a := range dir {
		if a.Email == email {
			return i
		}
	}
	return -1
}
