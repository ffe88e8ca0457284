package userservice

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/wrenlet/inkwell/internal/common"
	"github.com/wrenlet/inkwell/internal/supabase"
)

// Register creates a new identity at the auth gateway. The profile row
// is created by a remote trigger, not here. The user is not logged in
// afterwards. A user.registered event is published for the mail
// consumer on a best-effort basis.
func (s *UserService) Register(ctx context.Context, email, firstName, lastName, password string) error {
	v := common.NewValidator()
	validateEmail(v, email)
	validateName(v, firstName, "first_name")
	validateName(v, lastName, "last_name")
	validatePassword(v, password)
	if !v.Valid() {
		return v.ValidationError()
	}

	user, err := s.m.db.SignUp(ctx, email, password, map[string]any{
		"first_name": firstName,
		"last_name":  lastName,
	})
	if err != nil {
		switch {
		case errors.Is(err, supabase.ErrDuplicateEmail):
			return ErrDuplicateEmail
		default:
			return err
		}
	}

	if s.mb != nil {
		event, err := json.Marshal(RegisteredEvent{
			UserID:    user.ID,
			Email:     user.Email,
			FirstName: firstName,
		})
		if err == nil {
			// The registration email is best effort; a broker outage must
			// not fail the registration itself.
			_ = s.mb.Publish(ctx, event, common.UserRegisteredKey, common.UserExchange)
		}
	}

	return nil
}

// Login authenticates a credential pair. The static administrator pair
// short-circuits into an admin session with no gateway round trip; every
// gateway-authenticated account gets IsAdmin false regardless of the
// stored flag.
func (s *UserService) Login(ctx context.Context, email, password string) (*Session, error) {
	v := common.NewValidator()
	v.Check(email != "", "email", "must be provided")
	v.Check(password != "", "password", "must be provided")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	if email == s.adminEmail && s.matchAdminPassword(password) {
		return &Session{
			UserID:  BackdoorUserID,
			Email:   email,
			Name:    "Admin",
			IsAdmin: true,
		}, nil
	}

	auth, err := s.m.db.SignInWithPassword(ctx, email, password)
	if err != nil {
		switch {
		case errors.Is(err, supabase.ErrInvalidCredentials):
			return nil, ErrAuthenticationFailure
		default:
			return nil, err
		}
	}

	name := "User"
	if profile, err := s.GetProfile(ctx, auth.User.ID); err == nil && profile.FirstName != "" {
		name = profile.FirstName
	}

	return &Session{
		UserID:      auth.User.ID,
		Email:       auth.User.Email,
		Name:        name,
		IsAdmin:     false,
		AccessToken: auth.AccessToken,
	}, nil
}

// matchAdminPassword compares against the configured bcrypt hash when
// one is set, otherwise against the compiled-in default pair.
func (s *UserService) matchAdminPassword(password string) bool {
	if s.adminPasswordHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(s.adminPasswordHash), []byte(password)) == nil
	}

	return subtle.ConstantTimeCompare([]byte(password), []byte(defaultAdminPassword)) == 1
}

// Logout revokes the gateway token. Callers treat a failure as
// non-fatal: the browser session is cleared regardless.
func (s *UserService) Logout(ctx context.Context, sess *Session) error {
	if sess.AccessToken == "" {
		return nil
	}

	return s.m.db.SignOut(ctx, sess.AccessToken)
}

// DeleteAccount removes the user's posts, one-time-code records, and
// profile after re-verifying the password with a fresh sign-in. The
// confirmation phrase must be the literal text "DELETE"; otherwise
// nothing is mutated. There is no rollback across the deletion steps.
func (s *UserService) DeleteAccount(ctx context.Context, sess *Session, password, confirm string) error {
	v := common.NewValidator()
	v.Check(password != "", "password", "must be provided")
	v.Check(confirm == "DELETE", "confirm", `type "DELETE" to confirm account deletion`)
	if !v.Valid() {
		return v.ValidationError()
	}

	if _, err := s.m.db.SignInWithPassword(ctx, sess.Email, password); err != nil {
		return ErrAuthenticationFailure
	}

	if err := s.m.deleteAccountData(ctx, sess.UserID); err != nil {
		return err
	}

	s.invalidate(sess.UserID)

	return nil
}

// GetProfile returns the profile for a user ID, consulting the cache
// first.
func (s *UserService) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	if s.cache != nil {
		if cached, ok := s.cache.Get(common.CacheKeyProfile(userID)); ok {
			return cached.(*Profile), nil
		}
	}

	profile, err := s.m.getByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Set(common.CacheKeyProfile(userID), profile)
	}

	return profile, nil
}

// ListProfiles returns every profile via the elevated client, for the
// admin dashboard.
func (s *UserService) ListProfiles(ctx context.Context) ([]Profile, error) {
	return s.m.list(ctx)
}

// AdminCreateUser creates a pre-confirmed identity and its profile row
// with the chosen administrator flag. This is the only path that sets
// the flag.
func (s *UserService) AdminCreateUser(ctx context.Context, email, firstName, lastName, password string, isAdmin bool) error {
	v := common.NewValidator()
	validateEmail(v, email)
	validateName(v, firstName, "first_name")
	validateName(v, lastName, "last_name")
	validatePassword(v, password)
	if !v.Valid() {
		return v.ValidationError()
	}

	user, err := s.m.adm.AdminCreateUser(ctx, email, password)
	if err != nil {
		switch {
		case errors.Is(err, supabase.ErrDuplicateEmail):
			return ErrDuplicateEmail
		default:
			return err
		}
	}

	return s.m.insert(ctx, &Profile{
		ID:        user.ID,
		Email:     email,
		FirstName: firstName,
		LastName:  lastName,
		IsAdmin:   isAdmin,
	})
}

// AdminDeleteUser removes an identity via the elevated client; the
// remote foreign keys cascade to the profile and posts.
func (s *UserService) AdminDeleteUser(ctx context.Context, userID string) error {
	if err := s.m.adm.AdminDeleteUser(ctx, userID); err != nil {
		return err
	}

	s.invalidate(userID)

	return nil
}

func (s *UserService) invalidate(userID string) {
	if s.cache == nil {
		return
	}

	s.cache.Delete(common.CacheKeyProfile(userID))
	s.cache.Delete(common.CacheKeyPostsByAuthor(userID))
	s.cache.Delete(common.CacheKeyPublishedPosts())
}
