package userservice

import (
	"context"
	"errors"

	"github.com/wrenlet/inkwell/internal/supabase"
)

const (
	tableProfiles = "profiles"
	tablePosts    = "blog_posts"
	tableOTP      = "user_otp"
)

// profileModel wraps the row operations on the profiles table and the
// account-deletion sweep. db is the restricted client, adm the elevated
// one.
type profileModel struct {
	db  *supabase.Client
	adm *supabase.Client
}

func (m *profileModel) getByID(ctx context.Context, id string) (*Profile, error) {
	var p Profile
	err := m.db.From(tableProfiles).Eq("id", id).Single(ctx, &p)
	if err != nil {
		switch {
		case errors.Is(err, supabase.ErrRecordNotFound):
			return nil, ErrNotFound
		default:
			return nil, err
		}
	}

	return &p, nil
}

func (m *profileModel) insert(ctx context.Context, p *Profile) error {
	return m.adm.From(tableProfiles).Insert(ctx, map[string]any{
		"id":         p.ID,
		"email":      p.Email,
		"first_name": p.FirstName,
		"last_name":  p.LastName,
		"is_admin":   p.IsAdmin,
	}, nil)
}

func (m *profileModel) list(ctx context.Context) ([]Profile, error) {
	var profiles []Profile
	err := m.adm.From(tableProfiles).OrderDesc("created_at").Select(ctx, &profiles)
	if err != nil {
		return nil, err
	}

	return profiles, nil
}

// deleteAccountData removes the user's posts, one-time-code records, and
// profile, in that order. Each deletion is an independent statement; a
// failure partway leaves a partially deleted account behind.
func (m *profileModel) deleteAccountData(ctx context.Context, userID string) error {
	if err := m.adm.From(tablePosts).Eq("author_id", userID).Delete(ctx); err != nil {
		return err
	}

	if err := m.adm.From(tableOTP).Eq("user_id", userID).Delete(ctx); err != nil {
		return err
	}

	if err := m.adm.From(tableProfiles).Eq("id", userID).Delete(ctx); err != nil {
		return err
	}

	return nil
}
