package userservice

import (
	"errors"
	"time"

	"github.com/wrenlet/inkwell/internal/common"
	"github.com/wrenlet/inkwell/internal/supabase"
)

var (
	ErrDuplicateEmail        = errors.New("email already registered")
	ErrAuthenticationFailure = errors.New("invalid authentication credentials")
	ErrNotFound              = errors.New("profile not found")
)

const (
	// BackdoorUserID marks the session of the static administrator
	// account, which has no identity at the auth gateway.
	BackdoorUserID = "admin_user"

	defaultAdminEmail    = "admin@gmail.com"
	defaultAdminPassword = "admin@1234"
)

// Profile is the application-level user record mirrored from the auth
// identity by a remote trigger.
type Profile struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

// Session is the per-browser-session identity. IsAdmin is decided once
// at login and never updated within the session's lifetime. AccessToken
// is the gateway token used only for the best-effort sign-out.
type Session struct {
	UserID      string `json:"user_id"`
	Email       string `json:"email"`
	Name        string `json:"name"`
	IsAdmin     bool   `json:"is_admin"`
	AccessToken string `json:"-"`
}

// RegisteredEvent is the message published for the mail consumer after a
// successful sign-up.
type RegisteredEvent struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
}

type UserService struct {
	m     *profileModel
	mb    common.MessageProducer
	cache *common.Cache

	adminEmail string
	// bcrypt hash of the backdoor password; when empty the compiled-in
	// default pair is compared in constant time instead.
	adminPasswordHash string
}

// NewUserService wires the restricted and elevated gateway clients. mb
// and cache may be nil, disabling registration events and profile
// caching respectively. adminEmail/adminPasswordHash override the static
// administrator credentials; empty values keep the defaults.
func NewUserService(db, adm *supabase.Client, mb common.MessageProducer, cache *common.Cache, adminEmail, adminPasswordHash string) *UserService {
	if adminEmail == "" {
		adminEmail = defaultAdminEmail
	}

	return &UserService{
		m:                 &profileModel{db: db, adm: adm},
		mb:                mb,
		cache:             cache,
		adminEmail:        adminEmail,
		adminPasswordHash: adminPasswordHash,
	}
}
