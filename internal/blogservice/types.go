package blogservice

import (
	"errors"
	"time"

	"github.com/wrenlet/inkwell/internal/common"
	"github.com/wrenlet/inkwell/internal/supabase"
)

var (
	ErrRecordNotFound = errors.New("post not found")
	// ErrNotAuthorized is returned when a delete is attempted by someone
	// who is neither the author nor an administrator.
	ErrNotAuthorized = errors.New("not authorized to modify this post")
)

// Author is the subset of the profile joined into post listings.
type Author struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type Post struct {
	ID            string    `json:"id"`
	AuthorID      string    `json:"author_id"`
	Title         string    `json:"title"`
	Content       string    `json:"content"`
	CoverImageURL *string   `json:"cover_image_url"`
	VideoLinks    []string  `json:"video_links"`
	Published     bool      `json:"published"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	Author        *Author   `json:"author,omitempty"`
}

type CreatePostRequest struct {
	AuthorID string
	Title    string
	Content  string
	VideoURL string
	// CoverImageURL is set by the handler after a successful upload; a
	// failed upload leaves it nil and still creates the post.
	CoverImageURL *string
	Publish       bool
}

type BlogService struct {
	m     *postModel
	cache *common.Cache
}

// NewBlogService wires the restricted and elevated gateway clients.
// cache may be nil, disabling listing caches.
func NewBlogService(db, adm *supabase.Client, cache *common.Cache) *BlogService {
	return &BlogService{
		m:     &postModel{db: db, adm: adm},
		cache: cache,
	}
}
