package blogservice

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/wrenlet/inkwell/internal/supabase"
)

const (
	tablePosts = "blog_posts"

	// Embedded relation select for listings that show the author name.
	columnsWithAuthor = "*,profiles(first_name,last_name)"
)

type postModel struct {
	db  *supabase.Client
	adm *supabase.Client
}

// postRow is the wire shape of a post with the embedded profiles
// relation, renamed to Author on the way out.
type postRow struct {
	Post
	Profiles *Author `json:"profiles,omitempty"`
}

func (r *postRow) toPost() Post {
	p := r.Post
	if r.Profiles != nil {
		p.Author = r.Profiles
	} else {
		p.Author = &Author{FirstName: "Unknown", LastName: "User"}
	}
	return p
}

func toPosts(rows []postRow) []Post {
	posts := make([]Post, 0, len(rows))
	for i := range rows {
		posts = append(posts, rows[i].toPost())
	}
	return posts
}

func (m *postModel) insert(ctx context.Context, req *CreatePostRequest) (*Post, error) {
	videoLinks := []string{}
	if v := strings.TrimSpace(req.VideoURL); v != "" {
		videoLinks = append(videoLinks, v)
	}

	var p Post
	err := m.db.From(tablePosts).Insert(ctx, map[string]any{
		"author_id":       req.AuthorID,
		"title":           req.Title,
		"content":         req.Content,
		"video_links":     videoLinks,
		"cover_image_url": req.CoverImageURL,
		"published":       req.Publish,
	}, &p)
	if err != nil {
		return nil, err
	}

	return &p, nil
}

// getForAuthor loads a post scoped to (id, author). A post that exists
// but belongs to someone else is indistinguishable from one that does
// not exist.
func (m *postModel) getForAuthor(ctx context.Context, id, authorID string) (*Post, error) {
	var p Post
	err := m.db.From(tablePosts).Eq("id", id).Eq("author_id", authorID).Single(ctx, &p)
	if err != nil {
		return nil, mapNotFound(err)
	}

	return &p, nil
}

func (m *postModel) update(ctx context.Context, id, authorID, title, content string, publish bool) error {
	return m.db.From(tablePosts).Eq("id", id).Eq("author_id", authorID).Update(ctx, map[string]any{
		"title":      title,
		"content":    content,
		"published":  publish,
		"updated_at": time.Now().UTC().Format(time.RFC3339),
	})
}

// getAuthorID loads only the author of a post via the elevated client,
// for the delete authorization check.
func (m *postModel) getAuthorID(ctx context.Context, id string) (string, error) {
	var row struct {
		AuthorID string `json:"author_id"`
	}
	err := m.adm.From(tablePosts).Columns("author_id").Eq("id", id).Single(ctx, &row)
	if err != nil {
		return "", mapNotFound(err)
	}

	return row.AuthorID, nil
}

func (m *postModel) delete(ctx context.Context, id string) error {
	return m.adm.From(tablePosts).Eq("id", id).Delete(ctx)
}

func (m *postModel) getWithAuthor(ctx context.Context, id string) (*Post, error) {
	var row postRow
	err := m.db.From(tablePosts).Columns(columnsWithAuthor).Eq("id", id).Single(ctx, &row)
	if err != nil {
		return nil, mapNotFound(err)
	}

	p := row.toPost()
	return &p, nil
}

func (m *postModel) listPublished(ctx context.Context) ([]Post, error) {
	var rows []postRow
	err := m.db.From(tablePosts).Columns(columnsWithAuthor).Eq("published", "true").OrderDesc("created_at").Select(ctx, &rows)
	if err != nil {
		return nil, err
	}

	return toPosts(rows), nil
}

func (m *postModel) listByAuthor(ctx context.Context, authorID string) ([]Post, error) {
	var rows []postRow
	err := m.db.From(tablePosts).Eq("author_id", authorID).OrderDesc("created_at").Select(ctx, &rows)
	if err != nil {
		return nil, err
	}

	return toPosts(rows), nil
}

// listAll returns every post via the elevated client, for the admin
// dashboard.
func (m *postModel) listAll(ctx context.Context) ([]Post, error) {
	var rows []postRow
	err := m.adm.From(tablePosts).Columns(columnsWithAuthor).OrderDesc("created_at").Select(ctx, &rows)
	if err != nil {
		return nil, err
	}

	return toPosts(rows), nil
}

func mapNotFound(err error) error {
	if errors.Is(err, supabase.ErrRecordNotFound) {
		return ErrRecordNotFound
	}
	return err
}
