package blogservice

import (
	"context"

	"github.com/wrenlet/inkwell/internal/common"
)

// Validate reports the field errors of a new post. Callers with side
// effects of their own (the cover image upload) run it first so a
// rejected post never triggers them.
func (r *CreatePostRequest) Validate() error {
	v := common.NewValidator()
	validateTitle(v, r.Title)
	validateContent(v, r.Content)
	validateID(v, r.AuthorID, "author_id")
	if !v.Valid() {
		return v.ValidationError()
	}

	return nil
}

// CreatePost stores a new post. The cover image, if any, is uploaded
// separately by the caller beforehand; its failure never fails the post.
func (s *BlogService) CreatePost(ctx context.Context, req *CreatePostRequest) (*Post, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	req.Content = sanitizeContent(req.Content)

	post, err := s.m.insert(ctx, req)
	if err != nil {
		return nil, err
	}

	s.invalidate(req.AuthorID)

	return post, nil
}

// GetPostForEdit loads a post scoped to (id, author). A foreign post
// yields the same ErrRecordNotFound as an absent one.
func (s *BlogService) GetPostForEdit(ctx context.Context, id, authorID string) (*Post, error) {
	v := common.NewValidator()
	validateID(v, id, "id")
	validateID(v, authorID, "author_id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.getForAuthor(ctx, id, authorID)
}

// UpdatePost rewrites title, content, and the published flag of a post
// owned by authorID, bumping the update timestamp.
func (s *BlogService) UpdatePost(ctx context.Context, id, authorID, title, content string, publish bool) error {
	v := common.NewValidator()
	validateID(v, id, "id")
	validateTitle(v, title)
	validateContent(v, content)
	if !v.Valid() {
		return v.ValidationError()
	}

	// Scope check first so an update of someone else's post reports
	// not-found rather than silently patching zero rows.
	if _, err := s.m.getForAuthor(ctx, id, authorID); err != nil {
		return err
	}

	if err := s.m.update(ctx, id, authorID, title, sanitizeContent(content), publish); err != nil {
		return err
	}

	s.invalidate(authorID)

	return nil
}

// DeletePost removes a post. The author and administrators may delete;
// anyone else gets ErrNotAuthorized. Removal is immediate and
// irreversible at this layer.
func (s *BlogService) DeletePost(ctx context.Context, id, requesterID string, isAdmin bool) error {
	v := common.NewValidator()
	validateID(v, id, "id")
	if !v.Valid() {
		return v.ValidationError()
	}

	authorID, err := s.m.getAuthorID(ctx, id)
	if err != nil {
		return err
	}

	if authorID != requesterID && !isAdmin {
		return ErrNotAuthorized
	}

	if err := s.m.delete(ctx, id); err != nil {
		return err
	}

	s.invalidate(authorID)

	return nil
}

// GetVisiblePost loads a post for viewing. An unpublished post is
// visible only to its author; to everyone else it is exactly not-found.
func (s *BlogService) GetVisiblePost(ctx context.Context, id, viewerID string) (*Post, error) {
	v := common.NewValidator()
	validateID(v, id, "id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	post, err := s.m.getWithAuthor(ctx, id)
	if err != nil {
		return nil, err
	}

	if !post.Published && (viewerID == "" || viewerID != post.AuthorID) {
		return nil, ErrRecordNotFound
	}

	return post, nil
}

// ListPublished returns every published post, newest first. The result
// is cached briefly; there is no pagination.
func (s *BlogService) ListPublished(ctx context.Context) ([]Post, error) {
	if s.cache != nil {
		if cached, ok := s.cache.Get(common.CacheKeyPublishedPosts()); ok {
			return cached.([]Post), nil
		}
	}

	posts, err := s.m.listPublished(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Set(common.CacheKeyPublishedPosts(), posts)
	}

	return posts, nil
}

// ListByAuthor returns the author's own posts, drafts included, newest
// first.
func (s *BlogService) ListByAuthor(ctx context.Context, authorID string) ([]Post, error) {
	v := common.NewValidator()
	validateID(v, authorID, "author_id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	if s.cache != nil {
		if cached, ok := s.cache.Get(common.CacheKeyPostsByAuthor(authorID)); ok {
			return cached.([]Post), nil
		}
	}

	posts, err := s.m.listByAuthor(ctx, authorID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Set(common.CacheKeyPostsByAuthor(authorID), posts)
	}

	return posts, nil
}

// ListAll returns every post via the elevated client, for moderation.
func (s *BlogService) ListAll(ctx context.Context) ([]Post, error) {
	return s.m.listAll(ctx)
}

func (s *BlogService) invalidate(authorID string) {
	if s.cache == nil {
		return
	}

	s.cache.Delete(common.CacheKeyPublishedPosts())
	s.cache.Delete(common.CacheKeyPostsByAuthor(authorID))
}
