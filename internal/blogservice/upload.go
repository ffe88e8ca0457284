package blogservice

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

const imageBucket = "blog-images"

// ErrUnsupportedImageType marks a cover image whose extension is outside
// the allow-list. Callers skip the upload instead of failing the post.
var ErrUnsupportedImageType = errors.New("unsupported image type")

var allowedImageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
}

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// AllowedImage reports whether the filename carries an allowed image
// extension.
func AllowedImage(filename string) bool {
	return allowedImageExtensions[strings.ToLower(filepath.Ext(filename))]
}

// sanitizeFilename strips any path components and collapses unsafe
// characters, mirroring what a secure-filename helper would do.
func sanitizeFilename(filename string) string {
	name := filepath.Base(filename)
	name = unsafeFilenameChars.ReplaceAllString(name, "_")
	return strings.Trim(name, "._")
}

// UploadCoverImage stores the image under the author's namespace with a
// random token to prevent collisions and returns its public URL.
func (s *BlogService) UploadCoverImage(ctx context.Context, authorID, filename string, data []byte) (string, error) {
	if !AllowedImage(filename) {
		return "", ErrUnsupportedImageType
	}

	name := sanitizeFilename(filename)
	path := fmt.Sprintf("%s/%s_%s", authorID, uuid.New(), name)

	contentType := mime.TypeByExtension(strings.ToLower(filepath.Ext(name)))

	if err := s.m.db.Upload(ctx, imageBucket, path, data, contentType); err != nil {
		return "", err
	}

	return s.m.db.PublicURL(imageBucket, path), nil
}
