package blogservice

import "regexp"

var scriptTagPattern = regexp.MustCompile(`(?i)<\s*script[^>]*>(.*?)<\s*/\s*script\s*>`)

// sanitizeContent strips script tags from post content before it is
// stored. Rendering is out of scope here, so this is the only defense
// applied server-side.
func sanitizeContent(content string) string {
	return scriptTagPattern.ReplaceAllString(content, "")
}
