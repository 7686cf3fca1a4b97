package helpers

import (
	"net/url"
	"regexp"
	"strings"
)

// PlaceholderImage replaces image URLs that are not allowed.
const PlaceholderImage = "/placeholder.svg"

var allowedImageHosts = []string{"placeholder.svg", "images.unsplash.com", "picsum.photos"}

var javascriptScheme = regexp.MustCompile(`(?i)javascript:`)

// SanitizeInput strips angle brackets and javascript: schemes from free text.
// Removal repeats until no scheme is left, so nested spellings cannot reassemble one.
func SanitizeInput(s string) string {
	s = strings.NewReplacer("<", "", ">", "").Replace(s)
	for javascriptScheme.MatchString(s) {
		s = javascriptScheme.ReplaceAllString(s, "")
	}
	return strings.TrimSpace(s)
}

// SanitizeImageURL keeps relative URLs and http(s) URLs on an allowed host
// (or one of its subdomains). Anything else becomes PlaceholderImage.
func SanitizeImageURL(raw string) string {
	if raw == "" {
		return PlaceholderImage
	}
	if strings.HasPrefix(raw, "/") && !strings.HasPrefix(raw, "//") {
		return raw
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return PlaceholderImage
	}
	host := strings.ToLower(u.Hostname())
	for _, allowed := range allowedImageHosts {
		if host == allowed || strings.HasSuffix(host, "."+allowed) {
			return raw
		}
	}
	return PlaceholderImage
}
