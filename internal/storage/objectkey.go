package storage

import (
	"net/url"
	"path"
	"regexp"
	"strings"
)

var versionSegment = regexp.MustCompile(`^v\d+$`)

// legacyUploadMarker separates the account prefix from the object key in URLs
// issued by the previous image host: /<cloud>/image/upload/v<version>/<key>.<ext>
const legacyUploadMarker = "/image/upload/"

// KeyFromURL derives the storage key of a hosted photo from its public URL.
// It drops the scheme and host, an optional base path prefix, the legacy
// account/upload prefix, a leading version segment ("v1712345678") and the file
// extension:
//
//	https://photos.example.com/progress_photos/abc.jpg            -> progress_photos/abc
//	https://res.cloudinary.com/demo/image/upload/v17/pp/abc.png    -> pp/abc
func KeyFromURL(rawURL, basePath string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", ErrInvalidURL
	}

	p := u.Path
	if i := strings.Index(p, legacyUploadMarker); i >= 0 {
		p = p[i+len(legacyUploadMarker):]
	} else if basePath = strings.Trim(basePath, "/"); basePath != "" {
		p = strings.TrimPrefix(strings.TrimPrefix(p, "/"), basePath)
	}

	segments := strings.Split(strings.Trim(p, "/"), "/")
	if len(segments) > 1 && versionSegment.MatchString(segments[0]) {
		segments = segments[1:]
	}
	key := strings.Join(segments, "/")
	key = strings.TrimSuffix(key, path.Ext(key))
	if key == "" {
		return "", ErrInvalidURL
	}
	return key, nil
}
