package storage

import (
	"context"
	"strings"
	"testing"

	"alcyxob/wellness-app/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyFromURL(t *testing.T) {
	tests := []struct {
		name, url, base, want string
	}{
		{"own host", "https://photos.example.com/progress_photos/abc.jpg", "", "progress_photos/abc"},
		{"own host without extension", "https://photos.example.com/progress_photos/abc", "", "progress_photos/abc"},
		{"base path prefix", "https://cdn.example.com/bucket/progress_photos/abc.png", "/bucket", "progress_photos/abc"},
		{"legacy host with version", "https://res.cloudinary.com/demo/image/upload/v1712345678/progress_photos/abc.jpg", "", "progress_photos/abc"},
		{"legacy host without version", "http://res.cloudinary.com/demo/image/upload/progress_photos/abc.jpeg", "", "progress_photos/abc"},
		{"dots in folder", "https://photos.example.com/v2.photos/abc.webp", "", "v2.photos/abc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := KeyFromURL(tt.url, tt.base)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, bad := range []string{"", "not a url", "https://photos.example.com/", "/relative/path.jpg"} {
		_, err := KeyFromURL(bad, "")
		assert.ErrorIs(t, err, ErrInvalidURL, bad)
	}
}

func TestPhotosRoundTrip(t *testing.T) {
	mem := NewMemoryStorage()
	photos, err := NewPhotos(mem, "https://photos.example.com/", "progress_photos")
	require.NoError(t, err)
	ctx := context.Background()

	url, err := photos.Upload(ctx, strings.NewReader("jpeg-bytes"), 10, "image/jpeg")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "https://photos.example.com/progress_photos/"))
	require.Len(t, mem.Keys(), 1)
	contentType, ok := mem.ContentType(mem.Keys()[0])
	require.True(t, ok)
	assert.Equal(t, "image/jpeg", contentType)

	key, err := photos.Delete(ctx, url)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(key, "progress_photos/"))
	assert.Empty(t, mem.Keys())

	_, err = photos.Delete(ctx, url)
	assert.ErrorIs(t, err, ErrObjectNotFound)
}

func TestPhotosSkipsForeignURLs(t *testing.T) {
	photos, err := NewPhotos(NewMemoryStorage(), "https://photos.example.com", "progress_photos")
	require.NoError(t, err)

	_, err = photos.Delete(context.Background(), "https://cdn-icons-png.flaticon.com/512/149/149071.png")
	assert.ErrorIs(t, err, ErrForeignURL)
	assert.False(t, photos.Owns("https://evil.example.com/progress_photos/a"))
}

func TestNewPhotosRejectsBadBase(t *testing.T) {
	_, err := NewPhotos(NewMemoryStorage(), "photos", "progress_photos")
	assert.Error(t, err)
}

func TestEndpointURL(t *testing.T) {
	assert.Equal(t, "https://minio:9000", endpointURL("minio:9000", true))
	assert.Equal(t, "http://minio:9000", endpointURL("minio:9000", false))
	assert.Equal(t, "http://localhost:9000", endpointURL("http://localhost:9000", true))
}

func TestPublicBaseURL(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.S3Config
		want string
	}{
		{"explicit", config.S3Config{PublicBaseURL: "https://cdn.example.com/p", BucketName: "b", Endpoint: "minio:9000"}, "https://cdn.example.com/p"},
		{"no bucket", config.S3Config{}, "http://localhost/photos"},
		{"bare endpoint", config.S3Config{BucketName: "photos", Endpoint: "minio:9000"}, "http://minio:9000/photos"},
		{"bare endpoint with ssl", config.S3Config{BucketName: "photos", Endpoint: "minio:9000", UseSSL: true}, "https://minio:9000/photos"},
		{"endpoint with scheme", config.S3Config{BucketName: "photos", Endpoint: "http://localhost:9000/"}, "http://localhost:9000/photos"},
		{"aws", config.S3Config{BucketName: "photos", Region: "eu-west-1"}, "https://photos.s3.eu-west-1.amazonaws.com"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := PublicBaseURL(tt.cfg)
			assert.Equal(t, tt.want, base)
			_, err := NewPhotos(NewMemoryStorage(), base, "progress_photos")
			assert.NoError(t, err)
		})
	}
}
