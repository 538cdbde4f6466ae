package storage

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shidduch-link/matchmaker-web/pkg/errors"
)

func TestValidateImage(t *testing.T) {
	tests := []struct {
		name        string
		fileName    string
		size        int64
		expectError bool
	}{
		{name: "valid png", fileName: "photo.png", size: 2 * 1024 * 1024, expectError: false},
		{name: "valid jpg", fileName: "photo.jpg", size: 1024, expectError: false},
		{name: "valid jpeg uppercase", fileName: "PHOTO.JPEG", size: 1024, expectError: false},
		{name: "valid gif", fileName: "photo.gif", size: 1024, expectError: false},
		{name: "rejected bmp", fileName: "photo.bmp", size: 1024, expectError: true},
		{name: "rejected no extension", fileName: "photo", size: 1024, expectError: true},
		{name: "rejected 6MB file", fileName: "photo.png", size: 6 * 1024 * 1024, expectError: true},
		{name: "boundary exactly 5MB", fileName: "photo.png", size: MaxImageSize, expectError: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateImage(tt.fileName, tt.size)
			if tt.expectError {
				assert.ErrorIs(t, err, errors.ErrInvalidInput)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestObjectKey(t *testing.T) {
	key := ObjectKey("Photo.PNG")
	assert.True(t, strings.HasPrefix(key, "pictures/"))
	assert.True(t, strings.HasSuffix(key, ".png"))

	// keys must not collide for identical file names
	assert.NotEqual(t, key, ObjectKey("Photo.PNG"))
}

func TestContentTypeFor(t *testing.T) {
	assert.Equal(t, "image/png", ContentTypeFor("a.png"))
	assert.Equal(t, "image/jpeg", ContentTypeFor("a.jpg"))
	assert.Equal(t, "image/jpeg", ContentTypeFor("a.jpeg"))
	assert.Equal(t, "image/gif", ContentTypeFor("a.gif"))
	assert.Equal(t, "application/octet-stream", ContentTypeFor("a.bin"))
}
