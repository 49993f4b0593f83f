package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/chronicleberg/chronicle-be/internal/assets"
)

func TestBlogFieldRules(t *testing.T) {
	longIntro := strings.Repeat("x", 100)

	tests := []struct {
		name    string
		title   string
		intro   string
		cat     string
		wantErr bool
	}{
		{"all valid", "Title", longIntro, "Tech", false},
		{"missing title", "", longIntro, "Tech", true},
		{"title too short", "ab", longIntro, "Tech", true},
		{"title at minimum", "abc", longIntro, "Tech", false},
		{"missing intro", "Title", "", "Tech", true},
		{"intro too short", "Title", strings.Repeat("x", 99), "Tech", true},
		{"missing category", "Title", longIntro, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkFields(blogFieldRules(tt.title, tt.intro, tt.cat))
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCheckImages(t *testing.T) {
	ok := []string{"image/png", "image/jpeg", "image/jpg", "image/webp"}
	for _, ct := range ok {
		assert.NoError(t, checkImages(&assets.Upload{Name: "f", ContentType: ct}))
	}

	assert.Error(t, checkImages(&assets.Upload{Name: "f", ContentType: "application/pdf"}))
	assert.Error(t, checkImages(&assets.Upload{Name: "f", ContentType: "image/gif"}))

	// Absent uploads are skipped, not re-validated.
	assert.NoError(t, checkImages(nil, nil, nil))
	assert.Error(t, checkImages(nil, &assets.Upload{Name: "f", ContentType: "text/html"}))
}
