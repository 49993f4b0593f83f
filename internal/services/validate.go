package services

import (
	"fmt"

	"github.com/chronicleberg/chronicle-be/internal/apierror"
	"github.com/chronicleberg/chronicle-be/internal/assets"
)

// Media types accepted for any uploaded image.
var allowedImageTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/jpg":  true,
	"image/webp": true,
}

// fieldRule is one declarative required/min-length constraint. The same
// table drives both the create and update commit paths, so the rules are
// represented exactly once.
type fieldRule struct {
	name     string
	value    string
	required bool
	minLen   int
}

func checkFields(rules []fieldRule) error {
	for _, rule := range rules {
		if rule.required && rule.value == "" {
			return apierror.Validation(fmt.Sprintf("Please provide %s!", rule.name))
		}
		if rule.value != "" && len(rule.value) < rule.minLen {
			return apierror.Validation(fmt.Sprintf("%s must contain at least %d characters!", rule.name, rule.minLen))
		}
	}
	return nil
}

// blogFieldRules are the content-quality bounds for a blog document.
func blogFieldRules(title, intro, category string) []fieldRule {
	return []fieldRule{
		{name: "title", value: title, required: true, minLen: 3},
		{name: "intro", value: intro, required: true, minLen: 100},
		{name: "category", value: category, required: true},
	}
}

// checkImages validates the declared media type of every supplied upload.
// Absent uploads are skipped; they are not re-validated.
func checkImages(uploads ...*assets.Upload) error {
	for _, up := range uploads {
		if up == nil {
			continue
		}
		if !allowedImageTypes[up.ContentType] {
			return apierror.Validation("Invalid file type. Only JPG, JPEG, PNG and WEBP formats are allowed!")
		}
	}
	return nil
}
