// internal/workers/generation/populate-content/photos.go
package populatecontent

import (
	"sort"
	"strings"

	"sitegen-workers/internal/models"
)

// Context keywords per photo category, checked in category-priority order.
var photoCategoryKeywords = []struct {
	category string
	keywords []string
}{
	{models.PhotoCategoryTransformation, []string{"before", "after", "transformation", "makeover"}},
	{models.PhotoCategoryCompleted, []string{"finished", "completed", "project", "install", "result"}},
	{models.PhotoCategoryTeam, []string{"team", "crew", "staff", "owner"}},
	{models.PhotoCategoryEquipment, []string{"equipment", "truck", "machine", "tools"}},
}

// categorizePhoto tags a photo from its user-supplied context text. Photos
// without context default to general.
func categorizePhoto(photo models.Photo) string {
	text := strings.ToLower(photo.Context)
	if text == "" {
		text = strings.ToLower(photo.Caption)
	}
	if text == "" {
		return models.PhotoCategoryGeneral
	}
	for _, entry := range photoCategoryKeywords {
		for _, keyword := range entry.keywords {
			if strings.Contains(text, keyword) {
				return entry.category
			}
		}
	}
	return models.PhotoCategoryGeneral
}

// arrangePhotos tags every photo and orders the set by the fixed category
// priority, keeping arrival order within each category, capped at max.
func arrangePhotos(photos []models.Photo, max int) []models.Photo {
	arranged := make([]models.Photo, len(photos))
	copy(arranged, photos)
	for i := range arranged {
		arranged[i].Category = categorizePhoto(arranged[i])
	}

	sort.SliceStable(arranged, func(i, j int) bool {
		return models.PhotoCategoryRank(arranged[i].Category) < models.PhotoCategoryRank(arranged[j].Category)
	})

	if max > 0 && len(arranged) > max {
		arranged = arranged[:max]
	}
	return arranged
}

// photoCategories lists the distinct categories present, in priority order.
func photoCategories(photos []models.Photo) []string {
	seen := make(map[string]bool)
	var out []string
	for _, photo := range photos {
		if !seen[photo.Category] {
			seen[photo.Category] = true
			out = append(out, photo.Category)
		}
	}
	return out
}
