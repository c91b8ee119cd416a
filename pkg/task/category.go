package task

import (
	"strconv"
	"strings"

	"github.com/gosimple/slug"
)

// Palette holds the colors handed out to new categories
var Palette = []string{"#3B82F6", "#10B981", "#F59E0B", "#EF4444", "#8B5CF6", "#EC4899"}

// NextColor picks the palette color for the category created after the
// given ones
func NextColor(categories []Category) string {
	return Palette[len(categories)%len(Palette)]
}

// Slug is the url friendly form of the category name, used to refer to
// categories from the command line
func (c Category) Slug() string {
	return slug.Make(c.Name)
}

// FindCategory looks a category up by id, slug or slug prefix.
// An ambiguous prefix matches nothing.
func FindCategory(categories []Category, ref string) (Category, bool) {
	ref = strings.TrimSpace(ref)
	if id, err := strconv.Atoi(ref); err == nil {
		for _, c := range categories {
			if c.ID == ID(id) {
				return c, true
			}
		}
	}
	s := slug.Make(ref)
	if s == "" {
		return Category{}, false
	}
	var (
		found   Category
		matches int
	)
	for _, c := range categories {
		cs := c.Slug()
		if cs == s {
			return c, true
		}
		if strings.HasPrefix(cs, s) {
			found = c
			matches++
		}
	}
	return found, matches == 1
}
