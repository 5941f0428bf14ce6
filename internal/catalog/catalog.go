// Package catalog holds the read-side queries the client runs over the
// content store: search and facet filters plus the dashboard summary.
package catalog

import (
	"strings"

	"github.com/dmitrijs2005/edutalk/internal/models"
)

// All is the facet value that disables a filter.
const All = "All"

type ScholarshipFilter struct {
	Search   string
	Provider string
	Category string
}

type CourseFilter struct {
	Search   string
	Category string
	Level    string
}

// FilterScholarships keeps scholarships whose title or description contains
// Search (case-insensitive) and whose provider and category match exactly.
func FilterScholarships(list []models.Scholarship, f ScholarshipFilter) []models.Scholarship {
	out := make([]models.Scholarship, 0, len(list))
	for _, s := range list {
		if !containsFold(f.Search, s.Title, s.Description) {
			continue
		}
		if !facet(f.Provider, string(s.Provider)) || !facet(f.Category, s.Category) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// FilterCourses keeps courses whose title, description or provider contains
// Search and whose category and level match exactly.
func FilterCourses(list []models.Course, f CourseFilter) []models.Course {
	out := make([]models.Course, 0, len(list))
	for _, c := range list {
		if !containsFold(f.Search, c.CourseTitle, c.Description, c.Provider) {
			continue
		}
		if !facet(f.Category, c.Category) || !facet(f.Level, string(c.Level)) {
			continue
		}
		out = append(out, c)
	}
	return out
}

func ScholarshipProviders(list []models.Scholarship) []string {
	return distinct(len(list), func(i int) string { return string(list[i].Provider) })
}

func ScholarshipCategories(list []models.Scholarship) []string {
	return distinct(len(list), func(i int) string { return list[i].Category })
}

func CourseCategories(list []models.Course) []string {
	return distinct(len(list), func(i int) string { return list[i].Category })
}

// CourseLevels returns All followed by every level in ascending difficulty.
func CourseLevels() []string {
	out := []string{All}
	for _, l := range models.Levels {
		out = append(out, string(l))
	}
	return out
}

func facet(want, got string) bool {
	return want == "" || want == All || want == got
}

func containsFold(needle string, fields ...string) bool {
	needle = strings.ToLower(strings.TrimSpace(needle))
	if needle == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}

// distinct returns All followed by the non-empty values in first-seen order.
func distinct(n int, value func(int) string) []string {
	out := []string{All}
	seen := make(map[string]struct{}, n)
	for i := 0; i < n; i++ {
		v := value(i)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
