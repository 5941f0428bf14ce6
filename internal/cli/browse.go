package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/edutalk/internal/catalog"
)

const dateLayout = "Jan 2, 2006"

// splitQuery separates key=value facets from free search words. Underscores
// in facet values stand for spaces, e.g. category=Non-Profit or level=Beginner.
func splitQuery(args []string, keys ...string) (search string, facets map[string]string) {
	facets = make(map[string]string)
	var words []string
	for _, arg := range args {
		if k, v, found := strings.Cut(arg, "="); found {
			if key, known := matchKey(k, keys); known {
				facets[key] = strings.ReplaceAll(v, "_", " ")
				continue
			}
		}
		words = append(words, arg)
	}
	return strings.Join(words, " "), facets
}

func matchKey(k string, keys []string) (string, bool) {
	for _, want := range keys {
		if strings.EqualFold(k, want) {
			return want, true
		}
	}
	return "", false
}

// Scholarships lists scholarships, e.g. "scholarships grant provider=Government".
func (a *App) Scholarships(_ context.Context, args []string) error {
	all := a.content.Scholarships()
	search, facets := splitQuery(args, "provider", "category")

	list := catalog.FilterScholarships(all, catalog.ScholarshipFilter{
		Search:   search,
		Provider: facets["provider"],
		Category: facets["category"],
	})

	fmt.Fprintf(a.out, "Scholarships (%d of %d)\n", len(list), len(all))
	for _, s := range list {
		fmt.Fprintf(a.out, "\n[%s] %s\n", s.ID, s.Title)
		fmt.Fprintf(a.out, "    %s | %s | %s | deadline %s\n", s.Provider, s.Category, s.Amount, s.Deadline.Format(dateLayout))
		fmt.Fprintf(a.out, "    %s\n", s.Description)
		for _, c := range s.EligibilityCriteria {
			fmt.Fprintf(a.out, "    - %s\n", c)
		}
		fmt.Fprintf(a.out, "    Apply: %s\n", s.ApplicationLink)
	}
	fmt.Fprintf(a.out, "\nProviders: %s\n", strings.Join(catalog.ScholarshipProviders(all), ", "))
	fmt.Fprintf(a.out, "Categories: %s\n", strings.Join(catalog.ScholarshipCategories(all), ", "))
	return nil
}

// Courses lists courses, e.g. "courses coursera level=Beginner".
func (a *App) Courses(_ context.Context, args []string) error {
	all := a.content.Courses()
	search, facets := splitQuery(args, "category", "level")

	list := catalog.FilterCourses(all, catalog.CourseFilter{
		Search:   search,
		Category: facets["category"],
		Level:    facets["level"],
	})

	fmt.Fprintf(a.out, "Courses (%d of %d)\n", len(list), len(all))
	for _, c := range list {
		fmt.Fprintf(a.out, "\n[%s] %s\n", c.ID, c.CourseTitle)
		fmt.Fprintf(a.out, "    %s | %s | %s | %s | rating %.1f\n", c.Provider, c.Category, c.Level, c.Duration, c.Rating)
		fmt.Fprintf(a.out, "    %s\n", c.Description)
		fmt.Fprintf(a.out, "    Start: %s\n", c.AccessLink)
	}
	fmt.Fprintf(a.out, "\nCategories: %s\n", strings.Join(catalog.CourseCategories(all), ", "))
	fmt.Fprintf(a.out, "Levels: %s\n", strings.Join(catalog.CourseLevels(), ", "))
	return nil
}

func (a *App) Dashboard(_ context.Context, _ []string) error {
	if p, ok := a.sessions.Current(); ok {
		fmt.Fprintf(a.out, "Welcome back, %s!\n", p.Name)
	}

	d := catalog.Dashboard(a.content.Scholarships(), a.content.Courses(), a.content.Posts())
	fmt.Fprintf(a.out, "%d scholarships | %d free courses | %d community posts\n", d.ScholarshipCount, d.CourseCount, d.PostCount)

	fmt.Fprintln(a.out, "\nFeatured scholarships:")
	for _, s := range d.FeaturedScholarships {
		fmt.Fprintf(a.out, "  [%s] %s (%s)\n", s.ID, s.Title, s.Amount)
	}
	fmt.Fprintln(a.out, "\nFeatured courses:")
	for _, c := range d.FeaturedCourses {
		fmt.Fprintf(a.out, "  [%s] %s (%s)\n", c.ID, c.CourseTitle, c.Provider)
	}
	return nil
}
