package catalog

import "github.com/dmitrijs2005/edutalk/internal/models"

const featuredCount = 3

// Summary is what the dashboard shows.
type Summary struct {
	ScholarshipCount     int
	CourseCount          int
	PostCount            int
	FeaturedScholarships []models.Scholarship
	FeaturedCourses      []models.Course
}

// Dashboard counts every collection and picks the first three scholarships
// and courses as featured.
func Dashboard(scholarships []models.Scholarship, courses []models.Course, posts []models.CommunityPost) Summary {
	return Summary{
		ScholarshipCount:     len(scholarships),
		CourseCount:          len(courses),
		PostCount:            len(posts),
		FeaturedScholarships: scholarships[:min(featuredCount, len(scholarships))],
		FeaturedCourses:      courses[:min(featuredCount, len(courses))],
	}
}
