package content

import (
	"time"

	"github.com/dmitrijs2005/edutalk/internal/models"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Scholarships are built in and never persisted.
func seedScholarships() []models.Scholarship {
	return []models.Scholarship{
		{
			ID:          "1",
			Title:       "Federal Pell Grant",
			Provider:    models.ProviderGovernment,
			Description: "Need-based grant for undergraduate students to help pay for college or career school.",
			EligibilityCriteria: []string{
				"U.S. citizen or eligible non-citizen",
				"Demonstrate financial need",
				"Enrolled in eligible program",
			},
			Amount:          "Up to $7,395",
			ApplicationLink: "https://studentaid.gov/h/apply-for-aid/fafsa",
			Deadline:        day(2024, time.June, 30),
			Category:        "General",
		},
		{
			ID:          "2",
			Title:       "Google Career Certificates Scholarship",
			Provider:    models.ProviderCompany,
			Description: "Scholarships for students pursuing Google Career Certificates in high-growth fields.",
			EligibilityCriteria: []string{
				"Currently enrolled in a Google Career Certificate",
				"Demonstrate financial need",
			},
			Amount:          "Full tuition coverage",
			ApplicationLink: "https://grow.google/certificates/scholarships/",
			Deadline:        day(2024, time.December, 15),
			Category:        "Technology",
		},
		{
			ID:          "3",
			Title:       "Gates Millennium Scholars Program",
			Provider:    models.ProviderNonProfit,
			Description: "Scholarship for outstanding minority students with significant financial need.",
			EligibilityCriteria: []string{
				"Minority student",
				"High academic achievement",
				"Leadership experience",
			},
			Amount:          "Full cost of attendance",
			ApplicationLink: "https://www.gmsp.org/",
			Deadline:        day(2024, time.January, 15),
			Category:        "Minority",
		},
		{
			ID:          "4",
			Title:       "STEM Education Scholarship",
			Provider:    models.ProviderGovernment,
			Description: "Supporting students pursuing degrees in Science, Technology, Engineering, and Mathematics.",
			EligibilityCriteria: []string{
				"STEM major",
				"GPA 3.0 or higher",
				"Full-time enrollment",
			},
			Amount:          "$5,000",
			ApplicationLink: "https://www.stem.gov/scholarships",
			Deadline:        day(2024, time.March, 31),
			Category:        "STEM",
		},
	}
}

func seedCourses() []models.Course {
	return []models.Course{
		{
			ID:          "1",
			CourseTitle: "Introduction to Computer Science",
			Provider:    "Harvard University (edX)",
			Description: "Learn the basics of computer science and programming with this comprehensive introductory course.",
			Category:    "Technology",
			AccessLink:  "https://www.edx.org/course/introduction-computer-science-harvardx-cs50x",
			Duration:    "12 weeks",
			Level:       models.LevelBeginner,
			Rating:      4.8,
		},
		{
			ID:          "2",
			CourseTitle: "Financial Markets",
			Provider:    "Yale University (Coursera)",
			Description: "Understand the ideas, methods, and institutions that permit human society to manage risks.",
			Category:    "Finance",
			AccessLink:  "https://www.coursera.org/learn/financial-markets-global",
			Duration:    "7 weeks",
			Level:       models.LevelIntermediate,
			Rating:      4.6,
		},
		{
			ID:          "3",
			CourseTitle: "Digital Marketing Fundamentals",
			Provider:    "Google (Coursera)",
			Description: "Learn the fundamentals of digital marketing to help grow your business or career.",
			Category:    "Marketing",
			AccessLink:  "https://www.coursera.org/learn/digital-marketing",
			Duration:    "6 weeks",
			Level:       models.LevelBeginner,
			Rating:      4.7,
		},
		{
			ID:          "4",
			CourseTitle: "Machine Learning Course",
			Provider:    "Stanford University (Coursera)",
			Description: "Learn about machine learning techniques and how to apply them to real-world problems.",
			Category:    "Technology",
			AccessLink:  "https://www.coursera.org/learn/machine-learning",
			Duration:    "11 weeks",
			Level:       models.LevelAdvanced,
			Rating:      4.9,
		},
	}
}

// seedFeed is written to storage the first time the feed is found missing.
func seedFeed() []models.CommunityPost {
	return []models.CommunityPost{
		{
			ID:         "1",
			AuthorID:   "sample",
			AuthorName: "Alex Student",
			Title:      "Tips for scholarship applications",
			Content:    "Just wanted to share some tips that helped me secure multiple scholarships. Always start early, tailor your essays, and don't be afraid to apply to many!",
			CreatedAt:  day(2024, time.January, 15),
			LikeCount:  5,
		},
		{
			ID:         "2",
			AuthorID:   "sample2",
			AuthorName: "Maria Rodriguez",
			Title:      "Free coding bootcamps - has anyone tried them?",
			Content:    "I've been looking into free coding bootcamps to supplement my CS degree. Has anyone here tried any? Would love to hear your experiences!",
			CreatedAt:  day(2024, time.January, 14),
			LikeCount:  3,
		},
	}
}
