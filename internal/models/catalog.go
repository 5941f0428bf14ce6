package models

import "time"

// Provider is the kind of organisation funding a scholarship.
type Provider string

const (
	ProviderGovernment Provider = "Government"
	ProviderCompany    Provider = "Company"
	ProviderNonProfit  Provider = "Non-Profit"
)

// Scholarship is immutable reference data.
type Scholarship struct {
	ID                  string
	Title               string
	Provider            Provider
	Description         string
	EligibilityCriteria []string
	Amount              string
	ApplicationLink     string
	Deadline            time.Time
	Category            string
}

// Level is a course difficulty.
type Level string

const (
	LevelBeginner     Level = "Beginner"
	LevelIntermediate Level = "Intermediate"
	LevelAdvanced     Level = "Advanced"
)

// Levels lists course levels in ascending difficulty.
var Levels = []Level{LevelBeginner, LevelIntermediate, LevelAdvanced}

// Course is immutable reference data.
type Course struct {
	ID          string
	CourseTitle string
	Provider    string
	Description string
	Category    string
	AccessLink  string
	Duration    string
	Level       Level
	Rating      float64
}
