package model

import "time"

// CatalogCourse is a read-only record from the catalog/course collaborator.
// The tracker only consumes it at add-time to denormalize display fields
// onto the tracked program.
type CatalogCourse struct {
	CourseID       string     `bson:"_id,omitempty" json:"id"`
	Name           string     `bson:"name" json:"name"`
	UniversityName string     `bson:"university_name" json:"university_name"`
	Country        string     `bson:"country" json:"country"`
	City           string     `bson:"city,omitempty" json:"city,omitempty"`
	DegreeLevel    string     `bson:"degree_level,omitempty" json:"degree_level,omitempty"`
	Deadline       *time.Time `bson:"deadline,omitempty" json:"deadline,omitempty"`
	RankingQS      *int       `bson:"ranking_qs,omitempty" json:"ranking_qs,omitempty"`
	TuitionFee     *int       `bson:"tuition_fee,omitempty" json:"tuition_fee,omitempty"`
	SearchScore    float64    `bson:"score,omitempty" json:"search_score,omitempty"`
}
