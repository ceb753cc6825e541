package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Recommendation urgencies. This is a distinct vocabulary from document risk
// levels: urgency is how soon the patient should act on a recommendation,
// risk level classifies the document as a whole.
const (
	UrgencyNormal = "normal"
	UrgencySoon   = "soon"
	UrgencyUrgent = "urgent"
)

// ValidUrgency reports whether u is a known recommendation urgency.
func ValidUrgency(u string) bool {
	return u == UrgencyNormal || u == UrgencySoon || u == UrgencyUrgent
}

// AnalysisReport holds the structure for the analysisreports collection in
// mongo, the structured output of one document-analysis run.
type AnalysisReport struct {
	ID                 primitive.ObjectID   `json:"_id" bson:"_id,omitempty"`
	PatientID          primitive.ObjectID   `json:"patientId" bson:"patientId"`
	SourceDocuments    []primitive.ObjectID `json:"sourceDocuments" bson:"sourceDocuments"`
	Summary            string               `json:"summary" bson:"summary"`
	ConditionsDetected []Condition          `json:"conditionsDetected" bson:"conditionsDetected"`
	Medications        []ReportMedication   `json:"medications" bson:"medications"`
	TestsExplained     []ExplainedTest      `json:"testsExplained" bson:"testsExplained"`
	FutureRisks        []FutureRisk         `json:"futureRisks" bson:"futureRisks"`
	Recommendations    []Recommendation     `json:"recommendations" bson:"recommendations"`
	CreatedAt          primitive.DateTime   `json:"createdAt" bson:"createdAt"`
	UpdatedAt          primitive.DateTime   `json:"updatedAt" bson:"updatedAt"`
}

// Condition is a single detected condition within an AnalysisReport
type Condition struct {
	Name            string     `json:"name" bson:"name"`
	ConfidenceScore float64    `json:"confidenceScore" bson:"confidenceScore"`
	OnsetDate       string     `json:"onsetDate,omitempty" bson:"onsetDate,omitempty"`
	Explanation     string     `json:"explanation,omitempty" bson:"explanation,omitempty"`
	Evidence        []Evidence `json:"evidence" bson:"evidence"`
	UserFeedback    string     `json:"userFeedback,omitempty" bson:"userFeedback,omitempty"`
}

// Evidence is a supporting snippet for a detected condition
type Evidence struct {
	Snippet    string `json:"snippet" bson:"snippet"`
	PageNumber int    `json:"pageNumber" bson:"pageNumber"`
}

// ReportMedication is a single medication entry within an AnalysisReport
type ReportMedication struct {
	Name   string `json:"name" bson:"name"`
	Dosage string `json:"dosage,omitempty" bson:"dosage,omitempty"`
	Reason string `json:"reason,omitempty" bson:"reason,omitempty"`
}

// ExplainedTest is a single lab/diagnostic test explanation within an
// AnalysisReport
type ExplainedTest struct {
	Name        string `json:"name" bson:"name"`
	Value       string `json:"value,omitempty" bson:"value,omitempty"`
	Explanation string `json:"explanation,omitempty" bson:"explanation,omitempty"`
}

// FutureRisk is a single projected risk within an AnalysisReport
type FutureRisk struct {
	Text       string  `json:"text" bson:"text"`
	Confidence float64 `json:"confidence" bson:"confidence"`
}

// Recommendation is a single recommendation within an AnalysisReport
type Recommendation struct {
	Text    string `json:"text" bson:"text"`
	Urgency string `json:"urgency" bson:"urgency"`
}

// AnalysisReportWithPatient is the populated read model returned by the
// report-by-id endpoint.
type AnalysisReportWithPatient struct {
	ID                 primitive.ObjectID `json:"_id" bson:"_id"`
	PatientID          primitive.ObjectID `json:"patientId" bson:"patientId"`
	PatientName        string             `json:"patientName" bson:"patientName"`
	SourceDocuments    []SourceDocument   `json:"sourceDocuments" bson:"sourceDocuments"`
	Summary            string             `json:"summary" bson:"summary"`
	ConditionsDetected []Condition        `json:"conditionsDetected" bson:"conditionsDetected"`
	Medications        []ReportMedication `json:"medications" bson:"medications"`
	TestsExplained     []ExplainedTest    `json:"testsExplained" bson:"testsExplained"`
	FutureRisks        []FutureRisk       `json:"futureRisks" bson:"futureRisks"`
	Recommendations    []Recommendation   `json:"recommendations" bson:"recommendations"`
	CreatedAt          primitive.DateTime `json:"createdAt" bson:"createdAt"`
	UpdatedAt          primitive.DateTime `json:"updatedAt" bson:"updatedAt"`
}
