package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProcessingJob statuses. Transitions only ever move forward through
// validTransitions; completed and failed are terminal.
const (
	JobStatusPending       = "pending"
	JobStatusProcessingOCR = "processing_ocr"
	JobStatusProcessingNLP = "processing_nlp"
	JobStatusCompleted     = "completed"
	JobStatusFailed        = "failed"
)

var validTransitions = map[string][]string{
	JobStatusPending:       {JobStatusProcessingOCR, JobStatusFailed},
	JobStatusProcessingOCR: {JobStatusProcessingNLP, JobStatusFailed},
	JobStatusProcessingNLP: {JobStatusCompleted, JobStatusFailed},
	JobStatusCompleted:     {},
	JobStatusFailed:        {},
}

// ValidJobStatus reports whether s is a known job status.
func ValidJobStatus(s string) bool {
	_, ok := validTransitions[s]
	return ok
}

// ValidJobTransition reports whether a job may move from one status to
// another. Terminal statuses admit no further transitions.
func ValidJobTransition(from, to string) bool {
	for _, next := range validTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// TerminalJobStatus reports whether s is a terminal status.
func TerminalJobStatus(s string) bool {
	return s == JobStatusCompleted || s == JobStatusFailed
}

// ProcessingJob holds the structure for the processingjobs collection in
// mongo. It tracks one analysis run from upload through vendor extraction to
// the stored AnalysisReport.
type ProcessingJob struct {
	ID               primitive.ObjectID   `json:"_id" bson:"_id,omitempty"`
	PatientID        primitive.ObjectID   `json:"patientId" bson:"patientId"`
	SourceDocuments  []primitive.ObjectID `json:"sourceDocuments" bson:"sourceDocuments"`
	Status           string               `json:"status" bson:"status"`
	AnalysisReportID primitive.ObjectID   `json:"analysisReportId,omitempty" bson:"analysisReportId,omitempty"`
	ErrorLog         string               `json:"errorLog,omitempty" bson:"errorLog,omitempty"`
	CreatedAt        primitive.DateTime   `json:"createdAt" bson:"createdAt"`
	UpdatedAt        primitive.DateTime   `json:"updatedAt" bson:"updatedAt"`
}
