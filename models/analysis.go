package models

import "encoding/json"

// Document risk levels derived from the extracted markdown. Distinct from
// recommendation urgency.
const (
	RiskLevelLow    = "low"
	RiskLevelMedium = "medium"
	RiskLevelHigh   = "high"
)

// Vendor identifiers for the document analysis gateway
const (
	VendorLandingAI = "landingai"
	VendorGemini    = "gemini"
)

// HealthAnalysisResult is the normalized gateway response returned to the
// caller after a vendor analysis run.
type HealthAnalysisResult struct {
	AnalysisID string          `json:"analysisId"`
	Vendor     string          `json:"vendor"`
	Markdown   string          `json:"markdown"`
	Insights   MedicalInsights `json:"insights"`
	RiskLevel  string          `json:"riskLevel"`
	JobID      string          `json:"jobId"`
	ReportID   string          `json:"reportId,omitempty"`
	RawVendor  json.RawMessage `json:"rawVendor,omitempty"`
}

// MedicalInsights is the keyword-level classification extracted from the
// vendor markdown.
type MedicalInsights struct {
	Conditions      []string `json:"conditions"`
	Medications     []string `json:"medications"`
	Vitals          []string `json:"vitals"`
	Recommendations []string `json:"recommendations"`
}

// HealthCheckResponse returns the health check response, yay
type HealthCheckResponse struct {
	Alive bool `json:"alive"`
}
