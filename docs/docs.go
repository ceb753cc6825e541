// Package docs HealthSpectrum API.
//
// Documentation of HealthSpectrum API.
//
//     Schemes: https
//     BasePath: /
//     Version: 1.0.0
//     Host: https://api.healthspectrum.app
//
//     Consumes:
//     - application/json
//
//     Produces:
//     - application/json
//
//     Security:
//     - basic
//
//    SecurityDefinitions:
//    basic:
//      type: basic
//
// swagger:meta
package docs

import (
	"github.com/healthspectrum/healthspectrum-api/models"
)

// swagger:route GET /health health healthEndpointID
// Lists the healthchex of the web service api.
// responses:
//   200: healthResponse

// Shows the current health of the api. true means it is alive, false means it is not.
// swagger:response healthResponse
type healthResponseWrapper struct {
	// in:body
	Body models.HealthCheckResponse
}

// swagger:route POST /api/v1/analyze analysis analyzeDocument
// Runs a full document analysis: storage, vendor extraction, insight
// classification and the stored report.
// responses:
//   200: analyzeResponse

// The normalized analysis result for one uploaded document.
// swagger:response analyzeResponse
type analyzeResponseWrapper struct {
	// in:body
	Body models.HealthAnalysisResult
}

// swagger:route GET /api/v1/report/{report_id} reports reportByID
// Gets a single analysis report by ID with the patient populated.
// responses:
//   200: reportByIDResponse

// Shows a single analysis report by the given {ID}
// swagger:response reportByIDResponse
type reportByIDResponseWrapper struct {
	// in:body
	Body models.AnalysisReportWithPatient
}
