package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/healthspectrum/healthspectrum-api/api"
	"github.com/healthspectrum/healthspectrum-api/config"
	"github.com/healthspectrum/healthspectrum-api/databases"
	"github.com/healthspectrum/healthspectrum-api/models"
)

// AnalysisReport represents the analysis report handler
type AnalysisReport struct {
	DB databases.AnalysisReportDatabase
}

// CreateAnalysisReportHandler stores a structured report. conditionsDetected
// must be present as an array, empty is fine.
func (a AnalysisReport) CreateAnalysisReportHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var body struct {
		models.AnalysisReport
		ConditionsDetected *[]models.Condition `json:"conditionsDetected"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		config.ErrorStatus("failed to decode request", http.StatusBadRequest, w, err)
		return
	}
	if body.PatientID.IsZero() {
		http.Error(w, "patientId is required", http.StatusBadRequest)
		return
	}
	if body.ConditionsDetected == nil {
		http.Error(w, "conditionsDetected array is required", http.StatusBadRequest)
		return
	}
	for _, rec := range body.Recommendations {
		if rec.Urgency != "" && !models.ValidUrgency(rec.Urgency) {
			http.Error(w, fmt.Sprintf("unknown recommendation urgency: %s", rec.Urgency), http.StatusBadRequest)
			return
		}
	}

	report := body.AnalysisReport
	report.ConditionsDetected = *body.ConditionsDetected

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	if err := a.DB.CreateAnalysisReport(ctx, &report); err != nil {
		config.ErrorStatus("failed to create analysis report", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(report); err != nil {
		zap.S().With(err).Error("failed to encode analysis report response")
	}
}

// AnalysisReportByIDHandler returns a single report with the patient name and
// the full source document records populated
func (a AnalysisReport) AnalysisReportByIDHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	report, err := a.DB.GetAnalysisReportWithPatient(ctx, mux.Vars(r)["report_id"])
	if err != nil {
		config.ErrorStatus("failed to get analysis report by ID", http.StatusNotFound, w, err)
		return
	}

	if err := json.NewEncoder(w).Encode(report); err != nil {
		zap.S().With(err).Error("failed to encode analysis report response")
	}
}

// AnalysisReportsByPatientHandler lists a patient's reports newest first
func (a AnalysisReport) AnalysisReportsByPatientHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	patientID, err := primitive.ObjectIDFromHex(mux.Vars(r)["patient_id"])
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	limit, page := parsePagination(r)

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	reports, err := a.DB.GetAnalysisReportsByPatientID(ctx, patientID, limit, page)
	if err != nil {
		config.ErrorStatus("failed to list analysis reports", http.StatusInternalServerError, w, err)
		return
	}
	if reports == nil {
		reports = []models.AnalysisReport{}
	}

	if err := json.NewEncoder(w).Encode(reports); err != nil {
		zap.S().With(err).Error("failed to encode analysis reports response")
	}
}

// ConditionFeedbackHandler records the user's verdict on a single detected
// condition, addressed by its index in conditionsDetected
func (a AnalysisReport) ConditionFeedbackHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	vars := mux.Vars(r)
	reportID := vars["report_id"]
	index, err := strconv.Atoi(vars["condition_index"])
	if err != nil || index < 0 {
		http.Error(w, "condition index must be a non-negative integer", http.StatusBadRequest)
		return
	}

	var body struct {
		Feedback string `json:"feedback"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		config.ErrorStatus("failed to decode request", http.StatusBadRequest, w, err)
		return
	}
	if body.Feedback == "" {
		http.Error(w, "feedback is required", http.StatusBadRequest)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	report, err := a.DB.GetAnalysisReportByID(ctx, reportID)
	if err != nil {
		config.ErrorStatus("failed to get analysis report by ID", http.StatusNotFound, w, err)
		return
	}
	if index >= len(report.ConditionsDetected) {
		http.Error(w, fmt.Sprintf("condition index %d out of range, report has %d conditions", index, len(report.ConditionsDetected)), http.StatusBadRequest)
		return
	}

	if err := a.DB.SetConditionFeedback(ctx, reportID, index, body.Feedback); err != nil {
		config.ErrorStatus("failed to set condition feedback", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"updated": true}`))
}

// DeleteAnalysisReportHandler removes a report
func (a AnalysisReport) DeleteAnalysisReportHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	if err := a.DB.DeleteAnalysisReport(ctx, mux.Vars(r)["report_id"]); err != nil {
		config.ErrorStatus("failed to delete analysis report", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"deleted": true}`))
}
