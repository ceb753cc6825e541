package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/healthspectrum/healthspectrum-api/api"
	"github.com/healthspectrum/healthspectrum-api/config"
	"github.com/healthspectrum/healthspectrum-api/databases"
	"github.com/healthspectrum/healthspectrum-api/models"
)

// ProcessingJob represents the processing job handler
type ProcessingJob struct {
	DB databases.ProcessingJobDatabase
}

var jobStatusUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// jobStatusPollInterval is how often the watch endpoint re-reads the job.
const jobStatusPollInterval = 2 * time.Second

// CreateProcessingJobHandler creates a job in pending
func (p ProcessingJob) CreateProcessingJobHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var job models.ProcessingJob
	if err := json.NewDecoder(r.Body).Decode(&job); err != nil {
		config.ErrorStatus("failed to decode request", http.StatusBadRequest, w, err)
		return
	}
	if job.PatientID.IsZero() {
		http.Error(w, "patientId is required", http.StatusBadRequest)
		return
	}

	// jobs always start in pending regardless of what the client sent
	job.Status = models.JobStatusPending
	job.AnalysisReportID = primitive.NilObjectID
	job.ErrorLog = ""

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	if err := p.DB.CreateProcessingJob(ctx, &job); err != nil {
		config.ErrorStatus("failed to create processing job", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(job); err != nil {
		zap.S().With(err).Error("failed to encode processing job response")
	}
}

// ProcessingJobByIDHandler returns a single job, the poll target for clients
// tracking an in-flight analysis
func (p ProcessingJob) ProcessingJobByIDHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	job, err := p.DB.GetProcessingJobByID(ctx, mux.Vars(r)["job_id"])
	if err != nil {
		config.ErrorStatus("failed to get processing job by ID", http.StatusNotFound, w, err)
		return
	}

	if err := json.NewEncoder(w).Encode(job); err != nil {
		zap.S().With(err).Error("failed to encode processing job response")
	}
}

// ProcessingJobsByPatientHandler lists a patient's jobs newest first
func (p ProcessingJob) ProcessingJobsByPatientHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	patientID, err := primitive.ObjectIDFromHex(mux.Vars(r)["patient_id"])
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	limit, page := parsePagination(r)

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	jobs, err := p.DB.GetProcessingJobsByPatientID(ctx, patientID, limit, page)
	if err != nil {
		config.ErrorStatus("failed to list processing jobs", http.StatusInternalServerError, w, err)
		return
	}
	if jobs == nil {
		jobs = []models.ProcessingJob{}
	}

	if err := json.NewEncoder(w).Encode(jobs); err != nil {
		zap.S().With(err).Error("failed to encode processing jobs response")
	}
}

type jobStatusUpdate struct {
	Status           string `json:"status"`
	AnalysisReportID string `json:"analysisReportId,omitempty"`
	ErrorLog         string `json:"errorLog,omitempty"`
}

// UpdateProcessingJobStatusHandler moves a job through its lifecycle. The
// requested transition is checked against the status table: unknown statuses
// are a 400, disallowed transitions a 409. Moving to completed requires an
// analysisReportId.
func (p ProcessingJob) UpdateProcessingJobStatusHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	jobID, err := primitive.ObjectIDFromHex(mux.Vars(r)["job_id"])
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	var update jobStatusUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		config.ErrorStatus("failed to decode request", http.StatusBadRequest, w, err)
		return
	}
	if !models.ValidJobStatus(update.Status) {
		http.Error(w, fmt.Sprintf("unknown job status: %s", update.Status), http.StatusBadRequest)
		return
	}

	fields := bson.M{}
	if update.Status == models.JobStatusCompleted {
		reportID, err := primitive.ObjectIDFromHex(update.AnalysisReportID)
		if err != nil {
			http.Error(w, "analysisReportId is required to complete a job", http.StatusBadRequest)
			return
		}
		fields["analysisReportId"] = reportID
	}
	if update.Status == models.JobStatusFailed && update.ErrorLog != "" {
		fields["errorLog"] = update.ErrorLog
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	job, err := p.DB.GetProcessingJobByID(ctx, jobID.Hex())
	if err != nil {
		config.ErrorStatus("failed to get processing job by ID", http.StatusNotFound, w, err)
		return
	}

	if !models.ValidJobTransition(job.Status, update.Status) {
		http.Error(w, fmt.Sprintf("cannot transition job from %s to %s", job.Status, update.Status), http.StatusConflict)
		return
	}

	ok, err := p.DB.TransitionStatus(ctx, jobID, job.Status, update.Status, fields)
	if err != nil {
		config.ErrorStatus("failed to update job status", http.StatusInternalServerError, w, err)
		return
	}
	if !ok {
		// a concurrent writer moved the job first
		http.Error(w, "job status changed concurrently, re-read and retry", http.StatusConflict)
		return
	}

	updated, err := p.DB.GetProcessingJobByID(ctx, jobID.Hex())
	if err != nil {
		config.ErrorStatus("failed to get processing job by ID", http.StatusNotFound, w, err)
		return
	}

	if err := json.NewEncoder(w).Encode(updated); err != nil {
		zap.S().With(err).Error("failed to encode processing job response")
	}
}

// WatchProcessingJobHandler streams job status changes over a websocket. The
// job is re-read on an interval and pushed whenever the status changes; the
// connection closes once the job reaches a terminal status.
func (p ProcessingJob) WatchProcessingJobHandler(w http.ResponseWriter, r *http.Request) {
	jobID := mux.Vars(r)["job_id"]

	conn, err := jobStatusUpgrader.Upgrade(w, r, nil)
	if err != nil {
		zap.S().With(err).Error("failed to upgrade websocket connection")
		return
	}
	defer conn.Close()

	ticker := time.NewTicker(jobStatusPollInterval)
	defer ticker.Stop()

	lastStatus := ""
	for {
		ctx, cancel := api.WithQueryTimeout(r.Context())
		job, err := p.DB.GetProcessingJobByID(ctx, jobID)
		cancel()
		if err != nil {
			conn.WriteJSON(models.ErrorMessageResponse{Response: models.MessageError{
				Message: "failed to get processing job",
				Error:   err.Error(),
			}})
			return
		}

		if job.Status != lastStatus {
			lastStatus = job.Status
			if err := conn.WriteJSON(job); err != nil {
				return
			}
		}
		if models.TerminalJobStatus(job.Status) {
			return
		}

		select {
		case <-ticker.C:
		case <-r.Context().Done():
			return
		}
	}
}
