package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/google/uuid"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/healthspectrum/healthspectrum-api/api"
	"github.com/healthspectrum/healthspectrum-api/config"
	"github.com/healthspectrum/healthspectrum-api/databases"
	"github.com/healthspectrum/healthspectrum-api/docai"
	"github.com/healthspectrum/healthspectrum-api/models"
	"github.com/healthspectrum/healthspectrum-api/storage"
	templates "github.com/healthspectrum/healthspectrum-api/templates/html"
)

// Analyze is the document analysis gateway handler. One request drives the
// whole pipeline: job creation, file storage, vendor extraction, insight
// classification and the stored AnalysisReport.
type Analyze struct {
	Jobs     databases.ProcessingJobDatabase
	Docs     databases.SourceDocumentDatabase
	Reports  databases.AnalysisReportDatabase
	Patients databases.PatientDatabase
	Users    databases.UserDatabase

	Store     storage.FileStore
	LandingAI docai.Analyzer
	Gemini    docai.Analyzer

	MaxUploadBytes int64

	// Notify is called after a run completes. Nil disables notifications.
	Notify func(userEmail, userName, patientName, reportID string)
}

// AnalyzeHandler runs one analysis end to end. The multipart form carries the
// file under "file", the owning patient under "patientId" and the vendor
// under "vendor" (landingai by default). Each run gets its own job and its
// own analysisId, so re-sending the same file produces a fresh report rather
// than touching the earlier one.
func (a Analyze) AnalyzeHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	maxBytes := a.MaxUploadBytes
	if maxBytes <= 0 {
		maxBytes = config.DefaultMaxUploadBytes
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	if err := r.ParseMultipartForm(maxBytes); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			config.ErrorStatus("file exceeds the upload limit", http.StatusRequestEntityTooLarge, w, err)
			return
		}
		config.ErrorStatus("invalid multipart form", http.StatusBadRequest, w, err)
		return
	}

	patientID, err := primitive.ObjectIDFromHex(r.FormValue("patientId"))
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	vendor := r.FormValue("vendor")
	if vendor == "" {
		vendor = models.VendorLandingAI
	}
	analyzer, err := a.analyzerFor(vendor)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		config.ErrorStatus("failed to read uploaded file", http.StatusBadRequest, w, err)
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if _, ok := models.AllowedUploadTypes[contentType]; !ok {
		http.Error(w, fmt.Sprintf("unsupported file type: %s", contentType), http.StatusUnsupportedMediaType)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		config.ErrorStatus("failed to read uploaded file", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	job := &models.ProcessingJob{PatientID: patientID}
	if err := a.Jobs.CreateProcessingJob(ctx, job); err != nil {
		config.ErrorStatus("failed to create processing job", http.StatusInternalServerError, w, err)
		return
	}

	stored, err := a.Store.Upload(r.Context(), header.Filename, bytes.NewReader(data))
	if err != nil {
		a.failJob(r, job, fmt.Sprintf("file storage failed: %v", err))
		config.ErrorStatus("failed to store file", http.StatusBadGateway, w, err)
		return
	}

	doc := &models.SourceDocument{
		PatientID:   patientID,
		FileName:    header.Filename,
		ContentType: contentType,
		SizeBytes:   stored.Bytes,
		StorageURL:  stored.SecureURL,
		PublicID:    stored.PublicID,
	}
	if err := a.Docs.CreateSourceDocument(ctx, doc); err != nil {
		a.failJob(r, job, fmt.Sprintf("source document creation failed: %v", err))
		config.ErrorStatus("failed to create source document", http.StatusInternalServerError, w, err)
		return
	}

	if _, err := a.Jobs.TransitionStatus(ctx, job.ID, models.JobStatusPending, models.JobStatusProcessingOCR,
		bson.M{"sourceDocuments": []primitive.ObjectID{doc.ID}}); err != nil {
		config.ErrorStatus("failed to update job status", http.StatusInternalServerError, w, err)
		return
	}
	job.Status = models.JobStatusProcessingOCR

	result, err := analyzer.Analyze(r.Context(), docai.AnalyzeRequest{
		FileName:                  header.Filename,
		ContentType:               contentType,
		Data:                      data,
		FieldsSchema:              json.RawMessage(r.FormValue("fieldsSchema")),
		IncludeMarginalia:         r.FormValue("includeMarginalia") == "true",
		IncludeMetadataInMarkdown: r.FormValue("includeMetadataInMarkdown") == "true",
		Pages:                     r.FormValue("pages"),
	})
	if err != nil {
		a.failJob(r, job, fmt.Sprintf("vendor analysis failed: %v", err))
		config.ErrorStatus("vendor analysis failed", http.StatusBadGateway, w, err)
		return
	}

	if _, err := a.Jobs.TransitionStatus(ctx, job.ID, models.JobStatusProcessingOCR, models.JobStatusProcessingNLP, nil); err != nil {
		config.ErrorStatus("failed to update job status", http.StatusInternalServerError, w, err)
		return
	}
	job.Status = models.JobStatusProcessingNLP

	if err := a.Docs.SetExtractedText(ctx, doc.ID, result.Markdown); err != nil {
		zap.S().With(err).Error("failed to persist extracted text")
	}

	insights := docai.ExtractInsights(result.Markdown)
	riskLevel := docai.RiskLevel(result.Markdown)

	report := buildAnalysisReport(patientID, doc.ID, result, insights, riskLevel)
	if err := a.Reports.CreateAnalysisReport(ctx, report); err != nil {
		a.failJob(r, job, fmt.Sprintf("report creation failed: %v", err))
		config.ErrorStatus("failed to create analysis report", http.StatusInternalServerError, w, err)
		return
	}

	if _, err := a.Jobs.TransitionStatus(ctx, job.ID, models.JobStatusProcessingNLP, models.JobStatusCompleted,
		bson.M{"analysisReportId": report.ID}); err != nil {
		config.ErrorStatus("failed to update job status", http.StatusInternalServerError, w, err)
		return
	}

	a.notifyReportReady(r, patientID, report.ID.Hex())

	response := models.HealthAnalysisResult{
		AnalysisID: uuid.New().String(),
		Vendor:     analyzer.Vendor(),
		Markdown:   result.Markdown,
		Insights:   insights,
		RiskLevel:  riskLevel,
		JobID:      job.ID.Hex(),
		ReportID:   report.ID.Hex(),
		RawVendor:  result.ExtractedSchema,
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		zap.S().With(err).Error("failed to encode analysis response")
	}
}

func (a Analyze) analyzerFor(vendor string) (docai.Analyzer, error) {
	switch vendor {
	case models.VendorLandingAI:
		if a.LandingAI == nil {
			return nil, fmt.Errorf("landingai vendor is not configured")
		}
		return a.LandingAI, nil
	case models.VendorGemini:
		if a.Gemini == nil {
			return nil, fmt.Errorf("gemini vendor is not configured")
		}
		return a.Gemini, nil
	default:
		return nil, fmt.Errorf("unknown vendor: %s", vendor)
	}
}

// failJob marks the job failed with the error recorded. Failures here are
// logged and swallowed, the caller is already on an error path.
func (a Analyze) failJob(r *http.Request, job *models.ProcessingJob, errorLog string) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	if _, err := a.Jobs.TransitionStatus(ctx, job.ID, job.Status, models.JobStatusFailed,
		bson.M{"errorLog": errorLog}); err != nil {
		zap.S().With(err).Errorw("failed to mark job failed", "jobId", job.ID.Hex())
	}
}

// notifyReportReady emails the caller that their report is ready. Runs
// best-effort off the request path.
func (a Analyze) notifyReportReady(r *http.Request, patientID primitive.ObjectID, reportID string) {
	if a.Notify == nil {
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	user, err := a.Users.GetUserByID(ctx, api.UserID(r))
	if err != nil {
		zap.S().With(err).Warn("failed to load user for report notification")
		return
	}
	patientName := ""
	if patient, err := a.Patients.GetPatientByID(ctx, patientID.Hex()); err == nil {
		patientName = patient.Name
	}

	go a.Notify(user.Email, user.Name, patientName, reportID)
}

// SendReportReadyEmail is the default Notify implementation, backed by
// sendgrid.
func SendReportReadyEmail(userEmail, userName, patientName, reportID string) {
	subject := "Your HealthSpectrum report is ready"
	body := fmt.Sprintf("Hi %s,\n\nThe analysis of the document you uploaded", userName)
	if patientName != "" {
		body += fmt.Sprintf(" for %s", patientName)
	}
	body += fmt.Sprintf(" has finished. Open HealthSpectrum to review report %s.\n\nThe HealthSpectrum Team", reportID)

	from := mail.NewEmail("HealthSpectrum", "no-reply@healthspectrum.app")
	to := mail.NewEmail(userName, userEmail)
	msg := mail.NewSingleEmail(from, subject, to, body, templates.RenderGenericEmail(subject, body))
	client := sendgrid.NewSendClient(os.Getenv("SENDGRID_API_KEY"))
	if _, err := client.Send(msg); err != nil {
		zap.S().With(err).Warn("failed to send report-ready email")
	}
}

// buildAnalysisReport maps the vendor result and the keyword insights onto
// the stored report shape.
func buildAnalysisReport(patientID, docID primitive.ObjectID, result *docai.AnalyzeResult, insights models.MedicalInsights, riskLevel string) *models.AnalysisReport {
	report := &models.AnalysisReport{
		PatientID:       patientID,
		SourceDocuments: []primitive.ObjectID{docID},
		Summary:         summaryFromSchema(result.ExtractedSchema),
		Medications:     []models.ReportMedication{},
		TestsExplained:  []models.ExplainedTest{},
		FutureRisks:     []models.FutureRisk{},
		Recommendations: []models.Recommendation{},
	}

	report.ConditionsDetected = make([]models.Condition, 0, len(insights.Conditions))
	for _, c := range insights.Conditions {
		report.ConditionsDetected = append(report.ConditionsDetected, models.Condition{
			Name:            c,
			ConfidenceScore: 0.5,
			Evidence:        []models.Evidence{{Snippet: c, PageNumber: 1}},
		})
	}
	for _, m := range insights.Medications {
		report.Medications = append(report.Medications, models.ReportMedication{Name: m})
	}
	for _, v := range insights.Vitals {
		report.TestsExplained = append(report.TestsExplained, models.ExplainedTest{Name: v})
	}

	urgency := models.UrgencyNormal
	switch riskLevel {
	case models.RiskLevelHigh:
		urgency = models.UrgencyUrgent
	case models.RiskLevelMedium:
		urgency = models.UrgencySoon
	}
	for _, rec := range insights.Recommendations {
		report.Recommendations = append(report.Recommendations, models.Recommendation{
			Text:    rec,
			Urgency: urgency,
		})
	}

	if riskLevel == models.RiskLevelHigh {
		report.FutureRisks = append(report.FutureRisks, models.FutureRisk{
			Text:       "The document contains language associated with a high-risk finding. Review with a clinician.",
			Confidence: 0.5,
		})
	}

	return report
}

// summaryFromSchema pulls the summary out of the vendor's extracted schema
// when one is present, falling back to a generic line.
func summaryFromSchema(schema json.RawMessage) string {
	var shaped struct {
		Summary string `json:"summary"`
	}
	if err := json.Unmarshal(schema, &shaped); err == nil && shaped.Summary != "" {
		return shaped.Summary
	}
	return "Document analyzed. See detected conditions and recommendations below."
}
