package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/healthspectrum/healthspectrum-api/api/handlers"
	"github.com/healthspectrum/healthspectrum-api/databases/mocks"
	"github.com/healthspectrum/healthspectrum-api/models"
)

func TestAnalysisReport_CreateHandlerRoundTrip(t *testing.T) {
	patientID := primitive.NewObjectID()

	body, _ := json.Marshal(map[string]interface{}{
		"patientId": patientID,
		"summary":   "Routine blood panel, mostly normal.",
		"conditionsDetected": []models.Condition{
			{Name: "Anemia", ConfidenceScore: 0.82, Evidence: []models.Evidence{{Snippet: "Hemoglobin 10.1 g/dL", PageNumber: 1}}},
			{Name: "Vitamin D deficiency", ConfidenceScore: 0.65, Evidence: []models.Evidence{}},
		},
		"recommendations": []models.Recommendation{
			{Text: "Repeat CBC in 3 months", Urgency: models.UrgencyNormal},
		},
	})
	req, err := http.NewRequest("POST", "/api/v1/report", bytes.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}

	rdb := mocks.NewAnalysisReportDatabase(t)
	rdb.On("CreateAnalysisReport", mock.Anything, mock.AnythingOfType("*models.AnalysisReport")).Return(nil).Run(func(args mock.Arguments) {
		args.Get(1).(*models.AnalysisReport).ID = primitive.NewObjectID()
	})

	a := handlers.AnalysisReport{DB: rdb}
	rr := httptest.NewRecorder()
	http.HandlerFunc(a.CreateAnalysisReportHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)

	var created models.AnalysisReport
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	assert.Len(t, created.ConditionsDetected, 2)
	assert.Equal(t, "Anemia", created.ConditionsDetected[0].Name)
	assert.Len(t, created.Recommendations, 1)
}

func TestAnalysisReport_CreateHandlerRequiresConditionsArray(t *testing.T) {
	body, _ := json.Marshal(map[string]interface{}{
		"patientId": primitive.NewObjectID(),
		"summary":   "no conditions field at all",
	})
	req, err := http.NewRequest("POST", "/api/v1/report", bytes.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}

	a := handlers.AnalysisReport{DB: mocks.NewAnalysisReportDatabase(t)}
	rr := httptest.NewRecorder()
	http.HandlerFunc(a.CreateAnalysisReportHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestAnalysisReport_CreateHandlerAcceptsEmptyConditions(t *testing.T) {
	body, _ := json.Marshal(map[string]interface{}{
		"patientId":          primitive.NewObjectID(),
		"conditionsDetected": []models.Condition{},
	})
	req, err := http.NewRequest("POST", "/api/v1/report", bytes.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}

	rdb := mocks.NewAnalysisReportDatabase(t)
	rdb.On("CreateAnalysisReport", mock.Anything, mock.AnythingOfType("*models.AnalysisReport")).Return(nil)

	a := handlers.AnalysisReport{DB: rdb}
	rr := httptest.NewRecorder()
	http.HandlerFunc(a.CreateAnalysisReportHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)
}

func TestAnalysisReport_CreateHandlerRejectsUnknownUrgency(t *testing.T) {
	body, _ := json.Marshal(map[string]interface{}{
		"patientId":          primitive.NewObjectID(),
		"conditionsDetected": []models.Condition{},
		"recommendations": []models.Recommendation{
			{Text: "See a doctor", Urgency: "asap"},
		},
	})
	req, err := http.NewRequest("POST", "/api/v1/report", bytes.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}

	a := handlers.AnalysisReport{DB: mocks.NewAnalysisReportDatabase(t)}
	rr := httptest.NewRecorder()
	http.HandlerFunc(a.CreateAnalysisReportHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestAnalysisReport_ByIDHandlerPopulatesPatient(t *testing.T) {
	reportID := primitive.NewObjectID()
	docID := primitive.NewObjectID()

	req, err := http.NewRequest("GET", fmt.Sprintf("/api/v1/report/%s", reportID.Hex()), nil)
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"report_id": reportID.Hex()})

	rdb := mocks.NewAnalysisReportDatabase(t)
	rdb.On("GetAnalysisReportWithPatient", mock.Anything, reportID.Hex()).Return(&models.AnalysisReportWithPatient{
		ID:          reportID,
		PatientName: "Jane Doe",
		SourceDocuments: []models.SourceDocument{
			{ID: docID, FileName: "cbc-results.pdf"},
		},
		ConditionsDetected: []models.Condition{},
	}, nil)

	a := handlers.AnalysisReport{DB: rdb}
	rr := httptest.NewRecorder()
	http.HandlerFunc(a.AnalysisReportByIDHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var got models.AnalysisReportWithPatient
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, "Jane Doe", got.PatientName)
	assert.Len(t, got.SourceDocuments, 1)
	assert.Equal(t, "cbc-results.pdf", got.SourceDocuments[0].FileName)
}

func TestAnalysisReport_ConditionFeedbackHandler(t *testing.T) {
	reportID := primitive.NewObjectID()

	body, _ := json.Marshal(map[string]string{"feedback": "confirmed"})
	req, err := http.NewRequest("PUT", fmt.Sprintf("/api/v1/report/%s/conditions/1/feedback", reportID.Hex()), bytes.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"report_id": reportID.Hex(), "condition_index": "1"})

	rdb := mocks.NewAnalysisReportDatabase(t)
	rdb.On("GetAnalysisReportByID", mock.Anything, reportID.Hex()).Return(&models.AnalysisReport{
		ID: reportID,
		ConditionsDetected: []models.Condition{
			{Name: "Anemia"},
			{Name: "Hypertension"},
		},
	}, nil)
	rdb.On("SetConditionFeedback", mock.Anything, reportID.Hex(), 1, "confirmed").Return(nil)

	a := handlers.AnalysisReport{DB: rdb}
	rr := httptest.NewRecorder()
	http.HandlerFunc(a.ConditionFeedbackHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestAnalysisReport_ConditionFeedbackHandlerIndexOutOfRange(t *testing.T) {
	reportID := primitive.NewObjectID()

	body, _ := json.Marshal(map[string]string{"feedback": "confirmed"})
	req, err := http.NewRequest("PUT", fmt.Sprintf("/api/v1/report/%s/conditions/5/feedback", reportID.Hex()), bytes.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"report_id": reportID.Hex(), "condition_index": "5"})

	rdb := mocks.NewAnalysisReportDatabase(t)
	rdb.On("GetAnalysisReportByID", mock.Anything, reportID.Hex()).Return(&models.AnalysisReport{
		ID:                 reportID,
		ConditionsDetected: []models.Condition{{Name: "Anemia"}},
	}, nil)

	a := handlers.AnalysisReport{DB: rdb}
	rr := httptest.NewRecorder()
	http.HandlerFunc(a.ConditionFeedbackHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	rdb.AssertNotCalled(t, "SetConditionFeedback", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
