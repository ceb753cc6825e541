package handlers_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/healthspectrum/healthspectrum-api/api/handlers"
	dbmocks "github.com/healthspectrum/healthspectrum-api/databases/mocks"
	"github.com/healthspectrum/healthspectrum-api/models"
	storagemocks "github.com/healthspectrum/healthspectrum-api/storage/mocks"
)

func TestSourceDocument_ArchiveHandlerKeepsRecordAndFile(t *testing.T) {
	docID := primitive.NewObjectID()

	req, err := http.NewRequest("PATCH", fmt.Sprintf("/api/v1/document/%s/archive", docID.Hex()), nil)
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"source_document_id": docID.Hex()})

	ddb := dbmocks.NewSourceDocumentDatabase(t)
	store := storagemocks.NewFileStore(t)
	ddb.On("SetArchived", mock.Anything, docID.Hex(), true).Return(nil)

	s := handlers.SourceDocument{DB: ddb, Store: store}
	rr := httptest.NewRecorder()
	http.HandlerFunc(s.ArchiveSourceDocumentHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	// archive is a soft delete: nothing is removed anywhere
	store.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	ddb.AssertNotCalled(t, "DeleteSourceDocument", mock.Anything, mock.Anything)
}

func TestSourceDocument_DeleteHandlerRemovesFileThenRecord(t *testing.T) {
	docID := primitive.NewObjectID()

	req, err := http.NewRequest("DELETE", fmt.Sprintf("/api/v1/document/%s", docID.Hex()), nil)
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"source_document_id": docID.Hex()})

	ddb := dbmocks.NewSourceDocumentDatabase(t)
	store := storagemocks.NewFileStore(t)

	ddb.On("GetSourceDocumentByID", mock.Anything, docID.Hex()).Return(&models.SourceDocument{
		ID:       docID,
		PublicID: "healthspectrum/cbc-results",
	}, nil)
	store.On("Delete", mock.Anything, "healthspectrum/cbc-results").Return(nil)
	ddb.On("DeleteSourceDocument", mock.Anything, docID.Hex()).Return(nil)

	s := handlers.SourceDocument{DB: ddb, Store: store}
	rr := httptest.NewRecorder()
	http.HandlerFunc(s.DeleteSourceDocumentHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestSourceDocument_DeleteHandlerKeepsRecordWhenStoreFails(t *testing.T) {
	docID := primitive.NewObjectID()

	req, err := http.NewRequest("DELETE", fmt.Sprintf("/api/v1/document/%s", docID.Hex()), nil)
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"source_document_id": docID.Hex()})

	ddb := dbmocks.NewSourceDocumentDatabase(t)
	store := storagemocks.NewFileStore(t)

	ddb.On("GetSourceDocumentByID", mock.Anything, docID.Hex()).Return(&models.SourceDocument{
		ID:       docID,
		PublicID: "healthspectrum/cbc-results",
	}, nil)
	store.On("Delete", mock.Anything, "healthspectrum/cbc-results").Return(fmt.Errorf("cloudinary delete failed: error"))

	s := handlers.SourceDocument{DB: ddb, Store: store}
	rr := httptest.NewRecorder()
	http.HandlerFunc(s.DeleteSourceDocumentHandler).ServeHTTP(rr, req)

	// the record survives so the delete can be retried
	assert.Equal(t, http.StatusBadGateway, rr.Code)
	ddb.AssertNotCalled(t, "DeleteSourceDocument", mock.Anything, mock.Anything)
}

func TestSourceDocument_ListByPatientExcludesArchivedByDefault(t *testing.T) {
	patientID := primitive.NewObjectID()

	req, err := http.NewRequest("GET", fmt.Sprintf("/api/v1/patient/%s/documents", patientID.Hex()), nil)
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"patient_id": patientID.Hex()})

	// no limit param: the whole listing comes back, nothing is silently cut off
	ddb := dbmocks.NewSourceDocumentDatabase(t)
	ddb.On("GetSourceDocumentsByPatientID", mock.Anything, patientID, false, int64(0), int64(0)).Return([]models.SourceDocument{}, nil)

	s := handlers.SourceDocument{DB: ddb, Store: storagemocks.NewFileStore(t)}
	rr := httptest.NewRecorder()
	http.HandlerFunc(s.SourceDocumentsByPatientHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())
}

func TestSourceDocument_ListByPatientIncludeArchived(t *testing.T) {
	patientID := primitive.NewObjectID()

	req, err := http.NewRequest("GET", fmt.Sprintf("/api/v1/patient/%s/documents?includeArchived=true&limit=5&page=2", patientID.Hex()), nil)
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"patient_id": patientID.Hex()})

	ddb := dbmocks.NewSourceDocumentDatabase(t)
	ddb.On("GetSourceDocumentsByPatientID", mock.Anything, patientID, true, int64(5), int64(2)).Return([]models.SourceDocument{
		{PatientID: patientID, FileName: "old-scan.png", IsArchived: true},
	}, nil)

	s := handlers.SourceDocument{DB: ddb, Store: storagemocks.NewFileStore(t)}
	rr := httptest.NewRecorder()
	http.HandlerFunc(s.SourceDocumentsByPatientHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}
