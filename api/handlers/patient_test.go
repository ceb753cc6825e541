package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/healthspectrum/healthspectrum-api/api"
	"github.com/healthspectrum/healthspectrum-api/api/handlers"
	"github.com/healthspectrum/healthspectrum-api/databases/mocks"
	"github.com/healthspectrum/healthspectrum-api/models"
)

func TestPatient_CreatePatientHandlerNewPatient(t *testing.T) {
	userID := primitive.NewObjectID()

	body, _ := json.Marshal(models.Patient{
		Name:   "Jane Doe",
		Gender: "female",
		ContactInfo: models.ContactInfo{
			Email: "jane@example.com",
		},
	})
	req, err := http.NewRequest("POST", "/api/v1/patient", bytes.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	req = api.WithUserID(req, userID.Hex())

	pdb := mocks.NewPatientDatabase(t)
	udb := mocks.NewUserDatabase(t)

	pdb.On("FindPatientByContact", mock.Anything, "jane@example.com", "").Return(nil, mongo.ErrNoDocuments)
	pdb.On("CreatePatient", mock.Anything, mock.AnythingOfType("*models.Patient")).Return(nil).Run(func(args mock.Arguments) {
		args.Get(1).(*models.Patient).ID = primitive.NewObjectID()
	})
	udb.On("AddLinkedPatient", mock.Anything, userID, mock.AnythingOfType("primitive.ObjectID")).Return(nil)

	p := handlers.Patient{DB: pdb, UDB: udb}
	rr := httptest.NewRecorder()
	http.HandlerFunc(p.CreatePatientHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)

	var created models.Patient
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	assert.False(t, created.ID.IsZero())
	assert.Equal(t, "Jane Doe", created.Name)
}

func TestPatient_CreatePatientHandlerReusesExisting(t *testing.T) {
	userID := primitive.NewObjectID()
	existingID := primitive.NewObjectID()

	body, _ := json.Marshal(models.Patient{
		Name:   "Jane Doe",
		Gender: "female",
		ContactInfo: models.ContactInfo{
			Email: "jane@example.com",
		},
	})
	req, err := http.NewRequest("POST", "/api/v1/patient", bytes.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	req = api.WithUserID(req, userID.Hex())

	pdb := mocks.NewPatientDatabase(t)
	udb := mocks.NewUserDatabase(t)

	pdb.On("FindPatientByContact", mock.Anything, "jane@example.com", "").Return(&models.Patient{
		ID:   existingID,
		Name: "Jane Doe",
	}, nil)
	udb.On("AddLinkedPatient", mock.Anything, userID, existingID).Return(nil)

	p := handlers.Patient{DB: pdb, UDB: udb}
	rr := httptest.NewRecorder()
	http.HandlerFunc(p.CreatePatientHandler).ServeHTTP(rr, req)

	// second submit with the same contact info reuses the record
	assert.Equal(t, http.StatusOK, rr.Code)

	var reused models.Patient
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &reused))
	assert.Equal(t, existingID, reused.ID)

	pdb.AssertNotCalled(t, "CreatePatient", mock.Anything, mock.Anything)
}

func TestPatient_CreatePatientHandlerRejectsUnknownGender(t *testing.T) {
	body, _ := json.Marshal(models.Patient{Name: "Jane Doe", Gender: "unknown"})
	req, err := http.NewRequest("POST", "/api/v1/patient", bytes.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	req = api.WithUserID(req, primitive.NewObjectID().Hex())

	p := handlers.Patient{DB: mocks.NewPatientDatabase(t), UDB: mocks.NewUserDatabase(t)}
	rr := httptest.NewRecorder()
	http.HandlerFunc(p.CreatePatientHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestPatient_MyPatientsHandler(t *testing.T) {
	userID := primitive.NewObjectID()
	linked := []primitive.ObjectID{primitive.NewObjectID(), primitive.NewObjectID()}

	req, err := http.NewRequest("GET", "/api/v1/patients", nil)
	if err != nil {
		t.Fatal(err)
	}
	req = api.WithUserID(req, userID.Hex())

	pdb := mocks.NewPatientDatabase(t)
	udb := mocks.NewUserDatabase(t)

	udb.On("GetUserByID", mock.Anything, userID.Hex()).Return(&models.User{
		ID:             userID,
		LinkedPatients: linked,
	}, nil)
	pdb.On("GetPatientsByIDs", mock.Anything, linked).Return([]models.Patient{
		{ID: linked[0], Name: "Jane Doe"},
		{ID: linked[1], Name: "John Doe"},
	}, nil)

	p := handlers.Patient{DB: pdb, UDB: udb}
	rr := httptest.NewRecorder()
	http.HandlerFunc(p.MyPatientsHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var patients []models.Patient
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &patients))
	assert.Len(t, patients, 2)
}

func TestPatient_MyPatientsHandlerEmptyList(t *testing.T) {
	userID := primitive.NewObjectID()

	req, err := http.NewRequest("GET", "/api/v1/patients", nil)
	if err != nil {
		t.Fatal(err)
	}
	req = api.WithUserID(req, userID.Hex())

	udb := mocks.NewUserDatabase(t)
	udb.On("GetUserByID", mock.Anything, userID.Hex()).Return(&models.User{ID: userID}, nil)

	p := handlers.Patient{DB: mocks.NewPatientDatabase(t), UDB: udb}
	rr := httptest.NewRecorder()
	http.HandlerFunc(p.MyPatientsHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())
}
