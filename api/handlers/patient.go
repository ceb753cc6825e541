package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/healthspectrum/healthspectrum-api/api"
	"github.com/healthspectrum/healthspectrum-api/config"
	"github.com/healthspectrum/healthspectrum-api/databases"
	"github.com/healthspectrum/healthspectrum-api/models"
)

// Patient represents the patient handler
type Patient struct {
	DB  databases.PatientDatabase
	UDB databases.UserDatabase
}

// CreatePatientHandler creates a patient, deduping by contact info: an
// email or phone match reuses the existing record (200) instead of
// inserting a duplicate (201). Either way the patient is linked to the
// caller.
func (p Patient) CreatePatientHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var patient models.Patient
	if err := json.NewDecoder(r.Body).Decode(&patient); err != nil {
		config.ErrorStatus("failed to decode request", http.StatusBadRequest, w, err)
		return
	}

	if patient.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}
	if !validEnum(patient.Gender, models.Gender) {
		http.Error(w, "gender must be one of male, female, other", http.StatusBadRequest)
		return
	}
	if patient.BloodGroup != "" && !validEnum(patient.BloodGroup, models.BloodGroups) {
		http.Error(w, "unrecognized blood group", http.StatusBadRequest)
		return
	}

	userID, err := primitive.ObjectIDFromHex(api.UserID(r))
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusUnauthorized, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	// dedupe check happens only at creation time; concurrent creates with
	// the same contact info can still race in duplicates
	existing, err := p.DB.FindPatientByContact(ctx, patient.ContactInfo.Email, patient.ContactInfo.Phone)
	if err == nil && existing != nil {
		if err := p.UDB.AddLinkedPatient(ctx, userID, existing.ID); err != nil {
			config.ErrorStatus("failed to link patient", http.StatusInternalServerError, w, err)
			return
		}
		w.WriteHeader(http.StatusOK)
		if err := json.NewEncoder(w).Encode(existing); err != nil {
			zap.S().With(err).Error("failed to encode patient response")
		}
		return
	}

	if err := p.DB.CreatePatient(ctx, &patient); err != nil {
		config.ErrorStatus("failed to create patient", http.StatusInternalServerError, w, err)
		return
	}
	if err := p.UDB.AddLinkedPatient(ctx, userID, patient.ID); err != nil {
		config.ErrorStatus("failed to link patient", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(patient); err != nil {
		zap.S().With(err).Error("failed to encode patient response")
	}
}

// PatientByIDHandler returns a single patient
func (p Patient) PatientByIDHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	patient, err := p.DB.GetPatientByID(ctx, mux.Vars(r)["patient_id"])
	if err != nil {
		config.ErrorStatus("failed to get patient by ID", http.StatusNotFound, w, err)
		return
	}

	if err := json.NewEncoder(w).Encode(patient); err != nil {
		zap.S().With(err).Error("failed to encode patient response")
	}
}

// MyPatientsHandler lists every patient linked to the caller
func (p Patient) MyPatientsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	user, err := p.UDB.GetUserByID(ctx, api.UserID(r))
	if err != nil {
		config.ErrorStatus("failed to get user", http.StatusUnauthorized, w, err)
		return
	}

	patients := []models.Patient{}
	if len(user.LinkedPatients) > 0 {
		patients, err = p.DB.GetPatientsByIDs(ctx, user.LinkedPatients)
		if err != nil {
			config.ErrorStatus("failed to list patients", http.StatusInternalServerError, w, err)
			return
		}
	}

	if err := json.NewEncoder(w).Encode(patients); err != nil {
		zap.S().With(err).Error("failed to encode patients response")
	}
}

// UpdatePatientHandler replaces a patient's profile fields
func (p Patient) UpdatePatientHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var patient models.Patient
	if err := json.NewDecoder(r.Body).Decode(&patient); err != nil {
		config.ErrorStatus("failed to decode request", http.StatusBadRequest, w, err)
		return
	}
	if patient.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}
	if !validEnum(patient.Gender, models.Gender) {
		http.Error(w, "gender must be one of male, female, other", http.StatusBadRequest)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	id := mux.Vars(r)["patient_id"]
	if err := p.DB.UpdatePatient(ctx, id, &patient); err != nil {
		config.ErrorStatus("failed to update patient", http.StatusInternalServerError, w, err)
		return
	}

	updated, err := p.DB.GetPatientByID(ctx, id)
	if err != nil {
		config.ErrorStatus("failed to get patient by ID", http.StatusNotFound, w, err)
		return
	}

	if err := json.NewEncoder(w).Encode(updated); err != nil {
		zap.S().With(err).Error("failed to encode patient response")
	}
}

// DeletePatientHandler removes a patient and then unlinks it from every
// user. The unlink runs after the delete, so there is a window where
// downstream records still reference the deleted patient.
func (p Patient) DeletePatientHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	id := mux.Vars(r)["patient_id"]
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	if err := p.DB.DeletePatient(ctx, id); err != nil {
		config.ErrorStatus("failed to delete patient", http.StatusInternalServerError, w, err)
		return
	}
	if err := p.UDB.UnlinkPatientFromAllUsers(ctx, objectID); err != nil {
		config.ErrorStatus("failed to unlink patient from users", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"deleted": true}`))
}

// UnlinkPatientHandler removes a patient from the caller's linked list
// without deleting the patient record
func (p Patient) UnlinkPatientHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	patientID, err := primitive.ObjectIDFromHex(mux.Vars(r)["patient_id"])
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}
	userID, err := primitive.ObjectIDFromHex(api.UserID(r))
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusUnauthorized, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	if err := p.UDB.RemoveLinkedPatient(ctx, userID, patientID); err != nil {
		config.ErrorStatus("failed to unlink patient", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"unlinked": true}`))
}

func validEnum(value string, allowed []string) bool {
	for _, a := range allowed {
		if value == a {
			return true
		}
	}
	return false
}
