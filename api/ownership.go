package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/healthspectrum/healthspectrum-api/config"
	"github.com/healthspectrum/healthspectrum-api/databases"
)

// ErrResourceNotFound tells the ownership middleware to answer 404 instead
// of 403: the resource whose owner we were resolving does not exist.
var ErrResourceNotFound = errors.New("resource not found")

// PatientRef resolves the owning patient reference for a request. The
// returned value may be a hex string, a bare ObjectID, or a populated
// sub-document carrying an _id; NormalizePatientRef accepts all three.
type PatientRef func(r *http.Request) (interface{}, error)

// Ownership gates resource routes on the caller's linkedPatients list.
// One implementation shared by every route, so the check cannot drift
// between resources.
type Ownership struct {
	DB databases.UserDatabase
}

// Require wraps a handler with the patient-access check: 401 when the
// request carries no authenticated user, 404 when the resource is missing,
// 403 when the resource exists but its patient is not linked to the caller.
func (o Ownership) Require(resolve PatientRef) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")

			userID := UserID(r)
			if userID == "" {
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"error": "unauthorized"}`))
				return
			}

			ref, err := resolve(r)
			if err != nil {
				if errors.Is(err, ErrResourceNotFound) {
					w.WriteHeader(http.StatusNotFound)
					w.Write([]byte(`{"error": "resource not found"}`))
					return
				}
				var maxBytesErr *http.MaxBytesError
				if errors.As(err, &maxBytesErr) {
					w.WriteHeader(http.StatusRequestEntityTooLarge)
					w.Write([]byte(`{"error": "file exceeds the upload limit"}`))
					return
				}
				zap.S().With(err).Error("failed to resolve patient reference")
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte(`{"error": "patientId is required"}`))
				return
			}

			patientID, err := NormalizePatientRef(ref)
			if err != nil {
				zap.S().With(err).Error("unrecognized patient reference")
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte(`{"error": "invalid patientId"}`))
				return
			}

			user, err := o.DB.GetUserByID(r.Context(), userID)
			if err != nil {
				zap.S().With(err).Error("failed to load caller for ownership check")
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"error": "unauthorized"}`))
				return
			}

			if !user.HasLinkedPatient(patientID) {
				zap.S().Warnw("patient not linked to caller",
					"userId", userID,
					"patientId", patientID.Hex())
				w.WriteHeader(http.StatusForbidden)
				w.Write([]byte(`{"error": "patient is not linked to this account"}`))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// NormalizePatientRef converts the tolerated patient reference shapes into
// an ObjectID: hex string, bare ObjectID, or a populated sub-document with
// an _id field.
func NormalizePatientRef(ref interface{}) (primitive.ObjectID, error) {
	switch v := ref.(type) {
	case primitive.ObjectID:
		return v, nil
	case string:
		return primitive.ObjectIDFromHex(v)
	case map[string]interface{}:
		inner, ok := v["_id"]
		if !ok {
			return primitive.NilObjectID, fmt.Errorf("populated patient reference has no _id")
		}
		return NormalizePatientRef(inner)
	default:
		return primitive.NilObjectID, fmt.Errorf("unsupported patient reference type %T", ref)
	}
}

// PatientIDFromPath extracts the patient reference from a mux path variable.
func PatientIDFromPath(varName string) PatientRef {
	return func(r *http.Request) (interface{}, error) {
		id := mux.Vars(r)[varName]
		if id == "" {
			return nil, fmt.Errorf("missing %s path variable", varName)
		}
		return id, nil
	}
}

// PatientIDFromBody extracts the patient reference from a JSON body field,
// restoring the body for the downstream handler.
func PatientIDFromBody(field string) PatientRef {
	return func(r *http.Request) (interface{}, error) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			return nil, err
		}
		r.Body = io.NopCloser(bytes.NewReader(body))

		var payload map[string]interface{}
		if err := json.Unmarshal(body, &payload); err != nil {
			return nil, fmt.Errorf("invalid JSON body: %w", err)
		}
		ref, ok := payload[field]
		if !ok || ref == nil {
			return nil, fmt.Errorf("missing %s field", field)
		}
		return ref, nil
	}
}

// PatientIDFromForm extracts the patient reference from a multipart form
// field. The body is capped at maxBytes before the first parse, so an
// oversized upload dies here with a 413 rather than being read in full.
// The handler re-parses the form afterwards; ParseMultipartForm is
// idempotent.
func PatientIDFromForm(field string, maxBytes int64) PatientRef {
	return func(r *http.Request) (interface{}, error) {
		if maxBytes <= 0 {
			maxBytes = config.DefaultMaxUploadBytes
		}
		r.Body = http.MaxBytesReader(nil, r.Body, maxBytes)
		if err := r.ParseMultipartForm(maxBytes); err != nil {
			return nil, fmt.Errorf("invalid multipart form: %w", err)
		}
		id := r.FormValue(field)
		if id == "" {
			return nil, fmt.Errorf("missing %s form field", field)
		}
		return id, nil
	}
}
