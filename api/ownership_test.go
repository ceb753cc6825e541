package api

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/healthspectrum/healthspectrum-api/databases/mocks"
	"github.com/healthspectrum/healthspectrum-api/models"
)

func TestNormalizePatientRef(t *testing.T) {
	id := primitive.NewObjectID()

	tests := []struct {
		name    string
		ref     interface{}
		want    primitive.ObjectID
		wantErr bool
	}{
		{"bare object id", id, id, false},
		{"hex string", id.Hex(), id, false},
		{"populated sub-document", map[string]interface{}{"_id": id.Hex(), "name": "Jane"}, id, false},
		{"populated with object id", map[string]interface{}{"_id": id}, id, false},
		{"bad hex", "not-a-hex", primitive.NilObjectID, true},
		{"missing _id", map[string]interface{}{"name": "Jane"}, primitive.NilObjectID, true},
		{"unsupported type", 42, primitive.NilObjectID, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizePatientRef(tt.ref)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOwnershipRequire(t *testing.T) {
	patientID := primitive.NewObjectID()
	otherPatientID := primitive.NewObjectID()
	userID := primitive.NewObjectID()

	linkedUser := &models.User{
		ID:             userID,
		Email:          "jane@x.com",
		LinkedPatients: []primitive.ObjectID{patientID},
	}

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("linked patient passes", func(t *testing.T) {
		userDB := mocks.NewUserDatabase(t)
		userDB.On("GetUserByID", mock.Anything, userID.Hex()).Return(linkedUser, nil)

		o := Ownership{DB: userDB}
		handler := o.Require(func(r *http.Request) (interface{}, error) {
			return patientID, nil
		})(next)

		req := WithUserID(httptest.NewRequest("GET", "/", nil), userID.Hex())
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("unlinked patient is forbidden", func(t *testing.T) {
		userDB := mocks.NewUserDatabase(t)
		userDB.On("GetUserByID", mock.Anything, userID.Hex()).Return(linkedUser, nil)

		o := Ownership{DB: userDB}
		handler := o.Require(func(r *http.Request) (interface{}, error) {
			return otherPatientID, nil
		})(next)

		req := WithUserID(httptest.NewRequest("GET", "/", nil), userID.Hex())
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("missing resource is not found", func(t *testing.T) {
		userDB := mocks.NewUserDatabase(t)

		o := Ownership{DB: userDB}
		handler := o.Require(func(r *http.Request) (interface{}, error) {
			return nil, fmt.Errorf("loading job: %w", ErrResourceNotFound)
		})(next)

		req := WithUserID(httptest.NewRequest("GET", "/", nil), userID.Hex())
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("unauthenticated caller", func(t *testing.T) {
		userDB := mocks.NewUserDatabase(t)

		o := Ownership{DB: userDB}
		handler := o.Require(func(r *http.Request) (interface{}, error) {
			return patientID, nil
		})(next)

		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest("GET", "/", nil))

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("missing body field is bad request", func(t *testing.T) {
		userDB := mocks.NewUserDatabase(t)

		o := Ownership{DB: userDB}
		handler := o.Require(PatientIDFromBody("patientId"))(next)

		req := WithUserID(httptest.NewRequest("POST", "/", nil), userID.Hex())
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("oversized form upload is rejected before the handler", func(t *testing.T) {
		userDB := mocks.NewUserDatabase(t)

		handlerRan := false
		counting := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			handlerRan = true
			w.WriteHeader(http.StatusOK)
		})

		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		part, err := mw.CreateFormFile("file", "huge-scan.pdf")
		assert.NoError(t, err)
		part.Write(bytes.Repeat([]byte("x"), 10*1024))
		mw.WriteField("patientId", patientID.Hex())
		mw.Close()

		o := Ownership{DB: userDB}
		handler := o.Require(PatientIDFromForm("patientId", 100))(counting)

		req := httptest.NewRequest("POST", "/", &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		req = WithUserID(req, userID.Hex())
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
		assert.False(t, handlerRan)
	})

	t.Run("populated reference passes", func(t *testing.T) {
		userDB := mocks.NewUserDatabase(t)
		userDB.On("GetUserByID", mock.Anything, userID.Hex()).Return(linkedUser, nil)

		o := Ownership{DB: userDB}
		handler := o.Require(func(r *http.Request) (interface{}, error) {
			return map[string]interface{}{"_id": patientID.Hex(), "name": "Jane Doe"}, nil
		})(next)

		req := WithUserID(httptest.NewRequest("GET", "/", nil), userID.Hex())
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})
}
