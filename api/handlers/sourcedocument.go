package handlers

import (
	"encoding/json"
	"errors"
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
	"github.com/healthspectrum/healthspectrum-api/storage"
)

// SourceDocument represents the source document handler
type SourceDocument struct {
	DB             databases.SourceDocumentDatabase
	Store          storage.FileStore
	MaxUploadBytes int64
}

// UploadSourceDocumentHandler accepts a multipart upload, pushes the file to
// the file store and records the resulting SourceDocument. The form carries
// the file under "file" and the owning patient under "patientId".
func (s SourceDocument) UploadSourceDocumentHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	maxBytes := s.MaxUploadBytes
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

	stored, err := s.Store.Upload(r.Context(), header.Filename, file)
	if err != nil {
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

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	if err := s.DB.CreateSourceDocument(ctx, doc); err != nil {
		config.ErrorStatus("failed to create source document", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(doc); err != nil {
		zap.S().With(err).Error("failed to encode source document response")
	}
}

// SourceDocumentByIDHandler returns a single source document
func (s SourceDocument) SourceDocumentByIDHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	doc, err := s.DB.GetSourceDocumentByID(ctx, mux.Vars(r)["source_document_id"])
	if err != nil {
		config.ErrorStatus("failed to get source document by ID", http.StatusNotFound, w, err)
		return
	}

	if err := json.NewEncoder(w).Encode(doc); err != nil {
		zap.S().With(err).Error("failed to encode source document response")
	}
}

// SourceDocumentsByPatientHandler lists a patient's documents newest first.
// Archived documents are excluded unless includeArchived=true.
func (s SourceDocument) SourceDocumentsByPatientHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	patientID, err := primitive.ObjectIDFromHex(mux.Vars(r)["patient_id"])
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	limit, page := parsePagination(r)
	includeArchived, _ := strconv.ParseBool(r.URL.Query().Get("includeArchived"))

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	docs, err := s.DB.GetSourceDocumentsByPatientID(ctx, patientID, includeArchived, limit, page)
	if err != nil {
		config.ErrorStatus("failed to list source documents", http.StatusInternalServerError, w, err)
		return
	}
	if docs == nil {
		docs = []models.SourceDocument{}
	}

	if err := json.NewEncoder(w).Encode(docs); err != nil {
		zap.S().With(err).Error("failed to encode source documents response")
	}
}

// ArchiveSourceDocumentHandler soft-deletes a document. The file object and
// the record stay, but the document drops out of default listings.
func (s SourceDocument) ArchiveSourceDocumentHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	if err := s.DB.SetArchived(ctx, mux.Vars(r)["source_document_id"], true); err != nil {
		config.ErrorStatus("failed to archive source document", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"archived": true}`))
}

// DeleteSourceDocumentHandler hard-deletes a document: the backing file is
// removed from the store first, then the record. A failed store delete leaves
// the record intact so the delete can be retried.
func (s SourceDocument) DeleteSourceDocumentHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	id := mux.Vars(r)["source_document_id"]

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	doc, err := s.DB.GetSourceDocumentByID(ctx, id)
	if err != nil {
		config.ErrorStatus("failed to get source document by ID", http.StatusNotFound, w, err)
		return
	}

	if doc.PublicID != "" {
		if err := s.Store.Delete(r.Context(), doc.PublicID); err != nil {
			config.ErrorStatus("failed to delete stored file", http.StatusBadGateway, w, err)
			return
		}
	}

	if err := s.DB.DeleteSourceDocument(ctx, id); err != nil {
		config.ErrorStatus("failed to delete source document", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"deleted": true}`))
}

// parsePagination reads limit/page query params. With no limit given the
// listing is unpaginated and returns every matching record.
func parsePagination(r *http.Request) (limit, page int64) {
	limit, err := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 64)
	if err != nil || limit <= 0 {
		limit = 0
	}
	page, err = strconv.ParseInt(r.URL.Query().Get("page"), 10, 64)
	if err != nil || page < 0 {
		page = 0
	}
	return limit, page
}
