package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AllowedUploadTypes maps accepted upload MIME types to their canonical
// file extensions. Anything else is rejected before the handler runs.
var AllowedUploadTypes = map[string]string{
	"application/pdf": ".pdf",
	"image/jpeg":      ".jpg",
	"image/jpg":       ".jpg",
	"image/png":       ".png",
	"image/gif":       ".gif",
	"image/webp":      ".webp",
}

// SourceDocument holds the structure for the sourcedocuments collection in
// mongo. StorageURL and PublicID point at the backing Cloudinary object.
type SourceDocument struct {
	ID            primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	PatientID     primitive.ObjectID `json:"patientId" bson:"patientId"`
	FileName      string             `json:"fileName" bson:"fileName"`
	ContentType   string             `json:"contentType" bson:"contentType"`
	SizeBytes     int64              `json:"sizeBytes" bson:"sizeBytes"`
	StorageURL    string             `json:"storageUrl" bson:"storageUrl"`
	PublicID      string             `json:"publicId" bson:"publicId"`
	ExtractedText string             `json:"extractedText,omitempty" bson:"extractedText,omitempty"`
	IsArchived    bool               `json:"isArchived" bson:"isArchived"`
	CreatedAt     primitive.DateTime `json:"createdAt" bson:"createdAt"`
	UpdatedAt     primitive.DateTime `json:"updatedAt" bson:"updatedAt"`
}
