package databases

// go generate: mockery --name SourceDocumentDatabase

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/healthspectrum/healthspectrum-api/models"
)

const sourceDocumentCollectionName = "sourcedocuments"

// SourceDocumentDatabase contains the methods to use with the source document collection
type SourceDocumentDatabase interface {
	CreateSourceDocument(ctx context.Context, doc *models.SourceDocument) error
	GetSourceDocumentByID(ctx context.Context, id string) (*models.SourceDocument, error)
	GetSourceDocumentsByPatientID(ctx context.Context, patientID primitive.ObjectID, includeArchived bool, limit, page int64) ([]models.SourceDocument, error)
	GetSourceDocumentsByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.SourceDocument, error)
	SetArchived(ctx context.Context, id string, archived bool) error
	SetExtractedText(ctx context.Context, id primitive.ObjectID, text string) error
	DeleteSourceDocument(ctx context.Context, id string) error
}

type sourceDocumentDatabase struct {
	db DatabaseHelper
}

// NewSourceDocumentDatabase initializes a new instance of source document database with the provided db connection
func NewSourceDocumentDatabase(db DatabaseHelper) SourceDocumentDatabase {
	return &sourceDocumentDatabase{db: db}
}

func (s *sourceDocumentDatabase) CreateSourceDocument(ctx context.Context, doc *models.SourceDocument) error {
	now := primitive.NewDateTimeFromTime(time.Now())
	doc.CreatedAt = now
	doc.UpdatedAt = now
	if doc.ID.IsZero() {
		doc.ID = primitive.NewObjectID()
	}

	_, err := s.db.Collection(sourceDocumentCollectionName).InsertOne(ctx, doc)
	return err
}

func (s *sourceDocumentDatabase) GetSourceDocumentByID(ctx context.Context, id string) (*models.SourceDocument, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	doc := &models.SourceDocument{}
	err = s.db.Collection(sourceDocumentCollectionName).FindOne(ctx, bson.M{"_id": objectID}).Decode(doc)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// GetSourceDocumentsByPatientID returns a patient's documents newest first.
func (s *sourceDocumentDatabase) GetSourceDocumentsByPatientID(ctx context.Context, patientID primitive.ObjectID, includeArchived bool, limit, page int64) ([]models.SourceDocument, error) {
	filter := bson.M{"patientId": patientID}
	if !includeArchived {
		filter["isArchived"] = false
	}

	opts := newMongoPaginate(limit, page).getPaginatedOpts()
	opts.SetSort(bson.M{"createdAt": -1})

	cursor, err := s.db.Collection(sourceDocumentCollectionName).Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []models.SourceDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

func (s *sourceDocumentDatabase) GetSourceDocumentsByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.SourceDocument, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := s.db.Collection(sourceDocumentCollectionName).Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []models.SourceDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

func (s *sourceDocumentDatabase) SetArchived(ctx context.Context, id string, archived bool) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	_, err = s.db.Collection(sourceDocumentCollectionName).UpdateOne(ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": bson.M{
			"isArchived": archived,
			"updatedAt":  primitive.NewDateTimeFromTime(time.Now()),
		}})
	return err
}

func (s *sourceDocumentDatabase) SetExtractedText(ctx context.Context, id primitive.ObjectID, text string) error {
	_, err := s.db.Collection(sourceDocumentCollectionName).UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"extractedText": text,
			"updatedAt":     primitive.NewDateTimeFromTime(time.Now()),
		}})
	return err
}

func (s *sourceDocumentDatabase) DeleteSourceDocument(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	return s.db.Collection(sourceDocumentCollectionName).DeleteOne(ctx, bson.M{"_id": objectID})
}
