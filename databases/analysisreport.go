package databases

// go generate: mockery --name AnalysisReportDatabase

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/healthspectrum/healthspectrum-api/models"
)

const analysisReportCollectionName = "analysisreports"

// AnalysisReportDatabase contains the methods to use with the analysis report collection
type AnalysisReportDatabase interface {
	CreateAnalysisReport(ctx context.Context, report *models.AnalysisReport) error
	GetAnalysisReportByID(ctx context.Context, id string) (*models.AnalysisReport, error)
	GetAnalysisReportWithPatient(ctx context.Context, id string) (*models.AnalysisReportWithPatient, error)
	GetAnalysisReportsByPatientID(ctx context.Context, patientID primitive.ObjectID, limit, page int64) ([]models.AnalysisReport, error)
	SetConditionFeedback(ctx context.Context, id string, index int, feedback string) error
	DeleteAnalysisReport(ctx context.Context, id string) error
}

type analysisReportDatabase struct {
	db DatabaseHelper
}

// NewAnalysisReportDatabase initializes a new instance of analysis report database with the provided db connection
func NewAnalysisReportDatabase(db DatabaseHelper) AnalysisReportDatabase {
	return &analysisReportDatabase{db: db}
}

func (a *analysisReportDatabase) CreateAnalysisReport(ctx context.Context, report *models.AnalysisReport) error {
	now := primitive.NewDateTimeFromTime(time.Now())
	report.CreatedAt = now
	report.UpdatedAt = now
	if report.ID.IsZero() {
		report.ID = primitive.NewObjectID()
	}
	if report.ConditionsDetected == nil {
		report.ConditionsDetected = []models.Condition{}
	}
	if report.SourceDocuments == nil {
		report.SourceDocuments = []primitive.ObjectID{}
	}

	_, err := a.db.Collection(analysisReportCollectionName).InsertOne(ctx, report)
	return err
}

func (a *analysisReportDatabase) GetAnalysisReportByID(ctx context.Context, id string) (*models.AnalysisReport, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	report := &models.AnalysisReport{}
	err = a.db.Collection(analysisReportCollectionName).FindOne(ctx, bson.M{"_id": objectID}).Decode(report)
	if err != nil {
		return nil, err
	}
	return report, nil
}

// GetAnalysisReportWithPatient joins in the patient name and the full source
// document records for the report-by-id endpoint.
func (a *analysisReportDatabase) GetAnalysisReportWithPatient(ctx context.Context, id string) (*models.AnalysisReportWithPatient, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	pipeline := []bson.M{
		{"$match": bson.M{"_id": objectID}},
		{"$lookup": bson.M{
			"from":         patientCollectionName,
			"localField":   "patientId",
			"foreignField": "_id",
			"as":           "patient",
		}},
		{"$unwind": bson.M{
			"path":                       "$patient",
			"preserveNullAndEmptyArrays": true,
		}},
		{"$lookup": bson.M{
			"from":         sourceDocumentCollectionName,
			"localField":   "sourceDocuments",
			"foreignField": "_id",
			"as":           "sourceDocuments",
		}},
		{"$addFields": bson.M{
			"patientName": "$patient.name",
		}},
		{"$project": bson.M{"patient": 0}},
	}

	cursor, err := a.db.Collection(analysisReportCollectionName).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var reports []models.AnalysisReportWithPatient
	if err := cursor.All(ctx, &reports); err != nil {
		return nil, err
	}
	if len(reports) == 0 {
		return nil, fmt.Errorf("analysis report %s not found", id)
	}
	return &reports[0], nil
}

// GetAnalysisReportsByPatientID returns a patient's reports newest first.
func (a *analysisReportDatabase) GetAnalysisReportsByPatientID(ctx context.Context, patientID primitive.ObjectID, limit, page int64) ([]models.AnalysisReport, error) {
	opts := newMongoPaginate(limit, page).getPaginatedOpts()
	opts.SetSort(bson.M{"createdAt": -1})

	cursor, err := a.db.Collection(analysisReportCollectionName).Find(ctx, bson.M{"patientId": patientID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var reports []models.AnalysisReport
	if err := cursor.All(ctx, &reports); err != nil {
		return nil, err
	}
	return reports, nil
}

// SetConditionFeedback annotates a single detected condition, addressed by
// array index. Callers check the index is in range first.
func (a *analysisReportDatabase) SetConditionFeedback(ctx context.Context, id string, index int, feedback string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	_, err = a.db.Collection(analysisReportCollectionName).UpdateOne(ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": bson.M{
			fmt.Sprintf("conditionsDetected.%d.userFeedback", index): feedback,
			"updatedAt": primitive.NewDateTimeFromTime(time.Now()),
		}})
	return err
}

func (a *analysisReportDatabase) DeleteAnalysisReport(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	return a.db.Collection(analysisReportCollectionName).DeleteOne(ctx, bson.M{"_id": objectID})
}
