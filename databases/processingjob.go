package databases

// go generate: mockery --name ProcessingJobDatabase

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/healthspectrum/healthspectrum-api/models"
)

const processingJobCollectionName = "processingjobs"

// ProcessingJobDatabase contains the methods to use with the processing job collection
type ProcessingJobDatabase interface {
	CreateProcessingJob(ctx context.Context, job *models.ProcessingJob) error
	GetProcessingJobByID(ctx context.Context, id string) (*models.ProcessingJob, error)
	GetProcessingJobsByPatientID(ctx context.Context, patientID primitive.ObjectID, limit, page int64) ([]models.ProcessingJob, error)
	TransitionStatus(ctx context.Context, id primitive.ObjectID, from, to string, fields bson.M) (bool, error)
	FindStaleJobs(ctx context.Context, olderThan time.Time) ([]models.ProcessingJob, error)
}

type processingJobDatabase struct {
	db DatabaseHelper
}

// NewProcessingJobDatabase initializes a new instance of processing job database with the provided db connection
func NewProcessingJobDatabase(db DatabaseHelper) ProcessingJobDatabase {
	return &processingJobDatabase{db: db}
}

func (p *processingJobDatabase) CreateProcessingJob(ctx context.Context, job *models.ProcessingJob) error {
	now := primitive.NewDateTimeFromTime(time.Now())
	job.CreatedAt = now
	job.UpdatedAt = now
	if job.ID.IsZero() {
		job.ID = primitive.NewObjectID()
	}
	if job.Status == "" {
		job.Status = models.JobStatusPending
	}
	if job.SourceDocuments == nil {
		job.SourceDocuments = []primitive.ObjectID{}
	}

	_, err := p.db.Collection(processingJobCollectionName).InsertOne(ctx, job)
	return err
}

func (p *processingJobDatabase) GetProcessingJobByID(ctx context.Context, id string) (*models.ProcessingJob, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	job := &models.ProcessingJob{}
	err = p.db.Collection(processingJobCollectionName).FindOne(ctx, bson.M{"_id": objectID}).Decode(job)
	if err != nil {
		return nil, err
	}
	return job, nil
}

// GetProcessingJobsByPatientID returns a patient's jobs newest first.
func (p *processingJobDatabase) GetProcessingJobsByPatientID(ctx context.Context, patientID primitive.ObjectID, limit, page int64) ([]models.ProcessingJob, error) {
	opts := newMongoPaginate(limit, page).getPaginatedOpts()
	opts.SetSort(bson.M{"createdAt": -1})

	cursor, err := p.db.Collection(processingJobCollectionName).Find(ctx, bson.M{"patientId": patientID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var jobs []models.ProcessingJob
	if err := cursor.All(ctx, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

// TransitionStatus moves a job from one status to another with a conditional
// update, so a concurrent transition from the same status loses cleanly.
// Returns false when the job was not in the expected from status. Callers
// validate the transition against the table in models before calling.
func (p *processingJobDatabase) TransitionStatus(ctx context.Context, id primitive.ObjectID, from, to string, fields bson.M) (bool, error) {
	set := bson.M{
		"status":    to,
		"updatedAt": primitive.NewDateTimeFromTime(time.Now()),
	}
	for k, v := range fields {
		set[k] = v
	}

	res, err := p.db.Collection(processingJobCollectionName).UpdateOne(ctx,
		bson.M{"_id": id, "status": from},
		bson.M{"$set": set})
	if err != nil {
		return false, err
	}
	return res.MatchedCount == 1, nil
}

// FindStaleJobs returns non-terminal jobs last updated before olderThan. Used
// by the scheduler to fail runs abandoned mid-flight.
func (p *processingJobDatabase) FindStaleJobs(ctx context.Context, olderThan time.Time) ([]models.ProcessingJob, error) {
	filter := bson.M{
		"status":    bson.M{"$in": []string{models.JobStatusPending, models.JobStatusProcessingOCR, models.JobStatusProcessingNLP}},
		"updatedAt": bson.M{"$lt": primitive.NewDateTimeFromTime(olderThan)},
	}

	cursor, err := p.db.Collection(processingJobCollectionName).Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var jobs []models.ProcessingJob
	if err := cursor.All(ctx, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}
