package databases

// go generate: mockery --name PatientDatabase

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/healthspectrum/healthspectrum-api/models"
)

const patientCollectionName = "patients"

// PatientDatabase contains the methods to use with the patient collection
type PatientDatabase interface {
	CreatePatient(ctx context.Context, patient *models.Patient) error
	GetPatientByID(ctx context.Context, id string) (*models.Patient, error)
	FindPatientByContact(ctx context.Context, email, phone string) (*models.Patient, error)
	GetPatientsByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Patient, error)
	UpdatePatient(ctx context.Context, id string, patient *models.Patient) error
	DeletePatient(ctx context.Context, id string) error
}

type patientDatabase struct {
	db DatabaseHelper
}

// NewPatientDatabase initializes a new instance of patient database with the provided db connection
func NewPatientDatabase(db DatabaseHelper) PatientDatabase {
	return &patientDatabase{db: db}
}

func (p *patientDatabase) CreatePatient(ctx context.Context, patient *models.Patient) error {
	now := primitive.NewDateTimeFromTime(time.Now())
	patient.CreatedAt = now
	patient.UpdatedAt = now
	if patient.ID.IsZero() {
		patient.ID = primitive.NewObjectID()
	}

	_, err := p.db.Collection(patientCollectionName).InsertOne(ctx, patient)
	return err
}

func (p *patientDatabase) GetPatientByID(ctx context.Context, id string) (*models.Patient, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	patient := &models.Patient{}
	err = p.db.Collection(patientCollectionName).FindOne(ctx, bson.M{"_id": objectID}).Decode(patient)
	if err != nil {
		return nil, err
	}
	return patient, nil
}

// FindPatientByContact implements the dedupe-by-contact check: an email OR
// phone match reuses the existing patient. Only checked at creation time, so
// concurrent creates can still race in duplicates.
func (p *patientDatabase) FindPatientByContact(ctx context.Context, email, phone string) (*models.Patient, error) {
	or := []bson.M{}
	if email != "" {
		or = append(or, bson.M{"contactInfo.email": email})
	}
	if phone != "" {
		or = append(or, bson.M{"contactInfo.phone": phone})
	}
	if len(or) == 0 {
		return nil, nil
	}

	patient := &models.Patient{}
	err := p.db.Collection(patientCollectionName).FindOne(ctx, bson.M{"$or": or}).Decode(patient)
	if err != nil {
		return nil, err
	}
	return patient, nil
}

func (p *patientDatabase) GetPatientsByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Patient, error) {
	cursor, err := p.db.Collection(patientCollectionName).Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var patients []models.Patient
	if err := cursor.All(ctx, &patients); err != nil {
		return nil, err
	}
	return patients, nil
}

func (p *patientDatabase) UpdatePatient(ctx context.Context, id string, patient *models.Patient) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	patient.UpdatedAt = primitive.NewDateTimeFromTime(time.Now())

	update := bson.M{
		"$set": bson.M{
			"name":            patient.Name,
			"dob":             patient.DOB,
			"gender":          patient.Gender,
			"contactInfo":     patient.ContactInfo,
			"bloodGroup":      patient.BloodGroup,
			"heightCm":        patient.HeightCm,
			"weightKg":        patient.WeightKg,
			"allergies":       patient.Allergies,
			"chronicDiseases": patient.ChronicDiseases,
			"medications":     patient.Medications,
			"familyHistory":   patient.FamilyHistory,
			"lifestyle":       patient.Lifestyle,
			"maritalStatus":   patient.MaritalStatus,
			"consents":        patient.Consents,
			"updatedAt":       patient.UpdatedAt,
		},
	}

	_, err = p.db.Collection(patientCollectionName).UpdateOne(ctx, bson.M{"_id": objectID}, update)
	return err
}

func (p *patientDatabase) DeletePatient(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	return p.db.Collection(patientCollectionName).DeleteOne(ctx, bson.M{"_id": objectID})
}
