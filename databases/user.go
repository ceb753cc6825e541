package databases

// go generate: mockery --name UserDatabase

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/healthspectrum/healthspectrum-api/models"
)

const userCollectionName = "users"

// UserDatabase contains the methods to use with the user collection
type UserDatabase interface {
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByExternalID(ctx context.Context, externalID string) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) error
	UpdateOne(ctx context.Context, filter interface{}, update interface{}) (*mongo.UpdateResult, error)
	AddLinkedPatient(ctx context.Context, userID, patientID primitive.ObjectID) error
	RemoveLinkedPatient(ctx context.Context, userID, patientID primitive.ObjectID) error
	UnlinkPatientFromAllUsers(ctx context.Context, patientID primitive.ObjectID) error
}

type userDatabase struct {
	db DatabaseHelper
}

// NewUserDatabase initializes a new instance of user database with the provided db connection
func NewUserDatabase(db DatabaseHelper) UserDatabase {
	return &userDatabase{
		db: db,
	}
}

func (u *userDatabase) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	user := &models.User{}
	err = u.db.Collection(userCollectionName).FindOne(ctx, bson.M{"_id": objectID}).Decode(user)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (u *userDatabase) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	user := &models.User{}
	err := u.db.Collection(userCollectionName).FindOne(ctx, bson.M{"email": email}).Decode(user)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (u *userDatabase) GetUserByExternalID(ctx context.Context, externalID string) (*models.User, error) {
	user := &models.User{}
	err := u.db.Collection(userCollectionName).FindOne(ctx, bson.M{"externalId": externalID}).Decode(user)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (u *userDatabase) CreateUser(ctx context.Context, user *models.User) error {
	now := primitive.NewDateTimeFromTime(time.Now())
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	if user.LinkedPatients == nil {
		user.LinkedPatients = []primitive.ObjectID{}
	}

	_, err := u.db.Collection(userCollectionName).InsertOne(ctx, user)
	return err
}

func (u *userDatabase) UpdateOne(ctx context.Context, filter interface{}, update interface{}) (*mongo.UpdateResult, error) {
	return u.db.Collection(userCollectionName).UpdateOne(ctx, filter, update)
}

func (u *userDatabase) AddLinkedPatient(ctx context.Context, userID, patientID primitive.ObjectID) error {
	_, err := u.db.Collection(userCollectionName).UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{
			"$addToSet": bson.M{"linkedPatients": patientID},
			"$set":      bson.M{"updatedAt": primitive.NewDateTimeFromTime(time.Now())},
		})
	return err
}

func (u *userDatabase) RemoveLinkedPatient(ctx context.Context, userID, patientID primitive.ObjectID) error {
	_, err := u.db.Collection(userCollectionName).UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{
			"$pull": bson.M{"linkedPatients": patientID},
			"$set":  bson.M{"updatedAt": primitive.NewDateTimeFromTime(time.Now())},
		})
	return err
}

// UnlinkPatientFromAllUsers pulls a deleted patient out of every user's
// linkedPatients list. Runs after the patient delete, so downstream records
// can briefly reference a deleted patient.
func (u *userDatabase) UnlinkPatientFromAllUsers(ctx context.Context, patientID primitive.ObjectID) error {
	_, err := u.db.Collection(userCollectionName).UpdateMany(ctx,
		bson.M{"linkedPatients": patientID},
		bson.M{"$pull": bson.M{"linkedPatients": patientID}})
	return err
}
