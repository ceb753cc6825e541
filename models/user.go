package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User holds the structure for the users collection in mongo. A user is
// created on the first authentication event (register or identity-provider
// webhook) and is never hard-deleted.
type User struct {
	ID             primitive.ObjectID   `json:"_id" bson:"_id,omitempty"`
	Email          string               `json:"email" bson:"email"`
	Name           string               `json:"name" bson:"name"`
	Password       string               `json:"-" bson:"password,omitempty"`
	ExternalID     string               `json:"externalId,omitempty" bson:"externalId,omitempty"`
	LinkedPatients []primitive.ObjectID `json:"linkedPatients" bson:"linkedPatients"`
	CreatedAt      primitive.DateTime   `json:"createdAt" bson:"createdAt"`
	UpdatedAt      primitive.DateTime   `json:"updatedAt" bson:"updatedAt"`
}

// HasLinkedPatient reports whether the given patient ID is in the user's
// linked patients list.
func (u *User) HasLinkedPatient(patientID primitive.ObjectID) bool {
	for _, p := range u.LinkedPatients {
		if p == patientID {
			return true
		}
	}
	return false
}
