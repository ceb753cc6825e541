package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/healthspectrum/healthspectrum-api/models"
)

func TestHasLinkedPatient(t *testing.T) {
	linked := primitive.NewObjectID()
	other := primitive.NewObjectID()

	user := models.User{LinkedPatients: []primitive.ObjectID{linked}}

	assert.True(t, user.HasLinkedPatient(linked))
	assert.False(t, user.HasLinkedPatient(other))

	empty := models.User{}
	assert.False(t, empty.HasLinkedPatient(linked))
}
