package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Gender is the closed set of accepted patient genders
var Gender = []string{"male", "female", "other"}

// BloodGroups is the closed set of accepted blood groups
var BloodGroups = []string{"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"}

// Patient holds the structure for the patients collection in mongo
type Patient struct {
	ID              primitive.ObjectID  `json:"_id" bson:"_id,omitempty"`
	Name            string              `json:"name" bson:"name"`
	DOB             string              `json:"dob,omitempty" bson:"dob,omitempty"`
	Gender          string              `json:"gender" bson:"gender"`
	ContactInfo     ContactInfo         `json:"contactInfo" bson:"contactInfo"`
	BloodGroup      string              `json:"bloodGroup,omitempty" bson:"bloodGroup,omitempty"`
	HeightCm        float64             `json:"heightCm,omitempty" bson:"heightCm,omitempty"`
	WeightKg        float64             `json:"weightKg,omitempty" bson:"weightKg,omitempty"`
	Allergies       []Allergy           `json:"allergies" bson:"allergies"`
	ChronicDiseases []ChronicDisease    `json:"chronicDiseases" bson:"chronicDiseases"`
	Medications     []PatientMedication `json:"medications" bson:"medications"`
	FamilyHistory   []FamilyHistory     `json:"familyHistory" bson:"familyHistory"`
	Lifestyle       Lifestyle           `json:"lifestyle" bson:"lifestyle"`
	MaritalStatus   string              `json:"maritalStatus,omitempty" bson:"maritalStatus,omitempty"`
	Consents        []Consent           `json:"consents" bson:"consents"`
	CreatedAt       primitive.DateTime  `json:"createdAt" bson:"createdAt"`
	UpdatedAt       primitive.DateTime  `json:"updatedAt" bson:"updatedAt"`
}

// ContactInfo holds a patient's contact details. Email or phone identify a
// patient for dedupe at creation time.
type ContactInfo struct {
	Phone   string `json:"phone,omitempty" bson:"phone,omitempty"`
	Email   string `json:"email,omitempty" bson:"email,omitempty"`
	Address string `json:"address,omitempty" bson:"address,omitempty"`
}

// Allergy is a single allergy entry on a patient profile
type Allergy struct {
	Name     string `json:"name" bson:"name"`
	Severity string `json:"severity,omitempty" bson:"severity,omitempty"`
	Reaction string `json:"reaction,omitempty" bson:"reaction,omitempty"`
}

// ChronicDisease is a single chronic condition entry on a patient profile
type ChronicDisease struct {
	Name          string `json:"name" bson:"name"`
	DiagnosedYear int    `json:"diagnosedYear,omitempty" bson:"diagnosedYear,omitempty"`
}

// PatientMedication is a single current-medication entry on a patient profile
type PatientMedication struct {
	Name      string `json:"name" bson:"name"`
	Dosage    string `json:"dosage,omitempty" bson:"dosage,omitempty"`
	Frequency string `json:"frequency,omitempty" bson:"frequency,omitempty"`
}

// FamilyHistory is a single family-history entry on a patient profile
type FamilyHistory struct {
	Relation  string `json:"relation" bson:"relation"`
	Condition string `json:"condition" bson:"condition"`
}

// Lifestyle holds the patient lifestyle flags
type Lifestyle struct {
	Smoking  bool   `json:"smoking" bson:"smoking"`
	Alcohol  bool   `json:"alcohol" bson:"alcohol"`
	Exercise string `json:"exercise,omitempty" bson:"exercise,omitempty"`
}

// Consent records a consent grant or revocation for a patient
type Consent struct {
	Type      string             `json:"type" bson:"type"`
	Status    bool               `json:"status" bson:"status"`
	Timestamp primitive.DateTime `json:"timestamp" bson:"timestamp"`
}
