package docai

import (
	"strings"

	"github.com/healthspectrum/healthspectrum-api/models"
)

// Keyword tables for the best-effort classification of vendor markdown.
// This is shallow string matching, not clinical NLP; the vendor did the
// heavy lifting upstream.
var (
	conditionKeywords = []string{
		"diabetes", "hypertension", "asthma", "anemia", "arthritis",
		"pneumonia", "bronchitis", "migraine", "thyroid", "cholesterol",
		"cardiac", "arrhythmia", "copd", "obesity", "depression", "anxiety",
		"infection", "fracture", "tumor", "cancer",
	}
	medicationKeywords = []string{
		"metformin", "insulin", "aspirin", "ibuprofen", "paracetamol",
		"acetaminophen", "amoxicillin", "atorvastatin", "lisinopril",
		"amlodipine", "omeprazole", "levothyroxine", "prednisone",
		"mg", "tablet", "capsule", "dose", "dosage",
	}
	vitalKeywords = []string{
		"blood pressure", "bp", "heart rate", "pulse", "temperature",
		"respiratory rate", "oxygen", "spo2", "bmi", "glucose",
		"hemoglobin", "hba1c", "creatinine",
	}
	recommendationKeywords = []string{
		"recommend", "follow up", "follow-up", "advised", "should",
		"consult", "refer", "repeat", "schedule", "avoid", "continue",
		"monitor",
	}

	highRiskKeywords   = []string{"critical", "severe", "urgent", "emergency", "immediately", "abnormal"}
	mediumRiskKeywords = []string{"moderate", "monitor", "elevated", "borderline", "follow up", "attention"}
)

// ExtractInsights scans the markdown line by line and buckets matching
// lines into conditions, medications, vitals and recommendations.
func ExtractInsights(markdown string) models.MedicalInsights {
	insights := models.MedicalInsights{
		Conditions:      []string{},
		Medications:     []string{},
		Vitals:          []string{},
		Recommendations: []string{},
	}

	for _, line := range strings.Split(markdown, "\n") {
		trimmed := strings.TrimSpace(strings.TrimLeft(line, "#*- "))
		if trimmed == "" {
			continue
		}
		lower := strings.ToLower(trimmed)

		if matchesAny(lower, conditionKeywords) {
			insights.Conditions = appendUnique(insights.Conditions, trimmed)
		}
		if matchesAny(lower, medicationKeywords) {
			insights.Medications = appendUnique(insights.Medications, trimmed)
		}
		if matchesAny(lower, vitalKeywords) {
			insights.Vitals = appendUnique(insights.Vitals, trimmed)
		}
		if matchesAny(lower, recommendationKeywords) {
			insights.Recommendations = appendUnique(insights.Recommendations, trimmed)
		}
	}

	return insights
}

// RiskLevel derives a coarse document risk from the markdown keyword scan:
// high beats medium beats low. Distinct from recommendation urgency.
func RiskLevel(markdown string) string {
	lower := strings.ToLower(markdown)
	if matchesAny(lower, highRiskKeywords) {
		return models.RiskLevelHigh
	}
	if matchesAny(lower, mediumRiskKeywords) {
		return models.RiskLevelMedium
	}
	return models.RiskLevelLow
}

func matchesAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

func appendUnique(list []string, entry string) []string {
	for _, existing := range list {
		if existing == entry {
			return list
		}
	}
	return append(list, entry)
}
