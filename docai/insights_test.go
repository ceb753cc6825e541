package docai

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/healthspectrum/healthspectrum-api/models"
)

func TestExtractInsights(t *testing.T) {
	markdown := `# Discharge Summary

Patient diagnosed with Type 2 Diabetes and hypertension.

## Medications
- Metformin 500mg twice daily
- Lisinopril 10mg once daily

## Vitals
Blood pressure 140/90, pulse 82.

## Plan
Recommend follow up with cardiology in 2 weeks.`

	insights := ExtractInsights(markdown)

	assert.Contains(t, insights.Conditions, "Patient diagnosed with Type 2 Diabetes and hypertension.")
	assert.Contains(t, insights.Medications, "Metformin 500mg twice daily")
	assert.Contains(t, insights.Vitals, "Blood pressure 140/90, pulse 82.")
	assert.Contains(t, insights.Recommendations, "Recommend follow up with cardiology in 2 weeks.")
}

func TestExtractInsightsEmpty(t *testing.T) {
	insights := ExtractInsights("")

	assert.Empty(t, insights.Conditions)
	assert.Empty(t, insights.Medications)
	assert.Empty(t, insights.Vitals)
	assert.Empty(t, insights.Recommendations)
}

func TestExtractInsightsDeduplicates(t *testing.T) {
	markdown := "diabetes noted\ndiabetes noted"
	insights := ExtractInsights(markdown)

	assert.Len(t, insights.Conditions, 1)
}

func TestRiskLevel(t *testing.T) {
	tests := []struct {
		name     string
		markdown string
		want     string
	}{
		{"high on critical", "Critical finding in chest x-ray", models.RiskLevelHigh},
		{"high on severe", "severe anemia present", models.RiskLevelHigh},
		{"high beats medium", "severe but monitor", models.RiskLevelHigh},
		{"medium on monitor", "please monitor glucose levels", models.RiskLevelMedium},
		{"medium on borderline", "Borderline HbA1c", models.RiskLevelMedium},
		{"low by default", "routine checkup, all clear", models.RiskLevelLow},
		{"low on empty", "", models.RiskLevelLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RiskLevel(tt.markdown))
		})
	}
}

func TestStripMarkdownFences(t *testing.T) {
	assert.Equal(t, `{"a":1}`, StripMarkdownFences("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, StripMarkdownFences("```\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, StripMarkdownFences(`{"a":1}`))
}

func TestParseGeminiCompletionFallback(t *testing.T) {
	markdown, schema := parseGeminiCompletion("not json at all")

	assert.Equal(t, "not json at all", markdown)
	assert.Contains(t, string(schema), "raw vendor output preserved")
}

func TestParseGeminiCompletionShaped(t *testing.T) {
	markdown, schema := parseGeminiCompletion("```json\n{\"markdown\":\"# Report\",\"summary\":\"ok\"}\n```")

	assert.Equal(t, "# Report", markdown)
	assert.Contains(t, string(schema), "ok")
}
