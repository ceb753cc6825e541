package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/healthspectrum/healthspectrum-api/models"
)

func TestValidJobTransition(t *testing.T) {
	allowed := []struct{ from, to string }{
		{models.JobStatusPending, models.JobStatusProcessingOCR},
		{models.JobStatusPending, models.JobStatusFailed},
		{models.JobStatusProcessingOCR, models.JobStatusProcessingNLP},
		{models.JobStatusProcessingOCR, models.JobStatusFailed},
		{models.JobStatusProcessingNLP, models.JobStatusCompleted},
		{models.JobStatusProcessingNLP, models.JobStatusFailed},
	}
	for _, tc := range allowed {
		assert.True(t, models.ValidJobTransition(tc.from, tc.to), "%s -> %s should be allowed", tc.from, tc.to)
	}

	denied := []struct{ from, to string }{
		{models.JobStatusPending, models.JobStatusProcessingNLP},
		{models.JobStatusPending, models.JobStatusCompleted},
		{models.JobStatusProcessingOCR, models.JobStatusCompleted},
		{models.JobStatusProcessingNLP, models.JobStatusProcessingOCR},
		{models.JobStatusCompleted, models.JobStatusFailed},
		{models.JobStatusCompleted, models.JobStatusPending},
		{models.JobStatusFailed, models.JobStatusPending},
		{models.JobStatusFailed, models.JobStatusCompleted},
	}
	for _, tc := range denied {
		assert.False(t, models.ValidJobTransition(tc.from, tc.to), "%s -> %s should be denied", tc.from, tc.to)
	}
}

func TestValidJobStatus(t *testing.T) {
	for _, s := range []string{
		models.JobStatusPending,
		models.JobStatusProcessingOCR,
		models.JobStatusProcessingNLP,
		models.JobStatusCompleted,
		models.JobStatusFailed,
	} {
		assert.True(t, models.ValidJobStatus(s))
	}
	assert.False(t, models.ValidJobStatus("done"))
	assert.False(t, models.ValidJobStatus(""))
}

func TestTerminalJobStatus(t *testing.T) {
	assert.True(t, models.TerminalJobStatus(models.JobStatusCompleted))
	assert.True(t, models.TerminalJobStatus(models.JobStatusFailed))
	assert.False(t, models.TerminalJobStatus(models.JobStatusPending))
	assert.False(t, models.TerminalJobStatus(models.JobStatusProcessingOCR))
	assert.False(t, models.TerminalJobStatus(models.JobStatusProcessingNLP))
}

