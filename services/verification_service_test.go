package services

import (
	"context"
	"testing"

	"github.com/Dosada05/sports-portal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newVerificationFixture() VerificationService {
	captains := newFakeCaptainRepo(
		&models.Captain{ID: 1, Name: "Asha", RNumber: "R1001", UniqueID: "CPT-0001", Status: models.StatusApproved},
		&models.Captain{ID: 2, Name: "Ravi", RNumber: "R1002", UniqueID: "CPT-0002", Status: models.StatusPending},
	)
	players := newFakeDepartmentPlayerRepo(
		&models.DepartmentPlayer{ID: 1, Name: "Meera", RNumber: "R2001", UniqueID: "PLY-0001", Sport: "Cricket"},
	)
	return NewVerificationService(captains, players, nil)
}

func TestVerifyOutcomes(t *testing.T) {
	svc := newVerificationFixture()

	tests := []struct {
		name      string
		input     VerifyInput
		outcome   VerificationOutcome
		matchedBy string
		withRec   bool
	}{
		{"captain verified", VerifyInput{Type: "captain", RNumber: "R1001", UniqueID: "CPT-0001"}, OutcomeVerified, "", true},
		{"identifiers are case insensitive", VerifyInput{Type: "Captain", RNumber: " r1001 ", UniqueID: "cpt-0001"}, OutcomeVerified, "", true},
		{"captain mismatch", VerifyInput{Type: "captain", RNumber: "R1001", UniqueID: "CPT-0002"}, OutcomeMismatch, "", false},
		{"partial by r-number", VerifyInput{Type: "captain", RNumber: "R1001", UniqueID: "CPT-9999"}, OutcomePartial, "r_number", false},
		{"partial by unique id", VerifyInput{Type: "captain", RNumber: "R9999", UniqueID: "CPT-0002"}, OutcomePartial, "unique_id", false},
		{"captain not found", VerifyInput{Type: "captain", RNumber: "R9999", UniqueID: "CPT-9999"}, OutcomeNotFound, "", false},
		{"player verified", VerifyInput{Type: "player", RNumber: "R2001", UniqueID: "PLY-0001"}, OutcomeVerified, "", true},
		{"player ids do not match captains", VerifyInput{Type: "player", RNumber: "R1001", UniqueID: "CPT-0001"}, OutcomeNotFound, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := svc.Verify(context.Background(), tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.outcome, res.Outcome)
			assert.Equal(t, tt.matchedBy, res.MatchedBy)
			assert.NotEmpty(t, res.Message)
			if tt.withRec {
				assert.NotNil(t, res.Record)
			} else {
				assert.Nil(t, res.Record)
			}
		})
	}
}

func TestVerifyMismatchReportsBothRecords(t *testing.T) {
	svc := newVerificationFixture()

	res, err := svc.Verify(context.Background(), VerifyInput{Type: "captain", RNumber: "R1002", UniqueID: "CPT-0001"})
	require.NoError(t, err)
	require.NotNil(t, res.RNumberMatchID)
	require.NotNil(t, res.UniqueIDMatchID)
	assert.Equal(t, 2, *res.RNumberMatchID)
	assert.Equal(t, 1, *res.UniqueIDMatchID)
}

func TestVerifyRejectsBadInput(t *testing.T) {
	svc := newVerificationFixture()

	_, err := svc.Verify(context.Background(), VerifyInput{Type: "coach", RNumber: "R1", UniqueID: "X"})
	assert.ErrorIs(t, err, ErrVerificationType)

	_, err = svc.Verify(context.Background(), VerifyInput{Type: "captain", RNumber: "R1001"})
	assert.ErrorIs(t, err, ErrVerificationIdentifiers)
}
