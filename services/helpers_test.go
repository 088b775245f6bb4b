package services

import (
	"context"
	"errors"
	"testing"

	"github.com/Dosada05/sports-portal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrMappingTranslate(t *testing.T) {
	err := captainErrors.translate(repositories.ErrCaptainRNumberConflict, "create captain")
	assert.Equal(t, ErrRNumberConflict, err)

	boom := errors.New("boom")
	err = captainErrors.translate(boom, "update captain %d", 7)
	assert.EqualError(t, err, "failed to update captain 7: boom")
	assert.ErrorIs(t, err, boom)
}

func TestRunBulkKeepsOrder(t *testing.T) {
	var seen []int
	res := runBulk(context.Background(), []int{5, 3, 9, 1}, func(_ context.Context, id int) error {
		seen = append(seen, id)
		if id%3 == 0 {
			return errors.New("divisible by three")
		}
		return nil
	})
	assert.Equal(t, []int{5, 3, 9, 1}, seen)
	assert.Equal(t, BulkResult{Requested: 4, Succeeded: 2, Failed: 2, FailedIDs: []int{3, 9}}, res)
}

func TestValidationErrorMessage(t *testing.T) {
	err := validateInput(&LoginInput{Email: "x"})
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.ErrorIs(t, err, ErrValidationFailed)
	assert.EqualError(t, err, "validation failed: email: must be a valid email address; password: must be provided")
}

func TestValidateInputTrimsBeforeValidating(t *testing.T) {
	phone := "  98765 "
	in := CaptainRegisterInput{
		Name:       " Asha Rao ",
		Email:      " Asha@College.edu ",
		RNumber:    "\tr1001 ",
		Department: "CSE",
		Phone:      "9876543210",
		Sport:      "Cricket",
		Password:   " secret1 ",
	}
	require.NoError(t, validateInput(&in))
	assert.Equal(t, "Asha Rao", in.Name)
	assert.Equal(t, "Asha@College.edu", in.Email)
	assert.Equal(t, "r1001", in.RNumber)
	assert.Equal(t, " secret1 ", in.Password, "passwords are not trimmed")

	update := CaptainUpdateInput{Phone: &phone}
	require.NoError(t, validateInput(&update))
	assert.Equal(t, "98765", *update.Phone)

	blank := LoginInput{Email: "   ", Password: "x"}
	err := validateInput(&blank)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "must be provided", verr.Fields["email"])
}

func TestCheckPasswordLength(t *testing.T) {
	_, err := hashPassword("12345")
	assert.ErrorIs(t, err, ErrPasswordTooShort)
}
