package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Dosada05/sports-portal/metrics"
	"github.com/Dosada05/sports-portal/repositories"
	"golang.org/x/sync/errgroup"
)

type VerificationType string

const (
	VerifyCaptain VerificationType = "captain"
	VerifyPlayer  VerificationType = "player"
)

type VerificationOutcome string

const (
	// OutcomeVerified: both identifiers resolve to the same record.
	OutcomeVerified VerificationOutcome = "verified"
	// OutcomeMismatch: both identifiers resolve, but to different records.
	OutcomeMismatch VerificationOutcome = "mismatch"
	// OutcomePartial: only one identifier resolves.
	OutcomePartial VerificationOutcome = "partial"
	// OutcomeNotFound: neither identifier resolves.
	OutcomeNotFound VerificationOutcome = "not_found"
)

type VerifyInput struct {
	Type     VerificationType `json:"type"`
	RNumber  string           `json:"r_number"`
	UniqueID string           `json:"unique_id"`
}

type VerificationResult struct {
	Outcome  VerificationOutcome `json:"outcome"`
	Type     VerificationType    `json:"type"`
	Message  string              `json:"message"`
	Record   interface{}         `json:"record,omitempty"`
	// ID записей, найденных по каждому из идентификаторов
	RNumberMatchID  *int   `json:"r_number_match_id,omitempty"`
	UniqueIDMatchID *int   `json:"unique_id_match_id,omitempty"`
	MatchedBy       string `json:"matched_by,omitempty"`
}

type VerificationService interface {
	Verify(ctx context.Context, input VerifyInput) (*VerificationResult, error)
}

type verificationService struct {
	captainRepo repositories.CaptainRepository
	playerRepo  repositories.DepartmentPlayerRepository
	metrics     *metrics.Metrics
}

func NewVerificationService(
	captainRepo repositories.CaptainRepository,
	playerRepo repositories.DepartmentPlayerRepository,
	m *metrics.Metrics,
) VerificationService {
	return &verificationService{captainRepo: captainRepo, playerRepo: playerRepo, metrics: m}
}

// candidate is one side of the lookup: nil when the identifier matched nothing.
type candidate struct {
	id     int
	record interface{}
}

// lookupBoth runs both lookups concurrently. A not-found error from either side
// yields a nil candidate; any other error fails the whole verification.
func lookupBoth[T any](
	ctx context.Context,
	byRNumber, byUniqueID func(context.Context, string) (*T, error),
	rNumber, uniqueID string,
	notFound error,
	idOf func(*T) int,
) (*candidate, *candidate, error) {
	var fromR, fromU *candidate
	g, gctx := errgroup.WithContext(ctx)

	find := func(fn func(context.Context, string) (*T, error), key string, dst **candidate) func() error {
		return func() error {
			rec, err := fn(gctx, key)
			if err != nil {
				if errors.Is(err, notFound) {
					return nil
				}
				return err
			}
			*dst = &candidate{id: idOf(rec), record: rec}
			return nil
		}
	}
	g.Go(find(byRNumber, rNumber, &fromR))
	g.Go(find(byUniqueID, uniqueID, &fromU))

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return fromR, fromU, nil
}

func (s *verificationService) Verify(ctx context.Context, input VerifyInput) (*VerificationResult, error) {
	recordType := VerificationType(strings.ToLower(strings.TrimSpace(string(input.Type))))
	rNumber := normalizeIdentifier(input.RNumber)
	uniqueID := normalizeIdentifier(input.UniqueID)

	if recordType != VerifyCaptain && recordType != VerifyPlayer {
		return nil, ErrVerificationType
	}
	if rNumber == "" || uniqueID == "" {
		return nil, ErrVerificationIdentifiers
	}

	var (
		fromR, fromU *candidate
		err          error
	)
	switch recordType {
	case VerifyCaptain:
		fromR, fromU, err = lookupBoth(ctx, s.captainRepo.FindByRNumber, s.captainRepo.FindByUniqueID,
			rNumber, uniqueID, repositories.ErrCaptainNotFound, captainID)
	case VerifyPlayer:
		fromR, fromU, err = lookupBoth(ctx, s.playerRepo.FindByRNumber, s.playerRepo.FindByUniqueID,
			rNumber, uniqueID, repositories.ErrDepartmentPlayerNotFound, departmentPlayerID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to verify %s: %w", recordType, err)
	}

	result := classify(recordType, fromR, fromU)
	s.metrics.RecordVerification(string(recordType), string(result.Outcome))
	return result, nil
}

// classify never reports verified unless both lookups returned the same record.
func classify(recordType VerificationType, fromR, fromU *candidate) *VerificationResult {
	result := &VerificationResult{Type: recordType}
	if fromR != nil {
		result.RNumberMatchID = &fromR.id
	}
	if fromU != nil {
		result.UniqueIDMatchID = &fromU.id
	}

	switch {
	case fromR != nil && fromU != nil && fromR.id == fromU.id:
		result.Outcome = OutcomeVerified
		result.Record = fromR.record
		result.Message = fmt.Sprintf("Verified: R-Number and Unique ID belong to the same %s.", recordType)
	case fromR != nil && fromU != nil:
		result.Outcome = OutcomeMismatch
		result.Message = fmt.Sprintf("Mismatch: R-Number and Unique ID belong to different %ss.", recordType)
	case fromR != nil:
		result.Outcome = OutcomePartial
		result.MatchedBy = "r_number"
		result.Message = fmt.Sprintf("Partial match: the R-Number is registered but the Unique ID does not match any %s.", recordType)
	case fromU != nil:
		result.Outcome = OutcomePartial
		result.MatchedBy = "unique_id"
		result.Message = fmt.Sprintf("Partial match: the Unique ID is registered but the R-Number does not match any %s.", recordType)
	default:
		result.Outcome = OutcomeNotFound
		result.Message = fmt.Sprintf("No %s found with this R-Number or Unique ID.", recordType)
	}
	return result
}
