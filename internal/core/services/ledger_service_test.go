package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/lingueefy/coach-payout-service/internal/apperrors"
	"github.com/lingueefy/coach-payout-service/internal/core/domain"
	portssvc "github.com/lingueefy/coach-payout-service/internal/core/ports/services"
	"github.com/lingueefy/coach-payout-service/internal/core/services"
	"github.com/lingueefy/coach-payout-service/internal/dto"
)

type LedgerServiceTestSuite struct {
	suite.Suite
	mockLedger  *MockLedgerRepository
	mockCoaches *MockCoachRepository
	service     portssvc.LedgerSvcFacade
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.mockLedger = new(MockLedgerRepository)
	suite.mockCoaches = new(MockCoachRepository)
	suite.service = services.NewLedgerService(suite.mockLedger, suite.mockCoaches)
}

func (suite *LedgerServiceTestSuite) TestRecordEarning_Success() {
	ctx := context.Background()
	suite.mockCoaches.On("FindCoachByID", ctx, "coach-42").Return(testCoach(), nil).Once()

	var saved domain.LedgerEntry
	suite.mockLedger.On("SaveEntry", ctx, mock.AnythingOfType("domain.LedgerEntry")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(domain.LedgerEntry) }).
		Return(nil).Once()

	req := dto.RecordEarningRequest{
		CoachID:       "coach-42",
		LearnerID:     "learner-7",
		GrossAmount:   2500,
		CommissionBps: 1500, // 15%
		Notes:         "French conversation, 60 min",
	}
	entry, err := suite.service.RecordEarning(ctx, req, "admin@lingueefy.com")

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.NotEmpty(entry.EntryID)
	suite.Equal(domain.Earning, entry.TransactionType)
	suite.Equal(domain.Completed, entry.Status)
	suite.Equal(int64(2500), entry.GrossAmount)
	suite.Equal(int64(375), entry.PlatformFee)
	suite.Equal(int64(2125), entry.NetAmount)
	suite.Nil(entry.TransferReference)
	suite.Equal("admin@lingueefy.com", entry.CreatedBy)
	suite.WithinDuration(time.Now(), entry.CreatedAt, time.Second)
	suite.Equal(entry.EntryID, saved.EntryID)
	suite.mockLedger.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestRecordEarning_CoachNotFound() {
	ctx := context.Background()
	suite.mockCoaches.On("FindCoachByID", ctx, "ghost").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.RecordEarning(ctx, dto.RecordEarningRequest{
		CoachID: "ghost", LearnerID: "learner-7", GrossAmount: 2500,
	}, "admin@lingueefy.com")

	suite.Require().Error(err)
	suite.True(errors.Is(err, apperrors.ErrNotFound))
	suite.mockLedger.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestRecordEarning_InactiveCoach() {
	ctx := context.Background()
	coach := testCoach()
	coach.IsActive = false
	suite.mockCoaches.On("FindCoachByID", ctx, "coach-42").Return(coach, nil).Once()

	_, err := suite.service.RecordEarning(ctx, dto.RecordEarningRequest{
		CoachID: "coach-42", LearnerID: "learner-7", GrossAmount: 2500,
	}, "admin@lingueefy.com")

	suite.Require().Error(err)
	suite.True(errors.Is(err, apperrors.ErrValidation))
}

func (suite *LedgerServiceTestSuite) TestRecordEarning_InvalidAmount() {
	ctx := context.Background()

	_, err := suite.service.RecordEarning(ctx, dto.RecordEarningRequest{
		CoachID: "coach-42", LearnerID: "learner-7", GrossAmount: 0,
	}, "admin@lingueefy.com")

	suite.Require().Error(err)
	suite.True(errors.Is(err, apperrors.ErrValidation))
	suite.mockCoaches.AssertNotCalled(suite.T(), "FindCoachByID", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestReverseEntry_Success() {
	ctx := context.Background()
	original := &domain.LedgerEntry{
		EntryID:         "entry-1",
		CoachID:         "coach-42",
		LearnerID:       "learner-7",
		TransactionType: domain.Earning,
		GrossAmount:     2500,
		PlatformFee:     375,
		NetAmount:       2125,
		CommissionBps:   1500,
		Status:          domain.Completed,
	}
	suite.mockLedger.On("FindEntryByID", ctx, "entry-1").Return(original, nil).Once()
	suite.mockLedger.On("MarkEntryReversed", ctx, "entry-1", mock.MatchedBy(func(reversal domain.LedgerEntry) bool {
		return reversal.TransactionType == domain.Reversal &&
			reversal.GrossAmount == -2500 &&
			reversal.NetAmount == -2125 &&
			reversal.Status == domain.Completed
	})).Return(nil).Once()

	reversal, err := suite.service.ReverseEntry(ctx, "entry-1", dto.ReverseEntryRequest{Reason: "learner refund"}, "admin@lingueefy.com")

	suite.Require().NoError(err)
	suite.Equal(int64(-2125), reversal.NetAmount)
	suite.Equal("learner refund", reversal.Notes)
	suite.mockLedger.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestReverseEntry_AlreadyPaidOut() {
	ctx := context.Background()
	claimed := &domain.LedgerEntry{
		EntryID:           "entry-1",
		CoachID:           "coach-42",
		TransactionType:   domain.Earning,
		Status:            domain.Completed,
		TransferReference: stringPtr("tr_1XYZ"),
	}
	suite.mockLedger.On("FindEntryByID", ctx, "entry-1").Return(claimed, nil).Once()

	_, err := suite.service.ReverseEntry(ctx, "entry-1", dto.ReverseEntryRequest{Reason: "refund"}, "admin@lingueefy.com")

	suite.Require().Error(err)
	suite.True(errors.Is(err, apperrors.ErrConflict))
	suite.mockLedger.AssertNotCalled(suite.T(), "MarkEntryReversed", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestReverseEntry_NotAnEarning() {
	ctx := context.Background()
	payout := &domain.LedgerEntry{
		EntryID:         "entry-9",
		TransactionType: domain.Payout,
		Status:          domain.Completed,
	}
	suite.mockLedger.On("FindEntryByID", ctx, "entry-9").Return(payout, nil).Once()

	_, err := suite.service.ReverseEntry(ctx, "entry-9", dto.ReverseEntryRequest{Reason: "oops"}, "admin@lingueefy.com")

	suite.Require().Error(err)
	suite.True(errors.Is(err, apperrors.ErrValidation))
}

func (suite *LedgerServiceTestSuite) TestReverseEntry_AlreadyReversed() {
	ctx := context.Background()
	reversed := &domain.LedgerEntry{
		EntryID:         "entry-1",
		TransactionType: domain.Earning,
		Status:          domain.Reversed,
	}
	suite.mockLedger.On("FindEntryByID", ctx, "entry-1").Return(reversed, nil).Once()

	_, err := suite.service.ReverseEntry(ctx, "entry-1", dto.ReverseEntryRequest{Reason: "refund"}, "admin@lingueefy.com")

	suite.Require().Error(err)
	suite.True(errors.Is(err, apperrors.ErrDuplicate))
}

func (suite *LedgerServiceTestSuite) TestListCoachEntries_DefaultsLimit() {
	ctx := context.Background()
	suite.mockCoaches.On("FindCoachByID", ctx, "coach-42").Return(testCoach(), nil).Once()
	suite.mockLedger.On("ListEntriesByCoach", ctx, "coach-42", 50, (*string)(nil)).
		Return(pendingEntries(), (*string)(nil), nil).Once()

	resp, err := suite.service.ListCoachEntries(ctx, "coach-42", dto.ListEntriesParams{})

	suite.Require().NoError(err)
	suite.Len(resp.Entries, 2)
	suite.Nil(resp.NextToken)
	suite.mockLedger.AssertExpectations(suite.T())
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
