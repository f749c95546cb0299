package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/lingueefy/coach-payout-service/internal/apperrors"
	"github.com/lingueefy/coach-payout-service/internal/core/domain"
	portssvc "github.com/lingueefy/coach-payout-service/internal/core/ports/services"
	"github.com/lingueefy/coach-payout-service/internal/core/services"
	"github.com/lingueefy/coach-payout-service/pkg/resilience"
)

// --- Mocks ---

// MockLedgerRepository is a mock type for the LedgerRepositoryFacade interface
type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) GetPendingPayoutSummaries(ctx context.Context, minPayoutCents int64) ([]domain.PayoutSummary, error) {
	args := m.Called(ctx, minPayoutCents)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PayoutSummary), args.Error(1)
}

func (m *MockLedgerRepository) FindPendingEntriesByCoach(ctx context.Context, coachID string) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, coachID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) ListEntriesByCoach(ctx context.Context, coachID string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	args := m.Called(ctx, coachID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Get(1).(*string), args.Error(2)
}

func (m *MockLedgerRepository) ListPayouts(ctx context.Context, coachID *string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	args := m.Called(ctx, coachID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return args.Get(0).([]domain.LedgerEntry), token, args.Error(2)
}

func (m *MockLedgerRepository) SaveEntry(ctx context.Context, entry domain.LedgerEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockLedgerRepository) ClaimEntriesForTransfer(ctx context.Context, entryIDs []string, transferRef string, processedAt time.Time, payoutEntry domain.LedgerEntry) error {
	args := m.Called(ctx, entryIDs, transferRef, processedAt, payoutEntry)
	return args.Error(0)
}

func (m *MockLedgerRepository) MarkEntryReversed(ctx context.Context, entryID string, reversal domain.LedgerEntry) error {
	args := m.Called(ctx, entryID, reversal)
	return args.Error(0)
}

// MockCoachRepository is a mock type for the CoachRepositoryFacade interface
type MockCoachRepository struct {
	mock.Mock
}

func (m *MockCoachRepository) FindCoachByID(ctx context.Context, coachID string) (*domain.Coach, error) {
	args := m.Called(ctx, coachID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Coach), args.Error(1)
}

func (m *MockCoachRepository) ListActiveCoaches(ctx context.Context) ([]domain.Coach, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Coach), args.Error(1)
}

// MockTransferGateway is a mock type for the TransferGateway interface
type MockTransferGateway struct {
	mock.Mock
}

func (m *MockTransferGateway) RetrieveAccount(ctx context.Context, accountID string) (*domain.ConnectAccount, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ConnectAccount), args.Error(1)
}

func (m *MockTransferGateway) CreateTransfer(ctx context.Context, req portssvc.TransferRequest) (*domain.Transfer, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transfer), args.Error(1)
}

// MockPayoutNotifier is a mock type for the PayoutNotifierSvcFacade interface
type MockPayoutNotifier struct {
	mock.Mock
}

func (m *MockPayoutNotifier) NotifyPayoutProcessed(ctx context.Context, coach domain.Coach, result domain.PayoutResult) {
	m.Called(ctx, coach, result)
}

// gatewayError mimics a structured gateway error for classification.
type gatewayError struct {
	status  int
	message string
}

func (e *gatewayError) Error() string   { return e.message }
func (e *gatewayError) StatusCode() int { return e.status }

// --- Test Suite Setup ---

type PayoutServiceTestSuite struct {
	suite.Suite
	mockLedger   *MockLedgerRepository
	mockCoaches  *MockCoachRepository
	mockGateway  *MockTransferGateway
	mockNotifier *MockPayoutNotifier
	service      portssvc.PayoutSvcFacade
}

func (suite *PayoutServiceTestSuite) SetupTest() {
	suite.mockLedger = new(MockLedgerRepository)
	suite.mockCoaches = new(MockCoachRepository)
	suite.mockGateway = new(MockTransferGateway)
	suite.mockNotifier = new(MockPayoutNotifier)
	suite.service = services.NewPayoutService(
		suite.mockLedger,
		suite.mockCoaches,
		suite.mockGateway,
		suite.mockNotifier,
		services.WithRetryPolicy(resilience.Policy{
			Label:        "payment",
			MaxRetries:   3,
			InitialDelay: time.Millisecond,
			MaxDelay:     2 * time.Millisecond,
			Multiplier:   2.0,
		}),
	)
}

func stringPtr(s string) *string { return &s }

func testCoach() *domain.Coach {
	return &domain.Coach{
		CoachID:         "coach-42",
		Name:            "Marie Tremblay",
		Email:           "marie@example.com",
		StripeAccountID: stringPtr("acct_1ABC"),
		IsActive:        true,
	}
}

func pendingEntries() []domain.LedgerEntry {
	return []domain.LedgerEntry{
		{EntryID: "entry-1", CoachID: "coach-42", TransactionType: domain.Earning, NetAmount: 600, Status: domain.Completed},
		{EntryID: "entry-2", CoachID: "coach-42", TransactionType: domain.Earning, NetAmount: 500, Status: domain.Completed},
	}
}

// --- Test Cases ---

func (suite *PayoutServiceTestSuite) TestProcessCoachPayout_Success() {
	ctx := context.Background()
	coach := testCoach()

	suite.mockCoaches.On("FindCoachByID", ctx, "coach-42").Return(coach, nil).Once()
	suite.mockLedger.On("FindPendingEntriesByCoach", ctx, "coach-42").Return(pendingEntries(), nil).Once()
	suite.mockGateway.On("RetrieveAccount", ctx, "acct_1ABC").
		Return(&domain.ConnectAccount{AccountID: "acct_1ABC", PayoutsEnabled: true}, nil).Once()
	suite.mockGateway.On("CreateTransfer", ctx, mock.MatchedBy(func(req portssvc.TransferRequest) bool {
		return req.Amount == 1100 &&
			req.Currency == "cad" &&
			req.Destination == "acct_1ABC" &&
			req.Metadata["coach_id"] == "coach-42" &&
			req.Metadata["entry_count"] == "2" &&
			req.Metadata["platform"] == "lingueefy"
	})).Return(&domain.Transfer{TransferID: "tr_1XYZ", Amount: 1100, Currency: "cad", Destination: "acct_1ABC"}, nil).Once()
	suite.mockLedger.On("ClaimEntriesForTransfer", ctx, []string{"entry-1", "entry-2"}, "tr_1XYZ",
		mock.AnythingOfType("time.Time"), mock.MatchedBy(func(entry domain.LedgerEntry) bool {
			return entry.TransactionType == domain.Payout &&
				entry.NetAmount == 1100 &&
				entry.Status == domain.Completed &&
				entry.TransferReference != nil && *entry.TransferReference == "tr_1XYZ"
		})).Return(nil).Once()
	suite.mockNotifier.On("NotifyPayoutProcessed", ctx, *coach, mock.AnythingOfType("domain.PayoutResult")).Once()

	result := suite.service.ProcessCoachPayout(ctx, "coach-42")

	suite.Equal(domain.PayoutSuccess, result.Status)
	suite.Equal(int64(1100), result.Amount)
	suite.Require().NotNil(result.TransferID)
	suite.Equal("tr_1XYZ", *result.TransferID)
	suite.Empty(result.Reason)

	suite.mockLedger.AssertExpectations(suite.T())
	suite.mockGateway.AssertExpectations(suite.T())
	suite.mockNotifier.AssertExpectations(suite.T())
}

func (suite *PayoutServiceTestSuite) TestProcessCoachPayout_CoachNotFound() {
	ctx := context.Background()
	suite.mockCoaches.On("FindCoachByID", ctx, "ghost").Return(nil, apperrors.ErrNotFound).Once()

	result := suite.service.ProcessCoachPayout(ctx, "ghost")

	suite.Equal(domain.PayoutFailed, result.Status)
	suite.Equal("coach not found", result.Reason)
	suite.mockGateway.AssertNotCalled(suite.T(), "CreateTransfer", mock.Anything, mock.Anything)
}

func (suite *PayoutServiceTestSuite) TestProcessCoachPayout_NoPayoutDestination() {
	ctx := context.Background()
	coach := testCoach()
	coach.StripeAccountID = nil
	suite.mockCoaches.On("FindCoachByID", ctx, "coach-42").Return(coach, nil).Once()

	result := suite.service.ProcessCoachPayout(ctx, "coach-42")

	suite.Equal(domain.PayoutSkipped, result.Status)
	suite.Equal("no Stripe Connect account", result.Reason)
	suite.mockLedger.AssertNotCalled(suite.T(), "FindPendingEntriesByCoach", mock.Anything, mock.Anything)
}

// A second run immediately after a successful payout finds nothing payable
// and must not contact the gateway again.
func (suite *PayoutServiceTestSuite) TestProcessCoachPayout_NoPendingEntries() {
	ctx := context.Background()
	suite.mockCoaches.On("FindCoachByID", ctx, "coach-42").Return(testCoach(), nil).Once()
	suite.mockLedger.On("FindPendingEntriesByCoach", ctx, "coach-42").Return([]domain.LedgerEntry{}, nil).Once()

	result := suite.service.ProcessCoachPayout(ctx, "coach-42")

	suite.Equal(domain.PayoutSkipped, result.Status)
	suite.Equal("no pending entries", result.Reason)
	suite.mockGateway.AssertNotCalled(suite.T(), "RetrieveAccount", mock.Anything, mock.Anything)
	suite.mockGateway.AssertNotCalled(suite.T(), "CreateTransfer", mock.Anything, mock.Anything)
}

func (suite *PayoutServiceTestSuite) TestProcessCoachPayout_BelowThreshold() {
	ctx := context.Background()
	suite.mockCoaches.On("FindCoachByID", ctx, "coach-42").Return(testCoach(), nil).Once()
	suite.mockLedger.On("FindPendingEntriesByCoach", ctx, "coach-42").Return([]domain.LedgerEntry{
		{EntryID: "entry-1", CoachID: "coach-42", NetAmount: 999},
	}, nil).Once()

	result := suite.service.ProcessCoachPayout(ctx, "coach-42")

	suite.Equal(domain.PayoutSkipped, result.Status)
	suite.Equal("below minimum threshold ($10.00)", result.Reason)
	suite.Equal(int64(999), result.Amount)
	suite.mockGateway.AssertNotCalled(suite.T(), "RetrieveAccount", mock.Anything, mock.Anything)
}

func (suite *PayoutServiceTestSuite) TestProcessCoachPayout_PayoutsDisabled() {
	ctx := context.Background()
	suite.mockCoaches.On("FindCoachByID", ctx, "coach-42").Return(testCoach(), nil).Once()
	suite.mockLedger.On("FindPendingEntriesByCoach", ctx, "coach-42").Return(pendingEntries(), nil).Once()
	suite.mockGateway.On("RetrieveAccount", ctx, "acct_1ABC").
		Return(&domain.ConnectAccount{AccountID: "acct_1ABC", PayoutsEnabled: false}, nil).Once()

	result := suite.service.ProcessCoachPayout(ctx, "coach-42")

	suite.Equal(domain.PayoutSkipped, result.Status)
	suite.Equal("Stripe payouts not enabled for this account", result.Reason)
	suite.mockGateway.AssertNotCalled(suite.T(), "CreateTransfer", mock.Anything, mock.Anything)
}

// Transient verification failures are retried; once the budget is exhausted
// the coach fails without a transfer ever being attempted.
func (suite *PayoutServiceTestSuite) TestProcessCoachPayout_VerificationRetriesExhausted() {
	ctx := context.Background()
	suite.mockCoaches.On("FindCoachByID", ctx, "coach-42").Return(testCoach(), nil).Once()
	suite.mockLedger.On("FindPendingEntriesByCoach", ctx, "coach-42").Return(pendingEntries(), nil).Once()
	suite.mockGateway.On("RetrieveAccount", ctx, "acct_1ABC").
		Return(nil, &gatewayError{status: 503, message: "service unavailable"}).Times(4)

	result := suite.service.ProcessCoachPayout(ctx, "coach-42")

	suite.Equal(domain.PayoutFailed, result.Status)
	suite.Equal("unable to verify Stripe Connect account", result.Reason)
	suite.mockGateway.AssertExpectations(suite.T())
	suite.mockGateway.AssertNotCalled(suite.T(), "CreateTransfer", mock.Anything, mock.Anything)
}

func (suite *PayoutServiceTestSuite) TestProcessCoachPayout_VerificationRecovers() {
	ctx := context.Background()
	suite.mockCoaches.On("FindCoachByID", ctx, "coach-42").Return(testCoach(), nil).Once()
	suite.mockLedger.On("FindPendingEntriesByCoach", ctx, "coach-42").Return(pendingEntries(), nil).Once()
	suite.mockGateway.On("RetrieveAccount", ctx, "acct_1ABC").
		Return(nil, &gatewayError{status: 500, message: "boom"}).Twice()
	suite.mockGateway.On("RetrieveAccount", ctx, "acct_1ABC").
		Return(&domain.ConnectAccount{AccountID: "acct_1ABC", PayoutsEnabled: true}, nil).Once()
	suite.mockGateway.On("CreateTransfer", ctx, mock.AnythingOfType("services.TransferRequest")).
		Return(&domain.Transfer{TransferID: "tr_2ABC", Amount: 1100}, nil).Once()
	suite.mockLedger.On("ClaimEntriesForTransfer", ctx, []string{"entry-1", "entry-2"}, "tr_2ABC",
		mock.AnythingOfType("time.Time"), mock.AnythingOfType("domain.LedgerEntry")).Return(nil).Once()
	suite.mockNotifier.On("NotifyPayoutProcessed", ctx, mock.Anything, mock.Anything).Once()

	result := suite.service.ProcessCoachPayout(ctx, "coach-42")

	suite.Equal(domain.PayoutSuccess, result.Status)
	suite.mockGateway.AssertExpectations(suite.T())
}

// A failed transfer must leave the ledger untouched so the next run can retry
// the whole payout.
func (suite *PayoutServiceTestSuite) TestProcessCoachPayout_TransferFails() {
	ctx := context.Background()
	suite.mockCoaches.On("FindCoachByID", ctx, "coach-42").Return(testCoach(), nil).Once()
	suite.mockLedger.On("FindPendingEntriesByCoach", ctx, "coach-42").Return(pendingEntries(), nil).Once()
	suite.mockGateway.On("RetrieveAccount", ctx, "acct_1ABC").
		Return(&domain.ConnectAccount{AccountID: "acct_1ABC", PayoutsEnabled: true}, nil).Once()
	suite.mockGateway.On("CreateTransfer", ctx, mock.AnythingOfType("services.TransferRequest")).
		Return(nil, &gatewayError{status: 400, message: "insufficient platform balance"}).Once()

	result := suite.service.ProcessCoachPayout(ctx, "coach-42")

	suite.Equal(domain.PayoutFailed, result.Status)
	suite.Equal(int64(1100), result.Amount)
	suite.Nil(result.TransferID)
	suite.mockLedger.AssertNotCalled(suite.T(), "ClaimEntriesForTransfer",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockNotifier.AssertNotCalled(suite.T(), "NotifyPayoutProcessed", mock.Anything, mock.Anything, mock.Anything)
	// Only one transfer attempt, ever.
	suite.mockGateway.AssertNumberOfCalls(suite.T(), "CreateTransfer", 1)
}

func (suite *PayoutServiceTestSuite) TestProcessCoachPayout_ClaimConflict() {
	ctx := context.Background()
	suite.mockCoaches.On("FindCoachByID", ctx, "coach-42").Return(testCoach(), nil).Once()
	suite.mockLedger.On("FindPendingEntriesByCoach", ctx, "coach-42").Return(pendingEntries(), nil).Once()
	suite.mockGateway.On("RetrieveAccount", ctx, "acct_1ABC").
		Return(&domain.ConnectAccount{AccountID: "acct_1ABC", PayoutsEnabled: true}, nil).Once()
	suite.mockGateway.On("CreateTransfer", ctx, mock.AnythingOfType("services.TransferRequest")).
		Return(&domain.Transfer{TransferID: "tr_3DEF", Amount: 1100}, nil).Once()
	suite.mockLedger.On("ClaimEntriesForTransfer", ctx, []string{"entry-1", "entry-2"}, "tr_3DEF",
		mock.AnythingOfType("time.Time"), mock.AnythingOfType("domain.LedgerEntry")).
		Return(apperrors.ErrConflict).Once()

	result := suite.service.ProcessCoachPayout(ctx, "coach-42")

	suite.Equal(domain.PayoutFailed, result.Status)
	suite.Contains(result.Reason, "tr_3DEF")
	suite.mockNotifier.AssertNotCalled(suite.T(), "NotifyPayoutProcessed", mock.Anything, mock.Anything, mock.Anything)
}

// One coach failing must not stop the remaining coaches in a batch run.
func (suite *PayoutServiceTestSuite) TestProcessAllPendingPayouts_IsolatesFailures() {
	ctx := context.Background()

	summaries := []domain.PayoutSummary{
		{CoachID: "coach-a", CoachName: "A", PendingAmount: 1500},
		{CoachID: "coach-b", CoachName: "B", PendingAmount: 2000},
		{CoachID: "coach-c", CoachName: "C", PendingAmount: 2500},
	}
	suite.mockLedger.On("GetPendingPayoutSummaries", ctx, services.MinPayoutCents).Return(summaries, nil).Once()

	for _, tc := range []struct {
		coachID string
		account string
		amount  int64
		fails   bool
	}{
		{"coach-a", "acct_A", 1500, false},
		{"coach-b", "acct_B", 2000, true},
		{"coach-c", "acct_C", 2500, false},
	} {
		coach := &domain.Coach{CoachID: tc.coachID, Name: tc.coachID, StripeAccountID: stringPtr(tc.account), IsActive: true}
		suite.mockCoaches.On("FindCoachByID", ctx, tc.coachID).Return(coach, nil).Once()
		suite.mockLedger.On("FindPendingEntriesByCoach", ctx, tc.coachID).Return([]domain.LedgerEntry{
			{EntryID: tc.coachID + "-e1", CoachID: tc.coachID, NetAmount: tc.amount},
		}, nil).Once()
		suite.mockGateway.On("RetrieveAccount", ctx, tc.account).
			Return(&domain.ConnectAccount{AccountID: tc.account, PayoutsEnabled: true}, nil).Once()
		if tc.fails {
			suite.mockGateway.On("CreateTransfer", ctx, mock.MatchedBy(func(req portssvc.TransferRequest) bool {
				return req.Destination == tc.account
			})).Return(nil, &gatewayError{status: 400, message: "balance_insufficient"}).Once()
			continue
		}
		transferID := "tr_" + tc.coachID
		suite.mockGateway.On("CreateTransfer", ctx, mock.MatchedBy(func(req portssvc.TransferRequest) bool {
			return req.Destination == tc.account
		})).Return(&domain.Transfer{TransferID: transferID, Amount: tc.amount}, nil).Once()
		suite.mockLedger.On("ClaimEntriesForTransfer", ctx, []string{tc.coachID + "-e1"}, transferID,
			mock.AnythingOfType("time.Time"), mock.AnythingOfType("domain.LedgerEntry")).Return(nil).Once()
		suite.mockNotifier.On("NotifyPayoutProcessed", ctx, *coach, mock.AnythingOfType("domain.PayoutResult")).Once()
	}

	batch, err := suite.service.ProcessAllPendingPayouts(ctx)

	suite.Require().NoError(err)
	suite.Require().Len(batch.Results, 3)
	suite.Equal(2, batch.TotalProcessed)
	suite.Equal(int64(4000), batch.TotalAmount)
	suite.Equal(domain.PayoutSuccess, batch.Results[0].Status)
	suite.Equal(domain.PayoutFailed, batch.Results[1].Status)
	suite.Equal(domain.PayoutSuccess, batch.Results[2].Status)
	suite.mockGateway.AssertExpectations(suite.T())
	suite.mockLedger.AssertExpectations(suite.T())
}

func (suite *PayoutServiceTestSuite) TestGetPendingPayouts() {
	ctx := context.Background()
	summaries := []domain.PayoutSummary{{CoachID: "coach-42", PendingAmount: 4200, PendingEntries: 3}}
	suite.mockLedger.On("GetPendingPayoutSummaries", ctx, services.MinPayoutCents).Return(summaries, nil).Once()

	got, err := suite.service.GetPendingPayouts(ctx)

	suite.Require().NoError(err)
	suite.Equal(summaries, got)
}

func TestPayoutServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PayoutServiceTestSuite))
}
