package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gerdoo-personal-ledger/internal/domain/account"
	"github.com/gerdoo-personal-ledger/internal/domain/transaction"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockAccountService implements the service.AccountService interface
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) CreateAccount(ctx context.Context, bankName, owner, cardNumber, color string, initialBalance decimal.Decimal) (*account.Account, error) {
	args := m.Called(ctx, bankName, owner, cardNumber, color, initialBalance)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountByID(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.Account), args.Error(1)
}

func (m *MockAccountService) ListAccounts(ctx context.Context, activeOnly bool) ([]*account.Account, error) {
	args := m.Called(ctx, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*account.Account), args.Error(1)
}

func (m *MockAccountService) DeactivateAccount(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func setupAccountRouter(accSvc *MockAccountService, ledgerSvc *MockLedgerService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	h := NewAccountHandler(accSvc, ledgerSvc, slog.Default())
	router.POST("/accounts", h.CreateAccount)
	router.GET("/accounts", h.ListAccounts)
	router.GET("/accounts/:id", h.GetAccount)
	router.POST("/accounts/:id/deactivate", h.DeactivateAccount)
	router.GET("/accounts/:id/transactions", h.GetAccountTransactions)

	return router
}

func mustNewAccount(t *testing.T, balance int64) *account.Account {
	t.Helper()
	acc, err := account.NewAccount("ملت", "علی", "6104-3378", "#ff0000", decimal.NewFromInt(balance))
	require.NoError(t, err)
	return acc
}

func TestAccountHandler_Create(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		accSvc := &MockAccountService{}
		router := setupAccountRouter(accSvc, &MockLedgerService{})

		acc := mustNewAccount(t, 50_000)
		accSvc.On("CreateAccount", mock.Anything, "ملت", "علی", "6104-3378", "#ff0000",
			decimal.NewFromInt(50_000)).Return(acc, nil).Once()

		rr := postJSON(router, "/accounts", CreateAccountRequest{
			BankName:       "ملت",
			Owner:          "علی",
			CardNumber:     "6104-3378",
			Color:          "#ff0000",
			InitialBalance: "50000",
		})

		assert.Equal(t, http.StatusCreated, rr.Code)
		var resp Response
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Nil(t, resp.Error)
		accSvc.AssertExpectations(t)
	})

	t.Run("malformed balance", func(t *testing.T) {
		accSvc := &MockAccountService{}
		router := setupAccountRouter(accSvc, &MockLedgerService{})

		rr := postJSON(router, "/accounts", CreateAccountRequest{
			BankName:       "ملت",
			Owner:          "علی",
			InitialBalance: "lots",
		})

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		accSvc.AssertNotCalled(t, "CreateAccount",
			mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing owner rejected by binding", func(t *testing.T) {
		accSvc := &MockAccountService{}
		router := setupAccountRouter(accSvc, &MockLedgerService{})

		rr := postJSON(router, "/accounts", CreateAccountRequest{BankName: "ملت", CardNumber: "6104"})

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		accSvc.AssertNotCalled(t, "CreateAccount",
			mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestAccountHandler_Get(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		accSvc := &MockAccountService{}
		router := setupAccountRouter(accSvc, &MockLedgerService{})

		acc := mustNewAccount(t, 1000)
		accSvc.On("GetAccountByID", mock.Anything, acc.ID).Return(acc, nil).Once()

		req, _ := http.NewRequest(http.MethodGet, "/accounts/"+acc.ID.String(), nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("not found", func(t *testing.T) {
		accSvc := &MockAccountService{}
		router := setupAccountRouter(accSvc, &MockLedgerService{})

		id := uuid.New()
		accSvc.On("GetAccountByID", mock.Anything, id).
			Return(nil, account.ErrNotFound{AccountID: id}).Once()

		req, _ := http.NewRequest(http.MethodGet, "/accounts/"+id.String(), nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("invalid id", func(t *testing.T) {
		accSvc := &MockAccountService{}
		router := setupAccountRouter(accSvc, &MockLedgerService{})

		req, _ := http.NewRequest(http.MethodGet, "/accounts/not-a-uuid", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		accSvc.AssertNotCalled(t, "GetAccountByID", mock.Anything, mock.Anything)
	})
}

func TestAccountHandler_List(t *testing.T) {
	accSvc := &MockAccountService{}
	router := setupAccountRouter(accSvc, &MockLedgerService{})

	accounts := []*account.Account{mustNewAccount(t, 100), mustNewAccount(t, 200)}
	accSvc.On("ListAccounts", mock.Anything, true).Return(accounts, nil).Once()

	req, _ := http.NewRequest(http.MethodGet, "/accounts?active_only=true", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp Response
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	data, ok := resp.Data.([]interface{})
	require.True(t, ok)
	assert.Len(t, data, 2)
	accSvc.AssertExpectations(t)
}

func TestAccountHandler_Deactivate(t *testing.T) {
	accSvc := &MockAccountService{}
	router := setupAccountRouter(accSvc, &MockLedgerService{})

	id := uuid.New()
	accSvc.On("DeactivateAccount", mock.Anything, id).Return(nil).Once()

	rr := postJSON(router, "/accounts/"+id.String()+"/deactivate", nil)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	accSvc.AssertExpectations(t)
}

func TestAccountHandler_GetTransactions(t *testing.T) {
	accSvc := &MockAccountService{}
	ledgerSvc := &MockLedgerService{}
	router := setupAccountRouter(accSvc, ledgerSvc)

	accountID := uuid.New()
	txns := []*transaction.Transaction{
		{
			ID:          uuid.New(),
			Kind:        transaction.KindExpense,
			Amount:      decimal.NewFromInt(300),
			SourceID:    &accountID,
			CategoryID:  uuid.New(),
			Description: "groceries",
			Date:        time.Now(),
		},
	}
	ledgerSvc.On("ListTransactionsByAccount", mock.Anything, accountID, 2, 10).
		Return(txns, int64(12), nil).Once()

	req, _ := http.NewRequest(http.MethodGet, "/accounts/"+accountID.String()+"/transactions?page=2&per_page=10", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp Response
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.NotNil(t, resp.Meta)
	assert.Equal(t, 2, resp.Meta.Page)
	assert.Equal(t, 12, resp.Meta.TotalItems)
	ledgerSvc.AssertExpectations(t)
}
