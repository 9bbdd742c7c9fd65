package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/go-petr/mini-ledger/internal/domain"
	"github.com/go-petr/mini-ledger/pkg/configpkg"
	"github.com/go-petr/mini-ledger/pkg/web"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func newTestServer(t *testing.T) *Server {
	t.Helper()

	config := configpkg.Config{
		ServerAddress:          "0.0.0.0:8080",
		DefaultStartingBalance: 0,
	}

	server, err := New(zerolog.Nop(), config)
	require.NoError(t, err)

	return server
}

func doJSON(t *testing.T, server *Server, method, url string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader

	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)

		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)

	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, req)

	return recorder
}

func listBalances(t *testing.T, server *Server) map[int32]int64 {
	t.Helper()

	recorder := doJSON(t, server, http.MethodGet, "/accounts", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	res := web.Response{
		Data: &struct {
			Accounts []domain.Account `json:"accounts"`
		}{},
	}
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&res))

	accounts := res.Data.(*struct {
		Accounts []domain.Account `json:"accounts"`
	}).Accounts

	balances := make(map[int32]int64, len(accounts))
	for _, a := range accounts {
		balances[a.ID] = a.Balance
	}

	return balances
}

func TestMetaEndpoints(t *testing.T) {
	server := newTestServer(t)

	t.Run("Root", func(t *testing.T) {
		recorder := doJSON(t, server, http.MethodGet, "/", nil)
		require.Equal(t, http.StatusOK, recorder.Code)

		var res map[string]string
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&res))
		require.Equal(t, AppName, res["name"])
		require.Equal(t, AppVersion, res["version"])
	})

	t.Run("Health", func(t *testing.T) {
		recorder := doJSON(t, server, http.MethodGet, "/health", nil)
		require.Equal(t, http.StatusOK, recorder.Code)

		var res map[string]string
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&res))
		require.Equal(t, "ok", res["status"])
	})
}

func TestSeededAccounts(t *testing.T) {
	server := newTestServer(t)

	balances := listBalances(t, server)
	require.Equal(t, map[int32]int64{1: 100, 2: 250}, balances)
}

func TestTransferScenarios(t *testing.T) {
	type transferRequest struct {
		FromAccountID int32 `json:"from_account_id"`
		ToAccountID   int32 `json:"to_account_id"`
		Amount        int64 `json:"amount"`
	}

	t.Run("SuccessMovesFundsAndConservesTotal", func(t *testing.T) {
		server := newTestServer(t)

		recorder := doJSON(t, server, http.MethodPost, "/transfers", transferRequest{
			FromAccountID: 1,
			ToAccountID:   2,
			Amount:        50,
		})
		require.Equal(t, http.StatusOK, recorder.Code)

		res := web.Response{
			Data: &struct {
				Transfer domain.TransferResult `json:"transfer"`
			}{},
		}
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&res))

		result := res.Data.(*struct {
			Transfer domain.TransferResult `json:"transfer"`
		}).Transfer

		require.Equal(t, int64(50), result.FromAccount.Balance)
		require.Equal(t, int64(300), result.ToAccount.Balance)
		require.Equal(t, int64(50), result.Amount)

		balances := listBalances(t, server)
		require.Equal(t, map[int32]int64{1: 50, 2: 300}, balances)
		require.Equal(t, int64(350), balances[1]+balances[2])
	})

	t.Run("InsufficientBalanceLeavesStoreUntouched", func(t *testing.T) {
		server := newTestServer(t)

		recorder := doJSON(t, server, http.MethodPost, "/transfers", transferRequest{
			FromAccountID: 1,
			ToAccountID:   2,
			Amount:        1000,
		})
		require.Equal(t, http.StatusBadRequest, recorder.Code)

		var res web.Response
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&res))
		require.Equal(t, domain.ErrInsufficientBalance.Error(), res.Error)

		require.Equal(t, map[int32]int64{1: 100, 2: 250}, listBalances(t, server))
	})

	t.Run("SelfTransfer", func(t *testing.T) {
		server := newTestServer(t)

		recorder := doJSON(t, server, http.MethodPost, "/transfers", transferRequest{
			FromAccountID: 1,
			ToAccountID:   1,
			Amount:        10,
		})
		require.Equal(t, http.StatusBadRequest, recorder.Code)

		var res web.Response
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&res))
		require.Equal(t, domain.ErrSelfTransfer.Error(), res.Error)
	})

	t.Run("AccountNotFound", func(t *testing.T) {
		server := newTestServer(t)

		recorder := doJSON(t, server, http.MethodPost, "/transfers", transferRequest{
			FromAccountID: 99,
			ToAccountID:   2,
			Amount:        10,
		})
		require.Equal(t, http.StatusNotFound, recorder.Code)

		var res web.Response
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&res))
		require.Equal(t, domain.ErrAccountNotFound.Error(), res.Error)

		require.Equal(t, map[int32]int64{1: 100, 2: 250}, listBalances(t, server))
	})

	t.Run("NonPositiveAmountRejectedAtBinding", func(t *testing.T) {
		server := newTestServer(t)

		recorder := doJSON(t, server, http.MethodPost, "/transfers", transferRequest{
			FromAccountID: 1,
			ToAccountID:   2,
			Amount:        -10,
		})
		require.Equal(t, http.StatusBadRequest, recorder.Code)

		require.Equal(t, map[int32]int64{1: 100, 2: 250}, listBalances(t, server))
	})
}

func TestCreateAccountScenarios(t *testing.T) {
	type createRequest struct {
		DisplayName string `json:"display_name,omitempty"`
		Handle      string `json:"handle,omitempty"`
		Balance     *int64 `json:"balance,omitempty"`
	}

	t.Run("DuplicateHandleConflict", func(t *testing.T) {
		server := newTestServer(t)
		balance := int64(10)

		recorder := doJSON(t, server, http.MethodPost, "/accounts", createRequest{
			DisplayName: "Carol",
			Handle:      "alice",
			Balance:     &balance,
		})
		require.Equal(t, http.StatusConflict, recorder.Code)

		var res web.Response
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&res))
		require.Equal(t, domain.ErrHandleAlreadyExists.Error(), res.Error)

		require.Len(t, listBalances(t, server), 2)
	})

	t.Run("AbsentBalanceUsesConfiguredDefault", func(t *testing.T) {
		server := newTestServer(t)

		recorder := doJSON(t, server, http.MethodPost, "/accounts", createRequest{
			DisplayName: "Carol",
			Handle:      "carol",
		})
		require.Equal(t, http.StatusOK, recorder.Code)

		res := web.Response{
			Data: &struct {
				Account domain.Account `json:"account"`
			}{},
		}
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&res))

		account := res.Data.(*struct {
			Account domain.Account `json:"account"`
		}).Account

		require.Equal(t, int32(3), account.ID)
		require.Equal(t, int64(0), account.Balance)
	})

	t.Run("LookupByHandleCaseInsensitive", func(t *testing.T) {
		server := newTestServer(t)

		recorder := doJSON(t, server, http.MethodGet, "/handles/ALICE", nil)
		require.Equal(t, http.StatusOK, recorder.Code)

		res := web.Response{
			Data: &struct {
				Account domain.Account `json:"account"`
			}{},
		}
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&res))

		account := res.Data.(*struct {
			Account domain.Account `json:"account"`
		}).Account

		require.Equal(t, int32(1), account.ID)
		require.Equal(t, "alice", account.Handle)
	})
}
