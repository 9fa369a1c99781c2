package webapi_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ShantamRU/extraordinary-bank/internal/fixtures"
	"github.com/ShantamRU/extraordinary-bank/pkg/config"
	"github.com/ShantamRU/extraordinary-bank/pkg/provider"
	accountsvc "github.com/ShantamRU/extraordinary-bank/pkg/service/account"
	authsvc "github.com/ShantamRU/extraordinary-bank/pkg/service/auth"
	currencysvc "github.com/ShantamRU/extraordinary-bank/pkg/service/currency"
	ledgersvc "github.com/ShantamRU/extraordinary-bank/pkg/service/ledger"
	usersvc "github.com/ShantamRU/extraordinary-bank/pkg/service/user"
	"github.com/ShantamRU/extraordinary-bank/webapi"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	app      *fiber.App
	store    *fixtures.Store
	notifier *fixtures.RecordingNotifier
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := fixtures.NewStore()
	notifier := &fixtures.RecordingNotifier{}
	uow := fixtures.NewUoW(store)
	logger := slog.New(slog.DiscardHandler)

	cfg := &config.AppConfig{
		Jwt: config.JwtConfig{Secret: "test-secret", Expiry: time.Hour},
	}
	rates := &fixtures.StaticRateProvider{
		Table: map[string]provider.RateInfo{
			"USD": {Code: "USD", Name: "US Dollar", Rate: decimal.NewFromInt(75)},
		},
	}

	svcs := webapi.Services{
		Account:  accountsvc.New(uow, logger),
		Auth:     authsvc.New(uow, cfg.Jwt, logger),
		Currency: currencysvc.New(uow, rates, logger),
		Ledger:   ledgersvc.New(uow, nil, logger),
		User:     usersvc.New(uow, notifier, logger),
	}
	return &testEnv{app: webapi.NewApp(svcs, cfg), store: store, notifier: notifier}
}

func (e *testEnv) request(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeData(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	require.NoError(t, json.Unmarshal(envelope.Data, out))
}

// registerAndLogin walks the register/confirm/login flow and returns a token.
func (e *testEnv) registerAndLogin(t *testing.T, email, phone string) string {
	t.Helper()
	resp := e.request(t, http.MethodPost, "/users", "", fiber.Map{
		"first_name": "Ivan",
		"last_name":  "Petrov",
		"email":      email,
		"phone":      phone,
		"password":   "Password1",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	body := e.notifier.Last().Body
	code := body[strings.LastIndex(body, ": ")+2:]
	resp = e.request(t, http.MethodPost, "/users/confirm", "", fiber.Map{"confirmation_code": code})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = e.request(t, http.MethodPost, "/login", "", fiber.Map{
		"identity": email,
		"password": "Password1",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var login struct {
		AccessToken string `json:"access_token"`
	}
	decodeData(t, resp, &login)
	require.NotEmpty(t, login.AccessToken)
	return login.AccessToken
}

func TestRegisterValidation(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodPost, "/users", "", fiber.Map{
		"email":    "not-an-email",
		"phone":    "+70000000001",
		"password": "Password1",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "application/problem+json", resp.Header.Get("Content-Type"))
}

func TestRegisterWeakPassword(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodPost, "/users", "", fiber.Map{
		"email":    "ivan@example.com",
		"phone":    "+70000000001",
		"password": "password1",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestLoginBeforeConfirmation(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodPost, "/users", "", fiber.Map{
		"email":    "ivan@example.com",
		"phone":    "+70000000001",
		"password": "Password1",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = env.request(t, http.MethodPost, "/login", "", fiber.Map{
		"identity": "ivan@example.com",
		"password": "Password1",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestProtectedRouteWithoutToken(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodGet, "/users/me", "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "missing JWT")

	resp = env.request(t, http.MethodGet, "/users/me", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "malformed JWT")
}

func TestUserProfileFlow(t *testing.T) {
	env := newTestEnv(t)
	token := env.registerAndLogin(t, "ivan@example.com", "+70000000001")

	resp := env.request(t, http.MethodGet, "/users/me", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var me struct {
		Email string `json:"email"`
		Phone string `json:"phone"`
	}
	decodeData(t, resp, &me)
	assert.Equal(t, "ivan@example.com", me.Email)
	assert.Equal(t, "+70000000001", me.Phone)
}

func TestAccountAndOperationFlow(t *testing.T) {
	env := newTestEnv(t)
	token := env.registerAndLogin(t, "ivan@example.com", "+70000000001")

	resp := env.request(t, http.MethodPost, "/currencies", token, fiber.Map{"char_code": "USD"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = env.request(t, http.MethodPost, "/accounts", token, fiber.Map{
		"currency_code": "USD",
		"balance":       "100",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var acc struct {
		ID string `json:"id"`
	}
	decodeData(t, resp, &acc)

	resp = env.request(t, http.MethodPost, fmt.Sprintf("/accounts/%s/operations", acc.ID), token,
		fiber.Map{"amount_diff": "-30", "description": "withdrawal"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = env.request(t, http.MethodGet, fmt.Sprintf("/accounts/%s", acc.ID), token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var got struct {
		Balance decimal.Decimal `json:"balance"`
	}
	decodeData(t, resp, &got)
	assert.True(t, got.Balance.Equal(decimal.NewFromInt(70)))

	resp = env.request(t, http.MethodGet, fmt.Sprintf("/accounts/%s/operations", acc.ID), token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var ops []struct {
		Description string `json:"description"`
	}
	decodeData(t, resp, &ops)
	require.Len(t, ops, 1)
	assert.Equal(t, "withdrawal", ops[0].Description)
}

func TestTransferBetweenUsers(t *testing.T) {
	env := newTestEnv(t)
	senderToken := env.registerAndLogin(t, "ivan@example.com", "+70000000001")
	recipientToken := env.registerAndLogin(t, "anna@example.com", "+70000000002")

	resp := env.request(t, http.MethodPost, "/currencies", senderToken, fiber.Map{"char_code": "RUB"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp = env.request(t, http.MethodPost, "/currencies", senderToken, fiber.Map{"char_code": "USD"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = env.request(t, http.MethodPost, "/accounts", senderToken, fiber.Map{
		"currency_code": "RUB",
		"balance":       "1000",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var senderAcc struct {
		ID string `json:"id"`
	}
	decodeData(t, resp, &senderAcc)

	resp = env.request(t, http.MethodPost, "/accounts", recipientToken, fiber.Map{
		"currency_code": "USD",
		"balance":       "0",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var recipientAcc struct {
		ID string `json:"id"`
	}
	decodeData(t, resp, &recipientAcc)

	// A positive amount with a recipient is rejected.
	resp = env.request(t, http.MethodPost, fmt.Sprintf("/accounts/%s/operations", senderAcc.ID),
		senderToken, fiber.Map{"amount_diff": "100", "recipient_account": recipientAcc.ID})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = env.request(t, http.MethodPost, fmt.Sprintf("/accounts/%s/operations", senderAcc.ID),
		senderToken, fiber.Map{"amount_diff": "-150", "recipient_account": recipientAcc.ID})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = env.request(t, http.MethodGet, fmt.Sprintf("/accounts/%s", recipientAcc.ID), recipientToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var got struct {
		Balance decimal.Decimal `json:"balance"`
	}
	decodeData(t, resp, &got)
	// 150 RUB at rate 1 lands as 150/75 = 2 USD.
	assert.True(t, got.Balance.Equal(decimal.NewFromInt(2)), "got %s", got.Balance)
}

func TestForeignAccountIsHidden(t *testing.T) {
	env := newTestEnv(t)
	ownerToken := env.registerAndLogin(t, "ivan@example.com", "+70000000001")
	otherToken := env.registerAndLogin(t, "anna@example.com", "+70000000002")

	resp := env.request(t, http.MethodPost, "/currencies", ownerToken, fiber.Map{"char_code": "USD"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp = env.request(t, http.MethodPost, "/accounts", ownerToken, fiber.Map{
		"currency_code": "USD",
		"balance":       "100",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var acc struct {
		ID string `json:"id"`
	}
	decodeData(t, resp, &acc)

	resp = env.request(t, http.MethodGet, fmt.Sprintf("/accounts/%s", acc.ID), otherToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = env.request(t, http.MethodDelete, fmt.Sprintf("/accounts/%s", acc.ID), otherToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
