package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"owatch-server/internal/handler"
	"owatch-server/internal/pkg/lock"
	"owatch-server/internal/repository"
	"owatch-server/internal/service"
)

const testWallet = "0xAbC1230000000000000000000000000000000001"

type testEnv struct {
	srv *httptest.Server
	mem *repository.Memory
}

func setupServer(t *testing.T) *testEnv {
	t.Helper()

	mem := repository.NewMemory()
	addrLock := lock.NewAddressLock()
	accounts := service.NewAccountService(mem, mem, mem, mem, addrLock, 80, 0)
	converts := service.NewConvertService(mem, mem, addrLock, 10, 0)
	staking := service.NewStakingService(mem, mem, addrLock, 0)

	h := handler.NewHandler(accounts, converts, staking, nil)
	srv := httptest.NewServer(h.Router())
	t.Cleanup(srv.Close)

	return &testEnv{srv: srv, mem: mem}
}

func (e *testEnv) fund(t *testing.T, points int64, tokens float64) {
	t.Helper()
	ctx := context.Background()
	_, err := e.mem.GetOrCreate(ctx, testWallet)
	require.NoError(t, err)
	_, err = e.mem.AdjustBalances(ctx, testWallet, points, tokens)
	require.NoError(t, err)
}

func (e *testEnv) do(t *testing.T, method, path string, body any, wallet string) (*http.Response, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, e.srv.URL+path, &buf)
	require.NoError(t, err)
	if wallet != "" {
		req.Header.Set("X-Wallet-Address", wallet)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	var decoded map[string]any
	// Some responses are arrays or empty; the map stays nil then.
	_ = json.NewDecoder(resp.Body).Decode(&decoded)
	return resp, decoded
}

func (e *testEnv) doList(t *testing.T, path string) (*http.Response, []any) {
	t.Helper()

	resp, err := http.Get(e.srv.URL + path)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	var decoded []any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp, decoded
}

// --- Catalog ---

func TestCatalogRoutes(t *testing.T) {
	env := setupServer(t)

	resp, pools := env.doList(t, "/api/v1/catalog/pools")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, pools, 4)

	resp, tiers := env.doList(t, "/api/v1/catalog/tiers")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, tiers, 5)

	resp, videos := env.doList(t, "/api/v1/catalog/videos")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, videos, 6)
}

func TestCatalogRoutes_NoWalletRequired(t *testing.T) {
	env := setupServer(t)

	resp, _ := env.do(t, http.MethodGet, "/api/v1/catalog/pools", nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// --- Wallet middleware ---

func TestWalletHeaderRequired(t *testing.T) {
	env := setupServer(t)

	resp, body := env.do(t, http.MethodGet, "/api/v1/account", nil, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "wallet_required", body["error"])

	resp, _ = env.do(t, http.MethodPost, "/api/v1/conversions", map[string]any{"tierId": "tier-100"}, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// --- Account ---

func TestGetAccount_NewWallet(t *testing.T) {
	env := setupServer(t)

	resp, body := env.do(t, http.MethodGet, "/api/v1/account", nil, testWallet)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	acct := body["account"].(map[string]any)
	assert.Equal(t, testWallet, acct["address"])
	assert.Equal(t, float64(0), acct["pointsBalance"])
	assert.Equal(t, float64(0), acct["tokenBalance"])
	assert.Equal(t, float64(0), body["totalStaked"])
}

func TestClaimVideo(t *testing.T) {
	env := setupServer(t)

	resp, body := env.do(t, http.MethodPost, "/api/v1/videos/1/claim",
		map[string]any{"watchedSeconds": 264}, testWallet)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(10), body["pointsBalance"])

	// Second claim is refused
	resp, body = env.do(t, http.MethodPost, "/api/v1/videos/1/claim",
		map[string]any{"watchedSeconds": 264}, testWallet)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "reward_already_claimed", body["error"])
}

func TestClaimVideo_Incomplete(t *testing.T) {
	env := setupServer(t)

	resp, body := env.do(t, http.MethodPost, "/api/v1/videos/1/claim",
		map[string]any{"watchedSeconds": 100}, testWallet)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "watch_incomplete", body["error"])
}

func TestClaimVideo_UnknownID(t *testing.T) {
	env := setupServer(t)

	resp, body := env.do(t, http.MethodPost, "/api/v1/videos/999/claim",
		map[string]any{"watchedSeconds": 1000}, testWallet)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "video_not_found", body["error"])

	resp, _ = env.do(t, http.MethodPost, "/api/v1/videos/abc/claim",
		map[string]any{"watchedSeconds": 1000}, testWallet)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// --- Conversions ---

func TestConvert(t *testing.T) {
	env := setupServer(t)
	env.fund(t, 500, 0)

	resp, body := env.do(t, http.MethodPost, "/api/v1/conversions",
		map[string]any{"tierId": "tier-500"}, testWallet)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, float64(500), body["pointsSpent"])
	assert.InDelta(t, 5.25, body["tokensReceived"].(float64), 1e-9)
	assert.NotEmpty(t, body["id"])
}

func TestConvert_InsufficientPoints(t *testing.T) {
	env := setupServer(t)
	env.fund(t, 50, 0)

	resp, body := env.do(t, http.MethodPost, "/api/v1/conversions",
		map[string]any{"tierId": "tier-500"}, testWallet)
	assert.Equal(t, http.StatusPaymentRequired, resp.StatusCode)
	assert.Equal(t, "insufficient_points", body["error"])
}

func TestConvert_UnknownTier(t *testing.T) {
	env := setupServer(t)

	resp, body := env.do(t, http.MethodPost, "/api/v1/conversions",
		map[string]any{"tierId": "tier-999"}, testWallet)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "tier_not_found", body["error"])
}

// --- Stakes ---

func TestStakeAndWithdraw(t *testing.T) {
	env := setupServer(t)
	env.fund(t, 0, 100)

	resp, body := env.do(t, http.MethodPost, "/api/v1/stakes",
		map[string]any{"poolId": "pool-4", "amount": 40}, testWallet)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "pool-4", body["poolId"])
	assert.Equal(t, float64(40), body["principal"])

	stakedAt, err := time.Parse(time.RFC3339Nano, body["stakedAt"].(string))
	require.NoError(t, err)

	// Flexible pool withdraws immediately
	resp, body = env.do(t, http.MethodPost, "/api/v1/stakes/withdraw",
		map[string]any{"poolId": "pool-4", "stakedAt": stakedAt}, testWallet)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.InDelta(t, 100+40*8/365.0/100, body["tokenBalance"].(float64), 1e-9)
}

func TestListStakes(t *testing.T) {
	env := setupServer(t)
	env.fund(t, 0, 100)

	resp, _ := env.do(t, http.MethodPost, "/api/v1/stakes",
		map[string]any{"poolId": "pool-1", "amount": 50}, testWallet)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	req, err := http.NewRequest(http.MethodGet, env.srv.URL+"/api/v1/stakes", nil)
	require.NoError(t, err)
	req.Header.Set("X-Wallet-Address", testWallet)
	listResp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer listResp.Body.Close()
	require.Equal(t, http.StatusOK, listResp.StatusCode)

	var stakes []map[string]any
	require.NoError(t, json.NewDecoder(listResp.Body).Decode(&stakes))
	require.Len(t, stakes, 1)
	assert.Equal(t, "pool-1", stakes[0]["poolId"])
	// 30-day lock just created counts down from "29d 23h"
	assert.Contains(t, stakes[0]["timeRemaining"], "d ")
}

func TestStake_Rejections(t *testing.T) {
	env := setupServer(t)
	env.fund(t, 0, 100)

	// Below pool minimum
	resp, body := env.do(t, http.MethodPost, "/api/v1/stakes",
		map[string]any{"poolId": "pool-1", "amount": 5}, testWallet)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "below_minimum_stake", body["error"])

	// Above pool maximum
	resp, body = env.do(t, http.MethodPost, "/api/v1/stakes",
		map[string]any{"poolId": "pool-1", "amount": 20000}, testWallet)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "above_maximum_stake", body["error"])

	// More than the balance
	resp, body = env.do(t, http.MethodPost, "/api/v1/stakes",
		map[string]any{"poolId": "pool-1", "amount": 500}, testWallet)
	assert.Equal(t, http.StatusPaymentRequired, resp.StatusCode)
	assert.Equal(t, "insufficient_balance", body["error"])

	// Unknown pool
	resp, body = env.do(t, http.MethodPost, "/api/v1/stakes",
		map[string]any{"poolId": "pool-999", "amount": 50}, testWallet)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "pool_not_found", body["error"])

	// Non-positive amount
	resp, _ = env.do(t, http.MethodPost, "/api/v1/stakes",
		map[string]any{"poolId": "pool-1", "amount": 0}, testWallet)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestWithdraw_StillLocked(t *testing.T) {
	env := setupServer(t)
	env.fund(t, 0, 100)

	resp, body := env.do(t, http.MethodPost, "/api/v1/stakes",
		map[string]any{"poolId": "pool-1", "amount": 50}, testWallet)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	stakedAt, err := time.Parse(time.RFC3339Nano, body["stakedAt"].(string))
	require.NoError(t, err)

	resp, body = env.do(t, http.MethodPost, "/api/v1/stakes/withdraw",
		map[string]any{"poolId": "pool-1", "stakedAt": stakedAt}, testWallet)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "still_locked", body["error"])
}

func TestWithdraw_NotFound(t *testing.T) {
	env := setupServer(t)
	env.fund(t, 0, 100)

	resp, body := env.do(t, http.MethodPost, "/api/v1/stakes/withdraw",
		map[string]any{"poolId": "pool-1", "stakedAt": time.Now()}, testWallet)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "stake_not_found", body["error"])
}

// --- Full flow ---

func TestEarnConvertStakeFlow(t *testing.T) {
	env := setupServer(t)

	// Watch enough videos to cover the smallest tier: 10+15+18+20+14+12+...
	// Videos 1..6 pay 10,15,12,14,18,20 = 89; claim all, then fund the rest.
	durations := map[int]int{1: 330, 2: 495, 3: 405, 4: 440, 5: 550, 6: 685}
	for id, dur := range durations {
		resp, _ := env.do(t, http.MethodPost, "/api/v1/videos/"+strconv.Itoa(id)+"/claim",
			map[string]any{"watchedSeconds": dur}, testWallet)
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}
	env.fund(t, 11, 0) // 89 earned + 11 = 100

	resp, _ := env.do(t, http.MethodPost, "/api/v1/conversions",
		map[string]any{"tierId": "tier-100"}, testWallet)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := env.do(t, http.MethodGet, "/api/v1/account", nil, testWallet)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	acct := body["account"].(map[string]any)
	assert.Equal(t, float64(0), acct["pointsBalance"])
	assert.InDelta(t, 1.0, acct["tokenBalance"].(float64), 1e-9)
	history := body["conversionHistory"].([]any)
	assert.Len(t, history, 1)
}
