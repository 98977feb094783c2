package rest_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onflow/inheritance-guard/access"
	"github.com/onflow/inheritance-guard/engine/rest"
	"github.com/onflow/inheritance-guard/engine/rest/models"
	"github.com/onflow/inheritance-guard/guard"
	"github.com/onflow/inheritance-guard/model/vault"
	"github.com/onflow/inheritance-guard/utils/unittest"
)

const window = 90 * 24 * time.Hour

type memState struct {
	last *vault.Snapshot
}

func (s *memState) Store(snapshot *vault.Snapshot) error {
	return s.Save(snapshot)
}

func (s *memState) Save(snapshot *vault.Snapshot) error {
	s.last = snapshot
	return nil
}

func (s *memState) Retrieve() (*vault.Snapshot, error) {
	return s.last, nil
}

type testAPI struct {
	router  http.Handler
	clock   *unittest.FakeClock
	owner   vault.Address
	heirs   []vault.Address
	backend *access.Backend
}

func setup(t *testing.T, heirCount int) *testAPI {
	clock := unittest.NewFakeClock(time.Unix(1_700_000_000, 0))
	owner := unittest.AddressFixture()
	heirs := unittest.AddressFixtures(heirCount)

	g, err := guard.New(owner, heirs, window,
		guard.WithClock(clock),
		guard.WithLogger(unittest.Logger()))
	require.NoError(t, err)

	backend := access.NewBackend(unittest.Logger(), g, &memState{})
	router := rest.NewRouter(backend, unittest.Logger())
	return &testAPI{router: router, clock: clock, owner: owner, heirs: heirs, backend: backend}
}

func (a *testAPI) do(t *testing.T, method, path string, caller vault.Address, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, "/v1"+path, &buf)
	if !caller.IsZero() {
		req.Header.Set("X-Caller-Address", caller.Hex())
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func decodeState(t *testing.T, rec *httptest.ResponseRecorder) models.StateResponse {
	t.Helper()
	var state models.StateResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&state))
	return state
}

func TestGetState(t *testing.T) {
	api := setup(t, 2)

	rec := api.do(t, http.MethodGet, "/vault", vault.ZeroAddress, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	state := decodeState(t, rec)
	assert.Equal(t, api.owner.Hex(), state.Owner)
	assert.False(t, state.Inherited)
	assert.Len(t, state.Beneficiaries, 2)
}

func TestDepositAndSend(t *testing.T) {
	api := setup(t, 2)

	rec := api.do(t, http.MethodPost, "/vault/deposits", vault.ZeroAddress, models.DepositRequest{Amount: 100})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uint64(100), decodeState(t, rec).Balance)

	recipient := unittest.AddressFixture()
	rec = api.do(t, http.MethodPost, "/vault/transfers", api.owner, models.SendAssetRequest{
		Amount:    30,
		Recipient: recipient.Hex(),
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uint64(70), decodeState(t, rec).Balance)
}

func TestSendRequiresCallerHeader(t *testing.T) {
	api := setup(t, 2)

	rec := api.do(t, http.MethodPost, "/vault/transfers", vault.ZeroAddress, models.SendAssetRequest{
		Amount:    1,
		Recipient: unittest.AddressFixture().Hex(),
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSendByStrangerForbidden(t *testing.T) {
	api := setup(t, 2)

	rec := api.do(t, http.MethodPost, "/vault/transfers", unittest.AddressFixture(), models.SendAssetRequest{
		Amount:    1,
		Recipient: unittest.AddressFixture().Hex(),
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestBeneficiaryEndpoints(t *testing.T) {
	api := setup(t, 2)

	added := unittest.AddressFixture()
	rec := api.do(t, http.MethodPost, "/vault/beneficiaries", api.owner, models.BeneficiaryRequest{Beneficiary: added.Hex()})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeState(t, rec).Beneficiaries, 3)

	// adding again conflicts
	rec = api.do(t, http.MethodPost, "/vault/beneficiaries", api.owner, models.BeneficiaryRequest{Beneficiary: added.Hex()})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = api.do(t, http.MethodDelete, "/vault/beneficiaries", api.owner, models.BeneficiaryRequest{Beneficiary: added.Hex()})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeState(t, rec).Beneficiaries, 2)

	// removing an unknown beneficiary is a 404
	rec = api.do(t, http.MethodDelete, "/vault/beneficiaries", api.owner, models.BeneficiaryRequest{Beneficiary: added.Hex()})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestInheritFlow(t *testing.T) {
	api := setup(t, 2)

	// before expiry the claim conflicts
	rec := api.do(t, http.MethodPost, "/vault/inherit", api.heirs[0], nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	api.clock.Advance(window)

	// a stranger is forbidden even after expiry
	rec = api.do(t, http.MethodPost, "/vault/inherit", unittest.AddressFixture(), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = api.do(t, http.MethodPost, "/vault/inherit", api.heirs[0], nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decodeState(t, rec).Inherited)
}

func TestWithdrawEndpoint(t *testing.T) {
	api := setup(t, 2)

	rec := api.do(t, http.MethodPost, "/vault/deposits", vault.ZeroAddress, models.DepositRequest{Amount: 100})
	require.Equal(t, http.StatusOK, rec.Code)

	api.clock.Advance(window)
	rec = api.do(t, http.MethodPost, "/vault/inherit", api.heirs[0], nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = api.do(t, http.MethodPost, "/vault/withdrawals", api.heirs[1], nil)
	require.Equal(t, http.StatusOK, rec.Code)
	state := decodeState(t, rec)
	assert.Equal(t, uint64(0), state.Balance)
	assert.Empty(t, state.Beneficiaries)
}

func TestCreateAssetEndpoint(t *testing.T) {
	api := setup(t, 1)

	rec := api.do(t, http.MethodPost, "/vault/assets", api.owner, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.CreateAssetResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, uint64(1), resp.Asset)
}

func TestInteractEndpoint(t *testing.T) {
	api := setup(t, 1)

	rec := api.do(t, http.MethodPost, "/vault/interactions", api.owner, models.InteractRequest{
		Target:  unittest.AddressFixture().Hex(),
		Payload: []byte("hello"),
	})
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestBadAddressRejected(t *testing.T) {
	api := setup(t, 1)

	rec := api.do(t, http.MethodPost, "/vault/transfers", api.owner, models.SendAssetRequest{
		Amount:    1,
		Recipient: "not-an-address",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestErrorBodyShape(t *testing.T) {
	api := setup(t, 1)

	rec := api.do(t, http.MethodPost, "/vault/transfers", unittest.AddressFixture(), models.SendAssetRequest{
		Amount:    1,
		Recipient: unittest.AddressFixture().Hex(),
	})
	require.Equal(t, http.StatusForbidden, rec.Code)

	var body map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, http.StatusText(http.StatusForbidden), body["code"])
	assert.NotEmpty(t, body["message"])
}
