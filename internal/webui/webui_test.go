package webui

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/danilovkiri/dk_go_cryptochain/internal/blockchain"
	"github.com/danilovkiri/dk_go_cryptochain/internal/config"
	"github.com/danilovkiri/dk_go_cryptochain/internal/nodeclient"
	"github.com/danilovkiri/dk_go_cryptochain/internal/service/modelnode"
	"github.com/danilovkiri/dk_go_cryptochain/internal/wallet"
)

type rangeCall struct {
	start, end int
}

// fakeBackend serves a fixed node state.
type fakeBackend struct {
	mu           sync.Mutex
	err          error
	transactErr  error
	length       int
	blocks       []blockchain.Block
	addresses    []string
	transactions []wallet.Transaction
	ranges       []rangeCall
	transacted   map[string]int64
	mined        int
}

func (f *fakeBackend) WalletInfo(context.Context) (modelnode.WalletInfo, error) {
	return modelnode.WalletInfo{Address: "node_address", Balance: 1050}, f.err
}

func (f *fakeBackend) BlockchainRange(_ context.Context, start, end int) ([]blockchain.Block, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ranges = append(f.ranges, rangeCall{start: start, end: end})
	return f.blocks, f.err
}

func (f *fakeBackend) BlockchainLength(context.Context) (int, error) {
	return f.length, f.err
}

func (f *fakeBackend) KnownAddresses(context.Context) ([]string, error) {
	return f.addresses, f.err
}

func (f *fakeBackend) Transactions(context.Context) ([]wallet.Transaction, error) {
	return f.transactions, f.err
}

func (f *fakeBackend) Transact(_ context.Context, recipient string, amount int64) (wallet.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.transactErr != nil {
		return wallet.Transaction{}, f.transactErr
	}
	f.transacted[recipient] += amount
	return wallet.Transaction{}, nil
}

func (f *fakeBackend) Mine(context.Context) (blockchain.Block, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.mined++
	return blockchain.Block{}, f.err
}

type WebUITestSuite struct {
	suite.Suite
	backend *fakeBackend
	ts      *httptest.Server
	client  *resty.Client
}

func (suite *WebUITestSuite) SetupTest() {
	w, err := wallet.New(nil)
	suite.Require().NoError(err)
	tx, err := wallet.NewTransaction(w, "foo_recipient", 42)
	suite.Require().NoError(err)
	block := blockchain.Genesis()
	block.Timestamp = time.Now().Add(-time.Hour).UnixNano()
	block.Hash = "00a7c1b2d3e4f5a6b7c8d9e0f1a2b3c4"
	block.Data = []wallet.Transaction{*tx}

	suite.backend = &fakeBackend{
		length:       12,
		blocks:       []blockchain.Block{block},
		addresses:    []string{"foo_recipient", "bar_recipient"},
		transactions: []wallet.Transaction{*tx},
		transacted:   make(map[string]int64),
	}
	r, err := NewRouter(suite.backend)
	suite.Require().NoError(err)
	suite.ts = httptest.NewServer(r)
	suite.client = resty.New().SetBaseURL(suite.ts.URL).SetRedirectPolicy(resty.RedirectPolicyFunc(func(req *http.Request, via []*http.Request) error {
		return http.ErrUseLastResponse
	}))
}

func (suite *WebUITestSuite) TearDownTest() {
	suite.ts.Close()
}

// TestWebUITestSuite initializes test suite for being accessible
func TestWebUITestSuite(t *testing.T) {
	suite.Run(t, new(WebUITestSuite))
}

func (suite *WebUITestSuite) get(path string) *resty.Response {
	res, err := suite.client.R().Get(path)
	suite.Require().NoError(err)
	return res
}

func (suite *WebUITestSuite) TestViews() {
	for _, route := range Routes() {
		suite.T().Run(route.View, func(t *testing.T) {
			res := suite.get(route.Path)
			assert.Equal(t, http.StatusOK, res.StatusCode())
			assert.Contains(t, res.Header().Get("Content-Type"), "text/html")
			assert.Contains(t, string(res.Body()), `data-view="`+route.View+`"`)
		})
	}
}

func (suite *WebUITestSuite) TestApp() {
	body := string(suite.get("/").Body())
	assert.Contains(suite.T(), body, "node_address")
	assert.Contains(suite.T(), body, "1,050")
}

func (suite *WebUITestSuite) TestBlockchain() {
	body := string(suite.get("/blockchain").Body())
	assert.Contains(suite.T(), body, "00a7c1b2d3e4f5a...")
	assert.Contains(suite.T(), body, "1 hour ago")
	assert.Contains(suite.T(), body, `<a href="/blockchain?page=3">3</a>`)
	assert.Contains(suite.T(), body, "<strong>1</strong>")
	assert.Contains(suite.T(), body, "foo_recipient")

	res := suite.get("/blockchain?page=2")
	assert.Equal(suite.T(), http.StatusOK, res.StatusCode())
	assert.Contains(suite.T(), string(res.Body()), "<strong>2</strong>")
	assert.Equal(suite.T(), []rangeCall{{start: 0, end: 5}, {start: 5, end: 10}}, suite.backend.ranges)

	res = suite.get("/blockchain?page=zero")
	assert.Equal(suite.T(), http.StatusBadRequest, res.StatusCode())
}

func (suite *WebUITestSuite) TestConductTransaction() {
	body := string(suite.get("/conduct-transaction").Body())
	assert.Contains(suite.T(), body, "<li>bar_recipient</li>")

	res, err := suite.client.R().
		SetFormData(map[string]string{"recipient": "bar_recipient", "amount": "15"}).
		Post("/conduct-transaction")
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusSeeOther, res.StatusCode())
	assert.Equal(suite.T(), "/transaction-pool", res.Header().Get("Location"))
	assert.Equal(suite.T(), map[string]int64{"bar_recipient": 15}, suite.backend.transacted)
}

func (suite *WebUITestSuite) TestConductTransaction_Fail() {
	res, err := suite.client.R().
		SetFormData(map[string]string{"recipient": "bar_recipient", "amount": "lots"}).
		Post("/conduct-transaction")
	suite.Require().NoError(err)
	assert.Equal(suite.T(), http.StatusBadRequest, res.StatusCode())
	assert.Contains(suite.T(), string(res.Body()), "amount must be a whole number")
	assert.Contains(suite.T(), string(res.Body()), `value="bar_recipient"`)

	suite.backend.transactErr = &nodeclient.APIError{StatusCode: http.StatusBadRequest, Message: "amount exceeds balance"}
	res, err = suite.client.R().
		SetFormData(map[string]string{"recipient": "bar_recipient", "amount": "5000"}).
		Post("/conduct-transaction")
	suite.Require().NoError(err)
	assert.Equal(suite.T(), http.StatusBadRequest, res.StatusCode())
	assert.Contains(suite.T(), string(res.Body()), "amount exceeds balance")
	assert.Empty(suite.T(), suite.backend.transacted)
}

func (suite *WebUITestSuite) TestTransactionPool() {
	body := string(suite.get("/transaction-pool").Body())
	assert.Contains(suite.T(), body, "foo_recipient")
	assert.Contains(suite.T(), body, "Sent: 42")

	res, err := suite.client.R().Post("/transaction-pool/mine")
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusSeeOther, res.StatusCode())
	assert.Equal(suite.T(), "/blockchain", res.Header().Get("Location"))
	assert.Equal(suite.T(), 1, suite.backend.mined)
}

func (suite *WebUITestSuite) TestBackendError() {
	suite.backend.err = errors.New("node unreachable")
	for _, route := range Routes() {
		suite.T().Run(route.View, func(t *testing.T) {
			res := suite.get(route.Path)
			assert.Equal(t, http.StatusBadGateway, res.StatusCode())
			assert.Contains(t, string(res.Body()), "node unreachable")
		})
	}
	res, err := suite.client.R().Post("/transaction-pool/mine")
	suite.Require().NoError(err)
	assert.Equal(suite.T(), http.StatusBadGateway, res.StatusCode())
}

func (suite *WebUITestSuite) TestNotFound() {
	assert.Equal(suite.T(), http.StatusNotFound, suite.get("/wallet").StatusCode())
}

// Tests

func TestRoutes(t *testing.T) {
	assert.Equal(t, []Route{
		{Path: "/", View: "App"},
		{Path: "/blockchain", View: "Blockchain"},
		{Path: "/conduct-transaction", View: "ConductTransaction"},
		{Path: "/transaction-pool", View: "TransactionPool"},
	}, Routes())
}

func TestPageNumbers(t *testing.T) {
	assert.Empty(t, pageNumbers(0))
	assert.Equal(t, []int{1}, pageNumbers(5))
	assert.Equal(t, []int{1, 2}, pageNumbers(6))
}

func TestInitServer(t *testing.T) {
	cfg := config.NewDefaultConfiguration()
	srv, err := InitServer(cfg, &fakeBackend{})
	require.NoError(t, err)
	assert.Equal(t, cfg.FrontendAddress, srv.Addr)

	_, err = InitServer(cfg, nil)
	assert.Error(t, err)
}
