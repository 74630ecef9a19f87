// Package nodeclient provides an HTTP client for the node REST API.
package nodeclient

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/danilovkiri/dk_go_cryptochain/internal/api/rest/modeldto"
	"github.com/danilovkiri/dk_go_cryptochain/internal/blockchain"
	"github.com/danilovkiri/dk_go_cryptochain/internal/service/modelnode"
	"github.com/danilovkiri/dk_go_cryptochain/internal/wallet"
)

const (
	defaultTimeout = 10 * time.Second
	retryCount     = 3
	retryWait      = 100 * time.Millisecond
	retryMaxWait   = time.Second
)

// APIError is returned when the node answers with a non-2xx status.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("node responded with %d: %s", e.StatusCode, e.Message)
}

// Client talks to a single node.
type Client struct {
	client *resty.Client
}

// New initializes a Client for the node at baseURL. A non-positive timeout falls back to the default one.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json").
		SetRetryCount(retryCount).
		SetRetryWaitTime(retryWait).
		SetRetryMaxWaitTime(retryMaxWait).
		AddRetryCondition(retryIdempotent)
	return &Client{client: client}
}

// retryIdempotent retries GET requests that failed on transport or with a server error.
func retryIdempotent(r *resty.Response, err error) bool {
	if r == nil || r.Request == nil || r.Request.Method != http.MethodGet {
		return false
	}
	return err != nil || r.StatusCode() >= http.StatusInternalServerError
}

// Blockchain returns the whole chain of the node.
func (c *Client) Blockchain(ctx context.Context) ([]blockchain.Block, error) {
	var chain []blockchain.Block
	err := c.get(ctx, "/blockchain", nil, &chain)
	return chain, err
}

// BlockchainRange returns the blocks in [start, end) counted from the newest one.
func (c *Client) BlockchainRange(ctx context.Context, start, end int) ([]blockchain.Block, error) {
	var chain []blockchain.Block
	params := map[string]string{
		"start": strconv.Itoa(start),
		"end":   strconv.Itoa(end),
	}
	err := c.get(ctx, "/blockchain/range", params, &chain)
	return chain, err
}

// BlockchainLength returns the number of blocks of the node chain.
func (c *Client) BlockchainLength(ctx context.Context) (int, error) {
	var length int
	err := c.get(ctx, "/blockchain/length", nil, &length)
	return length, err
}

// Mine makes the node mine its pooled transactions.
func (c *Client) Mine(ctx context.Context) (blockchain.Block, error) {
	var block blockchain.Block
	var apiErr modeldto.ResponseError
	res, err := c.client.R().
		SetContext(ctx).
		SetResult(&block).
		SetError(&apiErr).
		Post("/blockchain/mine")
	return block, check(res, err, apiErr)
}

// Transact makes the node wallet send amount to recipient.
func (c *Client) Transact(ctx context.Context, recipient string, amount int64) (wallet.Transaction, error) {
	var transaction wallet.Transaction
	var apiErr modeldto.ResponseError
	res, err := c.client.R().
		SetContext(ctx).
		SetBody(modeldto.RequestTransact{Recipient: recipient, Amount: amount}).
		SetResult(&transaction).
		SetError(&apiErr).
		Post("/wallet/transact")
	return transaction, check(res, err, apiErr)
}

// WalletInfo returns the node wallet address and balance.
func (c *Client) WalletInfo(ctx context.Context) (modelnode.WalletInfo, error) {
	var info modelnode.WalletInfo
	err := c.get(ctx, "/wallet/info", nil, &info)
	return info, err
}

// KnownAddresses returns every address seen on the node chain.
func (c *Client) KnownAddresses(ctx context.Context) ([]string, error) {
	var addresses []string
	err := c.get(ctx, "/known-addresses", nil, &addresses)
	return addresses, err
}

// Transactions returns the transactions pooled by the node.
func (c *Client) Transactions(ctx context.Context) ([]wallet.Transaction, error) {
	var transactions []wallet.Transaction
	err := c.get(ctx, "/transactions", nil, &transactions)
	return transactions, err
}

func (c *Client) get(ctx context.Context, path string, params map[string]string, result interface{}) error {
	var apiErr modeldto.ResponseError
	res, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(params).
		SetResult(result).
		SetError(&apiErr).
		Get(path)
	return check(res, err, apiErr)
}

func check(res *resty.Response, err error, apiErr modeldto.ResponseError) error {
	if err != nil {
		return err
	}
	if res.IsError() {
		message := apiErr.Message
		if message == "" {
			message = http.StatusText(res.StatusCode())
		}
		return &APIError{StatusCode: res.StatusCode(), Message: message}
	}
	return nil
}
