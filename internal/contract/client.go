// Package contract implements the on-chain read layer: ERC-20 metadata,
// V2 pair lookups and router quotes over JSON-RPC, with retry across a
// pool of endpoints.
package contract

import (
	"fmt"
	"math/big"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/chenzhijie/go-web3"
	"github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog/log"

	"github.com/notlelouch/go-interview-practice/bsc-honeypot-detector/internal/models"
)

const retryDelay = 500 * time.Millisecond

type Client struct {
	endpoints []string
	next      uint32

	mu    sync.Mutex
	conns map[string]*web3.Web3
}

func NewClient(rpcURLs []string) *Client {
	return &Client{
		endpoints: rpcURLs,
		conns:     make(map[string]*web3.Web3),
	}
}

// call runs a read-only contract call, rotating through the endpoint pool
// until one succeeds. The starting endpoint advances per call so load spreads
// across the pool.
func (c *Client) call(abiJSON, address, method string, args ...interface{}) (interface{}, error) {
	if len(c.endpoints) == 0 {
		return nil, fmt.Errorf("no rpc endpoints configured")
	}

	start := int(atomic.AddUint32(&c.next, 1))
	var lastErr error
	for i := 0; i < len(c.endpoints); i++ {
		if i > 0 {
			time.Sleep(retryDelay)
		}
		endpoint := c.endpoints[(start+i)%len(c.endpoints)]

		w3, err := c.connect(endpoint)
		if err != nil {
			lastErr = err
			continue
		}
		instance, err := w3.Eth.NewContract(abiJSON, address)
		if err != nil {
			lastErr = err
			continue
		}
		out, err := instance.Call(method, args...)
		if err == nil {
			return out, nil
		}
		lastErr = err
		log.Debug().Err(err).Str("endpoint", endpoint).Str("method", method).Msg("contract call failed, rotating endpoint")
	}
	return nil, lastErr
}

func (c *Client) connect(endpoint string) (*web3.Web3, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if w3, ok := c.conns[endpoint]; ok {
		return w3, nil
	}
	w3, err := web3.NewWeb3(endpoint)
	if err != nil {
		return nil, err
	}
	c.conns[endpoint] = w3
	return w3, nil
}

// TokenMetadata reads name, symbol, decimals and totalSupply from an ERC-20
// contract. Any failed read means the contract does not conform and the token
// cannot be assessed.
func (c *Client) TokenMetadata(address string) (*models.TokenMetadata, error) {
	name, err := c.call(erc20ABI, address, "name")
	if err != nil {
		return nil, fmt.Errorf("name(): %w", err)
	}
	symbol, err := c.call(erc20ABI, address, "symbol")
	if err != nil {
		return nil, fmt.Errorf("symbol(): %w", err)
	}
	decimals, err := c.call(erc20ABI, address, "decimals")
	if err != nil {
		return nil, fmt.Errorf("decimals(): %w", err)
	}
	totalSupply, err := c.call(erc20ABI, address, "totalSupply")
	if err != nil {
		return nil, fmt.Errorf("totalSupply(): %w", err)
	}

	nameStr, ok := name.(string)
	if !ok {
		return nil, fmt.Errorf("name(): unexpected type %T", name)
	}
	symbolStr, ok := symbol.(string)
	if !ok {
		return nil, fmt.Errorf("symbol(): unexpected type %T", symbol)
	}
	supply, err := asBigInt(totalSupply)
	if err != nil {
		return nil, fmt.Errorf("totalSupply(): %w", err)
	}

	return &models.TokenMetadata{
		Name:        nameStr,
		Symbol:      symbolStr,
		Decimals:    asDecimals(decimals),
		TotalSupply: supply.String(),
	}, nil
}

// PairAddress asks a V2 factory for the pair of two tokens. The zero address
// means no pair exists.
func (c *Client) PairAddress(factory, tokenA, tokenB string) (string, error) {
	out, err := c.call(factoryABI, factory, "getPair",
		common.HexToAddress(tokenA), common.HexToAddress(tokenB))
	if err != nil {
		return models.ZeroAddress, err
	}
	addr, err := asAddress(out)
	if err != nil {
		return models.ZeroAddress, fmt.Errorf("getPair: %w", err)
	}
	return addr, nil
}

// PairReserves reads a pair's reserves and constituent tokens. A zero pair
// address yields a nil snapshot without touching the chain.
func (c *Client) PairReserves(pair string) (*models.PairReserves, error) {
	if strings.EqualFold(pair, models.ZeroAddress) {
		return nil, nil
	}

	out, err := c.call(pairABI, pair, "getReserves")
	if err != nil {
		return nil, err
	}
	values, ok := out.([]interface{})
	if !ok || len(values) < 2 {
		return nil, fmt.Errorf("getReserves: unexpected shape %T", out)
	}
	reserve0, err := asBigInt(values[0])
	if err != nil {
		return nil, fmt.Errorf("reserve0: %w", err)
	}
	reserve1, err := asBigInt(values[1])
	if err != nil {
		return nil, fmt.Errorf("reserve1: %w", err)
	}

	token0, err := c.call(pairABI, pair, "token0")
	if err != nil {
		return nil, err
	}
	token1, err := c.call(pairABI, pair, "token1")
	if err != nil {
		return nil, err
	}
	token0Addr, err := asAddress(token0)
	if err != nil {
		return nil, fmt.Errorf("token0: %w", err)
	}
	token1Addr, err := asAddress(token1)
	if err != nil {
		return nil, fmt.Errorf("token1: %w", err)
	}

	return &models.PairReserves{
		Reserve0: reserve0,
		Reserve1: reserve1,
		Token0:   token0Addr,
		Token1:   token1Addr,
	}, nil
}

// AmountsOut quotes a swap along path via the router's getAmountsOut.
func (c *Client) AmountsOut(router string, amountIn *big.Int, path []string) ([]*big.Int, error) {
	addrs := make([]common.Address, len(path))
	for i, p := range path {
		addrs[i] = common.HexToAddress(p)
	}

	out, err := c.call(routerABI, router, "getAmountsOut", amountIn, addrs)
	if err != nil {
		return nil, err
	}
	amounts, ok := out.([]*big.Int)
	if !ok {
		return nil, fmt.Errorf("getAmountsOut: unexpected type %T", out)
	}
	if len(amounts) != len(path) {
		return nil, fmt.Errorf("getAmountsOut: %d amounts for %d hops", len(amounts), len(path))
	}
	return amounts, nil
}

func asBigInt(v interface{}) (*big.Int, error) {
	switch n := v.(type) {
	case *big.Int:
		return n, nil
	case uint64:
		return new(big.Int).SetUint64(n), nil
	default:
		return nil, fmt.Errorf("unexpected numeric type %T", v)
	}
}

func asAddress(v interface{}) (string, error) {
	switch a := v.(type) {
	case common.Address:
		return a.Hex(), nil
	case string:
		return common.HexToAddress(a).Hex(), nil
	default:
		return "", fmt.Errorf("unexpected address type %T", v)
	}
}

// asDecimals tolerates the uint8/uint256 decimals() variants seen in the wild.
func asDecimals(v interface{}) int {
	switch d := v.(type) {
	case uint8:
		return int(d)
	case *big.Int:
		return int(d.Int64())
	case int:
		return d
	default:
		return 18
	}
}
