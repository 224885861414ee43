// Package gasprice keeps the latest gas prices of the target chain.
package gasprice

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync/atomic"
	"time"

	"github.com/NethermindEth/rosettanet/core/felt"
	"github.com/NethermindEth/rosettanet/metrics"
	"github.com/NethermindEth/rosettanet/utils"
	"github.com/prometheus/client_golang/prometheus"
)

var ErrNotSynced = errors.New("gas price is not synced yet")

var priceGauge = prometheus.NewGaugeVec(prometheus.GaugeOpts{
	Namespace: "gas_price",
	Name:      "fri",
}, []string{"resource"})

// Caller is a JSON-RPC endpoint.
type Caller interface {
	Call(ctx context.Context, method string, params, result any) error
}

// Price holds the prices of one block. Fri prices carry a 10% margin.
type Price struct {
	BlockNumber  uint64
	L1GasWei     *felt.Felt
	L1GasFri     *felt.Felt
	L1DataGasWei *felt.Felt
	L1DataGasFri *felt.Felt
	L2GasFri     *felt.Felt
}

type Cache struct {
	client   Caller
	interval time.Duration
	log      utils.SimpleLogger
	price    atomic.Pointer[Price]
}

func New(client Caller, interval time.Duration, log utils.SimpleLogger) *Cache {
	metrics.MustRegister(priceGauge)
	return &Cache{client: client, interval: interval, log: log}
}

// GasPrice returns the latest prices, or ErrNotSynced before the first update.
func (c *Cache) GasPrice() (*Price, error) {
	p := c.price.Load()
	if p == nil {
		return nil, ErrNotSynced
	}
	return p, nil
}

// Run refreshes the prices every interval until ctx is cancelled. Failed updates
// keep the previous prices.
func (c *Cache) Run(ctx context.Context) error {
	c.refresh(ctx)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			c.refresh(ctx)
		}
	}
}

func (c *Cache) refresh(ctx context.Context) {
	if err := c.Update(ctx); err != nil && ctx.Err() == nil {
		c.log.Warnw("Failed to update gas price", "err", err)
	}
}

type blockHashAndNumber struct {
	BlockHash   *felt.Felt `json:"block_hash"`
	BlockNumber uint64     `json:"block_number"`
}

type resourcePrice struct {
	PriceInFri *felt.Felt `json:"price_in_fri"`
	PriceInWei *felt.Felt `json:"price_in_wei"`
}

type blockHeader struct {
	L1GasPrice     resourcePrice `json:"l1_gas_price"`
	L1DataGasPrice resourcePrice `json:"l1_data_gas_price"`
	L2GasPrice     resourcePrice `json:"l2_gas_price"`
}

// Update fetches the prices of the latest block.
func (c *Cache) Update(ctx context.Context) error {
	var head blockHashAndNumber
	if err := c.client.Call(ctx, "starknet_blockHashAndNumber", nil, &head); err != nil {
		return fmt.Errorf("starknet_blockHashAndNumber: %w", err)
	}
	if head.BlockHash == nil {
		return errors.New("starknet_blockHashAndNumber returned no block hash")
	}

	var header blockHeader
	params := map[string]any{"block_id": map[string]any{"block_hash": head.BlockHash}}
	if err := c.client.Call(ctx, "starknet_getBlockWithTxHashes", params, &header); err != nil {
		return fmt.Errorf("starknet_getBlockWithTxHashes %s: %w", head.BlockHash, err)
	}
	if header.L1GasPrice.PriceInFri == nil || header.L1GasPrice.PriceInWei == nil {
		return fmt.Errorf("block %d has no l1 gas price", head.BlockNumber)
	}

	p := &Price{
		BlockNumber:  head.BlockNumber,
		L1GasWei:     header.L1GasPrice.PriceInWei,
		L1GasFri:     withMargin(header.L1GasPrice.PriceInFri),
		L1DataGasWei: orZero(header.L1DataGasPrice.PriceInWei),
		L1DataGasFri: withMargin(orZero(header.L1DataGasPrice.PriceInFri)),
		L2GasFri:     withMargin(orZero(header.L2GasPrice.PriceInFri)),
	}
	c.price.Store(p)

	observe("l1_gas", p.L1GasFri)
	observe("l1_data_gas", p.L1DataGasFri)
	observe("l2_gas", p.L2GasFri)
	c.log.Debugw("Updated gas price", "block", p.BlockNumber, "l1GasFri", p.L1GasFri)
	return nil
}

// withMargin adds 10% to a price.
func withMargin(price *felt.Felt) *felt.Felt {
	v := price.BigInt(new(big.Int))
	v.Mul(v, big.NewInt(110))
	v.Div(v, big.NewInt(100))
	return new(felt.Felt).SetBytes(v.Bytes())
}

func orZero(f *felt.Felt) *felt.Felt {
	if f == nil {
		return new(felt.Felt)
	}
	return f
}

func observe(resource string, price *felt.Felt) {
	v, _ := new(big.Float).SetInt(price.BigInt(new(big.Int))).Float64()
	priceGauge.WithLabelValues(resource).Set(v)
}
