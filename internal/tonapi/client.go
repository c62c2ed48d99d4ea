package tonapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/tonkeeper/tongo/ton"
	"go.uber.org/zap"

	"github.com/GlebRadaev/playlives/pkg/clients"
)

var (
	ErrNotFound      = errors.New("tonapi: not found")
	ErrRateMissing   = errors.New("tonapi: rate missing")
	ErrNoTransfer    = errors.New("tonapi: no transfer to recipient")
	ErrUnavailable   = errors.New("tonapi: unavailable")
	errInvalidAmount = errors.New("tonapi: invalid amount")
)

type Client struct {
	baseURL string
	apiKey  string
	client  clients.HTTPClientI
}

func NewClient(baseURL, apiKey string, client clients.HTTPClientI) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		client:  client,
	}
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	headers := http.Header{}
	headers.Set("Accept", "application/json")
	if c.apiKey != "" {
		headers.Set("Authorization", "Bearer "+c.apiKey)
	}

	status, body, _, err := c.client.Get(ctx, c.baseURL+path, headers)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	switch {
	case status == http.StatusNotFound:
		return ErrNotFound
	case status >= http.StatusInternalServerError || status == http.StatusTooManyRequests:
		return fmt.Errorf("%w: status %d", ErrUnavailable, status)
	case status >= http.StatusBadRequest:
		return fmt.Errorf("tonapi error %d: %s", status, string(body))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("unmarshal %s: %w", path, err)
	}
	return nil
}

func (c *Client) GetEventByHash(ctx context.Context, txHash string) (*Event, error) {
	var event Event
	if err := c.get(ctx, "/events/"+url.PathEscape(txHash), &event); err != nil {
		return nil, err
	}
	return &event, nil
}

func (c *Client) GetEvents(ctx context.Context, address string, limit int) ([]Event, error) {
	var resp EventsResponse
	path := fmt.Sprintf("/accounts/%s/events?limit=%d", url.PathEscape(address), limit)
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, err
	}
	return resp.Events, nil
}

// GetJettonBalance returns the wallet's balance of the jetton in whole tokens.
// A wallet that never held the jetton has a zero balance.
func (c *Client) GetJettonBalance(ctx context.Context, wallet, jettonMaster string) (float64, error) {
	var resp JettonBalance
	path := fmt.Sprintf("/accounts/%s/jettons/%s", url.PathEscape(wallet), url.PathEscape(jettonMaster))
	err := c.get(ctx, path, &resp)
	if errors.Is(err, ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return JettonUnitsToAmount(resp.Balance, resp.Jetton.Decimals), nil
}

// GetRate returns the price of token in currency, e.g. GetRate(ctx, "TON", "USD").
func (c *Client) GetRate(ctx context.Context, token, currency string) (float64, error) {
	var resp RatesResponse
	path := fmt.Sprintf("/rates?tokens=%s&currencies=%s", url.QueryEscape(strings.ToLower(token)), url.QueryEscape(strings.ToLower(currency)))
	if err := c.get(ctx, path, &resp); err != nil {
		return 0, err
	}
	for name, rates := range resp.Rates {
		if !strings.EqualFold(name, token) {
			continue
		}
		for cur, price := range rates.Prices {
			if strings.EqualFold(cur, currency) && price > 0 {
				return price, nil
			}
		}
	}
	return 0, ErrRateMissing
}

// VerifyTransfer fetches the event for txHash and returns its transfer to recipient.
func (c *Client) VerifyTransfer(ctx context.Context, txHash, recipient string) (*Transfer, error) {
	event, err := c.GetEventByHash(ctx, txHash)
	if err != nil {
		return nil, err
	}
	if t, ok := FindTransfer(event, recipient); ok {
		return t, nil
	}
	zap.L().Warn("event carries no transfer to recipient",
		zap.String("tx_hash", txHash), zap.String("recipient", recipient), zap.Int("actions", len(event.Actions)))
	return nil, ErrNoTransfer
}

// FindTransfer returns the first successful TON or jetton transfer to recipient in event.
// Jetton transfers carry the jetton master address as their token.
func FindTransfer(event *Event, recipient string) (*Transfer, bool) {
	if event == nil || event.InProgress {
		return nil, false
	}
	want := NormalizeAddress(recipient)
	for _, a := range event.Actions {
		if a.Status != "" && a.Status != "ok" {
			continue
		}
		switch {
		case a.TonTransfer != nil:
			tt := a.TonTransfer
			if NormalizeAddress(tt.Recipient.Address) != want || tt.Amount <= 0 {
				continue
			}
			return &Transfer{
				EventID:   event.EventID,
				Sender:    NormalizeAddress(tt.Sender.Address),
				Recipient: want,
				Amount:    tt.Amount,
				Token:     TokenTON,
				Timestamp: event.Timestamp,
			}, true
		case a.JettonTransfer != nil:
			jt := a.JettonTransfer
			if jt.Recipient == nil || NormalizeAddress(jt.Recipient.Address) != want {
				continue
			}
			amount, err := parseUnits(jt.Amount)
			if err != nil || amount <= 0 {
				continue
			}
			var sender string
			if jt.Sender != nil {
				sender = NormalizeAddress(jt.Sender.Address)
			}
			return &Transfer{
				EventID:   event.EventID,
				Sender:    sender,
				Recipient: want,
				Amount:    amount,
				Token:     NormalizeAddress(jt.Jetton.Address),
				Timestamp: event.Timestamp,
			}, true
		}
	}
	return nil, false
}

func parseUnits(units string) (int64, error) {
	v, err := strconv.ParseInt(units, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", errInvalidAmount, units)
	}
	return v, nil
}

func NanoToTON(nano int64) float64 {
	return float64(nano) / 1e9
}

// JettonUnitsToAmount converts jetton units to whole tokens. Unparseable input yields 0.
func JettonUnitsToAmount(units string, decimals int) float64 {
	val, err := strconv.ParseInt(units, 10, 64)
	if err != nil {
		return 0
	}
	return float64(val) / math.Pow10(decimals)
}

// NormalizeAddress converts any address format to raw (0:...). Unparseable input is returned unchanged.
func NormalizeAddress(addr string) string {
	if addr == "" {
		return ""
	}
	acc, err := ton.ParseAccountID(addr)
	if err != nil {
		return addr
	}
	return acc.String()
}

// RawToFriendly renders an address in the bounceable user-friendly form.
func RawToFriendly(raw string) string {
	if raw == "" {
		return ""
	}
	acc, err := ton.ParseAccountID(raw)
	if err != nil {
		return raw
	}
	return acc.ToHuman(true, false)
}
