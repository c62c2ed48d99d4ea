package tonapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GlebRadaev/playlives/pkg/clients"
)

const (
	payAddr = "0:1111111111111111111111111111111111111111111111111111111111111111"
	player  = "0:2222222222222222222222222222222222222222222222222222222222222222"
	jetton  = "0:3333333333333333333333333333333333333333333333333333333333333333"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	httpClient := clients.NewHTTPClient(clients.RetryConfig{MaxRetries: 1, BaseDelay: time.Millisecond, MaxDelay: time.Millisecond})
	return NewClient(srv.URL+"/", "secret", httpClient)
}

func TestClient_GetEventByHash(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/events/abc", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"event_id":"abc","timestamp":1700000000,"actions":[
			{"type":"TonTransfer","status":"ok","TonTransfer":{"sender":{"address":"` + player + `"},"recipient":{"address":"` + payAddr + `"},"amount":200000000}}
		]}`))
	})

	event, err := client.GetEventByHash(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, "abc", event.EventID)
	require.Len(t, event.Actions, 1)
	assert.Equal(t, int64(200000000), event.Actions[0].TonTransfer.Amount)
}

func TestClient_StatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		err    error
	}{
		{"not found", http.StatusNotFound, ErrNotFound},
		{"unavailable", http.StatusServiceUnavailable, ErrUnavailable},
		{"rate limited", http.StatusTooManyRequests, ErrUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			})
			_, err := client.GetEventByHash(context.Background(), "abc")
			assert.ErrorIs(t, err, tt.err)
		})
	}

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("bad hash"))
	})
	_, err := client.GetEventByHash(context.Background(), "abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad hash")
}

func TestClient_GetEvents(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/accounts/"+payAddr+"/events", r.URL.Path)
		assert.Equal(t, "20", r.URL.Query().Get("limit"))
		_, _ = w.Write([]byte(`{"events":[{"event_id":"e1"},{"event_id":"e2"}]}`))
	})

	events, err := client.GetEvents(context.Background(), payAddr, 20)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "e2", events[1].EventID)
}

func TestClient_GetJettonBalance(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, player) {
			_, _ = w.Write([]byte(`{"balance":"2500000000000","jetton":{"address":"` + jetton + `","decimals":9}}`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	})

	balance, err := client.GetJettonBalance(context.Background(), player, jetton)
	require.NoError(t, err)
	assert.InDelta(t, 2500.0, balance, 1e-9)

	balance, err = client.GetJettonBalance(context.Background(), payAddr, jetton)
	require.NoError(t, err)
	assert.Zero(t, balance)
}

func TestClient_GetRate(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rates", r.URL.Path)
		assert.Equal(t, "ton", r.URL.Query().Get("tokens"))
		assert.Equal(t, "usd", r.URL.Query().Get("currencies"))
		_, _ = w.Write([]byte(`{"rates":{"TON":{"prices":{"USD":5.25}}}}`))
	})

	rate, err := client.GetRate(context.Background(), "TON", "USD")
	require.NoError(t, err)
	assert.InDelta(t, 5.25, rate, 1e-9)

	_, err = client.GetRate(context.Background(), "TON", "EUR")
	assert.ErrorIs(t, err, ErrRateMissing)
}

func TestClient_VerifyTransfer(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"event_id":"abc","actions":[
			{"type":"TonTransfer","status":"ok","TonTransfer":{"sender":{"address":"` + player + `"},"recipient":{"address":"` + jetton + `"},"amount":5}}
		]}`))
	})

	_, err := client.VerifyTransfer(context.Background(), "abc", payAddr)
	assert.ErrorIs(t, err, ErrNoTransfer)

	transfer, err := client.VerifyTransfer(context.Background(), "abc", RawToFriendly(jetton))
	require.NoError(t, err)
	assert.Equal(t, int64(5), transfer.Amount)
	assert.Equal(t, player, transfer.Sender)
}

func TestFindTransfer(t *testing.T) {
	friendly := RawToFriendly(payAddr)
	event := &Event{
		EventID: "e1",
		Actions: []Action{
			{Type: "TonTransfer", Status: "failed", TonTransfer: &TonTransfer{Recipient: Account{Address: payAddr}, Amount: 100}},
			{Type: "JettonTransfer", Status: "ok", JettonTransfer: &JettonTransfer{
				Sender:    &Account{Address: player},
				Recipient: &Account{Address: payAddr},
				Amount:    "777",
				Jetton:    JettonInfo{Address: jetton, Decimals: 9},
			}},
			{Type: "TonTransfer", Status: "ok", TonTransfer: &TonTransfer{Recipient: Account{Address: payAddr}, Amount: 100}},
		},
	}

	transfer, ok := FindTransfer(event, friendly)
	require.True(t, ok)
	assert.Equal(t, int64(777), transfer.Amount)
	assert.Equal(t, jetton, transfer.Token)
	assert.Equal(t, payAddr, transfer.Recipient)

	_, ok = FindTransfer(&Event{InProgress: true, Actions: event.Actions}, payAddr)
	assert.False(t, ok)
	_, ok = FindTransfer(nil, payAddr)
	assert.False(t, ok)
}

func TestAddressHelpers(t *testing.T) {
	friendly := RawToFriendly(payAddr)
	assert.NotEqual(t, payAddr, friendly)
	assert.Equal(t, payAddr, NormalizeAddress(friendly))
	assert.Equal(t, "garbage", NormalizeAddress("garbage"))
	assert.Equal(t, "", NormalizeAddress(""))
	assert.InDelta(t, 1.5, NanoToTON(1_500_000_000), 1e-12)
	assert.InDelta(t, 0.25, JettonUnitsToAmount("250", 3), 1e-12)
	assert.Zero(t, JettonUnitsToAmount("x", 3))
}
