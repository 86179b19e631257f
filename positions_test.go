package igtrade

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type dealRecorder struct {
	method  string
	version string
	body    map[string]any
}

func positionsServer(t *testing.T, rec *dealRecorder) *Client {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /session", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("CST", "cst")
		w.Header().Set("X-SECURITY-TOKEN", "xst")
		w.Header().Set("Access-Control-Max-Age", "600")
	})
	mux.HandleFunc("GET /positions", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=UTF-8")
		json.NewEncoder(w).Encode(map[string]any{
			"positions": []map[string]any{
				{
					"position": map[string]any{
						"dealId":      "DIAAAAFAKE",
						"direction":   "BUY",
						"dealSize":    2,
						"openLevel":   12940.5,
						"currency":    "GBP",
						"createdDate": "2021/02/10 11:42:56:000",
						"stopLevel":   nil,
						"limitLevel":  12990.0,
					},
					"market": map[string]any{
						"instrumentName": "FTSE 100",
						"epic":           "IX.D.FTSE.DAILY.IP",
						"bid":            12950.0,
						"offer":          12952.0,
					},
				},
			},
		})
	})
	mux.HandleFunc("POST /positions/otc", func(w http.ResponseWriter, r *http.Request) {
		rec.method = r.Header.Get("_method")
		rec.version = r.Header.Get("VERSION")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&rec.body))
		w.Header().Set("Content-Type", "application/json; charset=UTF-8")
		json.NewEncoder(w).Encode(map[string]string{"dealReference": "REF123"})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return NewClient(UserAuth{APIKey: "k", Username: "u", Password: "p"},
		APIConfig{Platform: PlatformLive, BaseURL: server.URL})
}

func TestPositions(t *testing.T) {
	client := positionsServer(t, &dealRecorder{})

	positions, err := client.Positions(context.Background())
	require.NoError(t, err)
	require.Len(t, positions, 1)

	pos := positions[0].Position
	assert.Equal(t, "DIAAAAFAKE", pos.DealID)
	assert.Equal(t, Buy, pos.Direction)
	assert.Equal(t, "12940.5", pos.OpenLevel.String())
	assert.Nil(t, pos.StopLevel)
	require.NotNil(t, pos.LimitLevel)
	assert.Equal(t, "12990", pos.LimitLevel.String())
	assert.Equal(t, "2021-02-10 11:42:56", pos.CreatedDate.Format("2006-01-02 15:04:05"))
	assert.Equal(t, "FTSE 100", positions[0].Market.InstrumentName)
}

func TestCreatePositionDefaults(t *testing.T) {
	rec := &dealRecorder{}
	client := positionsServer(t, rec)

	ref, err := client.CreatePosition(context.Background(), OrderRequest{
		Epic:         "IX.D.FTSE.DAILY.IP",
		Direction:    Buy,
		Size:         decimal.NewFromInt(2),
		CurrencyCode: "GBP",
	})
	require.NoError(t, err)
	assert.Equal(t, "REF123", ref)

	assert.Equal(t, "2", rec.version)
	assert.Empty(t, rec.method)
	assert.Equal(t, "-", rec.body["expiry"], "expiry defaults to non expiring")
	assert.Equal(t, float64(2), rec.body["size"], "decimals marshal as plain numbers")
	assert.Equal(t, "MARKET", rec.body["orderType"], "order type defaults to market")
	assert.NotContains(t, rec.body, "level", "unset levels are omitted")
}

func TestCreatePositionValidation(t *testing.T) {
	client := positionsServer(t, &dealRecorder{})
	two := decimal.NewFromInt(2)

	tests := []struct {
		name    string
		order   OrderRequest
		wantErr string
	}{
		{"missing epic", OrderRequest{Direction: Buy, Size: two}, "epic is required"},
		{"bad direction", OrderRequest{Epic: "E", Direction: "LONG", Size: two}, "direction must be"},
		{"zero size", OrderRequest{Epic: "E", Direction: Buy}, "size must be positive"},
		{"limit without level", OrderRequest{Epic: "E", Direction: Buy, Size: two, OrderType: LimitOrder}, "requires a level"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := client.CreatePosition(context.Background(), tc.order)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestClosePosition(t *testing.T) {
	rec := &dealRecorder{}
	client := positionsServer(t, rec)

	ref, err := client.ClosePosition(context.Background(), CloseRequest{
		DealID:    "DIAAAAFAKE",
		Direction: Sell,
		Size:      decimal.NewFromInt(2),
	})
	require.NoError(t, err)
	assert.Equal(t, "REF123", ref)

	// The gateway only accepts closes as POST with a method override.
	assert.Equal(t, "DELETE", rec.method)
	assert.Equal(t, "1", rec.version)
	assert.Equal(t, "DIAAAAFAKE", rec.body["dealId"])
	assert.Equal(t, "MARKET", rec.body["orderType"])
}

func TestClosePositionValidation(t *testing.T) {
	client := positionsServer(t, &dealRecorder{})

	_, err := client.ClosePosition(context.Background(), CloseRequest{Direction: Sell, Size: decimal.NewFromInt(1)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dealId is required")
}
