package service

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stonks/internal/models"
	"stonks/internal/modules/config"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := config.Default()
	cfg.Alpaca.APIKey = "key"
	cfg.Alpaca.SecretKey = "secret"
	cfg.Alpaca.TradeURL = srv.URL
	return NewClient(&cfg)
}

func TestSubmitBracketOrderPayload(t *testing.T) {
	var got map[string]any
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v2/orders", r.URL.Path)
		assert.Equal(t, "key", r.Header.Get("APCA-API-KEY-ID"))
		assert.Equal(t, "secret", r.Header.Get("APCA-API-SECRET-KEY"))

		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &got))
		w.Write([]byte(`{"id":"abc-123"}`))
	})

	// цены с хвостами должны уйти округлёнными до цента
	id, err := client.SubmitBracketOrder(context.Background(), "AAPL", models.SideLong, 25, 100.004999, 98.0392, 102.9608)
	require.NoError(t, err)
	assert.Equal(t, "abc-123", id)

	assert.Equal(t, "AAPL", got["symbol"])
	assert.Equal(t, "25", got["qty"])
	assert.Equal(t, "buy", got["side"])
	assert.Equal(t, "limit", got["type"])
	assert.Equal(t, "gtc", got["time_in_force"])
	assert.Equal(t, "bracket", got["order_class"])
	assert.Equal(t, "100.00", got["limit_price"])
	assert.Equal(t, map[string]any{"stop_price": "98.04"}, got["stop_loss"])
	assert.Equal(t, map[string]any{"limit_price": "102.96"}, got["take_profit"])
}

func TestSubmitBracketOrderShortSide(t *testing.T) {
	var got map[string]any
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &got))
		w.Write([]byte(`{"id":"abc-456"}`))
	})

	_, err := client.SubmitBracketOrder(context.Background(), "TSLA", models.SideShort, 10, 98, 101.96, 92.06)
	require.NoError(t, err)
	assert.Equal(t, "sell", got["side"])
}

func TestSubmitBracketOrderRejectsBadQty(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	})

	_, err := client.SubmitBracketOrder(context.Background(), "AAPL", models.SideLong, 0, 100, 98, 103)
	require.Error(t, err)
}

func TestSubmitBracketOrderHTTPError(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"insufficient buying power"}`, http.StatusForbidden)
	})

	_, err := client.SubmitBracketOrder(context.Background(), "AAPL", models.SideLong, 5, 100, 98, 103)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}

func TestGetCalendar(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/calendar", r.URL.Path)
		assert.Equal(t, "2026-08-31", r.URL.Query().Get("start"))
		assert.Equal(t, "2026-08-31", r.URL.Query().Get("end"))
		w.Write([]byte(`[{"date":"2026-08-31","open":"09:30","close":"16:00"}]`))
	})

	loc, _ := time.LoadLocation("America/New_York")
	date := time.Date(2026, 8, 31, 3, 0, 0, 0, loc)

	schedule, open, err := client.GetCalendar(context.Background(), date)
	require.NoError(t, err)
	require.True(t, open)
	assert.Equal(t, time.Date(2026, 8, 31, 9, 30, 0, 0, loc), schedule.Open)
	assert.Equal(t, time.Date(2026, 8, 31, 16, 0, 0, 0, loc), schedule.Close)
}

func TestGetCalendarClosedDay(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"Empty calendar", `[]`},
		{"Next trading day returned", `[{"date":"2026-09-01","open":"09:30","close":"16:00"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			})

			loc, _ := time.LoadLocation("America/New_York")
			date := time.Date(2026, 8, 31, 3, 0, 0, 0, loc)

			_, open, err := client.GetCalendar(context.Background(), date)
			require.NoError(t, err)
			assert.False(t, open)
		})
	}
}

func TestGetAllPositionsParsesSides(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/positions", r.URL.Path)
		w.Write([]byte(`[
			{"symbol":"AAPL","qty":"25","avg_entry_price":"100.50","current_price":"103.20"},
			{"symbol":"TSLA","qty":"-10","avg_entry_price":"200","current_price":"195"}
		]`))
	})

	positions, err := client.GetAllPositions(context.Background())
	require.NoError(t, err)
	require.Len(t, positions, 2)

	assert.Equal(t, models.SideLong, positions[0].Side)
	assert.Equal(t, 25.0, positions[0].Qty)
	assert.Equal(t, 100.50, positions[0].AvgEntry)

	assert.Equal(t, models.SideShort, positions[1].Side)
	assert.Equal(t, 10.0, positions[1].Qty) // знак снят, сторона явная
}
