package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"dascopy/internal/usecasees/structs"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func newBrokerForTest(t *testing.T, handler http.HandlerFunc) *BrokerController {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)

	return NewBrokerController(
		srv.Client(),
		NewCryptoController("test-secret"),
		srv.URL,
		"ACC1",
		"test-key",
		logger,
	)
}

func Test_BrokerIsAlive(t *testing.T) {
	broker := newBrokerForTest(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, statusUrlPath, r.URL.Path)
		assert.Equal(t, "ACC1", r.URL.Query().Get("account"))
		assert.NotEmpty(t, r.URL.Query().Get("signature"))
		assert.NotEmpty(t, r.URL.Query().Get("timestamp"))
		assert.Equal(t, "test-key", r.Header.Get("X-DAS-APIKEY"))

		_ = json.NewEncoder(w).Encode(map[string]bool{"alive": true})
	})

	assert.True(t, broker.IsAlive())
}

func Test_BrokerIsAliveDownstreamError(t *testing.T) {
	broker := newBrokerForTest(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	assert.False(t, broker.IsAlive())
}

func Test_BrokerGetPositions(t *testing.T) {
	broker := newBrokerForTest(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, positionsUrlPath, r.URL.Path)

		_ = json.NewEncoder(w).Encode([]structs.Position{
			{Symbol: "AAPL", Quantity: 1000},
			{Symbol: "TSLA", Quantity: -500},
		})
	})

	positions, err := broker.GetPositions()
	assert.NoError(t, err)
	assert.Len(t, positions, 2)
	assert.False(t, positions[0].IsShort())
	assert.True(t, positions[1].IsShort())
}

func Test_BrokerGetMaxSell(t *testing.T) {
	broker := newBrokerForTest(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, maxSellUrlPath, r.URL.Path)
		assert.Equal(t, "AAPL", r.URL.Query().Get("symbol"))

		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"symbol":  "AAPL",
			"maxSell": 600,
		})
	})

	maxSell, err := broker.GetMaxSell("AAPL")
	assert.NoError(t, err)
	assert.Equal(t, int64(600), maxSell)
}

func Test_BrokerSubmitOrder(t *testing.T) {
	broker := newBrokerForTest(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, orderUrlPath, r.URL.Path)

		var req structs.OrderRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "AAPL", req.Symbol)
		assert.Equal(t, int64(100), req.Quantity)

		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"orderId": 4242,
			"status":  "ACCEPTED",
		})
	})

	orderID, err := broker.SubmitOrder(&structs.OrderRequest{Symbol: "AAPL", Quantity: 100})
	assert.NoError(t, err)
	assert.Equal(t, int64(4242), orderID)
}

func Test_BrokerCancelUnknownOrder(t *testing.T) {
	broker := newBrokerForTest(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)

		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(ErrStruct{Code: ErrCodeUnknownOrder, Msg: "Unknown order sent."})
	})

	assert.ErrorIs(t, broker.CancelOrder(99), ErrUnknownOrder)
}

func Test_BrokerLocateRejected(t *testing.T) {
	broker := newBrokerForTest(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(ErrStruct{Code: ErrCodeLocateRejected, Msg: "Locate rejected by route."})
	})

	_, err := broker.Locate(context.Background(), "AAPL", 500, 0.05, time.Second)
	assert.ErrorIs(t, err, ErrLocateRejected)
}

func Test_BrokerLocate(t *testing.T) {
	broker := newBrokerForTest(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, locateUrlPath, r.URL.Path)

		var req struct {
			Symbol         string  `json:"symbol"`
			Quantity       int64   `json:"quantity"`
			MaxPrice       float64 `json:"maxPrice"`
			TimeoutSeconds int64   `json:"timeoutSeconds"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, int64(500), req.Quantity)
		assert.Equal(t, 0.05, req.MaxPrice)
		assert.Equal(t, int64(30), req.TimeoutSeconds)

		_ = json.NewEncoder(w).Encode(structs.LocateResult{Symbol: "AAPL", FilledQty: 500, AvgPrice: 0.03})
	})

	result, err := broker.Locate(context.Background(), "AAPL", 500, 0.05, 30*time.Second)
	assert.NoError(t, err)
	assert.Equal(t, int64(500), result.FilledQty)
}

func Test_BrokerLongCallsOutliveClientTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)

		switch r.URL.Path {
		case locateUrlPath:
			_ = json.NewEncoder(w).Encode(structs.LocateResult{Symbol: "AAPL", FilledQty: 500})
		case eventsUrlPath:
			_ = json.NewEncoder(w).Encode(struct {
				Cursor int64                      `json:"cursor"`
				Events []structs.MasterOrderEvent `json:"events"`
			}{Cursor: 1, Events: []structs.MasterOrderEvent{
				{Type: structs.EventOrderAccepted, OrderID: 1, Symbol: "AAPL"},
			}})
		default:
			_ = json.NewEncoder(w).Encode(map[string]interface{}{"symbol": "AAPL", "maxSell": 600})
		}
	}))
	t.Cleanup(srv.Close)

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	// Short REST calls are capped by the client timeout; locate and the
	// events poll must not be.
	client := &http.Client{Timeout: 100 * time.Millisecond}
	broker := NewBrokerController(client, NewCryptoController("test-secret"), srv.URL, "ACC1", "test-key", logger)

	_, err := broker.GetMaxSell("AAPL")
	assert.Error(t, err)

	result, err := broker.Locate(context.Background(), "AAPL", 500, 0.05, 2*time.Second)
	assert.NoError(t, err)
	assert.Equal(t, int64(500), result.FilledQty)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := broker.StreamEvents(ctx)
	assert.NoError(t, err)

	select {
	case event := <-events:
		assert.Equal(t, int64(1), event.OrderID)
	case <-time.After(5 * time.Second):
		t.Fatal("long-poll event not delivered")
	}
}

func Test_BrokerStreamEvents(t *testing.T) {
	batches := [][]structs.MasterOrderEvent{
		{
			{Type: structs.EventOrderAccepted, OrderID: 1, Symbol: "AAPL", Side: structs.SideBuy, Quantity: 100},
			{Type: structs.EventOrderAccepted, OrderID: 2, Symbol: "TSLA", Side: structs.SideShort, Quantity: 50},
		},
		{
			{Type: structs.EventOrderCancelled, OrderID: 1, Symbol: "AAPL"},
		},
	}

	var mu sync.Mutex
	var cursors []string
	broker := newBrokerForTest(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, eventsUrlPath, r.URL.Path)

		mu.Lock()
		cursors = append(cursors, r.URL.Query().Get("cursor"))
		n := len(cursors) - 1
		mu.Unlock()
		resp := struct {
			Cursor int64                      `json:"cursor"`
			Events []structs.MasterOrderEvent `json:"events"`
		}{Cursor: int64(n + 1)}
		if n < len(batches) {
			resp.Events = batches[n]
		}

		_ = json.NewEncoder(w).Encode(resp)
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := broker.StreamEvents(ctx)
	assert.NoError(t, err)

	var received []structs.MasterOrderEvent
	for i := 0; i < 3; i++ {
		select {
		case event := <-events:
			received = append(received, event)
		case <-time.After(5 * time.Second):
			t.Fatalf("timed out after %d events", len(received))
		}
	}

	assert.Equal(t, int64(1), received[0].OrderID)
	assert.Equal(t, int64(2), received[1].OrderID)
	assert.Equal(t, structs.EventOrderCancelled, received[2].Type)

	cancel()

	select {
	case _, open := <-events:
		assert.False(t, open)
	case <-time.After(5 * time.Second):
		t.Fatal("event channel not closed after cancel")
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, "0", cursors[0])
	assert.Equal(t, "1", cursors[1])
}

func Test_CryptoSignatureDeterministic(t *testing.T) {
	crypto := NewCryptoController("secret")

	sigA := crypto.GetSignature("account=ACC1&symbol=AAPL")
	sigB := crypto.GetSignature("account=ACC1&symbol=AAPL")
	sigC := crypto.GetSignature("account=ACC1&symbol=TSLA")

	assert.Equal(t, sigA, sigB)
	assert.NotEqual(t, sigA, sigC)
	assert.Len(t, sigA, 64)
}
