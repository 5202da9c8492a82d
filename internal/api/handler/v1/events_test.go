package v1

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omnia-labs/omnia-api/internal/domain"
	"github.com/omnia-labs/omnia-api/internal/service"
)

func TestEventsHandler_StreamsAccountEvents(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	broker := service.NewBroker()
	go broker.Run(ctx)

	h := NewEventsHandler(broker, nil)
	r := gin.New()
	r.GET("/events", withAccount, h.HandleEvents)
	srv := httptest.NewServer(r)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/events"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()
	assert.Equal(t, http.StatusSwitchingProtocols, resp.StatusCode)

	// Registration happens on the broker goroutine; publish until it lands.
	evt := domain.StateEvent{AccountID: testAccount, Version: 3, Operation: service.OpStake}
	other := domain.StateEvent{AccountID: "0.0.2002", Version: 1, Operation: service.OpStake}
	received := make(chan domain.StateEvent, 1)
	go func() {
		var got domain.StateEvent
		if err := conn.ReadJSON(&got); err == nil {
			received <- got
		}
	}()

	require.Eventually(t, func() bool {
		broker.Publish(other)
		broker.Publish(evt)
		select {
		case got := <-received:
			assert.Equal(t, testAccount, got.AccountID)
			assert.Equal(t, uint64(3), got.Version)
			return true
		default:
			return false
		}
	}, 2*time.Second, 20*time.Millisecond)
}

func TestEventsHandler_RejectsForeignOrigin(t *testing.T) {
	h := NewEventsHandler(service.NewBroker(), []string{"https://omnia.land"})
	r := gin.New()
	r.GET("/events", withAccount, h.HandleEvents)
	srv := httptest.NewServer(r)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/events"
	_, resp, err := websocket.DefaultDialer.Dial(url, http.Header{"Origin": {"https://evil.example"}})
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestEventsHandler_RequiresAccount(t *testing.T) {
	h := NewEventsHandler(service.NewBroker(), nil)
	r := gin.New()
	r.GET("/events", h.HandleEvents)

	rec := doJSON(t, r, http.MethodGet, "/events", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
