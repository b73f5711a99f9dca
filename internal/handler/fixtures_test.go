package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/haatos/provider-ci/internal/service"
	"github.com/haatos/provider-ci/internal/store"
	"github.com/haatos/provider-ci/internal/testutil"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockConnectionStore struct {
	mock.Mock
}

func (m *mockConnectionStore) CreateConnection(ctx context.Context, id string, connectedOn time.Time) error {
	args := m.Called(ctx, id, connectedOn)
	return args.Error(0)
}

func (m *mockConnectionStore) DeleteConnection(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockConnectionStore) ListConnections(ctx context.Context) ([]*store.Connection, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*store.Connection), args.Error(1)
}

func newFixtureTestEcho(
	connectionService ConnectionServicer,
	parameterService ParameterServicer,
	hub *Hub,
) *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = ErrorHandler
	SetupFixtureRoutes(e.Group(""), connectionService, parameterService, hub)
	return e
}

func TestFixtureHandler_Connections(t *testing.T) {
	t.Run("success - connect", func(t *testing.T) {
		// arrange
		mockConnections := new(testutil.MockConnectionService)
		mockConnections.On("Connect", mock.Anything, "abc").
			Return(service.Response{StatusCode: http.StatusOK, Body: "Connected."})
		e := newFixtureTestEcho(mockConnections, new(testutil.MockParameterService), NewHub())

		// act
		rec := serve(e, http.MethodPost, "/fixtures/connections", `{"connectionId":"abc"}`)

		// assert
		assert.Equal(t, http.StatusOK, rec.Code)
		var res service.Response
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
		assert.Equal(t, "Connected.", res.Body)
	})
	t.Run("failure - missing connection id", func(t *testing.T) {
		mockConnections := new(testutil.MockConnectionService)
		mockConnections.On("Connect", mock.Anything, "").
			Return(service.Response{StatusCode: http.StatusBadRequest, Body: "Missing connection id."})
		e := newFixtureTestEcho(mockConnections, new(testutil.MockParameterService), NewHub())

		rec := serve(e, http.MethodPost, "/fixtures/connections", `{}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), `"statusCode":400`)
	})
	t.Run("success - disconnect", func(t *testing.T) {
		mockConnections := new(testutil.MockConnectionService)
		mockConnections.On("Disconnect", mock.Anything, "abc").
			Return(service.Response{StatusCode: http.StatusOK, Body: "Disconnected."})
		e := newFixtureTestEcho(mockConnections, new(testutil.MockParameterService), NewHub())

		rec := serve(e, http.MethodDelete, "/fixtures/connections/abc", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Disconnected.")
		mockConnections.AssertExpectations(t)
	})
}

func TestFixtureHandler_WebSocketBroadcast(t *testing.T) {
	// arrange
	connStore := new(mockConnectionStore)
	connStore.On("CreateConnection", mock.Anything, "conn-1", mock.Anything).Return(nil)
	connStore.On("ListConnections", mock.Anything).Return([]*store.Connection{
		{ConnectionID: "conn-1"},
		{ConnectionID: "stale"},
	}, nil)
	connStore.On("DeleteConnection", mock.Anything, "stale").Return(nil)
	connStore.On("DeleteConnection", mock.Anything, "conn-1").Return(nil).Maybe()

	hub := NewHub()
	e := newFixtureTestEcho(
		service.NewConnectionService(connStore),
		new(testutil.MockParameterService),
		hub,
	)
	server := httptest.NewServer(e)
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/fixtures/ws?connection_id=conn-1"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	assert.Eventually(t, func() bool { return hub.Len() == 1 }, time.Second, 10*time.Millisecond)

	// act
	res, err := http.Post(
		server.URL+"/fixtures/messages",
		echo.MIMEApplicationJSON,
		strings.NewReader(`{"data":"hello"}`),
	)
	require.NoError(t, err)
	body, err := io.ReadAll(res.Body)
	res.Body.Close()
	require.NoError(t, err)

	// assert
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, string(body), "Data sent.")

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))
	_, message, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, "hello", string(message))
	connStore.AssertCalled(t, "DeleteConnection", mock.Anything, "stale")

	conn.Close()
	assert.Eventually(t, func() bool { return hub.Len() == 0 }, time.Second, 10*time.Millisecond)
}

func TestFixtureHandler_PutParameter(t *testing.T) {
	t.Run("success - new parameter", func(t *testing.T) {
		// arrange
		mockParameters := new(testutil.MockParameterService)
		mockParameters.On(
			"PutParameter", mock.Anything,
			"/app/token", "secret", store.ParameterSecureString, false,
		).Return(int64(1), nil)
		e := newFixtureTestEcho(new(testutil.MockConnectionService), mockParameters, NewHub())

		// act
		rec := serve(
			e, http.MethodPut, "/fixtures/parameters",
			`{"name":"/app/token","value":"secret","type":"SecureString"}`,
		)

		// assert
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"version":1}`, rec.Body.String())
	})
	t.Run("failure - parameter exists", func(t *testing.T) {
		mockParameters := new(testutil.MockParameterService)
		mockParameters.On(
			"PutParameter", mock.Anything,
			"name", "value", store.ParameterString, false,
		).Return(int64(0), service.NewErrParameterAlreadyExists("name"))
		e := newFixtureTestEcho(new(testutil.MockConnectionService), mockParameters, NewHub())

		rec := serve(e, http.MethodPut, "/fixtures/parameters", `{"name":"name","value":"value"}`)

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Contains(t, rec.Body.String(), "already exists")
	})
	t.Run("failure - invalid type", func(t *testing.T) {
		mockParameters := new(testutil.MockParameterService)
		e := newFixtureTestEcho(new(testutil.MockConnectionService), mockParameters, NewHub())

		rec := serve(
			e, http.MethodPut, "/fixtures/parameters",
			`{"name":"name","value":"value","type":"Integer"}`,
		)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		mockParameters.AssertNotCalled(
			t, "PutParameter",
			mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything,
		)
	})
	t.Run("failure - missing name", func(t *testing.T) {
		e := newFixtureTestEcho(
			new(testutil.MockConnectionService), new(testutil.MockParameterService), NewHub(),
		)

		rec := serve(e, http.MethodPut, "/fixtures/parameters", `{"value":"value"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestFixtureHandler_GetParameter(t *testing.T) {
	t.Run("success - escaped name is decoded", func(t *testing.T) {
		// arrange
		mockParameters := new(testutil.MockParameterService)
		mockParameters.On("GetParameter", mock.Anything, "/app/name", true).Return(&store.Parameter{
			Name:    "/app/name",
			Value:   "plaintext",
			Type:    store.ParameterSecureString,
			Version: 2,
		}, nil)
		e := newFixtureTestEcho(new(testutil.MockConnectionService), mockParameters, NewHub())

		// act
		rec := serve(e, http.MethodGet, "/fixtures/parameters/%2Fapp%2Fname?with_decryption=true", "")

		// assert
		assert.Equal(t, http.StatusOK, rec.Code)
		var p store.Parameter
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
		assert.Equal(t, "plaintext", p.Value)
		assert.Equal(t, int64(2), p.Version)
	})
	t.Run("failure - parameter not found", func(t *testing.T) {
		mockParameters := new(testutil.MockParameterService)
		mockParameters.On("GetParameter", mock.Anything, "missing", false).
			Return(nil, service.ErrParameterNotFound)
		e := newFixtureTestEcho(new(testutil.MockConnectionService), mockParameters, NewHub())

		rec := serve(e, http.MethodGet, "/fixtures/parameters/missing", "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "parameter not found")
	})
}

func TestFixtureHandler_DeleteParameter(t *testing.T) {
	t.Run("success - parameter deleted", func(t *testing.T) {
		mockParameters := new(testutil.MockParameterService)
		mockParameters.On("DeleteParameter", mock.Anything, "name").Return(nil)
		e := newFixtureTestEcho(new(testutil.MockConnectionService), mockParameters, NewHub())

		rec := serve(e, http.MethodDelete, "/fixtures/parameters/name", "")

		assert.Equal(t, http.StatusNoContent, rec.Code)
		mockParameters.AssertExpectations(t)
	})
}
