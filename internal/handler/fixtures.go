package handler

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/haatos/provider-ci/internal/service"
	"github.com/haatos/provider-ci/internal/store"
	"github.com/labstack/echo/v4"
)

func SetupFixtureRoutes(
	g *echo.Group,
	connectionService ConnectionServicer,
	parameterService ParameterServicer,
	hub *Hub,
) {
	h := NewFixtureHandler(connectionService, parameterService, hub)
	fixtures := g.Group("/fixtures")
	fixtures.GET("/ws", h.GetWebSocket)
	fixtures.POST("/connections", h.PostConnection)
	fixtures.DELETE("/connections/:connection_id", h.DeleteConnection)
	fixtures.POST("/messages", h.PostMessage)
	fixtures.PUT("/parameters", h.PutParameter)
	fixtures.GET("/parameters/:name", h.GetParameter)
	fixtures.DELETE("/parameters/:name", h.DeleteParameter)
}

type ConnectionServicer interface {
	Connect(context.Context, string) service.Response
	Disconnect(context.Context, string) service.Response
	Broadcast(context.Context, []byte, service.Sender) service.Response
}

type ParameterServicer interface {
	PutParameter(context.Context, string, string, store.ParameterType, bool) (int64, error)
	GetParameter(context.Context, string, bool) (*store.Parameter, error)
	DeleteParameter(context.Context, string) error
}

type FixtureHandler struct {
	connectionService ConnectionServicer
	parameterService  ParameterServicer
	hub               *Hub
}

func NewFixtureHandler(
	connectionService ConnectionServicer,
	parameterService ParameterServicer,
	hub *Hub,
) *FixtureHandler {
	return &FixtureHandler{
		connectionService: connectionService,
		parameterService:  parameterService,
		hub:               hub,
	}
}

// GetWebSocket upgrades the request and keeps the connection registered
// until the client goes away. The connection id comes from the
// connection_id query parameter or is generated.
func (h *FixtureHandler) GetWebSocket(c echo.Context) error {
	connectionID := c.QueryParam("connection_id")
	if connectionID == "" {
		connectionID = uuid.NewString()
	}

	conn, err := h.hub.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// the upgrader has already written the error response
		slog.Warn("failed to upgrade connection", "error", err)
		return nil
	}

	ctx := context.WithoutCancel(c.Request().Context())
	if res := h.connectionService.Connect(ctx, connectionID); res.StatusCode != http.StatusOK {
		slog.Error("failed to register connection", "connection_id", connectionID, "body", res.Body)
		conn.Close()
		return nil
	}
	h.hub.add(connectionID, conn)

	defer func() {
		h.hub.remove(connectionID, conn)
		h.connectionService.Disconnect(ctx, connectionID)
		conn.Close()
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Info("websocket closed", "connection_id", connectionID, "error", err)
			}
			return nil
		}
	}
}

func (h *FixtureHandler) PostConnection(c echo.Context) error {
	cp := new(ConnectionParams)
	if err := c.Bind(cp); err != nil {
		return newError(err, http.StatusBadRequest, "invalid connection data")
	}
	res := h.connectionService.Connect(c.Request().Context(), cp.ConnectionID)
	return c.JSON(res.StatusCode, res)
}

func (h *FixtureHandler) DeleteConnection(c echo.Context) error {
	cp := new(ConnectionParams)
	if err := c.Bind(cp); err != nil {
		return newError(err, http.StatusBadRequest, "invalid connection id")
	}
	res := h.connectionService.Disconnect(c.Request().Context(), cp.ConnectionID)
	return c.JSON(res.StatusCode, res)
}

func (h *FixtureHandler) PostMessage(c echo.Context) error {
	mp := new(MessageParams)
	if err := c.Bind(mp); err != nil {
		return newError(err, http.StatusBadRequest, "invalid message")
	}
	res := h.connectionService.Broadcast(c.Request().Context(), []byte(mp.Data), h.hub.Send)
	return c.JSON(res.StatusCode, res)
}

func (h *FixtureHandler) PutParameter(c echo.Context) error {
	pp := new(PutParameterParams)
	if err := c.Bind(pp); err != nil {
		return newError(err, http.StatusBadRequest, "invalid parameter data")
	}
	if pp.Name == "" {
		return newError(nil, http.StatusBadRequest, "parameter name is required")
	}
	parameterType, err := service.ParseParameterType(pp.Type)
	if err != nil {
		return serviceError(err, "invalid parameter type")
	}
	version, err := h.parameterService.PutParameter(
		c.Request().Context(),
		pp.Name, pp.Value, parameterType, pp.Overwrite,
	)
	if err != nil {
		return serviceError(err, "unable to put parameter")
	}
	return c.JSON(http.StatusOK, map[string]int64{"version": version})
}

func (h *FixtureHandler) GetParameter(c echo.Context) error {
	gp := new(GetParameterParams)
	if err := c.Bind(gp); err != nil {
		return newError(err, http.StatusBadRequest, "invalid parameter name")
	}
	name, err := url.PathUnescape(gp.Name)
	if err != nil {
		return newError(err, http.StatusBadRequest, "invalid parameter name")
	}
	p, err := h.parameterService.GetParameter(c.Request().Context(), name, gp.WithDecryption)
	if err != nil {
		return serviceError(err, "unable to get parameter")
	}
	return c.JSON(http.StatusOK, p)
}

func (h *FixtureHandler) DeleteParameter(c echo.Context) error {
	gp := new(GetParameterParams)
	if err := c.Bind(gp); err != nil {
		return newError(err, http.StatusBadRequest, "invalid parameter name")
	}
	name, err := url.PathUnescape(gp.Name)
	if err != nil {
		return newError(err, http.StatusBadRequest, "invalid parameter name")
	}
	if err := h.parameterService.DeleteParameter(c.Request().Context(), name); err != nil {
		return serviceError(err, "unable to delete parameter")
	}
	return c.NoContent(http.StatusNoContent)
}
