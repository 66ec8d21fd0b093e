package ws

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"kakilima/config"
	"kakilima/internal/delivery"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type ServerParams struct {
	fx.In
	fx.Lifecycle

	Config       *config.Config
	Logger       *slog.Logger
	BrokerParams BrokerParams
}

// wsServer is the websocket listener. It owns its own http.Server on a
// dedicated port so the realtime channel can be scaled and fronted
// independently of the REST API.
type wsServer struct {
	cfg    *config.Config
	logger *slog.Logger
	broker *Broker

	server   *http.Server
	upgrader websocket.Upgrader
}

func NewServer(params ServerParams) (delivery.Delivery, error) {
	cfg := params.Config
	if cfg.WS == nil {
		return nil, errors.New("ws config is required")
	}

	alertRadius := 500.0
	if cfg.Proximity != nil && cfg.Proximity.AlertRadiusMeters > 0 {
		alertRadius = cfg.Proximity.AlertRadiusMeters
	}

	broker := NewBroker(params.BrokerParams, cfg.WS.WriteBuffer, alertRadius)

	delivery := &wsServer{
		cfg:    cfg,
		logger: params.Logger,
		broker: broker,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}

	path := cfg.WS.Path
	if path == "" {
		path = "/ws"
	}

	mux := http.NewServeMux()
	mux.HandleFunc(path, delivery.handleWebSocket)

	delivery.server = &http.Server{
		Addr:    net.JoinHostPort("0.0.0.0", strconv.Itoa(cfg.WS.Port)),
		Handler: mux,
	}

	params.Append(fx.Hook{
		OnStop: delivery.stop,
	})

	return delivery, nil
}

func (s *wsServer) Serve(ctx context.Context) error {
	s.logger.Info("Starting websocket server",
		slog.String("addr", s.server.Addr),
		slog.String("path", s.cfg.WS.Path))

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "failed to serve websocket")
	}

	return nil
}

func (s *wsServer) stop(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, s.cfg.WS.ShutdownTimeout)
	defer cancel()

	s.logger.Info("Shutting down websocket server")

	return errors.WithStack(s.server.Shutdown(shutdownCtx))
}

func (s *wsServer) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", slog.String("error", err.Error()))

		return
	}

	sess := s.broker.Connect(conn)
	go s.readPump(sess, conn)
}

// readPump drives the per-connection message loop. Handler errors are scoped
// events back to this connection; only a transport error ends the loop.
// The request context dies with the upgrade handler, so the pump runs on its
// own background context.
func (s *wsServer) readPump(sess *session, conn *websocket.Conn) {
	ctx := context.Background()
	defer s.broker.Disconnect(ctx, sess)

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return
		}

		s.broker.Handle(ctx, sess, raw)
	}
}
