package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"kakilima/internal/domain/entity"
	domainerrors "kakilima/internal/domain/errors"
	"kakilima/internal/domain/service"
	"kakilima/internal/geo"
	"kakilima/internal/registry"
	"kakilima/internal/usecase"
	"kakilima/internal/util"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type BrokerParams struct {
	fx.In

	Logger     *slog.Logger
	TokenSvc   service.TokenService
	LocationUC usecase.LocationUsecase
	VendorUC   usecase.VendorUsecase
	OrderUC    usecase.OrderUsecase
	DeviceUC   usecase.DeviceUsecase
	FavoriteUC usecase.FavoriteUsecase
}

// Broker routes inbound frames to their handlers and fans events out across
// sessions. Per-message failures are answered with a scoped error event; a
// bad frame never closes its connection and never reaches other sessions.
type Broker struct {
	logger     *slog.Logger
	tokenSvc   service.TokenService
	locationUC usecase.LocationUsecase
	vendorUC   usecase.VendorUsecase
	orderUC    usecase.OrderUsecase
	deviceUC   usecase.DeviceUsecase
	favoriteUC usecase.FavoriteUsecase

	queueLen    int
	alertRadius float64

	mu       sync.RWMutex
	sessions map[string]*session
}

// NewBroker is the constructor for Broker, injected by Fx.
func NewBroker(params BrokerParams, queueLen int, alertRadiusMeters float64) *Broker {
	return &Broker{
		logger:      params.Logger,
		tokenSvc:    params.TokenSvc,
		locationUC:  params.LocationUC,
		vendorUC:    params.VendorUC,
		orderUC:     params.OrderUC,
		deviceUC:    params.DeviceUC,
		favoriteUC:  params.FavoriteUC,
		queueLen:    queueLen,
		alertRadius: alertRadiusMeters,
		sessions:    make(map[string]*session),
	}
}

// Connect registers a new session for conn and starts its write pump.
func (b *Broker) Connect(conn frameWriter) *session {
	sess := newSession(uuid.NewString(), conn, b.queueLen, b.alertRadius, b.logger)

	b.mu.Lock()
	b.sessions[sess.id] = sess
	b.mu.Unlock()

	go sess.writePump()

	b.logger.Debug("websocket session connected", slog.String("connectionID", sess.id))

	return sess
}

// Disconnect tears a session down: its subscriptions die with it and only
// the vendors this connection registered are evicted from the live map.
func (b *Broker) Disconnect(ctx context.Context, sess *session) {
	b.mu.Lock()
	delete(b.sessions, sess.id)
	b.mu.Unlock()

	removed := b.locationUC.DropConnection(ctx, sess.id)
	sess.close()

	b.logger.Debug("websocket session disconnected",
		slog.String("connectionID", sess.id),
		slog.Int("evictedVendors", len(removed)))
}

// Handle dispatches one raw inbound frame.
func (b *Broker) Handle(ctx context.Context, sess *session, raw []byte) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		b.sendError(sess, "INVALID_MESSAGE", "Malformed message envelope")

		return
	}

	switch env.Kind {
	case KindVendorLocationPush:
		b.handleLocationPush(ctx, sess, env)
	case KindBuyerJoinMap:
		b.handleJoinMap(ctx, sess, env)
	case KindBuyerGetNearby:
		b.handleGetNearby(ctx, sess, env)
	case KindBuyerFollow:
		b.handleFollow(sess, env, true)
	case KindBuyerUnfollow:
		b.handleFollow(sess, env, false)
	case KindOrderStatusPush:
		b.handleOrderStatusPush(ctx, sess, env)
	default:
		b.sendError(sess, "UNKNOWN_KIND", "Unknown message kind: "+string(env.Kind))
	}
}

func (b *Broker) handleLocationPush(ctx context.Context, sess *session, env Envelope) {
	var payload LocationPushPayload
	if err := decodePayload(env, &payload); err != nil {
		b.sendError(sess, "INVALID_MESSAGE", "Invalid location push payload")

		return
	}

	claims, err := b.authenticate(sess, payload.Token)
	if err != nil {
		b.sendError(sess, "UNAUTHORIZED", "Invalid or missing token")

		return
	}

	vendor, err := b.vendorUC.GetOwnVendor(ctx, claims.UserID)
	if err != nil {
		b.sendUsecaseError(sess, err)

		return
	}
	if vendor.IsSuspended {
		b.sendError(sess, "FORBIDDEN", "Vendor is suspended")

		return
	}

	rec, err := b.locationUC.RecordPing(ctx, usecase.RecordPingInput{
		VendorID:     vendor.ID,
		OwnerUserID:  claims.UserID,
		ConnectionID: sess.id,
		StoreName:    vendor.StoreName,
		Latitude:     payload.Latitude,
		Longitude:    payload.Longitude,
		Status:       payload.Status,
		Timestamp:    payload.Timestamp,
	})
	if err != nil {
		b.sendUsecaseError(sess, err)

		return
	}

	b.broadcastLocation(*rec)

	ack, err := NewEnvelope(KindLocationAck, LocationAckPayload{
		VendorID:  rec.VendorID,
		Latitude:  rec.Latitude,
		Longitude: rec.Longitude,
		Timestamp: rec.UpdatedAt,
	})
	if err == nil {
		sess.enqueue(ack)
	}
}

func (b *Broker) handleJoinMap(ctx context.Context, sess *session, env Envelope) {
	var payload JoinMapPayload
	if err := decodePayload(env, &payload); err != nil {
		b.sendError(sess, "INVALID_MESSAGE", "Invalid join payload")

		return
	}

	claims, err := b.authenticate(sess, payload.Token)
	if err != nil {
		b.sendError(sess, "UNAUTHORIZED", "Invalid or missing token")

		return
	}

	sess.joinMap()

	// Stored favorites arm proximity alerts without an explicit follow frame.
	favorites, err := b.favoriteUC.ListFavoriteVendorIDs(ctx, claims.UserID)
	if err != nil {
		b.logger.Warn("load favorites failed",
			slog.String("userID", claims.UserID.String()),
			slog.String("error", err.Error()))
	}
	for _, vendorID := range favorites {
		sess.follow(vendorID)
	}

	vendors := b.locationUC.Snapshot(ctx)
	snapshot, err := NewEnvelope(KindActiveVendorsSnapshot, SnapshotPayload{
		Vendors: vendors,
		Count:   len(vendors),
	})
	if err == nil {
		sess.enqueue(snapshot)
	}
}

func (b *Broker) handleGetNearby(ctx context.Context, sess *session, env Envelope) {
	var payload GetNearbyPayload
	if err := decodePayload(env, &payload); err != nil {
		b.sendError(sess, "INVALID_MESSAGE", "Invalid nearby payload")

		return
	}

	if _, err := b.authenticate(sess, payload.Token); err != nil {
		b.sendError(sess, "UNAUTHORIZED", "Invalid or missing token")

		return
	}

	// The viewer position also arms the favorite-proximity alerts for this
	// session.
	sess.setViewer(geo.Point{Lat: payload.Latitude, Lon: payload.Longitude})

	nearby, err := b.vendorUC.NearbyVendors(ctx, usecase.NearbyVendorsInput{
		Latitude:     payload.Latitude,
		Longitude:    payload.Longitude,
		RadiusMeters: payload.RadiusMeters,
	})
	if err != nil {
		b.sendUsecaseError(sess, err)

		return
	}

	result, err := NewEnvelope(KindNearbyVendorsResult, NearbyResultPayload{
		Vendors: nearby,
		Count:   len(nearby),
	})
	if err == nil {
		sess.enqueue(result)
	}
}

// handleFollow manages vendor-follow subscriptions. Follow and unfollow are
// deliberately open to unauthenticated sessions; the subscription only
// selects which broadcasts arm a proximity alert.
func (b *Broker) handleFollow(sess *session, env Envelope, follow bool) {
	var payload FollowPayload
	if err := decodePayload(env, &payload); err != nil {
		b.sendError(sess, "INVALID_MESSAGE", "Invalid follow payload")

		return
	}

	if follow {
		sess.follow(payload.VendorID)
	} else {
		sess.unfollow(payload.VendorID)
	}

	ack, err := NewEnvelope(KindFollowAck, FollowAckPayload{
		VendorID:  payload.VendorID,
		Following: follow,
	})
	if err == nil {
		sess.enqueue(ack)
	}
}

func (b *Broker) handleOrderStatusPush(ctx context.Context, sess *session, env Envelope) {
	var payload OrderStatusPushPayload
	if err := decodePayload(env, &payload); err != nil {
		b.sendError(sess, "INVALID_MESSAGE", "Invalid order status payload")

		return
	}

	if _, err := b.authenticate(sess, payload.Token); err != nil {
		b.sendError(sess, "UNAUTHORIZED", "Invalid or missing token")

		return
	}

	if !entity.OrderStatus(payload.Status).IsValid() {
		b.sendError(sess, "INVALID_MESSAGE", "Unknown order status: "+payload.Status)

		return
	}

	order, err := b.orderUC.GetOrder(ctx, payload.OrderID)
	if err != nil {
		b.sendUsecaseError(sess, err)

		return
	}

	event, err := NewEnvelope(KindOrderStatusChanged, OrderStatusChangedPayload{
		OrderID: order.ID,
		Status:  payload.Status,
	})
	if err != nil {
		return
	}

	// Scoped to the buyer's topic only, never broadcast.
	b.sendToBuyer(order.BuyerID, event)
}

// broadcastLocation fans an accepted ping out to every connected session and
// fires favorite-proximity alerts on the sessions that follow the vendor.
func (b *Broker) broadcastLocation(rec registry.Record) {
	event, err := NewEnvelope(KindLocationUpdated, rec)
	if err != nil {
		b.logger.Error("encode location event", slog.String("error", err.Error()))

		return
	}

	b.mu.RLock()
	sessions := make([]*session, 0, len(b.sessions))
	for _, sess := range b.sessions {
		sessions = append(sessions, sess)
	}
	b.mu.RUnlock()

	for _, sess := range sessions {
		sess.enqueue(event)
		b.maybeAlertFavorite(sess, rec)
	}
}

// maybeAlertFavorite fires at most one alert per entry into the radius;
// leaving the radius re-arms the alert for the next entry.
func (b *Broker) maybeAlertFavorite(sess *session, rec registry.Record) {
	if !sess.follows(rec.VendorID) {
		return
	}

	viewer, ok := sess.viewerPosition()
	if !ok {
		return
	}

	distance := geo.Distance(viewer.Lat, viewer.Lon, rec.Latitude, rec.Longitude)
	if !sess.tracker.Observe(rec.VendorID, distance) {
		return
	}

	alert, err := NewEnvelope(KindFavoriteVendorNearby, FavoriteNearbyPayload{
		VendorID:       rec.VendorID,
		StoreName:      rec.StoreName,
		DistanceMeters: distance,
		DistanceLabel:  util.FormatDistance(distance / 1000),
	})
	if err == nil {
		sess.enqueue(alert)
	}

	// Mirror the in-socket alert to the buyer's devices, so the app is told
	// even when backgrounded. Best-effort, off the broadcast path.
	if buyerID, authed := sess.auth(); authed && b.deviceUC != nil {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := b.deviceUC.SendProximityPush(ctx, usecase.ProximityPushInput{
				BuyerID:        buyerID,
				VendorID:       rec.VendorID,
				StoreName:      rec.StoreName,
				DistanceMeters: distance,
			}); err != nil {
				b.logger.Warn("proximity push failed",
					slog.String("buyerID", buyerID.String()),
					slog.String("error", err.Error()))
			}
		}()
	}
}

// sendToBuyer delivers an event to every session the buyer has on the map.
func (b *Broker) sendToBuyer(buyerID uuid.UUID, env Envelope) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, sess := range b.sessions {
		if sess.isBuyerTopic(buyerID) {
			sess.enqueue(env)
		}
	}
}

// authenticate validates the per-frame token and caches the identity on the
// session. An invalid token leaves previously established auth untouched.
func (b *Broker) authenticate(sess *session, token string) (*service.Claims, error) {
	claims, err := b.tokenSvc.ValidateAccessToken(token)
	if err != nil {
		return nil, errors.Wrap(err, "validate token")
	}

	sess.setAuth(claims.UserID, claims.Roles)

	return claims, nil
}

func (b *Broker) sendError(sess *session, code, message string) {
	env, err := NewEnvelope(KindError, ErrorPayload{Code: code, Message: message})
	if err != nil {
		return
	}

	sess.enqueue(env)
}

// sendUsecaseError maps a usecase failure onto a scoped error event.
func (b *Broker) sendUsecaseError(sess *session, err error) {
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		b.sendError(sess, appErr.ErrorCode(), appErr.Message())

		return
	}

	b.logger.Error("websocket handler failed", slog.String("error", err.Error()))
	b.sendError(sess, "INTERNAL_ERROR", "Internal error")
}
