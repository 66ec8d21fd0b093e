// Package ws is the realtime session broker. Vendors stream GPS pings over a
// websocket, buyers watch the live map over the same channel; every frame is
// a tagged envelope validated at the boundary before it reaches the core.
package ws

import (
	"encoding/json"
	"time"

	"kakilima/internal/proximity"
	"kakilima/internal/registry"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Kind tags every frame on the wire.
type Kind string

// Inbound message kinds.
const (
	KindVendorLocationPush Kind = "vendor.locationPush"
	KindBuyerJoinMap       Kind = "buyer.joinMap"
	KindBuyerGetNearby     Kind = "buyer.getNearby"
	KindBuyerFollow        Kind = "buyer.follow"
	KindBuyerUnfollow      Kind = "buyer.unfollow"
	KindOrderStatusPush    Kind = "order.statusPush"
)

// Outbound event kinds.
const (
	KindLocationUpdated       Kind = "locationUpdated"
	KindActiveVendorsSnapshot Kind = "activeVendorsSnapshot"
	KindNearbyVendorsResult   Kind = "nearbyVendorsResult"
	KindFollowAck             Kind = "followAck"
	KindOrderStatusChanged    Kind = "orderStatusChanged"
	KindLocationAck           Kind = "locationAck"
	KindFavoriteVendorNearby  Kind = "favoriteVendorNearby"
	KindError                 Kind = "error"
)

// Envelope is the frame every websocket message travels in.
type Envelope struct {
	Kind    Kind            `json:"kind"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// --- Inbound payloads ---

// LocationPushPayload is a vendor's GPS ping.
type LocationPushPayload struct {
	Token     string    `json:"token" validate:"required"`
	Latitude  float64   `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude float64   `json:"longitude" validate:"gte=-180,lte=180"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// JoinMapPayload subscribes a buyer to the live map.
type JoinMapPayload struct {
	Token string `json:"token" validate:"required"`
}

// GetNearbyPayload is a buyer's proximity query.
type GetNearbyPayload struct {
	Token        string  `json:"token" validate:"required"`
	Latitude     float64 `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude    float64 `json:"longitude" validate:"gte=-180,lte=180"`
	RadiusMeters float64 `json:"radius_meters" validate:"gte=0"`
}

// FollowPayload adds or removes one vendor-follow subscription.
type FollowPayload struct {
	VendorID uuid.UUID `json:"vendor_id" validate:"required"`
}

// OrderStatusPushPayload relays an order status change to its buyer.
type OrderStatusPushPayload struct {
	Token   string    `json:"token" validate:"required"`
	OrderID uuid.UUID `json:"order_id" validate:"required"`
	Status  string    `json:"status" validate:"required"`
}

// --- Outbound payloads ---

// SnapshotPayload carries the full live vendor set.
type SnapshotPayload struct {
	Vendors []registry.Record `json:"vendors"`
	Count   int               `json:"count"`
}

// NearbyResultPayload answers a getNearby query.
type NearbyResultPayload struct {
	Vendors []proximity.AnnotatedVendor `json:"vendors"`
	Count   int                         `json:"count"`
}

// FollowAckPayload confirms a follow or unfollow.
type FollowAckPayload struct {
	VendorID  uuid.UUID `json:"vendor_id"`
	Following bool      `json:"following"`
}

// OrderStatusChangedPayload notifies a buyer of an order transition.
type OrderStatusChangedPayload struct {
	OrderID uuid.UUID `json:"order_id"`
	Status  string    `json:"status"`
}

// LocationAckPayload confirms an accepted ping with the visible state.
type LocationAckPayload struct {
	VendorID  uuid.UUID `json:"vendor_id"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Timestamp time.Time `json:"timestamp"`
}

// FavoriteNearbyPayload alerts a buyer that a followed vendor entered the
// alert radius.
type FavoriteNearbyPayload struct {
	VendorID       uuid.UUID `json:"vendor_id"`
	StoreName      string    `json:"store_name"`
	DistanceMeters float64   `json:"distance_meters"`
	DistanceLabel  string    `json:"distance_label"`
}

// ErrorPayload is a scoped error event sent only to the offending connection.
type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

var payloadValidator = validator.New()

// NewEnvelope marshals payload into a tagged envelope.
func NewEnvelope(kind Kind, payload any) (Envelope, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, errors.Wrap(err, "marshal payload")
	}

	return Envelope{Kind: kind, Payload: raw}, nil
}

// decodePayload unmarshals and validates an inbound payload in place.
func decodePayload(env Envelope, out any) error {
	if err := json.Unmarshal(env.Payload, out); err != nil {
		return errors.Wrap(err, "unmarshal payload")
	}
	if err := payloadValidator.Struct(out); err != nil {
		return errors.Wrap(err, "validate payload")
	}

	return nil
}
