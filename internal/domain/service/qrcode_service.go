package service

import (
	"github.com/google/uuid"
)

// QRCodeService defines the interface for QR code generation and parsing services
type QRCodeService interface {
	// GenerateStallQR generates a QR code buyers scan at a vendor's stall.
	GenerateStallQR(vendorID uuid.UUID) ([]byte, error)

	// ParseStallQR parses QR code data and returns the vendor ID.
	ParseStallQR(qrData string) (uuid.UUID, error)
}
