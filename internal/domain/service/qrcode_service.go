package service

// QRCodeService defines the interface for device pairing code generation and parsing.
type QRCodeService interface {
	// GeneratePairingQR generates a QR code image encoding a device id for the pairing form.
	GeneratePairingQR(deviceID string) ([]byte, error)

	// ParsePairingQR parses scanned QR code data and returns the device id.
	ParsePairingQR(qrData string) (string, error)
}
