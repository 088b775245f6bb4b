// Package idcard renders the QR code printed on captain and player ID cards.
package idcard

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/skip2/go-qrcode"
)

const (
	TypeCaptain = "captain"
	TypePlayer  = "player"

	DefaultSize = 256
	maxSize     = 1024
)

var ErrIncompleteCard = errors.New("id card requires r_number and unique_id")

// Card holds the fields encoded into the QR payload. Scanning it yields both
// identifiers needed for verification.
type Card struct {
	Type       string `json:"type"`
	Name       string `json:"name"`
	RNumber    string `json:"r_number"`
	UniqueID   string `json:"unique_id"`
	Department string `json:"department,omitempty"`
	Sport      string `json:"sport,omitempty"`
}

func (c Card) Payload() ([]byte, error) {
	if c.RNumber == "" || c.UniqueID == "" {
		return nil, ErrIncompleteCard
	}
	return json.Marshal(c)
}

// PNG encodes the card payload as a square QR code of size pixels.
func PNG(c Card, size int) ([]byte, error) {
	payload, err := c.Payload()
	if err != nil {
		return nil, err
	}
	if size <= 0 {
		size = DefaultSize
	}
	if size > maxSize {
		size = maxSize
	}
	png, err := qrcode.Encode(string(payload), qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("failed to encode qr code: %w", err)
	}
	return png, nil
}
