package imagepkg

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/youruser/decksim/internal/deck"
)

const (
	minQRSize = 64
	maxQRSize = 2048
)

// GenerateQRPNG returns PNG bytes of a QR code for the given text.
func GenerateQRPNG(text string, size int) ([]byte, error) {
	if size < minQRSize || size > maxQRSize {
		return nil, fmt.Errorf("qr size %d out of range [%d, %d]", size, minQRSize, maxQRSize)
	}
	return qrcode.Encode(text, qrcode.Medium, size)
}

// GenerateQRImage returns an image.Image for further composition.
func GenerateQRImage(text string, size int) (image.Image, error) {
	b, err := GenerateQRPNG(text, size)
	if err != nil {
		return nil, err
	}
	return png.Decode(bytes.NewReader(b))
}

// DeckQRImage encodes a deck list so it can be scanned back with
// deck.ParseDeckText.
func DeckQRImage(d deck.Deck, size int) (image.Image, error) {
	return GenerateQRImage(deck.ExportDeckText(d), size)
}
