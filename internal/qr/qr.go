// Package qr renders URLs as scannable QR code images, returned as data
// URLs so clients can embed them directly in an <img> tag.
package qr

import (
	"encoding/base64"
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

// pngSize is the width and height of the generated image in pixels.
const pngSize = 256

// DataURL encodes url as a QR code PNG and returns it as a
// "data:image/png;base64,..." string.
func DataURL(url string) (string, error) {
	png, err := qrcode.Encode(url, qrcode.Medium, pngSize)
	if err != nil {
		return "", fmt.Errorf("encode qr code: %w", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
