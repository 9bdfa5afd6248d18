// Package qr renders URLs as scannable PNG images.
package qr

import (
	"errors"

	qrcode "github.com/skip2/go-qrcode"
)

// ErrEncodingFailed is returned when the payload cannot be encoded,
// typically because it exceeds the symbol capacity for the chosen
// error-correction level. Callers surface it as a retryable failure.
var ErrEncodingFailed = errors.New("qr_encoding_failed")

// 8 device pixels per module keeps codes scannable when printed small.
const pixelsPerModule = 8

// EncodePNG renders target as a QR code and returns the PNG bytes.
// The image scales with the symbol version and includes the standard
// four-module quiet zone. Decoding the result yields target exactly.
func EncodePNG(target string) ([]byte, error) {
	code, err := qrcode.New(target, qrcode.Medium)
	if err != nil {
		return nil, ErrEncodingFailed
	}

	// Negative size renders at a fixed scale per module instead of a
	// fixed image size, so long payloads stay readable.
	png, err := code.PNG(-pixelsPerModule)
	if err != nil {
		return nil, ErrEncodingFailed
	}
	return png, nil
}
