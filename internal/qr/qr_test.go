package qr

import (
	"bytes"
	"encoding/base64"
	"strings"
	"testing"
)

func TestDataURLIsEmbeddablePNG(t *testing.T) {
	dataURL, err := DataURL("http://localhost:8080/s/abc1234567")
	if err != nil {
		t.Fatalf("DataURL() error: %v", err)
	}

	const prefix = "data:image/png;base64,"
	if !strings.HasPrefix(dataURL, prefix) {
		t.Fatalf("data URL should start with %q, got %q", prefix, dataURL[:min(len(dataURL), 30)])
	}

	png, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(dataURL, prefix))
	if err != nil {
		t.Fatalf("payload is not valid base64: %v", err)
	}

	pngMagic := []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}
	if !bytes.HasPrefix(png, pngMagic) {
		t.Error("decoded payload is not a PNG")
	}
}

func TestDataURLEmptyInput(t *testing.T) {
	// The encoder rejects empty content; the caller surfaces this as a
	// generic creation failure.
	if _, err := DataURL(""); err == nil {
		t.Error("DataURL(\"\") should fail")
	}
}
