// Package compress implements the size-triggered content codec.
//
// Content above a byte threshold is zstd-compressed and base64-encoded
// so the stored payload stays text-safe inside the record document.
// Compression is a best-effort space optimization: any failure falls
// back to storing the original content and is logged, never surfaced.
package compress

import (
	"encoding/base64"
	"fmt"
	"log/slog"

	"github.com/klauspost/compress/zstd"
)

// DefaultThreshold is the content size in bytes above which content is
// compressed.
const DefaultThreshold = 1000

// Codec compresses and decompresses record content.
type Codec struct {
	threshold int
	enc       *zstd.Encoder
	dec       *zstd.Decoder
	log       *slog.Logger
}

// NewCodec returns a codec with the given threshold. A threshold <= 0
// selects DefaultThreshold.
func NewCodec(threshold int, log *slog.Logger) *Codec {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	if log == nil {
		log = slog.Default()
	}
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		log.Warn("zstd encoder unavailable, compression disabled", "error", err)
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		log.Warn("zstd decoder unavailable", "error", err)
	}
	return &Codec{threshold: threshold, enc: enc, dec: dec, log: log}
}

// Threshold reports the configured compression threshold in bytes.
func (c *Codec) Threshold() int { return c.threshold }

// Compress returns the payload to persist and whether it was compressed.
func (c *Codec) Compress(content string) (string, bool) {
	if len(content) <= c.threshold {
		return content, false
	}
	if c.enc == nil {
		c.log.Warn("storing oversized content uncompressed", "size", len(content))
		return content, false
	}
	packed := c.enc.EncodeAll([]byte(content), nil)
	return base64.StdEncoding.EncodeToString(packed), true
}

// Decompress reverses Compress exactly.
func (c *Codec) Decompress(payload string, compressed bool) (string, error) {
	if !compressed {
		return payload, nil
	}
	if c.dec == nil {
		return "", fmt.Errorf("zstd decoder unavailable")
	}
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", fmt.Errorf("decode payload: %w", err)
	}
	out, err := c.dec.DecodeAll(raw, nil)
	if err != nil {
		return "", fmt.Errorf("decompress payload: %w", err)
	}
	return string(out), nil
}
