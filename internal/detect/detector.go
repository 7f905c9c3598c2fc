package detect

import (
	"image"
	"log/slog"
	"time"

	"github.com/disintegration/imaging"
	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"
)

// Detector finds machine-readable codes and URLs on poster images. It never
// fails: any decode or I/O problem is logged and yields empty results, so the
// pipeline continues with no local evidence.
type Detector struct {
	logger *slog.Logger
}

func NewDetector(logger *slog.Logger) *Detector {
	if logger == nil {
		logger = slog.Default()
	}
	return &Detector{logger: logger}
}

// DetectQRCodes decodes QR codes from the image at path, trying every
// preprocessing variant and deduplicating by payload value.
func (d *Detector) DetectQRCodes(path string) []string {
	start := time.Now()

	src, err := imaging.Open(path)
	if err != nil {
		d.logger.Error("detect.qr.open_error", "path", path, "error", err)
		return []string{}
	}

	payloads := []string{}
	seen := map[string]struct{}{}
	for i, variant := range preprocessVariants(src) {
		text, ok := decodeQR(variant)
		if !ok {
			continue
		}
		if _, dup := seen[text]; dup {
			continue
		}
		seen[text] = struct{}{}
		payloads = append(payloads, text)
		d.logger.Info("detect.qr.ok", "path", path, "variant", i, "payload", text)
	}

	d.logger.Info("detect.qr.done",
		"path", path,
		"codes", len(payloads),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return payloads
}

// DetectAll returns decoded QR payloads plus URLs extracted from those
// payloads, both deduplicated.
func (d *Detector) DetectAll(path string) (codes []string, urls []string) {
	codes = d.DetectQRCodes(path)

	urls = []string{}
	seen := map[string]struct{}{}
	for _, payload := range codes {
		for _, u := range ExtractURLs(payload) {
			if _, dup := seen[u]; dup {
				continue
			}
			seen[u] = struct{}{}
			urls = append(urls, u)
		}
	}
	return codes, urls
}

func decodeQR(img image.Image) (string, bool) {
	// gozxing panics on some malformed bitmaps; treat that as a failed decode.
	defer func() { _ = recover() }()

	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return "", false
	}
	result, err := qrcode.NewQRCodeReader().Decode(bmp, map[gozxing.DecodeHintType]interface{}{
		gozxing.DecodeHintType_TRY_HARDER: true,
	})
	if err != nil {
		return "", false
	}
	return result.GetText(), true
}
