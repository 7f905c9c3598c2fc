package detect

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"
	"github.com/stretchr/testify/require"
)

// writeQRPoster encodes payload into a QR code and saves it as a PNG.
func writeQRPoster(t *testing.T, payload string) string {
	t.Helper()

	writer := qrcode.NewQRCodeWriter()
	matrix, err := writer.Encode(payload, gozxing.BarcodeFormat_QR_CODE, 256, 256, nil)
	require.NoError(t, err)

	img := image.NewGray(image.Rect(0, 0, matrix.GetWidth(), matrix.GetHeight()))
	for y := 0; y < matrix.GetHeight(); y++ {
		for x := 0; x < matrix.GetWidth(); x++ {
			if matrix.Get(x, y) {
				img.SetGray(x, y, color.Gray{Y: 0})
			} else {
				img.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}

	path := filepath.Join(t.TempDir(), "poster.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
	return path
}

func TestDetectAll_QRWithURL(t *testing.T) {
	path := writeQRPoster(t, "https://tickets.example.de/shop")

	detector := NewDetector(nil)
	codes, urls := detector.DetectAll(path)

	// The payload decodes from several preprocessing variants but is
	// reported once.
	require.Equal(t, []string{"https://tickets.example.de/shop"}, codes)
	require.Equal(t, []string{"https://tickets.example.de/shop"}, urls)
}

func TestDetectAll_NonURLPayload(t *testing.T) {
	path := writeQRPoster(t, "Einlass ab 19 Uhr")

	detector := NewDetector(nil)
	codes, urls := detector.DetectAll(path)
	require.Equal(t, []string{"Einlass ab 19 Uhr"}, codes)
	require.Empty(t, urls)
}

func TestDetectAll_UnreadableImage(t *testing.T) {
	detector := NewDetector(nil)
	codes, urls := detector.DetectAll(filepath.Join(t.TempDir(), "missing.jpg"))
	require.Empty(t, codes)
	require.Empty(t, urls)
}

func TestDetectAll_CorruptImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.png")
	require.NoError(t, os.WriteFile(path, []byte("definitely not a png"), 0o644))

	detector := NewDetector(nil)
	codes, urls := detector.DetectAll(path)
	require.Empty(t, codes)
	require.Empty(t, urls)
}

func TestPreprocessVariants(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 32, 32))
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			if x < 16 {
				src.SetGray(x, y, color.Gray{Y: 40})
			} else {
				src.SetGray(x, y, color.Gray{Y: 210})
			}
		}
	}

	variants := preprocessVariants(src)
	require.Len(t, variants, 4)

	// The Otsu variant must separate the two halves into pure black/white.
	binary, ok := variants[1].(*image.Gray)
	require.True(t, ok)
	require.Equal(t, uint8(0), binary.GrayAt(4, 4).Y)
	require.Equal(t, uint8(255), binary.GrayAt(28, 4).Y)
}
