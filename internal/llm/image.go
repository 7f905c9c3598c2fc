package llm

import (
	"bytes"
	"encoding/base64"

	"github.com/disintegration/imaging"

	"github.com/MichaelStober/EventViewer/internal/common"
)

// maxImageDimension is the largest edge the vision API accepts without
// server-side downscaling.
const maxImageDimension = 1568

const jpegQuality = 85

// PrepareImage loads the poster, downscales it so the largest dimension fits
// maxImageDimension, and re-encodes it as base64 JPEG for the API payload.
func PrepareImage(path string) (data string, mediaType string, err error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return "", "", common.NewAppError("IMAGE_ERROR", "open poster image", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() > maxImageDimension || bounds.Dy() > maxImageDimension {
		img = imaging.Fit(img, maxImageDimension, maxImageDimension, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return "", "", common.NewAppError("IMAGE_ERROR", "encode poster image", err)
	}

	return base64.StdEncoding.EncodeToString(buf.Bytes()), "image/jpeg", nil
}
