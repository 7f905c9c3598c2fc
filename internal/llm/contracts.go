package llm

import (
	"context"

	"github.com/MichaelStober/EventViewer/internal/event"
)

// ExtractRequest carries one poster image plus the locally detected signals
// that get embedded into the instruction as hints.
type ExtractRequest struct {
	ImagePath string
	QRCodes   []string
	URLs      []string
}

// VisionExtractor is the interface the pipeline depends on.
type VisionExtractor interface {
	// AnalyzePoster sends the image to the model and parses the reply into a
	// validated record. Any failure (unreadable image, transport, malformed
	// reply) yields a nil record and an error; nothing is retried here.
	AnalyzePoster(ctx context.Context, req ExtractRequest) (*event.Record, error)

	// ValidateKey confirms the API credential with a minimal no-image request.
	// A failure here is fatal for the whole pipeline.
	ValidateKey(ctx context.Context) error
}
