package usecase

import (
	"bytes"
	"fmt"

	"github.com/disintegration/imaging"
)

// maxReferenceSide bounds the longest side of the reference image sent
// upstream, keeping payload size and model latency in check.
const maxReferenceSide = 1024

// jpegQuality is the encode quality for the normalized reference.
const jpegQuality = 90

// NormalizeReference decodes a reference image, scales it down so its longest
// side is at most maxReferenceSide, and re-encodes it as JPEG for transport.
func NormalizeReference(data []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidReferenceImage, err)
	}

	bounds := img.Bounds()
	if bounds.Dx() > maxReferenceSide || bounds.Dy() > maxReferenceSide {
		img = imaging.Fit(img, maxReferenceSide, maxReferenceSide, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return nil, fmt.Errorf("failed to encode reference image: %w", err)
	}
	return buf.Bytes(), nil
}
