// Package media turns uploaded image files into the data URIs stored in
// Listing.Images.
package media

import (
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/sakan/student-housing/internal/core/domain"
	"github.com/sakan/student-housing/internal/metrics"
)

// MaxImageBytes is the largest upload EncodeDataURI accepts.
const MaxImageBytes = 5 << 20

// EncodeDataURI reads an image and returns it as a base64 data URI. The
// media type is sniffed from the content, not taken from a file name.
// It blocks until r is drained; there is no cancellation.
func EncodeDataURI(r io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxImageBytes+1))
	if err != nil {
		metrics.ImagesEncodedTotal.WithLabelValues("read_error").Inc()
		return "", fmt.Errorf("read image: %w", err)
	}
	if len(data) > MaxImageBytes {
		metrics.ImagesEncodedTotal.WithLabelValues("too_large").Inc()
		return "", domain.ErrImageTooLarge
	}

	mtype := mimetype.Detect(data)
	if !strings.HasPrefix(mtype.String(), "image/") {
		metrics.ImagesEncodedTotal.WithLabelValues("not_image").Inc()
		return "", fmt.Errorf("%w: detected %s", domain.ErrNotAnImage, mtype.String())
	}

	metrics.ImagesEncodedTotal.WithLabelValues("ok").Inc()
	return "data:" + mtype.String() + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}
