// Package storage uploads rendered artifacts and hands back public URLs.
//
// The API serves batch results by reference: every generated drawing is
// uploaded to an object store and the response carries only the URLs.
// Backends:
//   - LocalStore: directory-backed, for development and the CLI
//   - BucketStore: HTTP object storage (S3-compatible presigned endpoints,
//     GCS XML API, or any server accepting PUT)
package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/lumafab/agpattern/pkg/export"
	"github.com/lumafab/agpattern/pkg/pattern"
)

// ContentTypes maps output formats to MIME types for uploads.
var ContentTypes = map[string]string{
	export.FormatDXF: "application/dxf",
	export.FormatSVG: "image/svg+xml",
}

// Store uploads artifacts and returns their public URLs.
type Store interface {
	// Upload stores data under name and returns the URL it is served from.
	Upload(ctx context.Context, name string, data []byte, contentType string) (string, error)

	// Close releases backend resources.
	Close() error
}

// ObjectName builds the canonical artifact name for one parameter
// combination, grouped by job:
//
//	{jobID}/{kind}_cell-{cellSizeUM}um_gap-{gapUM}um.{format}
//
// Sizes are micrometers so names stay integral for typical inputs.
func ObjectName(jobID string, kind pattern.Kind, cellSizeUM, gapUM int, format string) string {
	base := strings.ReplaceAll(string(kind), "-", "_")
	return fmt.Sprintf("%s/%s_cell-%dum_gap-%dum.%s", jobID, base, cellSizeUM, gapUM, format)
}
