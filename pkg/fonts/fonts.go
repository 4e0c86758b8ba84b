// Package fonts provides the embedded typeface used for text masking.
//
// The Go Regular typeface ships as a Go package, so it is compiled into
// the binary and available without external font files or lookup paths.
package fonts

import (
	"sync"

	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
)

// FamilyName is the display name of the embedded typeface.
const FamilyName = "Go Regular"

var (
	regular     *sfnt.Font
	regularErr  error
	regularOnce sync.Once
)

// Regular returns the parsed Go Regular typeface. Parsing happens once on
// first access; subsequent calls return the cached font.
func Regular() (*sfnt.Font, error) {
	regularOnce.Do(func() {
		regular, regularErr = sfnt.Parse(goregular.TTF)
	})
	return regular, regularErr
}
