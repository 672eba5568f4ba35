// Package assets bundles static branding resources compiled into the binary.
package assets

import (
	_ "embed"
	"errors"
)

//go:embed thumbnail.png
var thumbnail []byte

// ErrMissingAsset indicates a bundled asset is empty or absent.
var ErrMissingAsset = errors.New("bundled asset missing")

// Thumbnail returns the default branding thumbnail embedded in the binary.
// Callers treat failure as non-fatal and fall back to a stock symbol
// reference; an export never fails over a missing thumbnail.
func Thumbnail() ([]byte, error) {
	if len(thumbnail) == 0 {
		return nil, ErrMissingAsset
	}
	return thumbnail, nil
}
