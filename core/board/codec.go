package board

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Decode reads a board from JSON.
func Decode(r io.Reader) (*Board, error) {
	var b Board
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&b); err != nil {
		return nil, fmt.Errorf("failed to parse board: %w", err)
	}
	return &b, nil
}

// LoadFile reads a board from a JSON file.
func LoadFile(path string) (*Board, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open board file: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Marshal serializes a board to indented JSON.
func Marshal(b *Board) ([]byte, error) {
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize board: %w", err)
	}
	return data, nil
}
