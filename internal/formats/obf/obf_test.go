package obf

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"io"
	"strings"
	"testing"

	"github.com/openaac/boardkit/core/board"
)

func packageBoard(t *testing.T, b *board.Board) ([]byte, *boardDoc, *manifestDoc) {
	t.Helper()
	p := &Packager{}
	data, err := p.Package(b)
	if err != nil {
		t.Fatalf("Package failed: %v", err)
	}
	var doc boardDoc
	readZipJSON(t, data, "board.obf", &doc)
	var m manifestDoc
	readZipJSON(t, data, "manifest.json", &m)
	return data, &doc, &m
}

func readZipJSON(t *testing.T, data []byte, name string, v any) {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("reading archive: %v", err)
	}
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("opening %s: %v", name, err)
		}
		defer rc.Close()
		content, err := io.ReadAll(rc)
		if err != nil {
			t.Fatalf("reading %s: %v", name, err)
		}
		if err := json.Unmarshal(content, v); err != nil {
			t.Fatalf("decoding %s: %v", name, err)
		}
		return
	}
	t.Fatalf("archive is missing %s", name)
}

func testBoard() *board.Board {
	return &board.Board{
		Name: "My Board",
		Rows: 2,
		Cols: 3,
		Pages: []*board.Page{
			{
				ID: "home",
				Buttons: []*board.Button{
					{ID: "b1", Row: 0, Col: 0, Label: "Eat", Color: "3B82F6"},
					{ID: "b2", Row: 0, Col: 2, Label: "More", SpokenText: "I want more", Action: &board.Action{Type: board.ActionLink, ToPageID: "food"}},
				},
				VideoPlayers: []*board.VideoPlayer{
					{ID: "v1", Row: 1, Col: 0, RowSpan: 1, ColSpan: 2, VideoID: "abc123", Title: "Song"},
				},
			},
			{
				ID: "food",
				Buttons: []*board.Button{
					{ID: "b3", Row: 0, Col: 0, Label: "Back", Action: &board.Action{Type: board.ActionBack}},
				},
			},
		},
	}
}

func TestPackageArchiveLayout(t *testing.T) {
	data, doc, m := packageBoard(t, testBoard())

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatal(err)
	}
	if len(zr.File) != 2 {
		t.Fatalf("archive should hold exactly board.obf and manifest.json, got %d entries", len(zr.File))
	}

	if m.Format != specVersion || m.Root != "board.obf" {
		t.Fatalf("manifest = %+v", m)
	}
	if m.Paths.Boards[doc.ID] != "board.obf" {
		t.Fatalf("manifest does not map board id %q to the board document", doc.ID)
	}
	if m.Paths.Images == nil || m.Paths.Sounds == nil {
		t.Fatal("manifest path tables must be present even when empty")
	}
}

func TestPackageButtonRecords(t *testing.T) {
	_, doc, _ := packageBoard(t, testBoard())

	byID := make(map[string]*buttonDoc)
	for _, b := range doc.Buttons {
		byID[b.ID] = b
	}
	// 3 buttons across both pages plus the video player record
	if len(doc.Buttons) != 4 {
		t.Fatalf("expected 4 button records, got %d", len(doc.Buttons))
	}

	eat := byID["b1"]
	if eat.BackgroundColor != "rgb(59, 130, 246)" {
		t.Fatalf("background = %q", eat.BackgroundColor)
	}
	if eat.Vocalization != "" {
		t.Fatalf("vocalization should be omitted when equal to the label, got %q", eat.Vocalization)
	}
	if eat.Action != "" {
		t.Fatalf("default speak action should be omitted, got %q", eat.Action)
	}
	if eat.ImageID == "" || !strings.HasPrefix(eat.ImageID, "img_") {
		t.Fatalf("image id = %q", eat.ImageID)
	}

	more := byID["b2"]
	if more.Vocalization != "I want more" {
		t.Fatalf("vocalization = %q", more.Vocalization)
	}
	if more.Action != ":board:food" {
		t.Fatalf("link action = %q", more.Action)
	}
	if more.BackgroundColor != defaultBackground {
		t.Fatalf("missing color should fall back to the default blue, got %q", more.BackgroundColor)
	}

	back := byID["b3"]
	if back.Action != ":back" {
		t.Fatalf("back action = %q", back.Action)
	}
}

func TestPackageVideoButton(t *testing.T) {
	_, doc, _ := packageBoard(t, testBoard())

	var video *buttonDoc
	for _, b := range doc.Buttons {
		if b.ID == "v1" {
			video = b
		}
	}
	if video == nil {
		t.Fatal("video player record missing")
	}
	if video.Width != 2 || video.Height != 1 {
		t.Fatalf("video spans = %dx%d", video.Width, video.Height)
	}
	if !strings.HasPrefix(video.Action, "+") || !strings.Contains(video.Action, "abc123") {
		t.Fatalf("video action = %q", video.Action)
	}
	if video.BackgroundColor != videoBackground {
		t.Fatalf("video background = %q", video.BackgroundColor)
	}
}

func TestGridOrderConsistency(t *testing.T) {
	_, doc, _ := packageBoard(t, testBoard())

	if doc.Grid.Rows != 2 || doc.Grid.Columns != 3 {
		t.Fatalf("grid = %dx%d", doc.Grid.Rows, doc.Grid.Columns)
	}

	emitted := make(map[string]int)
	for _, b := range doc.Buttons {
		emitted[b.ID]++
	}
	seen := make(map[string]int)
	for _, row := range doc.Grid.Order {
		if len(row) != doc.Grid.Columns {
			t.Fatalf("row length %d, want %d", len(row), doc.Grid.Columns)
		}
		for _, id := range row {
			if id == nil {
				continue
			}
			if emitted[*id] != 1 {
				t.Fatalf("matrix references id %q emitted %d times", *id, emitted[*id])
			}
			seen[*id]++
		}
	}
	for id, n := range seen {
		if n != 1 {
			t.Fatalf("id %q appears %d times in the matrix", id, n)
		}
	}
	// second-page buttons stay out of the matrix
	if seen["b3"] != 0 {
		t.Fatal("matrix must only reference first-page elements")
	}
	if *doc.Grid.Order[0][0] != "b1" || doc.Grid.Order[0][1] != nil || *doc.Grid.Order[0][2] != "b2" {
		t.Fatalf("unexpected first row: %v", doc.Grid.Order[0])
	}
	if *doc.Grid.Order[1][0] != "v1" {
		t.Fatal("video player should occupy its top-left cell")
	}
}

func TestImageIDsDeterministic(t *testing.T) {
	_, doc1, _ := packageBoard(t, testBoard())
	_, doc2, _ := packageBoard(t, testBoard())

	ids1 := imageIDsByButton(doc1)
	ids2 := imageIDsByButton(doc2)
	for id, img := range ids1 {
		if ids2[id] != img {
			t.Fatalf("image id for %q differs across exports: %q vs %q", id, img, ids2[id])
		}
	}
	if doc1.ID == doc2.ID {
		t.Fatal("board id should be regenerated per export")
	}
}

func TestImagesDeduplicated(t *testing.T) {
	b := &board.Board{
		Name: "Dup",
		Rows: 1,
		Cols: 2,
		Pages: []*board.Page{
			{
				ID: "home",
				Buttons: []*board.Button{
					{ID: "b1", Row: 0, Col: 0, Label: "x", SymbolPath: "symbols/eat.png"},
					{ID: "b2", Row: 0, Col: 1, Label: "y", SymbolPath: "other/eat.png"},
				},
			},
		},
	}
	_, doc, _ := packageBoard(t, b)

	if len(doc.Images) != 1 {
		t.Fatalf("identical filenames should share one image entry, got %d", len(doc.Images))
	}
	if doc.Images[0].URL != "/api/symbols/eat.png" {
		t.Fatalf("image url = %q", doc.Images[0].URL)
	}
}

func TestAbsoluteImageURLPassThrough(t *testing.T) {
	b := &board.Board{
		Name: "Abs",
		Rows: 1,
		Cols: 1,
		Pages: []*board.Page{
			{
				ID: "home",
				Buttons: []*board.Button{
					{ID: "b1", Row: 0, Col: 0, Label: "x", SymbolPath: "https://cdn.example.com/eat.png"},
				},
			},
		},
	}
	_, doc, _ := packageBoard(t, b)
	if doc.Images[0].URL != "https://cdn.example.com/eat.png" {
		t.Fatalf("absolute url should pass through, got %q", doc.Images[0].URL)
	}
}

func TestPackageEmptyBoard(t *testing.T) {
	_, doc, m := packageBoard(t, &board.Board{Name: "Empty", Rows: 2, Cols: 2})

	if len(doc.Buttons) != 0 || len(doc.Images) != 0 {
		t.Fatalf("empty board should emit no buttons or images: %+v", doc)
	}
	if doc.Grid.Rows != 2 || doc.Grid.Columns != 2 {
		t.Fatalf("grid = %+v", doc.Grid)
	}
	for _, row := range doc.Grid.Order {
		for _, id := range row {
			if id != nil {
				t.Fatal("empty board matrix should be all null")
			}
		}
	}
	if m.Root != "board.obf" {
		t.Fatalf("manifest = %+v", m)
	}
}

func imageIDsByButton(doc *boardDoc) map[string]string {
	out := make(map[string]string)
	for _, b := range doc.Buttons {
		out[b.ID] = b.ImageID
	}
	return out
}
