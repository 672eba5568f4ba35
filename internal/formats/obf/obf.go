// Package obf emits .obz archives following the Open Board Format: a ZIP
// holding a spec-versioned board document and a manifest mapping the board
// id to it. Buttons from every page are emitted as flat records; the grid
// order matrix is computed from the first page only.
package obf

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/zeebo/blake3"

	"github.com/openaac/boardkit/core/board"
	"github.com/openaac/boardkit/core/colors"
	boarderrors "github.com/openaac/boardkit/core/errors"
	"github.com/openaac/boardkit/core/symbols"
	"github.com/openaac/boardkit/internal/archive"
	"github.com/openaac/boardkit/internal/formats"
)

const (
	formatName = "obf"

	specVersion = "open-board-0.1"

	boardFile = "board.obf"

	// defaultBackground backs buttons with a missing or malformed color.
	defaultBackground = "rgb(33, 150, 243)"

	borderColor = "rgb(221, 221, 221)"

	// videoBackground marks video-player buttons apart from regular ones.
	videoBackground = "rgb(55, 65, 81)"

	// symbolURLPrefix synthesizes a resolvable URL for relative symbol
	// references; absolute URLs pass through untouched.
	symbolURLPrefix = "/api/symbols/"

	imageSize = 300

	videoURLTemplate = "https://www.youtube.com/watch?v=%s"
)

// Packager implements the Open Board Format.
type Packager struct{}

func init() {
	formats.Register(&Packager{})
}

func (p *Packager) Format() string    { return formatName }
func (p *Packager) Extension() string { return ".obz" }
func (p *Packager) MIME() string      { return "application/zip" }

type boardDoc struct {
	Format  string       `json:"format"`
	ID      string       `json:"id"`
	Locale  string       `json:"locale"`
	Name    string       `json:"name"`
	Buttons []*buttonDoc `json:"buttons"`
	Grid    gridDoc      `json:"grid"`
	Images  []*imageDoc  `json:"images"`
	Sounds  []string     `json:"sounds"`
}

type buttonDoc struct {
	ID              string `json:"id"`
	Label           string `json:"label"`
	Vocalization    string `json:"vocalization,omitempty"`
	ImageID         string `json:"image_id,omitempty"`
	BackgroundColor string `json:"background_color"`
	BorderColor     string `json:"border_color"`
	Action          string `json:"action,omitempty"`
	Width           int    `json:"width,omitempty"`
	Height          int    `json:"height,omitempty"`
}

type gridDoc struct {
	Rows    int         `json:"rows"`
	Columns int         `json:"columns"`
	Order   [][]*string `json:"order"`
}

type imageDoc struct {
	ID     string `json:"id"`
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type manifestDoc struct {
	Format string       `json:"format"`
	Root   string       `json:"root"`
	Paths  manifestPath `json:"paths"`
}

type manifestPath struct {
	Boards map[string]string `json:"boards"`
	Images map[string]string `json:"images"`
	Sounds map[string]string `json:"sounds"`
}

// Package renders the board document and manifest and seals them into a
// deflate-compressed ZIP. Any archive assembly failure surfaces as a single
// export error; the low-level cause is logged upstream, never exposed.
func (p *Packager) Package(b *board.Board) ([]byte, error) {
	boardID := newBoardID()

	doc := buildBoard(b, boardID)
	boardJSON, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, boarderrors.NewExport(formatName, err)
	}

	m := manifestDoc{
		Format: specVersion,
		Root:   boardFile,
		Paths: manifestPath{
			Boards: map[string]string{boardID: boardFile},
			Images: map[string]string{},
			Sounds: map[string]string{},
		},
	}
	manifestJSON, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, boarderrors.NewExport(formatName, err)
	}

	zb := archive.NewZipBuilder()
	zb.AddFile(boardFile, boardJSON)
	zb.AddFile("manifest.json", manifestJSON)
	data, err := zb.Bytes()
	if err != nil {
		return nil, boarderrors.NewExport(formatName, err)
	}
	return data, nil
}

func newBoardID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

func buildBoard(b *board.Board, boardID string) *boardDoc {
	doc := &boardDoc{
		Format:  specVersion,
		ID:      boardID,
		Locale:  "en",
		Name:    b.Name,
		Buttons: []*buttonDoc{},
		Images:  []*imageDoc{},
		Sounds:  []string{},
	}

	seenImages := make(map[string]bool)
	for _, page := range b.Pages {
		for _, btn := range page.Buttons {
			record, img := encodeButton(btn)
			doc.Buttons = append(doc.Buttons, record)
			if img != nil && !seenImages[img.ID] {
				seenImages[img.ID] = true
				doc.Images = append(doc.Images, img)
			}
		}
		for _, vp := range page.VideoPlayers {
			doc.Buttons = append(doc.Buttons, encodeVideo(vp))
		}
	}

	doc.Grid = buildGrid(b)
	return doc
}

func encodeButton(btn *board.Button) (*buttonDoc, *imageDoc) {
	record := &buttonDoc{
		ID:              btn.ID,
		Label:           btn.Label,
		BackgroundColor: rgbColor(btn.Color),
		BorderColor:     borderColor,
	}
	if speech := btn.Speech(); speech != btn.Label {
		record.Vocalization = speech
	}

	act := btn.EffectiveAction()
	switch act.Type {
	case board.ActionSpeak:
		// speaking the label is the format's implicit default; an explicit
		// overriding text rides on the vocalization field instead
		if act.Text != "" && act.Text != btn.Label {
			record.Vocalization = act.Text
		}
	case board.ActionLink:
		record.Action = ":board:" + act.ToPageID
	case board.ActionBack:
		record.Action = ":back"
	case board.ActionHome:
		record.Action = ":home"
	case board.ActionExternalVideo:
		record.Action = "+" + fmt.Sprintf(videoURLTemplate, act.VideoID)
	}

	ref := btn.SymbolPath
	if ref == "" {
		ref = symbols.Resolve(btn.SymbolWord()).Filename()
	}
	record.ImageID = imageID(ref)
	return record, &imageDoc{
		ID:     record.ImageID,
		URL:    imageURL(ref),
		Width:  imageSize,
		Height: imageSize,
	}
}

func encodeVideo(vp *board.VideoPlayer) *buttonDoc {
	return &buttonDoc{
		ID:              vp.ID,
		Label:           vp.Title,
		BackgroundColor: videoBackground,
		BorderColor:     borderColor,
		Action:          "+" + fmt.Sprintf(videoURLTemplate, vp.VideoID),
		Width:           vp.ColSpan,
		Height:          vp.RowSpan,
	}
}

// buildGrid computes the order matrix from the first page. Every non-null
// entry references an emitted button id; video players occupy their
// top-left cell.
func buildGrid(b *board.Board) gridDoc {
	page := b.HomePage()
	rows, cols := b.Rows, b.Cols
	if page != nil {
		rows, cols = page.PageRows(b), page.PageCols(b)
	}
	if rows < 0 {
		rows = 0
	}
	if cols < 0 {
		cols = 0
	}

	order := make([][]*string, rows)
	for r := range order {
		order[r] = make([]*string, cols)
	}
	if page != nil {
		for _, btn := range page.Buttons {
			if btn.Row >= 0 && btn.Row < rows && btn.Col >= 0 && btn.Col < cols {
				id := btn.ID
				order[btn.Row][btn.Col] = &id
			}
		}
		for _, vp := range page.VideoPlayers {
			if vp.Row >= 0 && vp.Row < rows && vp.Col >= 0 && vp.Col < cols {
				id := vp.ID
				order[vp.Row][vp.Col] = &id
			}
		}
	}
	return gridDoc{Rows: rows, Columns: cols, Order: order}
}

// imageID derives a stable identifier from a symbol reference's filename.
// The same filename always hashes to the same id.
func imageID(ref string) string {
	sum := blake3.Sum256([]byte(baseName(ref)))
	return fmt.Sprintf("img_%x", sum[:4])
}

func imageURL(ref string) string {
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref
	}
	return symbolURLPrefix + baseName(ref)
}

// baseName returns the final path segment of a symbol reference, handling
// both separator conventions.
func baseName(ref string) string {
	if i := strings.LastIndexAny(ref, `/\`); i >= 0 {
		return ref[i+1:]
	}
	return ref
}

func rgbColor(hex string) string {
	if c, ok := colors.RGBFunc(hex); ok {
		return c
	}
	return defaultBackground
}
