// Package snap emits .snappkg archives: a ZIP of a manifest, one JSON
// document per page, shared settings and a README. Unlike the gridset
// format this one carries every page of the board, and video players keep
// their native row and column spans.
package snap

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/openaac/boardkit/core/board"
	"github.com/openaac/boardkit/core/colors"
	boarderrors "github.com/openaac/boardkit/core/errors"
	"github.com/openaac/boardkit/core/symbols"
	"github.com/openaac/boardkit/internal/archive"
	"github.com/openaac/boardkit/internal/formats"
)

const (
	formatName = "snap"

	manifestVersion = 1

	// defaultButtonColor backs buttons whose color is missing or malformed.
	defaultButtonColor = "#2196F3FF"

	videoURLTemplate = "https://www.youtube.com/watch?v=%s"
)

// Packager implements the snap package format.
type Packager struct{}

func init() {
	formats.Register(&Packager{})
}

func (p *Packager) Format() string    { return formatName }
func (p *Packager) Extension() string { return ".snappkg" }
func (p *Packager) MIME() string      { return "application/zip" }

type manifest struct {
	Format    string          `json:"format"`
	Version   int             `json:"version"`
	Name      string          `json:"name"`
	Generated string          `json:"generated"`
	Rows      int             `json:"rows"`
	Cols      int             `json:"cols"`
	PageCount int             `json:"pageCount"`
	HomePage  string          `json:"homePage,omitempty"`
	Pages     []manifestEntry `json:"pages"`
}

type manifestEntry struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
	File string `json:"file"`
}

type pageDoc struct {
	ID      string                `json:"id"`
	Name    string                `json:"name,omitempty"`
	Rows    int                   `json:"rows"`
	Cols    int                   `json:"cols"`
	Buttons map[string]*buttonDoc `json:"buttons"`
	Videos  []*videoDoc           `json:"videos,omitempty"`
}

type buttonDoc struct {
	Label   string     `json:"label"`
	Message string     `json:"message"`
	Symbol  string     `json:"symbol,omitempty"`
	Style   *styleDoc  `json:"style"`
	Action  *actionDoc `json:"action"`
	Close   bool       `json:"closeAfterUse,omitempty"`
}

type styleDoc struct {
	BackgroundColor string `json:"backgroundColor"`
}

type actionDoc struct {
	Type   string `json:"type"`
	Text   string `json:"text,omitempty"`
	Target string `json:"target,omitempty"`
	URL    string `json:"url,omitempty"`
}

type videoDoc struct {
	Row     int    `json:"row"`
	Col     int    `json:"col"`
	RowSpan int    `json:"rowSpan"`
	ColSpan int    `json:"colSpan"`
	VideoID string `json:"videoId"`
	Title   string `json:"title,omitempty"`
}

type settingsDoc struct {
	SpeechRate  int    `json:"speechRate"`
	SpeechVoice string `json:"speechVoice"`
	ScanMode    string `json:"scanMode"`
}

// Package renders every page of the board as its own JSON document and
// wires them together through the manifest.
func (p *Packager) Package(b *board.Board) ([]byte, error) {
	m := manifest{
		Format:    "snap-package",
		Version:   manifestVersion,
		Name:      b.Name,
		Generated: time.Now().UTC().Format(time.RFC3339),
		Rows:      b.Rows,
		Cols:      b.Cols,
		PageCount: len(b.Pages),
	}
	if home := b.HomePage(); home != nil {
		m.HomePage = home.ID
	}

	zb := archive.NewZipBuilder()
	for i, page := range b.Pages {
		file := fmt.Sprintf("pages/page-%d.json", i+1)
		m.Pages = append(m.Pages, manifestEntry{ID: page.ID, Name: page.Name, File: file})

		doc, err := encodePage(b, page)
		if err != nil {
			return nil, boarderrors.NewExport(formatName, err)
		}
		zb.AddFile(file, doc)
	}
	if m.Pages == nil {
		m.Pages = []manifestEntry{}
	}

	manifestJSON, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, boarderrors.NewExport(formatName, err)
	}
	settingsJSON, err := json.MarshalIndent(defaultSettings(), "", "  ")
	if err != nil {
		return nil, boarderrors.NewExport(formatName, err)
	}

	zb.AddFile("manifest.json", manifestJSON)
	zb.AddFile("settings.json", settingsJSON)
	zb.AddFile("README.txt", []byte(readme(b)))

	data, err := zb.Bytes()
	if err != nil {
		return nil, boarderrors.NewExport(formatName, err)
	}
	return data, nil
}

func encodePage(b *board.Board, page *board.Page) ([]byte, error) {
	doc := pageDoc{
		ID:      page.ID,
		Name:    page.Name,
		Rows:    page.PageRows(b),
		Cols:    page.PageCols(b),
		Buttons: make(map[string]*buttonDoc, len(page.Buttons)),
	}
	for _, btn := range page.Buttons {
		key := fmt.Sprintf("%d-%d", btn.Row, btn.Col)
		doc.Buttons[key] = encodeButton(btn)
	}
	for _, vp := range page.VideoPlayers {
		doc.Videos = append(doc.Videos, &videoDoc{
			Row:     vp.Row,
			Col:     vp.Col,
			RowSpan: vp.RowSpan,
			ColSpan: vp.ColSpan,
			VideoID: vp.VideoID,
			Title:   vp.Title,
		})
	}
	return json.MarshalIndent(doc, "", "  ")
}

func encodeButton(btn *board.Button) *buttonDoc {
	color := defaultButtonColor
	if _, ok := colors.Parse(btn.Color); ok {
		color = colors.ToRGBA8(btn.Color)
	}
	return &buttonDoc{
		Label:   btn.Label,
		Message: btn.Speech(),
		Symbol:  iconClass(btn),
		Style:   &styleDoc{BackgroundColor: color},
		Action:  encodeAction(btn),
		Close:   btn.SelfClosing,
	}
}

// iconClass derives the button's icon-class. An explicit symbol path
// contributes its base filename re-encoded in the class convention; plain
// words resolve through the symbol library.
func iconClass(btn *board.Button) string {
	if btn.SymbolPath != "" {
		base := btn.SymbolPath
		if i := strings.LastIndexAny(base, `/\`); i >= 0 {
			base = base[i+1:]
		}
		if i := strings.LastIndex(base, "."); i > 0 {
			base = base[:i]
		}
		base = strings.ToLower(strings.ReplaceAll(base, "_", " "))
		return symbols.Symbol{Word: base}.IconClass()
	}
	return symbols.Resolve(btn.SymbolWord()).IconClass()
}

func encodeAction(btn *board.Button) *actionDoc {
	act := btn.EffectiveAction()
	switch act.Type {
	case board.ActionSpeak:
		text := act.Text
		if text == "" {
			text = btn.Speech()
		}
		return &actionDoc{Type: "speak", Text: text}
	case board.ActionLink:
		return &actionDoc{Type: "navigate", Target: act.ToPageID}
	case board.ActionBack:
		return &actionDoc{Type: "back"}
	case board.ActionHome:
		return &actionDoc{Type: "home"}
	case board.ActionExternalVideo:
		// this format has no video action of its own; external videos open
		// as a generic web page on the video site
		return &actionDoc{Type: "webpage", URL: fmt.Sprintf(videoURLTemplate, act.VideoID)}
	default:
		return &actionDoc{Type: "none"}
	}
}

func defaultSettings() settingsDoc {
	return settingsDoc{
		SpeechRate:  100,
		SpeechVoice: "default",
		ScanMode:    "off",
	}
}

func readme(b *board.Board) string {
	return fmt.Sprintf("%s\n\nThis package was exported by boardkit. Import it into your AAC app\nto use the board. Each page lives under pages/ as a JSON document;\nmanifest.json lists them in order.\n", b.Name)
}
