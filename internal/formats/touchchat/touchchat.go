// Package touchchat emits a single JSON export document: a manifest, device
// configuration and the full vocabulary. The vocabulary carries a derived
// word list (every distinct word a button can speak) and a category list
// used by the importing app to seed its word finder.
package touchchat

import (
	"encoding/json"
	"sort"
	"strings"
	"unicode"

	"github.com/openaac/boardkit/core/board"
	"github.com/openaac/boardkit/core/colors"
	boarderrors "github.com/openaac/boardkit/core/errors"
	"github.com/openaac/boardkit/core/symbols"
	"github.com/openaac/boardkit/internal/formats"
)

const formatName = "touchchat"

// baseCategories seed every export; page names extend the list.
var baseCategories = []string{
	"greetings",
	"basic needs",
	"feelings",
	"actions",
	"people",
	"places",
}

// Packager implements the touchchat export format.
type Packager struct{}

func init() {
	formats.Register(&Packager{})
}

func (p *Packager) Format() string    { return formatName }
func (p *Packager) Extension() string { return ".touchchat" }
func (p *Packager) MIME() string      { return "application/json" }

type export struct {
	Manifest   manifest   `json:"manifest"`
	Config     config     `json:"config"`
	Vocabulary vocabulary `json:"vocabulary"`
}

type manifest struct {
	Format  string `json:"format"`
	Version int    `json:"version"`
	Name    string `json:"name"`
}

type config struct {
	Rows       int    `json:"rows"`
	Cols       int    `json:"cols"`
	HomePageID string `json:"homePageId,omitempty"`
}

type vocabulary struct {
	Pages      []*pageDoc `json:"pages"`
	WordList   []string   `json:"wordList"`
	Categories []string   `json:"categories"`
}

type pageDoc struct {
	ID      string       `json:"id"`
	Name    string       `json:"name,omitempty"`
	Home    bool         `json:"home"`
	Rows    int          `json:"rows"`
	Cols    int          `json:"cols"`
	Buttons []*buttonDoc `json:"buttons"`
	Videos  []*videoDoc  `json:"videos,omitempty"`
}

type buttonDoc struct {
	Row     int          `json:"row"`
	Col     int          `json:"col"`
	Label   string       `json:"label"`
	Message string       `json:"message"`
	Actions []*actionDoc `json:"actions"`
	Icon    *iconDoc     `json:"icon"`
}

// actionDoc always carries the enabled flag; every button has at least one
// action, defaulting to speaking its label.
type actionDoc struct {
	Type    string `json:"type"`
	Enabled bool   `json:"enabled"`
	Text    string `json:"text,omitempty"`
	Target  string `json:"target,omitempty"`
	VideoID string `json:"videoId,omitempty"`
}

type iconDoc struct {
	Type      string `json:"type"`
	Reference string `json:"reference"`
	Color     string `json:"color"`
}

type videoDoc struct {
	Row     int    `json:"row"`
	Col     int    `json:"col"`
	RowSpan int    `json:"rowSpan"`
	ColSpan int    `json:"colSpan"`
	VideoID string `json:"videoId"`
	Title   string `json:"title,omitempty"`
}

// Package renders the whole board as one JSON document.
func (p *Packager) Package(b *board.Board) ([]byte, error) {
	doc := export{
		Manifest: manifest{
			Format:  "touchchat-export",
			Version: 1,
			Name:    b.Name,
		},
		Config: config{
			Rows: b.Rows,
			Cols: b.Cols,
		},
		Vocabulary: vocabulary{
			Pages:      []*pageDoc{},
			WordList:   WordList(b),
			Categories: Categories(b),
		},
	}
	home := b.HomePage()
	if home != nil {
		doc.Config.HomePageID = home.ID
	}
	for _, page := range b.Pages {
		doc.Vocabulary.Pages = append(doc.Vocabulary.Pages, encodePage(b, page, page == home))
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, boarderrors.NewExport(formatName, err)
	}
	return data, nil
}

func encodePage(b *board.Board, page *board.Page, home bool) *pageDoc {
	doc := &pageDoc{
		ID:      page.ID,
		Name:    page.Name,
		Home:    home,
		Rows:    page.PageRows(b),
		Cols:    page.PageCols(b),
		Buttons: []*buttonDoc{},
	}
	for _, btn := range page.Buttons {
		doc.Buttons = append(doc.Buttons, encodeButton(btn))
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
	return doc
}

func encodeButton(btn *board.Button) *buttonDoc {
	icon := &iconDoc{
		Type:      "symbol",
		Reference: symbols.Resolve(btn.SymbolWord()).Filename(),
		Color:     colors.ToRGBA8(btn.Color),
	}
	if btn.SymbolPath != "" {
		icon.Type = "path"
		icon.Reference = btn.SymbolPath
	}
	return &buttonDoc{
		Row:     btn.Row,
		Col:     btn.Col,
		Label:   btn.Label,
		Message: btn.Speech(),
		Actions: []*actionDoc{encodeAction(btn)},
		Icon:    icon,
	}
}

func encodeAction(btn *board.Button) *actionDoc {
	act := btn.EffectiveAction()
	switch act.Type {
	case board.ActionSpeak:
		text := act.Text
		if text == "" {
			text = btn.Speech()
		}
		return &actionDoc{Type: "speak", Enabled: true, Text: text}
	case board.ActionLink:
		return &actionDoc{Type: "navigate", Enabled: true, Target: act.ToPageID}
	case board.ActionBack:
		return &actionDoc{Type: "back", Enabled: true}
	case board.ActionHome:
		return &actionDoc{Type: "home", Enabled: true}
	case board.ActionExternalVideo:
		return &actionDoc{Type: "video", Enabled: true, VideoID: act.VideoID}
	default:
		return &actionDoc{Type: "speak", Enabled: true, Text: btn.Speech()}
	}
}

// WordList derives the vocabulary word list from every button label on the
// board: lowercase, punctuation stripped, single-letter tokens dropped,
// deduplicated, sorted. Spoken-text overrides stay out of the list; only
// what is visible on a button enters the vocabulary.
func WordList(b *board.Board) []string {
	seen := make(map[string]bool)
	for _, page := range b.Pages {
		for _, btn := range page.Buttons {
			for _, token := range tokenize(btn.Label) {
				seen[token] = true
			}
		}
	}
	words := make([]string, 0, len(seen))
	for w := range seen {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}

// Categories returns the base category list extended with every distinct
// page name, deduplicated case-insensitively.
func Categories(b *board.Board) []string {
	out := make([]string, 0, len(baseCategories)+len(b.Pages))
	seen := make(map[string]bool, len(baseCategories))
	for _, c := range baseCategories {
		out = append(out, c)
		seen[c] = true
	}
	var names []string
	for _, page := range b.Pages {
		name := strings.ToLower(strings.TrimSpace(page.Name))
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	sort.Strings(names)
	return append(out, names...)
}

func tokenize(text string) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r) && r != '\''
	})
	var tokens []string
	for _, f := range fields {
		f = strings.ToLower(strings.Trim(f, "'"))
		if len([]rune(f)) <= 1 {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}
