// Package board defines the format-agnostic board model shared by every
// packager. A Board is a grid of communication buttons across pages, plus
// spanning video-player widgets. Packagers consume this model by value and
// never mutate it; all format handlers should import these types from
// core/board rather than defining their own.
package board

// ActionType discriminates the Action union.
type ActionType string

// Action type constants.
const (
	// ActionSpeak speaks the given text aloud.
	ActionSpeak ActionType = "speak"
	// ActionLink navigates to another page within the board.
	ActionLink ActionType = "link"
	// ActionBack returns to the previously visited page.
	ActionBack ActionType = "back"
	// ActionHome jumps to the board's entry page.
	ActionHome ActionType = "home"
	// ActionExternalVideo opens an external video by identifier.
	ActionExternalVideo ActionType = "external_video"
)

// validActionTypes is the set of valid action types.
var validActionTypes = map[ActionType]bool{
	ActionSpeak:         true,
	ActionLink:          true,
	ActionBack:          true,
	ActionHome:          true,
	ActionExternalVideo: true,
}

// IsValid returns true if the action type is valid.
func (a ActionType) IsValid() bool {
	return validActionTypes[a]
}

// Action is the tagged union of everything a button can do. Type selects
// which of the remaining fields are meaningful: Text for speak, ToPageID for
// link, VideoID/Title for external_video. Back and home carry no data.
type Action struct {
	// Type is the discriminator.
	Type ActionType `json:"type"`

	// Text is the utterance for speak actions.
	Text string `json:"text,omitempty"`

	// ToPageID is the target page for link actions.
	ToPageID string `json:"to_page_id,omitempty"`

	// VideoID is the external video identifier for external_video actions.
	VideoID string `json:"video_id,omitempty"`

	// Title is the display title for external_video actions.
	Title string `json:"title,omitempty"`
}

// Board is the root aggregate handed to a packager.
type Board struct {
	// Name is the display name; packagers sanitize it for archive paths.
	Name string `json:"name"`

	// Rows and Cols define the default page layout. Both must be positive.
	Rows int `json:"rows"`
	Cols int `json:"cols"`

	// Pages is ordered; the first page is the entry/home page.
	Pages []*Page `json:"pages,omitempty"`

	// CoverImage is an optional package thumbnail hint.
	CoverImage *CoverImage `json:"cover_image,omitempty"`
}

// CoverImage describes a package thumbnail: a symbol word plus a background
// color for formats that render their own cover.
type CoverImage struct {
	Symbol string `json:"symbol,omitempty"`
	Color  string `json:"color,omitempty"`
}

// Layout overrides the board default grid for a single page, e.g. a pop-up
// page sized to its content.
type Layout struct {
	Rows int `json:"rows"`
	Cols int `json:"cols"`
}

// Page is one grid of buttons within a board.
type Page struct {
	// ID is unique within the board.
	ID string `json:"id"`

	// Name is the display name.
	Name string `json:"name,omitempty"`

	// Buttons carry explicit (row, col) placement; no two buttons may
	// occupy the same cell.
	Buttons []*Button `json:"buttons,omitempty"`

	// VideoPlayers are spanning widgets; their rectangles may not overlap
	// each other or any button.
	VideoPlayers []*VideoPlayer `json:"video_players,omitempty"`

	// Layout overrides the board default grid when set.
	Layout *Layout `json:"layout,omitempty"`
}

// Button is a single communication cell.
type Button struct {
	// ID is unique within the page.
	ID string `json:"id"`

	// Row and Col are zero-based grid coordinates.
	Row int `json:"row"`
	Col int `json:"col"`

	// Label is the required display text.
	Label string `json:"label"`

	// SpokenText is spoken on activation; falls back to Label when empty.
	SpokenText string `json:"spoken_text,omitempty"`

	// Color is a hex RGB background ("#3B82F6" or "3B82F6"); packagers
	// substitute their own default when empty or malformed.
	Color string `json:"color,omitempty"`

	// Icon is a symbolic icon name, resolved through the symbol table.
	Icon string `json:"icon,omitempty"`

	// SymbolPath is a path to a source symbol asset; takes precedence over
	// Icon when both are set.
	SymbolPath string `json:"symbol_path,omitempty"`

	// SelfClosing hints that the UI should return to the previous page
	// after activation. Packagers encode it faithfully and nothing more.
	SelfClosing bool `json:"self_closing,omitempty"`

	// Action is what the button does; nil means "speak the label".
	Action *Action `json:"action,omitempty"`
}

// VideoPlayer is a spanning widget anchored at its top-left cell. It occupies
// multiple grid cells but is one logical unit: exactly one actionable cell,
// inert filler elsewhere.
type VideoPlayer struct {
	// ID is unique within the page.
	ID string `json:"id"`

	// Row and Col anchor the top-left cell.
	Row int `json:"row"`
	Col int `json:"col"`

	// RowSpan and ColSpan are both at least 1.
	RowSpan int `json:"row_span"`
	ColSpan int `json:"col_span"`

	// VideoID is the external video identifier.
	VideoID string `json:"video_id"`

	// Title is the display title.
	Title string `json:"title,omitempty"`
}

// Speech returns the text spoken when the button activates: SpokenText when
// set, otherwise the label.
func (b *Button) Speech() string {
	if b.SpokenText != "" {
		return b.SpokenText
	}
	return b.Label
}

// EffectiveAction returns the button's action, substituting the documented
// default (speak the label) when none is set.
func (b *Button) EffectiveAction() Action {
	if b.Action != nil {
		return *b.Action
	}
	return Action{Type: ActionSpeak, Text: b.Label}
}

// SymbolWord returns the word used for symbol resolution: the icon name when
// set, otherwise the label. An explicit SymbolPath bypasses resolution
// entirely; packagers check that field first.
func (b *Button) SymbolWord() string {
	if b.Icon != "" {
		return b.Icon
	}
	return b.Label
}

// PageRows returns the page's row count, honoring a layout override.
func (p *Page) PageRows(b *Board) int {
	if p.Layout != nil && p.Layout.Rows > 0 {
		return p.Layout.Rows
	}
	return b.Rows
}

// PageCols returns the page's column count, honoring a layout override.
func (p *Page) PageCols(b *Board) int {
	if p.Layout != nil && p.Layout.Cols > 0 {
		return p.Layout.Cols
	}
	return b.Cols
}

// Covers reports whether the player's spanned rectangle includes (row, col).
func (v *VideoPlayer) Covers(row, col int) bool {
	return row >= v.Row && row < v.Row+v.RowSpan &&
		col >= v.Col && col < v.Col+v.ColSpan
}

// HomePage returns the entry page, or nil for an empty board.
func (b *Board) HomePage() *Page {
	if len(b.Pages) == 0 {
		return nil
	}
	return b.Pages[0]
}

// PageByID returns the page with the given ID, or nil.
func (b *Board) PageByID(id string) *Page {
	for _, p := range b.Pages {
		if p.ID == id {
			return p
		}
	}
	return nil
}
