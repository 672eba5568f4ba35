// Package gridset emits Grid 3 gridset archives: a ZIP containing a FileMap,
// per-grid XML documents, shared settings and a style sheet. Only the first
// page of a board is emitted; Grid 3 links between grids by name and a
// faithful multi-grid export is tracked separately.
package gridset

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/openaac/boardkit/core/board"
	"github.com/openaac/boardkit/core/colors"
	"github.com/openaac/boardkit/core/encoding"
	boarderrors "github.com/openaac/boardkit/core/errors"
	"github.com/openaac/boardkit/core/symbols"
	boardxml "github.com/openaac/boardkit/core/xml"
	"github.com/openaac/boardkit/internal/archive"
	"github.com/openaac/boardkit/internal/assets"
	"github.com/openaac/boardkit/internal/formats"
	"github.com/openaac/boardkit/internal/validation"
)

const (
	formatName = "gridset"

	// baseStyleKey is the shared style every cell derives from.
	baseStyleKey = "vocab cell"

	// videoCellColor backs every cell spanned by a video player, live and
	// placeholder alike, so the block reads as one element on screen.
	videoCellColor = "#333333FF"

	videoURLTemplate = "https://www.youtube.com/watch?v=%s"

	thumbnailPath = "Settings0/thumbnail.png"
)

// Packager implements the gridset format.
type Packager struct{}

func init() {
	formats.Register(&Packager{})
}

func (p *Packager) Format() string    { return formatName }
func (p *Packager) Extension() string { return ".gridset" }
func (p *Packager) MIME() string      { return "application/zip" }

// Package renders the board's home page as a single grid and wraps it with
// the FileMap, settings and styles documents Grid 3 expects.
func (p *Packager) Package(b *board.Board) ([]byte, error) {
	name := validation.SanitizeName(b.Name)
	gridPath := fmt.Sprintf("Grids/%s/grid.xml", name)

	gridXML := buildGrid(b, uuid.NewString())
	if err := boardxml.WellFormed([]byte(gridXML)); err != nil {
		return nil, boarderrors.NewExport(formatName, err)
	}

	// the thumbnail is best effort: when the bundled asset is unavailable
	// the settings document references a stock symbol instead, never failing
	// the export
	thumb, thumbErr := assets.Thumbnail()
	thumbRef := thumbnailPath
	if thumbErr != nil {
		thumbRef = stockThumbnail(b)
	}
	thumbColor := ""
	if b.CoverImage != nil && b.CoverImage.Color != "" {
		thumbColor = colors.ToRGBA8(b.CoverImage.Color)
	}

	zb := archive.NewZipBuilder()
	zb.AddFile("FileMap.xml", []byte(buildFileMap(gridPath, thumbErr == nil)))
	zb.AddFile(gridPath, []byte(gridXML))
	zb.AddFile("Settings0/settings.xml", []byte(buildSettings(name, thumbRef, thumbColor)))
	zb.AddFile("Settings0/Styles/styles.xml", []byte(buildStyles()))
	if thumbErr == nil {
		zb.AddStored(thumbnailPath, thumb)
	}
	data, err := zb.Bytes()
	if err != nil {
		return nil, boarderrors.NewExport(formatName, err)
	}
	return data, nil
}

func buildFileMap(gridPath string, hasThumbnail bool) string {
	var sb strings.Builder
	sb.WriteString("<?xml version=\"1.0\" encoding=\"utf-8\"?>\n")
	sb.WriteString("<FileMap>\n  <Entries>\n")
	fmt.Fprintf(&sb, "    <Entry StaticFile=\"%s\" />\n", encoding.EscapeXMLAttr(gridPath))
	sb.WriteString("    <Entry StaticFile=\"Settings0/settings.xml\" />\n")
	sb.WriteString("    <Entry StaticFile=\"Settings0/Styles/styles.xml\" />\n")
	if hasThumbnail {
		fmt.Fprintf(&sb, "    <Entry StaticFile=\"%s\" />\n", thumbnailPath)
	}
	sb.WriteString("  </Entries>\n</FileMap>\n")
	return sb.String()
}

// stockThumbnail picks the symbol reference standing in for the bundled
// thumbnail: the board's cover symbol when present, a generic board symbol
// otherwise.
func stockThumbnail(b *board.Board) string {
	word := "board"
	if b.CoverImage != nil && b.CoverImage.Symbol != "" {
		word = b.CoverImage.Symbol
	}
	return symbols.Resolve(word).Grid3Path()
}

func buildSettings(gridName, thumbRef, thumbColor string) string {
	var sb strings.Builder
	sb.WriteString("<?xml version=\"1.0\" encoding=\"utf-8\"?>\n")
	sb.WriteString("<GridSetSettings>\n")
	fmt.Fprintf(&sb, "  <StartGrid>%s</StartGrid>\n", encoding.EscapeXMLText(gridName))
	fmt.Fprintf(&sb, "  <Thumbnail>%s</Thumbnail>\n", encoding.EscapeXMLText(thumbRef))
	if thumbColor != "" {
		fmt.Fprintf(&sb, "  <ThumbnailColour>%s</ThumbnailColour>\n", thumbColor)
	}
	sb.WriteString("</GridSetSettings>\n")
	return sb.String()
}

func buildStyles() string {
	return `<?xml version="1.0" encoding="utf-8"?>
<StyleData>
  <Styles>
    <Style Key="` + baseStyleKey + `">
      <BackColour>#FFFFFFFF</BackColour>
      <BorderColour>#E0E0E0FF</BorderColour>
      <FontColour>#000000FF</FontColour>
    </Style>
  </Styles>
</StyleData>
`
}

func buildGrid(b *board.Board, guid string) string {
	page := b.HomePage()
	rows, cols := b.Rows, b.Cols
	if page != nil {
		rows, cols = page.PageRows(b), page.PageCols(b)
	}

	var sb strings.Builder
	sb.WriteString("<?xml version=\"1.0\" encoding=\"utf-8\"?>\n")
	fmt.Fprintf(&sb, "<Grid Name=\"%s\">\n", encoding.EscapeXMLAttr(b.Name))
	fmt.Fprintf(&sb, "  <GridGuid>%s</GridGuid>\n", guid)
	sb.WriteString("  <RowDefinitions>\n")
	for i := 0; i < rows; i++ {
		sb.WriteString("    <RowDefinition />\n")
	}
	sb.WriteString("  </RowDefinitions>\n  <ColumnDefinitions>\n")
	for i := 0; i < cols; i++ {
		sb.WriteString("    <ColumnDefinition />\n")
	}
	sb.WriteString("  </ColumnDefinitions>\n  <Cells>\n")
	if page != nil {
		for _, btn := range page.Buttons {
			writeButtonCell(&sb, b, btn)
		}
		for _, vp := range page.VideoPlayers {
			writeVideoCells(&sb, vp)
		}
	}
	sb.WriteString("  </Cells>\n</Grid>\n")
	return sb.String()
}

func writeButtonCell(sb *strings.Builder, b *board.Board, btn *board.Button) {
	openCell(sb, btn.Col, btn.Row, btn.SelfClosing)
	fmt.Fprintf(sb, "      <Caption>%s</Caption>\n", encoding.EscapeXMLText(btn.Label))
	fmt.Fprintf(sb, "      <Image>%s</Image>\n", encoding.EscapeXMLText(buttonImage(btn)))
	writeCellStyle(sb, btn.Color)
	sb.WriteString("      <Commands>\n")
	writeCommand(sb, b, btn)
	sb.WriteString("      </Commands>\n")
	sb.WriteString("    </Cell>\n")
}

// writeVideoCells expands a video player into its full span. Exactly one
// cell, the top-left corner, carries the open-URL command; the rest are
// inert placeholders sharing the same background.
func writeVideoCells(sb *strings.Builder, vp *board.VideoPlayer) {
	for dr := 0; dr < vp.RowSpan; dr++ {
		for dc := 0; dc < vp.ColSpan; dc++ {
			openCell(sb, vp.Col+dc, vp.Row+dr, false)
			if dr == 0 && dc == 0 {
				fmt.Fprintf(sb, "      <Caption>%s</Caption>\n", encoding.EscapeXMLText(vp.Title))
				writeCellStyle(sb, videoCellColor)
				sb.WriteString("      <Commands>\n")
				sb.WriteString("        <Command ID=\"ComputerControl.OpenUrl\">\n")
				url := fmt.Sprintf(videoURLTemplate, vp.VideoID)
				fmt.Fprintf(sb, "          <Parameter Key=\"url\">%s</Parameter>\n", encoding.EscapeXMLText(url))
				sb.WriteString("        </Command>\n")
				sb.WriteString("      </Commands>\n")
			} else {
				sb.WriteString("      <Caption></Caption>\n")
				writeCellStyle(sb, videoCellColor)
				sb.WriteString("      <Commands>\n")
				sb.WriteString("        <Command ID=\"Action.DoNothing\" />\n")
				sb.WriteString("      </Commands>\n")
			}
			sb.WriteString("    </Cell>\n")
		}
	}
}

func openCell(sb *strings.Builder, x, y int, selfClosing bool) {
	if selfClosing {
		fmt.Fprintf(sb, "    <Cell X=\"%d\" Y=\"%d\" AutoReturn=\"1\">\n", x, y)
		return
	}
	fmt.Fprintf(sb, "    <Cell X=\"%d\" Y=\"%d\">\n", x, y)
}

func writeCellStyle(sb *strings.Builder, color string) {
	sb.WriteString("      <Style>\n")
	fmt.Fprintf(sb, "        <BasedOnStyle>%s</BasedOnStyle>\n", baseStyleKey)
	fmt.Fprintf(sb, "        <BackColour>%s</BackColour>\n", colors.ToRGBA8(color))
	sb.WriteString("      </Style>\n")
}

func writeCommand(sb *strings.Builder, b *board.Board, btn *board.Button) {
	act := btn.EffectiveAction()
	switch act.Type {
	case board.ActionSpeak:
		text := act.Text
		if text == "" {
			text = btn.Speech()
		}
		sb.WriteString("        <Command ID=\"Action.InsertText\">\n")
		fmt.Fprintf(sb, "          <Parameter Key=\"text\">%s</Parameter>\n", encoding.EscapeXMLText(text))
		fmt.Fprintf(sb, "          <Parameter Key=\"image\">%s</Parameter>\n", encoding.EscapeXMLText(buttonImage(btn)))
		sb.WriteString("          <Parameter Key=\"speak\">1</Parameter>\n")
		sb.WriteString("        </Command>\n")
	case board.ActionLink:
		target := act.ToPageID
		if page := b.PageByID(act.ToPageID); page != nil && page.Name != "" {
			target = page.Name
		}
		sb.WriteString("        <Command ID=\"Jump.To\">\n")
		fmt.Fprintf(sb, "          <Parameter Key=\"grid\">%s</Parameter>\n", encoding.EscapeXMLText(target))
		sb.WriteString("        </Command>\n")
	case board.ActionBack:
		sb.WriteString("        <Command ID=\"Jump.Back\" />\n")
	case board.ActionHome:
		sb.WriteString("        <Command ID=\"Jump.Home\" />\n")
	case board.ActionExternalVideo:
		url := fmt.Sprintf(videoURLTemplate, act.VideoID)
		sb.WriteString("        <Command ID=\"ComputerControl.OpenUrl\">\n")
		fmt.Fprintf(sb, "          <Parameter Key=\"url\">%s</Parameter>\n", encoding.EscapeXMLText(url))
		sb.WriteString("        </Command>\n")
	default:
		sb.WriteString("        <Command ID=\"Action.DoNothing\" />\n")
	}
}

func buttonImage(btn *board.Button) string {
	if btn.SymbolPath != "" {
		return btn.SymbolPath
	}
	return symbols.Resolve(btn.SymbolWord()).Grid3Path()
}
