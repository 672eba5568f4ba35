// Command boardkit is the CLI tool for boardkit.
// It exports AAC board documents into device-vendor package formats.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/openaac/boardkit/core/board"
	"github.com/openaac/boardkit/internal/api"
	"github.com/openaac/boardkit/internal/archive"
	"github.com/openaac/boardkit/internal/formats"

	// Register all export formats
	_ "github.com/openaac/boardkit/internal/formats/gridset"
	_ "github.com/openaac/boardkit/internal/formats/obf"
	_ "github.com/openaac/boardkit/internal/formats/snap"
	_ "github.com/openaac/boardkit/internal/formats/touchchat"
)

const version = "0.1.0"

// CLI defines the command-line interface for boardkit.
var CLI struct {
	Export   ExportCmd   `cmd:"" help:"Export a board to a package format"`
	Bundle   BundleCmd   `cmd:"" help:"Export a board to every format and bundle the results"`
	Formats  FormatsCmd  `cmd:"" help:"List available export formats"`
	Validate ValidateCmd `cmd:"" help:"Validate a board document"`
	API      APICmd      `cmd:"" help:"Start REST API server"`
	Version  VersionCmd  `cmd:"" help:"Print version information"`
}

// ExportCmd exports a board into one format.
type ExportCmd struct {
	Board  string `arg:"" help:"Path to board JSON document" type:"existingfile"`
	Format string `required:"" short:"f" help:"Export format (see 'boardkit formats')"`
	Output string `short:"o" help:"Output file path (default: derived from board name)" type:"path"`
}

func (c *ExportCmd) Run() error {
	b, err := loadValidBoard(c.Board)
	if err != nil {
		return err
	}
	p, err := formats.Get(c.Format)
	if err != nil {
		return err
	}
	data, err := formats.Export(b, c.Format)
	if err != nil {
		return err
	}

	out := c.Output
	if out == "" {
		out = formats.Filename(b, p)
	}
	if err := os.WriteFile(out, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", out, err)
	}
	fmt.Printf("Exported %s (%d bytes)\n", out, len(data))
	return nil
}

// BundleCmd exports a board to every requested format and writes a single
// tar.xz bundle holding all deliverables.
type BundleCmd struct {
	Board   string   `arg:"" help:"Path to board JSON document" type:"existingfile"`
	Formats []string `short:"f" help:"Formats to include (default: all)"`
	Output  string   `short:"o" help:"Output bundle path (default: <board name>.tar.xz)" type:"path"`
}

func (c *BundleCmd) Run() error {
	b, err := loadValidBoard(c.Board)
	if err != nil {
		return err
	}

	names := c.Formats
	if len(names) == 0 {
		names = formats.Names()
	}

	var entries []archive.BundleEntry
	for _, name := range names {
		p, err := formats.Get(name)
		if err != nil {
			return err
		}
		data, err := formats.Export(b, name)
		if err != nil {
			return err
		}
		entries = append(entries, archive.BundleEntry{
			Name: formats.Filename(b, p),
			Data: data,
		})
	}

	out := c.Output
	if out == "" {
		base := strings.TrimSuffix(filepath.Base(c.Board), filepath.Ext(c.Board))
		out = base + ".tar.xz"
	}
	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("creating %s: %w", out, err)
	}
	defer f.Close()
	if err := archive.WriteBundle(f, entries); err != nil {
		return fmt.Errorf("writing bundle: %w", err)
	}
	fmt.Printf("Bundled %d formats into %s\n", len(entries), out)
	return nil
}

// FormatsCmd lists the registered export formats.
type FormatsCmd struct{}

func (c *FormatsCmd) Run() error {
	fmt.Println("Available formats:")
	for _, p := range formats.List() {
		fmt.Printf("  %-10s %-11s %s\n", p.Format(), p.Extension(), p.MIME())
	}
	return nil
}

// ValidateCmd checks a board document against the grid invariants.
type ValidateCmd struct {
	Board string `arg:"" help:"Path to board JSON document" type:"existingfile"`
}

func (c *ValidateCmd) Run() error {
	b, err := board.LoadFile(c.Board)
	if err != nil {
		return err
	}
	problems := board.Validate(b)
	if len(problems) == 0 {
		fmt.Printf("%s: valid (%d pages)\n", c.Board, len(b.Pages))
		return nil
	}
	for _, p := range problems {
		fmt.Fprintf(os.Stderr, "%s\n", p)
	}
	return fmt.Errorf("%d validation problems", len(problems))
}

// APICmd starts the REST API server.
type APICmd struct {
	Port int `help:"HTTP server port" default:"8080"`
}

func (c *APICmd) Run() error {
	cfg := api.DefaultConfig()
	cfg.Port = c.Port
	return api.Start(cfg)
}

// VersionCmd prints version information.
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Printf("boardkit version %s\n", version)
	return nil
}

func loadValidBoard(path string) (*board.Board, error) {
	b, err := board.LoadFile(path)
	if err != nil {
		return nil, err
	}
	if problems := board.Validate(b); len(problems) > 0 {
		return nil, fmt.Errorf("invalid board: %v", problems[0])
	}
	return b, nil
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("boardkit"),
		kong.Description("boardkit - AAC board export toolkit"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	err := ctx.Run(ctx)
	ctx.FatalIfErrorf(err)
}
