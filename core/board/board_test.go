package board

import (
	"strings"
	"testing"
)

func TestButtonSpeech(t *testing.T) {
	tests := []struct {
		name   string
		button Button
		want   string
	}{
		{"spoken text set", Button{Label: "Eat", SpokenText: "I want to eat"}, "I want to eat"},
		{"falls back to label", Button{Label: "Eat"}, "Eat"},
		{"empty label", Button{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.button.Speech(); got != tt.want {
				t.Errorf("Speech() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestButtonEffectiveAction(t *testing.T) {
	t.Run("default is speak-the-label", func(t *testing.T) {
		b := Button{Label: "Drink"}
		got := b.EffectiveAction()
		if got.Type != ActionSpeak {
			t.Errorf("Type = %q, want %q", got.Type, ActionSpeak)
		}
		if got.Text != "Drink" {
			t.Errorf("Text = %q, want %q", got.Text, "Drink")
		}
	})

	t.Run("explicit action preserved", func(t *testing.T) {
		b := Button{Label: "More", Action: &Action{Type: ActionLink, ToPageID: "p2"}}
		got := b.EffectiveAction()
		if got.Type != ActionLink || got.ToPageID != "p2" {
			t.Errorf("EffectiveAction() = %+v, want link to p2", got)
		}
	})
}

func TestPageLayoutOverride(t *testing.T) {
	b := &Board{Rows: 4, Cols: 6}
	popup := &Page{ID: "popup", Layout: &Layout{Rows: 2, Cols: 3}}
	plain := &Page{ID: "plain"}

	if got := popup.PageRows(b); got != 2 {
		t.Errorf("PageRows = %d, want 2", got)
	}
	if got := popup.PageCols(b); got != 3 {
		t.Errorf("PageCols = %d, want 3", got)
	}
	if got := plain.PageRows(b); got != 4 {
		t.Errorf("PageRows = %d, want board default 4", got)
	}
	if got := plain.PageCols(b); got != 6 {
		t.Errorf("PageCols = %d, want board default 6", got)
	}
}

func TestVideoPlayerCovers(t *testing.T) {
	vp := VideoPlayer{Row: 1, Col: 1, RowSpan: 2, ColSpan: 2}
	covered := [][2]int{{1, 1}, {1, 2}, {2, 1}, {2, 2}}
	for _, cell := range covered {
		if !vp.Covers(cell[0], cell[1]) {
			t.Errorf("Covers(%d,%d) = false, want true", cell[0], cell[1])
		}
	}
	outside := [][2]int{{0, 1}, {1, 0}, {3, 1}, {1, 3}, {0, 0}}
	for _, cell := range outside {
		if vp.Covers(cell[0], cell[1]) {
			t.Errorf("Covers(%d,%d) = true, want false", cell[0], cell[1])
		}
	}
}

func TestValidate(t *testing.T) {
	valid := &Board{
		Name: "Core Words",
		Rows: 3,
		Cols: 3,
		Pages: []*Page{
			{
				ID: "home",
				Buttons: []*Button{
					{ID: "b1", Row: 0, Col: 0, Label: "Eat"},
					{ID: "b2", Row: 0, Col: 1, Label: "Drink",
						Action: &Action{Type: ActionLink, ToPageID: "snacks"}},
				},
				VideoPlayers: []*VideoPlayer{
					{ID: "v1", Row: 1, Col: 1, RowSpan: 2, ColSpan: 2, VideoID: "abc123"},
				},
			},
			{ID: "snacks"},
		},
	}
	if errs := Validate(valid); len(errs) != 0 {
		t.Fatalf("Validate(valid) = %v, want no errors", errs)
	}

	tests := []struct {
		name     string
		mutate   func(*Board)
		wantPart string
	}{
		{
			"zero rows",
			func(b *Board) { b.Rows = 0 },
			"Rows must be positive",
		},
		{
			"duplicate cell",
			func(b *Board) { b.Pages[0].Buttons[1].Row = 0; b.Pages[0].Buttons[1].Col = 0 },
			"already occupied",
		},
		{
			"video player overlaps button",
			func(b *Board) { b.Pages[0].VideoPlayers[0].Row = 0; b.Pages[0].VideoPlayers[0].Col = 0 },
			"already occupied",
		},
		{
			"dangling link",
			func(b *Board) { b.Pages[0].Buttons[1].Action.ToPageID = "missing" },
			"does not exist",
		},
		{
			"missing label",
			func(b *Board) { b.Pages[0].Buttons[0].Label = "" },
			"Label is required",
		},
		{
			"zero span",
			func(b *Board) { b.Pages[0].VideoPlayers[0].RowSpan = 0 },
			"at least 1",
		},
		{
			"duplicate page ID",
			func(b *Board) { b.Pages[1].ID = "home" },
			"duplicate page ID",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := cloneBoard(t, valid)
			tt.mutate(b)
			errs := Validate(b)
			if len(errs) == 0 {
				t.Fatal("Validate() = no errors, want at least one")
			}
			found := false
			for _, err := range errs {
				if strings.Contains(err.Error(), tt.wantPart) {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("Validate() = %v, want an error containing %q", errs, tt.wantPart)
			}
		})
	}
}

func TestValidateEmptyBoard(t *testing.T) {
	b := &Board{Name: "Empty", Rows: 2, Cols: 2}
	if errs := Validate(b); len(errs) != 0 {
		t.Errorf("Validate(empty) = %v, want no errors", errs)
	}
}

func TestDecodeRoundTrip(t *testing.T) {
	src := &Board{
		Name: "Snack Time",
		Rows: 2,
		Cols: 2,
		Pages: []*Page{
			{ID: "home", Buttons: []*Button{
				{ID: "b1", Row: 0, Col: 0, Label: "Apple", Color: "#FFAA00"},
			}},
		},
	}

	data, err := Marshal(src)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	got, err := Decode(strings.NewReader(string(data)))
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if got.Name != src.Name || got.Rows != src.Rows || len(got.Pages) != 1 {
		t.Errorf("round trip mismatch: %+v", got)
	}
	if got.Pages[0].Buttons[0].Color != "#FFAA00" {
		t.Errorf("button color lost in round trip")
	}
}

func TestDecodeRejectsUnknownFields(t *testing.T) {
	_, err := Decode(strings.NewReader(`{"name":"x","rows":1,"cols":1,"bogus":true}`))
	if err == nil {
		t.Fatal("Decode() accepted unknown field, want error")
	}
}

// cloneBoard deep-copies via the JSON codec so mutations stay test-local.
func cloneBoard(t *testing.T, b *Board) *Board {
	t.Helper()
	data, err := Marshal(b)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	clone, err := Decode(strings.NewReader(string(data)))
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	return clone
}
