package board

import "fmt"

// ValidationError represents a validation error with context.
type ValidationError struct {
	Path    string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Message)
	}
	return e.Message
}

// newValidationError creates a new ValidationError.
func newValidationError(path, message string) error {
	return &ValidationError{Path: path, Message: message}
}

// Validate validates a Board and returns all validation errors. Packagers
// assume a valid board; this is the hardening boundary callers run before
// handing one over.
func Validate(b *Board) []error {
	var errs []error

	if b.Rows <= 0 {
		errs = append(errs, newValidationError("board.rows", "Rows must be positive"))
	}
	if b.Cols <= 0 {
		errs = append(errs, newValidationError("board.cols", "Cols must be positive"))
	}

	pageIDs := make(map[string]bool, len(b.Pages))
	for i, p := range b.Pages {
		path := fmt.Sprintf("board.pages[%d]", i)
		if p.ID == "" {
			errs = append(errs, newValidationError(path, "ID is required"))
		} else if pageIDs[p.ID] {
			errs = append(errs, newValidationError(path,
				fmt.Sprintf("duplicate page ID %q", p.ID)))
		}
		pageIDs[p.ID] = true

		errs = append(errs, validatePage(b, p, path)...)
	}

	// Link actions must reference pages that exist.
	for i, p := range b.Pages {
		for j, btn := range p.Buttons {
			if btn.Action != nil && btn.Action.Type == ActionLink && !pageIDs[btn.Action.ToPageID] {
				errs = append(errs, newValidationError(
					fmt.Sprintf("board.pages[%d].buttons[%d].action", i, j),
					fmt.Sprintf("link target %q does not exist", btn.Action.ToPageID)))
			}
		}
	}

	return errs
}

func validatePage(b *Board, p *Page, path string) []error {
	var errs []error

	occupied := make(map[[2]int]string)
	for i, btn := range p.Buttons {
		btnPath := fmt.Sprintf("%s.buttons[%d]", path, i)
		if btn.Label == "" {
			errs = append(errs, newValidationError(btnPath, "Label is required"))
		}
		if btn.Row < 0 || btn.Col < 0 {
			errs = append(errs, newValidationError(btnPath,
				"coordinates cannot be negative"))
		}
		if btn.Action != nil && !btn.Action.Type.IsValid() {
			errs = append(errs, newValidationError(btnPath+".action",
				fmt.Sprintf("invalid ActionType: %q", btn.Action.Type)))
		}

		cell := [2]int{btn.Row, btn.Col}
		if other, taken := occupied[cell]; taken {
			errs = append(errs, newValidationError(btnPath,
				fmt.Sprintf("cell (%d,%d) already occupied by button %q", btn.Row, btn.Col, other)))
		}
		occupied[cell] = btn.ID
	}

	for i, vp := range p.VideoPlayers {
		vpPath := fmt.Sprintf("%s.video_players[%d]", path, i)
		if vp.RowSpan < 1 || vp.ColSpan < 1 {
			errs = append(errs, newValidationError(vpPath,
				"RowSpan and ColSpan must be at least 1"))
			continue
		}
		if vp.Row < 0 || vp.Col < 0 {
			errs = append(errs, newValidationError(vpPath,
				"coordinates cannot be negative"))
		}

		for r := vp.Row; r < vp.Row+vp.RowSpan; r++ {
			for c := vp.Col; c < vp.Col+vp.ColSpan; c++ {
				cell := [2]int{r, c}
				if other, taken := occupied[cell]; taken {
					errs = append(errs, newValidationError(vpPath,
						fmt.Sprintf("cell (%d,%d) already occupied by %q", r, c, other)))
				}
				occupied[cell] = vp.ID
			}
		}
	}

	return errs
}

// IsValid returns true if the board has no validation errors.
func IsValid(b *Board) bool {
	return len(Validate(b)) == 0
}
