package domain

import "fmt"

// ShelfLocation pins a copy to a physical spot: section, shelf, position.
type ShelfLocation struct {
	Section  Subject `json:"section"`
	Shelf    int     `json:"shelf"`
	Position int     `json:"position"`
}

// NewShelfLocation validates and builds a shelf location.
func NewShelfLocation(section Subject, shelf, position int) (ShelfLocation, error) {
	if _, ok := subjects[section]; !ok {
		return ShelfLocation{}, fmt.Errorf("%w: unknown section %q", ErrValidation, section)
	}
	if err := requirePositive(shelf, "shelf"); err != nil {
		return ShelfLocation{}, err
	}
	if err := requirePositive(position, "position"); err != nil {
		return ShelfLocation{}, err
	}
	return ShelfLocation{Section: section, Shelf: shelf, Position: position}, nil
}

func (l ShelfLocation) String() string {
	return fmt.Sprintf("%s/shelf-%d/pos-%d", l.Section, l.Shelf, l.Position)
}
