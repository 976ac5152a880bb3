package bingo

import "fmt"

// ---------- Card ----------

const (
	// CardSize is the number of columns and of rows per column.
	CardSize = 5
	// WildcardValue marks the free cell. Always treated as covered.
	WildcardValue = 0
	// wildcardCol/wildcardRow locate the single free cell on the card.
	wildcardCol = 2
	wildcardRow = 2
	// columnSpan is the width of each column's legal value range.
	columnSpan = 15
)

// Card is a validated 5x5 bingo card stored column-major: Card[col][row].
// Column i holds values in [1+15*i, 15+15*i] except the center cell which is
// the wildcard (0). Only ValidateCard produces instances, so every stored
// Card satisfies those constraints.
type Card [CardSize][CardSize]uint8

// columnRange returns the inclusive legal value range for a column.
func columnRange(col int) (lo, hi uint8) {
	lo = uint8(1 + columnSpan*col)
	hi = uint8(columnSpan + columnSpan*col)
	return
}

// ValidateCard checks a submitted grid and converts it into a Card.
//
// Checks run in a fixed order so malformed input always surfaces the same
// error: column count, then per-column size, then per-cell values. The first
// offending column or cell is reported.
func ValidateCard(cols [][]uint8) (Card, error) {
	var card Card

	if len(cols) != CardSize {
		return card, fmt.Errorf("%w: got %d", ErrInvalidColumnCount, len(cols))
	}
	for i, col := range cols {
		if len(col) != CardSize {
			return card, fmt.Errorf("%w: column %d has %d", ErrInvalidColumnSize, i, len(col))
		}
	}
	for i, col := range cols {
		for j, v := range col {
			if i == wildcardCol && j == wildcardRow {
				if v != WildcardValue {
					return card, fmt.Errorf("%w: center cell must be %d, got %d",
						ErrInvalidCardValue, WildcardValue, v)
				}
				continue
			}
			lo, hi := columnRange(i)
			if v < lo || v > hi {
				return card, fmt.Errorf("%w: column %d row %d value %d outside [%d,%d]",
					ErrInvalidCardValue, i, j, v, lo, hi)
			}
		}
		copy(card[i][:], col)
	}
	return card, nil
}
