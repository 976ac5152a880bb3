package bingo

//
// Win detection.
//
// Pure routines deciding whether a card is fully covered along any column,
// any row, or either diagonal, given the numbers drawn so far. The wildcard
// cell counts as covered at all times. No state access here so the detector
// is testable in isolation from the registry.
//

// numberDomainMax is the highest drawable number.
const numberDomainMax = 75

// coverMask builds the per-cell covered mask for a card. A cell is covered
// iff its value was drawn or it is the wildcard.
func coverMask(card Card, drawn []uint8) [CardSize][CardSize]bool {
	var present [numberDomainMax + 1]bool
	for _, n := range drawn {
		if int(n) <= numberDomainMax {
			present[n] = true
		}
	}

	var covered [CardSize][CardSize]bool
	for col := 0; col < CardSize; col++ {
		for row := 0; row < CardSize; row++ {
			v := card[col][row]
			covered[col][row] = v == WildcardValue || present[v]
		}
	}
	return covered
}

// anyColumnCovered reports whether some column has all five cells covered.
func anyColumnCovered(covered [CardSize][CardSize]bool) bool {
	for col := 0; col < CardSize; col++ {
		full := true
		for row := 0; row < CardSize; row++ {
			if !covered[col][row] {
				full = false
				break
			}
		}
		if full {
			return true
		}
	}
	return false
}

// anyRowCovered reports whether some row index is covered across all columns.
func anyRowCovered(covered [CardSize][CardSize]bool) bool {
	for row := 0; row < CardSize; row++ {
		full := true
		for col := 0; col < CardSize; col++ {
			if !covered[col][row] {
				full = false
				break
			}
		}
		if full {
			return true
		}
	}
	return false
}

// anyDiagonalCovered checks both diagonals in one pass over the columns.
// Two accumulators track the main diagonal (row == col) and the anti
// diagonal (row == 4-col); once both are false neither can recover, so the
// pass bails out early.
func anyDiagonalCovered(covered [CardSize][CardSize]bool) bool {
	main, anti := true, true
	for col := 0; col < CardSize; col++ {
		main = main && covered[col][col]
		anti = anti && covered[col][CardSize-1-col]
		if !main && !anti {
			return false
		}
	}
	return main || anti
}

// CardCovered reports whether the card satisfies any winning pattern for the
// drawn numbers: a full column, a full row, or a full diagonal.
func CardCovered(card Card, drawn []uint8) bool {
	covered := coverMask(card, drawn)
	return anyColumnCovered(covered) || anyRowCovered(covered) || anyDiagonalCovered(covered)
}
