/* constants.go
 * Outcome classification for playtak result codes. The matchup scoring in
 * api/logic consumes these sets rather than recomputing the classification
 */

package analyzer

import "slices"

// Result codes as reported by the playtak api. R = road win, F = flat win,
// 1-0/0-1 = win by default or forfeit.
var (
	WinsForWhite = []string{"R-0", "F-0", "1-0"}
	WinsForBlack = []string{"0-R", "0-F", "0-1"}
	Ties         = []string{"1/2-1/2"}
)

// IsWhiteWin reports whether result is a win for the white player.
func IsWhiteWin(result string) bool {
	return slices.Contains(WinsForWhite, result)
}

// IsBlackWin reports whether result is a win for the black player.
func IsBlackWin(result string) bool {
	return slices.Contains(WinsForBlack, result)
}

// IsTie reports whether result is a tie.
func IsTie(result string) bool {
	return slices.Contains(Ties, result)
}
