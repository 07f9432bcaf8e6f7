package pattern

import "github.com/araxis-games/hexvc/internal/board"

// BaseFull is a single local-pattern match that the builder seeds
// directly as a proven Full connection, bypassing the AND/OR closure that
// would otherwise reconstruct it. The builder owns
// vc.Connection construction; pattern only reports the match geometry so
// internal/pattern never needs to import internal/vc.
type BaseFull struct {
	End1, End2 int
	Carrier    [2]int
}

// VCPatternMatches returns every Base Full pattern match for the active
// player on pos, using groups built for that player. Only the
// "vc-bridge" family is consulted; if it was not loaded, this returns nil.
// The use_patterns and use_non_edge_patterns engine parameters are not
// applied here — Library has no notion of which color is "active" to apply
// a non-edge restriction, so that filtering is the caller's job.
func (l *Library) VCPatternMatches(pos *board.Position, groups *board.Groups) []BaseFull {
	if !l.Enabled("vc-bridge") {
		return nil
	}
	var out []BaseFull
	for _, br := range findBridges(pos, groups) {
		out = append(out, BaseFull{
			End1:    br.captain1,
			End2:    br.captain2,
			Carrier: [2]int{br.c1, br.c2},
		})
	}
	return out
}
