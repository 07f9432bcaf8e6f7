package vc

import (
	"fmt"

	"github.com/araxis-games/hexvc/internal/bitset"
)

// ShrinkFull rebuilds vc (a Full) with added removed from its carrier
// and its endpoints replaced by the post-merge captains x2, y2.
func ShrinkFull(vc Connection, added bitset.Bitset, x2, y2 int) Connection {
	if vc.Kind != Full {
		panic("vc: ShrinkFull called on a non-Full connection")
	}
	return NewFull(x2, y2, vc.Carrier.AndNot(added), vc.Rule)
}

// ShrinkSemi rebuilds vc (a Semi) with added removed from its carrier
// and its endpoints replaced by x2, y2. The key must survive (vc.Key
// must not be in added) — callers are responsible for routing
// key-in-added semis to UpgradeSemi instead as part of the merge/shrink
// step.
func ShrinkSemi(vc Connection, added bitset.Bitset, x2, y2 int) Connection {
	if vc.Kind != Semi {
		panic("vc: ShrinkSemi called on a non-Semi connection")
	}
	if added.Test(vc.Key) {
		panic(fmt.Sprintf("vc: ShrinkSemi called with key %d in added set; use UpgradeSemi", vc.Key))
	}
	return NewSemi(x2, y2, vc.Carrier.AndNot(added), vc.Key, vc.Rule)
}

// UpgradeSemi promotes vc (a Semi) to a Full once its key has been
// played. Valid iff vc.Key ∈ added; carrier is vc.Carrier minus added.
func UpgradeSemi(vc Connection, added bitset.Bitset, x2, y2 int) Connection {
	if vc.Kind != Semi {
		panic("vc: UpgradeSemi called on a non-Semi connection")
	}
	if !added.Test(vc.Key) {
		panic(fmt.Sprintf("vc: UpgradeSemi called but key %d was not in added", vc.Key))
	}
	return NewFull(x2, y2, vc.Carrier.AndNot(added), vc.Rule)
}
