package bingo

import (
	"sort"

	"okinoko-bingo/sdk"
)

// ---------- Game (runtime struct; storage is binary) ----------

// Game holds the full per-game state used at runtime and persisted through
// the state store.
//
// Fields:
//   - Name: unique registry-scoped identifier, never reused
//   - EntryFee: escrowed per player on join, smallest currency unit
//   - StartTime: unix seconds; joins close and draws open at this instant
//   - CreatedAt: unix seconds at creation
//   - Drawn: ordered, append-only, pairwise-distinct numbers in 1..75
//   - Players: card per joined player
//   - Finished: terminal flag, monotonic false -> true
//
// EntryFee and StartTime never change after creation.
type Game struct {
	Name      string
	EntryFee  uint64
	StartTime uint64
	CreatedAt uint64
	Drawn     []uint8
	Players   map[sdk.Address]Card
	Finished  bool
}

// hasDrawn reports whether a number is already in the draw history.
func (g *Game) hasDrawn(n uint8) bool {
	for _, d := range g.Drawn {
		if d == n {
			return true
		}
	}
	return false
}

// pot is the total escrowed value attributable to the game.
func (g *Game) pot() uint64 {
	return g.EntryFee * uint64(len(g.Players))
}

// playerAddresses returns the joined players in a stable order. Roster
// insertion order carries no meaning, so sorted order keeps refunds and
// encodings deterministic.
func (g *Game) playerAddresses() []sdk.Address {
	addrs := make([]sdk.Address, 0, len(g.Players))
	for a := range g.Players {
		addrs = append(addrs, a)
	}
	sort.Slice(addrs, func(i, j int) bool { return addrs[i] < addrs[j] })
	return addrs
}

// ---------- Read-only view ----------

// GameView is a detached snapshot of a game returned by Registry.Game.
// Mutating it has no effect on the registry.
type GameView struct {
	Name      string
	EntryFee  uint64
	StartTime uint64
	CreatedAt uint64
	Drawn     []uint8
	Players   map[sdk.Address]Card
	Finished  bool
}

// view copies the game into a GameView.
func (g *Game) view() GameView {
	drawn := make([]uint8, len(g.Drawn))
	copy(drawn, g.Drawn)
	players := make(map[sdk.Address]Card, len(g.Players))
	for a, c := range g.Players {
		players[a] = c
	}
	return GameView{
		Name:      g.Name,
		EntryFee:  g.EntryFee,
		StartTime: g.StartTime,
		CreatedAt: g.CreatedAt,
		Drawn:     drawn,
		Players:   players,
		Finished:  g.Finished,
	}
}
