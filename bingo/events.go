package bingo

import (
	"encoding/json"
	"strconv"

	"okinoko-bingo/sdk"
)

// Event types emitted by the registry, one per successful mutating
// operation, in the order operations were linearized.
const (
	EventRegistryInitialized = "registryInitialized"
	EventGameCreated         = "gameCreated"
	EventNumberDrawn         = "numberDrawn"
	EventPlayerJoined        = "playerJoined"
	EventGameWon             = "gameWon"
	EventGameCancelled       = "gameCancelled"
)

// emit hands one event to the sink. Emission happens after the operation's
// state change committed; sinks must not call back into the registry.
func (r *Registry) emit(eventType, game string, attrs map[string]string, ts uint64) {
	r.events.Append(sdk.Event{
		Type:       eventType,
		Game:       game,
		Attributes: attrs,
		Time:       ts,
	})
}

func (r *Registry) emitRegistryInitialized(ts uint64) {
	r.emit(EventRegistryInitialized, "", map[string]string{
		"admin": r.admin.String(),
	}, ts)
}

func (r *Registry) emitGameCreated(g *Game, ts uint64) {
	r.emit(EventGameCreated, g.Name, map[string]string{
		"entryFee":  strconv.FormatUint(g.EntryFee, 10),
		"startTime": strconv.FormatUint(g.StartTime, 10),
	}, ts)
}

func (r *Registry) emitNumberDrawn(game string, number uint8, ts uint64) {
	r.emit(EventNumberDrawn, game, map[string]string{
		"number": strconv.FormatUint(uint64(number), 10),
	}, ts)
}

func (r *Registry) emitPlayerJoined(game string, player sdk.Address, card Card, ts uint64) {
	// Card marshals as five column arrays; json.Marshal cannot fail on it.
	raw, _ := json.Marshal(card)
	r.emit(EventPlayerJoined, game, map[string]string{
		"player": player.String(),
		"card":   string(raw),
	}, ts)
}

func (r *Registry) emitGameWon(game string, winner sdk.Address, ts uint64) {
	r.emit(EventGameWon, game, map[string]string{
		"winner": winner.String(),
	}, ts)
}

func (r *Registry) emitGameCancelled(game string, ts uint64) {
	r.emit(EventGameCancelled, game, nil, ts)
}
