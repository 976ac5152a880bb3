// Package host exposes the registry operations over a small HTTP/JSON
// surface, one route per engine operation. Identity verification is out of
// scope for the engine, so the caller identity is read from a trusted
// header; put a real authentication layer in front for anything public.
package host

import (
	"encoding/json"
	"errors"
	"net/http"

	"okinoko-bingo/bingo"
	"okinoko-bingo/ledger"
	"okinoko-bingo/sdk"
)

// CallerHeader names the header carrying the already-authenticated caller
// identity.
const CallerHeader = "X-Bingo-Caller"

// ---------- DTOs ----------

// CreateGameRequest is the payload for POST /games.
type CreateGameRequest struct {
	Name      string `json:"name"`
	EntryFee  uint64 `json:"entryFee"`
	StartTime uint64 `json:"startTime"`
}

// DrawRequest is the payload for POST /games/{name}/numbers.
type DrawRequest struct {
	Number uint8 `json:"number"`
}

// JoinRequest is the payload for POST /games/{name}/join.
type JoinRequest struct {
	Card [][]uint8 `json:"card"`
}

// GameResponse mirrors bingo.GameView for GET /games/{name}.
type GameResponse struct {
	Name      string              `json:"name"`
	EntryFee  uint64              `json:"entryFee"`
	StartTime uint64              `json:"startTime"`
	CreatedAt uint64              `json:"createdAt"`
	Drawn     []uint8             `json:"drawn"`
	Players   map[string][][]uint8 `json:"players"`
	Finished  bool                `json:"finished"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// ---------- Routes ----------

// RegisterHandlers wires every engine operation onto the mux.
func RegisterHandlers(mux *http.ServeMux, reg *bingo.Registry) {
	mux.HandleFunc("POST /initialize", handleInitialize(reg))
	mux.HandleFunc("POST /games", handleCreateGame(reg))
	mux.HandleFunc("POST /games/{name}/numbers", handleDraw(reg))
	mux.HandleFunc("POST /games/{name}/join", handleJoin(reg))
	mux.HandleFunc("POST /games/{name}/bingo", handleBingo(reg))
	mux.HandleFunc("POST /games/{name}/cancel", handleCancel(reg))
	mux.HandleFunc("GET /games/{name}", handleGetGame(reg))
}

// CreditRequest is the payload for POST /accounts/{name}/credit.
type CreditRequest struct {
	Amount uint64 `json:"amount"`
}

// RegisterFaucet adds an admin-only route that seeds balances on the
// reference in-memory ledger. Hosts backed by a real value-transfer
// primitive skip this.
func RegisterFaucet(mux *http.ServeMux, lm *ledger.Memory, admin sdk.Address) {
	mux.HandleFunc("POST /accounts/{name}/credit", func(w http.ResponseWriter, r *http.Request) {
		caller, ok := caller(w, r)
		if !ok {
			return
		}
		if caller != admin {
			writeJSON(w, http.StatusForbidden, errorResponse{Error: "faucet is admin only"})
			return
		}
		var req CreditRequest
		if !decode(w, r, &req) {
			return
		}
		acct := sdk.Address(r.PathValue("name"))
		lm.Credit(acct, req.Amount)
		balance, _ := lm.Balance(acct)
		writeJSON(w, http.StatusOK, map[string]uint64{"balance": balance})
	})
}

func handleInitialize(reg *bingo.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, ok := caller(w, r)
		if !ok {
			return
		}
		if err := reg.Initialize(caller); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]string{"status": "initialized"})
	}
}

func handleCreateGame(reg *bingo.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, ok := caller(w, r)
		if !ok {
			return
		}
		var req CreateGameRequest
		if !decode(w, r, &req) {
			return
		}
		if err := reg.CreateGame(caller, req.Name, req.EntryFee, req.StartTime); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]string{"name": req.Name})
	}
}

func handleDraw(reg *bingo.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, ok := caller(w, r)
		if !ok {
			return
		}
		var req DrawRequest
		if !decode(w, r, &req) {
			return
		}
		if err := reg.InsertNumber(caller, r.PathValue("name"), req.Number); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]uint8{"number": req.Number})
	}
}

func handleJoin(reg *bingo.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, ok := caller(w, r)
		if !ok {
			return
		}
		var req JoinRequest
		if !decode(w, r, &req) {
			return
		}
		if err := reg.JoinGame(caller, r.PathValue("name"), req.Card); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"player": caller.String()})
	}
}

func handleBingo(reg *bingo.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, ok := caller(w, r)
		if !ok {
			return
		}
		if err := reg.Bingo(caller, r.PathValue("name")); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"winner": caller.String()})
	}
}

func handleCancel(reg *bingo.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, ok := caller(w, r)
		if !ok {
			return
		}
		if err := reg.CancelGame(caller, r.PathValue("name")); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "cancelled"})
	}
}

func handleGetGame(reg *bingo.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, err := reg.Game(r.PathValue("name"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, gameResponse(view))
	}
}

// ---------- Helpers ----------

func gameResponse(view bingo.GameView) GameResponse {
	players := make(map[string][][]uint8, len(view.Players))
	for addr, card := range view.Players {
		cols := make([][]uint8, bingo.CardSize)
		for i := 0; i < bingo.CardSize; i++ {
			col := make([]uint8, bingo.CardSize)
			copy(col, card[i][:])
			cols[i] = col
		}
		players[addr.String()] = cols
	}
	return GameResponse{
		Name:      view.Name,
		EntryFee:  view.EntryFee,
		StartTime: view.StartTime,
		CreatedAt: view.CreatedAt,
		Drawn:     view.Drawn,
		Players:   players,
		Finished:  view.Finished,
	}
}

func caller(w http.ResponseWriter, r *http.Request) (sdk.Address, bool) {
	id := r.Header.Get(CallerHeader)
	if id == "" {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing " + CallerHeader + " header"})
		return "", false
	}
	return sdk.Address(id), true
}

func decode(w http.ResponseWriter, r *http.Request, into any) bool {
	if err := json.NewDecoder(r.Body).Decode(into); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid payload: " + err.Error()})
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeError maps engine error kinds onto HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), errorResponse{Error: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, bingo.ErrNotAdmin):
		return http.StatusForbidden
	case errors.Is(err, bingo.ErrGameNotFound):
		return http.StatusNotFound
	case errors.Is(err, bingo.ErrInsufficientFunds):
		return http.StatusPaymentRequired
	case errors.Is(err, bingo.ErrInvalidNumber),
		errors.Is(err, bingo.ErrInvalidStartTime),
		errors.Is(err, bingo.ErrInvalidColumnCount),
		errors.Is(err, bingo.ErrInvalidColumnSize),
		errors.Is(err, bingo.ErrInvalidCardValue):
		return http.StatusBadRequest
	case errors.Is(err, bingo.ErrNameTaken),
		errors.Is(err, bingo.ErrDuplicateNumber),
		errors.Is(err, bingo.ErrAlreadyJoined),
		errors.Is(err, bingo.ErrAlreadyStarted),
		errors.Is(err, bingo.ErrNotStartedYet),
		errors.Is(err, bingo.ErrGameEnded),
		errors.Is(err, bingo.ErrNotJoined),
		errors.Is(err, bingo.ErrNotWinner),
		errors.Is(err, sdk.ErrKeyExists):
		return http.StatusConflict
	case errors.Is(err, bingo.ErrNotInitialized):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
