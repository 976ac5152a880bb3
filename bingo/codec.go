package bingo

import (
	"encoding/binary"
	"fmt"

	"okinoko-bingo/sdk"
)

// ---------- Binary State Codec ----------

// codecVersion increments when the storage encoding changes. Used to detect
// incompatible persisted state on rehydration.
const codecVersion uint8 = 1

// encodeGame serializes all game fields into a compact byte slice.
//
// Layout:
//
//	version | flags | EntryFee | StartTime | CreatedAt | Name |
//	drawn count (u8) + raw numbers | player count (u16) +
//	per player: address (str16) + 25 card bytes (column-major)
//
// flags bit 0 is the finished flag. Players are written in sorted address
// order so the encoding is deterministic.
func encodeGame(g *Game) []byte {
	out := make([]byte, 0, 64+len(g.Name)+len(g.Drawn)+len(g.Players)*64)

	w8 := func(x byte) { out = append(out, x) }
	w16 := func(x uint16) {
		var tmp [2]byte
		binary.BigEndian.PutUint16(tmp[:], x)
		out = append(out, tmp[:]...)
	}
	w64 := func(x uint64) {
		var tmp [8]byte
		binary.BigEndian.PutUint64(tmp[:], x)
		out = append(out, tmp[:]...)
	}
	writeStr := func(s string) {
		w16(uint16(len(s)))
		out = append(out, s...)
	}

	var flags byte
	if g.Finished {
		flags |= 1
	}

	w8(codecVersion)
	w8(flags)
	w64(g.EntryFee)
	w64(g.StartTime)
	w64(g.CreatedAt)
	writeStr(g.Name)

	w8(byte(len(g.Drawn)))
	out = append(out, g.Drawn...)

	w16(uint16(len(g.Players)))
	for _, addr := range g.playerAddresses() {
		writeStr(string(addr))
		card := g.Players[addr]
		for col := 0; col < CardSize; col++ {
			out = append(out, card[col][:]...)
		}
	}
	return out
}

// decodeGame reconstructs a *Game from its stored bytes, ensuring no
// trailing bytes remain.
func decodeGame(b []byte) (*Game, error) {
	r := &rd{b: b}
	if v := r.u8(); r.err == nil && v != codecVersion {
		return nil, fmt.Errorf("unsupported codec version %d", v)
	}
	g := &Game{}
	flags := r.u8()
	g.Finished = flags&1 != 0
	g.EntryFee = r.u64()
	g.StartTime = r.u64()
	g.CreatedAt = r.u64()
	g.Name = r.str()

	drawnLen := int(r.u8())
	g.Drawn = make([]uint8, 0, drawnLen)
	g.Drawn = append(g.Drawn, r.bytes(drawnLen)...)

	playerCount := int(r.u16())
	g.Players = make(map[sdk.Address]Card, playerCount)
	for i := 0; i < playerCount; i++ {
		addr := sdk.Address(r.str())
		var card Card
		for col := 0; col < CardSize; col++ {
			copy(card[col][:], r.bytes(CardSize))
		}
		g.Players[addr] = card
	}

	if err := r.mustEnd(); err != nil {
		return nil, err
	}
	return g, nil
}

// rd is a binary reader over a byte slice providing big-endian integer reads
// with bounds checks. The first overflow sticks in err and every later read
// returns zero values, so decode paths check r.err once at the end.
type rd struct {
	b   []byte
	i   int
	err error
}

// need flags an error when fewer than n bytes remain.
func (r *rd) need(n int) bool {
	if r.err != nil {
		return false
	}
	if r.i+n > len(r.b) {
		r.err = fmt.Errorf("decode overflow at byte %d", r.i)
		return false
	}
	return true
}

func (r *rd) u8() byte {
	if !r.need(1) {
		return 0
	}
	v := r.b[r.i]
	r.i++
	return v
}

func (r *rd) u16() uint16 {
	if !r.need(2) {
		return 0
	}
	v := binary.BigEndian.Uint16(r.b[r.i : r.i+2])
	r.i += 2
	return v
}

func (r *rd) u64() uint64 {
	if !r.need(8) {
		return 0
	}
	v := binary.BigEndian.Uint64(r.b[r.i : r.i+8])
	r.i += 8
	return v
}

func (r *rd) bytes(n int) []byte {
	if !r.need(n) {
		return nil
	}
	v := r.b[r.i : r.i+n]
	r.i += n
	return v
}

// str reads a length-prefixed string (2-byte length).
func (r *rd) str() string {
	l := int(r.u16())
	return string(r.bytes(l))
}

// mustEnd verifies the reader consumed all bytes exactly.
func (r *rd) mustEnd() error {
	if r.err != nil {
		return r.err
	}
	if r.i != len(r.b) {
		return fmt.Errorf("trailing bytes after offset %d", r.i)
	}
	return nil
}
