package engine

import (
	"errors"
	"strings"
	"testing"
)

const startFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

func TestChessInitialState(t *testing.T) {
	if got := NewChess().InitialState(); got != startFEN {
		t.Fatalf("InitialState = %q, want %q", got, startFEN)
	}
}

func TestChessTurnOwner(t *testing.T) {
	eng := NewChess()

	owner, err := eng.TurnOwner(startFEN)
	if err != nil {
		t.Fatalf("TurnOwner: %v", err)
	}
	if owner != SeatWhite {
		t.Fatalf("owner = %q, want white", owner)
	}

	_, next, err := eng.ApplyMove(startFEN, Intent{From: "e2", To: "e4"})
	if err != nil {
		t.Fatalf("ApplyMove: %v", err)
	}
	owner, err = eng.TurnOwner(next)
	if err != nil {
		t.Fatalf("TurnOwner: %v", err)
	}
	if owner != SeatBlack {
		t.Fatalf("owner after e4 = %q, want black", owner)
	}
}

func TestChessTurnOwnerRejectsGarbage(t *testing.T) {
	if _, err := NewChess().TurnOwner("not a fen"); err == nil {
		t.Fatal("expected error for unparseable state")
	}
}

func TestChessApplyMoveLegal(t *testing.T) {
	eng := NewChess()

	mv, next, err := eng.ApplyMove(startFEN, Intent{From: "e2", To: "e4"})
	if err != nil {
		t.Fatalf("ApplyMove: %v", err)
	}
	if mv.From != "e2" || mv.To != "e4" || mv.SAN != "e4" || mv.Color != SeatWhite {
		t.Fatalf("move = %+v", mv)
	}
	if mv.Capture {
		t.Fatal("pawn push flagged as capture")
	}
	if mv.FEN != next {
		t.Fatalf("move FEN %q != returned state %q", mv.FEN, next)
	}
	if !strings.Contains(next, " b ") {
		t.Fatalf("state after white's move = %q, want black to move", next)
	}
}

func TestChessApplyMoveIsPure(t *testing.T) {
	eng := NewChess()

	// Two different moves from the same state both succeed; nothing is
	// mutated in place.
	if _, _, err := eng.ApplyMove(startFEN, Intent{From: "e2", To: "e4"}); err != nil {
		t.Fatalf("first move: %v", err)
	}
	if _, _, err := eng.ApplyMove(startFEN, Intent{From: "d2", To: "d4"}); err != nil {
		t.Fatalf("second move from same state: %v", err)
	}
}

func TestChessApplyMoveIllegal(t *testing.T) {
	eng := NewChess()

	for _, intent := range []Intent{
		{From: "e2", To: "e5"}, // too far
		{From: "e7", To: "e5"}, // not the mover's piece
		{From: "e3", To: "e4"}, // empty square
		{From: "zz", To: "e4"}, // malformed
	} {
		_, _, err := eng.ApplyMove(startFEN, intent)
		if !errors.Is(err, ErrIllegalMove) {
			t.Fatalf("ApplyMove(%+v) error = %v, want ErrIllegalMove", intent, err)
		}
	}
}

func TestChessApplyMoveCapture(t *testing.T) {
	eng := NewChess()

	state := startFEN
	var err error
	for _, intent := range []Intent{
		{From: "e2", To: "e4"},
		{From: "d7", To: "d5"},
	} {
		if _, state, err = eng.ApplyMove(state, intent); err != nil {
			t.Fatalf("ApplyMove(%+v): %v", intent, err)
		}
	}

	mv, _, err := eng.ApplyMove(state, Intent{From: "e4", To: "d5"})
	if err != nil {
		t.Fatalf("ApplyMove: %v", err)
	}
	if !mv.Capture || mv.SAN != "exd5" {
		t.Fatalf("move = %+v, want exd5 capture", mv)
	}
}

func TestChessApplyMovePromotion(t *testing.T) {
	eng := NewChess()
	state := "8/P6k/8/8/8/8/8/7K w - - 0 1"

	mv, next, err := eng.ApplyMove(state, Intent{From: "a7", To: "a8", Promotion: "q"})
	if err != nil {
		t.Fatalf("ApplyMove: %v", err)
	}
	if mv.SAN != "a8=Q" || mv.Promotion != "q" {
		t.Fatalf("move = %+v, want a8=Q", mv)
	}
	owner, err := eng.TurnOwner(next)
	if err != nil {
		t.Fatalf("TurnOwner: %v", err)
	}
	if owner != SeatBlack {
		t.Fatalf("owner = %q, want black", owner)
	}
}

func TestChessTerminalCheckmate(t *testing.T) {
	eng := NewChess()

	// Fool's mate: 1. f3 e5 2. g4 Qh4#
	state := eng.InitialState()
	var err error
	for _, intent := range []Intent{
		{From: "f2", To: "f3"},
		{From: "e7", To: "e5"},
		{From: "g2", To: "g4"},
		{From: "d8", To: "h4"},
	} {
		if _, state, err = eng.ApplyMove(state, intent); err != nil {
			t.Fatalf("ApplyMove(%+v): %v", intent, err)
		}
	}

	term, over := eng.Terminal(state)
	if !over {
		t.Fatalf("Terminal(%q) = not over, want checkmate", state)
	}
	if term.Reason != "checkmate" || term.Winner != SeatBlack {
		t.Fatalf("terminal = %+v, want checkmate won by black", term)
	}
}

func TestChessTerminalStalemate(t *testing.T) {
	term, over := NewChess().Terminal("7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	if !over {
		t.Fatal("stalemate position reported as ongoing")
	}
	if term.Reason != "stalemate" || term.Winner != "" {
		t.Fatalf("terminal = %+v, want drawn stalemate", term)
	}
}

func TestChessTerminalOngoing(t *testing.T) {
	if _, over := NewChess().Terminal(startFEN); over {
		t.Fatal("initial position reported as terminal")
	}
}
