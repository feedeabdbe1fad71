package room

import (
	"testing"

	"chessrooms/internal/engine"
)

// Replaying the committed history from the initial state must reproduce the
// room's authoritative state at every point, here with the real chess engine.
func TestHistoryReplayReproducesState(t *testing.T) {
	eng := engine.NewChess()
	rec := &recorder{}
	registry := NewRegistry(eng, rec)
	c := NewCoordinator(registry)

	c.Join("x", "r1")
	c.Join("y", "r1")
	r, ok := registry.Lookup("r1")
	if !ok {
		t.Fatal("room r1 missing")
	}

	moves := []struct {
		conn   string
		intent engine.Intent
	}{
		{"x", engine.Intent{From: "e2", To: "e4"}},
		{"y", engine.Intent{From: "e7", To: "e5"}},
		{"x", engine.Intent{From: "g1", To: "f3"}},
		{"y", engine.Intent{From: "b8", To: "c6"}},
		{"x", engine.Intent{From: "f1", To: "c4"}},
		{"y", engine.Intent{From: "f8", To: "c5"}},
	}

	for i, mv := range moves {
		c.SubmitMove(mv.conn, mv.intent)

		history := r.History()
		if len(history) != i+1 {
			t.Fatalf("after move %d: history length = %d, want %d", i+1, len(history), i+1)
		}

		state := eng.InitialState()
		for j, committed := range history {
			var err error
			_, state, err = eng.ApplyMove(state, engine.Intent{
				From:      committed.From,
				To:        committed.To,
				Promotion: committed.Promotion,
			})
			if err != nil {
				t.Fatalf("replaying move %d: %v", j+1, err)
			}
		}
		if state != r.State() {
			t.Fatalf("after move %d: replayed state %q != room state %q", i+1, state, r.State())
		}
	}
}

func TestChessRoomRejectsIllegalMoveOnlyToSubmitter(t *testing.T) {
	rec := &recorder{}
	registry := NewRegistry(engine.NewChess(), rec)
	c := NewCoordinator(registry)
	c.Join("x", "r1")
	c.Join("y", "r1")
	rec.clear()

	c.SubmitMove("x", engine.Intent{From: "e2", To: "e5"})

	evs := rec.all()
	if len(evs) != 1 || evs[0].action != EventMoveRejected || evs[0].target != "x" {
		t.Fatalf("events = %+v, want one moveRejected to x", evs)
	}
	r, _ := registry.Lookup("r1")
	if len(r.History()) != 0 {
		t.Fatal("illegal move appended to history")
	}
}
