package engine

import (
	"fmt"
	"strings"

	"github.com/notnil/chess"
)

// Chess is the default Engine: standard chess over FEN strings, backed by
// notnil/chess.
type Chess struct{}

func NewChess() Chess {
	return Chess{}
}

func (Chess) InitialState() string {
	return chess.NewGame().FEN()
}

func (Chess) TurnOwner(state string) (Seat, error) {
	game, err := gameFrom(state)
	if err != nil {
		return "", err
	}
	return Seat(game.Position().Turn().String()), nil
}

func (Chess) ApplyMove(state string, intent Intent) (Move, string, error) {
	game, err := gameFrom(state)
	if err != nil {
		return Move{}, "", err
	}

	uci := strings.ToLower(intent.From + intent.To + intent.Promotion)
	pos := game.Position()
	mv, err := chess.UCINotation{}.Decode(pos, uci)
	if err != nil {
		return Move{}, "", fmt.Errorf("%w: %q", ErrIllegalMove, uci)
	}

	// Encode SAN against the pre-move position before committing.
	san := chess.AlgebraicNotation{}.Encode(pos, mv)
	color := pos.Turn()

	if err := game.Move(mv); err != nil {
		return Move{}, "", fmt.Errorf("%w: %q", ErrIllegalMove, uci)
	}

	next := game.FEN()
	committed := Move{
		From:      mv.S1().String(),
		To:        mv.S2().String(),
		Promotion: intent.Promotion,
		SAN:       san,
		Color:     Seat(color.String()),
		Capture:   mv.HasTag(chess.Capture),
		FEN:       next,
	}
	return committed, next, nil
}

// Terminal detects checkmate and stalemate from the position alone. Draws
// that depend on game history (repetition, fifty-move claims) cannot be seen
// from a single FEN and are left to richer engines.
func (Chess) Terminal(state string) (Terminal, bool) {
	game, err := gameFrom(state)
	if err != nil {
		return Terminal{}, false
	}

	switch game.Position().Status() {
	case chess.Checkmate:
		winner := SeatWhite
		if game.Position().Turn() == chess.White {
			winner = SeatBlack
		}
		return Terminal{Reason: "checkmate", Winner: winner}, true
	case chess.Stalemate:
		return Terminal{Reason: "stalemate"}, true
	}
	return Terminal{}, false
}

func gameFrom(state string) (*chess.Game, error) {
	opt, err := chess.FEN(state)
	if err != nil {
		return nil, fmt.Errorf("parse state: %w", err)
	}
	return chess.NewGame(opt), nil
}
