package game

import (
	"fmt"
	"sync"

	"github.com/apex/log"
	"github.com/notnil/chess"

	"github.com/qnkhuat/chessterm/pkg/model"
)

var promotionTypes = []model.PieceType{model.Queen, model.Rook, model.Bishop, model.Knight}

type Option func(*Local) error

// WithFEN starts the game from the given position instead of the initial one
func WithFEN(fen string) Option {
	return func(l *Local) error {
		opt, err := chess.FEN(fen)
		if err != nil {
			return fmt.Errorf("game: %w", err)
		}
		l.game = chess.NewGame(opt, chess.UseNotation(chess.UCINotation{}))
		return nil
	}
}

func WithLogger(logger log.Interface) Option {
	return func(l *Local) error {
		l.log = logger
		return nil
	}
}

// Local is a hot-seat game: whoever sits at the terminal plays both sides
type Local struct {
	mu sync.Mutex

	game   *chess.Game
	humans map[model.Side]bool
	active bool
	log    log.Interface

	moveListeners  []MoveListener
	sideListeners  []SideListener
	stateListeners []StateListener
	promotion      PromotionListener
}

func NewLocal(opts ...Option) (*Local, error) {
	return newLocal(map[model.Side]bool{model.White: true, model.Black: true}, opts...)
}

func newLocal(humans map[model.Side]bool, opts ...Option) (*Local, error) {
	l := &Local{
		game:   chess.NewGame(chess.UseNotation(chess.UCINotation{})),
		humans: humans,
		log:    log.Log,
	}
	for _, opt := range opts {
		if err := opt(l); err != nil {
			return nil, err
		}
	}
	return l, nil
}

func (l *Local) MovesForPieceAt(p model.Position) []model.Move {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.active || !p.Valid() || !l.humans[sideOf(l.game.Position().Turn())] {
		return nil
	}

	pos := l.game.Position()
	sq := squareOf(p)
	promoted := make(map[chess.Square]bool)
	var moves []model.Move
	for _, m := range l.game.ValidMoves() {
		if m.S1() != sq {
			continue
		}
		// One entry per destination, the piece type is asked for on commit
		if m.Promo() != chess.NoPieceType {
			if promoted[m.S2()] {
				continue
			}
			promoted[m.S2()] = true
		}
		mv := moveOf(pos, m)
		mv.Promotion = model.NoPieceType
		moves = append(moves, mv)
	}
	return moves
}

func (l *Local) MoveResultsInCapture(m model.Move) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	pos := l.game.Position()
	for _, valid := range l.game.ValidMoves() {
		if valid.S1() == squareOf(m.Start) && valid.S2() == squareOf(m.Dest) {
			return moveOf(pos, valid).Capture
		}
	}
	return false
}

func (l *Local) MakeMove(m model.Move) error {
	_, err := l.makeMove(m)
	return err
}

// makeMove plays a move requested at this terminal and returns it as executed
func (l *Local) makeMove(req model.Move) (model.Move, error) {
	promo := model.NoPieceType
	if l.needsPromotion(req) {
		promo = l.choosePromotion()
	}
	return l.apply(req, promo, true)
}

func (l *Local) needsPromotion(req model.Move) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, m := range l.game.ValidMoves() {
		if m.S1() == squareOf(req.Start) && m.S2() == squareOf(req.Dest) && m.Promo() != chess.NoPieceType {
			return true
		}
	}
	return false
}

func (l *Local) choosePromotion() model.PieceType {
	l.mu.Lock()
	fn := l.promotion
	l.mu.Unlock()

	if fn == nil {
		return promotionTypes[0]
	}
	choice := fn()
	for _, t := range promotionTypes {
		if t == choice {
			return choice
		}
	}
	l.log.WithField("choice", choice).Warn("promotion listener returned an unknown piece type")
	return promotionTypes[0]
}

// apply plays the engine move matching req. human restricts it to the sides
// played at this terminal.
func (l *Local) apply(req model.Move, promo model.PieceType, human bool) (model.Move, error) {
	l.mu.Lock()

	if !l.active {
		l.mu.Unlock()
		return model.Move{}, model.NewIllegalMove(req, "turn is over")
	}
	side := sideOf(l.game.Position().Turn())
	if human && !l.humans[side] {
		l.mu.Unlock()
		return model.Move{}, model.NewIllegalMove(req, fmt.Sprintf("%s is not played here", side))
	}

	match := l.find(req, promo)
	if match == nil {
		l.mu.Unlock()
		return model.Move{}, model.NewIllegalMove(req, "")
	}

	executed := moveOf(l.game.Position(), match)
	if err := l.game.Move(match); err != nil {
		l.mu.Unlock()
		return model.Move{}, model.NewIllegalMove(req, err.Error())
	}
	listeners := append([]MoveListener(nil), l.moveListeners...)
	l.mu.Unlock()

	l.log.WithFields(log.Fields{"side": side, "move": executed}).Debug("move made")
	captured := capturedPositions(executed)
	for _, fn := range listeners {
		fn(executed, captured)
	}
	return executed, nil
}

// find must be called with mu held
func (l *Local) find(req model.Move, promo model.PieceType) *chess.Move {
	want := chessPieceType(promo)
	if want == chess.NoPieceType {
		want = chessPieceType(promotionTypes[0])
	}
	for _, m := range l.game.ValidMoves() {
		if m.S1() != squareOf(req.Start) || m.S2() != squareOf(req.Dest) {
			continue
		}
		if m.Promo() == chess.NoPieceType || m.Promo() == want {
			return m
		}
	}
	return nil
}

func (l *Local) EndTurn() {
	l.mu.Lock()
	l.active = false
	l.mu.Unlock()
}

func (l *Local) BeginTurn() {
	l.mu.Lock()
	state := stateOf(l.game)
	side := sideOf(l.game.Position().Turn())
	l.active = !state.IsGameOver()
	sideListeners := append([]SideListener(nil), l.sideListeners...)
	stateListeners := append([]StateListener(nil), l.stateListeners...)
	l.mu.Unlock()

	for _, fn := range sideListeners {
		fn(side)
	}
	for _, fn := range stateListeners {
		fn(state)
	}
}

func (l *Local) StartGame() {
	l.log.WithField("fen", l.FEN()).Info("game started")
	l.BeginTurn()
}

// resign ends the game in favour of the other side of s
func (l *Local) resign(s model.Side) {
	l.mu.Lock()
	if l.game.Outcome() != chess.NoOutcome {
		l.mu.Unlock()
		return
	}
	l.game.Resign(colorOf(s))
	l.active = false
	state := stateOf(l.game)
	listeners := append([]StateListener(nil), l.stateListeners...)
	l.mu.Unlock()

	for _, fn := range listeners {
		fn(state)
	}
}

func (l *Local) CurrentSide() model.Side {
	l.mu.Lock()
	defer l.mu.Unlock()
	return sideOf(l.game.Position().Turn())
}

func (l *Local) CurrentState() model.GameState {
	l.mu.Lock()
	defer l.mu.Unlock()
	return stateOf(l.game)
}

func (l *Local) ActivePieces() map[model.Position]model.Piece {
	l.mu.Lock()
	defer l.mu.Unlock()

	pieces := make(map[model.Position]model.Piece)
	for sq, p := range l.game.Position().Board().SquareMap() {
		pieces[positionOf(sq)] = pieceOf(p)
	}
	return pieces
}

func (l *Local) SymbolForPieceAt(p model.Position) string {
	if !p.Valid() {
		return ""
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	piece := l.game.Position().Board().Piece(squareOf(p))
	if piece == chess.NoPiece {
		return ""
	}
	return pieceOf(piece).Symbol()
}

func (l *Local) PromotionTypes() []model.PieceType {
	return append([]model.PieceType(nil), promotionTypes...)
}

// FEN describes the current position
func (l *Local) FEN() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.game.Position().String()
}

// Position returns a private copy of the current position, safe to search
func (l *Local) Position() (*chess.Position, error) {
	l.mu.Lock()
	text, err := l.game.Position().MarshalText()
	l.mu.Unlock()
	if err != nil {
		return nil, err
	}
	pos := &chess.Position{}
	if err := pos.UnmarshalText(text); err != nil {
		return nil, err
	}
	return pos, nil
}

func (l *Local) AddMoveListener(fn MoveListener) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.moveListeners = append(l.moveListeners, fn)
}

func (l *Local) AddSideListener(fn SideListener) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sideListeners = append(l.sideListeners, fn)
}

func (l *Local) AddStateListener(fn StateListener) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.stateListeners = append(l.stateListeners, fn)
}

func (l *Local) SetPromotionListener(fn PromotionListener) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.promotion = fn
}
