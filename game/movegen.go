package game

// LegalMoves generates every legal move for the side to move. Captures are
// mandatory: if any piece can capture, only captures are returned.
//
// Pieces are visited in row-major order, directions in a fixed order and
// landings nearest first, so the result is deterministic for a position.
func (gs *GameState) LegalMoves() []Move {
	var captures, steps []Move
	for _, from := range gs.Board.Pieces(gs.Player) {
		captures = append(captures, captureMoves(gs.Board, from)...)
		if len(captures) == 0 {
			steps = append(steps, stepMoves(&gs.Board, from)...)
		}
	}
	if len(captures) > 0 {
		return captures
	}
	return steps
}

// stepMoves lists the non-capturing moves of the piece on from. A man steps
// to an adjacent forward square, a king slides any distance until blocked.
func stepMoves(b *Board, from Coord) []Move {
	piece := b.At(from)
	var moves []Move
	for _, d := range piece.directions() {
		for to := from.step(d); to.InBounds() && !b.At(to).Occupied; to = to.step(d) {
			moves = append(moves, Move{from, to})
			if !piece.IsKing() {
				break
			}
		}
	}
	return moves
}

// squareSet is a bitset over the 64 tiles.
type squareSet uint64

func (s squareSet) has(c Coord) bool {
	return s&(1<<uint(c.Row*Size+c.Col)) != 0
}

func (s squareSet) with(c Coord) squareSet {
	return s | 1<<uint(c.Row*Size+c.Col)
}

// captureMoves runs the depth-first capture search for the piece on from.
func captureMoves(b Board, from Coord) []Move {
	var moves []Move
	searchCaptures(b, from, b.At(from), Move{from}, 0, &moves)
	return moves
}

// searchCaptures extends path from the square at with every capture
// available to piece. Each branch works on its own copy of the board, with
// the moving piece relocated and the captured piece lifted, so siblings never
// see each other's changes. A path that cannot be extended is complete and is
// recorded if it holds at least one capture.
//
// The piece keeps its rank for the whole chain. A man that reaches its
// promotion row has no forward direction left, so its chain ends there.
func searchCaptures(b Board, at Coord, piece Piece, path Move, captured squareSet, out *[]Move) {
	extended := false
	for _, d := range piece.directions() {
		victim, ok := findVictim(&b, at, d, piece, captured)
		if !ok {
			continue
		}
		for land := victim.step(d); land.InBounds() && !b.At(land).Occupied; land = land.step(d) {
			next := b
			next.Clear(at)
			next.Clear(victim)
			next.Set(land, piece)
			searchCaptures(next, land, piece, path.extend(land), captured.with(victim), out)
			extended = true
			if !piece.IsKing() {
				break
			}
		}
	}
	if !extended && len(path) >= 2 {
		*out = append(*out, path)
	}
}

// findVictim scans from at along d for a capturable enemy piece. A man only
// looks at the adjacent square, a king skips any run of empty squares first.
func findVictim(b *Board, at Coord, d direction, piece Piece, captured squareSet) (Coord, bool) {
	for c := at.step(d); c.InBounds(); c = c.step(d) {
		target := b.At(c)
		if !target.Occupied {
			if !piece.IsKing() {
				return Coord{}, false
			}
			continue
		}
		if target.Color == piece.Color || captured.has(c) {
			return Coord{}, false
		}
		return c, true
	}
	return Coord{}, false
}
