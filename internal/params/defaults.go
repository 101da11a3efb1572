package params

// Default returns the built-in weight set.
func Default() *Params {
	p := &Params{
		PieceValues: [5]int{100, 325, 335, 500, 975},
		MaterialScale: [32]int{
			0, 0, 0, 0, 0, 5, 10, 16, 21, 26, 32, 37, 42, 48, 53, 58,
			64, 69, 74, 80, 85, 90, 96, 101, 106, 112, 117, 122, 128, 128, 128, 128,
		},
		BishopPair:       40,
		KnightPawnAdjust: 4,
		RookPawnAdjust:   6,
		TradeDown: [17]int{
			0,
			4, 8, 12, 16,
			8, 14, 20, 26,
			12, 20, 28, 36,
			16, 26, 36, 46,
		},
		NoPawnsDrawishLead: 350,
		NoPawnsReduction:   64,

		KnightPST: [64]int{
			-50, -40, -30, -30, -30, -30, -40, -50,
			-40, -20, 0, 0, 0, 0, -20, -40,
			-30, 0, 10, 15, 15, 10, 0, -30,
			-30, 5, 15, 20, 20, 15, 5, -30,
			-30, 0, 15, 20, 20, 15, 0, -30,
			-30, 5, 10, 15, 15, 10, 5, -30,
			-40, -20, 0, 5, 5, 0, -20, -40,
			-50, -40, -30, -30, -30, -30, -40, -50,
		},
		BishopPST: [64]int{
			-20, -10, -10, -10, -10, -10, -10, -20,
			-10, 0, 0, 0, 0, 0, 0, -10,
			-10, 0, 5, 10, 10, 5, 0, -10,
			-10, 5, 5, 10, 10, 5, 5, -10,
			-10, 0, 10, 10, 10, 10, 0, -10,
			-10, 10, 10, 10, 10, 10, 10, -10,
			-10, 5, 0, 0, 0, 0, 5, -10,
			-20, -10, -10, -10, -10, -10, -10, -20,
		},
		RookPST: [64]int{
			0, 0, 0, 0, 0, 0, 0, 0,
			5, 10, 10, 10, 10, 10, 10, 5,
			-5, 0, 0, 0, 0, 0, 0, -5,
			-5, 0, 0, 0, 0, 0, 0, -5,
			-5, 0, 0, 0, 0, 0, 0, -5,
			-5, 0, 0, 0, 0, 0, 0, -5,
			-5, 0, 0, 0, 0, 0, 0, -5,
			0, 0, 0, 5, 5, 0, 0, 0,
		},
		QueenPST: [64]int{
			-20, -10, -10, -5, -5, -10, -10, -20,
			-10, 0, 0, 0, 0, 0, 0, -10,
			-10, 0, 5, 5, 5, 5, 0, -10,
			-5, 0, 5, 5, 5, 5, 0, -5,
			0, 0, 5, 5, 5, 5, 0, -5,
			-10, 5, 5, 5, 5, 5, 0, -10,
			-10, 0, 5, 0, 0, 0, 0, -10,
			-20, -10, -10, -5, -5, -10, -10, -20,
		},
		KingMidgamePST: [64]int{
			-30, -40, -40, -50, -50, -40, -40, -30,
			-30, -40, -40, -50, -50, -40, -40, -30,
			-30, -40, -40, -50, -50, -40, -40, -30,
			-30, -40, -40, -50, -50, -40, -40, -30,
			-20, -30, -30, -40, -40, -30, -30, -20,
			-10, -20, -20, -20, -20, -20, -20, -10,
			20, 20, 0, 0, 0, 0, 20, 20,
			20, 30, 10, 0, 0, 10, 30, 20,
		},
		KingEndgamePST: [64]int{
			-50, -40, -30, -20, -20, -30, -40, -50,
			-30, -20, -10, 0, 0, -10, -20, -30,
			-30, -10, 20, 30, 30, 20, -10, -30,
			-30, -10, 30, 40, 40, 30, -10, -30,
			-30, -10, 30, 40, 40, 30, -10, -30,
			-30, -10, 20, 30, 30, 20, -10, -30,
			-30, -30, 0, 0, 0, 0, -30, -30,
			-50, -30, -30, -30, -30, -30, -30, -50,
		},
		KnightMobility: [2][9]int{
			{-20, -12, -6, -2, 2, 6, 9, 12, 14},
			{-25, -15, -8, -3, 2, 6, 10, 13, 15},
		},
		BishopMobility: [2][14]int{
			{-25, -15, -7, -2, 3, 8, 12, 16, 19, 22, 24, 26, 27, 28},
			{-30, -18, -9, -3, 3, 9, 14, 18, 22, 25, 27, 29, 30, 31},
		},
		RookMobility: [2][15]int{
			{-15, -10, -6, -3, 0, 3, 5, 7, 9, 11, 12, 13, 14, 15, 16},
			{-30, -20, -12, -6, 0, 6, 11, 16, 20, 24, 27, 30, 32, 34, 35},
		},
		KnightOutpost:  [2][2]int{{12, 25}, {6, 15}},
		BishopOutpost:  [2][2]int{{8, 15}, {4, 10}},
		RookOpenFile:   [2]int{20, 25},
		RookHalfOpen:   [2]int{10, 15},
		RookOn7th:      [2]int{30, 40},
		RookBehindPass: [2]int{10, 25},
		RookConnected:  [2]int{10, 15},
		TrappedBishop:  [2]int{-80, -50},
		BishopPawnSame: [2]int{-3, -6},
		BishopTargets:  [2]int{2, 5},
		SpaceBonus:     2,

		PassedPawn: [2][8]int{
			{0, 5, 10, 20, 35, 60, 100, 0},
			{0, 10, 20, 40, 70, 120, 200, 0},
		},
		PotentialPasser: [2][8]int{
			{0, 2, 4, 8, 14, 24, 0, 0},
			{0, 4, 8, 16, 28, 48, 0, 0},
		},
		ConnectedPasser: [2][8]int{
			{0, 0, 5, 10, 15, 25, 35, 0},
			{0, 0, 10, 20, 30, 45, 60, 0},
		},
		AdjacentPasser: [2][8]int{
			{0, 0, 2, 5, 8, 12, 16, 0},
			{0, 0, 5, 10, 15, 22, 30, 0},
		},
		DoubledPawn: [2][8]int{
			{-10, -12, -15, -15, -15, -15, -12, -10},
			{-15, -18, -20, -20, -20, -20, -18, -15},
		},
		TripledPawn: [2][8]int{
			{-15, -20, -25, -25, -25, -25, -20, -15},
			{-25, -30, -35, -35, -35, -35, -30, -25},
		},
		IsolatedOpen: [2][8]int{
			{-12, -16, -20, -22, -22, -20, -16, -12},
			{-16, -20, -24, -26, -26, -24, -20, -16},
		},
		IsolatedClosed: [2][8]int{
			{-8, -10, -12, -14, -14, -12, -10, -8},
			{-12, -16, -18, -20, -20, -18, -16, -12},
		},
		BackwardPawn:   [2]int{-12, -10},
		BackwardOpen:   [2]int{-18, -12},
		WeakOnOpenFile: [2]int{-10, -5},
		PasserBlocked: [2][8]int{
			{0, -2, -4, -6, -10, -15, -20, 0},
			{0, -4, -8, -12, -20, -30, -40, 0},
		},
		PasserFreePath: [2][8]int{
			{0, 0, 2, 4, 8, 12, 18, 0},
			{0, 0, 5, 10, 18, 28, 40, 0},
		},
		PawnSpace: [8][8]int{
			{0, 0, 0, 0, 1, 1, 0, 0},
			{0, 0, 0, 1, 1, 2, 0, 0},
			{0, 0, 1, 2, 3, 3, 0, 0},
			{0, 0, 2, 3, 4, 4, 0, 0},
			{0, 0, 2, 3, 4, 4, 0, 0},
			{0, 0, 1, 2, 3, 3, 0, 0},
			{0, 0, 0, 1, 1, 2, 0, 0},
			{0, 0, 0, 0, 1, 1, 0, 0},
		},
		OutsidePasser: [3]int{0, 25, 45},
		Unstoppable:   600,

		KingCover: [3][4]int{
			{12, 6, 2, 0},
			{10, 5, 2, 0},
			{8, 4, 1, 0},
		},
		KingCoverOpenFile:  -12,
		KingCoverFullyOpen: -10,
		PawnStorm: [2][3][5]int{
			{{-20, -14, -8, -3, 0}, {-16, -10, -6, -2, 0}, {-10, -6, -3, -1, 0}},
			{{-6, -4, -2, 0, 0}, {-5, -3, -1, 0, 0}, {-3, -2, -1, 0, 0}},
		},
		StormAttackedScale: 64,
		KingPawnAttack:     -8,
		KingAttackWeight:   [6]int{0, 2, 2, 3, 5, 0},
		KingAttackMinCount: 2,

		KingOwnPasser:     [4]int{20, 12, 6, 2},
		KingOppPasser:     [4]int{25, 15, 8, 3},
		KingWeakPawn:      6,
		KingDistanceBonus: 8,
		KBNKBase:          700,
		KBNKCorner:        10,
		KXKBonus:          400,
		KXKEdge:           12,
		OCBPawn:           25,
		EarlyEndgameLevel: 16,
		DeepEndgameLevel:  8,
	}

	p.QueenMobility = [2][28]int{mobilityCurve(28, 1, -10), mobilityCurve(28, 2, -20)}
	p.KingAttackScale = attackCurve()
	return p
}

// mobilityCurve returns a flattening curve of n entries starting at base and
// rising by roughly step per move early on.
func mobilityCurve(n, step, base int) [28]int {
	var out [28]int
	v := base
	for i := range n {
		out[i] = v
		switch {
		case i < 8:
			v += step * 2
		case i < 16:
			v += step
		}
	}
	return out
}

// attackCurve maps accumulated attack weight to a midgame penalty. Growth is
// quadratic at first, then linear.
func attackCurve() [32]int {
	var out [32]int
	for i := range out {
		if i < 12 {
			out[i] = -(i * i * 3 / 2)
		} else {
			out[i] = out[11] - (i-11)*18
		}
	}
	return out
}
