// Package params holds the evaluation weights. The evaluator treats them as
// read-only configuration: a set is loaded once at startup and installed
// before any evaluation runs.
package params

import "fmt"

// Phase indexes the midgame/endgame halves of phased weights.
const (
	Midgame = 0
	Endgame = 1
)

// ScaleMax is the full weight of a MaterialScale entry.
const ScaleMax = 128

// Params is the complete weight set. Arrays named per rank are indexed by
// the pawn's relative rank (0 = own first rank), arrays named per file by
// file (0 = a-file). Square tables are laid out as printed, rank 8 first,
// from White's side.
type Params struct {
	// Material
	PieceValues        [5]int  `json:"piece_values"` // P N B R Q
	MaterialScale      [32]int `json:"material_scale"`
	BishopPair         int     `json:"bishop_pair"`
	KnightPawnAdjust   int     `json:"knight_pawn_adjust"`
	RookPawnAdjust     int     `json:"rook_pawn_adjust"`
	TradeDown          [17]int `json:"trade_down"`
	NoPawnsDrawishLead int     `json:"no_pawns_drawish_lead"`
	NoPawnsReduction   int     `json:"no_pawns_reduction"` // out of 128

	// Piece placement
	KnightPST      [64]int     `json:"knight_pst"`
	BishopPST      [64]int     `json:"bishop_pst"`
	RookPST        [64]int     `json:"rook_pst"`
	QueenPST       [64]int     `json:"queen_pst"`
	KingMidgamePST [64]int     `json:"king_midgame_pst"`
	KingEndgamePST [64]int     `json:"king_endgame_pst"`
	KnightMobility [2][9]int   `json:"knight_mobility"`
	BishopMobility [2][14]int  `json:"bishop_mobility"`
	RookMobility   [2][15]int  `json:"rook_mobility"`
	QueenMobility  [2][28]int  `json:"queen_mobility"`
	KnightOutpost  [2][2]int   `json:"knight_outpost"` // [phase][defenders-1]
	BishopOutpost  [2][2]int   `json:"bishop_outpost"`
	RookOpenFile   [2]int      `json:"rook_open_file"`
	RookHalfOpen   [2]int      `json:"rook_half_open_file"`
	RookOn7th      [2]int      `json:"rook_on_7th"`
	RookBehindPass [2]int      `json:"rook_behind_passer"`
	RookConnected  [2]int      `json:"rook_connected"`
	TrappedBishop  [2]int      `json:"trapped_bishop"`
	BishopPawnSame [2]int      `json:"bishop_pawn_same_color"`
	BishopTargets  [2]int      `json:"bishop_pawn_targets"`
	SpaceBonus     int         `json:"space_bonus"`

	// Pawn structure
	PassedPawn      [2][8]int `json:"passed_pawn"`
	PotentialPasser [2][8]int `json:"potential_passer"`
	ConnectedPasser [2][8]int `json:"connected_passer"`
	AdjacentPasser  [2][8]int `json:"adjacent_passer"`
	DoubledPawn     [2][8]int `json:"doubled_pawn"`
	TripledPawn     [2][8]int `json:"tripled_pawn"`
	IsolatedOpen    [2][8]int `json:"isolated_open"`
	IsolatedClosed  [2][8]int `json:"isolated_closed"`
	BackwardPawn    [2]int    `json:"backward_pawn"`
	BackwardOpen    [2]int    `json:"backward_open"`
	WeakOnOpenFile  [2]int    `json:"weak_on_open_file"`
	PasserBlocked   [2][8]int `json:"passer_blocked"`
	PasserFreePath  [2][8]int `json:"passer_free_path"`
	PawnSpace       [8][8]int `json:"pawn_space"` // [file][relative rank]
	OutsidePasser   [3]int    `json:"outside_passer"`
	Unstoppable     int       `json:"unstoppable_passer"`

	// King safety
	KingCover          [3][4]int    `json:"king_cover"` // [file distance][rank distance-1, last = none]
	KingCoverOpenFile  int          `json:"king_cover_open_file"`
	KingCoverFullyOpen int          `json:"king_cover_fully_open"`
	PawnStorm          [2][3][5]int `json:"pawn_storm"` // [blocked][file distance][rank distance-1]
	StormAttackedScale int          `json:"storm_attacked_scale"`
	KingPawnAttack     int          `json:"king_pawn_attack"`
	KingAttackWeight   [6]int       `json:"king_attack_weight"`
	KingAttackScale    [32]int      `json:"king_attack_scale"`
	KingAttackMinCount int          `json:"king_attack_min_attackers"`

	// Endgame
	KingOwnPasser     [4]int `json:"king_own_passer"` // [proximity ring]
	KingOppPasser     [4]int `json:"king_opp_passer"`
	KingWeakPawn      int    `json:"king_weak_pawn"`
	KingDistanceBonus int    `json:"king_distance_bonus"`
	KBNKBase          int    `json:"kbnk_base"`
	KBNKCorner        int    `json:"kbnk_corner"`
	KXKBonus          int    `json:"kxk_bonus"`
	KXKEdge           int    `json:"kxk_edge"`
	OCBPawn           int    `json:"ocb_pawn"`
	EarlyEndgameLevel int    `json:"early_endgame_level"`
	DeepEndgameLevel  int    `json:"deep_endgame_level"`
}

// Validate checks the invariants the evaluator relies on.
func (p *Params) Validate() error {
	for i, s := range p.MaterialScale {
		if s < 0 || s > ScaleMax {
			return fmt.Errorf("material_scale[%d] = %d, must be in [0,%d]", i, s, ScaleMax)
		}
	}
	for i := 1; i < len(p.MaterialScale); i++ {
		if p.MaterialScale[i] < p.MaterialScale[i-1] {
			return fmt.Errorf("material_scale must be non-decreasing (index %d)", i)
		}
	}
	for pt, v := range p.PieceValues {
		if v <= 0 {
			return fmt.Errorf("piece_values[%d] = %d, must be positive", pt, v)
		}
	}
	if p.StormAttackedScale < 0 || p.StormAttackedScale > ScaleMax {
		return fmt.Errorf("storm_attacked_scale = %d, must be in [0,%d]", p.StormAttackedScale, ScaleMax)
	}
	if p.NoPawnsReduction < 0 || p.NoPawnsReduction > ScaleMax {
		return fmt.Errorf("no_pawns_reduction = %d, must be in [0,%d]", p.NoPawnsReduction, ScaleMax)
	}
	if p.KingAttackMinCount < 1 {
		return fmt.Errorf("king_attack_min_attackers = %d, must be at least 1", p.KingAttackMinCount)
	}
	return nil
}

// Clone returns a deep copy. Params holds only arrays, so a value copy suffices.
func (p *Params) Clone() *Params {
	c := *p
	return &c
}
