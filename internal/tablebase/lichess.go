package tablebase

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/hailam/chesseval/internal/board"
)

// DefaultLichessURL is the public standard-chess tablebase endpoint.
const DefaultLichessURL = "https://tablebase.lichess.ovh/standard"

// LichessProber uses the Lichess tablebase API for online lookups.
// Note: This requires network access and has rate limits.
type LichessProber struct {
	BaseURL string

	client    *http.Client
	maxPieces int
	log       zerolog.Logger
}

// NewLichessProber creates a new Lichess-based tablebase prober.
func NewLichessProber(logger *zerolog.Logger) *LichessProber {
	log := zerolog.Nop()
	if logger != nil {
		log = *logger
	}
	return &LichessProber{
		BaseURL: DefaultLichessURL,
		client: &http.Client{
			Timeout: 5 * time.Second,
		},
		maxPieces: 7, // Lichess supports up to 7-piece tablebases
		log:       log,
	}
}

// Lichess API response structure
type lichessResponse struct {
	Category string `json:"category"`
	DTZ      *int   `json:"dtz"`
	Moves    []struct {
		UCI      string `json:"uci"`
		Category string `json:"category"` // from the opponent's point of view
		DTZ      *int   `json:"dtz"`
	} `json:"moves"`
}

func (lp *LichessProber) query(pos *board.Position) (*lichessResponse, bool) {
	if pos.PieceCount() > lp.maxPieces || pos.CastlingRights != board.NoCastling {
		return nil, false
	}

	// Lichess accepts underscores in place of the FEN's spaces.
	fen := strings.ReplaceAll(pos.ToFEN(), " ", "_")
	u := fmt.Sprintf("%s?fen=%s", lp.BaseURL, url.QueryEscape(fen))

	resp, err := lp.client.Get(u)
	if err != nil {
		lp.log.Debug().Err(err).Str("fen", fen).Msg("lichess request failed")
		return nil, false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		lp.log.Debug().Int("status", resp.StatusCode).Str("fen", fen).Msg("lichess request rejected")
		return nil, false
	}

	var result lichessResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		lp.log.Debug().Err(err).Msg("lichess response malformed")
		return nil, false
	}
	if _, ok := categoryToWDL(result.Category); !ok {
		return nil, false
	}
	return &result, true
}

func (lp *LichessProber) ProbeWDL(pos *board.Position, use50 bool) ProbeResult {
	result, ok := lp.query(pos)
	if !ok {
		return ProbeResult{}
	}
	wdl, _ := categoryToWDL(result.Category)
	if !use50 {
		wdl = ignore50(wdl)
	}
	r := ProbeResult{Found: true, WDL: wdl}
	if result.DTZ != nil {
		r.DTZ = *result.DTZ
	}
	return r
}

// ProbeRoot returns the legal moves that keep the root's value. DTZ is the
// smallest absolute DTZ among them.
func (lp *LichessProber) ProbeRoot(pos *board.Position) RootResult {
	result, ok := lp.query(pos)
	if !ok {
		return notFound
	}
	root, _ := categoryToWDL(result.Category)

	legal := pos.LegalMoves()
	out := RootResult{Found: true, WDL: root, DTZ: -1}
	for _, m := range result.Moves {
		wdl, ok := categoryToWDL(m.Category)
		if !ok || -wdl != root || !slices.Contains(legal, m.UCI) {
			continue
		}
		out.Moves = append(out.Moves, m.UCI)
		if m.DTZ != nil {
			d := *m.DTZ
			if d < 0 {
				d = -d
			}
			if out.DTZ < 0 || d < out.DTZ {
				out.DTZ = d
			}
		}
	}
	if len(out.Moves) == 0 {
		return notFound
	}
	if out.DTZ < 0 {
		out.DTZ = 0
	}
	slices.Sort(out.Moves)
	return out
}

func (lp *LichessProber) MaxPieces() int {
	return lp.maxPieces
}

// categoryToWDL maps a Lichess category onto a WDL value. The "maybe"
// categories are rounded toward the 50-move-rule result.
func categoryToWDL(category string) (WDL, bool) {
	switch category {
	case "win", "syzygy-win":
		return WDLWin, true
	case "maybe-win", "cursed-win":
		return WDLCursedWin, true
	case "draw":
		return WDLDraw, true
	case "blessed-loss", "maybe-loss":
		return WDLBlessedLoss, true
	case "loss", "syzygy-loss":
		return WDLLoss, true
	default:
		return WDLDraw, false
	}
}
