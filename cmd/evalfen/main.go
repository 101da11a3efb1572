// Command evalfen prints the static evaluation of FEN positions.
//
//	evalfen [flags] [fen ...]
//
// Positions come from -fen, the arguments, or one per line on stdin.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/hailam/chesseval/internal/board"
	"github.com/hailam/chesseval/internal/engine"
	"github.com/hailam/chesseval/internal/logx"
	"github.com/hailam/chesseval/internal/params"
	"github.com/hailam/chesseval/internal/score"
	"github.com/hailam/chesseval/internal/tablebase"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		fen        = flag.String("fen", "", "Position to evaluate")
		paramsPath = flag.String("params", os.Getenv("CHESSEVAL_PARAMS"), "Weight file (.json or .json.zst)")
		tbPath     = flag.String("tb", os.Getenv("CHESSEVAL_SYZYGY"), "Syzygy directory (\"default\" for the data directory)")
		lichess    = flag.Bool("lichess", false, "Probe the Lichess tablebase API")
		tbCache    = flag.String("tbcache", os.Getenv("CHESSEVAL_TBCACHE"), "Persistent tablebase cache directory (\"default\" for the data directory)")
		noCache    = flag.Bool("nocache", false, "Recompute pawn and king entries for every position")
		no50       = flag.Bool("no50", false, "Ignore the fifty-move rule in tablebase results")
		root       = flag.Bool("root", false, "Also print tablebase root moves")
	)
	flag.Parse()

	logger := logx.NewLogger()

	if *paramsPath != "" {
		p, err := params.Load(*paramsPath)
		if err != nil {
			logger.Fatal().Err(err).Msg("load params")
		}
		engine.Init(p)
		logger.Info().Str("path", *paramsPath).Msg("weights loaded")
	}

	prober, closeTB, err := tablebase.Open(tablebase.Config{
		SyzygyPath: *tbPath,
		Lichess:    *lichess,
		CacheDir:   *tbCache,
	}, &logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("open tablebases")
	}
	defer func() {
		if err := closeTB(); err != nil {
			logger.Error().Err(err).Msg("close tablebase cache")
		}
	}()

	opts := engine.DefaultOptions()
	opts.Prober = prober
	opts.Use50MoveRule = !*no50
	opts.Logger = &logger
	ev := engine.NewEvaluator(opts)

	fens := flag.Args()
	if *fen != "" {
		fens = append([]string{*fen}, fens...)
	}
	if len(fens) == 0 {
		sc := bufio.NewScanner(os.Stdin)
		for sc.Scan() {
			if line := strings.TrimSpace(sc.Text()); line != "" && !strings.HasPrefix(line, "#") {
				fens = append(fens, line)
			}
		}
		if err := sc.Err(); err != nil {
			logger.Error().Err(err).Msg("read stdin")
			return 1
		}
	}

	failed := false
	for _, f := range fens {
		if err := evaluate(ev, prober, f, !*noCache, *root, logger); err != nil {
			logger.Error().Err(err).Str("fen", f).Msg("skip position")
			failed = true
		}
	}

	st := ev.Stats()
	logger.Debug().
		Uint64("pawn_hits", st.PawnHits).
		Uint64("pawn_misses", st.PawnMisses).
		Uint64("king_hits", st.KingHits).
		Uint64("king_misses", st.KingMisses).
		Uint64("tb_hits", st.TablebaseHits).
		Uint64("bitbase_hits", st.BitbaseHits).
		Msg("evaluation stats")

	if failed {
		return 1
	}
	return 0
}

func evaluate(ev *engine.Evaluator, prober tablebase.Prober, fen string, useCache, root bool, logger zerolog.Logger) error {
	pos, err := board.ParseFEN(fen)
	if err != nil {
		return fmt.Errorf("parse fen: %w", err)
	}

	v := ev.Evaluate(pos, useCache)
	fmt.Printf("%s\n", pos.ToFEN())
	fmt.Printf("  score    %s (%s)\n", score.Format(v), score.FormatUCI(v))
	fmt.Printf("  material %+d (white)\n", ev.MaterialScore(pos))
	fmt.Printf("  material %s v %s\n", pos.Material(board.White), pos.Material(board.Black))
	if engine.IsLegalDraw(pos, nil) {
		fmt.Printf("  draw     by rule\n")
	} else if engine.TheoreticalDraw(pos) {
		fmt.Printf("  draw     theoretical\n")
	}

	if root && pos.PieceCount() <= prober.MaxPieces() {
		r := prober.ProbeRoot(pos)
		if r.Found {
			fmt.Printf("  tb       %s dtz %d: %s\n", r.WDL, r.DTZ, strings.Join(r.Moves, " "))
		} else {
			logger.Debug().Str("fen", fen).Msg("no tablebase root result")
		}
	}
	return nil
}
