// Command evalbench replays PGN games and evaluates every position on a pool
// of workers, each with its own evaluator. With -engine it also asks a UCI
// engine for a reference score and reports how far the two disagree.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math"
	"os"
	"os/signal"
	"runtime"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/freeeve/pgn/v3"
	"github.com/freeeve/uci"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/hailam/chesseval/internal/board"
	"github.com/hailam/chesseval/internal/engine"
	"github.com/hailam/chesseval/internal/logx"
	"github.com/hailam/chesseval/internal/params"
	"github.com/hailam/chesseval/internal/score"
	"github.com/hailam/chesseval/internal/tablebase"
)

type config struct {
	workers    int
	enginePath string
	depth      int
	hashMB     int
	skipPlies  int
	useCache   bool
	opts       engine.Options
}

// game is the FEN sequence of one replayed game.
type game []string

type totals struct {
	games     atomic.Int64
	positions atomic.Int64
	compared  atomic.Int64
	agree     atomic.Int64
	absDiff   atomic.Int64
	nanos     atomic.Int64
}

func main() {
	var (
		pgnPath    = flag.String("pgn", "", "Path to PGN file (supports .zst)")
		workers    = flag.Int("workers", runtime.NumCPU(), "Number of evaluation workers")
		maxGames   = flag.Int("max-games", 0, "Maximum games to process (0 = unlimited)")
		skipPlies  = flag.Int("skip", 8, "Opening plies to skip in each game")
		enginePath = flag.String("engine", "", "UCI engine to compare against")
		depth      = flag.Int("depth", 8, "Search depth for the reference engine")
		hashMB     = flag.Int("hash", 16, "Reference engine hash size in MB")
		paramsPath = flag.String("params", os.Getenv("CHESSEVAL_PARAMS"), "Weight file (.json or .json.zst)")
		tbPath     = flag.String("tb", os.Getenv("CHESSEVAL_SYZYGY"), "Syzygy directory (\"default\" for the data directory)")
		lichess    = flag.Bool("lichess", false, "Probe the Lichess tablebase API")
		tbCache    = flag.String("tbcache", os.Getenv("CHESSEVAL_TBCACHE"), "Persistent tablebase cache directory (\"default\" for the data directory)")
		noCache    = flag.Bool("nocache", false, "Recompute pawn and king entries for every position")
	)
	flag.Parse()

	if *pgnPath == "" {
		fmt.Fprintln(os.Stderr, "Usage: evalbench --pgn <file.pgn[.zst]> [options]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	logger := logx.NewLogger()
	if *paramsPath != "" {
		p, err := params.Load(*paramsPath)
		if err != nil {
			logger.Fatal().Err(err).Msg("load params")
		}
		engine.Init(p)
	}

	prober, closeTB, err := tablebase.Open(tablebase.Config{
		SyzygyPath: *tbPath,
		Lichess:    *lichess,
		CacheDir:   *tbCache,
	}, &logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("open tablebases")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	opts := engine.DefaultOptions()
	opts.Prober = prober
	cfg := config{
		workers:    max(1, *workers),
		enginePath: *enginePath,
		depth:      *depth,
		hashMB:     *hashMB,
		skipPlies:  *skipPlies,
		useCache:   !*noCache,
		opts:       opts,
	}

	logger.Info().
		Str("pgn", *pgnPath).
		Int("workers", cfg.workers).
		Str("engine", cfg.enginePath).
		Int("tb_pieces", prober.MaxPieces()).
		Msg("starting bench")

	var t totals
	start := time.Now()
	err = run(ctx, cfg, *pgnPath, *maxGames, &t, logger)
	cancel()
	if cerr := closeTB(); cerr != nil {
		logger.Error().Err(cerr).Msg("close tablebase cache")
	}

	report(&t, time.Since(start), logger)
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error().Err(err).Msg("bench failed")
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config, path string, maxGames int, t *totals, logger zerolog.Logger) error {
	g, ctx := errgroup.WithContext(ctx)
	jobs := make(chan game, cfg.workers*2)

	g.Go(func() error {
		defer close(jobs)
		return readGames(ctx, path, maxGames, jobs, logger)
	})

	for id := 0; id < cfg.workers; id++ {
		g.Go(func() error {
			return worker(ctx, id, cfg, jobs, t, logger)
		})
	}
	return g.Wait()
}

// readGames replays each game and sends its positions to jobs.
func readGames(ctx context.Context, path string, maxGames int, jobs chan<- game, logger zerolog.Logger) error {
	parser := pgn.Games(path)
	sent := 0
	for g := range parser.Games {
		if maxGames > 0 && sent >= maxGames {
			parser.Stop()
			break
		}

		pos := pgn.NewStartingPosition()
		fens := make(game, 0, len(g.Moves)+1)
		fens = append(fens, pos.ToFEN())
		for _, mv := range g.Moves {
			if err := pgn.ApplyMove(pos, mv); err != nil {
				logger.Debug().Err(err).Str("event", g.Tags["Event"]).Msg("stop replay on bad move")
				break
			}
			fens = append(fens, pos.ToFEN())
		}

		select {
		case jobs <- fens:
			sent++
		case <-ctx.Done():
			parser.Stop()
			return ctx.Err()
		}
	}
	if err := parser.Err(); err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	return nil
}

func worker(ctx context.Context, id int, cfg config, jobs <-chan game, t *totals, logger zerolog.Logger) error {
	log := logger.With().Int("worker_id", id).Logger()
	opts := cfg.opts
	opts.Logger = &log
	ev := engine.NewEvaluator(opts)

	var ref *uci.Engine
	if cfg.enginePath != "" {
		e, err := uci.NewEngine(cfg.enginePath)
		if err != nil {
			return fmt.Errorf("start engine: %w", err)
		}
		defer e.Close()
		if err := e.SetOptions(uci.Options{
			Hash:    cfg.hashMB,
			Threads: 1,
			MultiPV: 1,
			Ponder:  false,
			OwnBook: false,
		}); err != nil {
			return fmt.Errorf("set engine options: %w", err)
		}
		ref = e
	}

	for {
		var fens game
		select {
		case <-ctx.Done():
			return ctx.Err()
		case g, ok := <-jobs:
			if !ok {
				return nil
			}
			fens = g
		}

		for ply, fen := range fens {
			if ply < cfg.skipPlies {
				continue
			}
			pos, err := board.ParseFEN(fen)
			if err != nil {
				log.Debug().Err(err).Str("fen", fen).Msg("skip position")
				continue
			}

			began := time.Now()
			v := ev.Evaluate(pos, cfg.useCache)
			t.nanos.Add(int64(time.Since(began)))
			t.positions.Add(1)

			if ref != nil && !pos.IsCheckmate() && !pos.IsStalemate() {
				if err := compare(ref, cfg.depth, fen, v, t); err != nil {
					log.Warn().Err(err).Str("fen", fen).Msg("reference evaluation failed")
				}
			}
		}
		t.games.Add(1)
	}
}

// compare asks the reference engine for fen and records the difference to
// v. Mate scores are only checked for sign.
func compare(ref *uci.Engine, depth int, fen string, v int, t *totals) error {
	if err := ref.SetFEN(fen); err != nil {
		return fmt.Errorf("set FEN: %w", err)
	}
	results, err := ref.GoDepth(depth, uci.HighestDepthOnly)
	if err != nil {
		return fmt.Errorf("go depth %d: %w", depth, err)
	}
	if len(results.Results) == 0 {
		return fmt.Errorf("no results from engine")
	}

	best := results.Results[0]
	for _, r := range results.Results {
		if r.Depth > best.Depth {
			best = r
		}
	}

	t.compared.Add(1)
	if sign(best.Score) == sign(v) {
		t.agree.Add(1)
	}
	if !best.Mate && !score.IsMate(v) {
		t.absDiff.Add(int64(math.Abs(float64(best.Score - v))))
	}
	return nil
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

func report(t *totals, elapsed time.Duration, logger zerolog.Logger) {
	positions := t.positions.Load()
	ev := logger.Info().
		Int64("games", t.games.Load()).
		Int64("positions", positions).
		Dur("elapsed", elapsed)
	if positions > 0 {
		ev = ev.Float64("ns_per_eval", float64(t.nanos.Load())/float64(positions))
	}
	if n := t.compared.Load(); n > 0 {
		ev = ev.Int64("compared", n).
			Float64("sign_agreement", float64(t.agree.Load())/float64(n)).
			Float64("mean_abs_diff_cp", float64(t.absDiff.Load())/float64(n))
	}
	ev.Msg("bench complete")
}
