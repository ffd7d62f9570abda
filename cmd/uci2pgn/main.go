// Command uci2pgn reads a line of UCI moves from standard input and prints the
// game they describe as PGN.
//
//	echo "position startpos moves e2e4 e7e5 g1f3" | uci2pgn
//	echo "e7e5" | uci2pgn -fen "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1"
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/mway1/chess"
	"github.com/mway1/chess/image"
)

type config struct {
	fen     string
	svgPath string
	verbose bool
}

func main() {
	var cfg config
	flag.StringVar(&cfg.fen, "fen", "", "starting position in FEN; the standard position if empty")
	flag.StringVar(&cfg.svgPath, "svg", "", "also write an SVG diagram of the final position to this file")
	flag.BoolVar(&cfg.verbose, "v", false, "debug logging")
	flag.Parse()

	level := zerolog.InfoLevel
	if cfg.verbose {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(level).
		With().Timestamp().Logger()

	if err := run(os.Stdin, os.Stdout, cfg, logger); err != nil {
		logger.Error().Err(err).Msg("conversion failed")
		os.Exit(1)
	}
}

// run converts one line read from in and writes the PGN to out. Nothing is
// written to out when the conversion fails.
func run(in io.Reader, out io.Writer, cfg config, logger zerolog.Logger) error {
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("read input: %w", err)
	}

	moves := chess.UCIMoves(line)
	logger.Debug().Int("plies", len(moves)).Str("fen", cfg.fen).Msg("converting")

	game, err := chess.UCIToGame(moves, cfg.fen)
	if err != nil {
		return err
	}
	logger.Debug().
		Str("result", game.Outcome().String()).
		Str("method", game.Method().String()).
		Str("fen", game.FEN()).
		Msg("game finished")

	if cfg.svgPath != "" {
		if err := writeSVG(cfg.svgPath, game.Position().Board()); err != nil {
			return err
		}
		logger.Info().Str("svg", cfg.svgPath).Msg("wrote diagram")
	}

	_, err = fmt.Fprintln(out, game.String())
	return err
}

func writeSVG(path string, b *chess.Board) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create diagram: %w", err)
	}
	if err := image.SVG(f, b); err != nil {
		f.Close()
		return fmt.Errorf("write diagram: %w", err)
	}
	return f.Close()
}
