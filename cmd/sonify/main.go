// Command sonify renders a text file as a mono 16-bit WAV file.
//
// Usage:
//
//	sonify [flags] <input> <output.wav> [preset]
//	sonify -serve
//
// Without a preset name the default preset is used. Unknown names fall
// back to the default with a warning.
//
// Examples:
//
//	sonify index.html index.wav
//	sonify index.html index.wav orchestra
//	sonify -report page.html page.wav jazz
//	sonify -list
//	SONIFY_ADDR=:8080 sonify -serve
//
// With -serve the engine is exposed over HTTP: POST /api/sonificate takes
// {"url": ..., "scriptVariant": <preset>} and GET /audios/{name} serves the
// rendered files.
//
// Settings come from the environment: SONIFY_CONFIG names a YAML config
// file, and SONIFY_LOG_LEVEL, SONIFY_PRESETS, SONIFY_CONCURRENCY,
// SONIFY_SEED, SONIFY_FRESH_SEED, SONIFY_DITHER and SONIFY_ANALYZE
// override it. The HTTP mode reads SONIFY_ADDR, SONIFY_AUDIO_DIR,
// SONIFY_LIMIT, SONIFY_STAMP_NAMES, SONIFY_MAX_FILE_AGE and
// SONIFY_FETCH_TIMEOUT.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/cwbudde/algo-sonify/audiofile"
	"github.com/cwbudde/algo-sonify/dsp/dither"
	"github.com/cwbudde/algo-sonify/internal/config"
	"github.com/cwbudde/algo-sonify/internal/server"
	"github.com/cwbudde/algo-sonify/sonify"
	"github.com/cwbudde/algo-sonify/sonify/preset"
)

type options struct {
	list   bool
	report bool
	serve  bool
}

func main() {
	var opts options

	flag.BoolVar(&opts.list, "list", false, "list available presets and exit")
	flag.BoolVar(&opts.report, "report", false, "print a per-voice report after rendering")
	flag.BoolVar(&opts.serve, "serve", false, "serve the HTTP API instead of rendering a file")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: sonify [flags] <input> <output.wav> [preset]\n")
		fmt.Fprintf(os.Stderr, "       sonify -serve\n\n")
		fmt.Fprintf(os.Stderr, "Renders a text file as a mono 16-bit WAV file.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "sonify: %v\n", err)
		os.Exit(1)
	}

	level, _ := config.ResolveLogLevel(cfg.LogLevel)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if !opts.list && !opts.serve && (flag.NArg() < 2 || flag.NArg() > 3) {
		flag.Usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Stdout, logger, cfg, opts, flag.Args()); err != nil {
		logger.Error("sonify failed", slog.String("error", err.Error()))
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, stdout io.Writer, logger *slog.Logger, cfg config.Config, opts options, args []string) error {
	reg, err := preset.Load(cfg.Presets)
	if err != nil {
		return err
	}

	if opts.list {
		return listPresets(stdout, reg)
	}

	seed := cfg.Seed
	if cfg.FreshSeed {
		seed = rand.Uint64()
	}

	eng, err := sonify.New(reg,
		sonify.WithLogger(logger),
		sonify.WithSeed(seed),
		sonify.WithConcurrency(cfg.Concurrency),
		sonify.WithDither(dither.WithDitherType(cfg.DitherType())),
		sonify.WithAnalysis(cfg.Analyze || opts.report),
	)
	if err != nil {
		return err
	}

	if opts.serve {
		srv, err := server.New(eng, cfg.Server, server.WithLogger(logger))
		if err != nil {
			return err
		}

		return srv.Run(ctx)
	}

	in, out := args[0], args[1]

	name := preset.DefaultName
	if len(args) > 2 {
		name = args[2]
	}

	text, err := audiofile.ReadText(in)
	if err != nil {
		return err
	}

	res, err := eng.Render(ctx, string(text), name)
	if err != nil {
		return fmt.Errorf("render %s: %w", in, err)
	}

	if err := audiofile.WriteWAV(out, res.SampleRate, res.PCM); err != nil {
		return err
	}

	logger.Info("wrote audio",
		slog.String("output", out),
		slog.String("preset", res.Preset),
		slog.Int("samples", len(res.PCM)),
		slog.Duration("duration", res.Duration()),
		slog.Uint64("seed", seed),
	)

	if opts.report {
		return printReport(stdout, res)
	}

	return nil
}

func listPresets(w io.Writer, reg *preset.Registry) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tVOICES\tDESCRIPTION")

	for _, name := range reg.Names() {
		p, err := reg.Lookup(name)
		if err != nil {
			return err
		}

		fmt.Fprintf(tw, "%s\t%d\t%s\n", p.Name, len(p.Voices), p.Description)
	}

	return tw.Flush()
}

func printReport(w io.Writer, res *sonify.Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "voice\tchars\ttokens\tnotes\trests\tsamples\tdominant Hz\trms dB\t")

	for _, v := range res.Voices {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t%d\t%.1f\t%.1f\t\n",
			v.Name, v.Chars, v.Tokens, v.Notes, v.Silent, v.Samples, v.Dominant, v.Level.RMSdB())
	}

	fmt.Fprintf(tw, "mix\t\t\t\t\t%d\t\t%.1f\t\n", len(res.PCM), res.Level.RMSdB())

	return tw.Flush()
}
