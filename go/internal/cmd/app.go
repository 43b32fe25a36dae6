package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/mcdev12/reaction/go/internal/config"
	"github.com/mcdev12/reaction/go/internal/game"
	"github.com/mcdev12/reaction/go/internal/reaction"
	"github.com/mcdev12/reaction/go/internal/syncer"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

// runner holds what every command needs once the config is loaded
type runner struct {
	in  io.Reader
	out io.Writer

	cfg      *config.Config
	services *Services
}

func newApp(in io.Reader, out io.Writer) *cli.App {
	r := &runner{in: in, out: out}

	return &cli.App{
		Name:   "reaction",
		Usage:  "test your reaction time against a shared leaderboard",
		Writer: out,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Value: config.DefaultFile,
				Usage: "path to the configuration file",
			},
			&cli.BoolFlag{
				Name:  "no-preload",
				Usage: "do not seed a missing leaderboard from the remote copy",
			},
		},
		Before: r.setup,
		Action: r.play,
		Commands: []*cli.Command{
			{
				Name:   "play",
				Usage:  "play the interactive game (default)",
				Action: r.play,
			},
			{
				Name:   "leaderboard",
				Usage:  "print the local leaderboard",
				Action: r.leaderboard,
			},
			{
				Name:   "reset",
				Usage:  "delete the local leaderboard file",
				Action: r.reset,
			},
			{
				Name:   "refresh",
				Usage:  "download the remote leaderboard into the local file",
				Action: r.refresh,
			},
			{
				Name:   "serve",
				Usage:  "publish the local leaderboard over HTTP",
				Action: r.serve,
			},
		},
	}
}

func (r *runner) setup(c *cli.Context) error {
	cfg, err := loadConfig(c.String("config"))
	if err != nil {
		return err
	}
	services, err := setupServices(cfg)
	if err != nil {
		return err
	}
	r.cfg = cfg
	r.services = services

	log.Debug().
		Str("path", cfg.Leaderboard.Path).
		Str("url", cfg.Remote.URL).
		Str("policy", cfg.Remote.RefreshPolicy).
		Msg("config loaded")
	return nil
}

func (r *runner) play(c *cli.Context) error {
	stimulus := reaction.NewStimulus(
		reaction.WithDelay(reaction.UniformDelay(r.cfg.Stimulus.MinDelay, r.cfg.Stimulus.MaxDelay)),
	)

	opts := []game.Option{game.WithNearBand(r.cfg.Feedback.NearBandMs)}
	if !c.Bool("no-preload") {
		opts = append(opts, game.WithPreload())
	}

	session := game.NewSession(r.services.Store, r.services.Syncer, stimulus, r.out, opts...)
	if err := session.Run(c.Context, r.in); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func (r *runner) leaderboard(c *cli.Context) error {
	board, err := r.services.Store.Load()
	if err != nil {
		return fmt.Errorf("failed to load leaderboard: %w", err)
	}
	game.NewView(r.out).Leaderboard(board, r.cfg.Feedback.NearBandMs)
	return nil
}

func (r *runner) reset(c *cli.Context) error {
	removed, err := r.services.Store.Reset()
	if err != nil {
		return fmt.Errorf("failed to reset leaderboard: %w", err)
	}

	view := game.NewView(r.out)
	if removed {
		view.Status("Leaderboard has been cleared.")
	} else {
		view.Status("No leaderboard file found.")
	}
	return nil
}

func (r *runner) refresh(c *cli.Context) error {
	view := game.NewView(r.out)
	view.Status("Downloading leaderboard...")

	res, err := r.services.Syncer.Refresh(c.Context)
	if err != nil {
		view.SyncError(err)
		return fmt.Errorf("refresh failed: %w", err)
	}
	view.SyncResult(syncer.OpRefresh, res.Status)
	view.Leaderboard(res.Board, r.cfg.Feedback.NearBandMs)
	return nil
}

func (r *runner) serve(c *cli.Context) error {
	if zerolog.GlobalLevel() > zerolog.InfoLevel {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	return runServer(c.Context, setupServer(r.cfg, r.services.Store))
}
