package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/phanxgames/sway"
)

const (
	defaultFPS       = 60
	defaultMaxFrames = 60 * 30
)

// playOpts holds the flags shared by play and view.
type playOpts struct {
	config    string // options file (YAML, TOML or JSON)
	fps       int    // ticks per second of the simulated clock
	maxFrames int    // upper bound of ticks per scenario frame (play only)
}

func (o *playOpts) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.config, "config", "c", "", "animation options file (yaml, toml or json)")
	cmd.Flags().IntVar(&o.fps, "fps", defaultFPS, "ticks per second")
}

func (o *playOpts) options() (sway.Options, error) {
	if o.config == "" {
		return sway.DefaultOptions(), nil
	}
	return sway.LoadOptions(o.config)
}

func newPlayCmd() *cobra.Command {
	var opts playOpts
	cmd := &cobra.Command{
		Use:   "play [scenario]",
		Short: "Play a scenario headless and report each transition",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(cmd, args[0], opts)
		},
	}
	opts.bind(cmd)
	cmd.Flags().IntVar(&opts.maxFrames, "max-frames", defaultMaxFrames, "maximum ticks per scenario frame")
	return cmd
}

func runPlay(cmd *cobra.Command, path string, opts playOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	sc, err := loadScenario(path)
	if err != nil {
		return err
	}
	o, err := opts.options()
	if err != nil {
		return err
	}
	if opts.fps <= 0 {
		return fmt.Errorf("fps must be positive, got %d", opts.fps)
	}

	p := newPlayer(sc, o, logger)
	dt := float32(1.0 / float64(opts.fps))
	for !p.done() {
		if err := ctx.Err(); err != nil {
			return err
		}
		start := time.Now()
		if err := p.advance(); err != nil {
			return fmt.Errorf("frame %d: %w", p.next+1, err)
		}
		ticks := p.settle(dt, opts.maxFrames)
		logger.Info("frame settled",
			"frame", p.next,
			"nodes", p.scene.Root().NumChildren(),
			"ticks", ticks,
			"animated", time.Duration(float64(ticks)/float64(opts.fps)*float64(time.Second)).Round(time.Millisecond),
			"elapsed", time.Since(start).Round(time.Millisecond))
		if p.scene.Animating() {
			logger.Warn("frame still animating after max ticks", "frame", p.next, "max", opts.maxFrames)
		}
	}
	return nil
}
