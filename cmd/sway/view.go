package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"github.com/phanxgames/sway"
	"github.com/phanxgames/sway/ebitenhost"
)

// errScenarioDone ends the window loop after the last frame.
var errScenarioDone = errors.New("scenario done")

func newViewCmd() *cobra.Command {
	var opts playOpts
	var hold time.Duration
	var width, height int
	var loop bool
	cmd := &cobra.Command{
		Use:   "view [scenario]",
		Short: "Play a scenario in a window",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			sc, err := loadScenario(args[0])
			if err != nil {
				return err
			}
			o, err := opts.options()
			if err != nil {
				return err
			}

			p := newPlayer(sc, o, logger)
			var settledAt time.Time
			game := ebitenhost.NewGame(p.scene, ebitenhost.RunConfig{
				Title:      "sway: " + args[0],
				Width:      width,
				Height:     height,
				ShowFPS:    true,
				ClearColor: sway.Color{R: 0.1, G: 0.1, B: 0.15, A: 1},
			})
			game.SetUpdateFunc(func() error {
				if err := cmd.Context().Err(); err != nil {
					return err
				}
				if p.scene.Animating() {
					settledAt = time.Time{}
					return nil
				}
				if settledAt.IsZero() {
					settledAt = time.Now()
				}
				if time.Since(settledAt) < hold && p.next > 0 {
					return nil
				}
				if p.done() {
					if !loop {
						return errScenarioDone
					}
					p.next = 0
				}
				settledAt = time.Time{}
				if err := p.advance(); err != nil {
					return fmt.Errorf("frame %d: %w", p.next+1, err)
				}
				return nil
			})

			if opts.fps > 0 {
				ebiten.SetTPS(opts.fps)
			}
			err = ebitenhost.RunGame(game)
			if errors.Is(err, errScenarioDone) {
				return nil
			}
			return err
		},
	}
	opts.bind(cmd)
	cmd.Flags().DurationVar(&hold, "hold", time.Second, "pause between settled frames")
	cmd.Flags().IntVar(&width, "width", 800, "window width")
	cmd.Flags().IntVar(&height, "height", 600, "window height")
	cmd.Flags().BoolVar(&loop, "loop", false, "restart after the last frame")
	return cmd
}
