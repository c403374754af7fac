// audio-dodge is an audio-reactive visualizer with a dodge mini-game: the bars
// of a radial spectrum launch projectiles on loud transients and the player
// steers a dot around the centre to avoid them.
//
// Usage:
//
//	audio-dodge [track]
//
// Flags:
//
//	--config <path>  - Custom YAML config (default: search ~/.audio-dodge, ./configs, built-in)
//	--volume <gain>  - Initial gain, 0..2
//	--seed <value>   - RNG seed for visual noise (0 = time based)
//	--debug          - Verbose logging
package main

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"github.com/iburimskiy/audio-dodge/internal/audio"
	"github.com/iburimskiy/audio-dodge/internal/config"
	"github.com/iburimskiy/audio-dodge/internal/control"
	"github.com/iburimskiy/audio-dodge/internal/game"
	"github.com/iburimskiy/audio-dodge/internal/loop"
	"github.com/iburimskiy/audio-dodge/internal/render"
	"github.com/iburimskiy/audio-dodge/internal/sim"
)

var (
	flagConfig string
	flagVolume float64
	flagSeed   int64
	flagDebug  bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "audio-dodge [track]",
	Short: "Audio visualizer with a dodge-the-beat mini-game",
	Long: `Plays a wav, mp3 or flac track and draws its spectrum as radial bars.
Loud transients launch projectiles from the bar tips; steer around them.

Controls:
  Arrows/WASD  - Move
  Space        - Play/Pause
  O            - Open a track
  1-9          - Toggle gradient, bars, circles, noise, invert, emboss, static, outer ring, game
  [ ]          - Fewer/more pulse circles
  +/-          - Volume
  X            - Cycle distortion
  C            - Clear projectiles
  Esc/Q        - Quit

Examples:
  audio-dodge
  audio-dodge ./song.mp3
  audio-dodge ./song.flac --volume 0.8 --config ./my-dodge.yaml`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.Flags().Float64Var(&flagVolume, "volume", -1, "Initial volume gain 0..2 (default from config)")
	rootCmd.Flags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.Flags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
}

func run(cmd *cobra.Command, args []string) error {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "audio-dodge",
	})
	if flagDebug {
		logger.SetLevel(log.DebugLevel)
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cmd.Flags().Changed("volume") {
		cfg.Audio.Volume = flagVolume
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	seed := uint64(flagSeed)
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewPCG(seed, seed>>1|1))

	engine := audio.NewEngine(cfg.Audio, logger)
	defer engine.Close()

	bars := loop.BarLayout(cfg)
	simulation := sim.New(cfg, bars)
	renderer := render.New(cfg, bars, rng)
	disp := control.NewDispatcher(cfg.Draw, engine, simulation, logger)
	ctrl := loop.NewController(cfg, engine.Bins(), engine, simulation, renderer, disp, loop.SystemClock{}, logger)

	if len(args) == 1 {
		disp.Submit(control.Change{Field: control.Track, Value: args[0]})
		disp.Submit(control.Change{Field: control.Playing, Value: true})
	}

	g := game.New(cfg.Window, ctrl, disp, engine, simulation, game.OpenFileDialog, logger)

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	logger.Debug("starting", "width", cfg.Window.Width, "height", cfg.Window.Height, "bins", engine.Bins())

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
