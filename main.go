package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"voxkey/internal/audio"
	"voxkey/internal/config"
	"voxkey/internal/logstore"
)

var version = "dev"

var (
	flagConfigDir string
	flagMode      string
	flagProvider  string
	flagPreset    string
)

var rootCmd = &cobra.Command{
	Use:   "voxkey",
	Short: "Voxkey is a push-to-talk dictation daemon",
	Long: `Voxkey listens for a global hotkey, records speech while it is held,
transcribes it through a local whisper sidecar, cleans the text up, and
types the result into the focused application.`,
	RunE: runDaemon,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the dictation daemon",
	RunE:  runDaemon,
}

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List available audio input devices",
	RunE: func(cmd *cobra.Command, args []string) error {
		names, err := audio.Devices()
		if err != nil {
			return err
		}
		for _, name := range names {
			fmt.Println(name)
		}
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show lifetime dictation statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		store, err := logstore.Open(cfg.LogPath)
		if err != nil {
			return err
		}
		defer store.Close()

		ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
		defer cancel()
		stats, err := store.Stats(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("Transcriptions: %d\n", stats.TotalTranscriptions)
		fmt.Printf("Words:          %d\n", stats.TotalWords)
		fmt.Printf("Commands:       %d\n", stats.TotalCommands)
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("voxkey " + version)
	},
}

func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfigDir)
	if err != nil {
		return config.Config{}, err
	}
	if flagMode != "" {
		switch flagMode {
		case "hold", "toggle", "double_tap_hold":
			cfg.Hotkey.Mode = flagMode
		default:
			return config.Config{}, fmt.Errorf("unknown hotkey mode %q", flagMode)
		}
	}
	if flagProvider != "" {
		cfg.Editor.Provider = flagProvider
		cfg.Editor.Enabled = flagProvider != "none"
	}
	if flagPreset != "" {
		cfg.Editor.Preset = flagPreset
	}
	return cfg, nil
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(lvl).
		With().Timestamp().Logger()
}

func runDaemon(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := newLogger(cfg.LogLevel)
	return NewApp(cfg, log).Run(cmd.Context())
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config", "", "config directory (default ~/.config/voxkey)")
	rootCmd.PersistentFlags().StringVar(&flagMode, "mode", "", "override hotkey mode (hold, toggle, double_tap_hold)")
	rootCmd.PersistentFlags().StringVar(&flagProvider, "editor", "", "override edit provider (none, ollama, openai, anthropic)")
	rootCmd.PersistentFlags().StringVar(&flagPreset, "preset", "", "override edit preset (default, email, commit, notes, code)")

	rootCmd.AddCommand(runCmd, devicesCmd, statsCmd, versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
