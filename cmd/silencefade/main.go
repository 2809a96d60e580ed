// Silencefade - watches the microphone and fades an avatar's eye glow
// over the puppeteer's WebSocket API while the room stays silent
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/shiho2717/silence-fade-system/internal/audio"
	"github.com/shiho2717/silence-fade-system/internal/cli"
	"github.com/shiho2717/silence-fade-system/internal/config"
	"github.com/shiho2717/silence-fade-system/internal/fade"
	"github.com/shiho2717/silence-fade-system/internal/loop"
	"github.com/shiho2717/silence-fade-system/internal/trace"
	"github.com/shiho2717/silence-fade-system/internal/vts"
)

var version = "0.1.0"

// CLI defines the command-line interface
type CLI struct {
	Version bool   `short:"v" help:"Show version information"`
	Config  string `short:"c" type:"path" help:"Path to YAML config file (optional)"`
	Debug   bool   `help:"Log at debug level"`

	Run   RunCmd   `cmd:"" default:"1" help:"Watch the microphone and drive the eye glow (default)"`
	Token TokenCmd `cmd:"" help:"Request an auth token from the puppeteer"`
}

// RunCmd is the long-running fade loop.
type RunCmd struct{}

// TokenCmd is the one-time token-acquisition utility.
type TokenCmd struct {
	Save string `type:"path" help:"Write the issued token to this file (readable via auth_token_file)"`
}

func main() {
	cliArgs := &CLI{}
	ctx := kong.Parse(cliArgs,
		kong.Name("silencefade"),
		kong.Description("Microphone-silence driven avatar eye-glow fader"),
		kong.UsageOnError(),
		kong.Vars{
			"version": version,
		},
	)

	if cliArgs.Version {
		cli.PrintVersion(version)
		os.Exit(0)
	}

	setupLogging(cliArgs.Debug)

	if err := ctx.Run(cliArgs); err != nil {
		cli.PrintError(err.Error())
		os.Exit(1)
	}
}

// setupLogging sends structured logs to stderr so the status line keeps
// stdout to itself.
func setupLogging(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
}

// Run executes the fade loop until interrupted.
func (r *RunCmd) Run(cliArgs *CLI) error {
	cfg, err := config.Load(cliArgs.Config)
	if err != nil {
		return err
	}
	token, err := cfg.ResolveToken()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx = trace.WithSession(ctx, trace.NewSessionID())

	sampler, err := audio.NewSampler(cfg.SampleRate, cfg.Window())
	if err != nil {
		return err
	}
	defer sampler.Close()

	client := vts.New(vts.Config{
		Endpoint:        cfg.Endpoint(),
		PluginName:      cfg.PluginName,
		PluginDeveloper: cfg.PluginDeveloper,
		AuthToken:       token,
		ParameterID:     cfg.ParameterID,
	})

	cli.PrintBanner(version, cfg.Endpoint(), cfg.ParameterID, cfg.ThresholdDB, token != "")

	runner := loop.New(loop.Options{
		Source:      sampler,
		Sink:        client,
		Engine:      newEngine(cfg),
		ThresholdDB: cfg.ThresholdDB,
		Tick:        cfg.Window(),
		Rest:        cfg.Rest(),
		Status:      os.Stdout,
	})

	err = runner.Run(ctx)
	fmt.Println() // move past the rewritten status line
	if err != nil {
		return err
	}
	slog.Info("shutdown complete")
	return nil
}

// Run performs the one-time token handshake and prints or saves the result.
func (t *TokenCmd) Run(cliArgs *CLI) error {
	cfg, err := config.Load(cliArgs.Config)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := vts.New(vts.Config{
		Endpoint:        cfg.Endpoint(),
		PluginName:      cfg.PluginName,
		PluginDeveloper: cfg.PluginDeveloper,
	})

	fmt.Println(cli.KeyStyle.Render("Requesting a token - approve the prompt in the puppeteer app..."))
	token, err := client.RequestToken(ctx)
	if err != nil {
		return err
	}

	cli.PrintToken(token)
	if t.Save != "" {
		if err := os.WriteFile(t.Save, []byte(token+"\n"), 0o600); err != nil {
			return fmt.Errorf("save token: %w", err)
		}
		fmt.Printf("%s %s\n", cli.KeyStyle.Render("Saved to:"), cli.ValueStyle.Render(t.Save))
	}
	return nil
}

func newEngine(cfg *config.Config) fade.Engine {
	return fade.Engine{
		MinGlow:     cfg.MinGlow,
		MaxGlow:     cfg.MaxGlow,
		StartDelay:  cfg.StartDelay(),
		FadeOutStep: cfg.FadeOutStep,
		FadeInStep:  cfg.FadeInStep,
	}
}
