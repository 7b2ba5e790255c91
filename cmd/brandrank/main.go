package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"brandrank/internal/acquire"
	"brandrank/internal/ai"
	"brandrank/internal/backup"
	"brandrank/internal/config"
	"brandrank/internal/diag"
	"brandrank/internal/matrix"
	"brandrank/internal/notify"
	"brandrank/internal/pipeline"
)

var (
	configPath = flag.String("config", "", "Path to the YAML config file (optional; env vars override secrets)")
	debugLog   = flag.Bool("debug", false, "Enable debug logging")
)

func init() {
	flag.StringVar(configPath, "c", "", "Path to the YAML config file (shorthand)")
}

func main() {
	flag.Parse()

	level := slog.LevelInfo
	if *debugLog {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("Fatal error loading config: %v\n", err)
		os.Exit(1)
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		fmt.Printf("Fatal error: invalid timezone %q: %v\n", cfg.Timezone, err)
		os.Exit(1)
	}

	diags := diag.NewStore(cfg.OutputDir, log)

	var renderer acquire.Renderer
	if cfg.Render.Configured() {
		renderer = acquire.NewRenderClient(acquire.RenderConfig{
			Endpoint:    cfg.Render.Endpoint,
			Username:    cfg.Render.Username,
			Password:    cfg.Render.Password,
			GeoLocation: cfg.Render.GeoLocation,
			Timeout:     cfg.Render.Timeout(),
		}, diags)
	}

	var loader acquire.PageLoader
	if cfg.Proxy.Configured() {
		loader = acquire.NewRodLoader(acquire.BrowserConfig{
			Proxy: acquire.ProxyConfig{
				Server:   cfg.Proxy.Server,
				Username: cfg.Proxy.Username,
				Password: cfg.Proxy.Password,
			},
			UserAgent:   cfg.Browser.UserAgent,
			NavTimeout:  cfg.Browser.NavTimeout(),
			ScrollSteps: cfg.Browser.ScrollSteps,
			ScrollPause: cfg.Browser.ScrollPause(),
		}, log)
	}

	controller := acquire.NewController(renderer, loader, diags, cfg.TargetURL, cfg.Browser.MergeThreshold, log)

	var notifiers []notify.Notifier
	if cfg.Slack.WebhookURL != "" {
		notifiers = append(notifiers, notify.NewSlack(cfg.Slack.WebhookURL))
	}
	if cfg.Email.Configured() {
		emailCfg := notify.EmailConfig{
			SMTPServer: cfg.Email.SMTPServer,
			SMTPPort:   cfg.Email.SMTPPort,
			SMTPUser:   cfg.Email.SMTPUser,
			SMTPPass:   cfg.Email.SMTPPass,
			FromEmail:  cfg.Email.FromEmail,
			ToEmail:    cfg.Email.ToEmail,
		}
		if emailCfg.FromEmail == "" {
			emailCfg.FromEmail = emailCfg.SMTPUser
		}
		notifiers = append(notifiers, notify.NewEmail(emailCfg))
	}
	if len(notifiers) == 0 {
		log.Warn("no notification sink configured")
	}

	var commentator pipeline.Commentator
	if cfg.Gemini.APIKey != "" {
		apiKey, model := cfg.Gemini.APIKey, cfg.Gemini.Model
		commentator = func(ctx context.Context, entries []notify.Entry) ([]string, error) {
			return ai.Commentary(ctx, entries, apiKey, model)
		}
	}

	uploader := backup.NewDrive(backup.DriveConfig{
		ClientID:     cfg.Drive.ClientID,
		ClientSecret: cfg.Drive.ClientSecret,
		RefreshToken: cfg.Drive.RefreshToken,
		FolderID:     cfg.Drive.FolderID,
	})

	deps := pipeline.Deps{
		Acquirer:     controller,
		Store:        matrix.NewStore(cfg.WorkbookPath()),
		Notifiers:    notifiers,
		Uploader:     uploader,
		Commentator:  commentator,
		WorkbookPath: cfg.WorkbookPath(),
		Location:     loc,
		Log:          log,
	}

	if err := pipeline.Run(context.Background(), deps); err != nil {
		log.Error("run aborted", "error", err)
		os.Exit(1)
	}
}
