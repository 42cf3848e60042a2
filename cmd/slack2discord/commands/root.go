// Package commands wires the slack2discord CLI: configuration, logging, the
// Discord client, and the import pipeline shared by every subcommand.
package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/chatmigrate/slack2discord/internal/catalog"
	"github.com/chatmigrate/slack2discord/internal/config"
	"github.com/chatmigrate/slack2discord/internal/discord"
	"github.com/chatmigrate/slack2discord/internal/export"
	"github.com/chatmigrate/slack2discord/internal/fetch"
	"github.com/chatmigrate/slack2discord/internal/importer"
	"github.com/chatmigrate/slack2discord/internal/mention"
	"github.com/chatmigrate/slack2discord/internal/receipt"
	"github.com/chatmigrate/slack2discord/internal/translate"
)

var (
	configPath   string
	guildID      string
	logLevel     string
	receiptDir   string
	assumeYes    bool
	replyThreads bool

	app *appState
)

// appState carries the dependencies shared by the import commands, wired
// once before any of them runs.
type appState struct {
	cfg    *config.Config
	logger *zap.Logger
	client *discord.Client
}

func Execute() error {
	root := &cobra.Command{
		Use:          "slack2discord",
		Short:        "Replay a Slack workspace export into a Discord guild",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath, applyFlags)
			if err != nil {
				return err
			}

			logger, err := initLogger(cfg.LogLevel, cfg.LogDir)
			if err != nil {
				return err
			}

			// The importer only talks to the REST API; no gateway
			// connection is opened.
			session, err := discordgo.New("Bot " + cfg.Token)
			if err != nil {
				return fmt.Errorf("failed to create discord session: %w", err)
			}

			logger.Info("Creating Discord client", zap.String("guild_id", cfg.GuildID))
			client, err := discord.NewClient(cmd.Context(), session, cfg.GuildID, logger)
			if err != nil {
				return err
			}

			app = &appState{cfg: cfg, logger: logger, client: client}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil {
				_ = app.logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file")
	root.PersistentFlags().StringVar(&guildID, "guild", "", "destination guild ID (overrides DISCORD_GUILD_ID)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn or error")
	root.PersistentFlags().StringVar(&receiptDir, "receipt-dir", "", "directory for delivery receipt files")
	root.PersistentFlags().BoolVar(&assumeYes, "yes", false, "answer yes to every confirmation prompt")
	root.PersistentFlags().BoolVar(&replyThreads, "reply-threads", false, "emulate threads with reply references instead of native threads")

	root.AddCommand(importAllCmd(), importPathsCmd(), importHereCmd())
	return root.Execute()
}

func applyFlags(cfg *config.Config) {
	if guildID != "" {
		cfg.GuildID = guildID
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if receiptDir != "" {
		cfg.ReceiptDir = receiptDir
	}
	if replyThreads {
		cfg.Capabilities.SupportsNativeThreads = false
	}
}

// runImport resolves the export at the given paths and replays it through
// the pipeline. Every subcommand funnels into here.
func (a *appState) runImport(ctx context.Context, mode export.Mode, paths []string, opts importer.Options) error {
	prompter := newPrompter(assumeYes)

	root, err := resolveAll(paths, mode, prompter, a.logger)
	if err != nil {
		return err
	}

	cat := catalog.Load(root, a.logger)
	if cat.Mapping != nil {
		if err := cat.Mapping.Save(); err != nil {
			a.logger.Warn("Failed to write back identity mapping", zap.Error(err))
		}
	}

	resolver := mention.NewResolver(cat, a.client, a.logger)

	if a.cfg.FileToken == "" {
		a.logger.Warn("SLACK_FILE_TOKEN is not set; private attachment downloads may fail")
	}
	fetcher := fetch.NewHTTPClient(a.cfg.FileToken, a.logger)

	translator := translate.NewTranslator(cat, a.client, resolver, fetcher, a.logger)

	var receipts importer.ReceiptWriter
	if a.cfg.ReceiptDir != "" {
		if err := os.MkdirAll(a.cfg.ReceiptDir, 0o755); err != nil {
			return fmt.Errorf("failed to create receipt directory: %w", err)
		}
		receipts = receipt.NewFileWriter(a.cfg.ReceiptDir)
	}

	imp := importer.New(a.client, translator, a.cfg.Capabilities, a.cfg.Throttle(), receipts, a.logger)
	sum, err := imp.Run(ctx, root, opts)
	if err != nil {
		return err
	}

	fmt.Printf("Imported %d channels from %d files: %d sent, %d skipped, %d failed, %d receipts\n",
		sum.Channels, sum.Files, sum.Sent, sum.Skipped, sum.Failed, sum.Receipts)
	return nil
}

// resolveAll resolves each path and merges the results into one root, so a
// run over several channel directories shares catalog files and receipts.
func resolveAll(paths []string, mode export.Mode, prompter export.Prompter, logger *zap.Logger) (*export.Root, error) {
	var root *export.Root
	for _, path := range paths {
		r, err := export.Resolve(path, mode, prompter, logger)
		if err != nil {
			return nil, err
		}
		if root == nil {
			root = r
		} else {
			root.Merge(r)
		}
	}
	return root, nil
}

func initLogger(level string, logDir string) (*zap.Logger, error) {
	logLevel := interpretLogLevel(level)

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	stderrCore := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(os.Stderr),
		logLevel,
	)

	if logDir == "" {
		return zap.New(stderrCore, zap.AddCaller()), nil
	}

	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	logFileName := fmt.Sprintf("slack2discord-%s.log", time.Now().Format("2006-01-02"))
	logFile, err := os.OpenFile(filepath.Join(logDir, logFileName), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	fileCore := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(logFile),
		logLevel,
	)

	core := zapcore.NewTee(stderrCore, fileCore)
	return zap.New(core, zap.AddCaller()), nil
}

func interpretLogLevel(level string) zapcore.Level {
	var logLevel zapcore.Level

	switch level {
	case "debug":
		logLevel = zapcore.DebugLevel
	case "warn":
		logLevel = zapcore.WarnLevel
	case "error":
		logLevel = zapcore.ErrorLevel
	default:
		logLevel = zapcore.InfoLevel
	}
	return logLevel
}
