// Package importer replays a resolved export into the destination guild,
// one channel at a time, in source order.
package importer

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/chatmigrate/slack2discord/internal/config"
	"github.com/chatmigrate/slack2discord/internal/discord"
	"github.com/chatmigrate/slack2discord/internal/export"
	"github.com/chatmigrate/slack2discord/internal/receipt"
	"github.com/chatmigrate/slack2discord/internal/translate"
)

// Destination is the guild-facing surface the importer drives.
//
//go:generate go tool mockgen -source=$GOFILE -destination=importer_mocks.go -package=importer
type Destination interface {
	ResolveChannel(name string) (string, bool)
	CreateChannel(ctx context.Context, name string) (string, error)
	SendMessage(ctx context.Context, req discord.SendRequest) (discord.MessageRef, error)
	CreateThread(ctx context.Context, anchor discord.MessageRef, name string) (string, error)
	ArchiveThread(ctx context.Context, threadID string) error
}

// ReceiptWriter persists one channel's receipts at the end of its import.
type ReceiptWriter interface {
	Write(channel, runID string, r *receipt.Receipts) (receipt.FileRef, error)
}

// Options selects where the export's messages land.
type Options struct {
	// TargetChannel replays every selected log into this one existing
	// channel instead of matching export channels by name.
	TargetChannel string
}

// Summary reports what one run did.
type Summary struct {
	Channels int
	Files    int
	Sent     int
	Skipped  int
	Failed   int
	Receipts int
}

// Importer drives a whole import run.
type Importer struct {
	dest       Destination
	translator *translate.Translator
	deliverer  *Deliverer
	caps       config.Capabilities
	receipts   ReceiptWriter
	logger     *zap.Logger
}

// New wires an Importer. The receipt writer may be nil, in which case
// receipts are kept only for the duration of each channel.
func New(dest Destination, translator *translate.Translator, caps config.Capabilities, interval time.Duration, receipts ReceiptWriter, logger *zap.Logger) *Importer {
	return &Importer{
		dest:       dest,
		translator: translator,
		deliverer:  NewDeliverer(dest, caps, interval, logger),
		caps:       caps,
		receipts:   receipts,
		logger:     logger,
	}
}

// Run imports every channel of the resolved export. Per-message and
// per-file failures are logged and skipped; Run only fails on channel
// setup, a missing target channel, or cancellation.
func (imp *Importer) Run(ctx context.Context, root *export.Root, opts Options) (*Summary, error) {
	runID := uuid.NewString()
	logger := imp.logger.With(zap.String("run_id", runID))

	channels := root.Channels()
	targets := make(map[string]string, len(channels))
	if opts.TargetChannel != "" {
		id, ok := imp.dest.ResolveChannel(opts.TargetChannel)
		if !ok {
			return nil, fmt.Errorf("channel %q not found in the guild", opts.TargetChannel)
		}
		for _, name := range channels {
			targets[name] = id
		}
	} else {
		// Match or create everything first so channel references in
		// message text can resolve natively from the start.
		for _, name := range channels {
			id, err := imp.ensureChannel(ctx, logger, name)
			if err != nil {
				return nil, err
			}
			targets[name] = id
		}
	}

	sum := &Summary{}
	for _, name := range channels {
		if err := imp.importChannel(ctx, logger, name, targets[name], root.ChannelLogs[name], runID, sum); err != nil {
			return sum, err
		}
	}

	logger.Info("Import finished",
		zap.Int("channels", sum.Channels),
		zap.Int("files", sum.Files),
		zap.Int("sent", sum.Sent),
		zap.Int("skipped", sum.Skipped),
		zap.Int("failed", sum.Failed),
		zap.Int("receipts", sum.Receipts))
	return sum, nil
}

// ensureChannel resolves an export channel to a guild channel, creating it
// when the guild has none with that name.
func (imp *Importer) ensureChannel(ctx context.Context, logger *zap.Logger, name string) (string, error) {
	if id, ok := imp.dest.ResolveChannel(name); ok {
		logger.Info("Matched existing channel",
			zap.String("channel", name),
			zap.String("channel_id", id))
		return id, nil
	}
	id, err := imp.dest.CreateChannel(ctx, name)
	if err != nil {
		return "", fmt.Errorf("creating channel %q: %w", name, err)
	}
	return id, nil
}

func (imp *Importer) importChannel(ctx context.Context, logger *zap.Logger, name, channelID string, files []string, runID string, sum *Summary) error {
	logger = logger.With(zap.String("channel", name))
	logger.Info("Importing channel", zap.Int("files", len(files)))

	receipts := receipt.New()
	seq := NewSequencer(imp.dest, imp.deliverer, imp.caps, logger)
	sum.Channels++

	for _, file := range files {
		msgs, err := export.ReadChannelFile(file)
		if err != nil {
			logger.Error("Skipping unreadable log file",
				zap.String("file", file),
				zap.Error(err))
			continue
		}
		sum.Files++
		logger.Info("Parsing file",
			zap.String("file", file),
			zap.Int("messages", len(msgs)))

		for _, msg := range msgs {
			if err := ctx.Err(); err != nil {
				return err
			}

			p := imp.translator.Translate(ctx, msg)
			if p == nil {
				sum.Skipped++
				continue
			}

			ref, err := seq.Dispatch(ctx, channelID, p)
			if err != nil {
				sum.Failed++
				logger.Error("Failed to deliver message",
					zap.String("ts", msg.Timestamp),
					zap.Error(err))
				continue
			}
			sum.Sent++

			if p.ID == "" {
				logger.Warn("Message has no client id and cannot be linked",
					zap.String("ts", msg.Timestamp))
			} else if !receipts.Record(p.ID, ref.ID, ref.ChannelID) {
				logger.Warn("Duplicate client id, keeping the first receipt",
					zap.String("client_msg_id", p.ID))
			}
		}
	}

	imp.persistReceipts(logger, name, runID, receipts, sum)
	return nil
}

func (imp *Importer) persistReceipts(logger *zap.Logger, channel, runID string, r *receipt.Receipts, sum *Summary) {
	sum.Receipts += r.Len()
	if imp.receipts == nil || r.Len() == 0 {
		return
	}

	ref, err := imp.receipts.Write(channel, runID, r)
	if err != nil {
		logger.Error("Failed to write receipts", zap.Error(err))
		return
	}
	logger.Info("Wrote receipts",
		zap.String("path", ref.Path),
		zap.Int("entries", ref.Entries))
}
