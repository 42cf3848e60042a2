package importer

import (
	"context"

	"go.uber.org/zap"

	"github.com/chatmigrate/slack2discord/internal/config"
	"github.com/chatmigrate/slack2discord/internal/discord"
	"github.com/chatmigrate/slack2discord/internal/translate"
)

// Markers that stand in for thread structure when the destination gets a
// reply chain instead of a native thread.
const (
	threadOpenerMarker = "[Thread OP] "
	threadReplyMarker  = "[Thread] "
)

// threadState tracks where one source thread continues in the destination.
type threadState struct {
	threadID string             // native mode: thread channel to send into
	anchor   discord.MessageRef // emulation mode: opener to reference
}

// Sequencer routes payloads into threads. Each channel import gets a fresh
// one, so thread keys never leak across invocations.
type Sequencer struct {
	dest      Destination
	deliverer *Deliverer
	native    bool
	logger    *zap.Logger
	threads   map[string]*threadState
}

// NewSequencer builds a Sequencer with an empty thread table.
func NewSequencer(dest Destination, deliverer *Deliverer, caps config.Capabilities, logger *zap.Logger) *Sequencer {
	return &Sequencer{
		dest:      dest,
		deliverer: deliverer,
		native:    caps.SupportsNativeThreads,
		logger:    logger,
		threads:   make(map[string]*threadState),
	}
}

// Dispatch delivers one payload, preserving arrival order. A payload with an
// unknown thread key becomes the thread opener, which also adopts orphan
// replies whose opener never made it into the export.
func (s *Sequencer) Dispatch(ctx context.Context, channelID string, p *translate.Payload) (discord.MessageRef, error) {
	if p.ThreadKey == "" {
		return s.deliverer.Deliver(ctx, channelID, p, nil)
	}
	if s.native {
		return s.dispatchNative(ctx, channelID, p)
	}
	return s.dispatchEmulated(ctx, channelID, p)
}

func (s *Sequencer) dispatchNative(ctx context.Context, channelID string, p *translate.Payload) (discord.MessageRef, error) {
	state, ok := s.threads[p.ThreadKey]
	if !ok {
		ref, err := s.deliverer.Deliver(ctx, channelID, p, nil)
		if err != nil {
			return discord.MessageRef{}, err
		}

		s.logger.Info("Message owns a thread", zap.String("thread_ts", p.ThreadKey))
		threadID, err := s.dest.CreateThread(ctx, ref, p.ThreadKey)
		if err != nil {
			return discord.MessageRef{}, err
		}
		s.threads[p.ThreadKey] = &threadState{threadID: threadID}
		s.archive(ctx, threadID)
		return ref, nil
	}

	s.logger.Info("Message belongs to thread", zap.String("thread_ts", p.ThreadKey))
	ref, err := s.deliverer.Deliver(ctx, state.threadID, p, nil)
	if err != nil {
		return discord.MessageRef{}, err
	}
	s.archive(ctx, state.threadID)
	return ref, nil
}

func (s *Sequencer) dispatchEmulated(ctx context.Context, channelID string, p *translate.Payload) (discord.MessageRef, error) {
	state, ok := s.threads[p.ThreadKey]
	if !ok {
		p.Text = threadOpenerMarker + p.Text
		ref, err := s.deliverer.Deliver(ctx, channelID, p, nil)
		if err != nil {
			return discord.MessageRef{}, err
		}

		s.logger.Info("Message owns a thread", zap.String("thread_ts", p.ThreadKey))
		s.threads[p.ThreadKey] = &threadState{anchor: ref}
		return ref, nil
	}

	s.logger.Info("Message belongs to thread", zap.String("thread_ts", p.ThreadKey))
	p.Text = threadReplyMarker + p.Text
	anchor := state.anchor
	return s.deliverer.Deliver(ctx, channelID, p, &anchor)
}

// archive closes a thread again. Sending into an archived thread reopens
// it, so every threaded delivery ends with this.
func (s *Sequencer) archive(ctx context.Context, threadID string) {
	if err := s.dest.ArchiveThread(ctx, threadID); err != nil {
		s.logger.Warn("Failed to archive thread",
			zap.String("thread_id", threadID),
			zap.Error(err))
	}
}
