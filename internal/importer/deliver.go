package importer

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/chatmigrate/slack2discord/internal/config"
	"github.com/chatmigrate/slack2discord/internal/discord"
	"github.com/chatmigrate/slack2discord/internal/translate"
)

// continuationLabel heads the follow-up messages of an over-long payload.
const continuationLabel = "*Additional attachments:*"

// Deliverer turns one payload into as few platform calls as possible and
// paces them so replayed history stays under the rate limit.
type Deliverer struct {
	dest     Destination
	caps     config.Capabilities
	interval time.Duration
	sleep    func(time.Duration)
	logger   *zap.Logger
}

// NewDeliverer builds a Deliverer that sleeps interval after every send.
func NewDeliverer(dest Destination, caps config.Capabilities, interval time.Duration, logger *zap.Logger) *Deliverer {
	return &Deliverer{
		dest:     dest,
		caps:     caps,
		interval: interval,
		sleep:    time.Sleep,
		logger:   logger,
	}
}

// Deliver sends one payload to a channel. The primary call carries the
// content, all attachments, and as many blocks as one message may hold;
// remaining blocks follow in continuation messages that reply to the first.
// The first message's ref is returned, since that is what threads and reply
// chains must anchor on.
func (d *Deliverer) Deliver(ctx context.Context, channelID string, p *translate.Payload, replyTo *discord.MessageRef) (discord.MessageRef, error) {
	limit := d.caps.MaxEmbedsPerMessage

	head, rest := p.Blocks, []translate.Block(nil)
	if len(p.Blocks) > limit {
		head, rest = p.Blocks[:limit], p.Blocks[limit:]
		d.logger.Info("Message exceeds the per-message block limit, splitting",
			zap.Int("blocks", len(p.Blocks)),
			zap.Int("limit", limit))
	}

	first, err := d.send(ctx, discord.SendRequest{
		ChannelID: channelID,
		Content:   p.Text,
		Blocks:    head,
		Files:     p.Files,
		ReplyTo:   replyTo,
	})
	if err != nil {
		return discord.MessageRef{}, err
	}

	for len(rest) > 0 {
		batch := rest
		if len(batch) > limit {
			batch = rest[:limit]
		}
		if _, err := d.send(ctx, discord.SendRequest{
			ChannelID: channelID,
			Content:   continuationLabel,
			Blocks:    batch,
			ReplyTo:   &first,
		}); err != nil {
			return discord.MessageRef{}, err
		}
		rest = rest[len(batch):]
	}

	return first, nil
}

func (d *Deliverer) send(ctx context.Context, req discord.SendRequest) (discord.MessageRef, error) {
	ref, err := d.dest.SendMessage(ctx, req)
	if err != nil {
		return discord.MessageRef{}, err
	}
	if d.interval > 0 {
		d.sleep(d.interval)
	}
	return ref, nil
}
