// Package discord adapts the destination guild: it snapshots the member and
// channel directory once per run and turns translated payloads into REST
// calls.
package discord

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

// memberPageSize is the largest page the member listing endpoint allows.
const memberPageSize = 1000

// maxThreadName is the destination's limit on thread names.
const maxThreadName = 100

// Session defines the Discord API methods used by the client
//
//go:generate go tool mockgen -source=$GOFILE -destination=client_mocks.go -package=discord
type Session interface {
	GuildMembers(guildID string, after string, limit int, options ...discordgo.RequestOption) ([]*discordgo.Member, error)
	GuildChannels(guildID string, options ...discordgo.RequestOption) ([]*discordgo.Channel, error)
	GuildChannelCreate(guildID, name string, ctype discordgo.ChannelType, options ...discordgo.RequestOption) (*discordgo.Channel, error)
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
	MessageThreadStartComplex(channelID, messageID string, data *discordgo.ThreadStart, options ...discordgo.RequestOption) (*discordgo.Channel, error)
	ChannelEditComplex(channelID string, data *discordgo.ChannelEdit, options ...discordgo.RequestOption) (*discordgo.Channel, error)
}

type Client struct {
	s       Session
	guildID string
	dir     *directory
	logger  *zap.Logger
}

// NewClient builds a client for one guild and snapshots its member and
// channel directory. The snapshot is what mention and channel lookups run
// against for the rest of the run.
func NewClient(ctx context.Context, s Session, guildID string, logger *zap.Logger) (*Client, error) {
	if guildID == "" {
		return nil, fmt.Errorf("discord guild id is required")
	}

	c := &Client{
		s:       s,
		guildID: guildID,
		dir:     newDirectory(),
		logger:  logger,
	}
	if err := c.loadDirectory(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

// newClientWithSession creates a client with a given Session and an empty
// directory (for testing)
func newClientWithSession(s Session, guildID string, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		s:       s,
		guildID: guildID,
		dir:     newDirectory(),
		logger:  logger,
	}
}

// loadDirectory pages through the guild's members and lists its channels.
func (c *Client) loadDirectory(ctx context.Context) error {
	after := ""
	members := 0
	for {
		batch, err := c.s.GuildMembers(c.guildID, after, memberPageSize, discordgo.WithContext(ctx))
		if err != nil {
			return WrapError(c.logger, "listing guild members", err)
		}
		for _, m := range batch {
			c.dir.addMember(m)
		}
		members += len(batch)

		if len(batch) < memberPageSize {
			break
		}
		last := batch[len(batch)-1]
		if last.User == nil {
			break
		}
		after = last.User.ID
	}

	channels, err := c.s.GuildChannels(c.guildID, discordgo.WithContext(ctx))
	if err != nil {
		return WrapError(c.logger, "listing guild channels", err)
	}
	for _, ch := range channels {
		c.dir.addChannel(ch)
	}

	c.logger.Info("Loaded guild directory",
		zap.String("guild_id", c.guildID),
		zap.Int("members", members),
		zap.Int("channels", len(channels)))
	return nil
}

// MemberMention returns native mention markup for the guild member whose
// username, nickname, or legacy name#discriminator handle matches name.
func (c *Client) MemberMention(name string) (string, bool) {
	id, ok := c.dir.memberID(name)
	if !ok {
		return "", false
	}
	return "<@" + id + ">", true
}

// ChannelMention returns native mention markup for the guild channel with
// the given name.
func (c *Client) ChannelMention(name string) (string, bool) {
	id, ok := c.dir.channelID(name)
	if !ok {
		return "", false
	}
	return "<#" + id + ">", true
}

// ResolveChannel returns the ID of the guild channel with the given name.
func (c *Client) ResolveChannel(name string) (string, bool) {
	return c.dir.channelID(name)
}

// CreateChannel creates a text channel in the guild and adds it to the
// directory snapshot.
func (c *Client) CreateChannel(ctx context.Context, name string) (string, error) {
	ch, err := c.s.GuildChannelCreate(c.guildID, name, discordgo.ChannelTypeGuildText, discordgo.WithContext(ctx))
	if err != nil {
		return "", WrapError(c.logger, fmt.Sprintf("creating channel %q", name), err)
	}

	c.dir.addChannel(ch)
	c.logger.Info("Created channel",
		zap.String("channel_name", ch.Name),
		zap.String("channel_id", ch.ID))
	return ch.ID, nil
}

// CreateThread starts a thread on an existing message and returns the
// thread's channel ID.
func (c *Client) CreateThread(ctx context.Context, anchor MessageRef, name string) (string, error) {
	th, err := c.s.MessageThreadStartComplex(anchor.ChannelID, anchor.ID, &discordgo.ThreadStart{
		Name:                threadName(name),
		AutoArchiveDuration: 1440,
	}, discordgo.WithContext(ctx), discordgo.WithAuditLogReason("Migrating Slack thread"))
	if err != nil {
		return "", WrapError(c.logger, "creating thread", err)
	}
	return th.ID, nil
}

// ArchiveThread marks a thread archived. Imported history should not leave
// stale threads active in the channel list.
func (c *Client) ArchiveThread(ctx context.Context, threadID string) error {
	archived := true
	_, err := c.s.ChannelEditComplex(threadID, &discordgo.ChannelEdit{
		Archived: &archived,
	}, discordgo.WithContext(ctx))
	if err != nil {
		return WrapError(c.logger, "archiving thread", err)
	}
	return nil
}

func threadName(name string) string {
	if name == "" {
		return "Thread"
	}
	if utf8.RuneCountInString(name) <= maxThreadName {
		return name
	}
	return string([]rune(name)[:maxThreadName])
}
