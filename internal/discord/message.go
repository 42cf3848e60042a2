package discord

import (
	"bytes"
	"context"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/chatmigrate/slack2discord/internal/translate"
)

// MessageRef identifies a message created in the destination.
type MessageRef struct {
	ID        string
	ChannelID string
}

// SendRequest describes one message to create.
type SendRequest struct {
	ChannelID string
	Content   string
	Blocks    []translate.Block
	Files     []translate.Attachment

	// ReplyTo makes the message a reply to an earlier one. Used when
	// threads are emulated as reply chains.
	ReplyTo *MessageRef
}

// SendMessage creates one message. Mention markup in imported history is
// rendered without notifying anyone.
func (c *Client) SendMessage(ctx context.Context, req SendRequest) (MessageRef, error) {
	data := &discordgo.MessageSend{
		Content:         req.Content,
		AllowedMentions: &discordgo.MessageAllowedMentions{},
	}

	for _, b := range req.Blocks {
		data.Embeds = append(data.Embeds, blockEmbed(b))
	}
	for _, f := range req.Files {
		data.Files = append(data.Files, &discordgo.File{
			Name:        f.Name,
			ContentType: f.ContentType,
			Reader:      bytes.NewReader(f.Data),
		})
	}
	if req.ReplyTo != nil {
		data.Reference = &discordgo.MessageReference{
			MessageID: req.ReplyTo.ID,
			ChannelID: req.ReplyTo.ChannelID,
			GuildID:   c.guildID,
		}
	}

	msg, err := c.s.ChannelMessageSendComplex(req.ChannelID, data, discordgo.WithContext(ctx))
	if err != nil {
		return MessageRef{}, WrapError(c.logger, "sending message", err)
	}
	return MessageRef{ID: msg.ID, ChannelID: msg.ChannelID}, nil
}

// blockEmbed converts one rich block into an embed. Image blocks point at
// the attachment uploaded alongside the message.
func blockEmbed(b translate.Block) *discordgo.MessageEmbed {
	if b.Kind == translate.BlockImage {
		e := &discordgo.MessageEmbed{
			Type:  discordgo.EmbedTypeImage,
			Title: b.Title,
			Image: &discordgo.MessageEmbedImage{URL: "attachment://" + b.ImageName},
		}
		if !b.Timestamp.IsZero() {
			e.Timestamp = b.Timestamp.UTC().Format(time.RFC3339)
		}
		return e
	}
	return &discordgo.MessageEmbed{
		Type:        discordgo.EmbedTypeRich,
		Description: b.Text,
	}
}
