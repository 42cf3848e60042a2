package translate

import (
	"context"
	"fmt"
	"html"
	"regexp"
	"strings"
	"time"

	"github.com/slack-go/slack"
	"go.uber.org/zap"
)

// Message subtypes that never produce a payload.
var skippedSubtypes = map[string]bool{
	"channel_join": true,
	"bot_message":  true,
}

// Slack wraps hyperlinks in angle brackets, with an optional |label part.
// The bare pattern excludes '|' so it never eats half a labeled link.
var (
	reBareLink    = regexp.MustCompile(`<(https?:[^|>]+)>`)
	reLabeledLink = regexp.MustCompile(`<(https?:[^|>]+)\|([^>]+)>`)
)

// Refs rewrites reference tokens embedded in message text.
type Refs interface {
	Rewrite(text string) string
}

// Identities resolves message authors from the export catalog.
type Identities interface {
	DisplayName(id string) (string, bool)
	Handle(id string) (string, bool)
}

// Directory upgrades an author name to a native member mention.
type Directory interface {
	MemberMention(name string) (string, bool)
}

// Fetcher downloads attachment bytes from the export's private URLs.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Translator turns raw export messages into destination-ready payloads.
type Translator struct {
	ids     Identities
	dir     Directory
	refs    Refs
	fetcher Fetcher
	logger  *zap.Logger
}

// NewTranslator builds a Translator from its collaborators.
func NewTranslator(ids Identities, dir Directory, refs Refs, fetcher Fetcher, logger *zap.Logger) *Translator {
	return &Translator{
		ids:     ids,
		dir:     dir,
		refs:    refs,
		fetcher: fetcher,
		logger:  logger,
	}
}

// Translate converts one source message. It returns nil when the message
// yields nothing worth delivering; every discard is logged with a reason.
func (t *Translator) Translate(ctx context.Context, msg slack.Msg) *Payload {
	if skippedSubtypes[msg.SubType] {
		t.logger.Debug("Skipping message subtype",
			zap.String("subtype", msg.SubType),
			zap.String("ts", msg.Timestamp))
		return nil
	}

	p := &Payload{
		ID:        msg.ClientMsgID,
		ThreadKey: msg.ThreadTimestamp,
	}

	author := t.author(msg.User)
	stamp := headerTimestamp(msg.Timestamp)

	if msg.Text != "" {
		text := t.refs.Rewrite(msg.Text)
		text = fmt.Sprintf("*%s* **%s**: %s", stamp, author, text)
		text = html.UnescapeString(text)
		text = strings.ReplaceAll(text, "<!everyone>", "@everyone")

		linked := rewriteLinks(text)
		if linked != text || len(linked) > MaxMessageChars {
			p.Blocks = splitBlocks(linked)
			t.reportOversize(p.Blocks, msg.Timestamp)
		} else {
			p.Text = linked
		}
	}
	hadText := p.Text != "" || len(p.Blocks) > 0

	t.attachFiles(ctx, p, msg.Files)

	if !hadText {
		if len(p.Files) == 0 {
			t.logger.Error("Message yielded nothing to deliver",
				zap.String("ts", msg.Timestamp),
				zap.String("user", msg.User))
			return nil
		}
		p.Text = html.UnescapeString(fmt.Sprintf("*%s* **%s**: *Attachments:*", stamp, author))
	}

	return p
}

// author resolves the display form of a message author: the mapped handle
// when one exists, else the catalog name. Either is upgraded to a native
// mention when the destination knows the member. Authors the export cannot
// name at all come back as a marked placeholder.
func (t *Translator) author(id string) string {
	if id == "" {
		return "unknown user"
	}

	name, ok := t.ids.Handle(id)
	if !ok {
		name, ok = t.ids.DisplayName(id)
		if !ok || name == "" {
			return fmt.Sprintf("unknown user %s", id)
		}
	}

	if mention, ok := t.dir.MemberMention(name); ok {
		return mention
	}
	return "@" + name
}

// headerTimestamp renders a Slack "seconds.micros" timestamp for the
// message header.
func headerTimestamp(ts string) string {
	if ts == "" {
		return "<no timestamp>"
	}
	var sec int64
	if _, err := fmt.Sscanf(ts, "%d", &sec); err != nil {
		return "<no timestamp>"
	}
	return time.Unix(sec, 0).UTC().Format("2006-01-02 at 15:04:05")
}

// rewriteLinks converts Slack's angle-bracket hyperlinks to markdown.
func rewriteLinks(text string) string {
	text = reBareLink.ReplaceAllString(text, "[$1]($1)")
	return reLabeledLink.ReplaceAllString(text, "[$2]($1)")
}

// attachFiles downloads the message's files, adding an image preview block
// for each image attachment. Per-file failures are logged and skipped so
// one dead URL never sinks the rest of the message.
func (t *Translator) attachFiles(ctx context.Context, p *Payload, files []slack.File) {
	for _, f := range files {
		if f.URLPrivate == "" {
			t.logger.Error("File has no download URL, skipping",
				zap.String("file", f.Name),
				zap.String("id", f.ID))
			continue
		}

		data, err := t.fetcher.Fetch(ctx, f.URLPrivate)
		if err != nil {
			t.logger.Error("Failed to fetch file, skipping",
				zap.String("file", f.Name),
				zap.String("url", f.URLPrivate),
				zap.Error(err))
			continue
		}

		name := attachmentName(f.Name, f.Filetype)
		if strings.HasPrefix(f.Mimetype, "image/") {
			p.Blocks = append(p.Blocks, Block{
				Kind:      BlockImage,
				Title:     f.Title,
				ImageName: name,
				Timestamp: f.Timestamp.Time(),
			})
		}
		p.Files = append(p.Files, Attachment{
			Name:        name,
			ContentType: f.Mimetype,
			Data:        data,
		})
	}
}

// attachmentName makes sure the stored name carries the export's filetype
// extension. Slack sometimes strips it from generated names.
func attachmentName(name, filetype string) string {
	if filetype == "" || strings.HasSuffix(name, "."+filetype) {
		return name
	}
	return name + "." + filetype
}

// reportOversize warns when a message's rich content exceeds the aggregate
// ceiling. Delivery still proceeds; the destination may truncate.
func (t *Translator) reportOversize(blocks []Block, ts string) {
	total := 0
	for _, b := range blocks {
		total += len(b.Text)
	}
	if total > MaxPayloadBlockChars {
		t.logger.Warn("Rich content exceeds the aggregate message ceiling",
			zap.String("ts", ts),
			zap.Int("chars", total),
			zap.Int("limit", MaxPayloadBlockChars))
	}
}
