// Package mention rewrites Slack reference tokens into their Discord
// equivalents.
package mention

import (
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// Slack encodes references as angle-bracket tokens: <@U…> or <@U…|label>
// for users, <#C…|name> for channels.
var (
	reUserToken    = regexp.MustCompile(`<@([UW][A-Z0-9]+)(?:\|([^>]*))?>`)
	reChannelToken = regexp.MustCompile(`<#([CG][A-Z0-9]+)(?:\|([^>]*))?>`)
)

// Identities is the part of the identity catalog the resolver consults.
type Identities interface {
	DisplayName(id string) (string, bool)
	ChannelName(id string) (string, bool)
	Handle(id string) (string, bool)
}

// Directory is the live view of the destination guild used for lookups.
type Directory interface {
	MemberMention(name string) (string, bool)
	ChannelMention(name string) (string, bool)
}

// Resolver rewrites reference tokens in message text. Resolution is
// memoized per distinct token, so every occurrence of a token gets the same
// replacement and an unresolvable token is logged once, not per occurrence.
type Resolver struct {
	ids    Identities
	dir    Directory
	logger *zap.Logger

	seen map[string]string
}

// NewResolver builds a resolver over the given catalog view and guild
// directory.
func NewResolver(ids Identities, dir Directory, logger *zap.Logger) *Resolver {
	return &Resolver{
		ids:    ids,
		dir:    dir,
		logger: logger,
		seen:   make(map[string]string),
	}
}

// Rewrite replaces every user and channel token in text with the best
// available Discord form, scanning the text once per token kind.
func (r *Resolver) Rewrite(text string) string {
	if !strings.Contains(text, "<") {
		return text
	}
	text = reUserToken.ReplaceAllStringFunc(text, r.replaceUserToken)
	text = reChannelToken.ReplaceAllStringFunc(text, r.replaceChannelToken)
	return text
}

func (r *Resolver) replaceUserToken(token string) string {
	if cached, ok := r.seen[token]; ok {
		return cached
	}

	groups := reUserToken.FindStringSubmatch(token)
	replacement := r.resolveUser(groups[1], groups[2])
	r.seen[token] = replacement
	return replacement
}

// resolveUser falls through three tiers: the operator-mapped handle when it
// names a real member, then the catalog display name (or the token's own
// label) when that names a real member, then plain text.
func (r *Resolver) resolveUser(id, label string) string {
	if handle, ok := r.ids.Handle(id); ok {
		if m, ok := r.dir.MemberMention(handle); ok {
			return m
		}
	}

	name, _ := r.ids.DisplayName(id)
	for _, candidate := range []string{name, label} {
		if candidate == "" {
			continue
		}
		if m, ok := r.dir.MemberMention(candidate); ok {
			return m
		}
	}

	if name == "" {
		name = label
	}
	if name == "" {
		name = id
	}

	r.logger.Warn("User mention left as plain text",
		zap.String("id", id),
		zap.String("name", name))
	return "@" + name
}

func (r *Resolver) replaceChannelToken(token string) string {
	if cached, ok := r.seen[token]; ok {
		return cached
	}

	groups := reChannelToken.FindStringSubmatch(token)
	replacement := r.resolveChannel(groups[1], groups[2])
	r.seen[token] = replacement
	return replacement
}

func (r *Resolver) resolveChannel(id, label string) string {
	name, ok := r.ids.ChannelName(id)
	if !ok || name == "" {
		name = label
	}

	if name == "" {
		r.logger.Warn("Channel reference left as plain id", zap.String("id", id))
		return "#" + id
	}

	if m, ok := r.dir.ChannelMention(name); ok {
		return m
	}

	r.logger.Warn("Channel reference left as plain text",
		zap.String("id", id),
		zap.String("name", name))
	return "#" + name
}
