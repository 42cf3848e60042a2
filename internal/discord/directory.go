package discord

import (
	"strings"

	"github.com/bwmarrin/discordgo"
)

// directory indexes a guild snapshot for name lookups. Member names are
// indexed under every form the mapping file may use: nickname, username,
// and the legacy name#discriminator handle.
type directory struct {
	members  map[string]string
	channels map[string]string
}

func newDirectory() *directory {
	return &directory{
		members:  make(map[string]string),
		channels: make(map[string]string),
	}
}

func (d *directory) addMember(m *discordgo.Member) {
	if m.User == nil {
		return
	}
	if m.Nick != "" {
		d.setMember(m.Nick, m.User.ID)
	}
	d.setMember(m.User.Username, m.User.ID)
	if m.User.Discriminator != "" && m.User.Discriminator != "0" {
		d.setMember(m.User.Username+"#"+m.User.Discriminator, m.User.ID)
	}
}

// setMember records a name form. The first member to claim a form keeps it.
func (d *directory) setMember(name, id string) {
	key := strings.ToLower(name)
	if key == "" {
		return
	}
	if _, ok := d.members[key]; !ok {
		d.members[key] = id
	}
}

// addChannel records a channel by name. Text channels win name collisions
// with other channel kinds.
func (d *directory) addChannel(ch *discordgo.Channel) {
	name := strings.ToLower(ch.Name)
	if name == "" {
		return
	}
	if _, ok := d.channels[name]; ok && ch.Type != discordgo.ChannelTypeGuildText {
		return
	}
	d.channels[name] = ch.ID
}

func (d *directory) memberID(name string) (string, bool) {
	id, ok := d.members[strings.ToLower(name)]
	return id, ok
}

func (d *directory) channelID(name string) (string, bool) {
	id, ok := d.channels[strings.ToLower(strings.TrimPrefix(name, "#"))]
	return id, ok
}
