// Package catalog loads the identity files of a Slack export: the user and
// channel tables Slack writes at the export root, and the operator-authored
// mapping from Slack users to Discord members.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/slack-go/slack"
	"go.uber.org/zap"

	"github.com/chatmigrate/slack2discord/internal/export"
)

// Catalog holds the identity lookups for one import run. Any field may be
// nil when its backing file is absent or unreadable; lookups then degrade to
// plain-text rendering downstream.
type Catalog struct {
	Users    map[string]string // Slack user ID -> display name
	Channels map[string]string // Slack channel ID -> channel name
	Mapping  *Mapping          // Slack user ID -> Discord handle
}

// Load reads whichever identity files the resolved root has. Missing or
// malformed files are logged and leave their lookup nil; they never abort
// the run.
func Load(root *export.Root, logger *zap.Logger) *Catalog {
	c := &Catalog{}

	if path, ok := root.RootFiles[export.UsersFile]; ok {
		users, err := loadUsers(path)
		if err != nil {
			logger.Error("Failed to load user catalog", zap.String("path", path), zap.Error(err))
		} else {
			c.Users = users
			logger.Info("Loaded user catalog", zap.Int("users", len(users)))
		}
	} else {
		logger.Warn("No user catalog; author names and user mentions will degrade")
	}

	if path, ok := root.RootFiles[export.ChannelsFile]; ok {
		channels, err := loadChannels(path)
		if err != nil {
			logger.Error("Failed to load channel catalog", zap.String("path", path), zap.Error(err))
		} else {
			c.Channels = channels
			logger.Info("Loaded channel catalog", zap.Int("channels", len(channels)))
		}
	} else {
		logger.Warn("No channel catalog; channel references will degrade")
	}

	if path, ok := root.RootFiles[export.MappingFile]; ok {
		m, err := LoadMapping(path, c.Users, logger)
		if err != nil {
			logger.Error("Failed to load identity mapping", zap.String("path", path), zap.Error(err))
		} else {
			c.Mapping = m
			logger.Info("Loaded identity mapping",
				zap.Int("resolved", m.Len()),
				zap.Strings("unresolved", m.Unresolved()))
		}
	} else {
		logger.Warn("No identity mapping; member resolution will rely on display names")
	}

	return c
}

// DisplayName returns the catalog name for a Slack user ID.
func (c *Catalog) DisplayName(id string) (string, bool) {
	name, ok := c.Users[id]
	return name, ok
}

// ChannelName returns the catalog name for a Slack channel ID.
func (c *Catalog) ChannelName(id string) (string, bool) {
	name, ok := c.Channels[id]
	return name, ok
}

// Handle returns the mapped Discord handle for a Slack user ID.
func (c *Catalog) Handle(id string) (string, bool) {
	if c.Mapping == nil {
		return "", false
	}
	return c.Mapping.Handle(id)
}

func loadUsers(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var users []slack.User
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	names := make(map[string]string, len(users))
	for _, u := range users {
		name := u.Profile.DisplayName
		if name == "" {
			name = u.Profile.RealName
		}
		names[u.ID] = name
	}
	return names, nil
}

func loadChannels(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var channels []slack.Channel
	if err := json.Unmarshal(data, &channels); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	names := make(map[string]string, len(channels))
	for _, ch := range channels {
		names[ch.ID] = ch.Name
	}
	return names, nil
}
