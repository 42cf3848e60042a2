package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"
)

// PlatformRef identifies a user on one platform by id, name, or both.
type PlatformRef struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

// Handle renders the Discord-side handle: "name", or "name#id" when a
// discriminator is present.
func (r PlatformRef) Handle() string {
	if r.ID == "" {
		return r.Name
	}
	return r.Name + "#" + r.ID
}

// MappingEntry pairs a Slack user with the Discord member their messages
// should be attributed to.
type MappingEntry struct {
	Slack   PlatformRef `json:"slack"`
	Discord PlatformRef `json:"discord"`
}

// Mapping is the operator-authored identity table. Loading backfills missing
// Slack IDs from the user catalog; any backfill marks the table dirty so the
// resolved IDs can be written back for the next run.
type Mapping struct {
	path       string
	entries    []MappingEntry
	handles    map[string]string // Slack user ID -> Discord handle
	dirty      bool
	unresolved []string
}

// LoadMapping reads the mapping file and resolves its entries against the
// user catalog. Entries without a Slack ID are matched by exact display
// name: exactly one match backfills the ID; zero or several matches leave
// the entry unresolved (it stays in the file for later disambiguation but
// contributes no handle).
func LoadMapping(path string, users map[string]string, logger *zap.Logger) (*Mapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var entries []MappingEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	m := &Mapping{
		path:    path,
		entries: entries,
		handles: make(map[string]string, len(entries)),
	}

	for i := range m.entries {
		entry := &m.entries[i]

		if entry.Slack.ID == "" {
			ids := matchByName(users, entry.Slack.Name)
			switch len(ids) {
			case 1:
				entry.Slack.ID = ids[0]
				m.dirty = true
				logger.Info("Backfilled Slack ID from display name",
					zap.String("name", entry.Slack.Name),
					zap.String("id", entry.Slack.ID))
			case 0:
				logger.Warn("No Slack user matches mapping entry, skipping",
					zap.String("name", entry.Slack.Name))
				m.unresolved = append(m.unresolved, entry.Slack.Name)
				continue
			default:
				logger.Warn("Multiple Slack users match mapping entry, skipping",
					zap.String("name", entry.Slack.Name),
					zap.Int("matches", len(ids)))
				m.unresolved = append(m.unresolved, entry.Slack.Name)
				continue
			}
		}

		m.handles[entry.Slack.ID] = entry.Discord.Handle()
	}

	return m, nil
}

func matchByName(users map[string]string, name string) []string {
	if name == "" {
		return nil
	}
	var ids []string
	for id, display := range users {
		if display == name {
			ids = append(ids, id)
		}
	}
	return ids
}

// Handle returns the Discord handle for a Slack user ID.
func (m *Mapping) Handle(sourceID string) (string, bool) {
	h, ok := m.handles[sourceID]
	return h, ok
}

// Dirty reports whether any entry was backfilled since loading.
func (m *Mapping) Dirty() bool {
	return m.dirty
}

// Unresolved returns the names of entries that did not resolve to exactly
// one Slack user.
func (m *Mapping) Unresolved() []string {
	return m.unresolved
}

// Len returns the number of resolved entries.
func (m *Mapping) Len() int {
	return len(m.handles)
}

// Save rewrites the mapping file when the table is dirty, so backfilled IDs
// survive to the next run. A clean table is never rewritten.
func (m *Mapping) Save() error {
	if !m.dirty {
		return nil
	}

	data, err := json.MarshalIndent(m.entries, "", " ")
	if err != nil {
		return fmt.Errorf("failed to marshal mapping: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(m.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", m.path, err)
	}

	m.dirty = false
	return nil
}
