package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/chatmigrate/slack2discord/internal/export"
)

const usersJSON = `[
	{
		"id": "U038XMVFLQ0",
		"name": "amber",
		"profile": {"display_name": "amber", "real_name": "Amber Miller"}
	},
	{
		"id": "U039A2PT7BN",
		"name": "bob",
		"profile": {"display_name": "", "real_name": "Bob Jones"}
	}
]`

const channelsJSON = `[
	{"id": "C03VBB3TP51", "name": "general"},
	{"id": "C03VBB3TP99", "name": "random"}
]`

const mappingJSON = `[
	{"slack": {"id": "U038XMVFLQ0", "name": "amber"}, "discord": {"name": "amber", "id": "3833"}}
]`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
}

func testRoot(t *testing.T, users, channels, mapping string) *export.Root {
	t.Helper()
	dir := t.TempDir()
	root := &export.Root{Path: dir, RootFiles: make(map[string]string)}

	if users != "" {
		p := filepath.Join(dir, export.UsersFile)
		writeFile(t, p, users)
		root.RootFiles[export.UsersFile] = p
	}
	if channels != "" {
		p := filepath.Join(dir, export.ChannelsFile)
		writeFile(t, p, channels)
		root.RootFiles[export.ChannelsFile] = p
	}
	if mapping != "" {
		p := filepath.Join(dir, export.MappingFile)
		writeFile(t, p, mapping)
		root.RootFiles[export.MappingFile] = p
	}
	return root
}

func TestLoad_FullCatalog(t *testing.T) {
	root := testRoot(t, usersJSON, channelsJSON, mappingJSON)

	c := Load(root, zap.NewNop())

	name, ok := c.DisplayName("U038XMVFLQ0")
	if !ok || name != "amber" {
		t.Errorf("DisplayName: got %q, %v; want %q, true", name, ok, "amber")
	}

	// display_name empty, falls back to real_name
	name, ok = c.DisplayName("U039A2PT7BN")
	if !ok || name != "Bob Jones" {
		t.Errorf("DisplayName fallback: got %q, %v; want %q, true", name, ok, "Bob Jones")
	}

	if _, ok := c.DisplayName("UUNKNOWN"); ok {
		t.Error("DisplayName: expected miss for unknown id")
	}

	ch, ok := c.ChannelName("C03VBB3TP51")
	if !ok || ch != "general" {
		t.Errorf("ChannelName: got %q, %v; want %q, true", ch, ok, "general")
	}

	handle, ok := c.Handle("U038XMVFLQ0")
	if !ok || handle != "amber#3833" {
		t.Errorf("Handle: got %q, %v; want %q, true", handle, ok, "amber#3833")
	}
}

func TestLoad_MissingFiles(t *testing.T) {
	root := &export.Root{Path: t.TempDir(), RootFiles: map[string]string{}}

	c := Load(root, zap.NewNop())

	if c.Users != nil {
		t.Errorf("Users: got %v, want nil", c.Users)
	}
	if c.Channels != nil {
		t.Errorf("Channels: got %v, want nil", c.Channels)
	}
	if c.Mapping != nil {
		t.Errorf("Mapping: got %v, want nil", c.Mapping)
	}

	if _, ok := c.Handle("U038XMVFLQ0"); ok {
		t.Error("Handle: expected miss with nil mapping")
	}
}

func TestLoad_MalformedFilesDegrade(t *testing.T) {
	root := testRoot(t, `{"not":`, `[{]`, `garbage`)

	c := Load(root, zap.NewNop())

	if c.Users != nil || c.Channels != nil || c.Mapping != nil {
		t.Errorf("expected all lookups nil, got %+v", c)
	}
}
