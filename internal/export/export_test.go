package export

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

// fakePrompter records every question and answers with the configured
// function (yes to everything when nil).
type fakePrompter struct {
	confirm   func(question string) bool
	questions []string
}

func (p *fakePrompter) Confirm(question string) bool {
	p.questions = append(p.questions, question)
	if p.confirm == nil {
		return true
	}
	return p.confirm(question)
}

func acceptAll() *fakePrompter { return &fakePrompter{} }

func declineAll() *fakePrompter {
	return &fakePrompter{confirm: func(string) bool { return false }}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
}

// makeExport builds a minimal export tree with two channels and returns its
// root directory.
func makeExport(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFile(t, filepath.Join(root, UsersFile), "[]")
	writeFile(t, filepath.Join(root, ChannelsFile), "[]")
	writeFile(t, filepath.Join(root, IntegrationFile), "[]")
	writeFile(t, filepath.Join(root, "general", "2022-07-29.json"), "[]")
	writeFile(t, filepath.Join(root, "general", "2022-07-30.json"), "[]")
	writeFile(t, filepath.Join(root, "random", "2022-08-01.json"), "[]")
	writeFile(t, filepath.Join(root, "random", "notes.txt"), "ignored")
	return root
}

func TestResolve_TreeMode(t *testing.T) {
	root := makeExport(t)
	prompter := acceptAll()

	got, err := Resolve(root, ModeTree, prompter, zap.NewNop())
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	if got.Path != root {
		t.Errorf("Path: got %q, want %q", got.Path, root)
	}

	if _, ok := got.RootFiles[UsersFile]; !ok {
		t.Error("expected users.json in RootFiles")
	}
	if _, ok := got.RootFiles[MappingFile]; ok {
		t.Error("mapping file should be absent from RootFiles")
	}

	// only the absent mapping file should have prompted
	if len(prompter.questions) != 1 {
		t.Errorf("questions: got %d, want 1 (%v)", len(prompter.questions), prompter.questions)
	}

	if len(got.ChannelLogs) != 2 {
		t.Fatalf("channels: got %d, want 2", len(got.ChannelLogs))
	}

	general := got.ChannelLogs["general"]
	if len(general) != 2 {
		t.Fatalf("general logs: got %d, want 2", len(general))
	}
	if filepath.Base(general[0]) != "2022-07-29.json" || filepath.Base(general[1]) != "2022-07-30.json" {
		t.Errorf("general logs out of order: %v", general)
	}

	if len(got.ChannelLogs["random"]) != 1 {
		t.Errorf("random logs: got %d, want 1 (non-json files must be ignored)", len(got.ChannelLogs["random"]))
	}
}

func TestResolve_RootOneLevelUp(t *testing.T) {
	root := makeExport(t)
	channelDir := filepath.Join(root, "general")

	got, err := Resolve(channelDir, ModeSingle, acceptAll(), zap.NewNop())
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	if got.Path != root {
		t.Errorf("Path: got %q, want %q (root files live one level up)", got.Path, root)
	}

	logs, ok := got.ChannelLogs["general"]
	if !ok {
		t.Fatalf("expected channel %q, got %v", "general", got.ChannelLogs)
	}
	if len(logs) != 2 {
		t.Errorf("logs: got %d, want 2", len(logs))
	}
}

func TestResolve_SingleFile(t *testing.T) {
	root := makeExport(t)
	logFile := filepath.Join(root, "general", "2022-07-29.json")

	got, err := Resolve(logFile, ModeSingle, acceptAll(), zap.NewNop())
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	logs := got.ChannelLogs["general"]
	if len(logs) != 1 || logs[0] != logFile {
		t.Errorf("logs: got %v, want [%s]", logs, logFile)
	}
}

func TestResolve_SingleFileWrongExtension(t *testing.T) {
	root := makeExport(t)
	notes := filepath.Join(root, "random", "notes.txt")

	_, err := Resolve(notes, ModeSingle, acceptAll(), zap.NewNop())
	if err == nil {
		t.Fatal("expected error for non-json file argument")
	}
}

func TestResolve_ForceAcceptDeclined(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "chat", "2022-07-29.json"), "[]")

	_, err := Resolve(dir, ModeTree, declineAll(), zap.NewNop())
	if !errors.Is(err, ErrAborted) {
		t.Errorf("error: got %v, want ErrAborted", err)
	}
}

func TestResolve_ForceAcceptAccepted(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "chat", "2022-07-29.json"), "[]")

	got, err := Resolve(dir, ModeTree, acceptAll(), zap.NewNop())
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	if len(got.RootFiles) != 0 {
		t.Errorf("RootFiles: got %v, want none", got.RootFiles)
	}
	if len(got.ChannelLogs["chat"]) != 1 {
		t.Errorf("chat logs: got %d, want 1", len(got.ChannelLogs["chat"]))
	}
}

func TestResolve_MissingRootFileDeclined(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, UsersFile), "[]")
	writeFile(t, filepath.Join(root, "general", "2022-07-29.json"), "[]")

	prompter := &fakePrompter{confirm: func(q string) bool {
		return !strings.Contains(q, ChannelsFile)
	}}

	_, err := Resolve(root, ModeTree, prompter, zap.NewNop())
	if !errors.Is(err, ErrAborted) {
		t.Errorf("error: got %v, want ErrAborted", err)
	}
}

func TestResolve_NoLogs(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, UsersFile), "[]")

	_, err := Resolve(root, ModeTree, acceptAll(), zap.NewNop())
	if err == nil {
		t.Fatal("expected error when no channel logs exist")
	}
}

func TestRoot_Channels_Sorted(t *testing.T) {
	r := &Root{ChannelLogs: map[string][]string{
		"zulu":  {"z.json"},
		"alpha": {"a.json"},
		"mike":  {"m.json"},
	}}

	got := r.Channels()
	want := []string{"alpha", "mike", "zulu"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Channels(): got %v, want %v", got, want)
		}
	}
}

func TestRoot_Merge(t *testing.T) {
	a := &Root{
		RootFiles:   map[string]string{UsersFile: "/a/users.json"},
		ChannelLogs: map[string][]string{"general": {"/a/general/1.json"}},
	}
	b := &Root{
		RootFiles: map[string]string{
			UsersFile:    "/b/users.json",
			ChannelsFile: "/b/channels.json",
		},
		ChannelLogs: map[string][]string{
			"general": {"/b/general/2.json"},
			"random":  {"/b/random/1.json"},
		},
	}

	a.Merge(b)

	if a.RootFiles[UsersFile] != "/a/users.json" {
		t.Errorf("users file: got %q, want the original to win", a.RootFiles[UsersFile])
	}
	if a.RootFiles[ChannelsFile] != "/b/channels.json" {
		t.Errorf("channels file: got %q, want merged value", a.RootFiles[ChannelsFile])
	}
	if len(a.ChannelLogs["general"]) != 2 {
		t.Errorf("general logs: got %d, want 2", len(a.ChannelLogs["general"]))
	}
	if len(a.ChannelLogs["random"]) != 1 {
		t.Errorf("random logs: got %d, want 1", len(a.ChannelLogs["random"]))
	}
}

func TestReadChannelFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "2022-07-29.json")
	writeFile(t, path, `[
		{
			"client_msg_id": "abc-123",
			"type": "message",
			"user": "U038XMVFLQ0",
			"text": "hello world",
			"ts": "1659116022.000100",
			"thread_ts": "1659116022.000100"
		},
		{
			"type": "message",
			"subtype": "channel_join",
			"user": "U038XMVFLQ0",
			"text": "<@U038XMVFLQ0> has joined the channel",
			"ts": "1659116001.000000"
		}
	]`)

	msgs, err := ReadChannelFile(path)
	if err != nil {
		t.Fatalf("ReadChannelFile failed: %v", err)
	}

	if len(msgs) != 2 {
		t.Fatalf("messages: got %d, want 2", len(msgs))
	}

	first := msgs[0]
	if first.ClientMsgID != "abc-123" {
		t.Errorf("ClientMsgID: got %q, want %q", first.ClientMsgID, "abc-123")
	}
	if first.User != "U038XMVFLQ0" {
		t.Errorf("User: got %q, want %q", first.User, "U038XMVFLQ0")
	}
	if first.Timestamp != "1659116022.000100" {
		t.Errorf("Timestamp: got %q, want %q", first.Timestamp, "1659116022.000100")
	}
	if first.ThreadTimestamp != "1659116022.000100" {
		t.Errorf("ThreadTimestamp: got %q, want %q", first.ThreadTimestamp, "1659116022.000100")
	}

	if msgs[1].SubType != "channel_join" {
		t.Errorf("SubType: got %q, want %q", msgs[1].SubType, "channel_join")
	}
}

func TestReadChannelFile_Malformed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	writeFile(t, path, `{"not": "an array"`)

	if _, err := ReadChannelFile(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestReadChannelFile_Missing(t *testing.T) {
	if _, err := ReadChannelFile(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
