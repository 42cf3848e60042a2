// Package export locates the root of a Slack workspace export and
// enumerates its channel log files.
package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/slack-go/slack"
	"go.uber.org/zap"
)

// Mode selects how channel logs are discovered under the target path.
type Mode int

const (
	// ModeTree treats each immediate subdirectory of the target path as one
	// channel holding that channel's log files.
	ModeTree Mode = iota
	// ModeSingle treats the target path itself (or, for a file argument, the
	// file's parent directory) as one channel.
	ModeSingle
)

// File names Slack writes at the top of a workspace export, plus the
// operator-authored identity mapping table.
const (
	UsersFile       = "users.json"
	ChannelsFile    = "channels.json"
	IntegrationFile = "integration_logs.json"
	MappingFile     = "slack2discord_users.json"
)

// slackRootFiles mark a directory as an export root. The mapping file does
// not count: the operator writes it and it may not exist yet.
var slackRootFiles = []string{UsersFile, ChannelsFile, IntegrationFile}

var rootFiles = []string{UsersFile, ChannelsFile, IntegrationFile, MappingFile}

// ErrAborted is returned when the operator declines a confirmation prompt
// during resolution.
var ErrAborted = errors.New("import aborted")

// Prompter asks the operator yes/no questions during resolution.
type Prompter interface {
	Confirm(question string) bool
}

// Root describes a resolved export: where the root files live and which log
// files belong to each channel.
type Root struct {
	Path        string
	RootFiles   map[string]string   // file name -> path, present files only
	ChannelLogs map[string][]string // channel name -> sorted log file paths
}

// Resolve locates the export root for path and enumerates channel log files
// according to mode. It returns ErrAborted when the operator declines to
// continue past an unverified root or a missing root file, and an error when
// no log files are found at all.
func Resolve(path string, mode Mode, prompter Prompter, logger *zap.Logger) (*Root, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	dir := path
	singleFile := ""
	if !fi.IsDir() {
		if filepath.Ext(path) != ".json" {
			return nil, fmt.Errorf("%s is neither a directory nor a .json log file", path)
		}
		singleFile = path
		dir = filepath.Dir(path)
	}

	rootDir, err := findRoot(dir, prompter, logger)
	if err != nil {
		return nil, err
	}

	root := &Root{
		Path:        rootDir,
		RootFiles:   make(map[string]string),
		ChannelLogs: make(map[string][]string),
	}

	for _, name := range rootFiles {
		p := filepath.Join(rootDir, name)
		if _, err := os.Stat(p); err != nil {
			logger.Warn("Root file not found, its feature will be degraded",
				zap.String("file", name),
				zap.String("root", rootDir))
			if !prompter.Confirm(fmt.Sprintf("Root file %s is missing. Ignore and continue?", name)) {
				return nil, ErrAborted
			}
			continue
		}
		root.RootFiles[name] = p
	}

	switch mode {
	case ModeSingle:
		root.ChannelLogs, err = singleChannelLogs(dir, singleFile)
	default:
		root.ChannelLogs, err = treeChannelLogs(dir)
	}
	if err != nil {
		return nil, err
	}

	if len(root.ChannelLogs) == 0 {
		return nil, fmt.Errorf("no channel log files found under %s", path)
	}

	logger.Info("Resolved export root",
		zap.String("root", rootDir),
		zap.Int("channels", len(root.ChannelLogs)))

	return root, nil
}

// findRoot checks dir and then one parent directory up for Slack-authored
// root files, falling back to an operator confirmation when neither has
// them.
func findRoot(dir string, prompter Prompter, logger *zap.Logger) (string, error) {
	for _, candidate := range []string{dir, filepath.Dir(dir)} {
		if hasSlackRootFile(candidate) {
			return candidate, nil
		}
	}

	logger.Warn("No Slack export root files found near path", zap.String("path", dir))
	if !prompter.Confirm(fmt.Sprintf("%s does not look like a Slack export. Use it as the root anyway?", dir)) {
		return "", ErrAborted
	}
	return dir, nil
}

func hasSlackRootFile(dir string) bool {
	for _, name := range slackRootFiles {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			return true
		}
	}
	return false
}

func treeChannelLogs(dir string) (map[string][]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", dir, err)
	}

	logs := make(map[string][]string)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		files, err := channelFiles(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		if len(files) > 0 {
			logs[entry.Name()] = files
		}
	}
	return logs, nil
}

func singleChannelLogs(dir, file string) (map[string][]string, error) {
	name := filepath.Base(filepath.Clean(dir))
	if file != "" {
		return map[string][]string{name: {file}}, nil
	}

	files, err := channelFiles(dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return map[string][]string{}, nil
	}
	return map[string][]string{name: files}, nil
}

// channelFiles lists the .json files directly inside dir, sorted lexically
// so files named by date replay in order.
func channelFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// Channels returns the channel names in sorted order for deterministic runs.
func (r *Root) Channels() []string {
	names := make([]string, 0, len(r.ChannelLogs))
	for name := range r.ChannelLogs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Merge folds another resolved root into r. Root files already present in r
// win; log lists for the same channel name are appended in order.
func (r *Root) Merge(other *Root) {
	for name, p := range other.RootFiles {
		if _, ok := r.RootFiles[name]; !ok {
			r.RootFiles[name] = p
		}
	}
	for ch, files := range other.ChannelLogs {
		r.ChannelLogs[ch] = append(r.ChannelLogs[ch], files...)
	}
}

// ReadChannelFile parses one channel log file into Slack messages.
func ReadChannelFile(path string) ([]slack.Msg, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read log file: %w", err)
	}

	var msgs []slack.Msg
	if err := json.Unmarshal(data, &msgs); err != nil {
		return nil, fmt.Errorf("failed to parse log file: %w", err)
	}
	return msgs, nil
}
