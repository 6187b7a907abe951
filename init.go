package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/phobologic/namecheck/internal/config"
	"github.com/phobologic/namecheck/internal/convention"
)

const (
	sentinelStart = "# namecheck:start"
	sentinelEnd   = "# namecheck:end"
)

// newInitCmd implements the `namecheck init` subcommand, which writes (or
// updates) the default settings block in a .namecheck.toml file.
func newInitCmd(stdout, stderr io.Writer) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "init [path-to-config]",
		Short: "Write default settings to a " + config.FileName + " file",
		Long: `Write the default namecheck settings to a config file. The block is wrapped
in sentinel comments so it can be updated in place on subsequent runs without
touching surrounding content. Creates the file if it does not exist.

path-to-config defaults to ./` + config.FileName + `.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// --dry-run with no path: just print the section itself.
			if dryRun && len(args) == 0 {
				_, _ = fmt.Fprintln(stdout, generateSection(nil))
				return nil
			}

			path := config.FileName
			if len(args) > 0 {
				path = args[0]
			}

			existing, _ := os.ReadFile(path)
			defined, err := definedKeys(string(existing))
			if err != nil {
				return fmt.Errorf("%s: failed to parse TOML: %w", path, err)
			}
			updated := applySection(string(existing), generateSection(defined))

			if dryRun {
				_, _ = fmt.Fprint(stdout, updated)
				return nil
			}

			if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", path, err)
			}

			_, _ = fmt.Fprintf(stderr, "wrote namecheck settings to %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print what would be written without modifying the file")
	return cmd
}

// generateSection returns the full sentinel-wrapped settings block. Keys in
// defined are already set outside the block and are written commented out.
func generateSection(defined map[string]struct{}) string {
	def := config.Default()
	setting := func(key, value string) string {
		if _, ok := defined[key]; ok {
			return "# " + key + " = " + value + " (set outside this block)"
		}
		return key + " = " + value
	}
	body := fmt.Sprintf(`# Output format: %s
%s

# Files larger than this many bytes are skipped.
%s

# gitignore-style patterns, relative to the checked root, to leave unchecked.
%s

# Declaration kinds to leave unchecked. Known kinds:
# %s
%s`,
		strings.Join(config.Formats, ", "),
		setting("format", strconv.Quote(def.Format)),
		setting("max_file_size", strconv.Itoa(def.MaxFileSize)),
		setting("exclude", "[]"),
		strings.Join(convention.Labels(), ", "),
		setting("disable", "[]"))

	return sentinelStart + "\n" + body + "\n" + sentinelEnd
}

// definedKeys returns the top-level keys content sets outside its sentinel
// block.
func definedKeys(content string) (map[string]struct{}, error) {
	if start, end := strings.Index(content, sentinelStart), strings.Index(content, sentinelEnd); start >= 0 && end > start {
		content = content[:start] + content[end+len(sentinelEnd):]
	}
	var table map[string]any
	if _, err := toml.Decode(content, &table); err != nil {
		return nil, err
	}
	keys := make(map[string]struct{}, len(table))
	for k := range table {
		keys[k] = struct{}{}
	}
	return keys, nil
}

// applySection inserts section into content, replacing an existing sentinel
// block if present or appending if not. It is a pure function for easy testing.
func applySection(content, section string) string {
	start := strings.Index(content, sentinelStart)
	end := strings.Index(content, sentinelEnd)

	if start >= 0 && end > start {
		return content[:start] + section + content[end+len(sentinelEnd):]
	}

	// Append, ensuring a blank line separator.
	if len(content) > 0 && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	if len(content) == 0 {
		return section + "\n"
	}
	return content + "\n" + section + "\n"
}
