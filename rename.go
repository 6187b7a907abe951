package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/phobologic/namecheck/internal/fix"
	"github.com/phobologic/namecheck/internal/lang"
	"github.com/phobologic/namecheck/internal/model"
	"github.com/phobologic/namecheck/internal/report"
)

// newRenameCmd implements `namecheck rename <file> <line:col>`, which fixes
// the single declared identifier at a source position.
func newRenameCmd(stdout, stderr io.Writer) *cobra.Command {
	var (
		dryRun bool
		color  string
	)

	cmd := &cobra.Command{
		Use:   "rename <file> <line:col>",
		Short: "Rename the declared identifier at a position to its convention",
		Long: `Rename the identifier declared at line:col (both 1-based, column in bytes)
to the naming convention of its declaration. Only the declaration itself is
rewritten; references to the identifier elsewhere are left alone.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			line, col, err := parsePosition(args[1])
			if err != nil {
				return err
			}

			name := lang.ForExtension(filepath.Ext(path))
			if name == "" {
				return fmt.Errorf("%s: unsupported file type", path)
			}
			l := lang.Languages[name]

			source, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("reading %s: %w", path, err)
			}
			offset, err := fix.Offset(source, line, col)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			f, err := fix.RenameAt(cmd.Context(), l, source, path, offset)
			if errors.Is(err, fix.ErrConforming) {
				_, _ = fmt.Fprintf(stderr, "%s:%d:%d: %s %s already follows naming conventions\n",
					path, f.Location.Line, f.Location.Column, f.Kind, f.Original)
				return nil
			}
			if err != nil {
				return fmt.Errorf("%s:%d:%d: %w", path, line, col, err)
			}

			res, err := fix.Apply(source, []model.Finding{f})
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			useColor, err := colorEnabled(color, stdout)
			if err != nil {
				return err
			}

			if dryRun {
				_, _ = stdout.Write(res.Source)
				return nil
			}
			if err := writeFilePreservingMode(path, res.Source); err != nil {
				return err
			}
			return report.Applied(stdout, path, res.Applied, report.Options{Color: useColor})
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the rewritten file instead of writing it")
	cmd.Flags().StringVar(&color, "color", "auto", "colorize output (auto|on|off)")
	return cmd
}

// parsePosition parses "line:col".
func parsePosition(s string) (line, col int, err error) {
	l, c, ok := strings.Cut(s, ":")
	if !ok {
		return 0, 0, fmt.Errorf("invalid position %q (want line:col)", s)
	}
	if line, err = strconv.Atoi(l); err != nil {
		return 0, 0, fmt.Errorf("invalid line in %q: %w", s, err)
	}
	if col, err = strconv.Atoi(c); err != nil {
		return 0, 0, fmt.Errorf("invalid column in %q: %w", s, err)
	}
	return line, col, nil
}
