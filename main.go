// namecheck reports C# identifiers that do not follow naming conventions.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/phobologic/namecheck/internal/cache"
	"github.com/phobologic/namecheck/internal/config"
	"github.com/phobologic/namecheck/internal/convention"
	"github.com/phobologic/namecheck/internal/discover"
	"github.com/phobologic/namecheck/internal/fix"
	"github.com/phobologic/namecheck/internal/model"
	"github.com/phobologic/namecheck/internal/ranking"
	"github.com/phobologic/namecheck/internal/report"
	"github.com/phobologic/namecheck/internal/toon"
)

var version = "dev"

// errFindings signals a successful run that reported findings.
var errFindings = errors.New("naming convention findings reported")

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, errFindings) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	root := newRootCmd(stdout, stderr)
	root.SetArgs(args)
	return root.ExecuteContext(context.Background())
}

type checkOptions struct {
	format      string
	maxFiles    int
	kinds       []string
	file        string
	cachePath   string
	maxFileSize int
	configPath  string
	color       string
	verbose     bool
	fix         bool
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var opts checkOptions

	cmd := &cobra.Command{
		Use:   "namecheck [path]",
		Short: "Check C# identifiers against naming conventions",
		Long: `namecheck walks a directory of C# sources and reports every declared
identifier that does not follow the naming convention of its declaration
kind: UpperCamelCase for types, methods, properties and non-private fields,
lowerCamelCase for locals and parameters, _lowerCamelCase for private fields
and an I prefix for interfaces.`,
		Args:          cobra.MaximumNArgs(1),
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) > 0 {
				root = args[0]
			}
			return runCheck(cmd, root, opts, stdout, stderr)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetVersionTemplate("namecheck {{.Version}}\n")

	f := cmd.Flags()
	f.StringVar(&opts.format, "format", "", "output format: text or toon (default from config, else text)")
	f.IntVarP(&opts.maxFiles, "max-files", "n", 0, "only report the N files with most findings")
	f.StringSliceVarP(&opts.kinds, "kind", "k", nil, "only report these declaration kinds ("+strings.Join(convention.Labels(), ",")+")")
	f.StringVar(&opts.file, "file", "", "only report files whose path contains this substring")
	f.StringVar(&opts.cachePath, "cache", "", "findings cache file path")
	f.IntVar(&opts.maxFileSize, "max-file-size", 0, "skip files larger than this many bytes (default from config)")
	f.StringVar(&opts.configPath, "config", "", "config file (default <path>/"+config.FileName+")")
	f.StringVar(&opts.color, "color", "auto", "colorize output (auto|on|off)")
	f.BoolVar(&opts.verbose, "verbose", false, "log debug information to stderr")
	f.BoolVar(&opts.fix, "fix", false, "rename offending declarations in place")

	cmd.AddCommand(newInitCmd(stdout, stderr))
	cmd.AddCommand(newRenameCmd(stdout, stderr))
	return cmd
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func runCheck(cmd *cobra.Command, root string, opts checkOptions, stdout, stderr io.Writer) error {
	logger := newLogger(stderr, opts.verbose)

	root, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("resolving root: %w", err)
	}

	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("root path: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s: not a directory", root)
	}

	cfg, err := loadConfig(cmd, root, opts)
	if err != nil {
		return err
	}

	kinds, err := selectKinds(cfg, opts.kinds)
	if err != nil {
		return err
	}

	useColor, err := colorEnabled(opts.color, stdout)
	if err != nil {
		return err
	}

	// Discover files
	files, err := discover.Files(root, cfg.Exclude)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no C# files found")
	}
	logger.Debug("discovered files", "root", root, "count", len(files))

	// Filter by size
	files = filterBySize(root, files, cfg.MaxFileSize, logger)
	if len(files) == 0 {
		return fmt.Errorf("no C# files found (all exceeded size limit)")
	}

	var fc *cache.Cache
	if opts.cachePath != "" {
		fc, err = cache.Open(opts.cachePath)
		if err != nil {
			return err
		}
	}

	// Check files concurrently
	fileReports, err := checkFilesConcurrent(cmd.Context(), root, files, fc, logger)
	if err != nil {
		return err
	}

	if fc != nil {
		paths := make([]string, len(files))
		for i, f := range files {
			paths[i] = f.Path
		}
		fc.Prune(paths)
		if err := fc.Save(); err != nil {
			logger.Warn("cache not written", "path", opts.cachePath, "err", err)
		}
	}

	rep := &model.Report{
		Root:    filepath.Base(root),
		Checked: len(fileReports),
		Files:   fileReports,
	}
	rep = ranking.DropEmpty(ranking.FilterByKind(rep, kinds))
	rep = ranking.FilterByFile(rep, opts.file)
	rep = ranking.SelectFiles(rep, opts.maxFiles)

	if opts.fix {
		return applyFixes(root, rep, stdout, logger, report.Options{Color: useColor})
	}

	switch cfg.Format {
	case "toon":
		_, _ = fmt.Fprintln(stdout, toon.Encode(rep))
	default:
		if err := report.Text(stdout, rep, report.Options{Color: useColor}); err != nil {
			return err
		}
	}

	if rep.Count() > 0 {
		return errFindings
	}
	return nil
}

func loadConfig(cmd *cobra.Command, root string, opts checkOptions) (config.Config, error) {
	var (
		cfg config.Config
		err error
	)
	if opts.configPath != "" {
		cfg, err = config.Load(opts.configPath)
	} else {
		cfg, _, err = config.Find(root)
	}
	if err != nil {
		return config.Config{}, fmt.Errorf("loading config: %w", err)
	}

	if cmd.Flags().Changed("format") {
		cfg.Format = opts.format
	}
	if cmd.Flags().Changed("max-file-size") {
		cfg.MaxFileSize = opts.maxFileSize
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// selectKinds intersects the kinds enabled by cfg with the requested ones.
func selectKinds(cfg config.Config, requested []string) ([]string, error) {
	enabled := cfg.Enabled()
	if len(enabled) == 0 {
		return nil, fmt.Errorf("all kinds are disabled by config")
	}
	if len(requested) == 0 {
		return enabled, nil
	}
	on := make(map[string]struct{}, len(enabled))
	for _, k := range enabled {
		on[k] = struct{}{}
	}
	var kinds []string
	for _, k := range requested {
		k = strings.ToLower(strings.TrimSpace(k))
		if _, ok := convention.ParseKind(k); !ok {
			return nil, fmt.Errorf("unsupported kind %q", k)
		}
		if _, ok := on[k]; ok {
			kinds = append(kinds, k)
		}
	}
	if len(kinds) == 0 {
		return nil, fmt.Errorf("all requested kinds are disabled by config")
	}
	return kinds, nil
}

func colorEnabled(mode string, stdout io.Writer) (bool, error) {
	switch mode {
	case "on":
		return true, nil
	case "off":
		return false, nil
	case "auto":
		f, ok := stdout.(*os.File)
		return ok && term.IsTerminal(int(f.Fd())) && os.Getenv("NO_COLOR") == "", nil
	default:
		return false, fmt.Errorf("invalid --color %q (want auto, on or off)", mode)
	}
}

func filterBySize(root string, files []discover.FileEntry, maxSize int, logger *slog.Logger) []discover.FileEntry {
	var kept []discover.FileEntry
	for _, f := range files {
		fi, err := os.Stat(filepath.Join(root, f.Path))
		if err != nil {
			kept = append(kept, f) // keep if can't stat
			continue
		}
		if fi.Size() > int64(maxSize) {
			logger.Warn("file skipped", "path", f.Path, "size", fi.Size(), "limit", maxSize)
			continue
		}
		kept = append(kept, f)
	}
	return kept
}

func applyFixes(root string, rep *model.Report, stdout io.Writer, logger *slog.Logger, opts report.Options) error {
	skipped := 0
	for i := range rep.Files {
		fr := &rep.Files[i]
		path := filepath.Join(root, fr.Path)
		source, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", fr.Path, err)
		}
		res, err := fix.Apply(source, fr.Findings)
		for _, s := range res.Skipped {
			logger.Warn("rename skipped", "path", fr.Path, "line", s.Finding.Location.Line, "identifier", s.Finding.Original, "err", s.Err)
		}
		skipped += len(res.Skipped)
		if errors.Is(err, fix.ErrNoFindings) {
			continue
		}
		if err != nil {
			return err
		}
		if err := writeFilePreservingMode(path, res.Source); err != nil {
			return err
		}
		if err := report.Applied(stdout, fr.Path, res.Applied, opts); err != nil {
			return err
		}
	}
	if skipped > 0 {
		return errFindings
	}
	return nil
}

func writeFilePreservingMode(path string, data []byte) error {
	mode := os.FileMode(0o644)
	if fi, err := os.Stat(path); err == nil {
		mode = fi.Mode().Perm()
	}
	if err := os.WriteFile(path, data, mode); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
