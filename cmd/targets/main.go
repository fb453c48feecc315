// Command targets inspects the launcher's record stores. By default it loads
// the launch-target store and prints one target name per line.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/prometheus/common/expfmt"

	"github.com/dd0wney/cluso-launcher/pkg/config"
	"github.com/dd0wney/cluso-launcher/pkg/flatstore"
	"github.com/dd0wney/cluso-launcher/pkg/logging"
	"github.com/dd0wney/cluso-launcher/pkg/metrics"
	"github.com/dd0wney/cluso-launcher/pkg/records"
)

const (
	exitOK       = 0
	exitNotFound = 1
	exitFailure  = 2
)

var errNotFound = errors.New("not found")

type cliOptions struct {
	configPath  string
	storePath   string
	paths       bool
	name        string
	match       string
	target      string
	rom         string
	tui         bool
	showMetrics bool
	logLevel    string
	reset       bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("targets", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var opts cliOptions
	fs.StringVar(&opts.configPath, "config", "", "Config file (default $LAUNCHER_HOME/config.json)")
	fs.StringVar(&opts.storePath, "store", "", "Store file, overriding the config")
	fs.BoolVar(&opts.paths, "paths", false, "Inspect the path-signature store instead of the targets")
	fs.StringVar(&opts.name, "name", "", "Print the first target whose name contains this text")
	fs.StringVar(&opts.match, "match", "", "Print every target whose name matches this glob")
	fs.StringVar(&opts.target, "target", "", "Print the first target with this target signature")
	fs.StringVar(&opts.rom, "rom", "", "Print the first target with this ROM signature")
	fs.BoolVar(&opts.tui, "tui", false, "Browse targets interactively")
	fs.BoolVar(&opts.showMetrics, "metrics", false, "Print store metrics after the command")
	fs.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.BoolVar(&opts.reset, "reset", false, "Replace the selected store with an empty one")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitFailure
	}

	cfg, err := config.Resolve(opts.configPath)
	if err != nil {
		fmt.Fprintf(stderr, "targets: %v\n", err)
		return exitFailure
	}

	level := opts.logLevel
	if level == "" {
		level = os.Getenv("LOG_LEVEL")
	}
	if level == "" {
		level = cfg.LogLevel
	}
	logger := logging.NewJSONLogger(stderr, logging.ParseLevel(level)).
		With(logging.Component("targets"), logging.RunID(uuid.NewString()))

	reg := metrics.NewRegistry()
	storeOpts := []flatstore.Option{
		flatstore.WithLogger(logger),
		flatstore.WithMetrics(reg),
		flatstore.WithMaxBytes(cfg.MaxStoreBytes),
	}

	path := opts.storePath
	if path == "" {
		path = cfg.TargetStorePath()
		if opts.paths {
			path = cfg.PathStorePath()
		}
	}

	switch {
	case opts.reset:
		err = flatstore.Reset(path)
		if err == nil {
			logger.Info("store reset", logging.Path(path))
			fmt.Fprintf(stdout, "reset %s\n", path)
		}
	case opts.paths:
		err = listPaths(stdout, path, storeOpts)
	default:
		err = inspectTargets(stdout, path, opts, storeOpts)
	}

	if opts.showMetrics {
		if merr := writeMetrics(stdout, reg); merr != nil {
			fmt.Fprintf(stderr, "targets: %v\n", merr)
		}
	}

	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, errNotFound):
		fmt.Fprintln(stderr, "not found")
		return exitNotFound
	default:
		fmt.Fprintf(stderr, "targets: %v\n", err)
		if flatstore.IsCorrupt(err) {
			fmt.Fprintf(stderr, "targets: the store is damaged; run targets%s -reset to replace it with an empty store\n", resetHint(opts))
		}
		return exitFailure
	}
}

// resetHint repeats the flags that selected the damaged store.
func resetHint(opts cliOptions) string {
	hint := ""
	if opts.configPath != "" {
		hint += " -config " + opts.configPath
	}
	if opts.storePath != "" {
		hint += " -store " + opts.storePath
	} else if opts.paths {
		hint += " -paths"
	}
	return hint
}

func inspectTargets(w io.Writer, path string, opts cliOptions, storeOpts []flatstore.Option) error {
	store, err := records.OpenTargets(path, storeOpts...)
	if err != nil {
		return err
	}
	defer store.Close()

	switch {
	case opts.tui:
		return browse(store.Records())
	case opts.name != "":
		idx, ok := records.FindByName(store, opts.name)
		return printOne(w, store, idx, ok)
	case opts.target != "":
		return findBySignature(w, store, records.TargetKind, opts.target)
	case opts.rom != "":
		return findBySignature(w, store, records.RomKind, opts.rom)
	case opts.match != "":
		matches, err := records.MatchNames(store, opts.match)
		if err != nil {
			return err
		}
		for _, idx := range matches {
			fmt.Fprintln(w, store.Records()[idx].Name)
		}
		return nil
	default:
		for _, t := range store.Records() {
			fmt.Fprintln(w, t.Name)
		}
		return nil
	}
}

func findBySignature(w io.Writer, store *records.TargetStore, kind records.SignatureKind, raw string) error {
	sig, err := records.ParseSignature(raw)
	if err != nil {
		return err
	}
	idx, ok := records.FindBySignature(store, kind, sig)
	return printOne(w, store, idx, ok)
}

func printOne(w io.Writer, store *records.TargetStore, idx int, ok bool) error {
	if !ok {
		return errNotFound
	}
	t, err := store.Get(idx)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
		t.Name, t.Platform, t.TargetSignature, t.RomSignature, t.FileName, t.Path)
	return nil
}

func listPaths(w io.Writer, path string, storeOpts []flatstore.Option) error {
	store, err := records.OpenPaths(path, storeOpts...)
	if err != nil {
		return err
	}
	defer store.Close()

	for _, p := range store.Records() {
		fmt.Fprintf(w, "%s %s\n", p.Signature, p.ContentsHash)
	}
	return nil
}

func writeMetrics(w io.Writer, reg *metrics.Registry) error {
	families, err := reg.GetPrometheusRegistry().Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
	}
	return nil
}
