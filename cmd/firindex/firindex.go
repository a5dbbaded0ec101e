package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/pcj/mobyprogress"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/stackb/fir-resolve/pkg/collections"
	"github.com/stackb/fir-resolve/pkg/indexconfig"
	"github.com/stackb/fir-resolve/pkg/indexer"
	"github.com/stackb/fir-resolve/pkg/logger"
	"github.com/stackb/fir-resolve/pkg/report"
	"github.com/stackb/fir-resolve/pkg/scopes"
	"github.com/stackb/fir-resolve/pkg/watch"
)

type config struct {
	configFile  string
	root        string
	query       string
	position    string
	dump        bool
	watch       bool
	progress    bool
	metricsAddr string
	logLevel    string
	icLog       string
	files       []string
}

func main() {
	log.SetPrefix("firindex: ")
	log.SetFlags(0) // don't print timestamps

	cfg, err := parseFlags(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Fatal(err)
	}
}

func parseFlags(args []string) (*config, error) {
	cfg := new(config)

	fs := flag.NewFlagSet("firindex", flag.ExitOnError)
	fs.StringVar(&cfg.configFile, "config", "", "optional path to a firindex.toml file")
	fs.StringVar(&cfg.root, "root", "", "directory to collect tree files from (overrides index.root)")
	fs.StringVar(&cfg.query, "query", "", "classifier or member to look up, e.g. com/example/Greeter or com/example/Greeter#greet")
	fs.StringVar(&cfg.position, "position", "", "resolution position of a member query: type, value, call")
	fs.BoolVar(&cfg.dump, "dump", false, "dump resolved symbols in full")
	fs.BoolVar(&cfg.watch, "watch", false, "keep running and re-index changed files (overrides watch.enabled)")
	fs.BoolVar(&cfg.progress, "progress", false, "write indexing progress to stderr")
	fs.StringVar(&cfg.metricsAddr, "metrics_addr", "", "serve prometheus metrics on this address (overrides metrics.addr)")
	fs.StringVar(&cfg.logLevel, "log_level", "", "log level (overrides log.level)")
	fs.StringVar(&cfg.icLog, "ic_log", "", "write the accumulated indexing report to this file after every index pass")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: firindex [flags] [FILE...]\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	cfg.files = fs.Args()

	return cfg, nil
}

func loadConfig(cfg *config) (*indexconfig.Config, error) {
	c := indexconfig.Default()
	if cfg.configFile != "" {
		loaded, err := indexconfig.Load(cfg.configFile)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", cfg.configFile, err)
		}
		c = loaded
	}
	if err := c.ApplyEnv(); err != nil {
		return nil, err
	}
	if cfg.root != "" {
		c.Index.Root = cfg.root
	}
	if cfg.watch {
		c.Watch.Enabled = true
	}
	if cfg.metricsAddr != "" {
		c.Metrics.Addr = cfg.metricsAddr
	}
	if cfg.logLevel != "" {
		c.Log.Level = cfg.logLevel
	}
	return c, nil
}

func run(ctx context.Context, cfg *config) error {
	c, err := loadConfig(cfg)
	if err != nil {
		return err
	}

	lg, err := logger.New(os.Stderr, c.Log.Level, c.Log.Format)
	if err != nil {
		return err
	}

	position, err := scopes.ParsePosition(cfg.position)
	if err != nil {
		return err
	}

	if c.Metrics.Addr != "" {
		go serveMetrics(lg, c.Metrics.Addr)
	}

	root, err := filepath.Abs(c.Index.Root)
	if err != nil {
		return err
	}
	sinks := []report.Sink{report.NewLogSink(lg)}
	var icLog *report.BufferSink
	if cfg.icLog != "" {
		icLog = &report.BufferSink{}
		sinks = append(sinks, icLog)
	}

	options := []indexer.Option{
		indexer.WithLogger(lg),
		indexer.WithReporter(report.NewReporter(sinks...).RelativeTo(root)),
	}
	if cfg.progress {
		options = append(options, indexer.WithProgress(mobyprogress.NewProgressOutput(mobyprogress.NewOut(os.Stderr))))
	}
	session := indexer.NewSession(options...)

	filenames, err := inputFiles(c, cfg.files)
	if err != nil {
		return err
	}
	err = session.Load(ctx, filenames)
	if flushErr := flushICLog(cfg.icLog, icLog); flushErr != nil {
		lg.Error().Err(flushErr).Msg("writing indexing report")
	}
	if err != nil {
		return err
	}
	stats := session.Provider().Stats()
	lg.Info().
		Int("files", stats.Files).
		Int("packages", stats.Packages).
		Int("classifiers", stats.Classifiers).
		Int("callables", stats.Callables).
		Msg("indexed")

	q := &querier{out: os.Stdout, dump: cfg.dump, position: position}
	if cfg.query != "" {
		if err := q.run(session.Provider(), cfg.query); err != nil {
			return err
		}
	} else if !c.Watch.Enabled {
		q.summary(session.Provider())
	}

	if !c.Watch.Enabled {
		return nil
	}

	w, err := watch.NewWatcher(lg, c.Index.Root, c.Index.Include, c.Index.Exclude, c.Watch.Debounce, func(paths []string) {
		err := session.Update(ctx, paths)
		if flushErr := flushICLog(cfg.icLog, icLog); flushErr != nil {
			lg.Error().Err(flushErr).Msg("writing indexing report")
		}
		if err != nil {
			lg.Error().Err(err).Msg("update failed; keeping previous index")
			return
		}
		if cfg.query != "" {
			if err := q.run(session.Provider(), cfg.query); err != nil {
				lg.Error().Err(err).Msg("query failed")
			}
		}
	})
	if err != nil {
		return err
	}
	lg.Info().Str("root", c.Index.Root).Msg("watching for changes")
	return w.Run(ctx)
}

// inputFiles returns the explicit files if any, otherwise the files of the
// configured root matching the include and exclude patterns.  Paths are
// absolute so that they agree with the paths reported by the watcher.
func inputFiles(c *indexconfig.Config, explicit []string) ([]string, error) {
	if len(explicit) > 0 {
		filenames := make([]string, len(explicit))
		for i, filename := range explicit {
			abs, err := filepath.Abs(filename)
			if err != nil {
				return nil, err
			}
			filenames[i] = abs
		}
		return filenames, nil
	}
	root, err := filepath.Abs(c.Index.Root)
	if err != nil {
		return nil, err
	}
	rels, err := collections.CollectFiles(root, c.Index.Include, c.Index.Exclude)
	if err != nil {
		return nil, err
	}
	filenames := make([]string, len(rels))
	for i, rel := range rels {
		filenames[i] = filepath.Join(root, filepath.FromSlash(rel))
	}
	return filenames, nil
}

// flushICLog rewrites filename with everything sink accumulated so far.  It
// does nothing without a sink.
func flushICLog(filename string, sink *report.BufferSink) error {
	if sink == nil {
		return nil
	}
	return os.WriteFile(filename, []byte(sink.String()), 0o644)
}

func serveMetrics(lg zerolog.Logger, addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	lg.Info().Str("addr", addr).Msg("serving metrics")
	if err := http.ListenAndServe(addr, mux); err != nil && !errors.Is(err, http.ErrServerClosed) {
		lg.Error().Err(err).Msg("metrics server")
	}
}
