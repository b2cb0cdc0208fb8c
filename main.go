package main

import (
	"context"
	"errors"
	"expvar"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime/pprof"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/danielrcollins1/SolitaireSolver/automatic"
	"github.com/danielrcollins1/SolitaireSolver/config"
)

var GitVersion string

const (
	GracefulShutdownTimeout = 20 * time.Second

	histogramBins  = 15
	histogramWidth = 50
)

func setupLogging(debug bool) {
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	output.FormatLevel = func(i interface{}) string {
		return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
	}
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	logger := zerolog.New(output).Level(level).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &logger
	log.Logger = logger
	logger.Debug().Msg("Debug logging is on")
}

func serveMetrics(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/debug/vars", expvar.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("metrics server")
		}
	}()
	log.Info().Msgf("serving counters on %v/debug/vars", addr)
	return srv
}

func main() {
	cfg, err := config.Load(os.Args[1:])
	if errors.Is(err, pflag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	setupLogging(cfg.Debug)
	if GitVersion != "" {
		log.Info().Msgf("version %v", GitVersion)
	}

	if cfg.ProfilePath != "" {
		f, err := os.Create(cfg.ProfilePath)
		if err != nil {
			log.Fatal().Err(err).Msg("could not create CPU profile")
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal().Err(err).Msg("could not start CPU profile")
		}
		defer pprof.StopCPUProfile()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.MetricsAddr != "" {
		srv := serveMetrics(cfg.MetricsAddr)
		defer func() {
			sctx, cancel := context.WithTimeout(context.Background(), GracefulShutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(sctx); err != nil {
				log.Error().Msgf("HTTP server Shutdown: %v", err)
			}
		}()
	}

	p := message.NewPrinter(language.English)
	p.Printf("Number of games: %d\n", cfg.Games)

	results, err := automatic.RunSeries(ctx, cfg)
	for _, r := range results {
		fmt.Println(r.Summary())
		fmt.Println("  " + r.Details())
		if cfg.Histogram {
			if herr := r.WriteHistogram(os.Stdout, histogramBins, histogramWidth); herr != nil {
				log.Error().Err(herr).Msg("histogram")
			}
		}
	}
	if cfg.ReportPath != "" && len(results) > 0 {
		if rerr := automatic.WriteReportFile(cfg.ReportPath, results); rerr != nil {
			log.Error().Err(rerr).Msg("report")
		} else {
			log.Info().Msgf("wrote report to %v", cfg.ReportPath)
		}
	}
	if err != nil {
		if errors.Is(err, context.Canceled) {
			log.Info().Msg("got quit signal, results above are partial")
			return
		}
		log.Error().Err(err).Msg("series did not finish")
		os.Exit(1)
	}
}
