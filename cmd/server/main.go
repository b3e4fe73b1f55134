package main

import (
	"flag"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gorilla/handlers"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"

	"sixmax-holdem/internal/config"
	"sixmax-holdem/internal/mux"
	"sixmax-holdem/internal/store"
	"sixmax-holdem/pkg/holdem"
)

const readTimeout = time.Second * 5
const writeTimeout = time.Second * 10

// Version is the server version
var Version = "v0.0.0-dev"

var addr = flag.String("addr", "", "the listen address (defaults to the configured value)")

func main() {
	flag.Parse()
	setupLogger()

	cfg := config.Instance()

	snapshots, err := store.New(logrus.StandardLogger(), cfg.DataDir)
	if err != nil {
		logrus.WithError(err).Fatal("could not open snapshot store")
	}

	opts := holdem.DefaultOptions()
	if cfg.Game.StartingChips > 0 {
		opts.StartingChips = cfg.Game.StartingChips
	}
	if cfg.Game.SmallBlind > 0 && cfg.Game.BigBlind >= cfg.Game.SmallBlind {
		opts.SmallBlind = cfg.Game.SmallBlind
		opts.BigBlind = cfg.Game.BigBlind
	}
	if holdem.ValidTurnSeconds(cfg.Game.TurnSeconds) {
		opts.TurnSeconds = cfg.Game.TurnSeconds
	}

	listenAddr := cfg.ListenAddr
	if *addr != "" {
		listenAddr = *addr
	}

	c := cors.New(cors.Options{
		AllowedHeaders: []string{"Origin", "Accept", "Content-Type", "X-Requested-With"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
	})

	srv := &http.Server{
		Addr:         listenAddr,
		Handler:      loggingHandler(c.Handler(mux.NewMux(Version, snapshots, opts))),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	logrus.WithField("addr", srv.Addr).Info("listening")
	logrus.Fatal(srv.ListenAndServe())
}

func loggingHandler(next http.Handler) http.Handler {
	if config.Instance().Log.DisableAccessLogs {
		return next
	}

	return handlers.CombinedLoggingHandler(os.Stdout, next)
}

func setupLogger() {
	if lvl := config.Instance().Log.Level; lvl != "" {
		level, err := logrus.ParseLevel(lvl)
		if err != nil {
			logrus.WithError(err).Fatal("could not parse level")
		}

		logrus.SetLevel(level)
	}

	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
}
