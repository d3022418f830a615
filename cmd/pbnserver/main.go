package main

import (
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/sfomuseum/go-flags/flagset"

	"github.com/setanarut/paintbynumbers/config"
	"github.com/setanarut/paintbynumbers/server"
)

func main() {
	var configPath string
	var listen string
	var debug bool
	var pretty bool

	fs := flagset.NewFlagSet("pbnserver")
	fs.StringVar(&configPath, "config", "", "Path to a JSON settings file.")
	fs.StringVar(&listen, "listen", "", "Listen address, overrides the configured one.")
	fs.BoolVar(&debug, "debug", false, "Enable debug logging.")
	fs.BoolVar(&pretty, "pretty", false, "Human readable console logs.")
	flagset.Parse(fs)

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	if pretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	settings, err := config.Load(configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load settings")
	}
	if listen != "" {
		settings.ListenAddr = listen
	}

	srv := &http.Server{
		Addr:              settings.ListenAddr,
		Handler:           server.New(settings).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	log.Info().Str("addr", settings.ListenAddr).Msg("listening")
	if err := srv.ListenAndServe(); err != nil {
		log.Fatal().Err(err).Msg("run server")
	}
}
