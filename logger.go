package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"sheep-server/session"
)

func init() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
}

func SetupLogger(level string, pretty bool) error {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return err
	}
	zerolog.SetGlobalLevel(lvl)
	if pretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	return nil
}

type ConnLogger struct {
	zerolog zerolog.Logger
}

func GetConnLogger(ip string, id session.ConnID) ConnLogger {
	return ConnLogger{log.With().Str("ip", ip).Str("conn", string(id)).Logger()}
}

func (l ConnLogger) Connected(clients int) {
	l.zerolog.Info().Int("clients", clients).Msg("Connected")
}

func (l ConnLogger) Disconnected() {
	l.zerolog.Info().Msg("Disconnected")
}

func (l ConnLogger) MalformedEvent(err error) {
	l.zerolog.Debug().Err(err).Msg("Skipping malformed event")
}

func (l ConnLogger) DroppedMessage() {
	l.zerolog.Warn().Msg("Message dropped - send buffer full")
}

func (l ConnLogger) EncodeFailed(event string, err error) {
	l.zerolog.Error().Err(err).Str("event", event).Msg("Error while encoding event")
}

func LogStartedServer(port string) {
	log.Info().Msgf("Starting server on port %v", port)
}

func LogStoppedServer() {
	log.Info().Msg("Server stopped")
}

func LogErrorWhileWritingJSON(err error) {
	log.Error().Err(err).Msg("Error while writing JSON response")
}

func LogErrorWhileUpgradingHTTP(err error) {
	log.Error().Err(err).Msg("Error while upgrading HTTP")
}
