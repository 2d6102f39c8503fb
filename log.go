package hederalegacy

import (
	"fmt"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

var log = zerolog.New(nil).Output(zerolog.ConsoleWriter{
	Out:        os.Stderr,
	TimeFormat: time.TimeOnly,
}).With().Timestamp().Logger()

func Log() *zerolog.Logger {
	return &log
}

func init() {
	zerolog.TimeFieldFormat = time.TimeOnly
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

// SetLogLevel resolves the level from the flag value, then HEDERA_LOG_LEVEL,
// then falls back to info.
func SetLogLevel(level string) (parsed zerolog.Level, err error) {
	if level == "" {
		level = os.Getenv("HEDERA_LOG_LEVEL")
	}
	if level == "" {
		level = "info"
	}

	parsed, err = zerolog.ParseLevel(level)
	if err != nil {
		err = errors.WithStack(err)
		return
	}

	zerolog.SetGlobalLevel(parsed)
	return
}

func StackTracerMessage(err error) string {
	type StackTracer interface {
		StackTrace() errors.StackTrace
	}

	var errString string

	if err != nil {
		if stackTracer, isStackTracer := err.(StackTracer); isStackTracer {
			for _, f := range stackTracer.StackTrace() {
				errString += fmt.Sprintf("%+v\n", f)
			}
		}
	}

	return errString
}
