// Package log routes application and program diagnostics through logrus
// into a daily file under the logs directory.
package log

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/natty-misc/ymd3/filesystem"
	"github.com/natty-misc/ymd3/key"
	"github.com/natty-misc/ymd3/where"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

var enabled bool

// console receives program entries while logs.write is off, so a failed
// extraction always leaves its diagnostic somewhere.
var console = func() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	l.SetLevel(logrus.InfoLevel)
	return l
}()

// Console returns the terminal logger used by Program when file logging is disabled.
func Console() *logrus.Logger {
	return console
}

// Setup opens today's log file when logs.write is on. Otherwise every entry is dropped.
func Setup() error {
	enabled = viper.GetBool(key.LogsWrite)
	if !enabled {
		return nil
	}

	path := filepath.Join(where.Logs(), time.Now().Format("2006-01-02")+".log")
	f, err := filesystem.API().OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o666)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	logrus.SetOutput(f)

	if viper.GetBool(key.LogsJson) {
		logrus.SetFormatter(&logrus.JSONFormatter{PrettyPrint: true})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{})
	}

	level, err := logrus.ParseLevel(viper.GetString(key.LogsLevel))
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	return nil
}

// Program returns the diagnostic sink for one extraction program.
// Entries carry a "program" field so concurrent runs can be told apart.
// Without a log file they go to the console at info level and above.
func Program(name string) logrus.FieldLogger {
	if !enabled {
		return console.WithField("program", name)
	}
	return logrus.WithField("program", name)
}

// Stderr returns a sink that writes program output to the terminal, used when debugging a program.
func Stderr(name string) logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	l.SetLevel(logrus.DebugLevel)
	return l.WithField("program", name)
}

func Error(args ...any) {
	if enabled {
		logrus.Error(args...)
	}
}

func Errorf(format string, args ...any) {
	if enabled {
		logrus.Errorf(format, args...)
	}
}

func Warnf(format string, args ...any) {
	if enabled {
		logrus.Warnf(format, args...)
	}
}

func Infof(format string, args ...any) {
	if enabled {
		logrus.Infof(format, args...)
	}
}

func Debugf(format string, args ...any) {
	if enabled {
		logrus.Debugf(format, args...)
	}
}
