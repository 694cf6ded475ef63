package procinfo

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// appName tags syslog records and names the per-OS config locations.
const appName = "procinfo"

type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelError LogLevel = "error"
)

func (lvl LogLevel) IsValid() bool {
	switch lvl {
	case LogLevelDebug:
		fallthrough
	case LogLevelInfo:
		fallthrough
	case LogLevelError:
		return true
	default:
		return false
	}
}

func (lvl LogLevel) LogrusLevel() logrus.Level {
	switch lvl {
	case LogLevelDebug:
		return logrus.DebugLevel
	case LogLevelError:
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

type logrusFileHook struct {
	file      *os.File
	formatter *logrus.TextFormatter
}

func addLogFileHook(file string, flag int, chmod os.FileMode) (*logrusFileHook, error) {
	dir := filepath.Dir(file)
	err := os.MkdirAll(dir, 0755)
	if err != nil {
		logrus.WithError(err).Errorf("Failed to create the logs dir: '%s'", dir)
	}

	logFile, err := os.OpenFile(file, flag, chmod)
	if err != nil {
		return nil, fmt.Errorf("unable to write log file: %s", err.Error())
	}

	hook := &logrusFileHook{
		file:      logFile,
		formatter: &logrus.TextFormatter{FullTimestamp: true, DisableColors: true},
	}
	logrus.AddHook(hook)

	return hook, nil
}

func (hook *logrusFileHook) Fire(entry *logrus.Entry) error {
	line, err := hook.formatter.Format(entry)
	if err != nil {
		return err
	}

	_, err = hook.file.Write(line)
	if err != nil {
		fmt.Fprintf(os.Stderr, "unable to write file on filehook(entry.String)%v", err)
		return err
	}

	return nil
}

func (hook *logrusFileHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

// SetLogLevel sets the level on both the config and logrus.
func (cfg *Config) SetLogLevel(lvl LogLevel) {
	cfg.LogLevel = lvl
	logrus.SetLevel(lvl.LogrusLevel())
}

// ConfigureLogger sets up logrus according to cfg. The report is printed to stdout,
// so log records always go to stderr, plus the optional file and syslog sinks.
func ConfigureLogger(cfg *Config) {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, DisableColors: true})
	logrus.SetOutput(os.Stderr)

	cfg.SetLogLevel(cfg.LogLevel)

	if cfg.LogFile != "" {
		logrus.Debug("Adding log file hook ", cfg.LogFile)
		_, err := addLogFileHook(cfg.LogFile, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0644)
		if err != nil {
			logrus.Error("Can't write logs to file: ", err.Error())
		}
	}

	if cfg.LogSyslog != "" {
		logrus.Debug("Adding syslog hook ", cfg.LogSyslog)
		err := addSyslogHook(cfg.LogSyslog)
		if err != nil {
			logrus.Error("Can't set up syslog: ", err.Error())
		}
	}
}
