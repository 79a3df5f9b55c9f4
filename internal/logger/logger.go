package logger

import (
	"io"
	"os"

	"github.com/Domenick1991/hotelreports/config"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Init configures the standard logrus logger. When cfg.File is set, output
// is duplicated into a size-rotated file.
func Init(cfg config.LogConfig) error {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return err
	}
	logrus.SetLevel(level)

	if cfg.Format == "text" {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}

	logrus.SetOutput(Writer(cfg))
	return nil
}

func Writer(cfg config.LogConfig) io.Writer {
	if cfg.File == "" {
		return os.Stdout
	}
	return io.MultiWriter(os.Stdout, &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    50,
		MaxBackups: 5,
		MaxAge:     28,
		Compress:   true,
	})
}
