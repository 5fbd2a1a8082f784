package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger is nil until Init; the package functions do nothing before then
var Logger *log.Logger

// Config holds logger options
type Config struct {
	Debug    bool
	DataDir  string
	Stderr   bool // copy to stderr without Debug
	FileOnly bool // never write to stderr
}

// Init logs to DataDir/logs/nikki.log, rotated
func Init(cfg Config) error {
	dir := filepath.Join(cfg.DataDir, "logs")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	opts := log.Options{
		ReportTimestamp: true,
		ReportCaller:    cfg.Debug,
		Level:           log.InfoLevel,
		Prefix:          "nikki",
	}
	if cfg.Debug {
		opts.Level = log.DebugLevel
	}

	Logger = log.NewWithOptions(output(cfg, &lumberjack.Logger{
		Filename:   filepath.Join(dir, "nikki.log"),
		MaxSize:    5,
		MaxBackups: 3,
		MaxAge:     28,
		Compress:   true,
	}), opts)
	return nil
}

func output(cfg Config, file io.Writer) io.Writer {
	if cfg.FileOnly || !(cfg.Debug || cfg.Stderr) {
		return file
	}
	return io.MultiWriter(os.Stderr, file)
}

func Debug(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Debug(msg, keyvals...)
	}
}

func Info(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Info(msg, keyvals...)
	}
}

func Warn(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Warn(msg, keyvals...)
	}
}

func Error(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Error(msg, keyvals...)
	}
}
