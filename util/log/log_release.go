//go:build release

package log

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"

	"github.com/dixieflatline76/EyeSim/config"
	"gopkg.in/natefinch/lumberjack.v2"
)

func init() {
	logDir, err := logDirectory()
	if err != nil {
		log.Fatalf("Failed to resolve log directory: %v", err)
	}
	if err := os.MkdirAll(logDir, 0755); err != nil {
		log.Fatalf("Failed to create log directory: %v", err)
	}

	log.SetOutput(&lumberjack.Logger{
		Filename:   filepath.Join(logDir, config.AppName+config.LogExt),
		MaxSize:    10, // MB
		MaxBackups: 2,
		MaxAge:     28, // days
		Compress:   true,
	})
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
}

// logDirectory picks the cache dir on windows and a dot dir in home elsewhere.
func logDirectory() (string, error) {
	if runtime.GOOS == "windows" {
		dir, err := os.UserCacheDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, config.LogWinSubDir), nil
	}
	dir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, config.LogSubDir), nil
}

// Printf calls the standard log.Printf()
func Printf(format string, v ...interface{}) {
	log.Output(2, fmt.Sprintf(format, v...))
}

// Println calls the standard log.Println()
func Println(v ...interface{}) {
	log.Output(2, fmt.Sprintln(v...))
}

// Fatalf calls the standard log.Fatalf()
func Fatalf(format string, v ...interface{}) {
	log.Output(2, fmt.Sprintf(format, v...))
	os.Exit(1)
}

// Debugf is a no-op in release builds. Per-frame diagnostics would flood the file.
func Debugf(format string, v ...interface{}) {}
