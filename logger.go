package main

import (
	"log"
	"os"
	"strings"
)

const (
	levelDebug = iota
	levelInfo
	levelWarn
	levelError
)

var logLevel = levelInfo

// SetLogLevel sets the minimum level that gets logged. Unknown levels
// fall back to INFO.
func SetLogLevel(level string) {
	switch strings.ToUpper(level) {
	case "DEBUG":
		logLevel = levelDebug
	case "INFO":
		logLevel = levelInfo
	case "WARN", "WARNING":
		logLevel = levelWarn
	case "ERROR":
		logLevel = levelError
	default:
		logLevel = levelInfo
	}
}

func Debug(format string, v ...interface{}) {
	if logLevel <= levelDebug {
		log.Printf("DEBUG "+format, v...)
	}
}

func Info(format string, v ...interface{}) {
	if logLevel <= levelInfo {
		log.Printf("INFO "+format, v...)
	}
}

func Warn(format string, v ...interface{}) {
	if logLevel <= levelWarn {
		log.Printf("WARN "+format, v...)
	}
}

func Error(format string, v ...interface{}) {
	if logLevel <= levelError {
		log.Printf("ERROR "+format, v...)
	}
}

func Fatal(format string, v ...interface{}) {
	log.Printf("FATAL "+format, v...)
	os.Exit(1)
}
