package main

import (
	"fmt"
	"log"
	"sync"
	"time"
)

// LogEntry is one captured log line, exposed over /api/v1/logs so the
// simulation can be observed without shell access.
type LogEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"`
	Message   string    `json:"message"`
}

const maxLogEntries = 1000

var (
	logMu      sync.Mutex
	logEntries []LogEntry
)

func logInfo(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	log.Print(message)
	addLogEntry("INFO", message)
}

func logError(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	log.Print("ERROR: " + message)
	addLogEntry("ERROR", message)
}

func addLogEntry(level, message string) {
	logMu.Lock()
	defer logMu.Unlock()
	logEntries = append(logEntries, LogEntry{Timestamp: time.Now(), Level: level, Message: message})
	if len(logEntries) > maxLogEntries {
		logEntries = logEntries[len(logEntries)-maxLogEntries:]
	}
}

func recentLogs(limit int) []LogEntry {
	logMu.Lock()
	defer logMu.Unlock()
	if limit <= 0 || limit > len(logEntries) {
		limit = len(logEntries)
	}
	out := make([]LogEntry, limit)
	copy(out, logEntries[len(logEntries)-limit:])
	return out
}
