package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"
)

// Logger writes one JSON object per line. The register UI owns stdout,
// so log entries go to stderr.
type Logger struct {
	service string
	out     io.Writer
}

func New(service string) *Logger { return &Logger{service: service, out: os.Stderr} }

// NewWriter is for tests that want to capture output.
func NewWriter(service string, w io.Writer) *Logger { return &Logger{service: service, out: w} }

func (l *Logger) log(level, action string, fields map[string]any, err error) {
	entry := map[string]any{
		"timestamp": time.Now().UTC().Format(time.RFC3339Nano),
		"level":     level,
		"service":   l.service,
		"action":    action,
		"hostname":  hostname(),
	}
	for k, v := range fields {
		entry[k] = v
	}
	if err != nil {
		entry["error"] = map[string]any{"msg": err.Error(), "type": fmt.Sprintf("%T", err)}
	}
	_ = json.NewEncoder(l.out).Encode(entry)
}

func (l *Logger) Info(action string, fields map[string]any)             { l.log("INFO", action, fields, nil) }
func (l *Logger) Debug(action string, fields map[string]any)            { l.log("DEBUG", action, fields, nil) }
func (l *Logger) Error(action string, err error, fields map[string]any) { l.log("ERROR", action, fields, err) }

func hostname() string { h, _ := os.Hostname(); return h }
