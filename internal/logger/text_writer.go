package logger

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// textWriter turns zerolog JSON events into redacted text lines.
type textWriter struct {
	mu        sync.Mutex
	out       io.Writer
	formatter *RedactingFormatter
}

func (w *textWriter) Write(p []byte) (int, error) {
	line := w.render(bytes.TrimSpace(p))

	w.mu.Lock()
	defer w.mu.Unlock()

	if _, err := io.WriteString(w.out, line+"\n"); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (w *textWriter) render(p []byte) string {
	var event map[string]any
	if err := json.Unmarshal(p, &event); err != nil {
		return w.formatter.Format(zerolog.InfoLevel.String(), time.Now(), string(p))
	}

	level, _ := event[zerolog.LevelFieldName].(string)
	msg, _ := event[zerolog.MessageFieldName].(string)
	ts := eventTime(event[zerolog.TimestampFieldName])

	delete(event, zerolog.LevelFieldName)
	delete(event, zerolog.MessageFieldName)
	delete(event, zerolog.TimestampFieldName)

	keys := make([]string, 0, len(event))
	for k := range event {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "%s=%v%s", k, event[k], Separator)
	}

	message := msg
	if b.Len() > 0 {
		message = msg + Separator + " " + b.String()
	}

	return w.formatter.Format(level, ts, message)
}

func eventTime(v any) time.Time {
	switch t := v.(type) {
	case float64:
		return time.Unix(int64(t), 0)
	case string:
		if parsed, err := time.Parse(zerolog.TimeFieldFormat, t); err == nil {
			return parsed
		}
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			return parsed
		}
	}
	return time.Now()
}

// UseTextFormat switches output to redacted text lines written to w,
// labelled with name.
func UseTextFormat(w io.Writer, name string) {
	mu.Lock()
	defer mu.Unlock()
	log = zerolog.New(&textWriter{
		out:       w,
		formatter: NewRedactingFormatter(name, PIIFields...),
	}).With().Timestamp().Logger()
}
