package logger

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

const (
	Redaction     = "***"
	Separator     = ";"
	DefaultPrefix = "[HOLBERTON]"

	timeLayout = "2006-01-02 15:04:05,000"
)

// PIIFields are the field names treated as personal data.
var PIIFields = []string{"name", "email", "phone", "ssn", "password"}

// FilterDatum replaces the value of every field=value pair in message whose
// field is listed in fields. A field matches anywhere it is not the tail of
// a longer name; its value runs up to the next separator.
func FilterDatum(fields []string, redaction, message, separator string) string {
	if len(fields) == 0 || message == "" {
		return message
	}

	quoted := make([]string, 0, len(fields))
	for _, f := range fields {
		quoted = append(quoted, regexp.QuoteMeta(f))
	}

	value := `.*`
	if separator != "" {
		value = `[^` + regexp.QuoteMeta(separator) + `]*`
	}

	pattern := regexp.MustCompile(`(^|\W)(` + strings.Join(quoted, "|") + `)=` + value)

	return pattern.ReplaceAllString(message, "${1}${2}="+strings.ReplaceAll(redaction, "$", "$$"))
}

// RedactingFormatter renders log lines as
// "<prefix> <name> <LEVEL> <time>: <message>" and masks the configured
// fields anywhere in the rendered line.
type RedactingFormatter struct {
	Prefix string
	Name   string
	Fields []string
}

func NewRedactingFormatter(name string, fields ...string) *RedactingFormatter {
	return &RedactingFormatter{
		Prefix: DefaultPrefix,
		Name:   name,
		Fields: fields,
	}
}

func (f *RedactingFormatter) Format(level string, t time.Time, message string) string {
	line := fmt.Sprintf("%s %s %s %-15s: %s",
		f.Prefix,
		f.Name,
		strings.ToUpper(level),
		t.Format(timeLayout),
		message,
	)
	return FilterDatum(f.Fields, Redaction, line, Separator)
}

func redactFields(fields map[string]any) map[string]any {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		if isPII(k) {
			out[k] = Redaction
			continue
		}
		out[k] = v
	}
	return out
}

func isPII(key string) bool {
	for _, f := range PIIFields {
		if strings.EqualFold(f, key) {
			return true
		}
	}
	return false
}
