package logger

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

const indexTimeout = 5 * time.Second

// dailyIndex returns <index>-<yyyy.mm.dd> for t in UTC
func dailyIndex(index string, t time.Time) string {
	return fmt.Sprintf("%s-%s", index, t.UTC().Format("2006.01.02"))
}

// logDocument flattens entry into the document shipped by the search hooks.
// Error values are stringified and the system fields win over entry data.
func logDocument(entry *logrus.Entry, hostname string) map[string]any {
	doc := make(map[string]any, len(entry.Data)+4)
	for k, v := range entry.Data {
		if err, ok := v.(error); ok {
			v = err.Error()
		}
		doc[k] = v
	}

	doc["@timestamp"] = entry.Time.UTC().Format(time.RFC3339Nano)
	doc["level"] = entry.Level.String()
	doc["message"] = entry.Message
	if hostname != "" {
		doc["hostname"] = hostname
	}
	return doc
}
