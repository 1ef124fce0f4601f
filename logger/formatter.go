package logger

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// DefaultTag prefixes every diagnostic line.
const DefaultTag = "[Bridge]"

// TagFormatter writes "<tag> [LEVEL ]<message> key=value ..." lines.
// The level is only shown for warnings and errors.
type TagFormatter struct {
	Tag string
}

func (f *TagFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	buffer := entry.Buffer
	if buffer == nil {
		buffer = &bytes.Buffer{}
	}
	tag := f.Tag
	if tag == "" {
		tag = DefaultTag
	}
	buffer.WriteString(tag)
	buffer.WriteByte(' ')
	if label, ok := levelLabel(entry.Level); ok {
		buffer.WriteString(label)
		buffer.WriteByte(' ')
	}
	buffer.WriteString(strings.TrimRight(entry.Message, "\n"))

	keys := make([]string, 0, len(entry.Data))
	for key := range entry.Data {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		buffer.WriteByte(' ')
		buffer.WriteString(key)
		buffer.WriteByte('=')
		buffer.WriteString(formatValue(entry.Data[key]))
	}
	buffer.WriteByte('\n')
	return buffer.Bytes(), nil
}

func levelLabel(level logrus.Level) (string, bool) {
	switch level {
	case logrus.PanicLevel:
		return "PANIC", true
	case logrus.FatalLevel:
		return "FATAL", true
	case logrus.ErrorLevel:
		return "ERROR", true
	case logrus.WarnLevel:
		return "WARN", true
	}
	return "", false
}

func formatValue(value interface{}) string {
	var text string
	switch actual := value.(type) {
	case error:
		text = actual.Error()
	case string:
		text = actual
	default:
		text = fmt.Sprint(actual)
	}
	if text == "" || strings.ContainsAny(text, " =\"\t\r\n") {
		return strconv.Quote(text)
	}
	return text
}
