package logger

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagFormatter_Format(t *testing.T) {
	var testCases = []struct {
		description string
		level       logrus.Level
		message     string
		fields      logrus.Fields
		expect      string
	}{
		{
			description: "info",
			level:       logrus.InfoLevel,
			message:     "Sending: tools/list (id=1)",
			expect:      "[Bridge] Sending: tools/list (id=1)\n",
		},
		{
			description: "warn with sorted fields",
			level:       logrus.WarnLevel,
			message:     "Invalid JSON in SSE",
			fields:      logrus.Fields{"exchange": "e1", "data": "{broken json"},
			expect:      "[Bridge] WARN Invalid JSON in SSE data=\"{broken json\" exchange=e1\n",
		},
		{
			description: "error value",
			level:       logrus.ErrorLevel,
			message:     "Error",
			fields:      logrus.Fields{logrus.ErrorKey: errors.New("timeout")},
			expect:      "[Bridge] ERROR Error error=timeout\n",
		},
	}
	for _, testCase := range testCases {
		entry := logrus.NewEntry(logrus.New()).WithFields(testCase.fields)
		entry.Level = testCase.level
		entry.Message = testCase.message
		actual, err := (&TagFormatter{Tag: DefaultTag}).Format(entry)
		require.NoError(t, err, testCase.description)
		assert.Equal(t, testCase.expect, string(actual), testCase.description)
	}
}

func TestLevel(t *testing.T) {
	t.Setenv(EnvLevel, "")
	t.Setenv(EnvDebug, "")
	assert.Equal(t, logrus.InfoLevel, Level(""))
	assert.Equal(t, logrus.WarnLevel, Level("WARNING"))
	assert.Equal(t, logrus.InfoLevel, Level("verbose"))

	t.Setenv(EnvDebug, "true")
	assert.Equal(t, logrus.DebugLevel, Level(""))

	t.Setenv(EnvLevel, "error")
	assert.Equal(t, logrus.ErrorLevel, Level(""))
	assert.Equal(t, logrus.TraceLevel, Level("trace"))
}

func TestNew(t *testing.T) {
	t.Setenv(EnvLevel, "")
	t.Setenv(EnvDebug, "")
	t.Setenv(EnvFile, "")
	output := &bytes.Buffer{}
	location := filepath.Join(t.TempDir(), "logs", "bridge.log")
	log, closer := New(Options{Level: "debug", File: location, Output: output})
	log.Info("Bridge started")
	require.NoError(t, closer())

	assert.Contains(t, output.String(), "[Bridge] Bridge started\n")
	data, err := os.ReadFile(location)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[Bridge] Bridge started\n")
}
