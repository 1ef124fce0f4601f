package conv

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAsDuration(t *testing.T) {
	var testCases = []struct {
		description string
		value       interface{}
		expect      time.Duration
		expectOK    bool
	}{
		{description: "int seconds", value: 30, expect: 30 * time.Second, expectOK: true},
		{description: "float seconds", value: 2.5, expect: 2500 * time.Millisecond, expectOK: true},
		{description: "numeric string", value: " 10 ", expect: 10 * time.Second, expectOK: true},
		{description: "duration string", value: "1m30s", expect: 90 * time.Second, expectOK: true},
		{description: "duration", value: time.Minute, expect: time.Minute, expectOK: true},
		{description: "empty", value: "", expectOK: false},
		{description: "garbage", value: "soon", expectOK: false},
		{description: "bool", value: true, expectOK: false},
	}
	for _, testCase := range testCases {
		actual, ok := AsDuration(testCase.value)
		assert.Equal(t, testCase.expectOK, ok, testCase.description)
		assert.Equal(t, testCase.expect, actual, testCase.description)
	}
}
