package relay

import (
	"encoding/json"
	"testing"

	"github.com/geosp/mcp-bridge/schema"
	"github.com/stretchr/testify/assert"
)

func TestRepairArguments(t *testing.T) {
	var testCases = []struct {
		description string
		args        map[string]json.RawMessage
		expect      map[string]string
		expectFixes []Fix
	}{
		{
			description: "stringified object",
			args:        map[string]json.RawMessage{"filter": json.RawMessage(`"{\"status\": \"open\"}"`)},
			expect:      map[string]string{"filter": `{"status":"open"}`},
			expectFixes: []Fix{{Key: "filter", Kind: schema.KindObject}},
		},
		{
			description: "stringified array with padding",
			args:        map[string]json.RawMessage{"tags": json.RawMessage(`"  [\"a\", \"b\"]\n"`)},
			expect:      map[string]string{"tags": `["a","b"]`},
			expectFixes: []Fix{{Key: "tags", Kind: schema.KindArray}},
		},
		{
			description: "invalid JSON kept",
			args:        map[string]json.RawMessage{"query": json.RawMessage(`"{not json"`)},
			expect:      map[string]string{"query": `"{not json"`},
		},
		{
			description: "scalar strings kept",
			args: map[string]json.RawMessage{
				"count": json.RawMessage(`"42"`),
				"flag":  json.RawMessage(`"true"`),
				"empty": json.RawMessage(`"   "`),
			},
			expect: map[string]string{"count": `"42"`, "flag": `"true"`, "empty": `"   "`},
		},
		{
			description: "non string values passed through",
			args: map[string]json.RawMessage{
				"big":    json.RawMessage(`12345678901234567890`),
				"ratio":  json.RawMessage(`1.50`),
				"nested": json.RawMessage(`{"a":"[1]"}`),
			},
			expect: map[string]string{"big": `12345678901234567890`, "ratio": `1.50`, "nested": `{"a":"[1]"}`},
		},
		{
			description: "fixes sorted by key",
			args: map[string]json.RawMessage{
				"tags":   json.RawMessage(`"[1,2]"`),
				"filter": json.RawMessage(`"{}"`),
				"name":   json.RawMessage(`"bob"`),
			},
			expect:      map[string]string{"tags": `[1,2]`, "filter": `{}`, "name": `"bob"`},
			expectFixes: []Fix{{Key: "filter", Kind: schema.KindObject}, {Key: "tags", Kind: schema.KindArray}},
		},
	}

	for _, testCase := range testCases {
		repaired, fixes := RepairArguments(testCase.args)
		actual := map[string]string{}
		for k, v := range repaired {
			actual[k] = string(v)
		}
		assert.EqualValues(t, testCase.expect, actual, testCase.description)
		assert.EqualValues(t, testCase.expectFixes, fixes, testCase.description)
	}
}

func TestRepairArguments_DoesNotMutateInput(t *testing.T) {
	args := map[string]json.RawMessage{"filter": json.RawMessage(`"{\"a\":1}"`)}
	_, fixes := RepairArguments(args)
	assert.Len(t, fixes, 1)
	assert.Equal(t, `"{\"a\":1}"`, string(args["filter"]))
}

func TestFormatFixes(t *testing.T) {
	fixes := []Fix{{Key: "filter", Kind: schema.KindObject}, {Key: "tags", Kind: schema.KindArray}}
	assert.Equal(t, "filter:object, tags:array", formatFixes(fixes))
	assert.Equal(t, "", formatFixes(nil))
}
