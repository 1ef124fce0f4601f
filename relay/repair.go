package relay

import (
	"bytes"
	"encoding/json"
	"sort"
	"strings"

	"github.com/geosp/mcp-bridge/schema"
)

// Fix describes one argument decoded by RepairArguments.
type Fix struct {
	Key  string
	Kind schema.Kind
}

func (f Fix) String() string {
	return f.Key + ":" + f.Kind.String()
}

// RepairArguments returns a copy of args where every string holding a JSON object
// or array is replaced by the decoded value. Strings that are not valid JSON, or
// that decode to a scalar, are kept as they are. Fixes are sorted by key.
func RepairArguments(args map[string]json.RawMessage) (map[string]json.RawMessage, []Fix) {
	repaired := make(map[string]json.RawMessage, len(args))
	var fixes []Fix
	for key, value := range args {
		repaired[key] = value
		decoded, kind, ok := decodeStringified(value)
		if !ok {
			continue
		}
		repaired[key] = decoded
		fixes = append(fixes, Fix{Key: key, Kind: kind})
	}
	sort.Slice(fixes, func(i, j int) bool { return fixes[i].Key < fixes[j].Key })
	return repaired, fixes
}

func decodeStringified(value json.RawMessage) (json.RawMessage, schema.Kind, bool) {
	if schema.KindOf(value) != schema.KindString {
		return nil, schema.KindInvalid, false
	}
	var text string
	if err := json.Unmarshal(value, &text); err != nil {
		return nil, schema.KindInvalid, false
	}
	text = strings.TrimSpace(text)
	if text == "" || (text[0] != '{' && text[0] != '[') {
		return nil, schema.KindInvalid, false
	}
	buf := &bytes.Buffer{}
	if err := json.Compact(buf, []byte(text)); err != nil {
		return nil, schema.KindInvalid, false
	}
	decoded := json.RawMessage(buf.Bytes())
	switch kind := schema.KindOf(decoded); kind {
	case schema.KindObject, schema.KindArray:
		return decoded, kind, true
	}
	return nil, schema.KindInvalid, false
}

func formatFixes(fixes []Fix) string {
	parts := make([]string, 0, len(fixes))
	for _, fix := range fixes {
		parts = append(parts, fix.String())
	}
	return strings.Join(parts, ", ")
}
