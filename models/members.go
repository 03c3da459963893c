package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// member is one key/value pair of a JSON object, value kept verbatim.
type member struct {
	Key   string
	Value json.RawMessage
}

// members lists the members of a decoded JSON object in document order.
type members []member

func decodeMembers(data []byte) (members, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("expected a JSON object")
	}

	var out members
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected an object key, got %v", tok)
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, err
		}
		out = append(out, member{Key: key, Value: value})
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return out, nil
}

// mergeMembers encodes the object produced by marshalling the modelled fields
// (current) over the members read from the cache (original). Original members
// keep their position and bytes unless the model now holds a value for them;
// members the model adds are appended in their marshalled order.
func mergeMembers(original members, current []byte) ([]byte, error) {
	if original == nil {
		return current, nil
	}
	fresh, err := decodeMembers(current)
	if err != nil {
		return nil, err
	}

	freshByKey := make(map[string]json.RawMessage, len(fresh))
	for _, m := range fresh {
		freshByKey[m.Key] = m.Value
	}

	var buf bytes.Buffer
	written := make(map[string]bool, len(original)+len(fresh))
	buf.WriteByte('{')
	write := func(key string, value json.RawMessage) error {
		if len(written) > 0 {
			buf.WriteByte(',')
		}
		encodedKey, err := json.Marshal(key)
		if err != nil {
			return err
		}
		buf.Write(encodedKey)
		buf.WriteByte(':')
		buf.Write(value)
		written[key] = true
		return nil
	}

	for _, m := range original {
		if written[m.Key] {
			continue
		}
		value := m.Value
		if v, ok := freshByKey[m.Key]; ok {
			value = v
		}
		if err := write(m.Key, value); err != nil {
			return nil, err
		}
	}
	for _, m := range fresh {
		if written[m.Key] {
			continue
		}
		if err := write(m.Key, m.Value); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
