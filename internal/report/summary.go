package report

import (
	"bytes"
	"encoding/json"
	"errors"

	"gopkg.in/yaml.v3"
)

// Metric is one aggregate scalar. Key names the JSON/YAML field, Label the
// CSV row.
type Metric struct {
	Key   string
	Label string
	Value any
}

// Summary keeps metrics in declaration order when marshalled.
type Summary []Metric

func (s Summary) Get(key string) (any, bool) {
	for _, m := range s {
		if m.Key == key {
			return m.Value, true
		}
	}
	return nil, false
}

func (s Summary) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, m := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(m.Key)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(m.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON keeps document order; labels are not part of the wire form.
func (s *Summary) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return errors.New("summary: expected object")
	}
	var out Summary
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := tok.(string)
		var value any
		if err := dec.Decode(&value); err != nil {
			return err
		}
		out = append(out, Metric{Key: key, Value: value})
	}
	*s = out
	return nil
}

func (s Summary) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, m := range s {
		var val yaml.Node
		if err := val.Encode(m.Value); err != nil {
			return nil, err
		}
		node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: m.Key}, &val)
	}
	return node, nil
}
