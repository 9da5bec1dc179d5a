package schema

import "encoding/json"

// Schema is agent message content interface
type Schema interface {
	String() string
}

// Stringify renders a schema as the text sent to the language model.
func Stringify(s Schema) string {
	if v, ok := s.(String); ok {
		return string(v)
	}
	if v := s.String(); v != "" {
		return v
	}
	bs, _ := json.Marshal(s)
	return string(bs)
}

// ToBytes renders a schema as raw bytes.
func ToBytes(s Schema) []byte {
	if v, ok := s.(String); ok {
		return []byte(v)
	}
	bs, _ := json.Marshal(s)
	return bs
}
