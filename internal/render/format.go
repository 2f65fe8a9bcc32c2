package render

import "fmt"

// Format selects the output representation, chosen once per process.
type Format int

const (
	// Text renders plain-text documents.
	Text Format = iota
	// JSON renders canonical JSON documents.
	JSON
)

// ParseFormat maps a configuration value to a Format. Exactly "text"
// and "json" are recognized.
func ParseFormat(value string) (Format, error) {
	switch value {
	case "text":
		return Text, nil
	case "json":
		return JSON, nil
	default:
		return Text, fmt.Errorf("unknown output format %q (expected text or json)", value)
	}
}

func (f Format) String() string {
	if f == JSON {
		return "json"
	}
	return "text"
}

// Name returns the format's name as used in prompt framing sentences.
func (f Format) Name() string {
	if f == JSON {
		return "the JSON format"
	}
	return "plain text"
}
