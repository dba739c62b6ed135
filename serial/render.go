package serial

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

//////
// Exported functionalities.
//////

// EncodeJSON renders a document as indented JSON.
func EncodeJSON(doc any) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("serial: %w", err)
	}

	return data, nil
}

// DecodeJSON parses JSON into the given document pointer. Fields the
// document schema does not declare are rejected, so typos surface as decode
// errors instead of silently dropped settings.
func DecodeJSON(data []byte, doc any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	if err := dec.Decode(doc); err != nil {
		return fmt.Errorf("serial: %w", err)
	}

	return nil
}

// EncodeYAML renders a document as two-space indented YAML.
func EncodeYAML(doc any) ([]byte, error) {
	var buf bytes.Buffer

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)

	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("serial: %w", err)
	}

	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("serial: %w", err)
	}

	return buf.Bytes(), nil
}

// DecodeYAML parses YAML into the given document pointer. Fields the
// document schema does not declare are rejected, so typos surface as decode
// errors instead of silently dropped settings.
func DecodeYAML(data []byte, doc any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(doc); err != nil {
		return fmt.Errorf("serial: %w", err)
	}

	return nil
}
