package config

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// ReadYAMLFileAndUnmarshal reads the yaml file and decodes it into v.
// Unknown fields are rejected.
func ReadYAMLFileAndUnmarshal(file string, v interface{}) error {
	b, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("error reading yaml config file: %w", err)
	}
	if err := Unmarshal(b, v); err != nil {
		return fmt.Errorf("error decoding yaml config file '%s': %w", file, err)
	}
	return nil
}

// Unmarshal decodes a yaml document into v. Unknown fields are rejected
// and an empty document leaves v untouched.
func Unmarshal(b []byte, v interface{}) error {
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(v); err != nil && err != io.EOF {
		return err
	}
	return nil
}
