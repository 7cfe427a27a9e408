package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matheuscscp/net-sock/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string   `yaml:"name"`
	Ports []uint16 `yaml:"ports"`
}

func writeFile(t *testing.T, content string) string {
	file := filepath.Join(t.TempDir(), "conf.yml")
	require.NoError(t, os.WriteFile(file, []byte(content), 0o600))
	return file
}

func TestReadYAMLFileAndUnmarshal(t *testing.T) {
	file := writeFile(t, "name: foo\nports: [1, 2]\n")

	var s sample
	require.NoError(t, config.ReadYAMLFileAndUnmarshal(file, &s))
	assert.Equal(t, sample{Name: "foo", Ports: []uint16{1, 2}}, s)
}

func TestReadYAMLFileAndUnmarshalErrors(t *testing.T) {
	for name, content := range map[string]string{
		"unknown field": "name: foo\nbar: 1\n",
		"bad type":      "ports: [abc]\n",
		"not yaml":      "name: [\n",
	} {
		content := content // copy for running in parallel
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			var s sample
			err := config.ReadYAMLFileAndUnmarshal(writeFile(t, content), &s)
			assert.ErrorContains(t, err, "error decoding yaml config file")
		})
	}
}

func TestReadYAMLFileAndUnmarshalMissingFile(t *testing.T) {
	var s sample
	err := config.ReadYAMLFileAndUnmarshal(filepath.Join(t.TempDir(), "nope.yml"), &s)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestUnmarshalEmptyDocument(t *testing.T) {
	s := sample{Name: "keep"}
	require.NoError(t, config.Unmarshal(nil, &s))
	assert.Equal(t, "keep", s.Name)
}
