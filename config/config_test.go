package config

import (
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rtweeks/fair-cg/util"
)

const emitConfigYAML = `
classname: SignedIntParser
chartype: char
namespace: acme
message: "generated file, do not edit"
graphviz:
  rankdir: TB
verbosity: 2
`

// TestLoadLayersYAMLOverDefault round-trips an EmitConfig through
// gopkg.in/yaml.v2: fields present in the YAML override Default(),
// fields absent from it (here, FileBase) keep Default()'s value.
func TestLoadLayersYAMLOverDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "emit.yaml")
	require.NoError(t, ioutil.WriteFile(path, []byte(emitConfigYAML), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "SignedIntParser", cfg.ClassName)
	assert.Equal(t, "char", cfg.CharType)
	assert.Equal(t, "acme", cfg.Namespace)
	assert.Equal(t, "generated file, do not edit", cfg.Message)
	assert.Equal(t, "TB", cfg.Graphviz.RankDir)
	assert.Equal(t, util.VerbosityLevel(2), cfg.Verbosity)

	// FileBase has no YAML key above, so Default()'s zero value survives.
	assert.Equal(t, Default().FileBase, cfg.FileBase)
}

func TestLoadRejectsMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.Error(t, err)
}
