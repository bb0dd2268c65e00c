package config

import (
	"io/ioutil"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"

	"github.com/rtweeks/fair-cg/util"
)

// Load reads an EmitConfig from a YAML file, layered over Default().
func Load(path string) (EmitConfig, error) {
	cfg := Default()
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrapf(err, "reading emit config %q", path)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "parsing emit config %q", path)
	}
	return cfg, nil
}

// NewFromCommand builds an EmitConfig from Default(), then layers cobra
// flags of cmd over it, mirroring the teacher's readConf: flags that
// weren't set (and so GetString et al. return their zero value) leave
// the default in place.
func NewFromCommand(cmd *cobra.Command) (cfg EmitConfig, err error) {
	cfg = Default()

	if class, err := cmd.Flags().GetString("class"); err == nil {
		cfg.ClassName = class
	}
	if charType, err := cmd.Flags().GetString("char-type"); err == nil && charType != "" {
		cfg.CharType = charType
	}
	if ns, err := cmd.Flags().GetString("namespace"); err == nil {
		cfg.Namespace = ns
	}
	if base, err := cmd.Flags().GetString("out"); err == nil {
		cfg.FileBase = base
	}
	if msg, err := cmd.Flags().GetString("message"); err == nil {
		cfg.Message = msg
	}
	if rankdir, err := cmd.Flags().GetString("rankdir"); err == nil && rankdir != "" {
		cfg.Graphviz.RankDir = rankdir
	}
	if verbosity, err := cmd.Flags().GetCount("verbose"); err == nil {
		cfg.Verbosity = util.VerbosityLevel(verbosity)
	}

	if cfg.Verbosity > 0 {
		cfg.Logger = util.StdLog{}
	} else {
		cfg.Logger = util.DontLog{}
	}

	return cfg, nil
}
