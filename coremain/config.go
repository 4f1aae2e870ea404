package coremain

import (
	"github.com/pmkol/sllist/mlog"
)

type Config struct {
	Log     mlog.LogConfig `yaml:"log"`
	Include []string       `yaml:"include"`
	API     APIConfig      `yaml:"api"`
	List    ListConfig     `yaml:"list"`
	Steps   []StepConfig   `yaml:"steps"`
}

type APIConfig struct {
	HTTP string `yaml:"http"`
}

type ListConfig struct {
	// Variant is "unordered" (default) or "ordered".
	Variant string `yaml:"variant"`
	// ElemType is "int" (default) or "string".
	ElemType string `yaml:"elem_type"`
}

// StepConfig is one operation of a script. Which fields are used
// depends on Op.
type StepConfig struct {
	Op string `yaml:"op"`

	// Target is the name of the list the step works on. Default is "main".
	Target string `yaml:"target"`

	Value  string   `yaml:"value"`
	Values []string `yaml:"values"`
	Pos    *int     `yaml:"pos"`
	Expr   string   `yaml:"expr"`
	From   string   `yaml:"from"`
	To     string   `yaml:"to"`

	// Format of print, "text" (default) or "yaml".
	Format string `yaml:"format"`
}
