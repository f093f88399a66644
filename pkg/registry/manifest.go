package registry

import "github.com/flowmesh/dataflow/pkg/types"

// manifest is the on-disk shape of a *.node.yaml hot-load file. This
// mirrors the fields a NodeSpec needs (core/spec_models.py's NodeSpec +
// InputDef/OutputDef), generalized from Python source text to an
// expr-lang expression string for the handler body, since Go cannot
// exec arbitrary source at runtime (spec.md §4.5 "loading a configured
// directory of files at startup").
type manifest struct {
	NodeType string              `yaml:"node_type" json:"node_type"`
	Category string              `yaml:"category" json:"category"`
	Kind     string              `yaml:"kind" json:"kind"`
	Inputs   []manifestInput     `yaml:"inputs" json:"inputs"`
	Outputs  []manifestOutput    `yaml:"outputs" json:"outputs"`
	Handler  string              `yaml:"handler" json:"handler"`
}

type manifestInput struct {
	Name    string `yaml:"name" json:"name"`
	Type    string `yaml:"type" json:"type"`
	Init    any    `yaml:"init,omitempty" json:"init,omitempty"`
	Default any    `yaml:"default,omitempty" json:"default,omitempty"`
}

type manifestOutput struct {
	Name string `yaml:"name" json:"name"`
	Type string `yaml:"type" json:"type"`
}

// manifestSchema is the JSON Schema every hot-loaded manifest must
// satisfy, enforced via gojsonschema before the handler expression is
// ever compiled.
const manifestSchema = `{
  "type": "object",
  "required": ["node_type", "inputs", "outputs", "handler"],
  "properties": {
    "node_type": {"type": "string", "minLength": 1},
    "category": {"type": "string"},
    "kind": {"type": "string", "enum": ["regular", "trigger", "terminal_output", "logger", "ui_component"]},
    "inputs": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["name", "type"],
        "properties": {
          "name": {"type": "string", "minLength": 1},
          "type": {"type": "string", "minLength": 1}
        }
      }
    },
    "outputs": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["name", "type"],
        "properties": {
          "name": {"type": "string", "minLength": 1},
          "type": {"type": "string", "minLength": 1}
        }
      }
    },
    "handler": {"type": "string", "minLength": 1}
  }
}`

func kindFromString(s string) types.NodeKind {
	switch s {
	case "trigger":
		return types.KindTrigger
	case "terminal_output":
		return types.KindTerminalOutput
	case "logger":
		return types.KindLogger
	case "ui_component":
		return types.KindUIComponent
	default:
		return types.KindRegular
	}
}
