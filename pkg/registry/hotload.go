package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	"github.com/flowmesh/dataflow/pkg/handler"
	"github.com/flowmesh/dataflow/pkg/types"
)

var manifestSchemaLoader = gojsonschema.NewStringLoader(manifestSchema)

// LoadDir walks dir for *.node.yaml files and hot-loads each one,
// returning the count successfully loaded. The first file that fails to
// parse, validate, or compile aborts the walk and returns its error —
// callers that want best-effort loading should call LoadFile themselves
// per matched path.
func (r *Registry) LoadDir(dir string) (int, error) {
	var loaded int
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".node.yaml") {
			return nil
		}
		if _, loadErr := r.LoadFile(path); loadErr != nil {
			return fmt.Errorf("registry: loading %s: %w", path, loadErr)
		}
		loaded++
		return nil
	})
	if err != nil {
		return loaded, err
	}
	return loaded, nil
}

// LoadFile hot-adds one *.node.yaml manifest, validating its shape
// against manifestSchema and compiling its handler expression, then
// registers the resulting NodeSpec in the user tier (shadowing any
// built-in of the same NodeType).
func (r *Registry) LoadFile(path string) (types.NodeSpec, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return types.NodeSpec{}, err
	}
	return r.LoadBytes(raw)
}

// LoadBytes parses and registers one manifest from raw YAML bytes, the
// same path the control surface's POST /upload-nodes endpoint uses for
// an in-memory upload (spec.md §6).
func (r *Registry) LoadBytes(raw []byte) (types.NodeSpec, error) {
	var generic map[string]any
	if err := yaml.Unmarshal(raw, &generic); err != nil {
		return types.NodeSpec{}, fmt.Errorf("registry: parsing manifest: %w", err)
	}

	asJSON, err := json.Marshal(generic)
	if err != nil {
		return types.NodeSpec{}, fmt.Errorf("registry: re-encoding manifest for validation: %w", err)
	}
	result, err := gojsonschema.Validate(manifestSchemaLoader, gojsonschema.NewBytesLoader(asJSON))
	if err != nil {
		return types.NodeSpec{}, fmt.Errorf("registry: schema validation: %w", err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return types.NodeSpec{}, fmt.Errorf("registry: manifest invalid: %s", strings.Join(msgs, "; "))
	}

	var m manifest
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return types.NodeSpec{}, fmt.Errorf("registry: decoding manifest: %w", err)
	}

	program, err := expr.Compile(m.Handler)
	if err != nil {
		return types.NodeSpec{}, fmt.Errorf("registry: compiling handler expression: %w", err)
	}

	spec := types.NodeSpec{
		NodeType: m.NodeType,
		Category: m.Category,
		Inputs:   make(map[string]types.InputDef, len(m.Inputs)),
		Outputs:  make(map[string]types.OutputDef, len(m.Outputs)),
	}
	for _, in := range m.Inputs {
		def := types.InputDef{Type: in.Type}
		if in.Init != nil {
			v := types.FromAny(in.Init)
			def.Init = &v
		}
		if in.Default != nil {
			v := types.FromAny(in.Default)
			def.Default = &v
		}
		spec.Inputs[in.Name] = def
		spec.InputOrder = append(spec.InputOrder, in.Name)
	}
	for _, out := range m.Outputs {
		spec.Outputs[out.Name] = types.OutputDef{Type: out.Type}
	}
	spec.Handler = compiledExpressionHandler(program, m.Outputs)

	r.registerUser(spec)
	kind := kindFromString(m.Kind)
	if kind != types.KindRegular {
		r.MarkKind(m.NodeType, kind)
	}
	return spec, nil
}

// compiledExpressionHandler evaluates a pre-compiled expr-lang program
// once per firing against the popped input arguments and routes any of
// the declared outputs present in the result map. The expression is
// expected to evaluate to a map — e.g. `{result: a + b}` — one entry per
// output branch it wants to yield on.
func compiledExpressionHandler(program *vm.Program, outputs []manifestOutput) types.Handler {
	return handler.FromSync(func(args map[string]types.Value) ([]types.Item, error) {
		env := make(map[string]any, len(args))
		for k, v := range args {
			env[k] = v.Unwrap()
		}
		out, err := expr.Run(program, env)
		if err != nil {
			return nil, fmt.Errorf("registry: evaluating handler expression: %w", err)
		}
		result, ok := out.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("registry: handler expression must evaluate to a map, got %T", out)
		}
		items := make([]types.Item, 0, len(outputs))
		for _, o := range outputs {
			if v, present := result[o.Name]; present {
				items = append(items, types.Item{Branch: o.Name, Value: types.FromAny(v)})
			}
		}
		return items, nil
	})
}
