package agentdata

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/vietanhdev/agentweave/src/agentapi"
)

// ValidateToolInput checks params against the tool's parameter schema. Tools
// without a schema only have their required parameter names enforced.
func ValidateToolInput(tool *agentapi.Tool, params map[string]interface{}) error {
	if params == nil {
		params = map[string]interface{}{}
	}

	for _, name := range tool.RequiredParameters {
		if _, ok := params[name]; !ok {
			return fmt.Errorf("tool %s: missing required parameter %q", tool.Name, name)
		}
	}

	if len(tool.Parameters) == 0 {
		return nil
	}

	schema, err := compileToolSchema(tool)
	if err != nil {
		return err
	}

	// Round-trip params through JSON so numbers arrive in the form the
	// validator expects.
	encoded, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("tool %s: failed to encode parameters: %w", tool.Name, err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(encoded))
	if err != nil {
		return fmt.Errorf("tool %s: failed to prepare parameters: %w", tool.Name, err)
	}

	if err := schema.Validate(inst); err != nil {
		return fmt.Errorf("tool %s: invalid parameters: %w", tool.Name, err)
	}
	return nil
}

// compileToolSchema compiles the tool's parameter schema.
func compileToolSchema(tool *agentapi.Tool) (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(tool.Parameters))
	if err != nil {
		return nil, fmt.Errorf("tool %s: invalid parameter schema: %w", tool.Name, err)
	}

	resourceName := fmt.Sprintf("tool-%s.schema.json", tool.Name)
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(resourceName, doc); err != nil {
		return nil, fmt.Errorf("tool %s: failed to register schema: %w", tool.Name, err)
	}

	schema, err := compiler.Compile(resourceName)
	if err != nil {
		return nil, fmt.Errorf("tool %s: failed to compile schema: %w", tool.Name, err)
	}
	return schema, nil
}
