package llm

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// maxReportedViolations caps how many schema violations an error lists.
const maxReportedViolations = 3

var (
	compiledSchemas sync.Map // schema name -> *jsonschema.Schema
	violationText   = message.NewPrinter(language.English)
)

// validateResponse checks raw against schema. A nil schema accepts
// anything. Failures are *ErrInvalidResponse naming where the output went
// wrong, e.g. "/questions/2: missing property 'answer'".
func validateResponse(schema *Schema, raw json.RawMessage) error {
	if schema == nil {
		return nil
	}
	invalid := func(err error) error { return &ErrInvalidResponse{Content: raw, Err: err} }

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return invalid(fmt.Errorf("invalid JSON: %w", err))
	}
	compiled, err := compileSchema(schema)
	if err != nil {
		return invalid(err)
	}
	if err := compiled.Validate(doc); err != nil {
		var ve *jsonschema.ValidationError
		if errors.As(err, &ve) {
			return invalid(fmt.Errorf("%s does not match: %s", schema.Name, describeViolations(ve)))
		}
		return invalid(err)
	}
	return nil
}

// compileSchema compiles schema once per name.
func compileSchema(schema *Schema) (*jsonschema.Schema, error) {
	if cached, ok := compiledSchemas.Load(schema.Name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	def, err := json.Marshal(schema.Definition)
	if err != nil {
		return nil, fmt.Errorf("encode schema %q: %w", schema.Name, err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(def))
	if err != nil {
		return nil, fmt.Errorf("decode schema %q: %w", schema.Name, err)
	}

	url := "schema://" + schema.Name + ".json"
	c := jsonschema.NewCompiler()
	if err := c.AddResource(url, doc); err != nil {
		return nil, fmt.Errorf("add schema %q: %w", schema.Name, err)
	}
	compiled, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile schema %q: %w", schema.Name, err)
	}

	actual, _ := compiledSchemas.LoadOrStore(schema.Name, compiled)
	return actual.(*jsonschema.Schema), nil
}

// describeViolations lists the innermost failures of ve with their JSON
// pointer, most specific first.
func describeViolations(ve *jsonschema.ValidationError) string {
	var leaves []*jsonschema.ValidationError
	var walk func(*jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if len(e.Causes) == 0 {
			leaves = append(leaves, e)
			return
		}
		for _, c := range e.Causes {
			walk(c)
		}
	}
	walk(ve)

	parts := make([]string, 0, maxReportedViolations)
	for _, leaf := range leaves {
		if len(parts) == maxReportedViolations {
			parts = append(parts, fmt.Sprintf("and %d more", len(leaves)-maxReportedViolations))
			break
		}
		parts = append(parts, "/"+strings.Join(leaf.InstanceLocation, "/")+": "+
			leaf.ErrorKind.LocalizedString(violationText))
	}
	return strings.Join(parts, "; ")
}
