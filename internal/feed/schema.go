package feed

import (
	"embed"
	"fmt"
	"strings"
	"sync"

	"github.com/ralt/pluginstats/internal/models"
	"github.com/xeipuuv/gojsonschema"
)

//go:embed schemas/*.json
var schemaFS embed.FS

const (
	classifiersSchema = "schemas/classifiers.schema.json"
	extendedSchema    = "schemas/extended_summary.schema.json"
)

var (
	schemaMu       sync.Mutex
	schemaRegistry = make(map[string]*gojsonschema.Schema)
)

// SchemaError lists the violations found in a feed document
type SchemaError struct {
	Schema     string
	Violations []string
}

func (e *SchemaError) Error() string {
	const shown = 5
	v := e.Violations
	more := ""
	if len(v) > shown {
		more = fmt.Sprintf(" (and %d more)", len(v)-shown)
		v = v[:shown]
	}
	return fmt.Sprintf("%d schema violation(s): %s%s", len(e.Violations), strings.Join(v, "; "), more)
}

func compiledSchema(name string) (*gojsonschema.Schema, error) {
	schemaMu.Lock()
	defer schemaMu.Unlock()

	if sch, ok := schemaRegistry[name]; ok {
		return sch, nil
	}
	b, err := schemaFS.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("read schema %s: %w", name, err)
	}
	sch, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(b))
	if err != nil {
		return nil, fmt.Errorf("compile schema %s: %w", name, err)
	}
	schemaRegistry[name] = sch
	return sch, nil
}

// validateDocument checks data against one of the embedded feed schemas.
// data must already be valid JSON. Violations come back as an ErrSchema
// AnalysisError wrapping a *SchemaError.
func validateDocument(name string, data []byte) error {
	sch, err := compiledSchema(name)
	if err != nil {
		return err
	}
	res, err := sch.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("validate against %s: %w", name, err)
	}
	if res.Valid() {
		return nil
	}

	serr := &SchemaError{Schema: strings.TrimSuffix(strings.TrimPrefix(name, "schemas/"), ".schema.json")}
	for _, re := range res.Errors() {
		serr.Violations = append(serr.Violations, re.String())
	}
	return models.NewError(models.ErrSchema, serr.Schema, serr)
}
