package catalog

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// Schema renders a JSON Schema for the catalog file format. Catalog authors
// can point their editor at it to validate custom catalogs before a run.
func Schema() ([]byte, error) {
	reflector := jsonschema.Reflector{
		ExpandedStruct: true,
		DoNotReference: true,
	}

	schema := reflector.Reflect(&Catalog{})
	schema.Title = "gameplan issue template catalog"
	schema.Description = "Category-keyed issue templates consumed by the template selector."

	out, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling catalog schema: %w", err)
	}
	return out, nil
}
