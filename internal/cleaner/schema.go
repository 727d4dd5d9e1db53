package cleaner

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// productSchema is the document shape the cleaner knows how to walk.
const productSchema = `{
  "type": "object",
  "required": ["identifier"],
  "properties": {
    "identifier": {"type": "string", "minLength": 1},
    "product_type": {"type": ["string", "null"]},
    "categories": {"type": "array", "items": {"type": "string"}},
    "values": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["attribute"],
        "properties": {
          "attribute": {"type": "string"},
          "option": {"type": ["string", "null"]},
          "options": {"type": "array", "items": {"type": "string"}}
        }
      }
    },
    "normalized": {"type": "object"},
    "completenesses": {"type": ["array", "object"]}
  }
}`

func compileSchema() (*gojsonschema.Schema, error) {
	sch, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(productSchema))
	if err != nil {
		return nil, fmt.Errorf("compiling product schema: %w", err)
	}
	return sch, nil
}

// validate returns one message per schema violation of doc, or nil.
func validate(sch *gojsonschema.Schema, doc map[string]any) ([]string, error) {
	res, err := sch.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return nil, fmt.Errorf("validating document: %w", err)
	}
	if res.Valid() {
		return nil, nil
	}
	msgs := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		msgs = append(msgs, fmt.Sprintf("%s: %s", e.Field(), e.Description()))
	}
	return msgs, nil
}
