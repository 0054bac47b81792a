package client

import (
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const sortResultSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["steps"],
  "properties": {
    "steps": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["array", "comparing", "swapping", "sorted", "description"],
        "properties": {
          "array": {"type": "array", "items": {"type": "integer"}},
          "comparing": {"type": "array", "items": {"type": "integer", "minimum": 0}, "maxItems": 2},
          "swapping": {"type": "boolean"},
          "sorted": {"type": "array", "items": {"type": "integer", "minimum": 0}},
          "description": {"type": "string"}
        }
      }
    },
    "timeTakenMs": {"type": "number"},
    "algorithm": {"type": "string"}
  }
}`

const primeResultSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["number", "isPrime", "steps", "timeTakenMs", "message"],
  "properties": {
    "number": {"type": "integer", "minimum": 2},
    "isPrime": {"type": "boolean"},
    "timeTakenMs": {"type": "number"},
    "message": {"type": "string"},
    "steps": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["divisor", "expression", "result", "isMatch", "status"],
        "properties": {
          "divisor": {"type": "integer", "minimum": 2},
          "expression": {"type": "string"},
          "result": {"type": "string"},
          "isMatch": {"type": "boolean"},
          "status": {"type": "string"}
        }
      }
    }
  }
}`

var (
	sortSchema  = mustCompile("sort-result", sortResultSchema)
	primeSchema = mustCompile("prime-result", primeResultSchema)
)

func mustCompile(name, schema string) *jsonschema.Schema {
	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft2020
	url := fmt.Sprintf("https://algoviz.local/schemas/%s.schema.json", name)
	if err := c.AddResource(url, strings.NewReader(schema)); err != nil {
		panic(fmt.Sprintf("schema %s load failed: %v", name, err))
	}
	compiled, err := c.Compile(url)
	if err != nil {
		panic(fmt.Sprintf("schema %s compile failed: %v", name, err))
	}
	return compiled
}
