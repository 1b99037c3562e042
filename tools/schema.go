package tools

import (
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
)

// DefaultNumResults is the page size used when a tool call omits one.
const DefaultNumResults = 10

// inputSchema infers the schema of T and applies the constraints in opts.
// It panics on failure, like tool definitions built at startup.
func inputSchema[T any](opts ...schemaOption) *jsonschema.Schema {
	schema, err := jsonschema.For[T](nil)
	if err != nil {
		panic(err)
	}
	for _, opt := range opts {
		opt(schema)
	}
	return schema
}

type schemaOption func(*jsonschema.Schema)

func property(s *jsonschema.Schema, name string) *jsonschema.Schema {
	p, ok := s.Properties[name]
	if !ok {
		panic(fmt.Sprintf("schema has no property %q", name))
	}
	return p
}

// intRange bounds an integer property to [min, max].
func intRange(name string, min, max int) schemaOption {
	return func(s *jsonschema.Schema) {
		p := property(s, name)
		lo, hi := float64(min), float64(max)
		p.Minimum = &lo
		p.Maximum = &hi
	}
}

// atLeast bounds an integer property from below.
func atLeast(name string, min int) schemaOption {
	return func(s *jsonschema.Schema) {
		lo := float64(min)
		property(s, name).Minimum = &lo
	}
}

// nonEmpty requires a string property to have at least one character.
func nonEmpty(name string) schemaOption {
	return func(s *jsonschema.Schema) {
		n := 1
		property(s, name).MinLength = &n
	}
}

// itemCount bounds the length of an array property.
func itemCount(name string, min, max int) schemaOption {
	return func(s *jsonschema.Schema) {
		p := property(s, name)
		p.MinItems = &min
		if max > 0 {
			p.MaxItems = &max
		}
	}
}

// oneOf restricts a string property to values.
func oneOf(name string, values ...string) schemaOption {
	return func(s *jsonschema.Schema) {
		enum := make([]any, len(values))
		for i, v := range values {
			enum[i] = v
		}
		property(s, name).Enum = enum
	}
}

// itemsOneOf restricts the elements of a string array property to values.
func itemsOneOf(name string, values ...string) schemaOption {
	return func(s *jsonschema.Schema) {
		p := property(s, name)
		if p.Items == nil {
			panic(fmt.Sprintf("property %q is not an array", name))
		}
		enum := make([]any, len(values))
		for i, v := range values {
			enum[i] = v
		}
		p.Items.Enum = enum
	}
}

// orDefault returns v, or def when v is zero.
func orDefault(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}
