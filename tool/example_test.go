package tool

import (
	"context"
	"fmt"
)

func ExampleRegistry_Instructions() {
	type greetArgs struct {
		Name    string `json:"name"`
		Excited bool   `json:"excited" default:"false"`
	}

	reg := NewRegistry()
	reg.RegisterFunc("greet", func(ctx context.Context, args map[string]any) (any, error) {
		return fmt.Sprintf("Hello, %v", args["name"]), nil
	}, "Greets a user by name.", greetArgs{})

	fmt.Print(reg.Instructions())
	// Output:
	// ## Available Tools
	//
	// These functions are available in the interpreter.
	// Call them directly in your code (no imports needed):
	//
	// ### `greet`
	// Greets a user by name.
	//
	// **Parameters:**
	// - `name` (string, required)
	// - `excited` (boolean, default=false)
}

func ExampleInferSchema() {
	type args struct {
		Query string  `json:"query"`
		Limit int     `json:"limit" default:"5"`
		Lang  *string `json:"lang"`
	}

	schema := InferSchema(args{})
	fmt.Println(schema.Order)
	fmt.Println(schema.Required)
	fmt.Println(schema.Properties["limit"].Default)
	// Output:
	// [query limit lang]
	// [query]
	// 5
}
