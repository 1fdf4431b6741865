// Package tool provides the registry of interpreter-callable tools.
//
// A tool is a named capability with a description and a parameter schema,
// stored behind the uniform [Handler] shape regardless of where it came from
// (built-in function, toolkit adapter, user code). Tools registered here are
// injected into the code interpreter's namespace, making them callable as
// ordinary functions from executed code.
//
// # Registry
//
// [Registry] maps names to [Definition] values. Registration order is
// preserved for documentation; re-registering a name overwrites the prior
// definition in place. Reads go through [Registry.Namespace] (a snapshot of
// name to handler), [Registry.Instructions] (markdown documentation for
// agent prompts), and the usual lookups.
//
// # Schema inference
//
// [InferSchema] derives a parameter schema from an args prototype struct:
// field declaration order is preserved, pointer fields are optional with a
// null default, and a `default:"..."` tag records a default value. Fields
// with neither are required. The leading context.Context every Handler takes
// is an implicit parameter and never appears in schemas.
package tool
