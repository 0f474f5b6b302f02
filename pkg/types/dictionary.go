// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the shared data types of the apexdict pipeline: the
// input row shape, the output dictionary document, and the pipeline
// configuration.
package types

// Row is one record from the catalog export. Each row describes either a
// procedure/function itself (ArgumentName empty) or one argument of it.
type Row struct {
	// PackageName is the internal fully-qualified package name
	// (e.g. "WWV_FLOW_ACL_API").
	PackageName string

	// Alias is the user-facing short name for the package
	// (e.g. "APEX_ACL"). Grouping and allow-list membership key.
	Alias string

	// ProcedureName is the callable's name within the package.
	ProcedureName string

	// SubprogramType is "PROCEDURE" or "FUNCTION" as exported; empty is
	// treated as a procedure.
	SubprogramType string

	// ReturnType is the function's return type; empty for procedures.
	ReturnType string

	// ArgumentName is the argument's name; empty when the row carries no
	// argument.
	ArgumentName string

	// DataType is the argument's data type.
	DataType string

	// InOut is the argument direction: IN, OUT, or IN/OUT. Empty defaults
	// to IN.
	InOut string

	// DefaultValue is the argument's default expression. Read but unused.
	DefaultValue string

	// Position is the argument's 1-based position in the call signature.
	Position int
}

// Dictionary is the output document consumed by the editor extension.
type Dictionary struct {
	Packages []PackageEntry `json:"packages"`
}

// PackageEntry is one package in the dictionary, in first-seen input order.
type PackageEntry struct {
	// Name is the alias shown to the user.
	Name string `json:"name"`

	// Procedures lists the package's callables in first-seen input order.
	Procedures []ProcedureEntry `json:"procedures"`
}

// ProcedureEntry is one callable in the dictionary.
type ProcedureEntry struct {
	// Label is "ALIAS.PROC_NAME", the completion item text.
	Label string `json:"label"`

	// Detail is "INTERNAL_NAME.PROC_NAME", shown alongside the label.
	Detail string `json:"detail"`

	// Kind is "procedure" or "function".
	Kind string `json:"kind"`

	// Signature is the rendered human-readable call form.
	Signature string `json:"signature"`

	// ReturnType is set only for functions with a known return type.
	ReturnType string `json:"returnType,omitempty"`
}
