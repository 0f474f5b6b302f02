// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dictionary

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pdiddy/apexdict/internal/allowlist"
	"github.com/pdiddy/apexdict/pkg/types"
)

// allow builds an AllowList from aliases.
func allow(aliases ...string) allowlist.AllowList {
	set := make(allowlist.AllowList, len(aliases))
	for _, a := range aliases {
		set[a] = struct{}{}
	}
	return set
}

// procRow builds a row describing a callable with no argument.
func procRow(alias, pkg, proc, kind, returnType string) types.Row {
	return types.Row{
		PackageName:    pkg,
		Alias:          alias,
		ProcedureName:  proc,
		SubprogramType: kind,
		ReturnType:     returnType,
	}
}

// argRow builds a row describing one argument of a callable.
func argRow(alias, pkg, proc, arg, dataType, inOut string, pos int) types.Row {
	return types.Row{
		PackageName:   pkg,
		Alias:         alias,
		ProcedureName: proc,
		ArgumentName:  arg,
		DataType:      dataType,
		InOut:         inOut,
		Position:      pos,
	}
}

func TestBuildFiltering(t *testing.T) {
	rows := []types.Row{
		procRow("APEX_ACL", "WWV_FLOW_ACL_API", "ADD_USER_ROLE", "PROCEDURE", ""),
		procRow("APEX_SECRET", "WWV_FLOW_SECRET", "HIDDEN_PROC", "PROCEDURE", ""),
		argRow("APEX_SECRET", "WWV_FLOW_SECRET", "HIDDEN_PROC", "P_X", "NUMBER", "IN", 1),
	}

	doc, summary := Build(rows, allow("APEX_ACL"))

	if summary.Packages != 1 || len(doc.Packages) != 1 {
		t.Fatalf("packages = %d, want 1", len(doc.Packages))
	}
	if doc.Packages[0].Name != "APEX_ACL" {
		t.Errorf("package name = %q, want APEX_ACL", doc.Packages[0].Name)
	}

	var buf bytes.Buffer
	if err := Encode(&buf, doc); err != nil {
		t.Fatal(err)
	}
	for _, leak := range []string{"APEX_SECRET", "WWV_FLOW_SECRET", "HIDDEN_PROC", "P_X"} {
		if strings.Contains(buf.String(), leak) {
			t.Errorf("filtered alias leaked into output: %q", leak)
		}
	}
}

func TestBuildSignatureWithArgs(t *testing.T) {
	rows := []types.Row{
		argRow("APEX_ACL", "WWV_FLOW_ACL_API", "ADD_USER_ROLE", "P_USER_ID", "VARCHAR2", "IN", 1),
		argRow("APEX_ACL", "WWV_FLOW_ACL_API", "ADD_USER_ROLE", "P_ROLE", "VARCHAR2", "IN", 2),
	}

	doc, _ := Build(rows, allow("APEX_ACL"))

	proc := doc.Packages[0].Procedures[0]
	want := "APEX_ACL.ADD_USER_ROLE(P_USER_ID IN VARCHAR2, P_ROLE IN VARCHAR2)"
	if proc.Signature != want {
		t.Errorf("signature = %q, want %q", proc.Signature, want)
	}
	if proc.Label != "APEX_ACL.ADD_USER_ROLE" {
		t.Errorf("label = %q", proc.Label)
	}
	if proc.Detail != "WWV_FLOW_ACL_API.ADD_USER_ROLE" {
		t.Errorf("detail = %q", proc.Detail)
	}
}

func TestBuildArgumentOrdering(t *testing.T) {
	// Arguments arrive at positions 3, 1, 2; the signature must list 1, 2, 3.
	rows := []types.Row{
		argRow("APEX_UTIL", "WWV_FLOW_UTILITIES", "SET_SESSION_STATE", "P_THIRD", "VARCHAR2", "IN", 3),
		argRow("APEX_UTIL", "WWV_FLOW_UTILITIES", "SET_SESSION_STATE", "P_FIRST", "VARCHAR2", "IN", 1),
		argRow("APEX_UTIL", "WWV_FLOW_UTILITIES", "SET_SESSION_STATE", "P_SECOND", "VARCHAR2", "IN", 2),
	}

	doc, _ := Build(rows, allow("APEX_UTIL"))

	got := doc.Packages[0].Procedures[0].Signature
	want := "APEX_UTIL.SET_SESSION_STATE(P_FIRST IN VARCHAR2, P_SECOND IN VARCHAR2, P_THIRD IN VARCHAR2)"
	if got != want {
		t.Errorf("signature = %q, want %q", got, want)
	}
}

func TestBuildDeduplication(t *testing.T) {
	// Overload variants collapsed onto one procedure key repeat argument
	// rows; the duplicate (name, position) pair contributes one argument.
	rows := []types.Row{
		argRow("APEX_ACL", "WWV_FLOW_ACL_API", "REMOVE_USER_ROLE", "P_USER_ID", "VARCHAR2", "IN", 1),
		argRow("APEX_ACL", "WWV_FLOW_ACL_API", "REMOVE_USER_ROLE", "P_USER_ID", "NUMBER", "IN", 1),
	}

	doc, _ := Build(rows, allow("APEX_ACL"))

	got := doc.Packages[0].Procedures[0].Signature
	// The first-seen variant wins; the later duplicate is discarded, not merged.
	want := "APEX_ACL.REMOVE_USER_ROLE(P_USER_ID IN VARCHAR2)"
	if got != want {
		t.Errorf("signature = %q, want %q", got, want)
	}
}

func TestBuildFunctionRendering(t *testing.T) {
	tests := []struct {
		name           string
		kind           string
		returnType     string
		wantSignature  string
		wantReturnType string
	}{
		{
			name:           "function with return type",
			kind:           "FUNCTION",
			returnType:     "NUMBER",
			wantSignature:  "APEX_UTIL.GET_SESSION_ID RETURN NUMBER",
			wantReturnType: "NUMBER",
		},
		{
			name:          "same row as a procedure",
			kind:          "PROCEDURE",
			returnType:    "NUMBER",
			wantSignature: "APEX_UTIL.GET_SESSION_ID",
		},
		{
			name:          "function without return type",
			kind:          "FUNCTION",
			returnType:    "",
			wantSignature: "APEX_UTIL.GET_SESSION_ID",
		},
		{
			name:          "kind defaults to procedure",
			kind:          "",
			returnType:    "",
			wantSignature: "APEX_UTIL.GET_SESSION_ID",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := []types.Row{
				procRow("APEX_UTIL", "WWV_FLOW_UTILITIES", "GET_SESSION_ID", tt.kind, tt.returnType),
			}
			doc, _ := Build(rows, allow("APEX_UTIL"))

			proc := doc.Packages[0].Procedures[0]
			if proc.Signature != tt.wantSignature {
				t.Errorf("signature = %q, want %q", proc.Signature, tt.wantSignature)
			}
			if proc.ReturnType != tt.wantReturnType {
				t.Errorf("returnType = %q, want %q", proc.ReturnType, tt.wantReturnType)
			}
			wantKind := strings.ToLower(tt.kind)
			if wantKind == "" {
				wantKind = "procedure"
			}
			if proc.Kind != wantKind {
				t.Errorf("kind = %q, want %q", proc.Kind, wantKind)
			}
		})
	}
}

func TestBuildFunctionWithArgsAndReturn(t *testing.T) {
	rows := []types.Row{
		{
			PackageName:    "WWV_FLOW_UTILITIES",
			Alias:          "APEX_UTIL",
			ProcedureName:  "GET_USER_ID",
			SubprogramType: "FUNCTION",
			ReturnType:     "NUMBER",
			ArgumentName:   "P_USERNAME",
			DataType:       "VARCHAR2",
			InOut:          "IN",
			Position:       1,
		},
	}

	doc, summary := Build(rows, allow("APEX_UTIL"))

	got := doc.Packages[0].Procedures[0].Signature
	want := "APEX_UTIL.GET_USER_ID(P_USERNAME IN VARCHAR2) RETURN NUMBER"
	if got != want {
		t.Errorf("signature = %q, want %q", got, want)
	}
	if summary.Functions != 1 || summary.ProcedureOnly() != 0 {
		t.Errorf("summary = %+v, want 1 function, 0 procedures", summary)
	}
}

func TestBuildDirectionDefaultsToIn(t *testing.T) {
	rows := []types.Row{
		argRow("APEX_ACL", "WWV_FLOW_ACL_API", "HAS_USER_ROLE", "P_ROLE", "VARCHAR2", "", 1),
	}

	doc, _ := Build(rows, allow("APEX_ACL"))

	got := doc.Packages[0].Procedures[0].Signature
	want := "APEX_ACL.HAS_USER_ROLE(P_ROLE IN VARCHAR2)"
	if got != want {
		t.Errorf("signature = %q, want %q", got, want)
	}
}

func TestBuildFirstSeenOrder(t *testing.T) {
	rows := []types.Row{
		procRow("APEX_UTIL", "WWV_FLOW_UTILITIES", "GET_SESSION_ID", "FUNCTION", "NUMBER"),
		procRow("APEX_ACL", "WWV_FLOW_ACL_API", "ADD_USER_ROLE", "PROCEDURE", ""),
		procRow("APEX_UTIL", "WWV_FLOW_UTILITIES", "CLEAR_USER_CACHE", "PROCEDURE", ""),
		// Later row with a different internal name must not rebind the package.
		procRow("APEX_UTIL", "WWV_FLOW_OTHER", "ANOTHER_PROC", "PROCEDURE", ""),
	}

	doc, summary := Build(rows, allow("APEX_UTIL", "APEX_ACL"))

	if len(doc.Packages) != 2 {
		t.Fatalf("packages = %d, want 2", len(doc.Packages))
	}
	if doc.Packages[0].Name != "APEX_UTIL" || doc.Packages[1].Name != "APEX_ACL" {
		t.Errorf("package order = %q, %q; want APEX_UTIL, APEX_ACL",
			doc.Packages[0].Name, doc.Packages[1].Name)
	}

	procs := doc.Packages[0].Procedures
	if len(procs) != 3 {
		t.Fatalf("APEX_UTIL procedures = %d, want 3", len(procs))
	}
	if procs[0].Label != "APEX_UTIL.GET_SESSION_ID" || procs[1].Label != "APEX_UTIL.CLEAR_USER_CACHE" {
		t.Errorf("procedure order wrong: %q, %q", procs[0].Label, procs[1].Label)
	}
	if procs[2].Detail != "WWV_FLOW_UTILITIES.ANOTHER_PROC" {
		t.Errorf("detail = %q, want first-seen internal name to win", procs[2].Detail)
	}

	if summary.Packages != 2 || summary.Procedures != 4 || summary.Functions != 1 {
		t.Errorf("summary = %+v, want 2 packages, 4 procedures, 1 function", summary)
	}
}

func TestBuildEmptyResult(t *testing.T) {
	rows := []types.Row{
		procRow("APEX_ACL", "WWV_FLOW_ACL_API", "ADD_USER_ROLE", "PROCEDURE", ""),
	}

	doc, summary := Build(rows, allow("SOMETHING_ELSE"))

	if summary != (Summary{}) {
		t.Errorf("summary = %+v, want zero counts", summary)
	}

	var buf bytes.Buffer
	if err := Encode(&buf, doc); err != nil {
		t.Fatal(err)
	}
	want := "{\n  \"packages\": []\n}\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestBuildDeterministic(t *testing.T) {
	rows := []types.Row{
		procRow("APEX_UTIL", "WWV_FLOW_UTILITIES", "GET_SESSION_ID", "FUNCTION", "NUMBER"),
		argRow("APEX_ACL", "WWV_FLOW_ACL_API", "ADD_USER_ROLE", "P_ROLE", "VARCHAR2", "IN", 2),
		argRow("APEX_ACL", "WWV_FLOW_ACL_API", "ADD_USER_ROLE", "P_USER_ID", "VARCHAR2", "IN", 1),
		procRow("APEX_STRING", "WWV_FLOW_STRING", "JOIN", "FUNCTION", "VARCHAR2"),
	}
	allowed := allow("APEX_ACL", "APEX_UTIL", "APEX_STRING")

	var first, second bytes.Buffer
	doc1, _ := Build(rows, allowed)
	if err := Encode(&first, doc1); err != nil {
		t.Fatal(err)
	}
	doc2, _ := Build(rows, allowed)
	if err := Encode(&second, doc2); err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(first.Bytes(), second.Bytes()) {
		t.Error("two builds of identical input produced different bytes")
	}
}

func TestBuildStableSortOnDuplicatePositions(t *testing.T) {
	// Distinct names at the same position: ties keep first-seen order.
	rows := []types.Row{
		argRow("APEX_ACL", "WWV_FLOW_ACL_API", "ODD_PROC", "P_B", "NUMBER", "IN", 1),
		argRow("APEX_ACL", "WWV_FLOW_ACL_API", "ODD_PROC", "P_A", "NUMBER", "IN", 1),
	}

	doc, _ := Build(rows, allow("APEX_ACL"))

	got := doc.Packages[0].Procedures[0].Signature
	want := "APEX_ACL.ODD_PROC(P_B IN NUMBER, P_A IN NUMBER)"
	if got != want {
		t.Errorf("signature = %q, want %q", got, want)
	}
}
