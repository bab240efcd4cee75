/*
Copyright 2025 Trident Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package weburl

import "testing"

func TestValidationErrorCodeSeverity(t *testing.T) {
	t.Parallel()
	if HostMissing.Severity() != SeverityFatal {
		t.Fatalf("expected HostMissing to be fatal")
	}
	if InvalidURLUnit.Severity() != SeverityValidation {
		t.Fatalf("expected InvalidURLUnit to be non-fatal")
	}
}

func TestValidationErrorCodeString(t *testing.T) {
	t.Parallel()
	if got := HostMissing.String(); got != "host-missing" {
		t.Fatalf("String() = %q, want %q", got, "host-missing")
	}
	if got := ValidationErrorCode(9999).String(); got != "unknown-validation-error" {
		t.Fatalf("String() for unknown code = %q", got)
	}
}

func TestDiagnosticsAccumulate(t *testing.T) {
	t.Parallel()
	var d Diagnostics
	if d.HasErrors() {
		t.Fatalf("expected no errors on a fresh Diagnostics")
	}
	d.Add(InvalidURLUnit, 3)
	d.Add(HostMissing, 7)
	if !d.HasErrors() {
		t.Fatalf("expected HasErrors to be true")
	}
	errs := d.Errors()
	if len(errs) != 2 || errs[0].Code != InvalidURLUnit || errs[0].Offset != 3 {
		t.Fatalf("unexpected errors: %+v", errs)
	}
	if !errs[1].IsFatal() {
		t.Fatalf("expected second error to be fatal")
	}
}

func TestParseErrorMessage(t *testing.T) {
	t.Parallel()
	err := &ParseError{
		Input:  "http://",
		Errors: []ValidationError{{Code: HostMissing, Offset: 7}},
	}
	msg := err.Error()
	if msg == "" {
		t.Fatalf("expected non-empty error message")
	}
}
