package docfill

import (
	"errors"
	"os"
	"strings"
	"testing"
)

func TestErrorTypes(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantMsg string
	}{
		{
			name:    "ConfigurationError",
			err:     &ConfigurationError{Setting: "pdf_name_mask", Message: "unknown field NAME"},
			wantMsg: "configuration error in 'pdf_name_mask': unknown field NAME",
		},
		{
			name:    "EmptyHeaderError",
			err:     &EmptyHeaderError{Path: "data.csv"},
			wantMsg: "headers not found in 'data.csv'",
		},
		{
			name:    "HeaderConflictError",
			err:     NewHeaderConflictError([]string{"DOC_NUM", "AMOUNT"}),
			wantMsg: "wrong headers: AMOUNT, DOC_NUM",
		},
		{
			name:    "InvalidPluralFormsError",
			err:     &InvalidPluralFormsError{Got: 2},
			wantMsg: "currency plural forms must have 3 elements, got 2",
		},
		{
			name:    "ConversionError",
			err:     &ConversionError{Destination: "out.pdf"},
			wantMsg: "conversion failed: 'out.pdf' was not created",
		},
		{
			name:    "DocumentError",
			err:     &DocumentError{Operation: "save", Path: "output.docx", Cause: errors.New("permission denied")},
			wantMsg: "document error during save of 'output.docx': permission denied",
		},
		{
			name:    "ValidationError",
			err:     NewValidationError("doc_num", "must contain digits only"),
			wantMsg: "validation error: doc_num - must contain digits only",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
		})
	}
}

func TestErrorUnwrapping(t *testing.T) {
	err := NewConfigurationError("data", "cannot open record source", os.ErrNotExist)
	if !errors.Is(err, os.ErrNotExist) {
		t.Error("ConfigurationError should unwrap to its cause")
	}

	err = &ConversionError{Destination: "x.pdf", Cause: os.ErrPermission}
	if !errors.Is(err, os.ErrPermission) {
		t.Error("ConversionError should unwrap to its cause")
	}

	err = WithContext(NewDocumentError("copy", "t.docx", os.ErrNotExist), "render", map[string]interface{}{"b": 2, "a": 1})
	if got := err.Error(); !strings.HasPrefix(got, "render [a=1, b=2]: ") {
		t.Errorf("ContextError = %q", got)
	}
	var docErr *DocumentError
	if !errors.As(err, &docErr) || docErr.Operation != "copy" {
		t.Error("ContextError should unwrap to the DocumentError")
	}

	if WithContext(nil, "render", nil) != nil {
		t.Error("WithContext(nil) should be nil")
	}
}

func TestValidationErrorCollect(t *testing.T) {
	v := &ValidationError{}
	if v.Err() != nil {
		t.Error("empty ValidationError.Err() should be nil")
	}

	v.Add("date", "day out of range")
	v.Add("amount", "must contain digits only")

	err := v.Err()
	if err == nil {
		t.Fatal("expected error")
	}
	want := "2 validation issues:\n  date: day out of range\n  amount: must contain digits only"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestMultiError(t *testing.T) {
	m := NewMultiError()
	m.Add(nil)
	if m.Err() != nil {
		t.Error("empty MultiError.Err() should be nil")
	}

	first := errors.New("first")
	m.Add(first)
	if m.Err() != first {
		t.Error("single error should be returned as is")
	}

	m.Add(os.ErrNotExist)
	if m.Len() != 2 {
		t.Errorf("Len() = %d, want 2", m.Len())
	}
	err := m.Err()
	if !errors.Is(err, os.ErrNotExist) || !errors.Is(err, first) {
		t.Error("MultiError should expose every collected error")
	}
	if !strings.HasPrefix(err.Error(), "2 errors occurred:") {
		t.Errorf("Error() = %q", err.Error())
	}
}
