package errors

import (
	stderrors "errors"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantMsg string
		wantCat Category
	}{
		{
			name:    "use after dispose",
			code:    "R001",
			wantMsg: "Use after dispose",
			wantCat: CategoryLifecycle,
		},
		{
			name:    "propagation cycle",
			code:    "R002",
			wantMsg: "Propagation cycle",
			wantCat: CategoryPropagation,
		},
		{
			name:    "config",
			code:    "C001",
			wantMsg: "Invalid configuration",
			wantCat: CategoryConfig,
		},
		{
			name:    "unknown error code",
			code:    "R999",
			wantMsg: "Unknown error",
			wantCat: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code)
			if err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", err.Message, tt.wantMsg)
			}
			if err.Category != tt.wantCat {
				t.Errorf("Category = %q, want %q", err.Category, tt.wantCat)
			}
			if err.Code != tt.code {
				t.Errorf("Code = %q, want %q", err.Code, tt.code)
			}
		})
	}
}

func TestWrapSupportsIs(t *testing.T) {
	sentinel := stderrors.New("sentinel")
	err := New("R001").Wrap(sentinel)

	if !stderrors.Is(err, sentinel) {
		t.Error("errors.Is should see through Wrap")
	}

	var re *Error
	if !stderrors.As(error(err), &re) || re.Code != "R001" {
		t.Errorf("errors.As failed, got %v", re)
	}
}

func TestErrorString(t *testing.T) {
	err := New("R002").WithDetail("3 passes")
	if got := err.Error(); got != "R002: Propagation cycle (3 passes)" {
		t.Errorf("Error() = %q", got)
	}

	plain := Newf(CategoryCLI, "bad flag %q", "x")
	if got := plain.Error(); got != `bad flag "x"` {
		t.Errorf("Error() = %q", got)
	}
}

func TestFromError(t *testing.T) {
	if FromError(nil, "R003") != nil {
		t.Error("FromError(nil) should be nil")
	}

	existing := New("R001")
	if FromError(existing, "R003") != existing {
		t.Error("FromError should pass *Error through")
	}

	wrapped := FromError(stderrors.New("boom"), "R003")
	if wrapped.Code != "R003" || wrapped.Wrapped == nil {
		t.Errorf("unexpected wrap: %+v", wrapped)
	}
}

func TestFormat(t *testing.T) {
	DisableColors()
	defer EnableColors()

	err := New("R002").WithDetail("effect 7 rescheduled itself 100 times").Wrap(stderrors.New("cycle"))
	out := err.Format()

	for _, want := range []string{"ERROR R002: Propagation cycle", "effect 7", "Cause: cycle", "Hint:"} {
		if !strings.Contains(out, want) {
			t.Errorf("Format() missing %q:\n%s", want, out)
		}
	}
}

func TestFormatCompactAndJSON(t *testing.T) {
	err := New("R003").Wrap(stderrors.New("timeout"))

	if got := err.FormatCompact(); got != "R003: Resource loader failed: timeout" {
		t.Errorf("FormatCompact() = %q", got)
	}

	js := err.FormatJSON()
	for _, want := range []string{`"code":"R003"`, `"category":"async"`, `"cause":"timeout"`} {
		if !strings.Contains(js, want) {
			t.Errorf("FormatJSON() missing %s: %s", want, js)
		}
	}
}

func TestWrapText(t *testing.T) {
	lines := wrapText("one two three four", 10)
	if len(lines) != 2 || lines[0] != "one two" || lines[1] != "three four" {
		t.Errorf("wrapText = %#v", lines)
	}
	if wrapText("   ", 10) != nil {
		t.Error("empty text should wrap to nil")
	}
}
