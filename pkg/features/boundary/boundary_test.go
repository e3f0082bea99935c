package boundary

import (
	"errors"
	"strings"
	"testing"

	"github.com/vango-dev/reactor/pkg/reactive"
	"github.com/vango-dev/reactor/pkg/vtest"
)

func numericInput(t *testing.T) (reactive.Setter[reactive.Result[int]], *Boundary, *string, *[]int) {
	f := vtest.New(t)
	value, setValue := reactive.NewSignal(f.Scope, reactive.Ok(0))
	b := New(f.Scope)
	WatchResult[int](b, f.Scope, value)

	var out string
	var counts []int
	_, err := reactive.CreateEffect(f.Scope, func() reactive.Cleanup {
		out = Render(b,
			func() string { return "You entered " + reactive.FormatInt(value.Get()) },
			func(errs []error) string {
				counts = append(counts, len(errs))
				parts := make([]string, len(errs))
				for i, err := range errs {
					parts[i] = err.Error()
				}
				return "Not a number! Errors: " + strings.Join(parts, "; ")
			},
		)
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	return setValue, b, &out, &counts
}

func TestBoundaryCollectsParseError(t *testing.T) {
	setValue, b, out, counts := numericInput(t)

	if err := setValue.Set(reactive.ParseInt("42")); err != nil {
		t.Fatal(err)
	}
	if *out != "You entered 42" {
		t.Errorf("out = %q", *out)
	}

	if err := setValue.Set(reactive.ParseInt("abc")); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(*out, "Not a number!") {
		t.Errorf("out = %q, want the fallback", *out)
	}
	if len(*counts) != 1 || (*counts)[0] != 1 {
		t.Errorf("collected = %v, want exactly one error", *counts)
	}
	if !b.HasErrors() {
		t.Error("HasErrors() = false")
	}

	if err := setValue.Set(reactive.ParseInt("7")); err != nil {
		t.Fatal(err)
	}
	if *out != "You entered 7" {
		t.Errorf("out = %q, want children after recovery", *out)
	}
}

func TestBoundaryMultipleSources(t *testing.T) {
	f := vtest.New(t)
	a, setA := reactive.NewSignal(f.Scope, reactive.Ok(1))
	c, setC := reactive.NewSignal(f.Scope, reactive.Ok("x"))

	b := New(f.Scope)
	WatchResult[int](b, f.Scope, a)
	WatchResult[string](b, f.Scope, c)

	if err := setA.Set(reactive.Fail[int](errors.New("a failed"))); err != nil {
		t.Fatal(err)
	}
	if err := setC.Set(reactive.Fail[string](errors.New("c failed"))); err != nil {
		t.Fatal(err)
	}

	errs := b.Errors()
	if len(errs) != 2 || errs[0].Error() != "a failed" || errs[1].Error() != "c failed" {
		t.Errorf("Errors() = %v", errs)
	}
}

func TestBoundaryFrom(t *testing.T) {
	f := vtest.New(t)
	outer := New(f.Scope)
	inner := f.Scope.Child()
	nested := New(inner)

	got, ok := From(inner.Child())
	if !ok || got != nested {
		t.Error("From should find the nearest boundary")
	}
	if got, _ := From(f.Scope); got != outer {
		t.Error("From on the outer scope should find the outer boundary")
	}
}

func TestBoundaryFatalErrorsPanic(t *testing.T) {
	f := vtest.New(t)
	scope := f.Scope.Child()
	dead, _ := reactive.NewSignal(scope, 0)
	scope.Dispose()

	b := New(f.Scope)
	b.Watch(f.Scope, func() error {
		_, err := dead.Read()
		return err
	})

	defer func() {
		err, _ := recover().(error)
		if !errors.Is(err, reactive.ErrUseAfterDispose) {
			t.Errorf("recovered %v, want ErrUseAfterDispose", err)
		}
	}()
	b.Errors()
	t.Error("Errors() returned instead of panicking")
}

func TestBoundaryDropsDisposedSources(t *testing.T) {
	f := vtest.New(t)
	b := New(f.Scope)

	kept, _ := reactive.NewSignal(f.Scope, reactive.Fail[int](errors.New("kept")))
	WatchResult[int](b, f.Scope, kept)

	child := f.Scope.Child()
	gone, _ := reactive.NewSignal(child, reactive.Fail[int](errors.New("gone")))
	WatchResult[int](b, child, gone)

	var renders []string
	_, err := reactive.CreateEffect(f.Scope, func() reactive.Cleanup {
		renders = append(renders, Render(b,
			func() string { return "ok" },
			func(errs []error) string {
				parts := make([]string, len(errs))
				for i, err := range errs {
					parts[i] = err.Error()
				}
				return strings.Join(parts, ",")
			},
		))
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}

	child.Dispose()

	errs := b.Errors()
	if len(errs) != 1 || errs[0].Error() != "kept" {
		t.Errorf("Errors() = %v, want only the live source", errs)
	}
	if b.Len() != 1 {
		t.Errorf("Len() = %d, want 1", b.Len())
	}
	want := []string{"kept,gone", "kept"}
	if strings.Join(renders, "|") != strings.Join(want, "|") {
		t.Errorf("renders = %q, want %q", renders, want)
	}
}
