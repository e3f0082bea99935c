package demo

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"

	rerrors "github.com/vango-dev/reactor/internal/errors"
	"github.com/vango-dev/reactor/pkg/loader"
	"github.com/vango-dev/reactor/pkg/vtest"
)

func TestAsyncData(t *testing.T) {
	f := vtest.New(t)
	a := NewAsyncData(f.Scope, 0)

	if got := a.Result(); got != "Loading..." {
		t.Errorf("before settle Result() = %q", got)
	}
	f.Settle()
	if got := a.Result(); got != "Server returned 0" {
		t.Errorf("Result() = %q", got)
	}

	a.Click()
	if !a.Data().Loading() {
		t.Error("click should start a load")
	}
	if got := a.Result(); got != "Server returned 0" {
		t.Errorf("stale value should stay visible while loading, got %q", got)
	}
	f.Settle()

	if got := a.View(); got != "stable: 10 | count: 1 | async_value: Server returned 10 | Idle." {
		t.Errorf("View() = %q", got)
	}
	if a.StableLoads() != 1 {
		t.Errorf("stable loader ran %d times, want 1", a.StableLoads())
	}
}

func TestShoutingName(t *testing.T) {
	f := vtest.New(t)
	s := NewShoutingName(f.Scope, 0)

	if !s.Suspense().Pending() {
		t.Error("suspense should be pending before the first load")
	}
	if got := s.View(); got != "name: Bill | Loading..." {
		t.Errorf("View() = %q", got)
	}
	f.Settle()
	if got := s.View(); got != "name: Bill | Your shouting name is BILL" {
		t.Errorf("View() = %q", got)
	}

	s.Input("Ada")
	if got := s.View(); got != "name: Ada | Loading..." {
		t.Errorf("View() = %q", got)
	}
	f.Settle()
	if got := s.View(); got != "name: Ada | Your shouting name is ADA" {
		t.Errorf("View() = %q", got)
	}
}

func TestTodoForm(t *testing.T) {
	f := vtest.New(t)
	form := NewTodoForm(f.Scope, 0)

	if got := form.View(); got != "Submitted: None | Pending: false | Todo ID: None" {
		t.Errorf("initial View() = %q", got)
	}
	vtest.ExpectNoError(t, form.Submit("buy milk"))
	if got := form.View(); got != `Loading... | Submitted: Some("buy milk") | Pending: true | Todo ID: None` {
		t.Errorf("pending View() = %q", got)
	}
	f.Settle()

	r, ok := form.Action().Value()
	if !ok || r.Err != nil {
		t.Fatalf("Value() = %v, %v", r, ok)
	}
	if r.Value == uuid.Nil {
		t.Error("todo id should be set")
	}
	if !strings.Contains(form.View(), "Todo ID: Some("+r.Value.String()+")") {
		t.Errorf("View() = %q", form.View())
	}
}

type memObjects struct {
	mu   sync.Mutex
	data map[string]string
}

func (m *memObjects) GetObject(ctx context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	body, ok := m.data[aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{Message: aws.String("missing")}
	}
	return &s3.GetObjectOutput{
		Body:        io.NopCloser(strings.NewReader(body)),
		ContentType: aws.String("text/plain"),
	}, nil
}

func (m *memObjects) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	return nil, errors.New("read only")
}

func TestObjectsDemo(t *testing.T) {
	f := vtest.New(t)
	store := loader.NewS3(&memObjects{data: map[string]string{
		"a": "hello",
		"b": strings.Repeat("x", 100),
	}}, "bucket", "")

	var out bytes.Buffer
	d, err := Lookup("objects")
	vtest.ExpectNoError(t, err)
	err = d.Run(context.Background(), &Env{
		Scope:   f.Scope,
		Out:     &out,
		Objects: store,
		Keys:    []string{"a", "b"},
	})
	vtest.ExpectNoError(t, err)

	if !strings.Contains(out.String(), `[object] a: "hello"`) {
		t.Errorf("missing first object:\n%s", out.String())
	}
	if !strings.Contains(out.String(), `[object] b: "`+strings.Repeat("x", previewLen)+`..."`) {
		t.Errorf("missing truncated second object:\n%s", out.String())
	}
}

func TestObjectViewerMissingKey(t *testing.T) {
	f := vtest.New(t)
	store := loader.NewS3(&memObjects{data: map[string]string{}}, "bucket", "")
	v := NewObjectViewer(f.Scope, store, nil, "gone")
	f.Settle()

	r, ok := v.Object().Read()
	if !ok || !errors.Is(r.Err, loader.ErrNotFound) {
		t.Errorf("Read() = %v, %v; want ErrNotFound", r, ok)
	}
	if !strings.HasPrefix(v.View(), "gone: ") {
		t.Errorf("View() = %q", v.View())
	}
}

func TestObjectsDemoNeedsBucket(t *testing.T) {
	f := vtest.New(t)
	d, _ := Lookup("objects")
	err := d.Run(context.Background(), &Env{Scope: f.Scope, Out: io.Discard})

	var rerr *rerrors.Error
	if !errors.As(err, &rerr) || rerr.Code != "C001" {
		t.Errorf("err = %v, want C001", err)
	}
}
