package demo

import (
	"context"
	"fmt"
	"time"

	rerrors "github.com/vango-dev/reactor/internal/errors"
	"github.com/vango-dev/reactor/pkg/features/resource"
	"github.com/vango-dev/reactor/pkg/loader"
	"github.com/vango-dev/reactor/pkg/reactive"
)

// previewLen bounds how much of an object body a view shows.
const previewLen = 60

// ObjectViewer loads the object named by a key signal from S3, reading
// through cache when one is given.
type ObjectViewer struct {
	key    reactive.Signal[string]
	setKey reactive.Setter[string]
	object *resource.Resource[string, string]
}

func NewObjectViewer(scope *reactive.Scope, store *loader.S3, cache *loader.Cache, key string) *ObjectViewer {
	k, setKey := reactive.NewSignal(scope, key)
	object := resource.New(scope, k, cache.Wrap(store.Text),
		resource.WithLabel("s3:"+store.Bucket()),
		resource.RetryOnError(2, 100*time.Millisecond),
	)
	return &ObjectViewer{key: k, setKey: setKey, object: object}
}

// Show switches to key.
func (v *ObjectViewer) Show(key string) error {
	return v.setKey.Set(key)
}

// Object exposes the underlying resource.
func (v *ObjectViewer) Object() *resource.Resource[string, string] { return v.object }

func (v *ObjectViewer) View() string {
	key := v.key.Get()
	r, ok := v.object.Read()
	switch {
	case !ok || v.object.Loading():
		return key + ": loading"
	case r.Err != nil:
		return key + ": " + r.Err.Error()
	}
	body := r.Value
	if len(body) > previewLen {
		body = body[:previewLen] + "..."
	}
	return fmt.Sprintf("%s: %q", key, body)
}

func init() {
	register(Demo{
		Name:        "objects",
		Description: "Load S3 objects through a resource (needs s3.bucket)",
		Run: func(ctx context.Context, env *Env) error {
			if env.Objects == nil {
				return rerrors.New("C001").WithDetail("s3.bucket is not configured.")
			}
			if len(env.Keys) == 0 {
				return rerrors.New("C001").WithDetail("Pass at least one object key.")
			}
			v := NewObjectViewer(env.Scope, env.Objects, env.Cache, env.Keys[0])
			if err := env.Mount("object", v.View); err != nil {
				return err
			}
			if err := env.Settle(ctx); err != nil {
				return err
			}
			for _, key := range env.Keys[1:] {
				env.Step("show %s", key)
				if err := v.Show(key); err != nil {
					return err
				}
				if err := env.Settle(ctx); err != nil {
					return err
				}
			}
			return nil
		},
	})
}
