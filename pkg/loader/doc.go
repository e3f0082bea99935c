// Package loader provides ready-made async loaders and mutators backed by
// object storage, shaped to plug into resources and actions.
//
//	cfg, _ := config.LoadDefaultConfig(ctx)
//	store := loader.NewS3(s3.NewFromConfig(cfg), "my-bucket", "content/")
//
//	page := resource.New(scope, slug, store.Text)
//	save := action.New(scope, store.Put)
//
// Cache puts Redis in front of a text loader:
//
//	cache := loader.NewRedisCache("localhost:6379", "", 0, "page:", time.Minute)
//	page := resource.New(scope, slug, cache.Wrap(store.Text))
package loader
