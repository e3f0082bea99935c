// Package resource binds an async loader to a reactive source.
//
// A Resource registers an effect that reads its source. Every time the
// source changes the resource starts a new load, tagged with a fresh
// generation. Completions from older generations are discarded, so the
// state always reflects the newest load even when loads finish out of
// order. The previous value stays readable while a newer load is pending.
//
// Basic Usage:
//
//	user := resource.New(scope, userID, func(ctx context.Context, id int) (*User, error) {
//	    return api.FetchUser(ctx, id)
//	})
//
//	reactive.CreateEffect(scope, func() reactive.Cleanup {
//	    switch r, ok := user.Read(); {
//	    case !ok:
//	        render("Loading...")
//	    case r.Err != nil:
//	        render("Error: " + r.Err.Error())
//	    default:
//	        render(r.Value.Name)
//	    }
//	    return nil
//	})
//
// Loads run on goroutines through Runtime.Go; their results are applied on
// the runtime goroutine by Runtime.Run or Runtime.Settle.
package resource
