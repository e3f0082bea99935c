// Package config provides configuration parsing for reactor tools.
//
// The configuration is stored in reactor.json or reactor.yaml at the
// project root. Both formats share one schema:
//
//	{
//	  "max_iterations": 100,
//	  "log_level": "info",
//	  "inspector": {
//	    "addr": "localhost:7070",
//	    "event_buffer": 256
//	  },
//	  "metrics": {
//	    "enabled": true,
//	    "namespace": "reactor"
//	  },
//	  "s3": {
//	    "bucket": "my-bucket",
//	    "region": "eu-west-1",
//	    "prefix": "content/"
//	  },
//	  "redis": {
//	    "addr": "localhost:6379",
//	    "ttl_seconds": 60
//	  }
//	}
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	rt := reactive.New(reactive.WithMaxIterations(cfg.MaxIterations))
//
// Watch reloads the file on every write so long-running commands can pick
// up changes such as a new log level.
package config
