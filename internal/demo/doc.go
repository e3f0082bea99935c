// Package demo contains small headless components built on the reactive
// runtime, each paired with a scripted run for the CLI.
//
// A component owns a scope, exposes its interactions as methods (Increment,
// Input, Submit) and renders to a plain string through View. Mounting a
// component with Env.Mount installs an effect that prints the view whenever
// one of the signals it read changes, which is the terminal stand-in for a
// DOM patch.
package demo
