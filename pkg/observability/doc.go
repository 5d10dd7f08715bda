/*
Package observability turns engine lifecycle hooks into metrics and logs.

Metrics exposes Prometheus collectors fed by domain.LifecycleHooks. LogHooks
emits one structured log line per event. Chain fans one event out to several
hook sets, so both can be attached to the same engine.
*/
package observability
