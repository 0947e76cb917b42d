// Package infra holds the adapters behind the simulator core: route table
// sources, the equipment catalog, metrics sinks, MQTT notifications, Sentry
// and the zerolog logger. Each subpackage depends on core interfaces only.
package infra
