// Package toast is the notification sink contract. The view layer owns the
// real presentation; the core only emits typed messages into it.
package toast

import "log"

type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// Logger prints notifications through a standard logger.
type Logger struct {
	L *log.Logger
}

func (n Logger) Success(msg string) { n.L.Printf("✔ %s", msg) }
func (n Logger) Error(msg string)   { n.L.Printf("✘ %s", msg) }

type nop struct{}

func (nop) Success(string) {}
func (nop) Error(string)   {}

// Nop discards notifications.
var Nop Notifier = nop{}
