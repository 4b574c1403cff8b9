// A small, thread-safe fixed-window call limiter with a transparent sleep-and-retry gate.
//
// Features:
//
// - Fixed-window algorithm with lazy resets: no background timers, no goroutines
//
// - Rejections carry the exact time remaining until the window resets
//
// - Blocking Gate that suspends and retries rejected calls until they are admitted, transparently to the caller
//
// - Context-aware waiting so pending retries can be abandoned
//
// - Composite limiters combining multiple window policies into a single instance
//
// - Injectable clock and wait functions for deterministic testing
//
// - Thread safe
//
package gogate
