// Package retained provides the process-scope store that keeps controller
// state alive across screen destruction and recreation.
//
// A screen object is destroyed and rebuilt on every configuration change, so
// anything that must survive (pending start-for-result operations, screen
// state) lives here instead, keyed by a stable tag derived from the host's
// controller type and stack identity. Hosts use find-or-create semantics:
// the first host instance for a tag creates the controller, every later
// instance for the same tag reattaches to the existing one.
package retained
