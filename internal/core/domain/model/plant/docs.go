// Package plant describes the physical layout of the factory: the six workstation
// kinds, their fixed workstation ids, the depots stock is moved through and the
// thresholds that steer order routing.
//
// A Config is built once at startup and passed by value to every component that
// needs it. It is never mutated afterwards.
package plant
