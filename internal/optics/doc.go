// Package optics synthesizes the optical power received by a detector pixel
// from a periodic laser pulse train reflected off a target.
//
// The received spectrum is the radiometric gain of the lens/target geometry
// applied to a train of normalized Gaussian pulses. Each pulse is evaluated
// on its own period window; how tails that cross a window edge are treated is
// selected with an EdgePolicy.
package optics
