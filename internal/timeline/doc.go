// Package timeline computes the layout of the final composite: where the
// source video freezes, how long the hold lasts, and which absolute time
// ranges belong to the MAIN and FROZEN segments.
package timeline
