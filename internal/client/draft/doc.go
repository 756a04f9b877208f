// Package draft accumulates user input across the steps of the diary and
// folder wizards, so the steps don't have to hand values to each other.
//
// A Diary draft is a single active instance per session. It is flushed into a
// diary record on submit and then Reset, which keeps the folder id so the
// user can add another day to the same trip.
package draft
