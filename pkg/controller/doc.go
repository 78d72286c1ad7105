// Package controller drives a multi-step form. A Controller owns the active
// step index and the in-memory record, keeps the record written through to a
// storage.Store after every successful step, and talks to the user only
// through the View and EventSource interfaces so terminal and HTML front ends
// share one state machine:
//
//	step 0 --next (valid)--> step 1 --next (valid)--> step 2 --submit--> done
//	step 1 --back--> step 0, step 2 --back--> step 1
//
// A failed validation leaves the controller where it is and annotates the
// offending fields.
package controller
