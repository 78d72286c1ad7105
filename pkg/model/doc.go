// Package model defines the flat form record persisted between sessions, the
// fixed field and action identifiers shared by every front end, and the
// ordered step sequence the controller walks. Field identifiers double as the
// JSON keys of the persisted record and as the element ids the HTML renderer
// emits, so a record saved by the terminal session can be resumed in the
// browser and vice versa.
package model
