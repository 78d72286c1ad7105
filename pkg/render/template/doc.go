// Package template defines the template engine seam the HTML renderer relies
// on. The pongo subpackage provides the pongo2-backed implementation.
package template
