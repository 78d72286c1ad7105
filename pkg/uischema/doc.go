// Package uischema loads presentation overrides for the form: step titles,
// field labels, help text, placeholders, input types and the choices offered
// for the gender field. Documents may be JSON or YAML; the bundled default
// lives under ui/layout.yaml and user files are merged over it.
package uischema
