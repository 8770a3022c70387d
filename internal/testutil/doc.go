// Package testutil provides a temp-dir harness that runs the full load,
// resolve and render pipeline over in-memory HCL sources.
package testutil
