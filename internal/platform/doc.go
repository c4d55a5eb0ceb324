// Package platform provides the few filesystem checks that differ between
// operating systems: permission bits, which Windows ignores, and probing
// whether a directory can be written to.
package platform
