// Package textutil provides small string helpers shared by the CLI and the
// report writer, chiefly filename sanitization.
package textutil
