// Package report renders comparison results as terminal tables, JSON
// documents and per-frame trace lines, and writes report files.
package report
