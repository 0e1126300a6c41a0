// Package episode loads hashed episodes from the JSON upload format.
//
// An episode file carries a title and the ordered per-frame hashes, plus the
// optional catalogue identifiers written by the hashing tool (crid, season,
// show, episode number). Decoding uses json-iterator because frame arrays
// routinely hold hundreds of thousands of entries.
package episode
