// Package dedup removes repeated lines from text files.
//
// File writes a sibling "<stem>.dedup<suffix>" file holding every distinct
// line of the input once, in first-occurrence order, and never touches the
// input. Lines are compared including their terminator, so a final line with
// no trailing newline stays distinct from the same text followed by one.
// Input is read with universal newlines (\n, \r\n, and a lone \r all end a
// line and are written back as \n), and bytes that are not valid UTF-8 are
// replaced with U+FFFD rather than aborting the run.
package dedup
