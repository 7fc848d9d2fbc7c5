// Package render draws a sort as it happens in the terminal.
//
// Mirror is the consumer side of a run: it keeps its own copy of the array
// and applies each step to it, so the picture is built only from emitted
// steps, never from engine internals. View turns a Mirror into bars and a
// statistics panel. Model is the bubbletea program that paces a run with
// ticks and handles the keyboard.
package render
