// Package terminal provides direct ANSI terminal control for fixed-size glyph grids.
//
// Features:
//   - Raw mode and alternate screen with clean restoration on exit/panic
//   - Grid output centered in the terminal, clipped when the terminal is smaller
//   - Raw stdin input parsing with escape sequence handling
//
// This package bypasses terminfo/termcap entirely, emitting direct ANSI sequences.
// Target environments: Linux, macOS, BSDs with xterm-compatible terminals.
package terminal
