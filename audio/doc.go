// Package audio plays a short bell each time the torus completes a turn about its first axis.
// Sounds are synthesized beep streamers mixed into the beep speaker; failure to open the
// audio device leaves the player silent.
package audio
