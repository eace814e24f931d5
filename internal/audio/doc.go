// Package audio plays the sound cue attached to a snackbar severity.
// It uses the beep library to decode WAV, OGG and MP3 files.
package audio
