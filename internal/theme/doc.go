// Package theme holds the terminal palette, spacing scale and border shapes used to
// draw snackbars, and maps severities to their color and icon.
package theme
