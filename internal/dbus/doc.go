// Package dbus delivers snackbars to the desktop notification server over the
// org.freedesktop.Notifications D-Bus interface. DesktopQueue is a host queue:
// it keeps one notification visible at a time and reports how each one closed
// using the NotificationClosed and ActionInvoked signals.
package dbus
