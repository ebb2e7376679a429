// Package office serves tools and resources that span the three document
// providers: listings of open objects, Office availability through the
// AppleScript bridge, the template catalogue and server status.
package office
