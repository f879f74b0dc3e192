package version

// Version is the current GSD-Compare release version.
// Overridden at build time via -ldflags "-X ...".
var Version = "0.3.0"
