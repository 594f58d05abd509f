package version

// Version is the release version of site-backup.
const Version = "0.1.0"
