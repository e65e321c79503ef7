package version

const Version = "v0.3.1"
