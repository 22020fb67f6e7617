package mockapi

// Version is the release version of the mockapi module and CLI.
const Version = "0.1.0"
