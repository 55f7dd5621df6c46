package synthflow

// Version is the interpreter release identifier reported by the CLI.
const Version = "0.4.1"

// BuildDate is stamped by the release script; "dev" for local builds.
var BuildDate = "dev"
