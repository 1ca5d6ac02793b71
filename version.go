package configfed

// CoreVersion is this module's own version, checked against any
// MinCoreVersion constraint a Provider or Arbiter declares during
// Bootstrap. Bumped by hand on release, mirroring how the nomos compiler
// tracks its own core version alongside the manifest schema it accepts.
const CoreVersion = "1.0.0"
