package ir

// ToolVersion is the varigen version reported by --version.
const ToolVersion = "0.1.0"
