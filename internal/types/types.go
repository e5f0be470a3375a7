// Package types defines constants shared across lintdoc packages.
package types

// Document output formats written by the builder.
const (
	FormatHTML     = "html"
	FormatMarkdown = "markdown"
)

// Report formats printed by the lint command.
const (
	FormatRaw  = "raw"
	FormatJSON = "json"
	FormatXML  = "xml"
	FormatYAML = "yaml"
)

// Directive names exposed to document authors.
const (
	DirectiveMessageList    = "message-list"
	DirectivePackageDiagram = "package-diagram"
	DirectiveClassDiagram   = "class-diagram"
)

// Lifecycle events emitted by the builder.
const (
	EventBuilderInitialized = "builder-initialized"
	EventDoctreeResolved    = "doctree-resolved"
)

// MessageListColumns are the column headers of a rendered message list.
var MessageListColumns = []string{"path", "line", "msg_id", "symbol", "obj", "msg"}
