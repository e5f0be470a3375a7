package utils

// File and directory names shared across the tool.
const (
	// ConfigFileName is the name of the project configuration file.
	ConfigFileName = "lintdoc.yaml"
	// GlobalConfigDirectoryName is the directory under the user's home that holds the global configuration.
	GlobalConfigDirectoryName = ".lintdoc"
	// LintIgnoreFileName lists additional pylint ignore patterns and excluded documents.
	LintIgnoreFileName = ".lintignore"
	// GitDirectoryName is the name of the Git repository directory.
	GitDirectoryName = ".git"
	// SourceDocumentExtension is the extension of documents consumed by the builder.
	SourceDocumentExtension = ".rst"
)

// Messages reported by the entry point.
const (
	// LoggerInitializationFailedMessageFormat reports a logger construction failure.
	LoggerInitializationFailedMessageFormat = "logger initialization failed: %w"
	// ApplicationExecutionFailedMessage prefixes fatal command errors.
	ApplicationExecutionFailedMessage = "lintdoc failed"
)
