// Package extension embeds static analysis results into document trees. It
// registers the message-list, package-diagram and class-diagram directives and
// reacts to the builder-initialized and doctree-resolved lifecycle events.
package extension

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/temirov/lintdoc/internal/config"
	"github.com/temirov/lintdoc/internal/doctree"
	"github.com/temirov/lintdoc/internal/pylint"
	"github.com/temirov/lintdoc/internal/pyreverse"
	"github.com/temirov/lintdoc/internal/pysource"
	"github.com/temirov/lintdoc/internal/runner"
	"github.com/temirov/lintdoc/internal/types"
)

// ErrNotInitialized reports a doctree-resolved event received before builder-initialized.
var ErrNotInitialized = errors.New("extension: builder not initialized")

const logPrefix = "lintdoc.extension"

// ClassResolver turns a bare class name into its qualified name.
type ClassResolver interface {
	Resolve(name string) (string, error)
}

// ClassResolverFactory builds a ClassResolver for the analysis target.
type ClassResolverFactory func(target string) (ClassResolver, error)

// Extension is the analysis plugin. It is safe for use by one builder at a time.
type Extension struct {
	runner          runner.Runner
	parser          pylint.Parser
	logger          *zap.Logger
	resolverFactory ClassResolverFactory

	mutex        sync.RWMutex
	buildContext *BuildContext
}

// Option customises an Extension.
type Option func(*Extension)

// WithParser replaces the parser used for pylint output.
func WithParser(parser pylint.Parser) Option {
	return func(extension *Extension) {
		extension.parser = parser
	}
}

// WithClassResolverFactory replaces the class resolver used by class-diagram.
func WithClassResolverFactory(factory ClassResolverFactory) Option {
	return func(extension *Extension) {
		extension.resolverFactory = factory
	}
}

// New constructs an Extension that runs the analysis tools through commandRunner.
func New(commandRunner runner.Runner, logger *zap.Logger, options ...Option) *Extension {
	if logger == nil {
		logger = zap.NewNop()
	}
	extension := &Extension{
		runner:          commandRunner,
		parser:          pylint.Parser{Mode: pylint.ModeScanAll},
		logger:          logger,
		resolverFactory: newSourceClassResolver,
	}
	for _, option := range options {
		option(extension)
	}
	return extension
}

func newSourceClassResolver(target string) (ClassResolver, error) {
	index, indexError := pysource.NewClassIndex(target)
	if indexError != nil {
		return nil, indexError
	}
	return index, nil
}

// BuildContext is the state of one build pass. Settings never change after
// construction; the lint results and diagrams are computed on first use.
type BuildContext struct {
	settings config.Settings

	lintOnce    sync.Once
	lintRecords []pylint.Record
	lintError   error

	resolverOnce  sync.Once
	classResolver ClassResolver

	diagramMutex sync.Mutex
	diagrams     map[string][]pyreverse.Diagram
}

// Settings returns the settings of the pass.
func (buildContext *BuildContext) Settings() config.Settings {
	return buildContext.settings
}

// OnBuilderInitialized validates settings and starts a new pass. A previous
// context is discarded, so repeated initialization never accumulates options.
func (extension *Extension) OnBuilderInitialized(settings config.Settings) error {
	if validationError := settings.Validate(); validationError != nil {
		return validationError
	}
	if settings.Lint.Debug {
		extension.logger.Debug(logPrefix+": builder initialized", zap.String("event", types.EventBuilderInitialized), settings.LogField())
	}
	buildContext := &BuildContext{settings: settings, diagrams: map[string][]pyreverse.Diagram{}}
	extension.mutex.Lock()
	extension.buildContext = buildContext
	extension.mutex.Unlock()
	return nil
}

// Context returns the context of the current pass or nil before initialization.
func (extension *Extension) Context() *BuildContext {
	extension.mutex.RLock()
	defer extension.mutex.RUnlock()
	return extension.buildContext
}

// OnDoctreeResolved replaces every placeholder created by the extension's
// directives in document and returns the resulting tree. document is not modified.
func (extension *Extension) OnDoctreeResolved(ctx context.Context, document *doctree.Document, documentName string) (*doctree.Document, error) {
	buildContext := extension.Context()
	if buildContext == nil {
		return nil, ErrNotInitialized
	}
	debug := buildContext.settings.Lint.Debug
	if debug {
		extension.logger.Debug(logPrefix+": doctree resolved", zap.String("event", types.EventDoctreeResolved), zap.String("document", documentName))
	}
	placeholders := doctree.Placeholders(document, types.DirectiveMessageList, types.DirectivePackageDiagram, types.DirectiveClassDiagram)
	replacements := make(map[string][]doctree.Node, len(placeholders))
	for _, placeholder := range placeholders {
		var nodes []doctree.Node
		var resolveError error
		switch placeholder.Directive {
		case types.DirectiveMessageList:
			nodes, resolveError = extension.resolveMessageList(ctx, buildContext, placeholder)
		case types.DirectivePackageDiagram:
			nodes, resolveError = extension.resolvePackageDiagram(ctx, buildContext)
		case types.DirectiveClassDiagram:
			nodes, resolveError = extension.resolveClassDiagram(ctx, buildContext, placeholder)
		}
		if resolveError != nil {
			return nil, fmt.Errorf("%s:%d: %s: %w", documentName, placeholder.Line, placeholder.Directive, resolveError)
		}
		replacements[placeholder.ID] = nodes
		if debug {
			extension.logger.Debug(logPrefix+": placeholder replaced",
				zap.String("document", documentName),
				zap.String("directive", placeholder.Directive),
				zap.Int("line", placeholder.Line),
			)
		}
	}
	return doctree.Replace(document, replacements), nil
}

func (extension *Extension) resolveMessageList(ctx context.Context, buildContext *BuildContext, placeholder doctree.Placeholder) ([]doctree.Node, error) {
	records, lintError := extension.lint(ctx, buildContext)
	if lintError != nil {
		return nil, lintError
	}
	return []doctree.Node{MessageTable(placeholder.Title, records)}, nil
}

// lint runs the diagnostic tool at most once per pass.
func (extension *Extension) lint(ctx context.Context, buildContext *BuildContext) ([]pylint.Record, error) {
	buildContext.lintOnce.Do(func() {
		settings := buildContext.settings
		analyzer := pylint.NewAnalyzer(extension.runner, extension.parser, extension.logger)
		buildContext.lintRecords, buildContext.lintError = analyzer.Analyze(ctx, settings.LintOptions(settings.Target), "")
	})
	return buildContext.lintRecords, buildContext.lintError
}

// MessageTable renders records as a table with the message list columns.
func MessageTable(title string, records []pylint.Record) doctree.Node {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			record.File,
			fmt.Sprintf("%d", record.Line),
			record.MessageID,
			record.Symbol,
			record.Object,
			record.Message,
		})
	}
	return doctree.NewTable(title, types.MessageListColumns, rows)
}

func (extension *Extension) resolvePackageDiagram(ctx context.Context, buildContext *BuildContext) ([]doctree.Node, error) {
	options := buildContext.settings.DiagramOptions()
	diagrams, diagramError := extension.diagrams(ctx, buildContext, options)
	if diagramError != nil {
		return nil, diagramError
	}
	diagram, found := pyreverse.FindDiagram(diagrams, pyreverse.KindPackages)
	if !found {
		return []doctree.Node{missingDiagramNode(pyreverse.KindPackages)}, nil
	}
	return []doctree.Node{EmbedDiagram(diagram)}, nil
}

func (extension *Extension) resolveClassDiagram(ctx context.Context, buildContext *BuildContext, placeholder doctree.Placeholder) ([]doctree.Node, error) {
	classSettings, optionsError := classDiagramSettings(placeholder.Options)
	if optionsError != nil {
		return nil, optionsError
	}
	options := buildContext.settings.DiagramOptions()
	options.OutputName = extension.qualifyClassName(buildContext, placeholder.Argument)
	options.AncestorDepth = classSettings.ancestorDepth
	options.AssociatedClassesDepth = classSettings.classDepth
	options.AttributeFilter = classSettings.attributeFilter
	options.ClassesOnly = classSettings.classesOnly
	options.ShowBuiltins = classSettings.builtins

	diagrams, diagramError := extension.diagrams(ctx, buildContext, options)
	if diagramError != nil {
		return nil, diagramError
	}
	if diagram, found := pyreverse.FindDiagram(diagrams, options.OutputName); found {
		return []doctree.Node{EmbedDiagram(diagram)}, nil
	}
	if diagram, found := pyreverse.FindDiagram(diagrams, pyreverse.KindClasses); found {
		return []doctree.Node{EmbedDiagram(diagram)}, nil
	}
	return []doctree.Node{missingDiagramNode(placeholder.Argument)}, nil
}

// qualifyClassName resolves a class name without a module through the source
// index of the target. Failures leave the name unchanged.
func (extension *Extension) qualifyClassName(buildContext *BuildContext, className string) string {
	trimmed := strings.TrimSpace(className)
	if strings.Contains(trimmed, ".") || extension.resolverFactory == nil {
		return trimmed
	}
	buildContext.resolverOnce.Do(func() {
		resolver, resolverError := extension.resolverFactory(buildContext.settings.Target)
		if resolverError != nil {
			extension.logger.Debug(logPrefix+": class index unavailable", zap.Error(resolverError))
			return
		}
		buildContext.classResolver = resolver
	})
	if buildContext.classResolver == nil {
		return trimmed
	}
	qualified, resolveError := buildContext.classResolver.Resolve(trimmed)
	if resolveError != nil {
		extension.logger.Debug(logPrefix+": class name kept unqualified", zap.String("class", trimmed), zap.Error(resolveError))
		return trimmed
	}
	return qualified
}

// diagrams runs pyreverse once per distinct command line in a pass.
func (extension *Extension) diagrams(ctx context.Context, buildContext *BuildContext, options pyreverse.Options) ([]pyreverse.Diagram, error) {
	invocation := pyreverse.BuildCommand(options)
	key := invocation.String()
	buildContext.diagramMutex.Lock()
	defer buildContext.diagramMutex.Unlock()
	if cached, found := buildContext.diagrams[key]; found {
		return cached, nil
	}
	diagrams, generateError := pyreverse.Generate(ctx, extension.runner, options, extension.logger)
	if generateError != nil {
		return nil, generateError
	}
	buildContext.diagrams[key] = diagrams
	return diagrams, nil
}
