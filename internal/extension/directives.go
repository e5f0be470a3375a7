package extension

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/temirov/lintdoc/internal/doctree"
	"github.com/temirov/lintdoc/internal/pyreverse"
	"github.com/temirov/lintdoc/internal/types"
	"github.com/temirov/lintdoc/internal/utils"
)

// Options accepted by the class-diagram directive.
const (
	OptionAncestorDepth      = "ancestor_depth"
	OptionClassDepth         = "class_depth"
	OptionAttributeFiltering = "attribute_filtering"
	OptionClassesOnly        = "classes_only"
	OptionBuiltins           = "builtins"
)

// DefaultMessageListTitle captions a message list written without a title.
const DefaultMessageListTitle = "pylint message list"

var (
	errUnexpectedArgument = errors.New("takes no arguments")
	errMissingClassName   = errors.New("requires a class name")
	errUnknownOption      = errors.New("unknown option")
	errInvalidOption      = errors.New("invalid option value")
)

var classDiagramOptions = map[string]struct{}{
	OptionAncestorDepth:      {},
	OptionClassDepth:         {},
	OptionAttributeFiltering: {},
	OptionClassesOnly:        {},
	OptionBuiltins:           {},
}

// Directives returns the directive handlers the extension registers with the builder.
func (extension *Extension) Directives() doctree.Directives {
	return doctree.Directives{
		types.DirectiveMessageList:    messageListDirective,
		types.DirectivePackageDiagram: packageDiagramDirective,
		types.DirectiveClassDiagram:   classDiagramDirective,
	}
}

func messageListDirective(directive doctree.Directive) ([]doctree.Node, error) {
	if unknown := unknownOptions(directive.Options, nil); len(unknown) > 0 {
		return nil, fmt.Errorf("%w: %s", errUnknownOption, strings.Join(unknown, ", "))
	}
	title := directive.Argument
	if title == "" {
		title = DefaultMessageListTitle
	}
	return []doctree.Node{doctree.NewPlaceholder(directive, title)}, nil
}

func packageDiagramDirective(directive doctree.Directive) ([]doctree.Node, error) {
	if directive.Argument != "" {
		return nil, fmt.Errorf("%w: %q", errUnexpectedArgument, directive.Argument)
	}
	if unknown := unknownOptions(directive.Options, nil); len(unknown) > 0 {
		return nil, fmt.Errorf("%w: %s", errUnknownOption, strings.Join(unknown, ", "))
	}
	return []doctree.Node{doctree.NewPlaceholder(directive, "")}, nil
}

func classDiagramDirective(directive doctree.Directive) ([]doctree.Node, error) {
	if strings.TrimSpace(directive.Argument) == "" {
		return nil, errMissingClassName
	}
	if unknown := unknownOptions(directive.Options, classDiagramOptions); len(unknown) > 0 {
		return nil, fmt.Errorf("%w: %s", errUnknownOption, strings.Join(unknown, ", "))
	}
	if _, optionsError := classDiagramSettings(directive.Options); optionsError != nil {
		return nil, optionsError
	}
	return []doctree.Node{doctree.NewPlaceholder(directive, directive.Argument)}, nil
}

type classOptions struct {
	ancestorDepth   pyreverse.Depth
	classDepth      pyreverse.Depth
	attributeFilter string
	classesOnly     bool
	builtins        bool
}

// classDiagramSettings reads the class-diagram options. An unrecognised
// attribute filter is kept as written; the command builder drops it.
func classDiagramSettings(options map[string]string) (classOptions, error) {
	var settings classOptions
	var parseError error
	if settings.ancestorDepth, parseError = pyreverse.ParseDepth(options[OptionAncestorDepth]); parseError != nil {
		return classOptions{}, fmt.Errorf("%w: %s: %w", errInvalidOption, OptionAncestorDepth, parseError)
	}
	if settings.classDepth, parseError = pyreverse.ParseDepth(options[OptionClassDepth]); parseError != nil {
		return classOptions{}, fmt.Errorf("%w: %s: %w", errInvalidOption, OptionClassDepth, parseError)
	}
	settings.attributeFilter = strings.ToUpper(strings.TrimSpace(options[OptionAttributeFiltering]))
	for optionName, target := range map[string]*bool{OptionClassesOnly: &settings.classesOnly, OptionBuiltins: &settings.builtins} {
		value, present := options[optionName]
		if !present {
			continue
		}
		parsed, recognized := utils.ParseBooleanLiteral(value)
		if !recognized {
			return classOptions{}, fmt.Errorf("%w: %s: %q (expected %s)", errInvalidOption, optionName, value, utils.BooleanLiteralListing)
		}
		*target = parsed
	}
	return settings, nil
}

func unknownOptions(options map[string]string, allowed map[string]struct{}) []string {
	var unknown []string
	for name := range options {
		if _, known := allowed[name]; !known {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)
	return unknown
}
