package doctree

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrDirective reports an invalid directive in a source document.
var ErrDirective = errors.New("directive error")

// Directive is a directive block as written in a source document.
type Directive struct {
	Name     string
	Argument string
	Options  map[string]string
	Content  []string
	Line     int
}

// DirectiveHandler converts a directive into nodes, usually a single placeholder.
type DirectiveHandler func(directive Directive) ([]Node, error)

// Directives maps directive names to handlers.
type Directives map[string]DirectiveHandler

const (
	sectionAdornments        = "=-~^\"'`#*+"
	literalMarker            = "::"
	unknownDirectiveLanguage = "rst"
)

var (
	directivePattern = regexp.MustCompile(`^\.\.\s+([A-Za-z][\w-]*)::\s*(.*)$`)
	commentPattern   = regexp.MustCompile(`^\.\.(\s|$)`)
	optionPattern    = regexp.MustCompile(`^:([\w-]+):\s*(.*)$`)
)

type documentParser struct {
	name       string
	lines      []string
	position   int
	directives Directives
	adornments []byte
	nodes      []Node
	paragraph  []string
	title      string
}

// Parse reads source into a Document. Directives found in registry are
// expanded through their handlers; unknown directives are kept as literal
// blocks so they remain visible in the output.
func Parse(name string, source string, registry Directives) (*Document, error) {
	normalized := strings.ReplaceAll(source, "\r\n", "\n")
	parser := &documentParser{
		name:       name,
		lines:      strings.Split(normalized, "\n"),
		directives: registry,
	}
	if parseError := parser.parse(); parseError != nil {
		return nil, parseError
	}
	return &Document{Name: name, Title: parser.title, Children: parser.nodes}, nil
}

func (parser *documentParser) parse() error {
	for parser.position < len(parser.lines) {
		line := parser.lines[parser.position]
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			parser.flushParagraph()
			parser.position++
		case directivePattern.MatchString(line):
			parser.flushParagraph()
			if directiveError := parser.parseDirective(); directiveError != nil {
				return directiveError
			}
		case commentPattern.MatchString(line):
			parser.flushParagraph()
			parser.position++
			parser.consumeIndentedBlock()
		case len(parser.paragraph) == 0 && parser.isOverlinedTitle():
			parser.addSection(strings.TrimSpace(parser.lines[parser.position+1]), trimmed[0])
			parser.position += 3
		case parser.isSectionTitle():
			parser.flushParagraph()
			parser.addSection(trimmed, parser.lines[parser.position+1][0])
			parser.position += 2
		default:
			parser.paragraph = append(parser.paragraph, trimmed)
			parser.position++
			if strings.HasSuffix(trimmed, literalMarker) {
				parser.flushParagraph()
				parser.parseLiteralBlock()
			}
		}
	}
	parser.flushParagraph()
	return nil
}

func (parser *documentParser) isSectionTitle() bool {
	if parser.position+1 >= len(parser.lines) || isIndented(parser.lines[parser.position]) {
		return false
	}
	title := strings.TrimSpace(parser.lines[parser.position])
	underline := strings.TrimRight(parser.lines[parser.position+1], " \t")
	return title != "" && isAdornment(underline) && len(underline) >= len([]rune(title))
}

// isOverlinedTitle matches a title framed by identical adornment lines above and below.
func (parser *documentParser) isOverlinedTitle() bool {
	if parser.position+2 >= len(parser.lines) {
		return false
	}
	overline := strings.TrimRight(parser.lines[parser.position], " \t")
	title := strings.TrimSpace(parser.lines[parser.position+1])
	underline := strings.TrimRight(parser.lines[parser.position+2], " \t")
	return isAdornment(overline) && title != "" && overline == underline && !isAdornment(title)
}

func isAdornment(line string) bool {
	if len(line) < 2 || !strings.ContainsRune(sectionAdornments, rune(line[0])) {
		return false
	}
	return strings.Count(line, line[:1]) == len(line)
}

func (parser *documentParser) addSection(title string, adornment byte) {
	level := strings.IndexByte(string(parser.adornments), adornment)
	if level < 0 {
		parser.adornments = append(parser.adornments, adornment)
		level = len(parser.adornments) - 1
	}
	if parser.title == "" {
		parser.title = title
	}
	parser.nodes = append(parser.nodes, NewSection(title, level+1))
}

func (parser *documentParser) flushParagraph() {
	if len(parser.paragraph) == 0 {
		return
	}
	text := strings.Join(parser.paragraph, " ")
	parser.paragraph = nil
	switch {
	case text == literalMarker:
		return
	case strings.HasSuffix(text, " "+literalMarker):
		text = strings.TrimSuffix(text, " "+literalMarker)
	case strings.HasSuffix(text, literalMarker):
		text = strings.TrimSuffix(text, ":")
	}
	parser.nodes = append(parser.nodes, NewParagraph(text))
}

func (parser *documentParser) parseLiteralBlock() {
	for parser.position < len(parser.lines) && strings.TrimSpace(parser.lines[parser.position]) == "" {
		parser.position++
	}
	block := parser.consumeIndentedBlock()
	if len(block) > 0 {
		parser.nodes = append(parser.nodes, NewLiteral(strings.Join(block, "\n"), ""))
	}
}

// consumeIndentedBlock reads indented lines and interior blank lines starting
// at the current position and returns them with the common indentation removed.
func (parser *documentParser) consumeIndentedBlock() []string {
	var block []string
	for parser.position < len(parser.lines) {
		line := parser.lines[parser.position]
		if strings.TrimSpace(line) == "" {
			if parser.nextNonBlankIsIndented() {
				block = append(block, "")
				parser.position++
				continue
			}
			break
		}
		if !isIndented(line) {
			break
		}
		block = append(block, line)
		parser.position++
	}
	return dedent(block)
}

func (parser *documentParser) nextNonBlankIsIndented() bool {
	for index := parser.position; index < len(parser.lines); index++ {
		if strings.TrimSpace(parser.lines[index]) != "" {
			return isIndented(parser.lines[index])
		}
	}
	return false
}

func (parser *documentParser) parseDirective() error {
	line := parser.lines[parser.position]
	lineNumber := parser.position + 1
	matches := directivePattern.FindStringSubmatch(line)
	directive := Directive{
		Name:     strings.ToLower(matches[1]),
		Argument: strings.TrimSpace(matches[2]),
		Options:  map[string]string{},
		Line:     lineNumber,
	}
	parser.position++
	body := parser.consumeIndentedBlock()

	bodyIndex := 0
	for ; bodyIndex < len(body); bodyIndex++ {
		optionMatches := optionPattern.FindStringSubmatch(strings.TrimSpace(body[bodyIndex]))
		if optionMatches == nil {
			break
		}
		directive.Options[strings.ToLower(optionMatches[1])] = strings.TrimSpace(optionMatches[2])
	}
	for bodyIndex < len(body) && body[bodyIndex] == "" {
		bodyIndex++
	}
	directive.Content = body[bodyIndex:]

	handler, registered := parser.directives[directive.Name]
	if !registered {
		raw := append([]string{strings.TrimSpace(line)}, indentAll(body)...)
		parser.nodes = append(parser.nodes, NewLiteral(strings.Join(raw, "\n"), unknownDirectiveLanguage))
		return nil
	}
	nodes, handlerError := handler(directive)
	if handlerError != nil {
		return fmt.Errorf("%w: %s:%d: %s: %w", ErrDirective, parser.name, lineNumber, directive.Name, handlerError)
	}
	parser.nodes = append(parser.nodes, nodes...)
	return nil
}

func isIndented(line string) bool {
	return strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t")
}

func dedent(lines []string) []string {
	minimumIndentation := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		indentation := len(line) - len(strings.TrimLeft(line, " \t"))
		if minimumIndentation < 0 || indentation < minimumIndentation {
			minimumIndentation = indentation
		}
	}
	result := make([]string, len(lines))
	for index, line := range lines {
		if len(line) >= minimumIndentation && minimumIndentation > 0 {
			result[index] = line[minimumIndentation:]
		} else {
			result[index] = strings.TrimSpace(line)
		}
	}
	return result
}

func indentAll(lines []string) []string {
	result := make([]string, len(lines))
	for index, line := range lines {
		if line == "" {
			continue
		}
		result[index] = "   " + line
	}
	return result
}
