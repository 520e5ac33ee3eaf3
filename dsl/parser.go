package dsl

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	sheetLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r]+`},
		{Name: "Newline", Pattern: `\n+`},
		{Name: "BlockComment", Pattern: `/\*[^*]*\*+(?:[^/*][^*]*\*+)*/`},
		{Name: "LineComment", Pattern: `//[^\n]*`},
		{Name: "Color", Pattern: `#(?:[0-9A-Fa-f]{8}|[0-9A-Fa-f]{6}|[0-9A-Fa-f]{3})\b`},
		{Name: "HashComment", Pattern: `#[^\n]*`},
		{Name: "Number", Pattern: `(?:\d+\.\d+|\d+)(?:px|pt|%|x)?`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_-]*`},
		{Name: "Symbol", Pattern: `[:;,]`},
		{Name: "LBrace", Pattern: `{`},
		{Name: "RBrace", Pattern: `}`},
	})

	sheetParser = participle.MustBuild[Sheet](
		participle.Lexer(sheetLexer),
		participle.Elide("Whitespace", "LineComment", "BlockComment", "HashComment"),
	)
)

// Sheet is the root AST node of a profile sheet.
type Sheet struct {
	Pos      lexer.Position `parser:"" json:"-"`
	Name     string         `parser:"Newline* 'profiles' @Ident"`
	Canvases []*Canvas      `parser:"'{' Newline* ( @@ Newline* )* '}' Newline*"`
}

// Canvas declares one canvas profile (`canvas <name> <size> { ... }`).
type Canvas struct {
	Pos        lexer.Position `parser:"" json:"-"`
	Name       string         `parser:"'canvas' @Ident"`
	Size       string         `parser:"@Number"`
	Properties []*Property    `parser:"'{' Newline* ( @@ ( ';' | Newline )* )* '}'"`
}

// Property is a `key: value [value...]` line inside a canvas block.
// Values may be separated by spaces or commas.
type Property struct {
	Pos    lexer.Position `parser:"" json:"-"`
	Key    string         `parser:"@Ident ':'"`
	Values []*Value       `parser:"@@ ( ','? @@ )*"`
}

// Value is a single property value.
type Value struct {
	Pos    lexer.Position `parser:"" json:"-"`
	Number *string        `parser:"  @Number"`
	Color  *string        `parser:"| @Color"`
}

// Raw returns the value's source text.
func (v *Value) Raw() string {
	switch {
	case v == nil:
		return ""
	case v.Number != nil:
		return *v.Number
	case v.Color != nil:
		return *v.Color
	default:
		return ""
	}
}

// Lookup returns the first property named key, or nil.
func (c *Canvas) Lookup(key string) *Property {
	for _, p := range c.Properties {
		if p.Key == key {
			return p
		}
	}
	return nil
}

// Parse parses a profile sheet from an io.Reader.
func Parse(r io.Reader) (*Sheet, error) {
	return sheetParser.Parse("", r)
}

// ParseString parses a profile sheet from a string.
func ParseString(input string) (*Sheet, error) {
	return sheetParser.ParseString("", input)
}

// ParseFile parses the sheet at path; positions in errors carry the file name.
func ParseFile(path string) (*Sheet, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("无法打开配置表 %s: %w", path, err)
	}
	defer file.Close()
	return sheetParser.Parse(path, file)
}
