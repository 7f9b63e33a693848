package script

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// Lexer tokenizes scene scripts. Commands are whitespace separated; line
// breaks carry no meaning.
var Lexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `//[^\n]*`},
	{Name: "Whitespace", Pattern: `[\s;]+`},

	{Name: "Arrow", Pattern: `->`},
	{Name: "Number", Pattern: `[-+]?(?:[0-9]+\.?[0-9]*|\.[0-9]+)(?:[eE][-+]?[0-9]+)?`},

	// CSS hex colour
	{Name: "Hex", Pattern: `#[0-9a-fA-F]+`},

	{Name: "Ident", Pattern: `[a-zA-Z][a-zA-Z0-9_]*`},
})
