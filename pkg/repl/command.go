package repl

import (
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// command is a line starting with '.', e.g. ".load examples/fib.rs"
type command struct {
	Exit  bool    `  @(".exit" | ".quit")`
	Help  bool    `| @".help"`
	Clear bool    `| @".clear"`
	Env   bool    `| @".env"`
	Load  *string `| ".load" @(String | Path)`
}

// commands lists the meta commands for help and completion
var commands = []string{".clear", ".env", ".exit", ".help", ".load"}

var (
	commandLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "whitespace", Pattern: `\s+`},
		{Name: "Command", Pattern: `\.[a-z]+\b`},
		{Name: "String", Pattern: `"[^"]*"`},
		{Name: "Path", Pattern: `[^\s"]+`},
	})
	commandParser = participle.MustBuild[command](
		participle.Lexer(commandLexer),
	)
)

func isCommand(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), ".")
}

func parseCommand(line string) (*command, error) {
	cmd, err := commandParser.ParseString("", strings.TrimSpace(line))
	if err != nil {
		return nil, err
	}
	if cmd.Load != nil {
		path := strings.Trim(*cmd.Load, `"`)
		cmd.Load = &path
	}
	return cmd, nil
}

func helpMessage() string {
	return `Commands:

  .help        Print this message
  .env         List global names
  .load FILE   Run FILE in this session
  .clear       Clear the screen
  .exit        Leave the REPL

Anything else is run as rusty source. Definitions persist between lines.
Tab and Shift-Tab cycle completions, Up and Down walk the history,
Ctrl+C clears the line (or exits on an empty line), Ctrl+D exits.`
}
