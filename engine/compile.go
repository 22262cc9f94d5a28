package engine

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	lua "github.com/yuin/gopher-lua"
	"github.com/yuin/gopher-lua/parse"
)

// compile parses source and compiles it into a function prototype.
// Prototypes are never cached: every run reads and compiles its programs afresh.
func compile(chunk, source string) (*lua.FunctionProto, error) {
	stmts, err := parse.Parse(strings.NewReader(source), chunk)
	if err != nil {
		return nil, err
	}

	return lua.Compile(stmts, chunk)
}

// compileDiagnostic converts a parser or compiler error into a Diagnostic.
func compileDiagnostic(chunk, source string, err error) *Diagnostic {
	d := &Diagnostic{Phase: PhaseCompile, Chunk: chunk, Message: err.Error()}

	var parseErr *parse.Error
	var compileErr *lua.CompileError

	switch {
	case errors.As(err, &parseErr):
		d.Line = parseErr.Pos.Line
		d.Column = parseErr.Pos.Column
		if d.Line == parse.EOF {
			d.Line = strings.Count(strings.TrimRight(source, "\n"), "\n") + 1
			d.Column = 0
		}
		d.Message = parseErr.Message
		if parseErr.Token != "" {
			d.Message = fmt.Sprintf("near '%s': %s", parseErr.Token, parseErr.Message)
		}
	case errors.As(err, &compileErr):
		d.Line = compileErr.Line
		d.Message = compileErr.Message
	}

	d.locate(source)
	return d
}

// position matches the "chunk:line:" prefix gopher-lua puts on raised errors.
var position = regexp.MustCompile(`^([\w.\-]+):(\d+):\s?`)

// frame matches one Lua frame of a gopher-lua stack traceback.
var frame = regexp.MustCompile(`(?m)^\t([\w.\-]+):(\d+): in `)

// runtimeDiagnostic converts an error returned by PCall into a Diagnostic.
// The line is taken from the error's position prefix, which may point into
// another chunk of the same context, for example a bootstrap helper.
// Errors raised without a position, such as error(msg, 0) or a thrown table,
// are located by the innermost traceback frame of a known chunk.
func runtimeDiagnostic(chunk string, sources map[string]string, err error) *Diagnostic {
	message := err.Error()
	var trace string
	var apiErr *lua.ApiError
	if errors.As(err, &apiErr) {
		message = apiErr.Object.String()
		trace = apiErr.StackTrace
	}

	d := &Diagnostic{Phase: PhaseRuntime, Chunk: chunk, Message: message}

	if m := position.FindStringSubmatch(message); m != nil {
		if src, ok := sources[m[1]]; ok {
			d.Chunk = m[1]
			d.Line, _ = strconv.Atoi(m[2])
			d.Message = message[len(m[0]):]
			d.locate(src)
			return d
		}
	}

	for _, m := range frame.FindAllStringSubmatch(trace, -1) {
		if src, ok := sources[m[1]]; ok {
			d.Chunk = m[1]
			d.Line, _ = strconv.Atoi(m[2])
			d.locate(src)
			break
		}
	}

	return d
}
