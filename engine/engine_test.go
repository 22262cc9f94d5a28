package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
)

func TestLifecycle(t *testing.T) {
	Convey("Given a live engine", t, func() {
		first, err := New()
		So(err, ShouldBeNil)
		defer first.Close()

		So(Live(), ShouldBeTrue)

		Convey("A second engine should be refused", func() {
			second, err := New()
			So(second, ShouldBeNil)
			So(err, ShouldEqual, ErrAlreadyInitialized)

			Convey("And the first engine should keep working", func() {
				ctx, err := first.NewContext(context.Background())
				So(err, ShouldBeNil)
				defer ctx.Close()
				So(ctx.CompileAndRun("ok", "x = 1"), ShouldBeNil)
				So(Live(), ShouldBeTrue)
			})
		})

		Convey("Closing should allow a new engine", func() {
			first.Close()
			So(Live(), ShouldBeFalse)

			_, err := first.NewContext(context.Background())
			So(err, ShouldEqual, ErrClosed)

			again, err := New()
			So(err, ShouldBeNil)
			again.Close()
		})

		Convey("Closing twice should be harmless", func() {
			first.Close()
			first.Close()
			So(Live(), ShouldBeFalse)
		})
	})
}

func newTestContext() Context {
	ctx, err := luaRuntime{}.NewContext(context.Background())
	if err != nil {
		panic(err)
	}
	return ctx
}

func TestCompileAndRun(t *testing.T) {
	Convey("Given a fresh context", t, func() {
		ctx := newTestContext()
		defer ctx.Close()

		Convey("Valid code should run", func() {
			So(ctx.CompileAndRun("prog", "answer = 6 * 7"), ShouldBeNil)
		})

		Convey("A syntax error should produce a compile diagnostic", func() {
			err := ctx.CompileAndRun("prog", "local a = 1\nlocal b = = 2\n")
			So(errors.Is(err, ErrCompile), ShouldBeTrue)

			var d *Diagnostic
			So(errors.As(err, &d), ShouldBeTrue)
			So(d.Phase, ShouldEqual, PhaseCompile)
			So(d.Line, ShouldEqual, 2)
			So(d.SourceLine, ShouldEqual, "local b = = 2")
			So(d.Offset, ShouldBeGreaterThanOrEqualTo, len("local a = 1\n"))
			So(d.Error(), ShouldStartWith, "Failed to compile code!\nLine: 2\n")
			So(d.Error(), ShouldContainSubstring, "Offending line:\nlocal b = = 2\n")
		})

		Convey("An uncaught error should produce a runtime diagnostic", func() {
			err := ctx.CompileAndRun("prog", "local a = 1\n\nerror(\"boom\")\n")
			So(errors.Is(err, ErrRuntime), ShouldBeTrue)

			var d *Diagnostic
			So(errors.As(err, &d), ShouldBeTrue)
			So(d.Line, ShouldEqual, 3)
			So(d.Offset, ShouldEqual, len("local a = 1\n\n"))
			So(d.SourceLine, ShouldEqual, "error(\"boom\")")
			So(d.Message, ShouldEqual, "boom")
			So(d.Error(), ShouldStartWith, "Runtime error!\nLine: 3\n")
			So(d.Error(), ShouldEndWith, "Message:\nboom")
		})

		Convey("Runtime errors inside an earlier chunk should quote that chunk", func() {
			So(ctx.CompileAndRun("helpers", "function fail()\n  error(\"from helper\")\nend\n"), ShouldBeNil)

			err := ctx.CompileAndRun("prog", "fail()")
			var d *Diagnostic
			So(errors.As(err, &d), ShouldBeTrue)
			So(d.Chunk, ShouldEqual, "helpers")
			So(d.Line, ShouldEqual, 2)
			So(d.SourceLine, ShouldEqual, "  error(\"from helper\")")
		})

		Convey("An error raised without a position should still be located", func() {
			err := ctx.CompileAndRun("prog", "local a = 1\nerror(\"no formats\", 0)\n")
			So(errors.Is(err, ErrRuntime), ShouldBeTrue)

			var d *Diagnostic
			So(errors.As(err, &d), ShouldBeTrue)
			So(d.Chunk, ShouldEqual, "prog")
			So(d.Line, ShouldEqual, 2)
			So(d.SourceLine, ShouldEqual, "error(\"no formats\", 0)")
			So(d.Offset, ShouldEqual, len("local a = 1\n"))
			So(d.Message, ShouldEqual, "no formats")
			So(d.Error(), ShouldStartWith, "Runtime error!\nLine: 2\n")
		})

		Convey("A thrown table should still be located", func() {
			err := ctx.CompileAndRun("prog", "local a = 1\nerror({code = 1})\n")

			var d *Diagnostic
			So(errors.As(err, &d), ShouldBeTrue)
			So(d.Line, ShouldEqual, 2)
			So(d.SourceLine, ShouldEqual, "error({code = 1})")
			So(d.Message, ShouldStartWith, "table: ")
		})

		Convey("A positionless error inside a helper should point at the helper", func() {
			So(ctx.CompileAndRun("helpers", "function fail()\n  error(\"bare\", 0)\nend\n"), ShouldBeNil)

			err := ctx.CompileAndRun("prog", "\nfail()")
			var d *Diagnostic
			So(errors.As(err, &d), ShouldBeTrue)
			So(d.Chunk, ShouldEqual, "helpers")
			So(d.Line, ShouldEqual, 2)
			So(d.Message, ShouldEqual, "bare")
		})

		Convey("Globals should survive between chunks of one context", func() {
			So(ctx.CompileAndRun("first", "shared = 'yes'"), ShouldBeNil)
			So(ctx.CompileAndRun("second", "assert(shared == 'yes')"), ShouldBeNil)
		})
	})

	Convey("Given two contexts", t, func() {
		a, b := newTestContext(), newTestContext()
		defer a.Close()
		defer b.Close()

		Convey("State should not leak between them", func() {
			So(a.CompileAndRun("a", "leaked = true"), ShouldBeNil)
			So(b.CompileAndRun("b", "assert(leaked == nil)"), ShouldBeNil)
		})
	})

	Convey("Given a cancelled context", t, func() {
		cctx, cancel := context.WithCancel(context.Background())
		ctx, err := luaRuntime{}.NewContext(cctx)
		So(err, ShouldBeNil)
		defer ctx.Close()
		cancel()

		Convey("Running code should stop with a runtime diagnostic", func() {
			err := ctx.CompileAndRun("loop", "while true do end")
			So(errors.Is(err, ErrRuntime), ShouldBeTrue)
		})
	})
}

func TestSandbox(t *testing.T) {
	Convey("Given a fresh context", t, func() {
		ctx := newTestContext()
		defer ctx.Close()

		Convey("Filesystem and process libraries should be absent", func() {
			So(ctx.CompileAndRun("check", "assert(io == nil and os == nil and debug == nil)"), ShouldBeNil)
			So(ctx.CompileAndRun("check", "assert(dofile == nil and loadfile == nil)"), ShouldBeNil)
		})

		Convey("Network helper modules should not be requirable", func() {
			So(ctx.CompileAndRun("check", "assert(not pcall(require, 'http'))"), ShouldBeNil)
		})

		Convey("The urls and levenshtein helpers should be requirable", func() {
			source := `
local urls = require("urls")
assert(urls.encode("a b&c") == "a+b%26c")
assert(urls.decode("a+b%26c") == "a b&c")
local _, err = urls.decode("%zz")
assert(err ~= nil)
local q = urls.parse_query("s=AB%3D&sp=sig")
assert(q.s == "AB=" and q.sp == "sig")
local u = urls.parse("https://www.youtube.com/watch?v=x#t")
assert(u.host == "www.youtube.com" and u.path == "/watch" and u.query == "v=x" and u.fragment == "t")
assert(urls.resolve("https://www.youtube.com/watch", "/s/base.js") == "https://www.youtube.com/s/base.js")
assert(require("levenshtein").distance("kitten", "sitting") == 3)
`
			So(ctx.CompileAndRun("check", source), ShouldBeNil)
		})

		Convey("Pure standard libraries should be present", func() {
			So(ctx.CompileAndRun("check", "assert(string.upper('a') == 'A' and math.floor(1.5) == 1 and table.concat({'a','b'}) == 'ab')"), ShouldBeNil)
		})
	})
}

func TestBindings(t *testing.T) {
	Convey("Given installed bindings", t, func() {
		ctx := newTestContext()
		defer ctx.Close()

		var received []any
		err := ctx.Install("host", []Binding{
			Value("id", "abc"),
			Function("echo", 1, "echo takes one argument", func(args []any) (mo.Option[string], error) {
				received = args
				s, _ := args[0].(string)
				return mo.Some(s), nil
			}),
			Function("collect", Variadic, "", func(args []any) (mo.Option[string], error) {
				received = args
				return mo.None[string](), nil
			}),
			Function("fail", 0, "", func([]any) (mo.Option[string], error) {
				return mo.None[string](), errors.New("host failure")
			}),
		})
		So(err, ShouldBeNil)

		Convey("Values should be visible", func() {
			So(ctx.CompileAndRun("p", "assert(host.id == 'abc')"), ShouldBeNil)
		})

		Convey("Functions should round-trip strings", func() {
			So(ctx.CompileAndRun("p", "assert(host.echo('hi') == 'hi')"), ShouldBeNil)
			So(received, ShouldResemble, []any{"hi"})
		})

		Convey("Arguments should be marshaled by type", func() {
			So(ctx.CompileAndRun("p", "host.collect('s', 2, true, nil, {})"), ShouldBeNil)
			So(received, ShouldHaveLength, 5)
			So(received[0], ShouldEqual, "s")
			So(received[1], ShouldEqual, float64(2))
			So(received[2], ShouldEqual, true)
			So(received[3], ShouldBeNil)
			_, opaque := received[4].(Opaque)
			So(opaque, ShouldBeTrue)
		})

		Convey("Arity mismatches should raise the usage message", func() {
			err := ctx.CompileAndRun("p", "host.echo()")
			var d *Diagnostic
			So(errors.As(err, &d), ShouldBeTrue)
			So(d.Message, ShouldEqual, "echo takes one argument")
		})

		Convey("Host errors should be catchable", func() {
			So(ctx.CompileAndRun("p", `
local ok, msg = pcall(host.fail)
assert(not ok)
assert(string.find(msg, "host failure", 1, true))
`), ShouldBeNil)
		})

		Convey("Uncaught host errors should carry the caller's line", func() {
			err := ctx.CompileAndRun("p", "local x = 1\nhost.fail()")
			var d *Diagnostic
			So(errors.As(err, &d), ShouldBeTrue)
			So(d.Line, ShouldEqual, 2)
			So(d.Message, ShouldEqual, "host failure")
		})
	})
}

func TestLookup(t *testing.T) {
	Convey("Given a namespace populated by a program", t, func() {
		ctx := newTestContext()
		defer ctx.Close()
		So(ctx.Install("ns", nil), ShouldBeNil)
		So(ctx.CompileAndRun("p", `
ns.name = "Title"
ns.count = 3
ns.list = { "a", "b" }
ns.empty = {}
`), ShouldBeNil)

		Convey("Strings and numbers should be marshaled", func() {
			So(lookup(ctx, "name"), ShouldEqual, "Title")
			So(lookup(ctx, "count"), ShouldEqual, float64(3))
		})

		Convey("Sequences should keep their order", func() {
			So(lookup(ctx, "list"), ShouldResemble, []any{"a", "b"})
			So(lookup(ctx, "empty"), ShouldBeEmpty)
		})

		Convey("Absent fields should be nil", func() {
			So(lookup(ctx, "missing"), ShouldBeNil)
		})

		Convey("A replaced namespace should fail", func() {
			So(ctx.CompileAndRun("p", "ns = 5"), ShouldBeNil)
			_, err := ctx.Lookup("ns", "name")
			So(err, ShouldNotBeNil)
		})
	})
}

func lookup(ctx Context, name string) any {
	v, err := ctx.Lookup("ns", name)
	if err != nil {
		panic(err)
	}
	return v
}
