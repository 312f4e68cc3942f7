package ast

import (
	"testing"

	"github.com/arjpeg/helix/pkg/source"
)

func TestDumpExpressions(t *testing.T) {
	expr := Bin("+", Int(1), Bin("*", Flt(2), Un(UnaryOperatorNegate, ID("x"))))
	if got := Dump(expr); got != "(+ 1 (* 2.0 (- x)))" {
		t.Fatalf("unexpected dump %q", got)
	}
}

func TestDumpStatements(t *testing.T) {
	prog := Prog(
		Let("n", Int(3)),
		Fn("add", []string{"a", "b"}, Ret(Bin("+", ID("a"), ID("b")))),
		While(Bin("<", ID("n"), Int(10)), Blk(Assign("n", Call("add", ID("n"), Int(1))), Brk())),
		If(Bool(false), Blk(Print(Str("no"))), Blk(Cont())),
	)
	want := `(program (let n 3) (fn add (a b) (block (return (+ a b)))) (while (< n 10) (block (set n (call add n 1)) (break))) (if false (block (print "no")) (block (continue))))`
	if got := Dump(prog); got != want {
		t.Fatalf("unexpected dump\n got: %s\nwant: %s", got, want)
	}
}

func TestWithSpan(t *testing.T) {
	span := source.NewSpan(2, 5, 1)
	id := WithSpan(ID("abc"), span)
	if id.Span() != span {
		t.Fatalf("expected span %v, got %v", span, id.Span())
	}
}

func TestWalkVisitsAllNodes(t *testing.T) {
	prog := Prog(Let("x", Bin("+", Int(1), Int(2))), Print(ID("x")))
	count := 0
	Walk(prog, func(Node) bool {
		count++
		return true
	})
	// program, let, x, +, 1, 2, print, x
	if count != 8 {
		t.Fatalf("expected 8 nodes, got %d", count)
	}
}

func TestFormatFloat(t *testing.T) {
	cases := map[float64]string{2: "2.0", 2.5: "2.5", -0.125: "-0.125"}
	for in, want := range cases {
		if got := FormatFloat(in); got != want {
			t.Fatalf("FormatFloat(%v) = %q, want %q", in, got, want)
		}
	}
}
