package synthflow

import (
	"strings"
	"testing"
)

func Test_Errors_ParseSnippet_HasCaretAndContext(t *testing.T) {
	src := "let x = 1\nlet = 2\nlet y = 3"
	_, err := Parse(src)
	if err == nil {
		t.Fatal("want parse error")
	}
	wrapped := WrapErrorWithName(err, "<main>", src)
	msg := wrapped.Error()

	for _, want := range []string{
		"PARSE ERROR in <main> at 2:5",
		"   1 | let x = 1",
		"   2 | let = 2",
		"   3 | let y = 3",
		"^",
	} {
		if !strings.Contains(msg, want) {
			t.Fatalf("snippet missing %q:\n%s", want, msg)
		}
	}
}

func Test_Errors_LexSnippet(t *testing.T) {
	src := `let s = "unterminated`
	_, err := NewLexer(src).Scan()
	if err == nil {
		t.Fatal("want lex error")
	}
	msg := WrapErrorWithSource(err, src).Error()
	if !strings.Contains(msg, "LEXICAL ERROR at 1:9") {
		t.Fatalf("header: %s", msg)
	}
	if !strings.Contains(msg, "^") {
		t.Fatalf("missing caret:\n%s", msg)
	}
}

func Test_Errors_RuntimeSnippet_UsesStatementPosition(t *testing.T) {
	src := "let a = [1]\nlet b = a[10]"
	ip := NewInterpreter()
	_, err := ip.EvalSource(src)
	if err == nil {
		t.Fatal("want runtime error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "RUNTIME ERROR in <main> at 2:") {
		t.Fatalf("header: %s", msg)
	}
	if !strings.Contains(msg, "array index out of bounds") {
		t.Fatalf("message: %s", msg)
	}
}

func Test_Errors_PositionlessRuntimeError_Untouched(t *testing.T) {
	plain := &RuntimeError{Msg: "no position"}
	if got := WrapErrorWithSource(plain, "src"); got != error(plain) {
		t.Fatalf("positionless runtime error should pass through, got %v", got)
	}
}

func Test_Errors_CaretClampedToLine(t *testing.T) {
	// column beyond the line must not panic
	msg := prettyErrorString("ab", "PARSE ERROR", "", 1, 99, "x")
	if !strings.Contains(msg, "^") {
		t.Fatalf("caret missing: %s", msg)
	}
}
