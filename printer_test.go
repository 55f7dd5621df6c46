package synthflow

import "testing"

func wantFormat(t *testing.T, v Value, want string) {
	t.Helper()
	if got := FormatValue(v); got != want {
		t.Fatalf("FormatValue(%#v) = %q, want %q", v, got, want)
	}
}

func Test_Printer_Scalars(t *testing.T) {
	wantFormat(t, Null, "null")
	wantFormat(t, Bool(true), "true")
	wantFormat(t, Bool(false), "false")
	wantFormat(t, Int(-42), "-42")
	wantFormat(t, Str("plain"), "plain")
}

func Test_Printer_Floats(t *testing.T) {
	wantFormat(t, Float(3.5), "3.5")
	wantFormat(t, Float(5.0), "5")
	wantFormat(t, Float(0.25), "0.25")
	wantFormat(t, Float(-1.5), "-1.5")
}

func Test_Printer_Arrays(t *testing.T) {
	wantFormat(t, Arr(nil), "[]")
	wantFormat(t, Arr([]Value{Int(1), Str("a"), Null}), "[1, a, null]")
	wantFormat(t, Arr([]Value{Arr([]Value{Int(1)}), Int(2)}), "[[1], 2]")
}

func Test_Printer_Maps_InsertionOrder(t *testing.T) {
	m := NewMapObject()
	m.Set("b", Int(2))
	m.Set("a", Int(1))
	wantFormat(t, Map(m), `{"b": 2, "a": 1}`)

	empty := NewMapObject()
	wantFormat(t, Map(empty), "{}")
}

func Test_Printer_Functions(t *testing.T) {
	wantFormat(t, FunVal(&Fun{Name: "f"}), "<function>")
}
