// builtin_file.go
//
// Filesystem built-ins. Handles are opened and closed within the call; they
// never escape into user programs. Failures raise catchable runtime errors.
package synthflow

import "os"

func registerFileBuiltins(ip *Interpreter) {
	// read_file(path: string) -> string
	ip.RegisterNative("read_file", func(_ *Interpreter, args []Value) Value {
		if len(args) == 0 || args[0].Tag != VTStr {
			fail("read_file() requires a string path")
		}
		data, err := os.ReadFile(args[0].Data.(string))
		if err != nil {
			failf("cannot open file: %s", args[0].Data.(string))
		}
		return Str(string(data))
	})

	// write_file(path: string, content) -> true
	ip.RegisterNative("write_file", func(_ *Interpreter, args []Value) Value {
		if len(args) < 2 || args[0].Tag != VTStr {
			fail("write_file() requires path and content")
		}
		path := args[0].Data.(string)
		if err := os.WriteFile(path, []byte(FormatValue(args[1])), 0o644); err != nil {
			failf("cannot open file for writing: %s", path)
		}
		return Bool(true)
	})
}
