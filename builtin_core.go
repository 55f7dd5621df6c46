// builtin_core.go
//
// Core built-ins registered into the Core environment at construction:
//   - print(args...)       — printed forms joined by single spaces + newline
//   - input(prompt?)       — optional prompt, reads one line from Stdin
//   - len(x)               — byte length of a string, element count of an array
//   - str(x)               — printed form
//   - int(x), float(x)     — numeric parse/cast; parse failure raises
//   - string(x), bool(x)   — conversion forms of the type keywords
//   - array(xs...), map()  — literal constructors for the type keywords
//
// Conventions follow the file-per-concern builtin layout: snake_case surface
// names, hard errors via fail(...), no direct os.Stdout/Stdin use — all I/O
// goes through the interpreter's streams so hosts and tests can redirect it.
package synthflow

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// lineReader wraps the interpreter's Stdin in a persistent buffered reader so
// consecutive input() calls do not drop buffered bytes.
type lineReader struct {
	r *bufio.Reader
}

func (ip *Interpreter) readLine() (string, error) {
	if ip.stdin == nil {
		ip.stdin = &lineReader{r: bufio.NewReader(ip.Stdin)}
	}
	line, err := ip.stdin.r.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func registerCoreBuiltins(ip *Interpreter) {
	ip.RegisterNative("print", func(ip *Interpreter, args []Value) Value {
		parts := make([]string, len(args))
		for i, a := range args {
			parts[i] = FormatValue(a)
		}
		fmt.Fprintln(ip.Stdout, strings.Join(parts, " "))
		return Null
	})

	ip.RegisterNative("input", func(ip *Interpreter, args []Value) Value {
		if len(args) > 0 {
			fmt.Fprint(ip.Stdout, FormatValue(args[0]))
		}
		line, err := ip.readLine()
		if err != nil && err != io.EOF {
			failf("input failed: %v", err)
		}
		return Str(line)
	})

	ip.RegisterNative("len", func(_ *Interpreter, args []Value) Value {
		if len(args) == 0 {
			fail("len() requires an argument")
		}
		switch args[0].Tag {
		case VTStr:
			return Int(int64(len(args[0].Data.(string))))
		case VTArray:
			return Int(int64(len(args[0].Data.([]Value))))
		}
		fail("len() requires a string or array")
		return Null
	})

	ip.RegisterNative("str", func(_ *Interpreter, args []Value) Value {
		if len(args) == 0 {
			return Str("")
		}
		return Str(FormatValue(args[0]))
	})

	// string(x) parses as a conversion call; same behaviour as str.
	ip.RegisterNative("string", func(_ *Interpreter, args []Value) Value {
		if len(args) == 0 {
			return Str("")
		}
		return Str(FormatValue(args[0]))
	})

	ip.RegisterNative("int", func(_ *Interpreter, args []Value) Value {
		if len(args) == 0 {
			return Int(0)
		}
		switch v := args[0]; v.Tag {
		case VTInt:
			return v
		case VTFloat:
			return Int(int64(v.Data.(float64)))
		case VTStr:
			n, err := strconv.ParseInt(strings.TrimSpace(v.Data.(string)), 10, 64)
			if err != nil {
				fail("cannot convert string to int")
			}
			return Int(n)
		case VTBool:
			if v.Data.(bool) {
				return Int(1)
			}
			return Int(0)
		}
		fail("cannot convert to int")
		return Null
	})

	ip.RegisterNative("float", func(_ *Interpreter, args []Value) Value {
		if len(args) == 0 {
			return Float(0)
		}
		switch v := args[0]; v.Tag {
		case VTFloat:
			return v
		case VTInt:
			return Float(float64(v.Data.(int64)))
		case VTStr:
			f, err := strconv.ParseFloat(strings.TrimSpace(v.Data.(string)), 64)
			if err != nil {
				fail("cannot convert string to float")
			}
			return Float(f)
		}
		fail("cannot convert to float")
		return Null
	})

	ip.RegisterNative("bool", func(_ *Interpreter, args []Value) Value {
		if len(args) == 0 {
			return Bool(false)
		}
		return Bool(isTruthy(args[0]))
	})

	ip.RegisterNative("array", func(_ *Interpreter, args []Value) Value {
		elems := make([]Value, len(args))
		copy(elems, args)
		return Arr(elems)
	})

	ip.RegisterNative("map", func(_ *Interpreter, args []Value) Value {
		if len(args) != 0 {
			fail("map() takes no arguments")
		}
		return Map(NewMapObject())
	})
}
