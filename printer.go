// printer.go — canonical printed form of runtime values.
//
// This rendering is shared by print, string coercion in '+', str(), and
// string interpolation. Strings render raw (no quotes) except as map keys;
// floats use Go's shortest round-trip 'g' formatting, matching the default
// stream formatting of the reference behaviour (3.5 prints "3.5", 5.0 prints
// "5").
package synthflow

import (
	"strconv"
	"strings"
)

// FormatValue renders v in its printed form.
func FormatValue(v Value) string {
	switch v.Tag {
	case VTNull:
		return "null"
	case VTBool:
		if v.Data.(bool) {
			return "true"
		}
		return "false"
	case VTInt:
		return strconv.FormatInt(v.Data.(int64), 10)
	case VTFloat:
		return strconv.FormatFloat(v.Data.(float64), 'g', -1, 64)
	case VTStr:
		return v.Data.(string)
	case VTArray:
		var b strings.Builder
		b.WriteByte('[')
		for i, elem := range v.Data.([]Value) {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(FormatValue(elem))
		}
		b.WriteByte(']')
		return b.String()
	case VTMap:
		m := v.Data.(*MapObject)
		var b strings.Builder
		b.WriteByte('{')
		for i, k := range m.Keys {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteByte('"')
			b.WriteString(k)
			b.WriteString(`": `)
			b.WriteString(FormatValue(m.Entries[k]))
		}
		b.WriteByte('}')
		return b.String()
	case VTFun:
		return "<function>"
	}
	return "<unknown>"
}
