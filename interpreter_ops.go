// interpreter_ops.go — PRIVATE: operator semantics, truthiness, indexing,
// and member access.
//
// Coercion rules:
//   - '+' concatenates printed forms when either operand is a string;
//     otherwise floats win over ints.
//   - '-', '*', '/' promote to float when either operand is float; '/' on two
//     ints is integer division; division by zero raises.
//   - '%' is defined on integers only.
//   - comparisons order numbers with float promotion and strings bytewise;
//     '==' compares an int and a float numerically, and is false across any
//     other pair of different type tags.
//   - '&&'/'||' operate on truthiness of both (already evaluated) operands
//     and return a boolean.
package synthflow

func isFloatTag(v Value) bool { return v.Tag == VTFloat }
func isNumeric(v Value) bool  { return v.Tag == VTInt || v.Tag == VTFloat }

func asFloat(v Value) float64 {
	switch v.Tag {
	case VTInt:
		return float64(v.Data.(int64))
	case VTFloat:
		return v.Data.(float64)
	}
	failf("expected a number, got %s", tagName(v.Tag))
	return 0
}

func asInt(v Value) int64 {
	switch v.Tag {
	case VTInt:
		return v.Data.(int64)
	case VTFloat:
		return int64(v.Data.(float64))
	}
	failf("expected an integer, got %s", tagName(v.Tag))
	return 0
}

func tagName(t ValueTag) string {
	switch t {
	case VTNull:
		return "null"
	case VTBool:
		return "bool"
	case VTInt:
		return "int"
	case VTFloat:
		return "float"
	case VTStr:
		return "string"
	case VTArray:
		return "array"
	case VTMap:
		return "map"
	case VTFun:
		return "function"
	}
	return "unknown"
}

// isTruthy: null and false are false; numeric zero is false; empty string and
// empty array are false; everything else is true.
func isTruthy(v Value) bool {
	switch v.Tag {
	case VTNull:
		return false
	case VTBool:
		return v.Data.(bool)
	case VTInt:
		return v.Data.(int64) != 0
	case VTFloat:
		return v.Data.(float64) != 0.0
	case VTStr:
		return v.Data.(string) != ""
	case VTArray:
		return len(v.Data.([]Value)) != 0
	}
	return true
}

func binaryOp(op string, left, right Value) Value {
	switch op {
	case "+":
		if left.Tag == VTStr || right.Tag == VTStr {
			return Str(FormatValue(left) + FormatValue(right))
		}
		requireNumeric(op, left, right)
		if isFloatTag(left) || isFloatTag(right) {
			return Float(asFloat(left) + asFloat(right))
		}
		return Int(left.Data.(int64) + right.Data.(int64))

	case "-":
		requireNumeric(op, left, right)
		if isFloatTag(left) || isFloatTag(right) {
			return Float(asFloat(left) - asFloat(right))
		}
		return Int(left.Data.(int64) - right.Data.(int64))

	case "*":
		requireNumeric(op, left, right)
		if isFloatTag(left) || isFloatTag(right) {
			return Float(asFloat(left) * asFloat(right))
		}
		return Int(left.Data.(int64) * right.Data.(int64))

	case "/":
		requireNumeric(op, left, right)
		if asFloat(right) == 0.0 {
			fail("division by zero")
		}
		if isFloatTag(left) || isFloatTag(right) {
			return Float(asFloat(left) / asFloat(right))
		}
		return Int(left.Data.(int64) / right.Data.(int64))

	case "%":
		if left.Tag != VTInt || right.Tag != VTInt {
			fail("operator '%' requires integer operands")
		}
		if right.Data.(int64) == 0 {
			fail("division by zero")
		}
		return Int(left.Data.(int64) % right.Data.(int64))

	case "==":
		return Bool(valueEqual(left, right))
	case "!=":
		return Bool(!valueEqual(left, right))

	case "<", ">", "<=", ">=":
		return compareOp(op, left, right)

	case "&&":
		return Bool(isTruthy(left) && isTruthy(right))
	case "||":
		return Bool(isTruthy(left) || isTruthy(right))
	}

	failf("unknown binary operator: %s", op)
	return Null
}

func requireNumeric(op string, left, right Value) {
	if !isNumeric(left) || !isNumeric(right) {
		failf("operator %q requires numeric operands, got %s and %s",
			op, tagName(left.Tag), tagName(right.Tag))
	}
}

func compareOp(op string, left, right Value) Value {
	// string ordering is bytewise
	if left.Tag == VTStr && right.Tag == VTStr {
		ls, rs := left.Data.(string), right.Data.(string)
		switch op {
		case "<":
			return Bool(ls < rs)
		case ">":
			return Bool(ls > rs)
		case "<=":
			return Bool(ls <= rs)
		default:
			return Bool(ls >= rs)
		}
	}
	requireNumeric(op, left, right)
	lf, rf := asFloat(left), asFloat(right)
	switch op {
	case "<":
		return Bool(lf < rf)
	case ">":
		return Bool(lf > rf)
	case "<=":
		return Bool(lf <= rf)
	default:
		return Bool(lf >= rf)
	}
}

// valueEqual implements '==': numbers compare with float promotion, other
// kinds compare only within the same tag, and arrays/maps/functions compare
// as never-equal (no structural equality at this operator).
func valueEqual(left, right Value) bool {
	if isNumeric(left) && isNumeric(right) {
		return asFloat(left) == asFloat(right)
	}
	if left.Tag != right.Tag {
		return false
	}
	switch left.Tag {
	case VTNull:
		return true
	case VTBool:
		return left.Data.(bool) == right.Data.(bool)
	case VTStr:
		return left.Data.(string) == right.Data.(string)
	}
	return false
}

// matchEqual is the restricted structural equality used by match cases:
// int==int, float==float, string==string, bool==bool, null==null.
func matchEqual(subject, pattern Value) bool {
	if subject.Tag != pattern.Tag {
		return false
	}
	switch subject.Tag {
	case VTNull:
		return true
	case VTInt:
		return subject.Data.(int64) == pattern.Data.(int64)
	case VTFloat:
		return subject.Data.(float64) == pattern.Data.(float64)
	case VTStr:
		return subject.Data.(string) == pattern.Data.(string)
	case VTBool:
		return subject.Data.(bool) == pattern.Data.(bool)
	}
	return false
}

func unaryOp(op string, operand Value) Value {
	switch op {
	case "-":
		switch operand.Tag {
		case VTInt:
			return Int(-operand.Data.(int64))
		case VTFloat:
			return Float(-operand.Data.(float64))
		}
		failf("unary '-' requires a numeric operand, got %s", tagName(operand.Tag))
	case "!":
		return Bool(!isTruthy(operand))
	}
	failf("unknown unary operator: %s", op)
	return Null
}

////////////////////////////////////////////////////////////////////////////////
//                           INDEXING & MEMBER ACCESS
////////////////////////////////////////////////////////////////////////////////

func indexValue(arr, idx Value) Value {
	switch arr.Tag {
	case VTArray:
		elems := arr.Data.([]Value)
		i := boundsCheck(idx, len(elems))
		return elems[i]
	case VTMap:
		if idx.Tag != VTStr {
			fail("map index must be a string")
		}
		m := arr.Data.(*MapObject)
		if v, ok := m.Get(idx.Data.(string)); ok {
			return v
		}
		failf("map does not have member: %s", idx.Data.(string))
	}
	failf("cannot index %s", tagName(arr.Tag))
	return Null
}

func indexAssign(arr, idx, value Value) {
	switch arr.Tag {
	case VTArray:
		elems := arr.Data.([]Value)
		i := boundsCheck(idx, len(elems))
		elems[i] = value
		return
	case VTMap:
		if idx.Tag != VTStr {
			fail("map index must be a string")
		}
		arr.Data.(*MapObject).Set(idx.Data.(string), value)
		return
	}
	failf("cannot index %s", tagName(arr.Tag))
}

func boundsCheck(idx Value, n int) int {
	if idx.Tag != VTInt {
		fail("array index must be an integer")
	}
	i := idx.Data.(int64)
	if i < 0 || i >= int64(n) {
		fail("array index out of bounds")
	}
	return int(i)
}

// memberOf resolves `obj.name`: map field lookup, or the length pseudo-member
// on arrays and strings (byte length).
func memberOf(obj Value, name string) Value {
	switch obj.Tag {
	case VTMap:
		m := obj.Data.(*MapObject)
		if v, ok := m.Get(name); ok {
			return v
		}
		failf("map does not have member: %s", name)
	case VTArray:
		if name == "length" {
			return Int(int64(len(obj.Data.([]Value))))
		}
		failf("array does not have member: %s", name)
	case VTStr:
		if name == "length" {
			return Int(int64(len(obj.Data.(string))))
		}
		failf("string does not have member: %s", name)
	}
	failf("cannot access member of %s", tagName(obj.Tag))
	return Null
}
