package eflr

import "github.com/bgrewell/dlis-kit/pkg/rpcode"

// asSlice normalizes an Attribute.Value that may be a scalar (Count=1) or
// a []interface{} (Count>1) into a single slice, so extraction code never
// has to branch on Count.
func asSlice(v interface{}) []interface{} {
	if v == nil {
		return nil
	}
	if s, ok := v.([]interface{}); ok {
		return s
	}
	return []interface{}{v}
}

// asInt converts one decoded numeric value (any of the unsigned/signed
// rpcode integer results) to int. Non-numeric values yield 0, false.
func asInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case uint8:
		return int(n), true
	case uint16:
		return int(n), true
	case uint32:
		return int(n), true
	case int8:
		return int(n), true
	case int16:
		return int(n), true
	case int32:
		return int(n), true
	default:
		return 0, false
	}
}

// asInts converts v (scalar or slice) to a []int, dropping any elements
// that aren't numeric.
func asInts(v interface{}) []int {
	items := asSlice(v)
	out := make([]int, 0, len(items))
	for _, item := range items {
		if n, ok := asInt(item); ok {
			out = append(out, n)
		}
	}
	return out
}

// asObNames converts v (scalar or slice) to a []rpcode.ObName. Values
// decoded as bare OBNAME pass through directly; OBJREF values contribute
// their embedded Name.
func asObNames(v interface{}) []rpcode.ObName {
	items := asSlice(v)
	out := make([]rpcode.ObName, 0, len(items))
	for _, item := range items {
		switch n := item.(type) {
		case rpcode.ObName:
			out = append(out, n)
		case rpcode.ObjRef:
			out = append(out, n.Name)
		}
	}
	return out
}

// asString returns v's string form when it decoded as ASCII/IDENT text.
func asString(v interface{}) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// asBool returns v's STATUS boolean, when present.
func asBool(v interface{}) (bool, bool) {
	b, ok := v.(bool)
	return b, ok
}

// productOf multiplies dims together, with the empty-dimension case (a
// scalar channel) yielding 1.
func productOf(dims []int) int {
	if len(dims) == 0 {
		return 1
	}
	product := 1
	for _, d := range dims {
		product *= d
	}
	return product
}
