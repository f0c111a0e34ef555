package interpreter

import "strconv"

type Value interface {
	is_Value()
	String() string
}

type Integer int64

func (v Integer) is_Value() {}

func (v Integer) String() string {
	return strconv.FormatInt(int64(v), 10)
}

type String string

func (v String) is_Value() {}

func (v String) String() string {
	return string(v)
}

func typeName(v Value) string {
	switch v.(type) {
	case Integer:
		return "integer"
	case String:
		return "string"
	}
	return "unknown"
}
