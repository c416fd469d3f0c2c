package ir

type Type int

const (
	NullType Type = iota
	NumberType
	StringType
	BoolType
	ObjectType
	ArrayType
)

var typeNames = map[Type]string{
	ObjectType: "Mapping",
	ArrayType:  "Sequence",
	StringType: "String",
	NumberType: "Number",
	BoolType:   "Bool",
	NullType:   "Null",
}

func (t Type) String() string {
	s, ok := typeNames[t]
	if ok {
		return s
	}
	return "<unknown type>"
}
