package ir

import (
	"fmt"
	"math"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
)

// FromAny converts plain Go data into a node tree. Maps with string keys
// become mappings (map keys sorted, yaml.MapSlice keeps its order), slices
// become sequences. Nodes are cloned.
func FromAny(v any) (*Node, error) {
	switch x := v.(type) {
	case nil:
		return Null(), nil
	case *Node:
		res := x.Clone()
		res.Parent, res.ParentIndex, res.ParentField = nil, 0, ""
		return res, nil
	case []*Node:
		return FromSlice(x), nil
	case map[string]*Node:
		return FromMap(x), nil
	case string:
		return FromString(x), nil
	case bool:
		return FromBool(x), nil
	case int:
		return FromInt(int64(x)), nil
	case int64:
		return FromInt(x), nil
	case uint64:
		if x > math.MaxInt64 {
			return FromFloat(float64(x)), nil
		}
		return FromInt(int64(x)), nil
	case float64:
		return FromFloat(x), nil
	case yaml.MapSlice:
		kvs := make([]KeyVal, 0, len(x))
		for _, item := range x {
			val, err := FromAny(item.Value)
			if err != nil {
				return nil, err
			}
			kvs = append(kvs, KeyVal{Key: FromString(fmt.Sprint(item.Key)), Val: val})
		}
		return FromKeyVals(kvs), nil
	case []any:
		vals := make([]*Node, len(x))
		for i, elt := range x {
			val, err := FromAny(elt)
			if err != nil {
				return nil, err
			}
			vals[i] = val
		}
		return FromSlice(vals), nil
	}
	return fromReflect(reflect.ValueOf(v))
}

func fromReflect(rv reflect.Value) (*Node, error) {
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return Null(), nil
		}
		return FromAny(rv.Elem().Interface())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return FromInt(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return FromAny(rv.Uint())
	case reflect.Float32, reflect.Float64:
		return FromFloat(rv.Float()), nil
	case reflect.String:
		return FromString(rv.String()), nil
	case reflect.Bool:
		return FromBool(rv.Bool()), nil
	case reflect.Slice, reflect.Array:
		vals := make([]*Node, rv.Len())
		for i := range vals {
			val, err := FromAny(rv.Index(i).Interface())
			if err != nil {
				return nil, err
			}
			vals[i] = val
		}
		return FromSlice(vals), nil
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, fmt.Errorf("%w: map key type %s", ErrBadValue, rv.Type().Key())
		}
		keys := rv.MapKeys()
		slices.SortFunc(keys, func(a, b reflect.Value) int {
			return strings.Compare(a.String(), b.String())
		})
		kvs := make([]KeyVal, len(keys))
		for i, k := range keys {
			val, err := FromAny(rv.MapIndex(k).Interface())
			if err != nil {
				return nil, err
			}
			kvs[i] = KeyVal{Key: FromString(k.String()), Val: val}
		}
		return FromKeyVals(kvs), nil
	}
	return nil, fmt.Errorf("%w: %T", ErrBadValue, rv.Interface())
}

// ToAny returns the plain data held by node: nil, bool, int64, float64,
// string, []any or yaml.MapSlice. Tags are not interpreted.
func ToAny(node *Node) any {
	switch node.Type {
	case ObjectType:
		res := make(yaml.MapSlice, len(node.Fields))
		for i, f := range node.Fields {
			res[i] = yaml.MapItem{Key: f.String, Value: ToAny(node.Values[i])}
		}
		return res
	case ArrayType:
		res := make([]any, len(node.Values))
		for i, elt := range node.Values {
			res[i] = ToAny(elt)
		}
		return res
	case StringType:
		return node.String
	case NumberType:
		if node.Int64 != nil {
			return *node.Int64
		}
		if node.Float64 != nil {
			return *node.Float64
		}
		if i, err := strconv.ParseInt(node.Number, 10, 64); err == nil {
			return i
		}
		if f, err := strconv.ParseFloat(node.Number, 64); err == nil {
			return f
		}
		return node.Number
	case BoolType:
		return node.Bool
	default:
		return nil
	}
}
