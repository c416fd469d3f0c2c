package eval

import (
	"fmt"
	"iter"
	"reflect"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/goccy/go-yaml"
)

var errorType = reflect.TypeFor[error]()

// Func adapts the Go function fn into a constructor. params name the
// arguments of fn in order; a trailing "?" marks a parameter optional, in
// which case it receives its zero value when absent. fn returns a value
// and optionally an error.
//
// Func panics if fn does not fit params.
func Func(name string, fn any, params ...string) *Constructor {
	fv := reflect.ValueOf(fn)
	ft := fv.Type()
	if ft.Kind() != reflect.Func || ft.IsVariadic() {
		panic(fmt.Sprintf("eval.Func %s: %T is not a non variadic func", name, fn))
	}
	if ft.NumIn() != len(params) {
		panic(fmt.Sprintf("eval.Func %s: %d params for a func of %d args", name, len(params), ft.NumIn()))
	}
	switch {
	case ft.NumOut() == 1:
	case ft.NumOut() == 2 && ft.Out(1) == errorType:
	default:
		panic(fmt.Sprintf("eval.Func %s: %s must return a value and optionally an error", name, ft))
	}
	c := &Constructor{Name: name}
	for _, p := range params {
		pName, opt := strings.CutSuffix(p, "?")
		c.Params = append(c.Params, Param{Name: pName, Optional: opt})
	}
	c.New = func(args Args) (any, error) {
		in := make([]reflect.Value, len(c.Params))
		for i, p := range c.Params {
			v, err := convert(args.Get(p.Name), ft.In(i))
			if err != nil {
				return nil, fmt.Errorf("argument %q: %w", p.Name, err)
			}
			in[i] = v
		}
		out := fv.Call(in)
		if len(out) == 2 && !out[1].IsNil() {
			return nil, out[1].Interface().(error)
		}
		return out[0].Interface(), nil
	}
	return c
}

// Struct returns a constructor building a *T from its arguments. Each
// exported field is a parameter named by its yaml tag, or by the lower
// cased field name, in declaration order. Fields tagged required:"true"
// must be given.
func Struct[T any](name string) *Constructor {
	t := reflect.TypeFor[T]()
	if t.Kind() != reflect.Struct {
		panic(fmt.Sprintf("eval.Struct %s: %s is not a struct", name, t))
	}
	c := &Constructor{Name: name}
	for f := range fields(t) {
		c.Params = append(c.Params, Param{
			Name:     fieldName(f),
			Optional: f.Tag.Get("required") != "true",
		})
	}
	c.New = func(args Args) (any, error) {
		res := new(T)
		if err := decode(args.Map(), res); err != nil {
			return nil, err
		}
		return res, nil
	}
	return c
}

func fields(t reflect.Type) iter.Seq[reflect.StructField] {
	return func(yield func(reflect.StructField) bool) {
		for i := range t.NumField() {
			f := t.Field(i)
			if !f.IsExported() || f.Anonymous || fieldName(f) == "-" {
				continue
			}
			if !yield(f) {
				return
			}
		}
	}
}

func fieldName(f reflect.StructField) string {
	tag, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
	if tag != "" {
		return tag
	}
	return strings.ToLower(f.Name)
}

// convert turns a realized value into a value of type t.
func convert(v any, t reflect.Type) (reflect.Value, error) {
	if v == nil {
		return reflect.Zero(t), nil
	}
	rv := reflect.ValueOf(v)
	if rv.Type().AssignableTo(t) {
		return rv, nil
	}
	ptr := reflect.New(t)
	if err := decode(v, ptr.Interface()); err != nil {
		return reflect.Value{}, err
	}
	return ptr.Elem(), nil
}

func decode(v any, result any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:  mapSliceHook,
		ErrorUnused: true,
		Result:      result,
		TagName:     "yaml",
	})
	if err != nil {
		return err
	}
	return dec.Decode(v)
}

var mapSliceType = reflect.TypeFor[yaml.MapSlice]()

// mapSliceHook lets ordered mappings decode into maps and structs.
func mapSliceHook(from, to reflect.Type, data any) (any, error) {
	ms, ok := data.(yaml.MapSlice)
	if !ok || to == mapSliceType {
		return data, nil
	}
	res := make(map[string]any, len(ms))
	for _, item := range ms {
		res[fmt.Sprint(item.Key)] = item.Value
	}
	return res, nil
}
