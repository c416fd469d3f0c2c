package ir

import "fmt"

// Merge applies the override mapping src onto dst and returns the resulting
// root. Mapping values in src merge recursively into dst, creating mappings
// where dst has none; every other value replaces the target wholesale. Keys
// only present in dst are kept. dst is modified in place; src nodes are
// cloned before being attached.
//
// An untagged override mapping keeps the tag of the mapping it merges into.
func Merge(dst, src *Node) (*Node, error) {
	if src == nil || src.Type == NullType {
		return dst, nil
	}
	if src.Type != ObjectType {
		return nil, fmt.Errorf("%w: override is a %s", ErrNotMapping, src.Type)
	}
	if dst == nil || dst.Type == NullType {
		res := &Node{Type: ObjectType}
		if dst != nil {
			res.Tag = dst.Tag
			res.Line, res.Column = dst.Line, dst.Column
		}
		dst = res
	}
	if dst.Type != ObjectType {
		if len(src.Fields) == 0 {
			return dst, nil
		}
		return nil, fmt.Errorf("%w: cannot merge overrides into a %s", ErrNotMapping, dst.Type)
	}
	mergeInto(dst, src)
	return dst, nil
}

func mergeInto(dst, src *Node) {
	if src.Tag != "" {
		dst.Tag = src.Tag
	}
	for i, f := range src.Fields {
		sv := src.Values[i]
		if sv.Type != ObjectType {
			dst.Set(f.String, sv.Clone())
			continue
		}
		dv := Get(dst, f.String)
		if dv == nil || dv.Type != ObjectType {
			dv = &Node{Type: ObjectType}
			dst.Set(f.String, dv)
		}
		mergeInto(dv, sv)
	}
}
