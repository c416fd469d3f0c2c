package eval

import (
	"encoding/base64"
)

var b64EncSym = &Constructor{
	Name:   b64EncName,
	Params: []Param{{Name: "value"}},
	New:    b64Enc,
}

func B64Enc() *Constructor {
	return b64EncSym
}

const (
	b64EncName = "b64enc"
)

func b64Enc(args Args) (any, error) {
	s, err := Stringify(args.Get("value"))
	if err != nil {
		return nil, err
	}
	return base64.StdEncoding.EncodeToString([]byte(s)), nil
}
