package typesystem

import (
	"strconv"
	"strings"
)

// Signature is the ordered list of parameter types of a method or operator.
// An empty signature describes a zero-argument method.
type Signature []TypeID

// Params builds a Signature; Params() is the zero-argument signature.
func Params(types ...TypeID) Signature {
	return Signature(types)
}

// Validate rejects signatures that contain TypeInvalid, which would
// otherwise be indistinguishable from a terminated list.
func (s Signature) Validate() error {
	if i := s.InvalidIndex(); i >= 0 {
		return Errorf(KindInvalidSignature, "signature", "", "parameter %d has invalid type", i)
	}
	return nil
}

// InvalidIndex returns the position of the first invalid parameter, or -1.
func (s Signature) InvalidIndex() int {
	for i, t := range s {
		if !t.Valid() {
			return i
		}
	}
	return -1
}

func (s Signature) Equal(other Signature) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy that does not alias s.
func (s Signature) Clone() Signature {
	if len(s) == 0 {
		return Signature{}
	}
	out := make(Signature, len(s))
	copy(out, s)
	return out
}

// Key encodes the signature for use in map keys.
func (s Signature) Key() string {
	var b strings.Builder
	for i, t := range s {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatUint(uint64(t), 10))
	}
	return b.String()
}

// ParseSignatureKey reverses Signature.Key.
func ParseSignatureKey(key string) (Signature, error) {
	if key == "" {
		return Signature{}, nil
	}
	parts := strings.Split(key, ",")
	out := make(Signature, len(parts))
	for i, p := range parts {
		n, err := strconv.ParseUint(p, 10, 16)
		if err != nil {
			return nil, Errorf(KindInvalidSignature, "parse_signature", "", "parameter %d: %v", i, err)
		}
		out[i] = TypeID(n)
	}
	if err := out.Validate(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s Signature) String() string {
	parts := make([]string, len(s))
	for i, t := range s {
		parts[i] = t.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
