package slop

import (
	"fmt"
	"strings"
)

// A Method is one of the HTTP methods a route can be registered under.
type Method string

const (
	MethodGet    Method = "GET"
	MethodPost   Method = "POST"
	MethodPut    Method = "PUT"
	MethodDelete Method = "DELETE"
	MethodPatch  Method = "PATCH"
)

func (m Method) String() string { return string(m) }

func (m Method) Valid() error {
	switch m {
	case MethodGet, MethodPost, MethodPut, MethodDelete, MethodPatch:
		return nil
	default:
		return fmt.Errorf("%w: method %q", ErrNotValid, string(m))
	}
}

// ParseMethod upcases val and casts it into a Method,
// erroring when val is not one a route can be registered under.
func ParseMethod(val string) (Method, error) {
	m := Method(strings.ToUpper(val))
	if err := m.Valid(); err != nil {
		return "", err
	}

	return m, nil
}
