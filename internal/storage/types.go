package storage

import (
	"fmt"
	"strings"
)

// Type names an index backend implementation.
type Type string

const (
	ES        Type = "es"
	Manticore Type = "manticore"
)

var SupportedTypes = []Type{ES, Manticore}

type BackendError string

const (
	ErrUnsupportedBackend BackendError = "unsupported index backend type: %s"
)

func (e BackendError) Error() string {
	return string(e)
}

func ParseType(s string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(s)))
	for _, supported := range SupportedTypes {
		if t == supported {
			return t, nil
		}
	}
	return "", fmt.Errorf(string(ErrUnsupportedBackend), s)
}
