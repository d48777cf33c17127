package model

import "fmt"

// Store selects one of the two parallel persistence backends.  The string
// values double as the path segment clients use (/inventory/mysql, ...).
type Store string

const (
	StoreRelational Store = "mysql"
	StoreDocument   Store = "mongodb"
)

// ParseStore maps a path segment to a Store.
func ParseStore(s string) (Store, error) {
	switch Store(s) {
	case StoreRelational:
		return StoreRelational, nil
	case StoreDocument:
		return StoreDocument, nil
	}
	return "", fmt.Errorf("unknown store %q", s)
}
