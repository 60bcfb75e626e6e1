package enum

import "fmt"

// scanText reads a text column value for an enum named kind
func scanText(kind string, value interface{}) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	}
	return "", fmt.Errorf("enum: cannot scan %T into %s", value, kind)
}
