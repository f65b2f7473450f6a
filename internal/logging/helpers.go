package logging

import (
	"maps"
	"strconv"

	"github.com/goliatone/go-mdraft/pkg/interfaces"
)

// WithFields attaches fields when logger implements interfaces.FieldsLogger
// and returns it unchanged otherwise. The map is copied.
func WithFields(logger interfaces.Logger, fields map[string]any) interfaces.Logger {
	if logger == nil || len(fields) == 0 {
		return logger
	}
	fl, ok := logger.(interfaces.FieldsLogger)
	if !ok {
		return logger
	}
	return fl.WithFields(maps.Clone(fields))
}

// ArgsToFields folds alternating key/value arguments into a map. Non string
// or empty keys, and a trailing value without a key, are stored as
// field_<n>.
func ArgsToFields(args []any) map[string]any {
	if len(args) == 0 {
		return nil
	}
	fields := make(map[string]any, (len(args)+1)/2)
	for i := 0; i < len(args); i += 2 {
		pos := i / 2
		if i == len(args)-1 {
			fields[positional(pos)] = args[i]
			break
		}
		key, ok := args[i].(string)
		if !ok || key == "" {
			key = positional(pos)
		}
		fields[key] = args[i+1]
	}
	return fields
}

func positional(pos int) string {
	return "field_" + strconv.Itoa(pos)
}
