package normalize

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// absent spellings of missing values in exported tables.
var absent = map[string]struct{}{
	"":     {},
	"na":   {},
	"nan":  {},
	"null": {},
	"none": {},
	"-":    {},
}

func toFloat(v any) (float64, bool) {
	var res float64
	switch n := v.(type) {
	case float64:
		res = n
	case float32:
		res = float64(n)
	case int:
		res = float64(n)
	case int64:
		res = float64(n)
	case string:
		s := strings.TrimSpace(n)
		if _, ok := absent[strings.ToLower(s)]; ok {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		res = f
	default:
		return 0, false
	}
	if math.IsNaN(res) || math.IsInf(res, 0) {
		return 0, false
	}
	return res, true
}

func toInt(v any) (int, bool) {
	f, ok := toFloat(v)
	if !ok {
		return 0, false
	}
	return int(math.Round(f)), true
}

func toBool(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case float64:
		return b != 0
	case int:
		return b != 0
	case string:
		switch strings.ToLower(strings.TrimSpace(b)) {
		case "true", "yes", "y", "1":
			return true
		}
	}
	return false
}

func toString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(s)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(s)
	default:
		return strings.TrimSpace(fmt.Sprint(s))
	}
}

// toAuthors accepts a comma-joined string or a list of names.
func toAuthors(v any) string {
	list, ok := v.([]any)
	if !ok {
		return toString(v)
	}
	names := make([]string, 0, len(list))
	for _, a := range list {
		if s := toString(a); s != "" {
			names = append(names, s)
		}
	}
	return strings.Join(names, ", ")
}
