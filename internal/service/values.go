package service

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"

	"github.com/Dan9191/finance-dashboard/internal/models"
)

// lookup resolves a dotted JSONPath expression against a decoded document.
// present is false only when a key along the path is missing; an explicit
// null at the end of the path is present with a nil value. A step through
// anything other than an object (null included) is a structural error.
func lookup(root any, path string) (any, bool, error) {
	present, err := walkPath(root, path)
	if err != nil || !present {
		return nil, false, err
	}
	if isNullAt(root, path) {
		return nil, true, nil
	}
	v, err := jsonpath.Get(path, root)
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", path, err)
	}
	return v, true, nil
}

// walkPath follows path key by key. It fails on the first step that does
// not descend into an object and stops early on a missing key.
func walkPath(root any, path string) (bool, error) {
	node := root
	walked := "$"
	for _, key := range strings.Split(strings.TrimPrefix(path, "$."), ".") {
		obj, ok := node.(map[string]any)
		if !ok {
			return false, fmt.Errorf("%s: expected object, got %s", walked, kindOf(node))
		}
		next, found := obj[key]
		if !found {
			return false, nil
		}
		node = next
		walked += "." + key
	}
	return true, nil
}

// isNullAt reports whether the last key of an existing path holds null
func isNullAt(root any, path string) bool {
	keys := strings.Split(strings.TrimPrefix(path, "$."), ".")
	node := root
	for _, key := range keys[:len(keys)-1] {
		node = node.(map[string]any)[key]
	}
	return node.(map[string]any)[keys[len(keys)-1]] == nil
}

// scalarAt returns a non-null value at path; missing and null are both absent
func scalarAt(root any, path string) (any, bool, error) {
	v, present, err := lookup(root, path)
	if err != nil || !present || v == nil {
		return nil, false, err
	}
	return v, true, nil
}

// listAt returns the array at path; a missing array is empty, a null one is
// an error
func listAt(root any, path string) ([]any, error) {
	v, present, err := lookup(root, path)
	if err != nil || !present {
		return nil, err
	}
	return asList(v, path)
}

// objectAt returns the object at path; a missing object is empty, a null
// one is an error
func objectAt(root any, path string) (map[string]any, error) {
	v, present, err := lookup(root, path)
	if err != nil {
		return nil, err
	}
	if !present {
		return map[string]any{}, nil
	}
	return asObject(v, path)
}

func asList(v any, what string) ([]any, error) {
	list, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("%s: expected array, got %s", what, kindOf(v))
	}
	return list, nil
}

func asObject(v any, what string) (map[string]any, error) {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%s: expected object, got %s", what, kindOf(v))
	}
	return obj, nil
}

// required returns obj[key] or an error naming the missing field
func required(obj map[string]any, key, what string) (any, error) {
	v, ok := obj[key]
	if !ok {
		return nil, fmt.Errorf("%s: missing field %q", what, key)
	}
	return v, nil
}

func kindOf(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case json.Number, float64:
		return "number"
	case bool:
		return "boolean"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// toDecimal accepts JSON numbers and numeric strings
func toDecimal(v any) (decimal.Decimal, error) {
	switch n := v.(type) {
	case json.Number:
		return decimal.NewFromString(n.String())
	case float64:
		return decimal.NewFromFloat(n), nil
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(n))
		if err != nil {
			return decimal.Zero, fmt.Errorf("not a number: %q", n)
		}
		return d, nil
	default:
		return decimal.Zero, fmt.Errorf("expected number, got %s", kindOf(v))
	}
}

// toInt converts to an integer. Fractional JSON numbers are truncated,
// strings must hold an integer literal.
func toInt(v any) (int64, error) {
	switch n := v.(type) {
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, nil
		}
		d, err := decimal.NewFromString(n.String())
		if err != nil {
			return 0, err
		}
		return d.IntPart(), nil
	case float64:
		return int64(n), nil
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("not an integer: %q", n)
		}
		return i, nil
	default:
		return 0, fmt.Errorf("expected integer, got %s", kindOf(v))
	}
}

// intOrZero reads an integer at path, defaulting to 0 when it is missing
func intOrZero(root any, path string) (int64, error) {
	v, ok, err := scalarAt(root, path)
	if err != nil || !ok {
		return 0, err
	}
	i, err := toInt(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", path, err)
	}
	return i, nil
}

// textOf renders a scalar for labels and headings
func textOf(v any) string {
	return cellOf(v).Text
}

func cellOf(v any) models.Cell {
	switch x := v.(type) {
	case nil:
		return models.Null
	case string:
		return models.Text(x)
	case json.Number:
		return models.Text(x.String())
	case float64:
		return models.Text(strconv.FormatFloat(x, 'f', -1, 64))
	case bool:
		return models.Text(strconv.FormatBool(x))
	default:
		raw, err := json.Marshal(x)
		if err != nil {
			return models.Text(fmt.Sprint(x))
		}
		return models.Text(string(raw))
	}
}

// recordTable flattens a list of objects into a table whose columns are the
// sorted union of their keys; keys missing from a record become absent cells
func recordTable(caption string, records []map[string]any) models.Table {
	seen := make(map[string]struct{})
	columns := []string{}
	for _, rec := range records {
		for k := range rec {
			if _, ok := seen[k]; !ok {
				seen[k] = struct{}{}
				columns = append(columns, k)
			}
		}
	}
	sort.Strings(columns)

	rows := make([][]models.Cell, 0, len(records))
	for _, rec := range records {
		row := make([]models.Cell, len(columns))
		for i, col := range columns {
			if v, ok := rec[col]; ok {
				row[i] = cellOf(v)
			}
		}
		rows = append(rows, row)
	}
	return models.Table{Caption: caption, Columns: columns, Rows: rows}
}

// objects converts each list element into an object
func objects(list []any, what string) ([]map[string]any, error) {
	out := make([]map[string]any, 0, len(list))
	for i, v := range list {
		obj, err := asObject(v, fmt.Sprintf("%s[%d]", what, i))
		if err != nil {
			return nil, err
		}
		out = append(out, obj)
	}
	return out, nil
}
