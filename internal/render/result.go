// Package render turns query payloads into terminal output. The
// backend returns whatever shape the queried database produced, so the
// payload is decoded at the boundary into an explicit union: a table
// when it is a non-empty list of records, opaque JSON otherwise.
package render

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Table is a tabular payload. Columns come from the first record, in
// the order the backend sent them; later records missing a column
// render blank.
type Table struct {
	Columns []string
	Rows    []map[string]any
}

// Result is the decoded form of a query payload: exactly one of Table
// and Opaque is set.
type Result struct {
	Table  *Table
	Opaque json.RawMessage
}

// Decode classifies raw. A payload is tabular iff it is a non-empty
// JSON array whose first element is an object; anything else is opaque.
func Decode(raw json.RawMessage) Result {
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil || len(elems) == 0 {
		return Result{Opaque: raw}
	}

	columns, ok := objectKeys(elems[0])
	if !ok {
		return Result{Opaque: raw}
	}

	rows := make([]map[string]any, 0, len(elems))
	for _, e := range elems {
		row := map[string]any{}
		dec := json.NewDecoder(bytes.NewReader(e))
		dec.UseNumber()
		// Non-object stragglers in an otherwise tabular payload render
		// as an empty row rather than failing the whole table.
		_ = dec.Decode(&row)
		rows = append(rows, row)
	}
	return Result{Table: &Table{Columns: columns, Rows: rows}}
}

// Text renders an opaque payload: JSON strings and scalars by their
// natural string form, everything else pretty-printed.
func (r Result) Text() string {
	var v any
	dec := json.NewDecoder(bytes.NewReader(r.Opaque))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return string(r.Opaque)
	}
	switch s := v.(type) {
	case nil:
		return "null"
	case string:
		return s
	case json.Number:
		return s.String()
	case bool:
		if s {
			return "true"
		}
		return "false"
	default:
		pretty, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return string(r.Opaque)
		}
		return string(pretty)
	}
}

// FormatCell renders one table cell.
// nil → "NULL", booleans → "Yes"/"No", nested values → compact JSON,
// everything else by its natural string form.
func FormatCell(v any) string {
	switch val := v.(type) {
	case nil:
		return "NULL"
	case bool:
		if val {
			return "Yes"
		}
		return "No"
	case string:
		return val
	case json.Number:
		return val.String()
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(b)
	}
}

// objectKeys returns the keys of a JSON object in document order, or
// ok=false when data is not an object. encoding/json maps do not keep
// order, so the keys are walked with a token decoder.
func objectKeys(data []byte) ([]string, bool) {
	dec := json.NewDecoder(bytes.NewReader(data))
	t, err := dec.Token()
	if err != nil {
		return nil, false
	}
	if d, ok := t.(json.Delim); !ok || d != '{' {
		return nil, false
	}

	var keys []string
	for dec.More() {
		kt, err := dec.Token()
		if err != nil {
			return nil, false
		}
		key, ok := kt.(string)
		if !ok {
			return nil, false
		}
		keys = append(keys, key)
		if err := skipValue(dec); err != nil {
			return nil, false
		}
	}
	return keys, true
}

func skipValue(dec *json.Decoder) error {
	t, err := dec.Token()
	if err != nil {
		return err
	}
	d, ok := t.(json.Delim)
	if !ok || (d != '{' && d != '[') {
		return nil
	}
	depth := 1
	for depth > 0 {
		t, err := dec.Token()
		if err != nil {
			return err
		}
		if d, ok := t.(json.Delim); ok {
			switch d {
			case '{', '[':
				depth++
			case '}', ']':
				depth--
			}
		}
	}
	return nil
}
