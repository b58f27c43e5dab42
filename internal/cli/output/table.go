package output

import (
	"fmt"
	"io"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/yndnr/connectus-go/internal/core/domain"
)

// TableFormatter formats data as an aligned text table.
type TableFormatter struct {
	// Wide adds the social media and ID columns to person listings.
	Wide      bool
	NoHeaders bool
}

// Format formats data as a table.
// Supports: *Table, []*domain.Person, maps and (nested) structs.
func (f *TableFormatter) Format(w io.Writer, data any) error {
	if data == nil {
		return nil
	}

	var table *Table
	switch v := data.(type) {
	case *Table:
		table = v
	case Table:
		table = &v
	case []*domain.Person:
		table = PersonTable(v, f.Wide)
	default:
		var err error
		if table, err = toTable(data); err != nil {
			return err
		}
	}
	return table.RenderWithOptions(w, f.NoHeaders)
}

// PersonTable lays out persons one per row, numbered from 1 in list order.
func PersonTable(persons []*domain.Person, wide bool) *Table {
	t := &Table{Headers: []string{"#", "NAME", "PHONE", "EMAIL", "ADDRESS", "BIRTHDAY", "TAGS"}}
	if wide {
		t.Headers = append(t.Headers, "SOCIAL", "ID")
	}

	for i, p := range persons {
		row := []string{
			strconv.Itoa(i + 1),
			string(p.Name),
			orDash(string(p.Phone)),
			orDash(string(p.Email)),
			orDash(string(p.Address)),
			orDash(string(p.Birthday)),
			orDash(formatTags(p.Tags)),
		}
		if wide {
			row = append(row, orDash(p.SocialMedia.String()), p.ID)
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// formatTags renders tags as "module: CS2101, CS2103T; cca: NES".
func formatTags(tags domain.Tags) string {
	var parts []string
	for _, kind := range domain.TagKinds {
		if set := tags.Get(kind); len(set) > 0 {
			parts = append(parts, kind.String()+": "+strings.Join(set, ", "))
		}
	}
	return strings.Join(parts, "; ")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// toTable converts a map or struct to a two-column table.
func toTable(data any) (*Table, error) {
	v := reflect.ValueOf(data)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.Map:
		t := &Table{Headers: []string{"KEY", "VALUE"}}
		iter := v.MapRange()
		for iter.Next() {
			t.AddRow(formatValue(iter.Key()), formatValue(iter.Value()))
		}
		sort.Slice(t.Rows, func(i, j int) bool { return t.Rows[i][0] < t.Rows[j][0] })
		return t, nil
	case reflect.Struct:
		t := &Table{Headers: []string{"FIELD", "VALUE"}}
		addStructRows(t, "", v)
		return t, nil
	default:
		return nil, fmt.Errorf("unsupported type for table output: %s", v.Kind())
	}
}

// addStructRows appends one row per leaf field; nested structs are
// flattened into dotted names such as "log.level".
func addStructRows(t *Table, prefix string, v reflect.Value) {
	typ := v.Type()
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}

		name := fieldName(field)
		if name == "-" {
			continue
		}
		if prefix != "" {
			name = prefix + "." + name
		}

		fv := v.Field(i)
		switch fv.Kind() {
		case reflect.Struct:
			addStructRows(t, name, fv)
		case reflect.Map:
			addMapRows(t, name, fv)
		default:
			t.AddRow(name, formatValue(fv))
		}
	}
}

// addMapRows appends one "prefix.key" row per entry, sorted by key.
func addMapRows(t *Table, prefix string, v reflect.Value) {
	rows := make([][]string, 0, v.Len())
	iter := v.MapRange()
	for iter.Next() {
		rows = append(rows, []string{prefix + "." + formatValue(iter.Key()), formatValue(iter.Value())})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i][0] < rows[j][0] })
	t.Rows = append(t.Rows, rows...)
}

// fieldName prefers the yaml, then json tag name, then the Go name in snake case.
func fieldName(field reflect.StructField) string {
	for _, key := range []string{"yaml", "json"} {
		if tag := field.Tag.Get(key); tag != "" {
			name, _, _ := strings.Cut(tag, ",")
			if name != "" {
				return name
			}
		}
	}
	return strings.ToLower(toSnakeCase(field.Name))
}

// formatValue formats a reflect.Value for display.
func formatValue(v reflect.Value) string {
	if !v.IsValid() {
		return "-"
	}

	if v.Kind() == reflect.Interface || v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return "-"
		}
		v = v.Elem()
	}

	if s, ok := v.Interface().(fmt.Stringer); ok {
		return orDash(s.String())
	}

	switch v.Kind() {
	case reflect.String:
		return orDash(v.String())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(v.Uint(), 10)
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'f', 2, 64)
	case reflect.Bool:
		return strconv.FormatBool(v.Bool())
	case reflect.Slice, reflect.Array:
		if v.Len() == 0 {
			return "-"
		}
		items := make([]string, v.Len())
		for i := range items {
			items[i] = formatValue(v.Index(i))
		}
		return strings.Join(items, ", ")
	default:
		return fmt.Sprintf("%v", v.Interface())
	}
}

// toSnakeCase converts CamelCase to Camel_Case.
func toSnakeCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result.WriteByte('_')
		}
		result.WriteRune(r)
	}
	return result.String()
}

// Table represents tabular data.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Render renders the table to the writer.
func (t *Table) Render(w io.Writer) error {
	return t.RenderWithOptions(w, false)
}

// RenderWithOptions renders the table with options.
func (t *Table) RenderWithOptions(w io.Writer, noHeaders bool) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	if !noHeaders && len(t.Headers) > 0 {
		fmt.Fprintln(tw, strings.Join(t.Headers, "\t"))
	}
	for _, row := range t.Rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}

	return tw.Flush()
}

// AddRow adds a row to the table.
func (t *Table) AddRow(cells ...string) {
	t.Rows = append(t.Rows, cells)
}
