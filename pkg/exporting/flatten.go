package exporting

import (
	"reflect"
	"sort"

	"ResultAggregator/pkg/document"
	"ResultAggregator/pkg/utils"
)

// FlattenMode selects which snapshot namespaces are projected into rows.
type FlattenMode int

const (
	// FlattenAll emits rows for both average and pershot snapshots.
	FlattenAll FlattenMode = iota

	// FlattenPershot emits only pershot rows.
	FlattenPershot

	// FlattenAverages emits only average rows.
	FlattenAverages
)

// FlattenDocument projects the "snapshots" section of a result document into
// tabular records. Pershot sequences produce one row per shot:
//
//	{type, kind: "pershot", label, shot, value...}
//
// Average entries produce one row per memory slot:
//
//	{type, kind: "average", label, memory, value..., variance...}
//
// Non-scalar values expand into suffixed columns (value0..valueN for
// sequences, valueRe/valueIm for complex pairs, value<key> for keyed values).
// Works on both freshly serialized documents and documents loaded from JSON.
func FlattenDocument(doc document.Document, mode FlattenMode) []Record {
	snapsVal, ok := doc.Get("snapshots")
	if !ok {
		return nil
	}
	snaps := toMap(snapsVal)

	types := make([]string, 0, len(snaps))
	for typ := range snaps {
		types = append(types, typ)
	}
	sort.Strings(types)

	var records []Record
	for _, typ := range types {
		fragment := toMap(snaps[typ])

		labels := make([]string, 0, len(fragment))
		for label := range fragment {
			labels = append(labels, label)
		}
		sort.Strings(labels)

		for _, label := range labels {
			records = append(records, flattenFragment(typ, label, fragment[label], mode)...)
		}
	}
	return records
}

func flattenFragment(typ, label string, entry interface{}, mode FlattenMode) []Record {
	seq := toSlice(entry)
	if seq == nil {
		return nil
	}

	// Average fragments are lists of {memory, value} objects; pershot
	// fragments are plain value sequences.
	if isAverageEntries(seq) {
		if mode == FlattenPershot {
			return nil
		}
		return flattenAverageRows(typ, label, seq)
	}

	if mode == FlattenAverages {
		return nil
	}
	return flattenPershotRows(typ, label, seq)
}

func isAverageEntries(seq []interface{}) bool {
	if len(seq) == 0 {
		return false
	}
	m := toMap(seq[0])
	if m == nil {
		return false
	}
	_, hasMemory := m["memory"]
	_, hasValue := m["value"]
	return hasMemory && hasValue
}

func flattenPershotRows(typ, label string, seq []interface{}) []Record {
	records := make([]Record, 0, len(seq))
	for shot, v := range seq {
		rec := Record{
			"type":  typ,
			"kind":  "pershot",
			"label": label,
			"shot":  shot,
		}
		flattenValue(rec, "value", v)
		records = append(records, rec)
	}
	return records
}

func flattenAverageRows(typ, label string, entries []interface{}) []Record {
	records := make([]Record, 0, len(entries))
	for _, e := range entries {
		m := toMap(e)
		if m == nil {
			continue
		}
		rec := Record{
			"type":   typ,
			"kind":   "average",
			"label":  label,
			"memory": utils.FormatValue(m["memory"]),
		}
		flattenValue(rec, "value", m["value"])
		if variance, ok := m["variance"]; ok {
			flattenValue(rec, "variance", variance)
		}
		records = append(records, rec)
	}
	return records
}

// flattenValue expands v into one or more columns rooted at prefix.
func flattenValue(rec Record, prefix string, v interface{}) {
	if v == nil {
		return
	}

	if f, ok := numeric(v); ok {
		rec[prefix] = f
		return
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Complex64, reflect.Complex128:
		c := rv.Complex()
		rec[prefix+"Re"] = real(c)
		rec[prefix+"Im"] = imag(c)
	case reflect.Slice, reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			flattenValue(rec, prefix+utils.FormatValue(i), rv.Index(i).Interface())
		}
	case reflect.Map:
		for _, key := range rv.MapKeys() {
			flattenValue(rec, prefix+utils.FormatValue(key.Interface()), rv.MapIndex(key).Interface())
		}
	default:
		rec[prefix] = utils.FormatValue(v)
	}
}

func numeric(v interface{}) (float64, bool) {
	if f, ok := utils.ToFloat64Ok(v); ok {
		return f, true
	}
	// Named numeric types (e.g. the engine's scalar value type) reach here.
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	case reflect.Int, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	}
	return 0, false
}

func toSlice(v interface{}) []interface{} {
	if v == nil {
		return nil
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil
	}
	out := make([]interface{}, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		out[i] = rv.Index(i).Interface()
	}
	return out
}

func toMap(v interface{}) map[string]interface{} {
	switch m := v.(type) {
	case nil:
		return nil
	case map[string]interface{}:
		return m
	case document.Document:
		return m
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map {
		return nil
	}
	out := make(map[string]interface{}, rv.Len())
	for _, key := range rv.MapKeys() {
		out[key.String()] = rv.MapIndex(key).Interface()
	}
	return out
}
