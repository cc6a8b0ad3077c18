// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Budget Analyzer contributors

package redact

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"
)

// sensitiveTag declares a field sensitive and carries its directive, e.g.
//
//	Password string `json:"password" sensitive:"mask=*"`
//	CardPAN  string `json:"card_pan" sensitive:"mask=#,last=4"`
//
// Options: "mask=<char>" (default '*') and "last=<n>" (default 0, meaning
// full replacement with a fixed-width token). A malformed option falls back
// to its default; the field stays sensitive.
const sensitiveTag = "sensitive"

// maxDepth bounds recursion through pathological object graphs. Values
// nested deeper degrade to their string projection instead of raising.
const maxDepth = 32

// unserializableFallback is the minimal record a failed sanitization
// degrades to.
const unserializableFallback = "[unserializable]"

// Engine recursively sanitizes structured values before serialization.
//
// Sensitivity is declared either with `sensitive` struct tags or through the
// name table passed to NewEngine (serialized field name → directive, matched
// case-insensitively, also applied to map keys). Field plans are compiled on
// first encounter with a type and cached for the process lifetime, so no
// repeated per-request reflection pass occurs.
type Engine struct {
	byName map[string]Directive
	plans  sync.Map // reflect.Type -> *structPlan
}

// NewEngine builds an Engine with the given name → directive table. The
// table is resolved once; nil is a valid argument for tag-only usage.
func NewEngine(directives map[string]Directive) *Engine {
	byName := make(map[string]Directive, len(directives))
	for name, d := range directives {
		byName[strings.ToLower(name)] = d
	}
	return &Engine{byName: byName}
}

// Sanitize returns a log-safe projection of v: maps and slices of sanitized
// values, with every sensitive field masked according to its directive.
// Nil sensitive values pass through as nil. Values that cannot be traversed
// degrade to a fallback string; Sanitize never panics.
func (e *Engine) Sanitize(v any) (out any) {
	defer func() {
		if r := recover(); r != nil {
			out = unserializableFallback
		}
	}()

	return e.sanitize(reflect.ValueOf(v), 0)
}

func (e *Engine) sanitize(rv reflect.Value, depth int) any {
	if !rv.IsValid() {
		return nil
	}
	if depth > maxDepth {
		return fmt.Sprint(rv.Interface())
	}

	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return nil
		}
		return e.sanitize(rv.Elem(), depth+1)

	case reflect.Struct:
		return e.sanitizeStruct(rv, depth)

	case reflect.Map:
		return e.sanitizeMap(rv, depth)

	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() == reflect.Uint8 {
			return string(rv.Bytes())
		}
		out := make([]any, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			out[i] = e.sanitize(rv.Index(i), depth+1)
		}
		return out

	case reflect.String:
		return rv.String()

	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return rv.Interface()

	default:
		// chan, func, complex and friends have no serializable structure;
		// fall back to the string projection.
		return fmt.Sprint(rv.Interface())
	}
}

func (e *Engine) sanitizeStruct(rv reflect.Value, depth int) any {
	plan := e.plan(rv.Type())
	if len(plan.fields) == 0 {
		// No exported fields: an opaque type such as time.Time.
		return fmt.Sprint(rv.Interface())
	}

	out := make(map[string]any, len(plan.fields))
	for _, f := range plan.fields {
		fv := rv.Field(f.index)
		if f.directive != nil {
			out[f.name] = maskValue(fv, *f.directive)
			continue
		}
		out[f.name] = e.sanitize(fv, depth+1)
	}
	return out
}

func (e *Engine) sanitizeMap(rv reflect.Value, depth int) any {
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		key := fmt.Sprint(iter.Key().Interface())
		if d, ok := e.byName[strings.ToLower(key)]; ok {
			out[key] = maskValue(iter.Value(), d)
			continue
		}
		out[key] = e.sanitize(iter.Value(), depth+1)
	}
	return out
}

// maskValue applies a directive to a sensitive value. Nil passes through
// unmasked; nested structured values collapse to the opaque token instead of
// being recursed into; everything else is masked over its string projection.
func maskValue(rv reflect.Value, d Directive) any {
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Struct, reflect.Map:
		return MaskToken(d.MaskChar)
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() == reflect.Uint8 {
			return d.apply(string(rv.Bytes()))
		}
		return MaskToken(d.MaskChar)
	default:
		return d.apply(fmt.Sprint(rv.Interface()))
	}
}

// structPlan is the compiled sensitivity plan for one struct type.
type structPlan struct {
	fields []fieldPlan
}

type fieldPlan struct {
	index     int
	name      string
	directive *Directive // nil for non-sensitive fields
}

// plan returns the cached plan for t, compiling it on first use.
func (e *Engine) plan(t reflect.Type) *structPlan {
	if cached, ok := e.plans.Load(t); ok {
		return cached.(*structPlan)
	}

	p := &structPlan{}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.PkgPath != "" {
			continue // unexported
		}

		name := serializedName(f)
		if name == "-" {
			continue
		}

		fp := fieldPlan{index: i, name: name}
		if tag, ok := f.Tag.Lookup(sensitiveTag); ok {
			d := parseDirective(tag)
			fp.directive = &d
		} else if d, ok := e.byName[strings.ToLower(name)]; ok {
			fp.directive = &d
		}
		p.fields = append(p.fields, fp)
	}

	actual, _ := e.plans.LoadOrStore(t, p)
	return actual.(*structPlan)
}

// serializedName resolves the logged field name: the json tag name when
// present, the Go field name otherwise.
func serializedName(f reflect.StructField) string {
	tag, ok := f.Tag.Lookup("json")
	if !ok {
		return f.Name
	}
	name, _, _ := strings.Cut(tag, ",")
	if name == "" {
		return f.Name
	}
	return name
}

// parseDirective parses a `sensitive` tag value. Malformed options keep
// their defaults; the field remains sensitive either way.
func parseDirective(tag string) Directive {
	d := DefaultDirective
	for _, opt := range strings.Split(tag, ",") {
		key, value, found := strings.Cut(strings.TrimSpace(opt), "=")
		if !found {
			continue
		}
		switch key {
		case "mask":
			if r := []rune(value); len(r) > 0 {
				d.MaskChar = r[0]
			}
		case "last":
			if n, err := strconv.Atoi(value); err == nil {
				d.ShowLast = n
			}
		}
	}
	return d
}
