package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/staybook/staybook-api/internal/domain/booking"
)

// readInputs reads a JSON object of field name to raw value from path, or stdin for "-".
func readInputs(path string, stdin io.Reader) (map[string]string, error) {
	var r io.Reader = stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	var raw map[string]json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode form: %w", err)
	}

	out := make(map[string]string, len(raw))
	for name, value := range raw {
		if _, ok := booking.ParseField(name); !ok {
			return nil, fmt.Errorf("unknown field %q", name)
		}
		s, err := booking.InputRequest{Value: value}.Raw()
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", name, err)
		}
		out[name] = s
	}
	return out, nil
}

// fillForm applies inputs in display order. propertyId is owned by the page, not typed in.
func fillForm(f *booking.Form, inputs map[string]string) error {
	for _, field := range booking.Fields() {
		raw, ok := inputs[field.String()]
		if !ok || !field.Editable() {
			continue
		}
		if _, err := f.Input(field, raw); err != nil {
			return fmt.Errorf("field %s: %w", field, err)
		}
	}
	return nil
}

func printErrors(w io.Writer, errs booking.FieldErrors) {
	names := make([]string, 0, len(errs))
	for name := range errs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "  %s: %s\n", name, errs[name])
	}
}
