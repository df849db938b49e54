// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package adminclient

import (
	"errors"
	"sort"
	"strings"
)

// ErrSubmissionPending is returned when Submit is called while a previous
// submission has not finished.
var ErrSubmissionPending = errors.New("adminclient: a submission is already in progress")

// FormErrors collects per-field messages plus one general message.
type FormErrors struct {
	Fields  map[string][]string
	General string
}

// Add appends message to field.
func (e *FormErrors) Add(field, message string) {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[field] = append(e.Fields[field], message)
}

func (e *FormErrors) HasErrors() bool {
	return e != nil && (len(e.Fields) > 0 || e.General != "")
}

// Error lists the general message and then each field in name order.
func (e *FormErrors) Error() string {
	var parts []string
	if e.General != "" {
		parts = append(parts, e.General)
	}

	fields := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	for _, field := range fields {
		parts = append(parts, field+": "+strings.Join(e.Fields[field], ", "))
	}

	return strings.Join(parts, "; ")
}
