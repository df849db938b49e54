// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package objectstore

import (
	"bytes"
	"context"
	"io"
	"sync"
)

// Object is a stored blob held by [Memory].
type Object struct {
	Data        []byte
	ContentType string
}

// Memory is an in-process [Store] used by tests and local runs without a bucket.
type Memory struct {
	mu      sync.Mutex
	objects map[string]Object

	// FailPut, when set, is returned by every Put.
	FailPut error
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{objects: make(map[string]Object)}
}

// Put implements [Store].
func (m *Memory) Put(_ context.Context, key string, body io.Reader, _ int64, contentType string) error {
	if m.FailPut != nil {
		return m.FailPut
	}

	var buffer bytes.Buffer
	if _, err := io.Copy(&buffer, body); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = Object{Data: buffer.Bytes(), ContentType: contentType}
	return nil
}

// Copy implements [Store].
func (m *Memory) Copy(_ context.Context, src, dst string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	object, ok := m.objects[src]
	if !ok {
		return ErrNotFound
	}
	m.objects[dst] = object
	return nil
}

// Delete implements [Store].
func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	return nil
}

// Get returns the object at key.
func (m *Memory) Get(key string) (Object, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	object, ok := m.objects[key]
	return object, ok
}

// Len returns the number of stored objects.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.objects)
}
