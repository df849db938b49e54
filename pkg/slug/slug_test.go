// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dublab/studio/pkg/slug"
)

func TestFrom(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Half-Life 2", "half-life-2"},
		{"Bilim Kurgu", "bilim-kurgu"},
		{"Çizgi Dizi", "cizgi-dizi"},
		{"Işık ve Gölge", "isik-ve-golge"},
		{"Ağır Çekim!!!", "agir-cekim"},
		{"  --Rock & Roll--  ", "rock-and-roll"},
		{"Pokémon", "pokemon"},
		{"日本", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, slug.From(tt.in))
		})
	}
}

func TestIdentifier(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Half-Life 2: Episode_One", "half-life-2-episode_one"},
		{"  Çılgın   Kedi ", "cilgin-kedi"},
		{"half-life-2", "half-life-2"},
		{"日本", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, slug.Identifier(tt.in))
		})
	}
}
