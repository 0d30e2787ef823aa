// Copyright (c) 2026 Cereal. All rights reserved.
// Author: jordan.sekky@gmail.com

package filename_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/JordanSekky/cereal-convert/pkg/filename"
)

func TestFrom(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain_title", "Pale: Chapter 1.1", "Pale Chapter 1.1"},
		{"accents_removed", "Café Récit", "Cafe Recit"},
		{"hostile_characters", `The "Inn"/Vol<2>`, "The Inn Vol 2"},
		{"collapsed_whitespace", "A   Practical   Guide", "A Practical Guide"},
		{"empty_falls_back", "☃☃☃", "chapter"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, filename.From(tt.input))
		})
	}
}
