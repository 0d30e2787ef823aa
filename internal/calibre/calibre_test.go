// Copyright (c) 2026 Cereal. All rights reserved.
// Author: jordan.sekky@gmail.com

package calibre

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoverScript(t *testing.T) {
	script := coverScript("The Wandering Inn", "pirateaba", "/tmp/abc.jpg")

	// 1. Title and author land in the create_cover call
	assert.Contains(t, script, "create_cover('The Wandering Inn', ['pirateaba'])")

	// 2. The cover is written to the requested path
	assert.Contains(t, script, "open('/tmp/abc.jpg', 'wb')")
}

func TestCoverScript_EscapesQuotes(t *testing.T) {
	script := coverScript(`Zorian's "Loop"`, "nobody103", "/tmp/abc.jpg")

	assert.Contains(t, script, `create_cover('Zorian\'s \"Loop\"', ['nobody103'])`)
}

func TestConvertArgs(t *testing.T) {
	args := convertArgs("/tmp/in.html", "/tmp/out.mobi", "Pale: 0.1", "Wildbow", "/tmp/cover.jpg")

	assert.Equal(t, []string{
		"/tmp/in.html",
		"/tmp/out.mobi",
		"--filter-css", "font-family,color,background",
		"--authors", "Wildbow",
		"--title", "Pale: 0.1",
		"--cover", "/tmp/cover.jpg",
		"--output-profile", "kindle_oasis",
	}, args)
}
