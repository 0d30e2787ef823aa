// Copyright (c) 2026 Cereal. All rights reserved.
// Author: jordan.sekky@gmail.com

/*
Package calibre converts chapter HTML into kindle-ready MOBI files by
shelling out to the calibre CLI tools.

Two binaries are involved: calibre-debug generates a cover image, then
ebook-convert renders the content file plus cover into a .mobi. Both must be
on PATH; there is no in-process fallback.
*/
package calibre

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/JordanSekky/cereal-convert/pkg/random"
)

const (
	coverBinary   = "calibre-debug"
	convertBinary = "ebook-convert"

	// tempNameLength keeps scratch files collision-free under /tmp.
	tempNameLength = 30
)

// Converter runs calibre conversions. The zero value is ready to use.
type Converter struct{}

// NewConverter constructs a new [Converter].
func NewConverter() *Converter {
	return &Converter{}
}

/*
ConvertToMOBI renders content into a MOBI with a generated cover.

Parameters:
  - context: context.Context
  - title: string (Ebook title, also rendered on the cover)
  - author: string
  - content: []byte (Source document)
  - ext: string (Source extension with dot, e.g. ".html")

Returns:
  - []byte: The converted MOBI
  - error: Script or conversion failures
*/
func (converter *Converter) ConvertToMOBI(context context.Context, title, author string, content []byte, ext string) ([]byte, error) {
	scratch := filepath.Join(os.TempDir(), random.Alphanumeric(tempNameLength))
	input := scratch + ext
	cover := scratch + ".jpg"
	output := scratch + ".mobi"
	defer removeAll(input, cover, output)

	if err := os.WriteFile(input, content, 0o600); err != nil {
		return nil, fmt.Errorf("calibre: failed to write source file: %w", err)
	}

	// Cover first: ebook-convert needs it on disk.
	script := coverScript(title, author, cover)
	if out, err := exec.CommandContext(context, coverBinary, "-c", script).CombinedOutput(); err != nil {
		return nil, fmt.Errorf("calibre: cover generation failed: %w: %s", err, out)
	}

	args := convertArgs(input, output, title, author, cover)
	if out, err := exec.CommandContext(context, convertBinary, args...).CombinedOutput(); err != nil {
		return nil, fmt.Errorf("calibre: conversion failed: %w: %s", err, out)
	}

	mobi, err := os.ReadFile(output)
	if err != nil {
		return nil, fmt.Errorf("calibre: failed to read converted file: %w", err)
	}
	return mobi, nil
}

/*
ValidationMOBI generates the small verification ebook delivered during
kindle channel registration. The code is the entire content.
*/
func (converter *Converter) ValidationMOBI(context context.Context, code string) ([]byte, error) {
	body := fmt.Sprintf(
		"Thank you for using cereal. Your verification code is:\n\n%s\n\n"+
			"Enter this code to activate kindle delivery.", code)

	return converter.ConvertToMOBI(context, "Cereal Verification", "Cereal", []byte(body), ".txt")
}

// coverScript builds the python snippet calibre-debug runs to produce the
// cover image. Title and author are embedded in string literals, so quotes
// must be escaped.
func coverScript(title, author, coverPath string) string {
	return fmt.Sprintf(
		"from calibre.ebooks.covers import create_cover\n"+
			"cover = create_cover('%s', ['%s'])\n"+
			"open('%s', 'wb').write(cover)\n",
		pythonEscape(title), pythonEscape(author), coverPath)
}

// convertArgs builds the ebook-convert invocation. The CSS filter strips the
// source site's fonts and colors so kindle typography applies.
func convertArgs(input, output, title, author, cover string) []string {
	return []string{
		input,
		output,
		"--filter-css", "font-family,color,background",
		"--authors", author,
		"--title", title,
		"--cover", cover,
		"--output-profile", "kindle_oasis",
	}
}

func pythonEscape(value string) string {
	value = strings.ReplaceAll(value, `'`, `\'`)
	return strings.ReplaceAll(value, `"`, `\"`)
}

func removeAll(paths ...string) {
	for _, path := range paths {
		_ = os.Remove(path)
	}
}
