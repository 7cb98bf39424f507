// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for pdf2md: conversion
// settings, the extraction backend enum, and the conversion record kept by
// the ledger.
package types

import "time"

// ConversionStatus indicates the outcome of converting one PDF.
type ConversionStatus string

const (
	ConversionConverted ConversionStatus = "converted"
	ConversionFailed    ConversionStatus = "failed"
)

// Conversion records a single PDF-to-Markdown conversion.
type Conversion struct {
	// RunID groups the conversions performed by one invocation.
	RunID string `json:"run_id" yaml:"run_id"`

	// Source is the path of the PDF that was converted.
	Source string `json:"source" yaml:"source"`

	// Output is the path of the Markdown file written.
	Output string `json:"output" yaml:"output"`

	// Backend is the extraction backend that produced the text.
	Backend ExtractionBackend `json:"backend" yaml:"backend"`

	// Chars is the character (rune) count of the Markdown document.
	Chars int `json:"chars" yaml:"chars"`

	// SHA256 is the hex digest of the Markdown document.
	SHA256 string `json:"sha256,omitempty" yaml:"sha256,omitempty"`

	Status ConversionStatus `json:"status" yaml:"status"`

	// Error holds the failure message when Status is ConversionFailed.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`

	ConvertedAt time.Time `json:"converted_at" yaml:"converted_at"`
}
