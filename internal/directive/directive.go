// Package directive extracts inline markup tokens from generated guide text.
//
// The language model is prompted to embed two token grammars in its replies:
//
//	[[MAP:Place Name:latitude:longitude]]
//	[[IMG:search term]]
//
// Extraction strips every delimited token from the display text and returns
// the well-formed ones as structured directives. The model's adherence to
// the grammar is probabilistic, so the scanner never fails: malformed tokens
// are dropped silently and an unterminated opening is left as literal text.
package directive

import (
	"strconv"
	"strings"
)

const (
	mapOpen    = "[[MAP:"
	imgOpen    = "[[IMG:"
	closeDelim = "]]"
)

// Map is a navigable place reference.
type Map struct {
	Label     string  `json:"name"`
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lng"`
}

// Image is an image-search hint.
type Image struct {
	SearchTerm string `json:"searchTerm"`
}

// Extraction is the result of one scan. Maps and Images preserve the order
// in which tokens were found; duplicates are kept.
type Extraction struct {
	DisplayText string
	Maps        []Map
	Images      []Image
}

// Extract scans raw text left to right once, removing every delimited token
// of both grammars and collecting the valid ones.
func Extract(raw string) Extraction {
	var out strings.Builder
	var ext Extraction

	// Last byte written to out, so token-dense output does not force a
	// re-materializing out.String() call per removed token.
	var last byte
	write := func(s string) {
		if s != "" {
			out.WriteString(s)
			last = s[len(s)-1]
		}
	}

	i := 0
	for i < len(raw) {
		rel := strings.Index(raw[i:], "[[")
		if rel < 0 {
			write(raw[i:])
			break
		}
		start := i + rel
		rest := raw[start:]

		var open string
		switch {
		case strings.HasPrefix(rest, mapOpen):
			open = mapOpen
		case strings.HasPrefix(rest, imgOpen):
			open = imgOpen
		default:
			// Not a token opening; keep the brackets as literal text.
			write(raw[i : start+2])
			i = start + 2
			continue
		}

		end := strings.Index(rest, closeDelim)
		if end < 0 {
			// Unterminated token; leave everything as-is.
			write(raw[i:])
			break
		}

		write(raw[i:start])
		body := rest[len(open):end]
		switch open {
		case mapOpen:
			if m, ok := parseMap(body); ok {
				ext.Maps = append(ext.Maps, m)
			}
		case imgOpen:
			if body != "" {
				ext.Images = append(ext.Images, Image{SearchTerm: body})
			}
		}
		i = start + end + len(closeDelim)

		// Removing a token between two spaces would leave a double space.
		if last == ' ' || last == '\t' {
			for i < len(raw) && (raw[i] == ' ' || raw[i] == '\t') {
				i++
			}
		}
	}

	ext.DisplayText = strings.TrimSpace(out.String())
	return ext
}

// parseMap parses "label:lat:lon". A wrong field count or a non-numeric
// coordinate drops the token.
func parseMap(body string) (Map, bool) {
	parts := strings.Split(body, ":")
	if len(parts) != 3 || parts[0] == "" {
		return Map{}, false
	}
	lat, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return Map{}, false
	}
	lon, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return Map{}, false
	}
	return Map{Label: parts[0], Latitude: lat, Longitude: lon}, true
}
