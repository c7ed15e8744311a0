// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package target

import (
	"fmt"
	"strconv"
	"strings"
)

// ExpandAddresses expands an IPv4 range shorthand into individual
// addresses. "10.0.0.70-72" expands the final octet from 70 through
// 72 inclusive; a plain address passes through unchanged.
func ExpandAddresses(spec string) ([]string, error) {
	dash := strings.LastIndexByte(spec, '-')
	if dash < 0 {
		return []string{spec}, nil
	}

	dot := strings.LastIndexByte(spec, '.')
	if dot < 0 || dash < dot {
		return nil, fmt.Errorf("address range %q: expected prefix.start-end", spec)
	}

	prefix := spec[:dot+1]
	start, err := strconv.Atoi(spec[dot+1 : dash])
	if err != nil {
		return nil, fmt.Errorf("address range %q: bad start octet: %w", spec, err)
	}
	end, err := strconv.Atoi(spec[dash+1:])
	if err != nil {
		return nil, fmt.Errorf("address range %q: bad end octet: %w", spec, err)
	}
	if start > end {
		return nil, fmt.Errorf("address range %q: start %d after end %d", spec, start, end)
	}
	if start < 0 || end > 255 {
		return nil, fmt.Errorf("address range %q: octets must be 0-255", spec)
	}

	addresses := make([]string, 0, end-start+1)
	for octet := start; octet <= end; octet++ {
		addresses = append(addresses, fmt.Sprintf("%s%d", prefix, octet))
	}
	return addresses, nil
}

// ExpandNames expands a bracketed numeric range inside a name into
// individual names, preserving zero padding. "SW-[01-18]" yields
// SW-01 through SW-18; a name without brackets passes through
// unchanged.
func ExpandNames(spec string) ([]string, error) {
	open := strings.IndexByte(spec, '[')
	if open < 0 {
		return []string{spec}, nil
	}
	closing := strings.IndexByte(spec, ']')
	if closing < open {
		return nil, fmt.Errorf("name range %q: unmatched bracket", spec)
	}

	startText, endText, found := strings.Cut(spec[open+1:closing], "-")
	if !found {
		return nil, fmt.Errorf("name range %q: expected [start-end]", spec)
	}
	start, err := strconv.Atoi(startText)
	if err != nil {
		return nil, fmt.Errorf("name range %q: bad start: %w", spec, err)
	}
	end, err := strconv.Atoi(endText)
	if err != nil {
		return nil, fmt.Errorf("name range %q: bad end: %w", spec, err)
	}
	if start > end {
		return nil, fmt.Errorf("name range %q: start %d after end %d", spec, start, end)
	}

	width := len(startText)
	names := make([]string, 0, end-start+1)
	for n := start; n <= end; n++ {
		names = append(names, fmt.Sprintf("%s%0*d%s", spec[:open], width, n, spec[closing+1:]))
	}
	return names, nil
}
