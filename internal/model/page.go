package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Page is the pagination envelope returned by list endpoints. Number is the
// zero-based index of the page held in Content; TotalElements is the
// authoritative total surviving filters.
type Page[T any] struct {
	Content       []T `json:"content"`
	TotalPages    int `json:"totalPages"`
	TotalElements int `json:"totalElements"`
	Size          int `json:"size"`
	Number        int `json:"number"`
}

// NormalizePage decodes a list response body. A body that is a bare array
// instead of the envelope is treated as a single full page: totalPages=1,
// number=0, totalElements=len, size=len (so the page is never larger than
// its stated size, whatever was requested).
func NormalizePage[T any](raw []byte, size int) (Page[T], error) {
	var page Page[T]

	body := bytes.TrimSpace(raw)
	if len(body) == 0 {
		return page, nil
	}

	if body[0] == '[' {
		var items []T
		if err := json.Unmarshal(body, &items); err != nil {
			return page, fmt.Errorf("failed to decode list response: %w", err)
		}
		return Page[T]{
			Content:       items,
			TotalPages:    1,
			TotalElements: len(items),
			Size:          len(items),
			Number:        0,
		}, nil
	}

	if err := json.Unmarshal(body, &page); err != nil {
		return page, fmt.Errorf("failed to decode paginated response: %w", err)
	}
	return page, nil
}

// Pager tracks client-side pagination state for one list view.
type Pager struct {
	Page          int
	Size          int
	TotalPages    int
	TotalElements int
}

func NewPager(size int) Pager {
	return Pager{Size: size}
}

// Track records the envelope metadata of the page just fetched.
func (p *Pager) Track(totalPages, totalElements int) {
	p.TotalPages = totalPages
	p.TotalElements = totalElements
}

func (p *Pager) HasNext() bool {
	return p.Page < p.TotalPages-1
}

func (p *Pager) HasPrev() bool {
	return p.Page > 0
}

func (p *Pager) Next() {
	if p.HasNext() {
		p.Page++
	}
}

func (p *Pager) Prev() {
	if p.HasPrev() {
		p.Page--
	}
}

// AfterDelete adjusts the page index once rows have been removed from the
// current page. Emptying a non-zero page steps back exactly one page; page
// zero stays put.
func (p *Pager) AfterDelete(remainingOnPage int) {
	if remainingOnPage <= 0 && p.Page > 0 {
		p.Page--
	}
}
