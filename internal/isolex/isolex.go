// Copyright 2024 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package isolex scans ISO 8601 extended-format date, time, offset and
// duration text, with the RFC 9557 bracketed annotations used for time
// zones ("[Europe/Paris]") and calendars ("[u-ca=gregory]").
//
// The scanner checks syntax and primitive field bounds only; calendar
// validity and range checks belong to the value constructors.
package isolex // import "github.com/startemporal/temporal/internal/isolex"

import (
	"strings"

	"github.com/startemporal/temporal/errors"
)

// Time is a wall-clock time; Second is clamped to 59 for leap seconds.
type Time struct {
	Hour, Minute, Second, Nanosecond int
}

// Offset is a UTC offset designator.
type Offset struct {
	// Z is set for the "Z" designator, which carries no local offset.
	Z bool
	// Nanoseconds east of UTC.
	Nanoseconds int64
	// Precise is set when the text carried a seconds component.
	Precise bool
}

// Result is a scanned date/time string.
type Result struct {
	Year, Month, Day int
	HasDate          bool
	Time             Time
	HasTime          bool
	Offset           Offset
	HasOffset        bool

	Zone             string
	Calendar         string
	CalendarCritical bool
}

type scanner struct {
	src string
	pos int
}

func (s *scanner) eof() bool { return s.pos >= len(s.src) }

func (s *scanner) peek() byte {
	if s.eof() {
		return 0
	}
	return s.src[s.pos]
}

// rest returns a short excerpt at the current position for error messages.
func (s *scanner) rest() string {
	r := s.src[s.pos:]
	if len(r) > 12 {
		r = r[:12]
	}
	if r == "" {
		return s.src
	}
	return r
}

func (s *scanner) fail(what string) error {
	return errors.Parse(s.rest(), "invalid %s in %q", what, s.src)
}

func (s *scanner) accept(chars string) bool {
	if !s.eof() && strings.IndexByte(chars, s.src[s.pos]) >= 0 {
		s.pos++
		return true
	}
	return false
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }

// digits consumes exactly n digits.
func (s *scanner) digits(n int, what string) (int, error) {
	if s.pos+n > len(s.src) {
		return 0, s.fail(what)
	}
	v := 0
	for i := 0; i < n; i++ {
		c := s.src[s.pos+i]
		if !isDigit(c) {
			return 0, s.fail(what)
		}
		v = v*10 + int(c-'0')
	}
	s.pos += n
	return v, nil
}

// fraction consumes a decimal separator and 1-9 digits, returning
// nanoseconds. It returns ok=false without consuming when absent.
func (s *scanner) fraction() (int64, bool, error) {
	if c := s.peek(); c != '.' && c != ',' {
		return 0, false, nil
	}
	s.pos++
	start := s.pos
	var v int64
	for !s.eof() && isDigit(s.peek()) {
		if s.pos-start == 9 {
			return 0, false, s.fail("fraction")
		}
		v = v*10 + int64(s.peek()-'0')
		s.pos++
	}
	n := s.pos - start
	if n == 0 {
		return 0, false, s.fail("fraction")
	}
	for ; n < 9; n++ {
		v *= 10
	}
	return v, true, nil
}

func (s *scanner) year() (int, error) {
	switch s.peek() {
	case '+', '-':
		neg := s.peek() == '-'
		s.pos++
		y, err := s.digits(6, "year")
		if err != nil {
			return 0, err
		}
		if neg {
			if y == 0 {
				return 0, errors.Parse("-000000", "negative zero year")
			}
			y = -y
		}
		return y, nil
	}
	return s.digits(4, "year")
}

// date scans YYYY-MM-DD or YYYYMMDD.
func (s *scanner) date(r *Result) error {
	y, err := s.year()
	if err != nil {
		return err
	}
	ext := s.accept("-")
	m, err := s.digits(2, "month")
	if err != nil {
		return err
	}
	if ext && !s.accept("-") {
		return s.fail("date separator")
	}
	d, err := s.digits(2, "day")
	if err != nil {
		return err
	}
	if m < 1 || m > 12 {
		return errors.Parse(s.src, "month %d out of range", m)
	}
	if d < 1 || d > 31 {
		return errors.Parse(s.src, "day %d out of range", d)
	}
	r.Year, r.Month, r.Day, r.HasDate = y, m, d, true
	return nil
}

// clock scans HH[:MM[:SS[.fff]]] or the basic form HH[MM[SS[.fff]]].
func (s *scanner) clock(r *Result) error {
	h, err := s.digits(2, "hour")
	if err != nil {
		return err
	}
	t := Time{Hour: h}
	ext := s.peek() == ':'
	if ext || (isDigit(s.peek())) {
		s.accept(":")
		if t.Minute, err = s.digits(2, "minute"); err != nil {
			return err
		}
		if (ext && s.peek() == ':') || (!ext && isDigit(s.peek())) {
			s.accept(":")
			if t.Second, err = s.digits(2, "second"); err != nil {
				return err
			}
			ns, _, err := s.fraction()
			if err != nil {
				return err
			}
			t.Nanosecond = int(ns)
		}
	}
	if t.Hour > 23 || t.Minute > 59 || t.Second > 60 {
		return errors.Parse(s.src, "time field out of range")
	}
	if t.Second == 60 {
		t.Second = 59
	}
	r.Time, r.HasTime = t, true
	return nil
}

// offset scans Z or ±HH[:MM[:SS[.fff]]].
func (s *scanner) offset() (Offset, bool, error) {
	if s.accept("Zz") {
		return Offset{Z: true}, true, nil
	}
	c := s.peek()
	if c != '+' && c != '-' {
		return Offset{}, false, nil
	}
	s.pos++
	var o Offset
	h, err := s.digits(2, "offset hour")
	if err != nil {
		return o, false, err
	}
	var m, sec int
	var frac int64
	ext := s.peek() == ':'
	if ext || isDigit(s.peek()) {
		s.accept(":")
		if m, err = s.digits(2, "offset minute"); err != nil {
			return o, false, err
		}
		if (ext && s.peek() == ':') || (!ext && isDigit(s.peek())) {
			s.accept(":")
			if sec, err = s.digits(2, "offset second"); err != nil {
				return o, false, err
			}
			if frac, _, err = s.fraction(); err != nil {
				return o, false, err
			}
			o.Precise = true
		}
	}
	if h > 23 || m > 59 || sec > 59 {
		return o, false, errors.Parse(s.src, "offset out of range")
	}
	o.Nanoseconds = (int64(h)*3600+int64(m)*60+int64(sec))*1e9 + frac
	if c == '-' {
		o.Nanoseconds = -o.Nanoseconds
	}
	return o, true, nil
}

// annotations scans trailing [zone] and [key=value] groups.
func (s *scanner) annotations(r *Result) error {
	first := true
	sawCalendar := false
	for s.accept("[") {
		critical := s.accept("!")
		end := strings.IndexByte(s.src[s.pos:], ']')
		if end < 0 {
			return s.fail("annotation")
		}
		body := s.src[s.pos : s.pos+end]
		s.pos += end + 1
		key, value, isKV := strings.Cut(body, "=")
		if !isKV {
			if !first || !validZone(body) {
				return errors.Parse(body, "invalid time zone annotation")
			}
			r.Zone = body
			first = false
			continue
		}
		first = false
		if !validKey(key) || value == "" {
			return errors.Parse(body, "invalid annotation")
		}
		switch key {
		case "u-ca":
			if sawCalendar {
				if critical || r.CalendarCritical {
					return errors.Parse(body, "conflicting calendar annotations")
				}
				continue
			}
			sawCalendar = true
			r.Calendar, r.CalendarCritical = value, critical
		default:
			if critical {
				return errors.Parse(body, "unknown critical annotation")
			}
		}
	}
	return nil
}

func validKey(k string) bool {
	if k == "" || !(k[0] == '_' || 'a' <= k[0] && k[0] <= 'z') {
		return false
	}
	for i := 1; i < len(k); i++ {
		c := k[i]
		if !(c == '_' || c == '-' || isDigit(c) || 'a' <= c && c <= 'z') {
			return false
		}
	}
	return true
}

func validZone(z string) bool {
	if z == "" {
		return false
	}
	for i := 0; i < len(z); i++ {
		c := z[i]
		if !(isDigit(c) || 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || strings.IndexByte("._+-/:", c) >= 0) {
			return false
		}
	}
	return true
}

func (s *scanner) done() error {
	if !s.eof() {
		return errors.Parse(s.rest(), "unexpected trailing text in %q", s.src)
	}
	return nil
}

// tail scans an optional time, offset and annotations after a date.
func (s *scanner) tail(r *Result) error {
	if s.accept("Tt ") {
		if err := s.clock(r); err != nil {
			return err
		}
	}
	o, ok, err := s.offset()
	if err != nil {
		return err
	}
	if ok && !r.HasTime {
		return errors.Parse(s.src, "offset requires a time")
	}
	r.Offset, r.HasOffset = o, ok
	if err := s.annotations(r); err != nil {
		return err
	}
	return s.done()
}

// ParseDateTime scans a date with optional time, offset and annotations.
func ParseDateTime(src string) (Result, error) {
	var r Result
	s := &scanner{src: src}
	if err := s.date(&r); err != nil {
		return r, err
	}
	return r, s.tail(&r)
}

// ParseTime scans a time, optionally preceded by "T", or a date-time.
func ParseTime(src string) (Result, error) {
	if r, err := ParseDateTime(src); err == nil {
		if !r.HasTime {
			return r, errors.Parse(src, "missing time")
		}
		return r, nil
	}
	var r Result
	s := &scanner{src: src}
	s.accept("Tt")
	if err := s.clock(&r); err != nil {
		return r, err
	}
	o, ok, err := s.offset()
	if err != nil {
		return r, err
	}
	r.Offset, r.HasOffset = o, ok
	if err := s.annotations(&r); err != nil {
		return r, err
	}
	if r.Zone != "" {
		return r, errors.Parse(r.Zone, "time zone not allowed on a time")
	}
	return r, s.done()
}

// ParseYearMonth scans YYYY-MM with optional annotations, or a date-time.
func ParseYearMonth(src string) (Result, error) {
	if r, err := ParseDateTime(src); err == nil {
		return r, nil
	}
	var r Result
	s := &scanner{src: src}
	y, err := s.year()
	if err != nil {
		return r, err
	}
	s.accept("-")
	m, err := s.digits(2, "month")
	if err != nil {
		return r, err
	}
	if m < 1 || m > 12 {
		return r, errors.Parse(src, "month %d out of range", m)
	}
	r.Year, r.Month, r.Day = y, m, 1
	if err := s.annotations(&r); err != nil {
		return r, err
	}
	return r, s.done()
}

// ParseMonthDay scans --MM-DD or MM-DD with optional annotations, or a
// date-time. The year of a bare month-day is zero.
func ParseMonthDay(src string) (Result, error) {
	if r, err := ParseDateTime(src); err == nil {
		return r, nil
	}
	var r Result
	s := &scanner{src: src}
	if strings.HasPrefix(src, "--") {
		s.pos = 2
	}
	m, err := s.digits(2, "month")
	if err != nil {
		return r, err
	}
	s.accept("-")
	d, err := s.digits(2, "day")
	if err != nil {
		return r, err
	}
	if m < 1 || m > 12 || d < 1 || d > 31 {
		return r, errors.Parse(src, "month-day out of range")
	}
	r.Month, r.Day = m, d
	if err := s.annotations(&r); err != nil {
		return r, err
	}
	return r, s.done()
}

// ParseOffset scans a standalone offset such as "+05:30" or "-08:00:00.5".
func ParseOffset(src string) (Offset, error) {
	s := &scanner{src: src}
	o, ok, err := s.offset()
	if err != nil {
		return o, err
	}
	if !ok || o.Z {
		return o, errors.Parse(src, "invalid offset")
	}
	return o, s.done()
}
