/***********************************************************************************************************************
 *
 *   MIT License
 *
 *   Copyright (c) 2022 Nicolas JUHEL
 *
 *   Permission is hereby granted, free of charge, to any person obtaining a copy
 *   of this software and associated documentation files (the "Software"), to deal
 *   in the Software without restriction, including without limitation the rights
 *   to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 *   copies of the Software, and to permit persons to whom the Software is
 *   furnished to do so, subject to the following conditions:
 *
 *   The above copyright notice and this permission notice shall be included in all
 *   copies or substantial portions of the Software.
 *
 *   THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 *   IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 *   FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 *   AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 *   LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 *   OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 *   SOFTWARE.
 *
 *
 **********************************************************************************************************************/

package duration

import (
	"strconv"
	"strings"
	"time"
)

// parseString accepts everything time.ParseDuration does, plus an optional
// leading day component ("5d23h15m13s"), matching what String() emits. This
// is what lets a config value like ConIdleTimeout round-trip through
// marshal/unmarshal without losing precision on multi-day timeouts.
func parseString(s string) (Duration, error) {
	s = strings.Replace(s, "\"", "", -1)
	s = strings.Replace(s, "'", "", -1)
	s = strings.ReplaceAll(s, " ", "")

	days, rest, matched := splitDays(s)
	if matched && rest == "" {
		return Duration(days * int64(24*time.Hour)), nil
	}

	tail, err := time.ParseDuration(rest)
	if err != nil {
		return 0, err
	}

	return Duration(days*int64(24*time.Hour) + int64(tail)), nil
}

// splitDays peels a leading "<digits>d" prefix off s and returns the day
// count plus whatever remains for time.ParseDuration to handle. matched is
// false whenever s has no such prefix, in which case rest is s unchanged and
// the caller falls through to plain time.ParseDuration semantics (including
// its error cases, like an empty string).
func splitDays(s string) (days int64, rest string, matched bool) {
	idx := strings.IndexByte(s, 'd')
	if idx <= 0 {
		return 0, s, false
	}

	n, err := strconv.ParseInt(s[:idx], 10, 64)
	if err != nil {
		return 0, s, false
	}

	return n, s[idx+1:], true
}

func (d *Duration) parseString(s string) error {
	v, err := parseString(s)
	if err != nil {
		return err
	}
	*d = v
	return nil
}

func (d *Duration) unmarshall(val []byte) error {
	tmp, err := ParseByte(val)
	if err != nil {
		return err
	}
	*d = tmp
	return nil
}
