/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

package errors

import (
	"fmt"
	"path"
	"path/filepath"
	"runtime"
	"strings"
)

const pathSeparator = "/"

// ownPackage is matched against runtime.Frame.Function to skip this
// package's own frames when walking the stack for a caller's location.
const ownPackage = "nabbar/netreactor/errors"

// getFrame returns the first stack frame outside this package, so an Error's
// trace points at the code that constructed it.
func getFrame() runtime.Frame {
	pc := make([]uintptr, 20)
	n := runtime.Callers(2, pc)
	if n == 0 {
		return runtime.Frame{}
	}

	frames := runtime.CallersFrames(pc[:n])
	for {
		frame, more := frames.Next()
		if !strings.Contains(frame.Function, ownPackage+".") {
			return frame
		}
		if !more {
			return runtime.Frame{}
		}
	}
}

// filterTrace renders a frame as "file#line", trimming the module-cache
// prefix so the trace stays readable across machines.
func filterTrace(f runtime.Frame) string {
	if f.File == "" {
		if f.Function == "" {
			return ""
		}
		return fmt.Sprintf("%s#%d", f.Function, f.Line)
	}

	name := strings.ReplaceAll(f.File, string(filepath.Separator), pathSeparator)
	if i := strings.LastIndex(name, pathSeparator+"mod"+pathSeparator); i != -1 {
		name = name[i+len("/mod/"):]
	}
	name = path.Clean(name)

	return fmt.Sprintf("%s#%d", strings.Trim(name, pathSeparator), f.Line)
}
