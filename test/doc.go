// This file is part of GopherPPC.
//
// GopherPPC is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// GopherPPC is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with GopherPPC.  If not, see <https://www.gnu.org/licenses/>.

// Package test bundles helper functions used in conjunction with the
// standard go test harness.
//
// The Expect functions report a test failure and allow the test to continue.
// The Demand functions stop the test immediately and should be used when the
// tested value is relied upon by further tests. For example, testing that a
// compiled block has the expected number of records before inspecting them.
//
// The success and failure tests interpret values according to their type:
//
//	bool -> true is success
//	error -> nil is success
//	nil -> always success
//
// The nil case is not obvious but is necessary because of how errors usually
// work in Go (nil to indicate no error).
//
// CompareWriter and RingWriter implement the io.Writer interface and are
// used to capture output.
package test
