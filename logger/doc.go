// This file is part of GopherNES.
//
// GopherNES is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// GopherNES is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with GopherNES.  If not, see <https://www.gnu.org/licenses/>.

// Package logger is the central log for the emulation. Entries are made up of
// a tag and a detail string. Consecutive entries with identical tags and
// details are collapsed into a single entry with a repeat count.
//
// Callers must supply a Permission to every logging call. The hardware
// instance type implements the Permission interface so that secondary
// emulations (test harnesses, headless comparisons) can run without filling
// the log.
package logger
