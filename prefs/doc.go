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

// Package prefs stores user preferences. Preference values are typed (Bool,
// Int, Float, String) and can be read and written from any goroutine. Values
// are persisted to a file with the Disk type. Each line of the file is a
// key/value pair separated by " :: ".
//
// Values on the command line (see PushCommandLineStack()) take precedence
// over values loaded from disk.
package prefs
