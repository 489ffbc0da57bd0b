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

// Package paths contains functions to prepare paths to GopherNES resources.
//
// If the base resource path ".gophernes" is present in the current directory
// then that is the base path used. If it is not present then the
// "gophernes" directory in the user's config directory is used, as reported
// by os.UserConfigDir().
//
// On a modern Linux system the following will return
// "/home/user/.config/gophernes/states/faxanadu":
//
//	pth := paths.ResourcePath("states", "faxanadu")
package paths
