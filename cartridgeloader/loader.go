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

package cartridgeloader

import (
	"bytes"
	"crypto/sha1"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/jetsetilly/gophernes/curated"
	"github.com/jetsetilly/gophernes/hardware/cartridge"
)

// FileExtensions is the list of file extensions that are recognised by the
// cartridgeloader package.
var FileExtensions = [...]string{".NES"}

// Sentinel errors returned by Load().
var (
	ErrNotINES   = errors.New("cartridgeloader: not an iNES file")
	ErrTruncated = errors.New("cartridgeloader: file is truncated")
	ErrHash      = errors.New("cartridgeloader: unexpected hash")
)

const (
	headerLen  = 16
	trainerLen = 512
)

var magic = []byte{'N', 'E', 'S', 0x1a}

// Loader is used to specify the cartridge to attach to the NES.
type Loader struct {
	// filename of cartridge to load
	Filename string

	// expected hash of the loaded file. empty string indicates that the hash
	// is unknown and need not be validated. after a load operation the
	// value will be the hash of the loaded data
	Hash string

	// copy of the loaded file
	Data []byte

	// decoded from the file after a successful load
	Program  []uint8
	Graphics []uint8
	MapperID int
}

// NewLoader is the preferred method of initialisation for the Loader type.
func NewLoader(filename string) Loader {
	return Loader{Filename: filename}
}

// ShortName returns the filename without the path or extension.
func (cl Loader) ShortName() string {
	s := filepath.Base(cl.Filename)
	return strings.TrimSuffix(s, filepath.Ext(s))
}

// HasLoaded returns true if Load() has been successfully called.
func (cl Loader) HasLoaded() bool {
	return len(cl.Data) > 0
}

// Load the file. Filenames with a HTTP or HTTPS scheme are downloaded.
func (cl *Loader) Load() error {
	if cl.HasLoaded() {
		return nil
	}

	var data []byte
	var err error

	scheme := "file"
	path := cl.Filename
	if u, err := url.Parse(cl.Filename); err == nil && u.Scheme != "" {
		scheme = u.Scheme
		if scheme == "file" {
			path = u.Path
		}
	}

	switch scheme {
	case "http", "https":
		var resp *http.Response
		resp, err = http.Get(cl.Filename)
		if err != nil {
			return curated.Errorf("cartridgeloader: %v", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return curated.Errorf("cartridgeloader: %s", resp.Status)
		}
		data, err = io.ReadAll(resp.Body)
	case "file":
		data, err = os.ReadFile(path)
	default:
		return curated.Errorf("cartridgeloader: unsupported URL scheme: %s", scheme)
	}
	if err != nil {
		return curated.Errorf("cartridgeloader: %v", err)
	}

	hash := fmt.Sprintf("%x", sha1.Sum(data))
	if cl.Hash != "" && cl.Hash != hash {
		return curated.Errorf("%v: %s", ErrHash, hash)
	}

	if err := cl.decode(data); err != nil {
		return err
	}

	cl.Data = data
	cl.Hash = hash

	return nil
}

func (cl *Loader) decode(data []byte) error {
	if len(data) < headerLen || !bytes.Equal(data[:len(magic)], magic) {
		return ErrNotINES
	}

	programLen := int(data[4]) * cartridge.ProgramBankSize
	graphicsLen := int(data[5]) * cartridge.GraphicsBankSize
	flags6 := data[6]
	flags7 := data[7]

	offset := headerLen
	if flags6&0x04 == 0x04 {
		offset += trainerLen
	}

	if len(data) < offset+programLen+graphicsLen {
		return curated.Errorf("%v: %d bytes where %d expected", ErrTruncated, len(data), offset+programLen+graphicsLen)
	}

	cl.Program = data[offset : offset+programLen]
	cl.Graphics = data[offset+programLen : offset+programLen+graphicsLen]
	cl.MapperID = int(flags6>>4) | int(flags7&0xf0)

	return nil
}

// Cartridge creates a new cartridge from the loaded data.
func (cl *Loader) Cartridge() (*cartridge.Cartridge, error) {
	if err := cl.Load(); err != nil {
		return nil, err
	}
	return cartridge.NewCartridge(cl.Program, cl.Graphics, cl.MapperID)
}
