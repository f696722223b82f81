// This file is part of Gopher2600.
//
// Gopher2600 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopher2600 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopher2600.  If not, see <https://www.gnu.org/licenses/>.

package halsim

import (
	"io"
	"os"
)

// FileProvider is a hal.FileProvider backed by the host filesystem, used by
// the cmd tools instead of the real mass-storage driver.
type FileProvider struct {
	f        *os.File
	mounted  bool
}

func NewFileProvider() *FileProvider { return &FileProvider{} }

func (p *FileProvider) Mount() error { p.mounted = true; return nil }

func (p *FileProvider) Open(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	p.f = f
	return nil
}

func (p *FileProvider) Size() (uint32, error) {
	fi, err := p.f.Stat()
	if err != nil {
		return 0, err
	}
	return uint32(fi.Size()), nil
}

func (p *FileProvider) Seek(offset uint32) error {
	_, err := p.f.Seek(int64(offset), io.SeekStart)
	return err
}

func (p *FileProvider) Read(buf []byte) (int, error) {
	return p.f.Read(buf)
}

func (p *FileProvider) Close() error {
	if p.f == nil {
		return nil
	}
	return p.f.Close()
}

func (p *FileProvider) Unmount() error { p.mounted = false; return nil }
