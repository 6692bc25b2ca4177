package cartridge

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/cespare/xxhash"
)

// ErrSaveChecksum is returned by ReadSave when the stored checksum does
// not match the payload that follows it, indicating a short or
// otherwise corrupted write.
var ErrSaveChecksum = errors.New("cartridge: save file checksum mismatch")

// WriteSave writes ram to w as a checksummed envelope: an 8-byte
// little-endian xxhash64 of ram, followed by ram itself. A reader that
// only sees part of the file (a crash or disk-full mid-write) will
// fail the checksum check in ReadSave rather than load truncated RAM.
func WriteSave(w io.Writer, ram []byte) error {
	sum := xxhash.Sum64(ram)
	var header [8]byte
	binary.LittleEndian.PutUint64(header[:], sum)
	if _, err := w.Write(header[:]); err != nil {
		return fmt.Errorf("cartridge: writing save checksum: %w", err)
	}
	if _, err := w.Write(ram); err != nil {
		return fmt.Errorf("cartridge: writing save payload: %w", err)
	}
	return nil
}

// ReadSave reads a checksummed envelope previously written by WriteSave
// and returns its RAM payload. It returns ErrSaveChecksum if the
// checksum does not match, or if the file is too short to contain one.
func ReadSave(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("cartridge: reading save file: %w", err)
	}
	if len(data) < 8 {
		return nil, ErrSaveChecksum
	}
	want := binary.LittleEndian.Uint64(data[:8])
	payload := data[8:]
	if xxhash.Sum64(payload) != want {
		return nil, ErrSaveChecksum
	}
	return payload, nil
}

// SaveFileName derives the conventional .sav basename for a cartridge
// title: the title with trailing NUL padding and surrounding whitespace
// stripped, and any path separators or NULs replaced with underscores,
// with ".sav" appended ("cartridge.sav" for an empty title). The
// core never touches the filesystem itself; this is a suggestion for
// whatever host application owns the save directory.
func SaveFileName(title string) string {
	clean := strings.TrimRight(title, "\x00")
	clean = strings.TrimSpace(clean)
	clean = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', 0:
			return '_'
		}
		return r
	}, clean)
	if clean == "" {
		clean = "cartridge"
	}
	return clean + ".sav"
}
