package emit

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"fortio.org/safecast"
	"github.com/vmihailenco/msgpack/v5"
)

var magic = [4]byte{'S', 'K', 'B', 1}

const headerSize = len(magic) + 1 + 4 + 4

// maxPayload bounds the raw size accepted by Decode.
const maxPayload = 1 << 30

// Encode writes a to w, compressing the payload with c when that helps.
func Encode(w io.Writer, a *Artifact, c Codec) error {
	raw, err := msgpack.Marshal(a)
	if err != nil {
		return fmt.Errorf("emit: encode: %w", err)
	}
	rawSize, err := safecast.Conv[uint32](len(raw))
	if err != nil {
		return fmt.Errorf("emit: payload too large: %w", err)
	}
	packed, err := compress(raw, c)
	if err != nil {
		return fmt.Errorf("emit: %s: %w", c, err)
	}

	hdr := make([]byte, headerSize)
	copy(hdr, magic[:])
	hdr[4] = byte(c)
	binary.LittleEndian.PutUint32(hdr[5:], rawSize)
	body := raw
	if packed != nil {
		binary.LittleEndian.PutUint32(hdr[9:], uint32(len(packed))) // #nosec G115 -- smaller than raw
		body = packed
	}
	if _, err := w.Write(hdr); err != nil {
		return err
	}
	_, err = w.Write(body)
	return err
}

// Decode reads an artifact written by Encode and validates it.
func Decode(r io.Reader) (*Artifact, error) {
	hdr := make([]byte, headerSize)
	if _, err := io.ReadFull(r, hdr); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTruncated, err)
	}
	if !bytes.Equal(hdr[:4], magic[:]) {
		return nil, ErrBadMagic
	}
	c := Codec(hdr[4])
	rawSize := binary.LittleEndian.Uint32(hdr[5:])
	packedSize := binary.LittleEndian.Uint32(hdr[9:])
	if rawSize > maxPayload || packedSize > rawSize {
		return nil, ErrCorrupt
	}

	size := rawSize
	if packedSize != 0 {
		size = packedSize
	}
	body := make([]byte, size)
	if _, err := io.ReadFull(r, body); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTruncated, err)
	}
	if packedSize != 0 {
		var err error
		if body, err = decompress(body, int(rawSize), c); err != nil {
			return nil, fmt.Errorf("emit: %s: %w", c, err)
		}
	}

	var a Artifact
	if err := msgpack.Unmarshal(body, &a); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return &a, nil
}

// WriteFile encodes a into path through a temporary file and a rename.
func WriteFile(path string, a *Artifact, c Codec) (err error) {
	f, err := os.CreateTemp(filepath.Dir(path), ".skb-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = os.Remove(f.Name())
		}
	}()
	if err = Encode(f, a, c); err != nil {
		_ = f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), path)
}

// ReadFile decodes the artifact stored at path.
func ReadFile(path string) (*Artifact, error) {
	// #nosec G304 -- path is provided by the caller
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}
