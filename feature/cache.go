package feature

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"path"

	"github.com/hupe1980/imgeval/blobstore"
	"github.com/hupe1980/imgeval/codec"
	"github.com/hupe1980/imgeval/internal/conv"
	"github.com/hupe1980/imgeval/internal/hash"
)

// Encoded layout:
//
//	"IMGF" | u8 codec name length | codec name | u32 header length | header | block
//
// The header is encoded with the named codec. The block carries the
// little-endian float64 payload (row-major) framed by compressBlock.
const (
	cacheMagic   = "IMGF"
	cacheVersion = 1
)

type cacheHeader struct {
	Version     int    `json:"version"`
	Rows        int    `json:"rows"`
	Dim         int    `json:"dim"`
	Compression string `json:"compression"`
	Checksum    uint32 `json:"crc32"`
}

// EncodeOptions configures Encode.
type EncodeOptions struct {
	Compression Compression
	Codec       codec.Codec
}

// Encode serializes m into the cache format.
func Encode(m *Matrix, opts EncodeOptions) ([]byte, error) {
	c := opts.Codec
	if c == nil {
		c = codec.Default
	}
	if len(c.Name()) > math.MaxUint8 {
		return nil, fmt.Errorf("feature: codec name %q too long", c.Name())
	}

	rows, dim := m.Rows(), m.Dim()
	n, err := conv.MulInt(rows, dim)
	if err != nil {
		return nil, fmt.Errorf("feature: encode: %w", err)
	}
	size, err := conv.MulInt(n, 8)
	if err != nil {
		return nil, fmt.Errorf("feature: encode: %w", err)
	}
	raw := make([]byte, size)
	for i := range rows {
		for j, v := range m.dense.RawRowView(i) {
			binary.LittleEndian.PutUint64(raw[8*(i*dim+j):], math.Float64bits(v))
		}
	}

	block, err := compressBlock(raw, opts.Compression)
	if err != nil {
		return nil, fmt.Errorf("feature: compress: %w", err)
	}

	hdr, err := c.Marshal(cacheHeader{
		Version:     cacheVersion,
		Rows:        rows,
		Dim:         dim,
		Compression: opts.Compression.String(),
		Checksum:    hash.CRC32C(raw),
	})
	if err != nil {
		return nil, fmt.Errorf("feature: encode header: %w", err)
	}
	hdrLen, err := conv.IntToUint32(len(hdr))
	if err != nil {
		return nil, fmt.Errorf("feature: encode header: %w", err)
	}

	var buf bytes.Buffer
	buf.Grow(len(cacheMagic) + 1 + len(c.Name()) + 4 + len(hdr) + len(block))
	buf.WriteString(cacheMagic)
	buf.WriteByte(byte(len(c.Name())))
	buf.WriteString(c.Name())
	_ = binary.Write(&buf, binary.LittleEndian, hdrLen)
	buf.Write(hdr)
	buf.Write(block)

	return buf.Bytes(), nil
}

// Decode parses data written by Encode. The result does not alias data.
func Decode(data []byte) (*Matrix, error) {
	if !bytes.HasPrefix(data, []byte(cacheMagic)) {
		return nil, fmt.Errorf("%w: bad magic", ErrCorruptCache)
	}
	data = data[len(cacheMagic):]

	if len(data) < 1 {
		return nil, fmt.Errorf("%w: truncated codec name", ErrCorruptCache)
	}
	n := int(data[0])
	if len(data) < 1+n+4 {
		return nil, fmt.Errorf("%w: truncated codec name", ErrCorruptCache)
	}
	c, ok := codec.ByName(string(data[1 : 1+n]))
	if !ok {
		return nil, fmt.Errorf("%w: unknown codec %q", ErrCorruptCache, data[1:1+n])
	}
	data = data[1+n:]

	hdrLen := binary.LittleEndian.Uint32(data)
	data = data[4:]
	if uint64(len(data)) < uint64(hdrLen) {
		return nil, fmt.Errorf("%w: truncated header", ErrCorruptCache)
	}

	var hdr cacheHeader
	if err := c.Unmarshal(data[:hdrLen], &hdr); err != nil {
		return nil, fmt.Errorf("%w: header: %v", ErrCorruptCache, err)
	}
	if hdr.Version != cacheVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrCorruptCache, hdr.Version)
	}
	if hdr.Rows < 0 || hdr.Dim < 0 || (hdr.Rows > 0 && hdr.Dim == 0) {
		return nil, fmt.Errorf("%w: invalid shape %dx%d", ErrCorruptCache, hdr.Rows, hdr.Dim)
	}
	comp, err := ParseCompression(hdr.Compression)
	if err != nil {
		return nil, err
	}

	raw, err := decompressBlock(data[hdrLen:], comp)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptCache, err)
	}
	values, err := conv.MulInt(hdr.Rows, hdr.Dim)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptCache, err)
	}
	if len(raw)/8 != values || len(raw)%8 != 0 {
		return nil, fmt.Errorf("%w: payload has %d bytes for shape %dx%d", ErrCorruptCache, len(raw), hdr.Rows, hdr.Dim)
	}
	if !hash.VerifyCRC32C(raw, hdr.Checksum) {
		return nil, fmt.Errorf("%w: checksum mismatch", ErrCorruptCache)
	}

	if hdr.Rows == 0 {
		return &Matrix{}, nil
	}

	vec := make([]float64, values)
	for i := range vec {
		vec[i] = math.Float64frombits(binary.LittleEndian.Uint64(raw[8*i:]))
	}
	return fromData(hdr.Rows, hdr.Dim, vec), nil
}

// CacheOptions configures a Cache.
type CacheOptions struct {
	// Prefix is prepended to every entry name. Default: "features".
	Prefix string
	// Compression for new entries. Default: CompressionZSTD.
	Compression Compression
	// Codec for new entry headers. Default: codec.Default.
	Codec codec.Codec
}

// Cache persists feature matrices in a blob store, keyed by caller-chosen names.
type Cache struct {
	store blobstore.BlobStore
	opts  CacheOptions
}

// NewCache creates a cache backed by store.
func NewCache(store blobstore.BlobStore, optFns ...func(o *CacheOptions)) *Cache {
	opts := CacheOptions{
		Prefix:      "features",
		Compression: CompressionZSTD,
		Codec:       codec.Default,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Cache{store: store, opts: opts}
}

func (c *Cache) name(key string) string {
	return path.Join(c.opts.Prefix, key+".imgf")
}

// Load returns the matrix stored under key. A missing entry reports ok=false
// without error; a corrupt entry returns an error wrapping ErrCorruptCache.
func (c *Cache) Load(ctx context.Context, key string) (m *Matrix, ok bool, err error) {
	data, err := blobstore.Get(ctx, c.store, c.name(key))
	if errors.Is(err, blobstore.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("feature: load %q: %w", key, err)
	}

	m, err = Decode(data)
	if err != nil {
		return nil, false, fmt.Errorf("feature: load %q: %w", key, err)
	}
	return m, true, nil
}

// Store writes m under key, replacing any previous entry.
func (c *Cache) Store(ctx context.Context, key string, m *Matrix) error {
	data, err := Encode(m, EncodeOptions{Compression: c.opts.Compression, Codec: c.opts.Codec})
	if err != nil {
		return err
	}
	if err := c.store.Put(ctx, c.name(key), data); err != nil {
		return fmt.Errorf("feature: store %q: %w", key, err)
	}
	return nil
}

// Delete removes the entry under key.
func (c *Cache) Delete(ctx context.Context, key string) error {
	return c.store.Delete(ctx, c.name(key))
}
