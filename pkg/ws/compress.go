package ws

import (
	"bytes"
	"compress/zlib"
	"io"
	"sync"
)

// Writers are reused, allocating a zlib writer costs far more than a push
// event.
var writerPool = sync.Pool{
	New: func() any { return zlib.NewWriter(nil) },
}

// Compress deflates data in the zlib format. Compressed payloads are sent as
// binary frames.
func Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := writerPool.Get().(*zlib.Writer)
	defer writerPool.Put(w)

	w.Reset(&buf)
	if _, err := w.Write(data); err != nil {
		return nil, err
	}

	if err := w.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func Decompress(data []byte) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer r.Close()

	return io.ReadAll(r)
}
