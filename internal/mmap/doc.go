// Package mmap maps local files read-only into memory.
//
// Local blob stores hand the mapped bytes straight to image decoders and the
// feature cache decoder, so a file is never copied through an intermediate
// buffer.
//
//	m, err := mmap.Open("features/real.imgf")
//	if err != nil { ... }
//	defer m.Close()
//	data := m.Bytes()
//
// Unix uses mmap(2) with madvise(2) access hints; Windows uses
// CreateFileMapping/MapViewOfFile and ignores hints.
package mmap
