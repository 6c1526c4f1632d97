// Package hash provides the checksum used by persisted feature matrices.
//
// CRC32-Castagnoli is hardware accelerated on x86 (SSE4.2) and ARM (CRC
// extension) through hash/crc32.
package hash
