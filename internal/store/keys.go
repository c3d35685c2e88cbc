package store

import (
	"strconv"
	"sync"
)

// Key layout:
//
//	user:{id}                  → User JSON
//	idx:users:email:{email}    → user id
//	copy:{entryID}             → uint64 big endian counter
const (
	userPrefix        = "user:"
	userByEmailPrefix = "idx:users:email:"
	copyCountPrefix   = "copy:"
)

var keyPool = sync.Pool{
	New: func() any {
		return make([]byte, 0, 64)
	},
}

// buildKey joins prefix and suffix into a pooled buffer.
// Callers must call releaseKey when done with the key.
func buildKey(prefix, suffix string) []byte {
	buf, _ := keyPool.Get().([]byte)
	buf = buf[:0]
	buf = append(buf, prefix...)
	buf = append(buf, suffix...)
	return buf
}

// copyCountKey builds copy:{entryID}. Callers must release it.
func copyCountKey(entryID int) []byte {
	buf, _ := keyPool.Get().([]byte)
	buf = buf[:0]
	buf = append(buf, copyCountPrefix...)
	return strconv.AppendInt(buf, int64(entryID), 10)
}

// releaseKey returns a key buffer to the pool. The slice must not be used afterwards.
func releaseKey(key []byte) {
	if cap(key) <= 256 {
		keyPool.Put(key[:0])
	}
}
