// This is free and unencumbered software released into the public domain.
//
// Anyone is free to copy, modify, publish, use, compile, sell, or
// distribute this software, either in source code form or as a compiled
// binary, for any purpose, commercial or non-commercial, and by any
// means.
//
// In jurisdictions that recognize copyright laws, the author or authors
// of this software dedicate any and all copyright interest in the
// software to the public domain. We make this dedication for the benefit
// of the public at large and to the detriment of our heirs and
// successors. We intend this dedication to be an overt act of
// relinquishment in perpetuity of all present and future rights to this
// software under copyright law.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND,
// EXPRESS OR IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF
// MERCHANTABILITY, FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT.
// IN NO EVENT SHALL THE AUTHORS BE LIABLE FOR ANY CLAIM, DAMAGES OR
// OTHER LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE,
// ARISING FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR
// OTHER DEALINGS IN THE SOFTWARE.
//
// For more information, please refer to <https://unlicense.org>

package tribles

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/dchest/siphash"
)

// HashSize is the size of a structural hash in bytes.
const HashSize = 16

// Hash is a 128-bit structural digest. The digest of an interior node is
// the XOR of the leaf hashes of all keys reachable through it, so equal
// key sets hash identically regardless of insertion order.
type Hash [HashSize]byte

// Combine folds o into h. XOR is commutative and associative with the
// zero hash as identity.
func (h Hash) Combine(o Hash) Hash {
	var r Hash
	for i := range h {
		r[i] = h[i] ^ o[i]
	}
	return r
}

// Equal reports bytewise equality.
func (h Hash) Equal(o Hash) bool {
	return h == o
}

func (h Hash) String() string {
	return fmt.Sprintf("%x", h[:])
}

// The instance secret keys every leaf hash. It is initialized once per
// process and must not change afterwards: re-seeding would invalidate the
// structural hashes of every live tree.
var (
	secretMtx sync.Mutex
	secretK0  uint64
	secretK1  uint64
	secretSet bool
)

// InitHashSecret draws the process-wide hash secret from the system CSPRNG.
// Calling it again after the secret has been set is a no-op.
func InitHashSecret() error {
	secretMtx.Lock()
	defer secretMtx.Unlock()

	if secretSet {
		return nil
	}
	var buf [HashSize]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return fmt.Errorf("reading hash secret: %w", err)
	}
	secretK0 = binary.LittleEndian.Uint64(buf[:8])
	secretK1 = binary.LittleEndian.Uint64(buf[8:])
	secretSet = true
	return nil
}

// SetHashSecret installs a deterministic hash secret. Reproducible builds
// and tests use this; it must be called before the first insertion and
// never again afterwards.
func SetHashSecret(seed [HashSize]byte) {
	secretMtx.Lock()
	defer secretMtx.Unlock()

	secretK0 = binary.LittleEndian.Uint64(seed[:8])
	secretK1 = binary.LittleEndian.Uint64(seed[8:])
	secretSet = true
}

func hashSecretReady() bool {
	secretMtx.Lock()
	defer secretMtx.Unlock()
	return secretSet
}

// leafHash computes the keyed 128-bit digest of a full key under the
// instance secret.
func leafHash(key []byte) Hash {
	if !hashSecretReady() {
		panic("tribles: hash secret not initialized")
	}
	lo, hi := siphash.Hash128(secretK0, secretK1, key)
	var h Hash
	binary.LittleEndian.PutUint64(h[:8], lo)
	binary.LittleEndian.PutUint64(h[8:], hi)
	return h
}
