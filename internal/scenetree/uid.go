package scenetree

import (
	"encoding/binary"

	"github.com/google/uuid"
)

// uidChars is the engine's uid alphabet: 25 letters then 9 digits.
const uidChars = "abcdefghijklmnopqrstuvwxy012345678"

// uidNamespace scopes the name-based UUIDs used for scene uids.
var uidNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://godotengine.org/res"))

// UID returns a stable uid:// identifier for a resource path. The same path
// always yields the same uid, so regenerating a project does not churn them.
func UID(resPath string) string {
	u := uuid.NewSHA1(uidNamespace, []byte(resPath))
	id := binary.BigEndian.Uint64(u[:8]) & 0x7fffffffffffffff
	return "uid://" + encodeUID(id)
}

func encodeUID(id uint64) string {
	base := uint64(len(uidChars))
	var buf [16]byte
	i := len(buf)
	for {
		i--
		buf[i] = uidChars[id%base]
		id /= base
		if id == 0 {
			break
		}
	}
	return string(buf[i:])
}
