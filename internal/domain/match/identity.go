package match

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/valyala/bytebufferpool"
)

// BattleKey derives the deduplication key for a battle from its raw upstream
// timestamp string and the two participant tags. The tags are sorted before
// hashing, so both participants' views of the same battle converge on one key:
// BattleKey(t, a, b) == BattleKey(t, b, a).
func BattleKey(battleTime, tagA, tagB string) string {
	lo, hi := tagA, tagB
	if hi < lo {
		lo, hi = hi, lo
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = buf.WriteString(battleTime)
	_ = buf.WriteByte('-')
	_, _ = buf.WriteString(lo)
	_ = buf.WriteByte('-')
	_, _ = buf.WriteString(hi)

	sum := sha256.Sum256(buf.B)
	return hex.EncodeToString(sum[:])
}
