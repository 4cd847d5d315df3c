package badger

import (
	"fmt"

	"github.com/poiesic/recollect/core"
)

// Key prefixes for different data types
const (
	memoryRecordPrefix = "memrec"
)

// makeMemoryRecordKey generates a key for a memory record by ID.
func makeMemoryRecordKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", memoryRecordPrefix, id))
}
