package arena

import (
	"fmt"
	"unsafe"

	"github.com/joshuapare/filterhost/pkg/types"
)

func errInvalidSize(op string, n int) error {
	return types.Errorf(types.ErrKindInvalidArgument, "arena: %s: invalid size %d", op, n)
}

func errUnknownBlock(op string, p unsafe.Pointer) error {
	return types.Errorf(types.ErrKindInvalidArgument, "arena: %s: unknown block %p", op, p)
}

func errOutOfMemory(n int, cause error) error {
	return types.Wrap(types.ErrKindOutOfMemory, fmt.Sprintf("arena: allocate %d bytes", n), cause)
}

func errLeaked(blocks int, bytes int64) error {
	return types.Errorf(types.ErrKindLeak, "arena: %d blocks (%d bytes) never released", blocks, bytes)
}

func errDisposed(what string) error {
	return types.Errorf(types.ErrKindDisposed, "arena: %s after release", what)
}
