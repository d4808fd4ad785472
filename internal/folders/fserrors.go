package folders

import (
	"errors"
	"fmt"
	"io/fs"
	"syscall"

	perrors "github.com/PolarWolf314/projfold/internal/errors"
)

// classifyFSError maps OS errors onto the projfold sentinels while keeping
// the original error in the chain.
func classifyFSError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("%w: %w", perrors.ErrPermissionDenied, err)
	case errors.Is(err, syscall.EXDEV):
		return fmt.Errorf("%w: %w", perrors.ErrCrossDevice, err)
	case errors.Is(err, fs.ErrExist), errors.Is(err, syscall.ENOTEMPTY):
		return fmt.Errorf("%w: %w", perrors.ErrDestinationConflict, err)
	}
	return err
}
