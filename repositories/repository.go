package repositories

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	apperrors "tasklist-project/backend/errors"
)

// classifyError folds a mongo driver error into the shared taxonomy so the
// layers above can tell a uniqueness violation from an unreachable database.
func classifyError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return apperrors.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return apperrors.ErrConflict
	case mongo.IsTimeout(err), mongo.IsNetworkError(err), errors.Is(err, mongo.ErrClientDisconnected):
		return fmt.Errorf("%w: %v", apperrors.ErrDependencyUnavailable, err)
	default:
		return err
	}
}
