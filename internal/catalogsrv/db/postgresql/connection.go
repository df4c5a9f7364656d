package postgresql

import (
	"context"
)

// Close returns the underlying connection back to the pool.
func (xm *connectionManager) Close(ctx context.Context) {
	xm.c.Close(ctx)
}
