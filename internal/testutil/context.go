package testutil

import (
	"context"

	"github.com/AntarMukhopadhyaya/med-bill-sub000/internal/types"
)

func SetupContext() context.Context {
	ctx := context.Background()
	ctx = context.WithValue(ctx, types.CtxRequestID, types.GenerateUUID())
	return ctx
}
