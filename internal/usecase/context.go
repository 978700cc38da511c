package usecase

import (
	"context"

	"portfolio-backend/internal/domain"
)

func requestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(domain.KeyRequestID).(string)
	return id
}
