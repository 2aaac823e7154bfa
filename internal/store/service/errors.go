package service

import (
	"context"
	"errors"

	"quant-board-store/internal/store/repository"
	"quant-board-store/pkg/logger"

	"go.uber.org/zap"
)

var (
	// ErrStockExists is returned when a stock is created under a code that
	// is already registered. It wraps repository.ErrUniqueViolation.
	ErrStockExists = errors.New("stock already exists")
	// ErrInvalidInput is returned when an input fails validation before
	// reaching the database.
	ErrInvalidInput = errors.New("invalid input")
)

// logWriteError logs constraint violations at warn and other failures at error.
func logWriteError(ctx context.Context, log *logger.Logger, msg string, err error, fields ...zap.Field) {
	fields = append(fields, logger.ErrorField(err))
	if repository.IsConstraintViolation(err) {
		log.WarnContext(ctx, msg, fields...)
		return
	}
	log.ErrorContext(ctx, msg, fields...)
}
