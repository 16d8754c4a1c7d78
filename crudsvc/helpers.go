package crudsvc

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-crud"
	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

func paramUUID(ctx crud.Context, key string) (uuid.UUID, error) {
	raw := strings.TrimSpace(ctx.Params(key, ""))
	if raw == "" {
		raw = strings.TrimSpace(ctx.Query(key))
	}
	if raw == "" {
		return uuid.Nil, goerrors.New("missing "+key, goerrors.CategoryValidation).
			WithCode(goerrors.CodeBadRequest)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, goerrors.New("invalid "+key, goerrors.CategoryValidation).
			WithCode(goerrors.CodeBadRequest)
	}
	return id, nil
}

func parseID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, goerrors.New("invalid id", goerrors.CategoryValidation).
			WithCode(goerrors.CodeBadRequest)
	}
	return id, nil
}

func queryInt(ctx crud.Context, key string, def int) int {
	if value := ctx.Query(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return def
}
