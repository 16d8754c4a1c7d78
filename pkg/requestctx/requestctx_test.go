package requestctx_test

import (
	"context"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/stretchr/testify/require"

	"github.com/learnpath/go-progressions/pkg/requestctx"
)

func TestResolveRoundTrip(t *testing.T) {
	ctx := requestctx.WithInfo(context.Background(), requestctx.Info{
		TouchpointID:  " 9000000001 ",
		APIURL:        "https://api.example.com",
		CorrelationID: "corr-1",
	})

	info, err := requestctx.Resolve(ctx)
	require.NoError(t, err)
	require.Equal(t, "9000000001", info.TouchpointID)
	require.Equal(t, "https://api.example.com", info.APIURL)
	require.Equal(t, "corr-1", info.CorrelationID)
}

func TestResolveMissingTouchpoint(t *testing.T) {
	ctx := requestctx.WithInfo(context.Background(), requestctx.Info{
		APIURL: "https://api.example.com",
	})

	_, err := requestctx.Resolve(ctx)
	require.Error(t, err)

	var rich *goerrors.Error
	require.ErrorAs(t, err, &rich)
	require.Equal(t, "TOUCHPOINT_MISSING", rich.TextCode)
}

func TestResolveMissingAPIURL(t *testing.T) {
	ctx := requestctx.WithInfo(context.Background(), requestctx.Info{
		TouchpointID: "9000000001",
	})

	_, err := requestctx.Resolve(ctx)
	require.Error(t, err)

	var rich *goerrors.Error
	require.ErrorAs(t, err, &rich)
	require.Equal(t, "API_URL_MISSING", rich.TextCode)
}

func TestCorrelationIDOptional(t *testing.T) {
	ctx := requestctx.WithInfo(context.Background(), requestctx.Info{
		TouchpointID: "9000000001",
		APIURL:       "https://api.example.com",
	})

	info, err := requestctx.Resolve(ctx)
	require.NoError(t, err)
	require.Empty(t, info.CorrelationID)
	require.Empty(t, requestctx.CorrelationID(ctx))
}
