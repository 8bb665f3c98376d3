package handlers

import (
	"testing"
	"time"

	"github.com/arnold/boardly-api/internal/apperrors"
	"github.com/stretchr/testify/require"
)

func TestParseTimeParam(t *testing.T) {
	got, err := parseTimeParam("from", "2026-06-15T14:00:00+02:00")
	require.NoError(t, err)
	require.Equal(t, time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC), got)

	_, err = parseTimeParam("to", "yesterday")
	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, apperrors.KindValidation, appErr.Kind)
	require.Contains(t, appErr.Details, "to")
}
