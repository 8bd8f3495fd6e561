package media_test

import (
	"testing"
	"time"

	"haulage/internal/core/domain/model/kernel"
	"haulage/internal/core/domain/model/media"
	"haulage/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStage(t *testing.T) {
	for _, s := range media.Stages() {
		parsed, err := media.ParseStage(string(s))
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}

	empty, err := media.ParseStage("")
	require.NoError(t, err)
	assert.Equal(t, media.StageOther, empty)

	_, err = media.ParseStage("selfie")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestNewMedia(t *testing.T) {
	dispatchID := kernel.NewUUID()
	uploader := kernel.NewUUID()
	at := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	m, err := media.NewMedia(kernel.NewUUID(), dispatchID, media.StageWeighIn, "2025/03/01/abc.jpg", &uploader,
		" gross slip ", media.Metadata{FileName: "slip.jpg", ContentType: "image/jpeg", Size: 1024}, at)

	require.NoError(t, err)
	assert.True(t, m.DispatchID().IsEqual(dispatchID))
	assert.Equal(t, "gross slip", m.Description())
	assert.True(t, m.UploaderID().IsEqual(uploader))
	assert.Equal(t, int64(1024), m.Metadata().Size)
	assert.Equal(t, at, m.CreatedAt())
}

func TestNewMedia_Invalid(t *testing.T) {
	_, err := media.NewMedia(kernel.NewUUID(), kernel.UUID{}, media.Stage("x"), "", nil, "", media.Metadata{}, time.Now())

	require.ErrorIs(t, err, errs.ErrValueIsRequired)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	require.ErrorIs(t, err, media.ErrReferenceIsRequired)
}
