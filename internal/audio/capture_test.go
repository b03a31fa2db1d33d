package audio

import (
	"bytes"
	"testing"

	"github.com/go-audio/wav"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeWAVRoundTrip(t *testing.T) {
	t.Parallel()

	samples := []int16{0, 1000, -1000, 32767, -32768, 42}
	data, err := encodeWAV(samples, 16000, 1)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	dec := wav.NewDecoder(bytes.NewReader(data))
	require.True(t, dec.IsValidFile())

	buf, err := dec.FullPCMBuffer()
	require.NoError(t, err)
	assert.Equal(t, 16000, buf.Format.SampleRate)
	assert.Equal(t, 1, buf.Format.NumChannels)
	require.Len(t, buf.Data, len(samples))
	for i, s := range samples {
		assert.Equal(t, int(s), buf.Data[i], "sample %d", i)
	}
}

func TestEncodeWAVHeaderOnly(t *testing.T) {
	t.Parallel()

	data, err := encodeWAV(nil, 16000, 1)
	require.NoError(t, err)
	dec := wav.NewDecoder(bytes.NewReader(data))
	assert.True(t, dec.IsValidFile())
}

func TestStopWithoutStart(t *testing.T) {
	t.Parallel()

	c := NewCapture(Config{}, zerolog.Nop())
	_, _, err := c.Stop()
	require.Error(t, err)
}
