package web

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignerRoundTrip(t *testing.T) {
	s := signer{key: []byte("k")}
	now := time.Unix(1_700_000_000, 0)

	value := s.encode(session{Username: "alice.b", Expires: now.Add(time.Hour)})
	sess, err := s.decode(value, now)
	require.NoError(t, err)
	assert.Equal(t, "alice.b", sess.Username)
	assert.True(t, sess.Expires.Equal(now.Add(time.Hour)))
}

func TestSignerRejects(t *testing.T) {
	s := signer{key: []byte("k")}
	now := time.Unix(1_700_000_000, 0)
	value := s.encode(session{Username: "alice", Expires: now.Add(time.Hour)})

	tests := map[string]struct {
		value string
		at    time.Time
		key   string
	}{
		"expired":   {value: value, at: now.Add(time.Hour), key: "k"},
		"other key": {value: value, at: now, key: "other"},
		"tampered":  {value: "Ym9i" + value[len("YWxpY2U"):], at: now, key: "k"},
		"garbage":   {value: "not-a-session", at: now, key: "k"},
		"empty":     {value: "", at: now, key: "k"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := signer{key: []byte(tt.key)}.decode(tt.value, tt.at)
			require.ErrorIs(t, err, errBadSession)
		})
	}
}
