package web

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var errBadSession = errors.New("invalid session")

// session is the signed content of the session cookie.
type session struct {
	Username string
	Expires  time.Time
}

// signer signs and verifies session values with HMAC-SHA256.
type signer struct {
	key []byte
}

// encode returns "<base64 username>.<unix expiry>.<base64 mac>".
func (s signer) encode(sess session) string {
	payload := base64.RawURLEncoding.EncodeToString([]byte(sess.Username)) + "." + strconv.FormatInt(sess.Expires.Unix(), 10)
	return payload + "." + base64.RawURLEncoding.EncodeToString(s.mac(payload))
}

func (s signer) decode(value string, now time.Time) (session, error) {
	i := strings.LastIndexByte(value, '.')
	if i < 0 {
		return session{}, errBadSession
	}
	payload, sig := value[:i], value[i+1:]

	mac, err := base64.RawURLEncoding.DecodeString(sig)
	if err != nil || !hmac.Equal(mac, s.mac(payload)) {
		return session{}, errBadSession
	}

	encodedUser, expiry, ok := strings.Cut(payload, ".")
	if !ok {
		return session{}, errBadSession
	}
	user, err := base64.RawURLEncoding.DecodeString(encodedUser)
	if err != nil || len(user) == 0 {
		return session{}, errBadSession
	}
	unix, err := strconv.ParseInt(expiry, 10, 64)
	if err != nil {
		return session{}, errBadSession
	}

	sess := session{Username: string(user), Expires: time.Unix(unix, 0)}
	if !now.Before(sess.Expires) {
		return session{}, fmt.Errorf("%w: expired", errBadSession)
	}
	return sess, nil
}

func (s signer) mac(payload string) []byte {
	h := hmac.New(sha256.New, s.key)
	h.Write([]byte(payload))
	return h.Sum(nil)
}
