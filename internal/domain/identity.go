package domain

// Identity is the authenticated caller of a request. The zero value is the
// anonymous identity, used when no (valid) bearer token was presented.
type Identity struct {
	// Subject is the stable user identifier yielded by the token verifier.
	Subject string
}

// Anonymous is the absent identity bound by optional authentication when no
// valid token is present.
var Anonymous = Identity{}

// Present reports whether the identity belongs to an authenticated caller.
func (i Identity) Present() bool {
	return i.Subject != ""
}
