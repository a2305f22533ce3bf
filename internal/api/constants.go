package api

// sessionCookieName is the cookie that carries the session ID. The web client
// relies on this exact name.
const sessionCookieName = "animes2u_session"

// Login throttling parameters, keyed by client IP. Generous enough for a
// shared NAT, tight enough to slow down credential stuffing.
const (
	loginRatePerSecond = 5
	loginBurst         = 10
)
