package ports

// LoginRecorder receives the user IDs of successful logins so the
// last-login stamp can be applied asynchronously. Record must never block
// the login path and its outcome is best-effort by contract.
type LoginRecorder interface {
	Record(userID string)
}
