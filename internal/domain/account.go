package domain

type Account struct {
	ID             int64  `json:"id"`
	Username       string `json:"username"`
	PasswordDigest string `json:"-"`
	Email          string `json:"email"`
}
